package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ffind/internal/index"
	"ffind/internal/search"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the finder as tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(flagRoot)
	if err != nil {
		return err
	}

	s := mcpserver.NewMCPServer("ffind", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(searchEntriesTool(), makeSearchHandler(root))
	s.AddTool(listEntriesTool(), makeListHandler(root))
	s.AddTool(writeManifestTool(), makeWriteManifestHandler(root))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func searchEntriesTool() mcp.Tool {
	return mcp.NewTool("search_entries",
		mcp.WithDescription("Fuzzy-search files and directories under the root. Supports 'exact, !exclude and ^/$ anchored terms. Returns ranked paths with scores."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query string; whitespace-separated terms"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 50)"),
		),
		mcp.WithBoolean("regex",
			mcp.Description("Treat include terms as case-insensitive regular expressions"),
		),
	)
}

func listEntriesTool() mcp.Tool {
	return mcp.NewTool("list_entries",
		mcp.WithDescription("List the indexed entries under the root with the index provenance (manifest or live walk)."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to list (default 100)"),
		),
	)
}

func writeManifestTool() mcp.Tool {
	return mcp.NewTool("write_manifest",
		mcp.WithDescription("Walk the root and write its entries to a manifest file (FileList.txt by default), overwriting any existing one."),
		mcp.WithString("filename",
			mcp.Description("Manifest filename under the root (default FileList.txt)"),
		),
	)
}

// --- Handler factories ---

// Each handler builds a fresh index: calls are one-shot and independent, so
// there is no snapshot to keep in sync.

func makeSearchHandler(root string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if strings.TrimSpace(query) == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		limit := req.GetInt("limit", 50)
		if limit <= 0 {
			limit = 50
		}
		useRegex := req.GetBool("regex", false)

		includeFiles, includeDirs := includeFlags()
		result, err := index.Build(root, !flagNoManifest, includeFiles, includeDirs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("build index failed: %v", err)), nil
		}

		results := search.Search(query, result.Entries, limit, useRegex)
		return mcp.NewToolResultText(formatResults(query, results)), nil
	}
}

func makeListHandler(root string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 100)
		if limit <= 0 {
			limit = 100
		}

		includeFiles, includeDirs := includeFlags()
		result, err := index.Build(root, !flagNoManifest, includeFiles, includeDirs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("build index failed: %v", err)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Index of %s (%d entries, source: %s)\n\n", root, len(result.Entries), result.Source)
		if result.ManifestPath != "" {
			fmt.Fprintf(&sb, "Manifest: %s\n\n", result.ManifestPath)
		}
		for i, entry := range result.Entries {
			if i == limit {
				fmt.Fprintf(&sb, "... (%d more)\n", len(result.Entries)-limit)
				break
			}
			fmt.Fprintf(&sb, "- %s\n", entry)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeWriteManifestHandler(root string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filename := req.GetString("filename", "")

		includeFiles, includeDirs := includeFlags()
		result, err := index.Build(root, false, includeFiles, includeDirs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("build index failed: %v", err)), nil
		}

		written, err := index.WriteManifest(root, result.Entries, filename)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("write manifest failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Wrote %d entries to %s", len(result.Entries), written)), nil
	}
}

// --- Formatting helpers ---

func formatResults(query string, results []search.Scored) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results for query: %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Results for %q (%d)\n\n", query, len(results))
	for _, r := range results {
		fmt.Fprintf(&sb, "- [%6.1f] %s\n", r.Score, r.Path)
	}
	return sb.String()
}
