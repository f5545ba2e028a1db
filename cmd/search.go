package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"ffind/internal/index"
	"ffind/internal/search"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the index once and print ranked results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(flagRoot)
		if err != nil {
			return err
		}

		includeFiles, includeDirs := includeFlags()
		result, err := index.Build(root, !flagNoManifest, includeFiles, includeDirs)
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}

		query := ""
		if len(args) > 0 {
			query = strings.TrimSpace(args[0])
		}

		// A blank query lists the head of the index; ranking needs a query.
		if query == "" {
			limit := flagLimit
			if limit < 0 {
				limit = 0
			}
			if limit > len(result.Entries) {
				limit = len(result.Entries)
			}
			for _, entry := range result.Entries[:limit] {
				fmt.Println(entry)
			}
			return nil
		}

		for _, r := range search.Search(query, result.Entries, flagLimit, flagRegex) {
			fmt.Printf("[%6.1f] %s\n", r.Score, r.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
