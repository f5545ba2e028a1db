package cmd

import (
	"fmt"
	"path/filepath"

	"ffind/internal/index"

	"github.com/spf13/cobra"
)

var flagManifestOut string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Walk the tree and write a manifest file",
	Long: `Walks the root directory and writes the entries to a manifest file
(FileList.txt by default). Later runs read the manifest instead of walking.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(flagRoot)
		if err != nil {
			return err
		}

		// Always walk: regenerating a manifest from itself would freeze it.
		includeFiles, includeDirs := includeFlags()
		result, err := index.Build(root, false, includeFiles, includeDirs)
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}

		written, err := index.WriteManifest(root, result.Entries, flagManifestOut)
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d entries to %s\n", len(result.Entries), written)
		return nil
	},
}

func init() {
	manifestCmd.Flags().StringVar(&flagManifestOut, "output", index.ManifestName, "manifest filename (written under the root)")
	rootCmd.AddCommand(manifestCmd)
}
