package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagRoot       string
	flagLimit      int
	flagRegex      bool
	flagNoManifest bool
	flagFilesOnly  bool
	flagDirsOnly   bool
)

var rootCmd = &cobra.Command{
	Use:   "ffind [query]",
	Short: "Fuzzy finder for files and directories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initialQuery := ""
		if len(args) > 0 {
			initialQuery = args[0]
		}
		return runTUI(initialQuery)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "root directory to index")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 50, "maximum number of results")
	rootCmd.PersistentFlags().BoolVar(&flagRegex, "regex", false, "treat include terms as regular expressions")
	rootCmd.PersistentFlags().BoolVar(&flagNoManifest, "no-manifest", false, "ignore FileList.txt and always walk the tree")
	rootCmd.PersistentFlags().BoolVar(&flagFilesOnly, "files-only", false, "index files only")
	rootCmd.PersistentFlags().BoolVar(&flagDirsOnly, "dirs-only", false, "index directories only")
}

// includeFlags translates the only-flags into the include pair. Passing both
// only-flags is the same as passing neither.
func includeFlags() (includeFiles, includeDirs bool) {
	switch {
	case flagFilesOnly && !flagDirsOnly:
		return true, false
	case flagDirsOnly && !flagFilesOnly:
		return false, true
	default:
		return true, true
	}
}
