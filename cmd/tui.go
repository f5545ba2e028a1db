package cmd

import (
	"path/filepath"

	"ffind/internal/tui"
)

func runTUI(initialQuery string) error {
	root, err := filepath.Abs(flagRoot)
	if err != nil {
		return err
	}

	includeFiles, includeDirs := includeFlags()
	return tui.Run(tui.Config{
		Root:         root,
		InitialQuery: initialQuery,
		Limit:        flagLimit,
		UseRegex:     flagRegex,
		UseManifest:  !flagNoManifest,
		IncludeFiles: includeFiles,
		IncludeDirs:  includeDirs,
	})
}
