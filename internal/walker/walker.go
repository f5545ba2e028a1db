package walker

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Canonicalize returns the absolute path with symlinks and ".." resolved.
// It fails if the path does not exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Walk traverses the tree rooted at root and returns the discovered files and
// directories as canonical paths. The traversal is iterative, driven by an
// explicit stack, so the order is deterministic for a given tree: os.ReadDir
// yields children sorted by name and the last-pushed directory is visited
// next.
//
// Symlinked directories are recorded but never descended into, which keeps
// symlink cycles from looping the walk. Directories that cannot be read
// (permission denied, or a race turned them into something else) contribute
// no children; the walk continues with the rest of the stack. Children that
// vanish between listing and canonicalization are skipped.
func Walk(root string) (files, dirs []string) {
	start, err := Canonicalize(root)
	if err != nil {
		return nil, nil
	}

	stack := []string{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := os.ReadDir(current)
		if err != nil {
			continue
		}

		for _, child := range children {
			childPath := filepath.Join(current, child.Name())
			resolved, err := Canonicalize(childPath)
			if err != nil {
				continue
			}

			info, err := os.Stat(resolved)
			if err != nil {
				continue
			}

			if info.IsDir() {
				dirs = append(dirs, resolved)
				// Never descend through symlinks.
				if child.Type()&fs.ModeSymlink == 0 {
					stack = append(stack, resolved)
				}
			} else {
				files = append(files, resolved)
			}
		}
	}
	return files, dirs
}

// Files returns only the files under root.
func Files(root string) []string {
	files, _ := Walk(root)
	return files
}

// Dirs returns only the directories under root.
func Dirs(root string) []string {
	_, dirs := Walk(root)
	return dirs
}

// Entries returns files and directories under root, filtered by the include
// flags. Files come first, then directories, each in walk order.
func Entries(root string, includeFiles, includeDirs bool) []string {
	files, dirs := Walk(root)
	var entries []string
	if includeFiles {
		entries = append(entries, files...)
	}
	if includeDirs {
		entries = append(entries, dirs...)
	}
	return entries
}
