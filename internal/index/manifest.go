package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ffind/internal/walker"
)

// ManifestName is the preferred manifest filename.
const ManifestName = "FileList.txt"

// FindManifest looks for a manifest file directly under root. It checks
// "FileList.txt" and "filelist.txt" first, then falls back to the first
// direct child whose lowercased name is "filelist.txt". The fallback follows
// directory enumeration order, which is implementation-defined. Returns ""
// when no manifest exists.
func FindManifest(root string) string {
	for _, name := range []string{ManifestName, "filelist.txt"} {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	children, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	for _, child := range children {
		if !child.IsDir() && strings.EqualFold(child.Name(), "filelist.txt") {
			return filepath.Join(root, child.Name())
		}
	}
	return ""
}

// ParseManifest reads a manifest file and returns the entries it lists as
// canonical paths. Blank lines and lines starting with '#' are ignored.
// Relative paths are resolved against root. Lines naming paths that no
// longer exist are dropped silently; duplicates keep their first occurrence.
// Entries are filtered by kind according to the include flags.
//
// An unreadable manifest is an error: callers report a failed build instead
// of silently falling back to a walk.
func ParseManifest(path, root string, includeFiles, includeDirs bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	seen := make(map[string]bool)
	var entries []string

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(root, line)
		}
		resolved, err := walker.Canonicalize(line)
		if err != nil {
			continue // listed path no longer exists
		}

		info, err := os.Stat(resolved)
		if err != nil {
			continue
		}
		if info.IsDir() && !includeDirs {
			continue
		}
		if !info.IsDir() && !includeFiles {
			continue
		}

		if !seen[resolved] {
			seen[resolved] = true
			entries = append(entries, resolved)
		}
	}
	return entries, nil
}

// ManifestText renders entries as manifest file content. Each entry becomes
// one line: relative to root when it lies under root, the absolute canonical
// path otherwise. Duplicate lines keep their first occurrence. The text ends
// with a trailing newline, or is empty when there are no entries.
func ManifestText(entries []string, root string) string {
	canonicalRoot, err := walker.Canonicalize(root)
	if err != nil {
		canonicalRoot = root
	}

	seen := make(map[string]bool)
	var lines []string
	for _, entry := range entries {
		resolved, err := walker.Canonicalize(entry)
		if err != nil {
			resolved = entry
		}

		line := resolved
		if rel, err := filepath.Rel(canonicalRoot, resolved); err == nil && !strings.HasPrefix(rel, "..") {
			line = rel
		}

		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteManifest writes the manifest for entries to root/filename, overwriting
// any existing file, and returns the written path.
func WriteManifest(root string, entries []string, filename string) (string, error) {
	if filename == "" {
		filename = ManifestName
	}
	target := filepath.Join(root, filename)
	if err := os.WriteFile(target, []byte(ManifestText(entries, root)), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return target, nil
}
