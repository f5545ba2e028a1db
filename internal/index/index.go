// Package index builds the entry list the finder searches over, either from
// an on-disk manifest or by walking the filesystem.
package index

import "ffind/internal/walker"

// Source records where an index came from.
type Source int

const (
	SourceNone Source = iota
	SourceManifest
	SourceWalker
)

func (s Source) String() string {
	switch s {
	case SourceManifest:
		return "manifest"
	case SourceWalker:
		return "walk"
	default:
		return "none"
	}
}

// Result is one immutable index snapshot. It is rebuilt wholesale on root
// changes or filter toggles, never patched.
type Result struct {
	Entries      []string
	Source       Source
	ManifestPath string
}

// Build creates an index for root. When both include flags are false it
// returns an empty result without touching the filesystem. When useManifest
// is set and a manifest exists, the manifest wins and its path is recorded;
// a manifest that exists but cannot be read fails the build. Otherwise the
// tree is walked.
func Build(root string, useManifest, includeFiles, includeDirs bool) (*Result, error) {
	if !includeFiles && !includeDirs {
		return &Result{Source: SourceNone}, nil
	}

	canonicalRoot, err := walker.Canonicalize(root)
	if err != nil {
		canonicalRoot = root
	}

	if useManifest {
		if manifest := FindManifest(canonicalRoot); manifest != "" {
			entries, err := ParseManifest(manifest, canonicalRoot, includeFiles, includeDirs)
			if err != nil {
				return nil, err
			}
			return &Result{
				Entries:      entries,
				Source:       SourceManifest,
				ManifestPath: manifest,
			}, nil
		}
	}

	return &Result{
		Entries: walker.Entries(canonicalRoot, includeFiles, includeDirs),
		Source:  SourceWalker,
	}, nil
}
