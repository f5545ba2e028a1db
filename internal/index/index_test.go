package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffind/internal/walker"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func canonical(t *testing.T, path string) string {
	t.Helper()
	resolved, err := walker.Canonicalize(path)
	require.NoError(t, err)
	return resolved
}

func TestFindManifestPrefersExactName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "FileList.txt"), "")

	assert.Equal(t, filepath.Join(root, "FileList.txt"), FindManifest(root))
}

func TestFindManifestLowercaseFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "filelist.txt"), "")

	assert.Equal(t, filepath.Join(root, "filelist.txt"), FindManifest(root))
}

func TestFindManifestCaseInsensitiveScan(t *testing.T) {
	root := t.TempDir()
	name := "FILELIST.TXT"
	writeFile(t, filepath.Join(root, name), "")

	found := FindManifest(root)
	require.NotEmpty(t, found)
	// On case-insensitive filesystems the exact-name probe may hit first;
	// either way the file must be found.
	assert.True(t, filepath.Dir(found) == root)
}

func TestFindManifestIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "FileList.txt"), 0o755))

	assert.Empty(t, FindManifest(root))
}

func TestFindManifestMissing(t *testing.T) {
	assert.Empty(t, FindManifest(t.TempDir()))
}

func TestParseManifestSkipsCommentsBlanksAndMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha.txt"), "a")
	writeFile(t, filepath.Join(root, "beta.txt"), "b")

	manifest := filepath.Join(root, "FileList.txt")
	writeFile(t, manifest, "# header\n\nalpha.txt\n"+filepath.Join(root, "beta.txt")+"\nmissing.txt\n")

	entries, err := ParseManifest(manifest, root, true, true)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, canonical(t, filepath.Join(root, "alpha.txt")), entries[0])
	assert.Equal(t, canonical(t, filepath.Join(root, "beta.txt")), entries[1])
}

func TestParseManifestDeduplicatesFirstWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha.txt"), "a")

	manifest := filepath.Join(root, "FileList.txt")
	writeFile(t, manifest, "alpha.txt\n"+filepath.Join(root, "alpha.txt")+"\nalpha.txt\n")

	entries, err := ParseManifest(manifest, root, true, true)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParseManifestKindFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "d"), 0o755))

	manifest := filepath.Join(root, "list.txt")
	writeFile(t, manifest, "f.txt\nd\n")

	tests := []struct {
		name         string
		includeFiles bool
		includeDirs  bool
		want         []string
	}{
		{"both", true, true, []string{"f.txt", "d"}},
		{"files only", true, false, []string{"f.txt"}},
		{"dirs only", false, true, []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseManifest(manifest, root, tt.includeFiles, tt.includeDirs)
			require.NoError(t, err)

			var names []string
			for _, e := range entries {
				names = append(names, filepath.Base(e))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParseManifestUnreadableIsError(t *testing.T) {
	root := t.TempDir()
	_, err := ParseManifest(filepath.Join(root, "nope.txt"), root, true, true)
	assert.Error(t, err)
}

func TestManifestTextRelativizesAndDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.go"), "x")
	outside := filepath.Join(t.TempDir(), "elsewhere.txt")
	writeFile(t, outside, "y")

	inner := filepath.Join(root, "src", "main.go")
	text := ManifestText([]string{inner, inner, outside}, root)

	lines := []string{
		filepath.Join("src", "main.go"),
		canonical(t, outside),
	}
	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n", text)
}

func TestManifestTextEmpty(t *testing.T) {
	assert.Equal(t, "", ManifestText(nil, t.TempDir()))
}

func TestWriteManifestRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")

	built, err := Build(root, false, true, false)
	require.NoError(t, err)
	require.Len(t, built.Entries, 2)

	written, err := WriteManifest(root, built.Entries, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ManifestName), written)

	found := FindManifest(root)
	require.Equal(t, written, found)

	parsed, err := ParseManifest(found, root, true, true)
	require.NoError(t, err)
	assert.Equal(t, built.Entries, parsed)
}

func TestBuildPrefersManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "FileList.txt"), "a.txt\n")

	res, err := Build(root, true, true, true)
	require.NoError(t, err)

	assert.Equal(t, SourceManifest, res.Source)
	assert.NotEmpty(t, res.ManifestPath)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "a.txt", filepath.Base(res.Entries[0]))
}

func TestBuildFallsBackToWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")

	res, err := Build(root, true, true, true)
	require.NoError(t, err)

	assert.Equal(t, SourceWalker, res.Source)
	assert.Empty(t, res.ManifestPath)
	assert.Len(t, res.Entries, 1)
}

func TestBuildIgnoresManifestWhenDisabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "FileList.txt"), "a.txt\n")

	res, err := Build(root, false, true, false)
	require.NoError(t, err)

	assert.Equal(t, SourceWalker, res.Source)
	// The walk sees the manifest file itself as a plain file.
	assert.Len(t, res.Entries, 2)
}

func TestBuildNothingRequested(t *testing.T) {
	res, err := Build(t.TempDir(), true, false, false)
	require.NoError(t, err)

	assert.Equal(t, SourceNone, res.Source)
	assert.Empty(t, res.Entries)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "manifest", SourceManifest.String())
	assert.Equal(t, "walk", SourceWalker.String())
	assert.Equal(t, "none", SourceNone.String())
}
