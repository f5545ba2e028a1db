package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkCollectsFilesAndDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(root, "sub", "deep", "c.txt"), "c")

	files, dirs := Walk(root)

	var fileNames, dirNames []string
	for _, f := range files {
		fileNames = append(fileNames, filepath.Base(f))
	}
	for _, d := range dirs {
		dirNames = append(dirNames, filepath.Base(d))
	}

	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "c.txt"}, fileNames)
	assert.ElementsMatch(t, []string{"sub", "deep"}, dirNames)
}

func TestWalkIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one", "x.txt"), "x")
	writeFile(t, filepath.Join(root, "two", "y.txt"), "y")
	writeFile(t, filepath.Join(root, "z.txt"), "z")

	firstFiles, firstDirs := Walk(root)
	secondFiles, secondDirs := Walk(root)

	assert.Equal(t, firstFiles, secondFiles)
	assert.Equal(t, firstDirs, secondDirs)
}

func TestWalkDoesNotDescendSymlinkedDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "inner.txt"), "x")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	files, dirs := Walk(root)

	// The symlinked directory is recorded, but its contents appear exactly
	// once (via the real directory).
	assert.Len(t, dirs, 2)
	assert.Len(t, files, 1)
}

func TestWalkSurvivesSymlinkCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "f.txt"), "x")
	// Cycle: sub/loop -> root.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	files, dirs := Walk(root)
	assert.Len(t, files, 1)
	assert.NotEmpty(t, dirs)
}

func TestWalkMissingRootYieldsNothing(t *testing.T) {
	files, dirs := Walk(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, files)
	assert.Empty(t, dirs)
}

func TestEntriesHonorsIncludeFlags(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "d"), 0o755))

	tests := []struct {
		name         string
		includeFiles bool
		includeDirs  bool
		want         int
	}{
		{"files and dirs", true, true, 2},
		{"files only", true, false, 1},
		{"dirs only", false, true, 1},
		{"neither", false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Entries(root, tt.includeFiles, tt.includeDirs), tt.want)
		})
	}
}

func TestFilesAndDirsViews(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "d"), 0o755))

	files := Files(root)
	dirs := Dirs(root)

	require.Len(t, files, 1)
	require.Len(t, dirs, 1)
	assert.Equal(t, "f.txt", filepath.Base(files[0]))
	assert.Equal(t, "d", filepath.Base(dirs[0]))
}
