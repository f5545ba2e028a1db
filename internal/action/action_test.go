package action

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseDirectoryIsOpen(t *testing.T) {
	assert.Equal(t, Open, Choose(t.TempDir()))
}

func TestChoosePlainFileIsOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.Equal(t, Open, Choose(path))
}

func TestChooseExecutableFileIsExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	path := filepath.Join(t.TempDir(), "run.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	assert.Equal(t, Execute, Choose(path))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "execute", Execute.String())
}
