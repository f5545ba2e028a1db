//go:build !windows

package action

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

func chooseFile(path string) Action {
	info, err := os.Stat(path)
	if err != nil {
		return Open
	}
	if info.Mode().Perm()&0o111 != 0 {
		return Execute
	}
	return Open
}

func execute(path string) error {
	if err := exec.Command(path).Start(); err != nil {
		return fmt.Errorf("execute %s: %w", path, err)
	}
	return nil
}

// OpenWithDefault hands path to the desktop's default handler.
func OpenWithDefault(path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	if err := exec.Command(opener, path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
