//go:build windows

package action

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// errorBadExeFormat is ERROR_BAD_EXE_FORMAT: the file is not a valid Win32
// application.
const errorBadExeFormat = syscall.Errno(193)

var executableExts = map[string]bool{
	".exe": true,
	".com": true,
	".bat": true,
	".cmd": true,
	".ps1": true,
}

func chooseFile(path string) Action {
	if executableExts[strings.ToLower(filepath.Ext(path))] {
		return Execute
	}
	return Open
}

func execute(path string) error {
	err := exec.Command(path).Start()
	if err == nil {
		return nil
	}
	// Launch-denied: Windows refuses to run the file as a program, so fall
	// back to the default handler once. Any other failure propagates.
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == errorBadExeFormat {
		return OpenWithDefault(path)
	}
	return fmt.Errorf("execute %s: %w", path, err)
}

// OpenWithDefault hands path to the shell's default handler.
func OpenWithDefault(path string) error {
	if err := exec.Command("cmd", "/C", "start", "", path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
