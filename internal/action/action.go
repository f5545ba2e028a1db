// Package action decides what activating an entry means (open with the
// platform default handler, or execute directly) and performs the launch.
package action

import "os"

// Action is what activating an entry does.
type Action int

const (
	Open Action = iota
	Execute
)

func (a Action) String() string {
	if a == Execute {
		return "execute"
	}
	return "open"
}

// Choose picks the action for path: directories and non-executable files
// open via the platform default handler, executable files launch directly.
func Choose(path string) Action {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Open
	}
	return chooseFile(path)
}

// ExecuteOrOpen performs the chosen action for path.
func ExecuteOrOpen(path string) error {
	if Choose(path) == Execute {
		return execute(path)
	}
	return OpenWithDefault(path)
}
