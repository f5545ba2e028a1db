// Package preview builds the text shown in the finder's preview pane. It is
// plain text with no UI dependency; markdown rendering is layered on top for
// terminals that want it.
package preview

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"

	"ffind/internal/action"
)

const (
	fileMaxLines = 20
	fileMaxBytes = 64 * 1024
	dirMaxLines  = 24
	maxNameChars = 80
)

// Text builds the preview for path: a capped child listing for directories,
// a header plus the first lines for files.
func Text(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return dirText(path)
	}
	return fileText(path)
}

func dirText(path string) string {
	children, err := os.ReadDir(path)
	if err != nil {
		return fmt.Sprintf("Directory: %s\nChildren: <unavailable>", path)
	}
	if len(children) == 0 {
		return fmt.Sprintf("Directory: %s\nChildren: 0\n<empty>", path)
	}

	var lines []string
	for _, child := range children {
		if len(lines) == dirMaxLines {
			lines = append(lines, fmt.Sprintf("... (%d more)", len(children)-dirMaxLines))
			break
		}
		marker := "[F]"
		if child.IsDir() {
			marker = "[D]"
		}
		lines = append(lines, marker+" "+truncateName(child.Name()))
	}

	return fmt.Sprintf("Directory: %s\nChildren: %d\nScope: direct children only\n\n%s",
		path, len(children), strings.Join(lines, "\n"))
}

func fileText(path string) string {
	head := fmt.Sprintf("File: %s\nAction: %s\n", path, action.Choose(path))

	lines, err := headLines(path)
	if err != nil {
		return head + "\n<binary or unreadable file>"
	}
	if len(lines) == 0 {
		return head + "\n<empty file>"
	}
	return head + "\n" + strings.Join(lines, "\n")
}

// headLines reads up to fileMaxLines lines within fileMaxBytes. Content that
// is not valid UTF-8 is treated as unreadable.
func headLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	bytesRead := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), fileMaxBytes)

	for len(lines) < fileMaxLines && bytesRead < fileMaxBytes && scanner.Scan() {
		chunk := scanner.Bytes()
		if bytes.IndexByte(chunk, 0) >= 0 || !utf8.Valid(chunk) {
			return nil, fmt.Errorf("not text: %s", path)
		}
		bytesRead += len(chunk) + 1
		lines = append(lines, strings.TrimRight(string(chunk), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameChars {
		return name
	}
	return string(runes[:maxNameChars-3]) + "..."
}

// Rendered is Text, except markdown files get their head rendered with
// glamour for terminal display. Any render failure falls back to plain text.
func Rendered(path string, width int) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return Text(path)
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return Text(path)
	}

	lines, err := headLines(path)
	if err != nil || len(lines) == 0 {
		return Text(path)
	}

	if width < 10 {
		width = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return Text(path)
	}
	rendered, err := r.Render(strings.Join(lines, "\n"))
	if err != nil {
		return Text(path)
	}

	head := fmt.Sprintf("File: %s\nAction: %s\n", path, action.Choose(path))
	return head + "\n" + strings.TrimRight(rendered, "\n")
}
