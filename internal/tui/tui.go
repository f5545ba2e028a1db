// Package tui is the interactive finder surface: a query box over the index,
// a ranked result list, and a preview pane. It owns session state like the
// pinned selection; the index and search results are immutable snapshots it
// swaps wholesale.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ffind/internal/action"
	"ffind/internal/index"
	"ffind/internal/preview"
	"ffind/internal/search"
)

// Config holds the settings passed from the CLI layer. The include/regex
// flags are live state: the finder can toggle them at runtime.
type Config struct {
	Root         string
	InitialQuery string
	Limit        int
	UseRegex     bool
	UseManifest  bool
	IncludeFiles bool
	IncludeDirs  bool
}

// Model is the Bubble Tea model for the finder screen.
type Model struct {
	config Config

	input   textinput.Model
	preview viewport.Model
	spinner spinner.Model

	index   *index.Result
	results []search.Scored
	cursor  int
	pinned  map[string]bool

	building    bool
	searchSeq   int
	previewPath string
	notice      string
	err         error

	width       int
	height      int
	initialized bool
}

// New creates the finder model.
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle

	ti := textinput.New()
	ti.Placeholder = "Type to search ('exact !exclude ^anchor$)"
	ti.CharLimit = 512
	ti.SetValue(cfg.InitialQuery)
	ti.Focus()

	return Model{
		config:   cfg,
		input:    ti,
		spinner:  sp,
		pinned:   make(map[string]bool),
		building: true,
	}
}

// indexDoneMsg is sent when an index build completes.
type indexDoneMsg struct {
	result *index.Result
	err    error
}

// searchDoneMsg carries the results for one query generation. Stale
// generations are dropped.
type searchDoneMsg struct {
	seq     int
	results []search.Scored
}

type previewDoneMsg struct {
	path string
	text string
}

type manifestDoneMsg struct {
	path string
	err  error
}

func buildIndex(cfg Config) tea.Cmd {
	return func() tea.Msg {
		result, err := index.Build(cfg.Root, cfg.UseManifest, cfg.IncludeFiles, cfg.IncludeDirs)
		return indexDoneMsg{result: result, err: err}
	}
}

func runSearch(seq int, query string, entries []string, limit int, useRegex bool) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg{seq: seq, results: search.Search(query, entries, limit, useRegex)}
	}
}

func loadPreview(path string, width int) tea.Cmd {
	return func() tea.Msg {
		return previewDoneMsg{path: path, text: preview.Rendered(path, width)}
	}
}

func writeManifest(root string, entries []string) tea.Cmd {
	return func() tea.Msg {
		path, err := index.WriteManifest(root, entries, "")
		return manifestDoneMsg{path: path, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, buildIndex(m.config))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview = viewport.New(msg.Width, m.previewHeight())
		m.input.Width = msg.Width - 4
		m.initialized = true
		if path, ok := m.currentPath(); ok {
			return m, loadPreview(path, m.width)
		}
		return m, nil

	case indexDoneMsg:
		m.building = false
		m.err = msg.err
		if msg.err == nil {
			m.index = msg.result
		}
		return m, m.refreshResults()

	case searchDoneMsg:
		if msg.seq != m.searchSeq {
			return m, nil // superseded by a newer query
		}
		m.results = msg.results
		if m.cursor >= len(m.visibleResults()) {
			m.cursor = 0
		}
		return m, m.previewCurrent()

	case previewDoneMsg:
		if path, ok := m.currentPath(); ok && path == msg.path {
			m.previewPath = msg.path
			m.preview.SetContent(msg.text)
			m.preview.GotoTop()
		}
		return m, nil

	case manifestDoneMsg:
		if msg.err != nil {
			m.notice = "manifest write failed: " + msg.err.Error()
		} else {
			m.notice = "wrote " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.building {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blink ticks and the like) belongs to the
	// input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		return m.activateSelection()

	case "up":
		return m.moveCursor(-1)

	case "down":
		return m.moveCursor(1)

	case "tab":
		if path, ok := m.currentPath(); ok {
			if m.pinned[path] {
				delete(m.pinned, path)
			} else {
				m.pinned[path] = true
			}
		}
		return m.moveCursor(1)

	case "esc":
		m.input.Reset()
		m.pinned = make(map[string]bool)
		m.notice = ""
		return m, m.refreshResults()

	case "ctrl+r":
		return m.rebuild()

	case "ctrl+f":
		m.config.IncludeFiles = !m.config.IncludeFiles
		return m.rebuild()

	case "ctrl+d":
		m.config.IncludeDirs = !m.config.IncludeDirs
		return m.rebuild()

	case "ctrl+x":
		m.config.UseRegex = !m.config.UseRegex
		return m, m.refreshResults()

	case "ctrl+s":
		if m.index == nil || len(m.index.Entries) == 0 {
			m.notice = "nothing to write"
			return m, nil
		}
		return m, writeManifest(m.config.Root, m.index.Entries)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		return m, tea.Batch(cmd, m.refreshResults())
	}
	return m, cmd
}

func (m *Model) rebuild() (tea.Model, tea.Cmd) {
	m.building = true
	m.index = nil
	m.results = nil
	m.notice = ""
	return *m, tea.Batch(m.spinner.Tick, buildIndex(m.config))
}

// refreshResults starts a search for the current query against the current
// snapshot. Each call bumps the generation so stale answers are ignored.
func (m *Model) refreshResults() tea.Cmd {
	if m.index == nil {
		return nil
	}
	m.searchSeq++
	query := m.input.Value()
	if strings.TrimSpace(query) == "" {
		// Default listing is a presentation concern; the core returns
		// nothing for a blank query.
		m.results = nil
		return m.previewCurrent()
	}
	return runSearch(m.searchSeq, query, m.index.Entries, m.config.Limit, m.config.UseRegex)
}

func (m Model) activateSelection() (tea.Model, tea.Cmd) {
	paths := m.selectedPaths()
	if len(paths) == 0 {
		return m, nil
	}
	var failed []string
	for _, path := range paths {
		if err := action.ExecuteOrOpen(path); err != nil {
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		m.notice = strings.Join(failed, "; ")
	} else if len(paths) == 1 {
		m.notice = fmt.Sprintf("%s: %s", action.Choose(paths[0]), paths[0])
	} else {
		m.notice = fmt.Sprintf("activated %d pinned entries", len(paths))
	}
	return m, nil
}

// selectedPaths is the pinned set when anything is pinned, else the entry
// under the cursor.
func (m Model) selectedPaths() []string {
	if len(m.pinned) > 0 {
		var out []string
		for _, r := range m.visibleResults() {
			if m.pinned[r.Path] {
				out = append(out, r.Path)
			}
		}
		for path := range m.pinned {
			if !contains(out, path) {
				out = append(out, path)
			}
		}
		return out
	}
	if path, ok := m.currentPath(); ok {
		return []string{path}
	}
	return nil
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	visible := m.visibleResults()
	if len(visible) == 0 {
		return m, nil
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(visible)-1 {
		m.cursor = len(visible) - 1
	}
	return m, m.previewCurrent()
}

func (m Model) previewCurrent() tea.Cmd {
	path, ok := m.currentPath()
	if !ok || path == m.previewPath {
		return nil
	}
	return loadPreview(path, m.width)
}

// visibleResults is what the list shows: ranked results for a non-blank
// query, else the head of the index (the default listing).
func (m Model) visibleResults() []search.Scored {
	if strings.TrimSpace(m.input.Value()) != "" {
		return m.results
	}
	if m.index == nil {
		return nil
	}
	limit := m.config.Limit
	if limit < 0 {
		limit = 0
	}
	if limit > len(m.index.Entries) {
		limit = len(m.index.Entries)
	}
	listing := make([]search.Scored, 0, limit)
	for _, entry := range m.index.Entries[:limit] {
		listing = append(listing, search.Scored{Path: entry})
	}
	return listing
}

func (m Model) currentPath() (string, bool) {
	visible := m.visibleResults()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return "", false
	}
	return visible[m.cursor].Path, true
}

func (m Model) listHeight() int {
	h := m.height / 2
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) previewHeight() int {
	// input + status + help take three lines.
	h := m.height - m.listHeight() - 3
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	if !m.initialized {
		return ""
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n" +
			dimStyle.Render("ctrl+r retry • ctrl+c quit") + "\n"
	}

	var list string
	if m.building {
		list = fmt.Sprintf("\n  %s indexing %s...\n", m.spinner.View(), m.config.Root)
	} else {
		list = m.renderList()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.input.View(),
		list,
		m.renderStatusBar(),
		m.preview.View(),
		helpStyle.Render("enter open/exec • tab pin • ctrl+r rebuild • ctrl+f files • ctrl+d dirs • ctrl+x regex • ctrl+s manifest • ctrl+c quit"),
	)
}

func (m Model) renderList() string {
	visible := m.visibleResults()
	height := m.listHeight()

	if len(visible) == 0 {
		return "\n" + dimStyle.Render("  no matches") + strings.Repeat("\n", height-1)
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(visible) {
		end = len(visible)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		r := visible[i]

		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("▸ ")
		}
		pin := " "
		if m.pinned[r.Path] {
			pin = pinStyle.Render("●")
		}

		line := m.renderEntry(r.Path, i == m.cursor)
		if r.Score != 0 {
			line += scoreStyle.Render(fmt.Sprintf("  %.1f", r.Score))
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", cursor, pin, line))
	}
	for i := end - start; i < height; i++ {
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderEntry styles the display path, highlighting the matched characters.
func (m Model) renderEntry(path string, selected bool) string {
	display := search.DisplayPath(path, m.config.Root)
	positions := search.MatchPositionsForPath(path, m.config.Root, m.input.Value(), true, m.config.UseRegex)

	base := listItemStyle
	if selected {
		base = selectedStyle
	}
	if len(positions) == 0 {
		return base.Render(display)
	}

	var sb strings.Builder
	for i, ch := range []rune(display) {
		if positions[i] {
			sb.WriteString(matchStyle.Render(string(ch)))
		} else {
			sb.WriteString(base.Render(string(ch)))
		}
	}
	return sb.String()
}

func (m Model) renderStatusBar() string {
	source := "building"
	entries := 0
	if m.index != nil {
		source = m.index.Source.String()
		entries = len(m.index.Entries)
	}

	toggles := []string{}
	if m.config.IncludeFiles {
		toggles = append(toggles, "files")
	}
	if m.config.IncludeDirs {
		toggles = append(toggles, "dirs")
	}
	if m.config.UseRegex {
		toggles = append(toggles, "regex")
	}

	status := fmt.Sprintf(" %s • %s • %d entries • %d shown • [%s]",
		m.config.Root, source, entries, len(m.visibleResults()), strings.Join(toggles, " "))
	if len(m.pinned) > 0 {
		status += fmt.Sprintf(" • %d pinned", len(m.pinned))
	}
	if m.notice != "" {
		status += " • " + m.notice
	}
	return statusBarStyle.Width(m.width).Render(status)
}

// Run starts the finder.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
