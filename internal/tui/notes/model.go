// Package notes is the interactive browser: a note tree on the left and the
// open note, editable or previewed, on the right.
package notes

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tordek/darkstone/internal/editor"
	"github.com/Tordek/darkstone/internal/logger"
	"github.com/Tordek/darkstone/internal/markdown"
	"github.com/Tordek/darkstone/internal/query"
	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/internal/tree"
	"github.com/Tordek/darkstone/internal/workspace"
)

type focus int

const (
	focusTree focus = iota
	focusEditor
)

type pasteMsg struct {
	text string
	err  error
}

type Option func(*Model)

func WithWatcher(w *state.NotesWatcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithInitialNote opens path as soon as the program starts.
func WithInitialNote(path string) Option {
	return func(m *Model) { m.initial = path }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

type Model struct {
	ws       *workspace.Model
	renderer *markdown.Renderer
	watcher  *state.NotesWatcher
	log      *slog.Logger
	initial  string

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	preview viewport.Model

	focus     focus
	cursor    int
	treeTop   int
	editorTop int
	width     int
	height    int

	// Armed by the first press of a confirming key, cleared by any other key.
	pendingDelete string
	pendingOpen   string
	pendingQuit   bool
	status        string
}

func New(ws *workspace.Model, r *markdown.Renderer, opts ...Option) *Model {
	m := &Model{
		ws:       ws,
		renderer: r,
		log:      logger.Discard(),
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusBannerStyle)),
		preview:  viewport.New(0, 0),
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.ws.Scan(), m.spinner.Tick}
	if w := m.watch(); w != nil {
		cmds = append(cmds, w)
	}
	if m.initial != "" {
		cmds = append(cmds, m.ws.Update(workspace.SetCurrentMsg{Path: m.initial}))
		m.focus = focusEditor
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case pasteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("clipboard unavailable: %v", msg.err)
			break
		}
		if msg.text != "" {
			cmd = m.ws.Update(workspace.EditMsg{Action: editor.Paste(msg.text)})
		}

	case state.NotesChangedMsg:
		cmd = batch(m.ws.ExternalChange(msg.Path), m.watch())

	case state.NotesWatcherErrMsg:
		m.log.Warn("watcher error", "err", msg.Err)
		cmd = m.watch()

	case workspace.NoteCreatedMsg:
		cmd = m.ws.Update(msg)
		if msg.Err == nil {
			m.selectPath(msg.Path)
			m.focus = focusEditor
		}

	default:
		cmd = m.ws.Update(msg)
	}

	m.clampCursor()
	m.syncPreview()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.forceQuit) {
		return tea.Quit
	}
	if m.focus == focusEditor {
		return m.handleEditorKey(msg)
	}
	return m.handleTreeKey(msg)
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) tea.Cmd {
	row, hasRow := m.selectedRow()

	if !key.Matches(msg, m.keys.remove) {
		m.pendingDelete = ""
	}
	if !key.Matches(msg, m.keys.open) {
		m.pendingOpen = ""
	}
	if !key.Matches(msg, m.keys.quit) {
		m.pendingQuit = false
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		if cur := m.ws.Current(); cur != nil && cur.Dirty() && !m.pendingQuit {
			m.pendingQuit = true
			m.status = fmt.Sprintf("%s has unsaved changes, press q again to quit", cur.Name())
			return nil
		}
		return tea.Quit

	case key.Matches(msg, m.keys.up):
		m.cursor--

	case key.Matches(msg, m.keys.down):
		m.cursor++

	case key.Matches(msg, m.keys.open):
		if !hasRow {
			return nil
		}
		if row.IsDir {
			return m.ws.Update(workspace.ExpandMsg{Path: row.Path, Expanded: !row.Expanded})
		}
		return m.openRow(row)

	case key.Matches(msg, m.keys.collapse):
		if hasRow && row.IsDir && row.Expanded {
			return m.ws.Update(workspace.ExpandMsg{Path: row.Path, Expanded: false})
		}
		if hasRow {
			m.selectPath(filepath.Dir(row.Path))
		}

	case key.Matches(msg, m.keys.expand):
		if hasRow && row.IsDir && !row.Expanded {
			return m.ws.Update(workspace.ExpandMsg{Path: row.Path, Expanded: true})
		}

	case key.Matches(msg, m.keys.create):
		return m.ws.Update(workspace.CreateMsg{Parent: m.createParent(row, hasRow)})

	case key.Matches(msg, m.keys.remove):
		if !hasRow {
			return nil
		}
		if m.pendingDelete != row.Path {
			m.pendingDelete = row.Path
			m.status = fmt.Sprintf("press d again to delete %s", row.Name)
			return nil
		}
		m.pendingDelete = ""
		return m.ws.Update(workspace.DeleteMsg{Path: row.Path})

	case key.Matches(msg, m.keys.refresh):
		return m.ws.Update(workspace.RefreshMsg{})

	case key.Matches(msg, m.keys.toggleFocus):
		if m.ws.Current() != nil {
			m.focus = focusEditor
		}
	}

	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	cur := m.ws.Current()

	switch {
	case key.Matches(msg, m.keys.leaveEditor), key.Matches(msg, m.keys.toggleFocus):
		m.focus = focusTree
		return nil
	case cur == nil:
		return nil
	case key.Matches(msg, m.keys.save):
		return m.ws.Update(workspace.SaveMsg{})
	case key.Matches(msg, m.keys.switchMode):
		return m.ws.Update(workspace.SwitchModeMsg{})
	case key.Matches(msg, m.keys.bold):
		return m.ws.Update(workspace.ToggleBoldMsg{})
	case key.Matches(msg, m.keys.paste):
		return readClipboard
	}

	if cur.Mode() == editor.ModePreview {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}

	a, ok := actionForKey(msg)
	if !ok {
		return nil
	}
	cmd := m.ws.Update(workspace.EditMsg{Action: a})
	m.scrollToCursor()
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := m.editorOrigin()
	if msg.X < x {
		if msg.Type == tea.MouseLeft {
			m.focus = focusTree
			m.cursor = m.treeTop + msg.Y - y
		}
		return nil
	}

	cur := m.ws.Current()
	if cur == nil || cur.Mode() != editor.ModeEdit {
		return nil
	}
	a, ok := actionForMouse(msg, x, y, m.editorTop)
	if !ok {
		return nil
	}
	m.focus = focusEditor
	return m.ws.Update(workspace.EditMsg{Action: a})
}

// openRow makes row the current note. Leaving a note with unsaved changes
// needs a second press.
func (m *Model) openRow(row tree.Row) tea.Cmd {
	cur := m.ws.Current()
	if cur != nil && cur.Dirty() && cur.Path() != row.Path && m.pendingOpen != row.Path {
		m.pendingOpen = row.Path
		m.status = fmt.Sprintf("%s has unsaved changes, press enter again to discard them", cur.Name())
		return nil
	}

	m.pendingOpen = ""
	m.focus = focusEditor
	m.editorTop = 0
	m.preview.GotoTop()
	return m.ws.Update(workspace.SetCurrentMsg{Path: row.Path, Name: row.Name})
}

func (m *Model) createParent(row tree.Row, ok bool) string {
	switch {
	case !ok:
		return ""
	case row.IsDir:
		return row.Path
	default:
		return filepath.Dir(row.Path)
	}
}

func (m *Model) selectedRow() (tree.Row, bool) {
	rows := m.ws.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return tree.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) selectPath(path string) {
	for i, row := range m.ws.Rows() {
		if row.Path == path {
			m.cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.ws.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.bodyHeight()
	if m.cursor < m.treeTop {
		m.treeTop = m.cursor
	}
	if m.cursor >= m.treeTop+h {
		m.treeTop = m.cursor - h + 1
	}
}

func (m *Model) scrollToCursor() {
	cur := m.ws.Current()
	if cur == nil {
		return
	}
	line := cur.View().Cursor.Line
	h := m.bodyHeight()
	if line < m.editorTop {
		m.editorTop = line
	}
	if line >= m.editorTop+h {
		m.editorTop = line - h + 1
	}
}

// syncPreview refreshes the viewport from the current note. Rendering falls
// back to the plain block text when glamour fails.
func (m *Model) syncPreview() {
	m.preview.Width = m.editorWidth()
	m.preview.Height = m.bodyHeight()

	cur := m.ws.Current()
	if cur == nil || cur.Phase() != query.Loaded || cur.Mode() != editor.ModePreview {
		return
	}

	text, _ := cur.Text()
	out, err := m.renderer.Render(text, m.editorWidth())
	if err != nil {
		m.log.Debug("preview render failed", "path", cur.Path(), "err", err)
		out = markdown.Plain(cur.Preview())
	}
	m.preview.SetContent(out)
}

// watch waits for the next watcher event.
func (m *Model) watch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Start()
}

func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	return pasteMsg{text: text, err: err}
}

func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}

// Run starts the browser over the state's notes directory. initialPath, when
// set, is opened right away.
func Run(s *state.State, initialPath string) error {
	opts := []Option{WithLogger(s.Logger), WithInitialNote(initialPath)}
	if w, err := s.Watch(); err != nil {
		s.Logger.Warn("notes watcher unavailable", "err", err)
	} else {
		opts = append(opts, WithWatcher(w))
	}

	m := New(s.NewWorkspace(), s.Renderer, opts...)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
