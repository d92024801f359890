// Package workspace owns the note tree and the open editor session. Every
// filesystem operation leaves as a tea.Cmd and comes back as a completion
// message handled by Update, so all state changes happen on one goroutine.
package workspace

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tordek/darkstone/internal/editor"
	"github.com/Tordek/darkstone/internal/handler"
	"github.com/Tordek/darkstone/internal/logger"
	"github.com/Tordek/darkstone/internal/pathutil"
	"github.com/Tordek/darkstone/internal/query"
	"github.com/Tordek/darkstone/internal/tree"
)

var (
	ErrTreePending    = errors.New("the note tree is still loading")
	ErrDeleteInFlight = errors.New("a delete for this path is already running")
	ErrUnknownPath    = errors.New("path is not part of the note tree")
	ErrNoteNotLoaded  = errors.New("no loaded note to save")
)

// selfTouchTTL bounds how long a path this model created or deleted is
// excluded from external change handling.
const selfTouchTTL = 2 * time.Second

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithScanOptions replaces the default scan options, so opts.Skip must name
// the trash directory itself.
func WithScanOptions(opts tree.ScanOptions) Option {
	return func(m *Model) { m.scanOpts = opts }
}

func WithParser(parse editor.ParseFunc) Option {
	return func(m *Model) { m.parse = parse }
}

func withClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

type Model struct {
	handler  *handler.FileHandler
	scanOpts tree.ScanOptions
	parse    editor.ParseFunc
	log      *slog.Logger
	now      func() time.Time

	tree     query.Result[*tree.Node, handler.ErrorKind]
	scanGen  uint64
	expanded map[string]bool

	current *editor.Session
	openGen uint64

	deleting map[string]bool
	touched  map[string]time.Time
	lastErr  error

	// Creates and deletes that finished while a scan was in flight, applied
	// to the tree that scan produces.
	created map[string]string
	removed map[string]bool
}

// New builds a model over the handler's notes directory. Without
// WithScanOptions only the trash directory is left out of scans. Call Scan
// to load the tree.
func New(h *handler.FileHandler, opts ...Option) *Model {
	m := &Model{
		handler:  h,
		scanOpts: tree.ScanOptions{Skip: []string{h.TrashDir()}},
		log:      logger.Discard(),
		now:      time.Now,
		expanded: make(map[string]bool),
		deleting: make(map[string]bool),
		touched:  make(map[string]time.Time),
		created:  make(map[string]string),
		removed:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Root() string { return m.handler.NotesDir() }

// Tree returns a snapshot of the tree state. The loaded value is a copy.
func (m *Model) Tree() query.Result[*tree.Node, handler.ErrorKind] {
	return query.Map(m.tree, (*tree.Node).Clone)
}

// Rows returns the visible tree rows, or nil while the tree is not loaded.
func (m *Model) Rows() []tree.Row {
	root, ok := m.tree.Value()
	if !ok {
		return nil
	}
	return root.Rows()
}

// Current returns the open session, or nil.
func (m *Model) Current() *editor.Session { return m.current }

// LastError is the most recent recoverable failure.
func (m *Model) LastError() error { return m.lastErr }

func (m *Model) ClearError() { m.lastErr = nil }

// Scan discards the current tree and reloads it from disk. Completions of
// earlier scans are ignored once a newer one has been issued.
func (m *Model) Scan() tea.Cmd {
	if root, ok := m.tree.Value(); ok {
		for path, expanded := range root.ExpandedState() {
			m.expanded[path] = expanded
		}
	}

	m.scanGen++
	m.tree.Reset()

	gen, fsys, dir, opts := m.scanGen, m.handler.Fs(), m.handler.NotesDir(), m.scanOpts
	m.log.Debug("scan started", "gen", gen, "root", dir)
	return func() tea.Msg {
		root, err := tree.Scan(fsys, dir, opts)
		return TreeLoadedMsg{Gen: gen, Root: root, Err: err}
	}
}

func (m *Model) onTreeLoaded(msg TreeLoadedMsg) tea.Cmd {
	if msg.Gen != m.scanGen || !m.tree.IsPending() {
		m.log.Debug("dropping stale scan", "gen", msg.Gen, "current", m.scanGen)
		return nil
	}

	created, removed := m.created, m.removed
	m.created, m.removed = make(map[string]string), make(map[string]bool)

	if msg.Err != nil {
		kind := handler.KindOf(msg.Err)
		m.log.Warn("scan failed", "root", m.handler.NotesDir(), "kind", kind.String(), "err", msg.Err)
		m.lastErr = msg.Err
		_ = m.tree.Fail(kind)
		return nil
	}

	for path := range removed {
		msg.Root.Remove(path)
	}
	for path, parent := range created {
		msg.Root.AddFile(parent, tree.NewFileRef(path))
	}
	msg.Root.ApplyExpanded(m.expanded)
	_ = m.tree.Resolve(msg.Root)
	return nil
}

// CreateNote creates the next Untitled note in parent and, once it exists,
// opens it. The tree only changes after the file was created.
func (m *Model) CreateNote(parent string) tea.Cmd {
	root, ok := m.tree.Value()
	if !ok {
		m.lastErr = ErrTreePending
		return nil
	}
	if parent == "" {
		parent = root.Path
	}
	parent = pathutil.NormalizePath(parent)
	if root.Find(parent) == nil {
		m.lastErr = ErrUnknownPath
		return nil
	}

	h := m.handler
	return func() tea.Msg {
		path, name, err := h.CreateNote(parent)
		return NoteCreatedMsg{Parent: parent, Path: path, Name: name, Err: err}
	}
}

func (m *Model) onNoteCreated(msg NoteCreatedMsg) tea.Cmd {
	if msg.Err != nil {
		m.log.Warn("create failed", "parent", msg.Parent, "err", msg.Err)
		m.lastErr = msg.Err
		return nil
	}

	m.touch(msg.Path)
	m.log.Info("note created", "path", msg.Path)

	if root, ok := m.tree.Value(); ok {
		root.AddFile(msg.Parent, tree.NewFileRef(msg.Path))
		root.SetExpanded(msg.Parent, true)
	} else if m.tree.IsPending() {
		delete(m.removed, msg.Path)
		m.created[msg.Path] = msg.Parent
		m.expanded[msg.Parent] = true
	}
	return m.Open(msg.Path, msg.Name)
}

// Delete removes a note or directory. The tree entry is only dropped once
// the filesystem delete succeeded.
func (m *Model) Delete(path string) tea.Cmd {
	root, ok := m.tree.Value()
	if !ok {
		m.lastErr = ErrTreePending
		return nil
	}
	path = pathutil.NormalizePath(path)
	if path == root.Path || !root.Contains(path) {
		m.lastErr = ErrUnknownPath
		return nil
	}
	if m.deleting[path] {
		m.lastErr = ErrDeleteInFlight
		return nil
	}

	m.deleting[path] = true
	h := m.handler
	return func() tea.Msg {
		return EntryDeletedMsg{Path: path, Err: h.Delete(path)}
	}
}

func (m *Model) onEntryDeleted(msg EntryDeletedMsg) tea.Cmd {
	delete(m.deleting, msg.Path)

	if msg.Err != nil {
		m.log.Warn("delete failed", "path", msg.Path, "err", msg.Err)
		m.lastErr = msg.Err
		return nil
	}

	m.touch(msg.Path)
	m.log.Info("entry deleted", "path", msg.Path)

	if root, ok := m.tree.Value(); ok {
		root.Remove(msg.Path)
	} else if m.tree.IsPending() {
		for path := range m.created {
			if pathutil.Within(msg.Path, path) {
				delete(m.created, path)
			}
		}
		m.removed[msg.Path] = true
	}
	if m.current != nil && pathutil.Within(msg.Path, m.current.Path()) {
		m.Close()
	}
	return nil
}

// SetExpanded flips a directory open or closed. Unknown paths and a tree
// that is still loading are ignored.
func (m *Model) SetExpanded(path string, expanded bool) {
	root, ok := m.tree.Value()
	if !ok {
		return
	}
	root.SetExpanded(path, expanded)
}

// Open replaces the current session with a Pending one for path and returns
// the read command. Reopening the note that is already loaded keeps it.
func (m *Model) Open(path, name string) tea.Cmd {
	path = pathutil.NormalizePath(path)
	if name == "" {
		name = pathutil.DisplayName(path)
	}
	if m.current != nil && m.current.Path() == path && m.current.Phase() == query.Loaded {
		return nil
	}

	m.openGen++
	session, cmd := editor.Open(m.handler, path, name, m.openGen, m.parse)
	m.current = session
	m.log.Debug("opening note", "path", path, "gen", m.openGen)
	return cmd
}

// Close drops the current session. Loads still in flight for it are
// ignored when they complete.
func (m *Model) Close() {
	m.openGen++
	m.current = nil
}

func (m *Model) onNoteLoaded(msg NoteLoadedMsg) tea.Cmd {
	if m.current == nil || msg.Gen != m.current.Gen() {
		m.log.Debug("dropping stale load", "path", msg.Path, "gen", msg.Gen)
		return nil
	}
	if msg.Err != nil {
		m.log.Warn("load failed", "path", msg.Path, "err", msg.Err)
	}
	m.current.OnLoadComplete(msg.Gen, msg.Text, msg.Err)
	return nil
}

// Save writes the open note's text back to disk.
func (m *Model) Save() tea.Cmd {
	if m.current == nil {
		m.lastErr = ErrNoteNotLoaded
		return nil
	}
	text, ok := m.current.Text()
	if !ok {
		m.lastErr = ErrNoteNotLoaded
		return nil
	}

	gen, path, h := m.current.Gen(), m.current.Path(), m.handler
	return func() tea.Msg {
		return NoteSavedMsg{Gen: gen, Path: path, Text: text, Err: h.WriteNote(path, text)}
	}
}

func (m *Model) onNoteSaved(msg NoteSavedMsg) tea.Cmd {
	if msg.Err != nil {
		m.log.Warn("save failed", "path", msg.Path, "err", msg.Err)
		m.lastErr = msg.Err
		return nil
	}
	m.log.Info("note saved", "path", msg.Path)
	if m.current != nil && m.current.Gen() == msg.Gen {
		m.current.MarkSaved(msg.Text)
	}
	return nil
}

// ExternalChange reacts to a filesystem change seen by the watcher. Changes
// this model caused itself and changes inside the trash are ignored.
func (m *Model) ExternalChange(path string) tea.Cmd {
	path = pathutil.NormalizePath(path)
	if pathutil.Within(m.handler.TrashDir(), path) || m.touchedRecently(path) {
		return nil
	}
	if m.tree.IsPending() {
		return nil
	}
	m.log.Debug("external change", "path", path)
	return m.Scan()
}

func (m *Model) touch(path string) {
	m.touched[pathutil.NormalizePath(path)] = m.now()
}

func (m *Model) touchedRecently(path string) bool {
	now := m.now()
	hit := false
	for p, at := range m.touched {
		if now.Sub(at) > selfTouchTTL {
			delete(m.touched, p)
			continue
		}
		if pathutil.Within(p, path) {
			hit = true
		}
	}
	return hit
}

// Update applies intent and completion messages. Unknown messages are
// ignored and yield no command.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CreateMsg:
		m.lastErr = nil
		return m.CreateNote(msg.Parent)
	case DeleteMsg:
		m.lastErr = nil
		return m.Delete(msg.Path)
	case SetCurrentMsg:
		m.lastErr = nil
		return m.Open(msg.Path, msg.Name)
	case ExpandMsg:
		m.SetExpanded(msg.Path, msg.Expanded)
	case EditMsg:
		if m.current != nil {
			m.current.Apply(msg.Action)
		}
	case SwitchModeMsg:
		if m.current != nil {
			m.current.ToggleViewMode()
		}
	case ToggleBoldMsg:
		if m.current != nil {
			m.current.ToggleBold()
		}
	case SaveMsg:
		m.lastErr = nil
		return m.Save()
	case RefreshMsg:
		m.lastErr = nil
		return m.Scan()

	case TreeLoadedMsg:
		return m.onTreeLoaded(msg)
	case NoteCreatedMsg:
		return m.onNoteCreated(msg)
	case EntryDeletedMsg:
		return m.onEntryDeleted(msg)
	case NoteLoadedMsg:
		return m.onNoteLoaded(msg)
	case NoteSavedMsg:
		return m.onNoteSaved(msg)
	}
	return nil
}
