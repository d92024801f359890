// Package editor holds the state of the one note open for editing: its load
// phase, text buffer, derived preview and view mode.
package editor

import (
	"crypto/sha256"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tordek/darkstone/internal/format"
	"github.com/Tordek/darkstone/internal/handler"
	"github.com/Tordek/darkstone/internal/markdown"
	"github.com/Tordek/darkstone/internal/query"
)

type Mode int

const (
	ModeEdit Mode = iota
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "edit"
}

// LoadError is the Error payload of a session whose note could not be read.
type LoadError struct {
	Kind    handler.ErrorKind
	Message string
}

func (e LoadError) Error() string { return e.Message }

// ParseFunc derives preview blocks from note text. It must be pure.
type ParseFunc func(string) []markdown.Block

// Reader is the part of the file handler a session needs to load a note.
type Reader interface {
	ReadNote(path string) (string, error)
}

// LoadedMsg carries the outcome of the read started by Open.
type LoadedMsg struct {
	Gen  uint64
	Path string
	Text string
	Err  error
}

// State is the Loaded payload. Preview is recomputed on every text change.
type State struct {
	buf      *Buffer
	preview  []markdown.Block
	savedSum [sha256.Size]byte
	// newline is the line ending the note was loaded with. The buffer
	// always holds "\n"; raw text is rebuilt with this ending.
	newline string
}

func (st *State) raw() string {
	text := st.buf.Text()
	if st.newline == "\n" {
		return text
	}
	return strings.ReplaceAll(text, "\n", st.newline)
}

func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

type Session struct {
	path  string
	name  string
	gen   uint64
	phase query.Result[*State, LoadError]
	mode  Mode
	parse ParseFunc
}

// NewSession returns a Pending session. gen identifies the load that will
// complete it.
func NewSession(path, name string, gen uint64, parse ParseFunc) *Session {
	if parse == nil {
		parse = markdown.Parse
	}
	return &Session{path: path, name: name, gen: gen, parse: parse}
}

// Open creates a Pending session and the command that reads the note.
func Open(r Reader, path, name string, gen uint64, parse ParseFunc) (*Session, tea.Cmd) {
	s := NewSession(path, name, gen, parse)
	return s, func() tea.Msg {
		text, err := r.ReadNote(path)
		return LoadedMsg{Gen: gen, Path: path, Text: text, Err: err}
	}
}

func (s *Session) Path() string { return s.path }

func (s *Session) Name() string { return s.name }

func (s *Session) Gen() uint64 { return s.gen }

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) Phase() query.State { return s.phase.State() }

// Err returns the load error once the session has failed.
func (s *Session) Err() (LoadError, bool) { return s.phase.Err() }

// OnLoadComplete settles a Pending session. Completions for another
// generation or for a session that already settled are ignored and reported
// as false.
func (s *Session) OnLoadComplete(gen uint64, text string, err error) bool {
	if gen != s.gen || !s.phase.IsPending() {
		return false
	}

	if err != nil {
		kind := handler.KindOf(err)
		return s.phase.Fail(LoadError{
			Kind:    kind,
			Message: fmt.Sprintf("could not open %s: %s", s.name, kind),
		}) == nil
	}

	st := &State{
		buf:     NewBuffer(text),
		newline: lineEnding(text),
	}
	st.savedSum = sha256.Sum256([]byte(st.raw()))
	st.preview = s.parse(st.buf.Text())
	s.mode = ModeEdit
	return s.phase.Resolve(st) == nil
}

// Apply performs an edit action. It is a no-op unless the note is loaded and
// reports whether the text changed.
func (s *Session) Apply(a Action) bool {
	st, ok := s.phase.Value()
	if !ok {
		return false
	}
	if !st.buf.Perform(a) {
		return false
	}
	st.preview = s.parse(st.buf.Text())
	return true
}

func (s *Session) ToggleViewMode() bool {
	if !s.phase.IsLoaded() {
		return false
	}
	if s.mode == ModeEdit {
		s.mode = ModePreview
	} else {
		s.mode = ModeEdit
	}
	return true
}

// ToggleBold wraps the selection (or caret) in bold markers, or strips the
// markers already around it. The selection keeps covering the same text.
func (s *Session) ToggleBold() bool {
	st, ok := s.phase.Value()
	if !ok {
		return false
	}
	res := format.ToggleBold(st.buf.Text(), st.buf.Selection())
	st.buf.Reset(res.Text, res.Selection)
	st.preview = s.parse(st.buf.Text())
	return true
}

// Text returns the raw note text while loaded, with the line endings the
// note was loaded with.
func (s *Session) Text() (string, bool) {
	st, ok := s.phase.Value()
	if !ok {
		return "", false
	}
	return st.raw(), true
}

func (s *Session) Preview() []markdown.Block {
	st, ok := s.phase.Value()
	if !ok {
		return nil
	}
	return st.preview
}

// Dirty reports whether the text differs from what was last loaded or saved.
func (s *Session) Dirty() bool {
	st, ok := s.phase.Value()
	if !ok {
		return false
	}
	return sha256.Sum256([]byte(st.raw())) != st.savedSum
}

// MarkSaved records text as the content now on disk.
func (s *Session) MarkSaved(text string) {
	if st, ok := s.phase.Value(); ok {
		st.savedSum = sha256.Sum256([]byte(text))
	}
}

// View is a read-only snapshot for presentation.
type View struct {
	Path      string
	Name      string
	Phase     query.State
	Mode      Mode
	Err       string
	Text      string
	Lines     []string
	Cursor    Position
	Selection format.Span
	Preview   []markdown.Block
	Dirty     bool
}

func (s *Session) View() View {
	v := View{
		Path:  s.path,
		Name:  s.name,
		Phase: s.phase.State(),
		Mode:  s.mode,
	}
	if e, ok := s.phase.Err(); ok {
		v.Err = e.Message
	}
	if st, ok := s.phase.Value(); ok {
		v.Text = st.buf.Text()
		v.Lines = st.buf.Lines()
		v.Cursor = st.buf.CursorPosition()
		v.Selection = st.buf.Selection()
		v.Preview = st.preview
		v.Dirty = s.Dirty()
	}
	return v
}
