package workspace

import (
	"github.com/Tordek/darkstone/internal/editor"
	"github.com/Tordek/darkstone/internal/tree"
)

// Intent messages emitted by the presentation layer.

// CreateMsg asks for a new Untitled note in Parent. An empty Parent means
// the notes directory.
type CreateMsg struct {
	Parent string
}

type DeleteMsg struct {
	Path string
}

type SetCurrentMsg struct {
	Path string
	Name string
}

type ExpandMsg struct {
	Path     string
	Expanded bool
}

type EditMsg struct {
	Action editor.Action
}

type SwitchModeMsg struct{}

type ToggleBoldMsg struct{}

type SaveMsg struct{}

type RefreshMsg struct{}

// Completion messages produced by the commands the model hands out.

type TreeLoadedMsg struct {
	Gen  uint64
	Root *tree.Node
	Err  error
}

type NoteCreatedMsg struct {
	Parent string
	Path   string
	Name   string
	Err    error
}

type EntryDeletedMsg struct {
	Path string
	Err  error
}

type NoteLoadedMsg = editor.LoadedMsg

type NoteSavedMsg struct {
	Gen  uint64
	Path string
	Text string
	Err  error
}
