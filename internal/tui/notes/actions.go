package notes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tordek/darkstone/internal/editor"
)

var motionKeys = map[tea.KeyType]editor.Action{
	tea.KeyLeft:           editor.Move(editor.MotionLeft),
	tea.KeyRight:          editor.Move(editor.MotionRight),
	tea.KeyUp:             editor.Move(editor.MotionUp),
	tea.KeyDown:           editor.Move(editor.MotionDown),
	tea.KeyCtrlLeft:       editor.Move(editor.MotionWordLeft),
	tea.KeyCtrlRight:      editor.Move(editor.MotionWordRight),
	tea.KeyHome:           editor.Move(editor.MotionLineStart),
	tea.KeyEnd:            editor.Move(editor.MotionLineEnd),
	tea.KeyCtrlHome:       editor.Move(editor.MotionDocStart),
	tea.KeyCtrlEnd:        editor.Move(editor.MotionDocEnd),
	tea.KeyShiftLeft:      editor.Select(editor.MotionLeft),
	tea.KeyShiftRight:     editor.Select(editor.MotionRight),
	tea.KeyShiftUp:        editor.Select(editor.MotionUp),
	tea.KeyShiftDown:      editor.Select(editor.MotionDown),
	tea.KeyCtrlShiftLeft:  editor.Select(editor.MotionWordLeft),
	tea.KeyCtrlShiftRight: editor.Select(editor.MotionWordRight),
	tea.KeyShiftHome:      editor.Select(editor.MotionLineStart),
	tea.KeyShiftEnd:       editor.Select(editor.MotionLineEnd),
	tea.KeyCtrlShiftHome:  editor.Select(editor.MotionDocStart),
	tea.KeyCtrlShiftEnd:   editor.Select(editor.MotionDocEnd),
	tea.KeyCtrlA:          editor.SelectAll(),
	tea.KeyEnter:          editor.Enter(),
	tea.KeyBackspace:      editor.Backspace(),
	tea.KeyDelete:         editor.Delete(),
	tea.KeySpace:          editor.Insert(' '),
}

// actionForKey maps a key press in the editor pane to an edit action.
func actionForKey(msg tea.KeyMsg) (editor.Action, bool) {
	if msg.Type == tea.KeyRunes {
		switch {
		case len(msg.Runes) == 0:
			return editor.Action{}, false
		case len(msg.Runes) == 1 && !msg.Paste:
			return editor.Insert(msg.Runes[0]), true
		default:
			return editor.Paste(string(msg.Runes)), true
		}
	}

	a, ok := motionKeys[msg.Type]
	return a, ok
}

// actionForMouse turns a left click or a drag inside the editor body into
// a caret or selection change. top is the first visible buffer line.
func actionForMouse(msg tea.MouseMsg, originX, originY, top int) (editor.Action, bool) {
	pos := editor.Position{Line: msg.Y - originY + top, Column: msg.X - originX}
	if pos.Line < 0 || pos.Column < 0 {
		return editor.Action{}, false
	}

	switch msg.Type {
	case tea.MouseLeft:
		return editor.Click(pos), true
	case tea.MouseMotion:
		return editor.Drag(pos), true
	default:
		return editor.Action{}, false
	}
}
