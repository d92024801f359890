package editor

import (
	"strings"
	"unicode"

	"github.com/Tordek/darkstone/internal/format"
)

// Buffer is the editable text of a note plus caret and selection. Offsets
// are rune offsets; the selection runs from anchor to cursor.
type Buffer struct {
	text   []rune
	cursor int
	anchor int
	// goal is the column vertical motion tries to keep, -1 when unset.
	goal int
}

func NewBuffer(text string) *Buffer {
	return &Buffer{text: []rune(normalizeNewlines(text)), goal: -1}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (b *Buffer) Text() string { return string(b.text) }

func (b *Buffer) Len() int { return len(b.text) }

func (b *Buffer) Cursor() int { return b.cursor }

func (b *Buffer) CursorPosition() Position { return b.PositionOf(b.cursor) }

// Selection returns the selected span with Start <= End. It is empty when
// nothing is selected and then sits on the caret.
func (b *Buffer) Selection() format.Span {
	if b.anchor <= b.cursor {
		return format.Span{Start: b.anchor, End: b.cursor}
	}
	return format.Span{Start: b.cursor, End: b.anchor}
}

func (b *Buffer) HasSelection() bool { return b.anchor != b.cursor }

func (b *Buffer) SelectedText() string {
	sel := b.Selection()
	return string(b.text[sel.Start:sel.End])
}

// Reset swaps in new text and selects sel, with the caret at sel.End.
func (b *Buffer) Reset(text string, sel format.Span) {
	b.text = []rune(normalizeNewlines(text))
	b.anchor = clamp(sel.Start, 0, len(b.text))
	b.cursor = clamp(sel.End, 0, len(b.text))
	b.goal = -1
}

// Lines splits the text on newlines. A trailing newline yields a final empty
// line so the caret can sit there.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

// PositionOf converts a rune offset to a line and column.
func (b *Buffer) PositionOf(offset int) Position {
	offset = clamp(offset, 0, len(b.text))
	var pos Position
	for _, r := range b.text[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 0
			continue
		}
		pos.Column++
	}
	return pos
}

// Offset converts a position to a rune offset, clamping lines past the end
// of the text and columns past the end of their line.
func (b *Buffer) Offset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	start := 0
	for line := 0; line < pos.Line; line++ {
		next := b.lineEnd(start)
		if next >= len(b.text) {
			return len(b.text)
		}
		start = next + 1
	}
	return start + clamp(pos.Column, 0, b.lineEnd(start)-start)
}

// Perform applies a. It reports whether the text changed.
func (b *Buffer) Perform(a Action) bool {
	switch a.Kind {
	case ActionMove:
		if b.HasSelection() && (a.Motion == MotionLeft || a.Motion == MotionRight) {
			sel := b.Selection()
			b.cursor = sel.Start
			if a.Motion == MotionRight {
				b.cursor = sel.End
			}
			b.anchor = b.cursor
			b.goal = -1
			return false
		}
		b.move(a.Motion)
		b.anchor = b.cursor
	case ActionSelect:
		b.move(a.Motion)
	case ActionSelectAll:
		b.anchor, b.cursor, b.goal = 0, len(b.text), -1
	case ActionClick:
		b.cursor = b.Offset(a.Pos)
		b.anchor, b.goal = b.cursor, -1
	case ActionDrag:
		b.cursor, b.goal = b.Offset(a.Pos), -1
	case ActionInsert:
		return b.replaceSelection([]rune{a.Rune})
	case ActionPaste:
		return b.replaceSelection([]rune(normalizeNewlines(a.Text)))
	case ActionEnter:
		return b.replaceSelection([]rune{'\n'})
	case ActionBackspace:
		if b.HasSelection() {
			return b.replaceSelection(nil)
		}
		if b.cursor == 0 {
			return false
		}
		b.anchor = b.cursor - 1
		return b.replaceSelection(nil)
	case ActionDelete:
		if b.HasSelection() {
			return b.replaceSelection(nil)
		}
		if b.cursor == len(b.text) {
			return false
		}
		b.anchor = b.cursor + 1
		return b.replaceSelection(nil)
	}
	return false
}

func (b *Buffer) replaceSelection(with []rune) bool {
	sel := b.Selection()
	if sel.Empty() && len(with) == 0 {
		return false
	}

	out := make([]rune, 0, len(b.text)-(sel.End-sel.Start)+len(with))
	out = append(out, b.text[:sel.Start]...)
	out = append(out, with...)
	out = append(out, b.text[sel.End:]...)

	b.text = out
	b.cursor = sel.Start + len(with)
	b.anchor = b.cursor
	b.goal = -1
	return true
}

func (b *Buffer) move(m Motion) {
	if m != MotionUp && m != MotionDown {
		b.goal = -1
	}

	switch m {
	case MotionLeft:
		if b.cursor > 0 {
			b.cursor--
		}
	case MotionRight:
		if b.cursor < len(b.text) {
			b.cursor++
		}
	case MotionUp, MotionDown:
		pos := b.PositionOf(b.cursor)
		if b.goal < 0 {
			b.goal = pos.Column
		}
		if m == MotionUp {
			if pos.Line == 0 {
				b.cursor = 0
				return
			}
			pos.Line--
		} else {
			if b.lineEnd(b.cursor) == len(b.text) {
				b.cursor = len(b.text)
				return
			}
			pos.Line++
		}
		pos.Column = b.goal
		b.cursor = b.Offset(pos)
	case MotionWordLeft:
		i := b.cursor
		for i > 0 && unicode.IsSpace(b.text[i-1]) {
			i--
		}
		for i > 0 && !unicode.IsSpace(b.text[i-1]) {
			i--
		}
		b.cursor = i
	case MotionWordRight:
		i := b.cursor
		for i < len(b.text) && unicode.IsSpace(b.text[i]) {
			i++
		}
		for i < len(b.text) && !unicode.IsSpace(b.text[i]) {
			i++
		}
		b.cursor = i
	case MotionLineStart:
		b.cursor = b.lineStart(b.cursor)
	case MotionLineEnd:
		b.cursor = b.lineEnd(b.cursor)
	case MotionDocStart:
		b.cursor = 0
	case MotionDocEnd:
		b.cursor = len(b.text)
	}
}

func (b *Buffer) lineStart(offset int) int {
	for offset > 0 && b.text[offset-1] != '\n' {
		offset--
	}
	return offset
}

func (b *Buffer) lineEnd(offset int) int {
	for offset < len(b.text) && b.text[offset] != '\n' {
		offset++
	}
	return offset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
