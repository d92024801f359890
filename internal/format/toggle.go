// Package format implements inline Markdown emphasis toggling on plain text.
package format

import "github.com/Tordek/darkstone/internal/constants"

// Span is a half-open range of rune offsets. Start == End is a bare caret.
type Span struct {
	Start int
	End   int
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) normalize(length int) Span {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	s.Start = clamp(s.Start, 0, length)
	s.End = clamp(s.End, 0, length)
	return s
}

type Result struct {
	Text string
	// Selection covers the same logical text as the input span.
	Selection Span
	// Removed reports that an existing marker pair was stripped.
	Removed bool
}

// ToggleBold wraps or unwraps the span in "**".
func ToggleBold(text string, sel Span) Result {
	return Toggle(text, sel, constants.BoldMarker)
}

// Toggle adds a marker pair around sel, or removes the pair that already
// surrounds it. A bare caret only looks at the marker before it.
func Toggle(text string, sel Span, marker string) Result {
	runes := []rune(text)
	mark := []rune(marker)
	sel = sel.normalize(len(runes))

	if len(mark) == 0 {
		return Result{Text: text, Selection: sel}
	}

	if Wrapped(runes, sel, mark) {
		return unwrap(runes, sel, mark)
	}
	return wrap(runes, sel, mark)
}

// Wrapped reports whether sel is already enclosed by marker. Spans too close
// to either end of the text to fit a marker are never wrapped.
func Wrapped(text []rune, sel Span, marker []rune) bool {
	m := len(marker)
	if sel.Start < m || !hasAt(text, sel.Start-m, marker) {
		return false
	}
	if sel.Empty() {
		return true
	}
	if sel.End+m > len(text) {
		return false
	}
	return hasAt(text, sel.End, marker)
}

func unwrap(text []rune, sel Span, marker []rune) Result {
	m := len(marker)
	selected := text[sel.Start:sel.End]

	tail := text[sel.End:]
	if !sel.Empty() || hasAt(text, sel.End, marker) {
		tail = tail[m:]
	}

	out := make([]rune, 0, len(text))
	out = append(out, text[:sel.Start-m]...)
	out = append(out, selected...)
	out = append(out, tail...)

	return Result{
		Text:      string(out),
		Selection: Span{Start: sel.Start - m, End: sel.End - m},
		Removed:   true,
	}
}

func wrap(text []rune, sel Span, marker []rune) Result {
	m := len(marker)

	out := make([]rune, 0, len(text)+2*m)
	out = append(out, text[:sel.Start]...)
	out = append(out, marker...)
	out = append(out, text[sel.Start:sel.End]...)
	out = append(out, marker...)
	out = append(out, text[sel.End:]...)

	return Result{
		Text:      string(out),
		Selection: Span{Start: sel.Start + m, End: sel.End + m},
	}
}

func hasAt(text []rune, at int, marker []rune) bool {
	if at < 0 || at+len(marker) > len(text) {
		return false
	}
	for i, r := range marker {
		if text[at+i] != r {
			return false
		}
	}
	return true
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
