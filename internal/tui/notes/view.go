package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tordek/darkstone/internal/editor"
	"github.com/Tordek/darkstone/internal/format"
	"github.com/Tordek/darkstone/internal/query"
)

const minTreeWidth = 24

func (m *Model) View() string {
	treePane := treeStyle.
		Width(m.treeWidth()).
		Height(m.bodyHeight() + 1).
		Render(m.treeView())
	editorPane := editorStyle.
		Width(m.editorWidth()).
		Height(m.bodyHeight() + 1).
		Render(m.editorView())

	layout := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, treePane, editorPane),
		m.statusView(),
		m.helpView(),
	)
	return appStyle.Render(layout)
}

func (m *Model) treeView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notes"))
	b.WriteByte('\n')

	tr := m.ws.Tree()
	switch tr.State() {
	case query.Pending:
		b.WriteString(m.spinner.View() + " Scanning notes...")
		return b.String()
	case query.Error:
		kind, _ := tr.Err()
		b.WriteString(errorStyle.Render(fmt.Sprintf("could not load notes: %s", kind)))
		b.WriteString("\n" + dimStyle.Render("press r to retry"))
		return b.String()
	}

	rows := m.ws.Rows()
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("No notes yet. Press n to create one."))
		return b.String()
	}

	end := min(len(rows), m.treeTop+m.bodyHeight())
	for i := m.treeTop; i < end; i++ {
		row := rows[i]
		marker := "  "
		name := row.Name
		if row.IsDir {
			marker = "▸ "
			if row.Expanded {
				marker = "▾ "
			}
			name = dirStyle.Render(name)
		}
		line := strings.Repeat("  ", row.Depth) + marker + name
		if i == m.cursor {
			line = selectedItemStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) editorView() string {
	cur := m.ws.Current()
	if cur == nil {
		return titleStyle.Render("Editor") + "\n" +
			dimStyle.Render("No note open. Select one and press enter.")
	}

	v := cur.View()
	header := titleStyle.Render(v.Name)
	if v.Dirty {
		header += statusBannerStyle.Render(" ●")
	}

	switch v.Phase {
	case query.Pending:
		return header + "\n" + m.spinner.View() + " Opening " + v.Name
	case query.Error:
		return header + "\n" + errorStyle.Render(v.Err)
	}

	header += dimStyle.Render(" [" + v.Mode.String() + "]")
	if v.Mode == editor.ModePreview {
		return header + "\n" + m.preview.View()
	}
	return header + "\n" + m.bufferView(v)
}

// bufferView draws the visible lines of the buffer with the caret and the
// selection highlighted.
func (m *Model) bufferView(v editor.View) string {
	offset := 0
	for i := 0; i < m.editorTop && i < len(v.Lines); i++ {
		offset += len([]rune(v.Lines[i])) + 1
	}

	end := min(len(v.Lines), m.editorTop+m.bodyHeight())
	out := make([]string, 0, end-m.editorTop)
	for i := m.editorTop; i < end; i++ {
		line := []rune(v.Lines[i])
		col := -1
		if i == v.Cursor.Line && m.focus == focusEditor {
			col = v.Cursor.Column
		}
		out = append(out, renderLine(line, offset, v.Selection, col))
		offset += len(line) + 1
	}
	return strings.Join(out, "\n")
}

// renderLine styles one buffer line. start is the offset of its first rune,
// cursor the caret column or -1.
func renderLine(line []rune, start int, sel format.Span, cursor int) string {
	var b strings.Builder
	for i, r := range line {
		if r == '\t' {
			r = ' '
		}
		ch := string(r)
		switch {
		case i == cursor:
			b.WriteString(cursorStyle.Render(ch))
		case !sel.Empty() && start+i >= sel.Start && start+i < sel.End:
			b.WriteString(selectionStyle.Render(ch))
		default:
			b.WriteString(ch)
		}
	}
	if cursor >= len(line) {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func (m *Model) statusView() string {
	if err := m.ws.LastError(); err != nil {
		return errorStyle.Render(err.Error())
	}
	if m.status != "" {
		return statusBannerStyle.Render(m.status)
	}
	return dimStyle.Render(m.ws.Root())
}

func (m *Model) helpView() string {
	if m.focus == focusEditor {
		return m.help.ShortHelpView(m.keys.editorHelp())
	}
	return m.help.ShortHelpView(m.keys.treeHelp())
}

func (m *Model) treeWidth() int {
	return max(minTreeWidth, m.width/3)
}

func (m *Model) editorWidth() int {
	h, _ := appStyle.GetFrameSize()
	w := m.width - h - m.treeWidth() - treeStyle.GetHorizontalFrameSize() - editorStyle.GetHorizontalFrameSize()
	return max(w, 10)
}

// bodyHeight is the number of content lines in either pane, below its title.
func (m *Model) bodyHeight() int {
	_, v := appStyle.GetFrameSize()
	return max(m.height-v-5, 1)
}

// editorOrigin is the screen cell of the first buffer character.
func (m *Model) editorOrigin() (int, int) {
	left := appStyle.GetPaddingLeft() + m.treeWidth() + treeStyle.GetHorizontalFrameSize() + editorStyle.GetMarginLeft()
	top := appStyle.GetPaddingTop() + 1
	return left, top
}
