package initialize

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tordek/darkstone/internal/config"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	focusedDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585b70"))
	blurredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8"))
	cursorStyle         = focusedStyle.Copy()
	noStyle             = lipgloss.NewStyle()
	helpStyle           = blurredStyle.Copy()
	cursorModeHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#cba6f7"))

	focusedButton = focusedStyle.Copy().Render("[ Submit ]")
	blurredButton = fmt.Sprintf(
		"[ %s ]",
		blurredStyle.Render("Submit"),
	)
)

const (
	inputNotesPath = iota
	inputExtension
	inputDeleteMode
	inputCount
)

type InitPromptModel struct {
	cfg        *config.Config
	inputs     []textinput.Model
	focusIndex int
	cursorMode cursor.Mode
	err        error
	done       bool
}

// InitialPrompt asks for the settings a first run would otherwise default.
// The current values of cfg are shown as placeholders.
func InitialPrompt(cfg *config.Config) InitPromptModel {
	m := InitPromptModel{
		cfg:    cfg,
		inputs: make([]textinput.Model, inputCount),
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.PlaceholderStyle = focusedDimStyle
		t.PromptStyle = noStyle
		t.CharLimit = 32

		switch i {
		case inputNotesPath:
			t.Prompt = "Notes Directory: "
			t.Placeholder = cfg.NotesPath
			t.CharLimit = 256
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case inputExtension:
			t.Prompt = "Note Extension: "
			t.Placeholder = cfg.Extension
			if t.Placeholder == "" {
				t.Placeholder = "none"
			}
		case inputDeleteMode:
			t.Prompt = "Delete Mode (remove/trash): "
			t.Placeholder = cfg.DeleteMode
		}

		m.inputs[i] = t
	}

	return m
}

func (m InitPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m InitPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+r":
			m.cursorMode++
			if m.cursorMode > cursor.CursorHide {
				m.cursorMode = cursor.CursorBlink
			}
			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				cmds[i] = m.inputs[i].Cursor.SetMode(m.cursorMode)
			}
			return m, tea.Batch(cmds...)

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				if err := m.submit(); err != nil {
					m.err = err
					return m, nil
				}
				m.done = true
				return m, tea.Quit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.focusInputs()
		}
	}

	cmd := m.updateInputs(msg)

	return m, cmd
}

func (m *InitPromptModel) focusInputs() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}
	return tea.Batch(cmds...)
}

func (m *InitPromptModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

// submit writes the entered values, keeping the current ones for blank
// inputs, and creates the notes directory.
func (m *InitPromptModel) submit() error {
	cfg := *m.cfg

	if v := strings.TrimSpace(m.inputs[inputExtension].Value()); v != "" {
		if v == "none" {
			v = ""
		}
		if v != "" && !strings.HasPrefix(v, ".") {
			v = "." + v
		}
		cfg.Extension = v
	}
	if v := strings.TrimSpace(m.inputs[inputDeleteMode].Value()); v != "" {
		cfg.DeleteMode = strings.ToLower(v)
	}

	notes := strings.TrimSpace(m.inputs[inputNotesPath].Value())
	if notes == "" {
		notes = cfg.NotesPath
	}
	if err := cfg.SetNotesPath(notes); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.NotesPath, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	*m.cfg = cfg
	return nil
}

func (m InitPromptModel) View() string {
	var b strings.Builder

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteRune('\n')
		}
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}
	fmt.Fprintf(&b, "\n\n%s\n\n", *button)

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("cursor mode is "))
	b.WriteString(cursorModeHelpStyle.Render(m.cursorMode.String()))
	b.WriteString(helpStyle.Render(" (ctrl+r to change style)"))
	b.WriteString(
		helpStyle.Render("\n(Leave inputs blank to keep the current values)"),
	)

	return b.String()
}

// Run shows the prompt and reports whether the configuration was saved.
func Run(cfg *config.Config) (bool, error) {
	final, err := tea.NewProgram(InitialPrompt(cfg)).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(InitPromptModel)
	return ok && m.done, nil
}
