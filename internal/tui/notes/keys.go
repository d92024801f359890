package notes

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	open        key.Binding
	collapse    key.Binding
	expand      key.Binding
	create      key.Binding
	remove      key.Binding
	refresh     key.Binding
	toggleFocus key.Binding
	leaveEditor key.Binding
	save        key.Binding
	switchMode  key.Binding
	bold        key.Binding
	paste       key.Binding
	quit        key.Binding
	forceQuit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open/toggle"),
		),
		collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d d", "delete"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		toggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		leaveEditor: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "tree"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		switchMode: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "edit/preview"),
		),
		bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) treeHelp() []key.Binding {
	return []key.Binding{k.open, k.create, k.remove, k.refresh, k.toggleFocus, k.quit}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.save, k.switchMode, k.bold, k.paste, k.leaveEditor}
}
