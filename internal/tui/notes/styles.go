package notes

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	statusBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F55"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224"))

	dirStyle = lipgloss.NewStyle().Bold(true)

	treeStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	editorStyle = lipgloss.NewStyle().
			MarginLeft(1)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0AF")).
			Foreground(lipgloss.Color("#FFF"))

	selectionStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#335"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#667"))
)
