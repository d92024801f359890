package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/internal/tui/notes"
	cmdpkg "github.com/Tordek/darkstone/pkg/cmd"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes [path]",
		Aliases: []string{"browse", "b"},
		Short:   "Browse and edit notes in the terminal.",
		Long: heredoc.Doc(`
			Opens the note browser: the notes directory as a tree on the left and
			the selected note on the right, editable or rendered as a preview.
			An optional path, relative to the notes directory, is opened right away.

			Examples:
			  darkstone notes
			  darkstone notes project/plan.md
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args)
		},
	}

	return cmd
}

func run(s *state.State, args []string) error {
	initial := ""
	if len(args) == 1 {
		path, err := cmdpkg.ResolveNotePath(s, args[0])
		if err != nil {
			return err
		}
		initial = path
	}
	return notes.Run(s, initial)
}
