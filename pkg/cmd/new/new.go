package new

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/internal/tui/notes"
	cmdpkg "github.com/Tordek/darkstone/pkg/cmd"
	"github.com/Tordek/darkstone/pkg/shared/flags"
)

func NewCmdNew(s *state.State) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:     "new [directory]",
		Aliases: []string{"n"},
		Short:   "Create a new untitled note.",
		Long: heredoc.Doc(`
			Creates an empty note named "Untitled", or "Untitled 1", "Untitled 2"
			and so on when the name is taken, and prints its path.
			The note goes into the notes directory, or into the given directory
			relative to it. With --paste the clipboard becomes its content.

			Examples:
			  darkstone new
			  darkstone new project --open
			  darkstone new --paste
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			content, err := flags.HandlePaste(cmd)
			if err != nil {
				return err
			}
			path, err := run(s, dir, content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)

			if open {
				return notes.Run(s, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the new note in the browser")
	flags.AddPaste(cmd)
	return cmd
}

func run(s *state.State, dir, content string) (string, error) {
	parent, err := cmdpkg.ResolveNotePath(s, dir)
	if err != nil {
		return "", err
	}

	path, _, err := s.Handler.CreateNote(parent)
	if err != nil {
		return "", err
	}
	if content != "" {
		if err := s.Handler.WriteNote(path, content); err != nil {
			return "", err
		}
	}
	s.Logger.Info("note created", "path", path)
	return path, nil
}
