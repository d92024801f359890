package trash

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/pathutil"
	"github.com/Tordek/darkstone/internal/state"
	cmdpkg "github.com/Tordek/darkstone/pkg/cmd"
)

func NewCmdTrash(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash [path]",
		Short: "Move a note to the trash.",
		Long: heredoc.Doc(`
			This command moves a note, or a directory of notes, into the .trash
			directory of the notes directory, whatever the configured delete mode.
			Trashed entries keep their place relative to the notes directory.

			Example:
			  darkstone trash project/plan.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}
			path, err := cmdpkg.ResolveNotePath(s, args[0])
			if err != nil {
				return err
			}
			if pathutil.Same(path, s.Notes) || pathutil.Within(s.Handler.TrashDir(), path) {
				return fmt.Errorf("%s cannot be moved to the trash", path)
			}
			if err := s.Handler.Trash(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to the trash\n", path)
			return nil
		},
	}

	return cmd
}
