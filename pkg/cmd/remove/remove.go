package remove

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/handler"
	"github.com/Tordek/darkstone/internal/pathutil"
	"github.com/Tordek/darkstone/internal/state"
	cmdpkg "github.com/Tordek/darkstone/pkg/cmd"
)

// confirmFunc asks whether path should really be deleted.
type confirmFunc func(path string) (bool, error)

func promptConfirm(path string) (bool, error) {
	prompt := confirmation.New(
		fmt.Sprintf("Delete %s?", pathutil.DisplayName(path)),
		confirmation.No,
	)
	return prompt.RunPrompt()
}

func NewCmdRemove(s *state.State) *cobra.Command {
	return newCmdRemove(s, promptConfirm)
}

func newCmdRemove(s *state.State, confirm confirmFunc) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [path]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note or a directory of notes.",
		Long: heredoc.Doc(`
			Deletes a note, or a directory with everything in it, using the
			configured delete mode: "remove" deletes from disk, "trash" moves the
			entry into the .trash directory of the notes directory.

			Examples:
			  darkstone rm "Untitled 2"
			  darkstone rm project --yes
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmdpkg.ResolveNotePath(s, args[0])
			if err != nil {
				return err
			}
			if pathutil.Same(path, s.Notes) {
				return fmt.Errorf("refusing to delete the notes directory itself")
			}

			if !yes {
				ok, err := confirm(path)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
					return nil
				}
			}

			return run(s, path, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func run(s *state.State, path string, out io.Writer) error {
	trashed := s.Handler.Mode() == handler.DeleteTrash && !pathutil.Within(s.Handler.TrashDir(), path)
	if err := s.Handler.Delete(path); err != nil {
		return err
	}
	s.Logger.Info("entry deleted", "path", path, "trashed", trashed)

	if trashed {
		fmt.Fprintf(out, "Moved %s to the trash\n", path)
		return nil
	}
	fmt.Fprintf(out, "Deleted %s\n", path)
	return nil
}
