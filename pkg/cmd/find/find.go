package find

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/fzf"
	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/internal/tui/notes"
)

func NewCmdFind(s *state.State) *cobra.Command {
	var print bool

	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f"},
		Short:   "Fuzzy find a note.",
		Long: heredoc.Doc(`
			Lists every note with a rendered preview and lets you pick one by
			fuzzy search. The chosen note opens in the browser, or with --print
			its path is written to stdout instead.

			Examples:
			  darkstone find
			  darkstone find plan --print
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(s.Handler, s.Renderer, s.ScanOptions(), "Select a note.")
			path, err := finder.Find(query)
			if print || errors.Is(err, fzf.ErrNoSelection) {
				fzf.PrintSelection(cmd.OutOrStdout(), path, err)
				return nil
			}
			if err != nil {
				return err
			}
			return notes.Run(s, path)
		},
	}

	cmd.Flags().BoolVarP(&print, "print", "p", false, "Print the selected path instead of opening it")
	return cmd
}
