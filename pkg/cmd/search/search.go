package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/constants"
	"github.com/Tordek/darkstone/internal/search"
	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/internal/tree"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:     "search [term]",
		Aliases: []string{"s", "grep"},
		Short:   "Search notes by name, heading, link or text.",
		Long: heredoc.Doc(`
			Searches every note for the term, ignoring case. Notes whose name
			matches come first, then headings, then links, then body text.
			Each match prints the note path, where it matched and a snippet.

			Examples:
			  darkstone search garden
			  darkstone search "weekly review" --names
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, strings.Join(args, " "), !namesOnly, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&namesOnly, "names", "n", false, "Only match names, headings and links")
	return cmd
}

func run(s *state.State, term string, body bool, out io.Writer) error {
	node, err := tree.Scan(s.Handler.Fs(), s.Notes, s.ScanOptions())
	if err != nil {
		return err
	}

	idx := search.NewIndex(s.Handler.Fs(), s.Notes, search.Config{
		EnableBody:     body,
		IgnoredFolders: []string{constants.TrashDir},
	})
	var paths []string
	for _, f := range node.AllFiles() {
		paths = append(paths, f.Path)
	}
	if err := idx.Build(paths); err != nil {
		return err
	}

	results := idx.Search(search.Query{Term: term})
	if len(results) == 0 {
		fmt.Fprintf(out, "No notes match %q\n", term)
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s [%s] %s\n", idx.RelativePath(r.Path), r.MatchFrom, r.Snippet)
	}
	return nil
}
