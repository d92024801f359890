package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/pathutil"
	"github.com/Tordek/darkstone/internal/state"
	notetree "github.com/Tordek/darkstone/internal/tree"
	cmdpkg "github.com/Tordek/darkstone/pkg/cmd"
)

func NewCmdTree(s *state.State) *cobra.Command {
	var dirsOnly bool

	cmd := &cobra.Command{
		Use:     "tree [directory]",
		Aliases: []string{"ls"},
		Short:   "Print the notes directory as a tree.",
		Long: heredoc.Doc(`
			Prints every note and directory below the notes directory, or below
			the given directory relative to it, in the order the browser shows
			them: notes first, then subdirectories, each sorted by name.

			Examples:
			  darkstone tree
			  darkstone tree project --dirs
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return run(s, dir, dirsOnly, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&dirsOnly, "dirs", "d", false, "Only print directories")
	return cmd
}

func run(s *state.State, dir string, dirsOnly bool, out io.Writer) error {
	root, err := cmdpkg.ResolveNotePath(s, dir)
	if err != nil {
		return err
	}

	node, err := notetree.Scan(s.Handler.Fs(), root, s.ScanOptions())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, pathutil.DisplayName(root)+"/")
	for _, row := range node.Rows() {
		if dirsOnly && !row.IsDir {
			continue
		}
		name := row.Name
		if row.IsDir {
			name += "/"
		}
		fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", row.Depth+1), name)
	}
	return nil
}
