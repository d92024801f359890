package preview

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Tordek/darkstone/internal/markdown"
	"github.com/Tordek/darkstone/internal/state"
	cmdpkg "github.com/Tordek/darkstone/pkg/cmd"
)

func NewCmdPreview(s *state.State) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "preview [path]",
		Aliases: []string{"p", "cat"},
		Short:   "Print a note rendered as markdown.",
		Long: heredoc.Doc(`
			Renders a note the way the browser previews it and prints it.
			Output is wrapped to the terminal width, or to the configured
			preview.word_wrap when stdout is not a terminal.
			With --plain the note is printed as plain text blocks.

			Examples:
			  darkstone preview project/plan.md
			  darkstone preview a.md --plain
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args[0], plain, terminalWidth(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain text without styling")
	return cmd
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func run(s *state.State, arg string, plain bool, width int, out io.Writer) error {
	path, err := cmdpkg.ResolveNotePath(s, arg)
	if err != nil {
		return err
	}

	text, err := s.Handler.ReadNote(path)
	if err != nil {
		return err
	}

	if plain {
		fmt.Fprintln(out, markdown.Plain(markdown.Parse(text)))
		return nil
	}

	rendered, err := s.Renderer.Render(text, width)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
