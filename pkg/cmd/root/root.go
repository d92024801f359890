package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/constants"
	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/pkg/cmd/find"
	"github.com/Tordek/darkstone/pkg/cmd/initialize"
	"github.com/Tordek/darkstone/pkg/cmd/new"
	"github.com/Tordek/darkstone/pkg/cmd/notes"
	"github.com/Tordek/darkstone/pkg/cmd/preview"
	"github.com/Tordek/darkstone/pkg/cmd/remove"
	"github.com/Tordek/darkstone/pkg/cmd/search"
	"github.com/Tordek/darkstone/pkg/cmd/trash"
	"github.com/Tordek/darkstone/pkg/cmd/tree"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     constants.AppName,
		Aliases: []string{"ds"},
		Short:   "A terminal notebook for a directory of markdown notes.",
		Long: heredoc.Doc(`
			darkstone shows a directory of notes as a tree, lets you create,
			delete and edit notes, and previews them as rendered markdown.

			Run without a command to open the note browser.
		`),
		Version:      constants.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),

		// Run the browser by default
		RunE: notes.NewCmdNotes(s).RunE,
	}
	cmd.SetUsageTemplate(constants.Help)

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		notes.NewCmdNotes(s),
		new.NewCmdNew(s),
		remove.NewCmdRemove(s),
		trash.NewCmdTrash(s),
		tree.NewCmdTree(s),
		find.NewCmdFind(s),
		search.NewCmdSearch(s),
		preview.NewCmdPreview(s),
	)

	return cmd, nil
}
