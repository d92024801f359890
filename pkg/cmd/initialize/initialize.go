/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/internal/tui/initialize"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize [notes_path]",
		Aliases: []string{"i", "init"},
		Short:   "Set up darkstone's configuration.",
		Long: heredoc.Doc(`
			Walks you through the settings stored in ~/.darkstone/config.yaml:
			the notes directory, the extension given to new notes and the
			delete mode. Passing a notes path skips the prompt and only moves
			the notes directory.

			Examples:
			  darkstone init
			  darkstone init ~/notes
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return setNotesPath(s, args[0], cmd)
			}

			saved, err := initialize.Run(s.Config)
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialization complete! Notes live in %s\n", s.Config.NotesPath)
			}
			return nil
		},
	}

	return cmd
}

func setNotesPath(s *state.State, path string, cmd *cobra.Command) error {
	if err := s.Config.SetNotesPath(path); err != nil {
		return fmt.Errorf("failed to update notes path: %w", err)
	}
	if err := os.MkdirAll(s.Config.NotesPath, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Notes directory set to %s\n", s.Config.NotesPath)
	return nil
}
