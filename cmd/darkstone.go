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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tordek/darkstone/internal/state"
	"github.com/Tordek/darkstone/pkg/cmd/root"
)

func Execute() {
	// Get Home Directory for locating config files
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	s, err := state.NewState(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	rootCmd, err := root.NewCmdRoot(s)
	if err != nil {
		_ = s.Close()
		fmt.Fprintf(os.Stderr, "failed to build commands: %v\n", err)
		os.Exit(1)
	}

	execErr := rootCmd.Execute()
	if err := s.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to shut down cleanly: %v\n", err)
	}
	if execErr != nil {
		os.Exit(1)
	}
}
