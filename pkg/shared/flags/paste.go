package flags

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// ReadClipboard is swapped out in tests.
var ReadClipboard = clipboard.ReadAll

func AddPaste(cmd *cobra.Command) {
	cmd.Flags().
		Bool("paste", false, "Use the clipboard contents as the note content.")
}

// HandlePaste returns the clipboard contents when --paste is set, and an
// empty string otherwise.
func HandlePaste(cmd *cobra.Command) (string, error) {
	paste, err := cmd.Flags().GetBool("paste")
	if err != nil || !paste {
		return "", err
	}

	content, err := ReadClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return content, nil
}
