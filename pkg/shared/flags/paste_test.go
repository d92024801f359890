package flags

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
)

func TestHandlePaste(t *testing.T) {
	orig := ReadClipboard
	t.Cleanup(func() { ReadClipboard = orig })
	ReadClipboard = func() (string, error) { return "from clipboard", nil }

	cmd := &cobra.Command{Use: "test"}
	AddPaste(cmd)

	got, err := HandlePaste(cmd)
	if err != nil || got != "" {
		t.Fatalf("expected no content without --paste, got %q (%v)", got, err)
	}

	if err := cmd.Flags().Set("paste", "true"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	got, err = HandlePaste(cmd)
	if err != nil {
		t.Fatalf("HandlePaste returned error: %v", err)
	}
	if got != "from clipboard" {
		t.Fatalf("expected clipboard content, got %q", got)
	}

	ReadClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	if _, err := HandlePaste(cmd); err == nil {
		t.Fatal("expected clipboard errors to be returned")
	}
}
