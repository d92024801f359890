package trash

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tordek/darkstone/internal/state"
)

func TestTrashCommandRequiresArgument(t *testing.T) {
	s := &state.State{}
	cmd := NewCmdTrash(s)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true

	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when no path argument is provided")
	}
}

func TestTrashMovesNote(t *testing.T) {
	s, err := state.NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	defer s.Close()

	note := filepath.Join(s.Notes, "project", "plan.md")
	if err := os.MkdirAll(filepath.Dir(note), 0o755); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	if err := os.WriteFile(note, []byte("plan"), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	cmd := NewCmdTrash(s)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{filepath.Join("project", "plan.md")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("trash returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.Handler.TrashDir(), "project", "plan.md")); err != nil {
		t.Fatalf("expected note in the trash: %v", err)
	}

	cmd = NewCmdTrash(s)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{filepath.Join(".trash", "project", "plan.md")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected trashing an entry already in the trash to fail")
	}
}
