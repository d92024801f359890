package remove

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tordek/darkstone/internal/state"
)

func newState(t *testing.T) *state.State {
	t.Helper()
	s, err := state.NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func writeNote(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("note"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func execute(t *testing.T, s *state.State, confirm confirmFunc, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCmdRemove(s, confirm)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SilenceUsage = true
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRemoveAsksFirst(t *testing.T) {
	s := newState(t)
	note := filepath.Join(s.Notes, "a.md")
	writeNote(t, note)

	asked := ""
	out, err := execute(t, s, func(path string) (bool, error) {
		asked = path
		return false, nil
	}, "a.md")
	if err != nil {
		t.Fatalf("rm returned error: %v", err)
	}
	if asked != note {
		t.Fatalf("expected confirmation for %s, got %q", note, asked)
	}
	if !strings.Contains(out, "Nothing deleted") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(note); err != nil {
		t.Fatalf("expected note to survive: %v", err)
	}
}

func TestRemoveWithYes(t *testing.T) {
	s := newState(t)
	dir := filepath.Join(s.Notes, "project")
	writeNote(t, filepath.Join(dir, "plan.md"))

	out, err := execute(t, s, func(string) (bool, error) {
		t.Fatal("expected no confirmation with --yes")
		return false, nil
	}, "project", "--yes")
	if err != nil {
		t.Fatalf("rm returned error: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected directory to be removed, got %v", err)
	}
	if !strings.Contains(out, "Deleted") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRemoveInTrashMode(t *testing.T) {
	t.Setenv("DARKSTONE_DELETE_MODE", "trash")
	s := newState(t)
	note := filepath.Join(s.Notes, "a.md")
	writeNote(t, note)

	out, err := execute(t, s, func(string) (bool, error) { return true, nil }, "a.md")
	if err != nil {
		t.Fatalf("rm returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Handler.TrashDir(), "a.md")); err != nil {
		t.Fatalf("expected note in the trash: %v", err)
	}
	if !strings.Contains(out, "trash") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRemoveRefusesRootAndMissing(t *testing.T) {
	s := newState(t)
	yes := func(string) (bool, error) { return true, nil }

	if _, err := execute(t, s, yes, "."); err == nil {
		t.Fatal("expected an error for the notes directory")
	}
	if _, err := execute(t, s, yes, "missing.md"); err == nil {
		t.Fatal("expected an error for a missing note")
	}
	if _, err := execute(t, s, yes); err == nil {
		t.Fatal("expected an error without a path")
	}
}

func TestRemovePropagatesPromptErrors(t *testing.T) {
	s := newState(t)
	writeNote(t, filepath.Join(s.Notes, "a.md"))
	boom := errors.New("no tty")

	if _, err := execute(t, s, func(string) (bool, error) { return false, boom }, "a.md"); !errors.Is(err, boom) {
		t.Fatalf("expected prompt error, got %v", err)
	}
}
