package search

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tordek/darkstone/internal/state"
)

func newState(t *testing.T, files map[string]string) *state.State {
	t.Helper()

	s, err := state.NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	for name, body := range files {
		path := filepath.Join(s.Notes, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return s
}

func TestSearchPrintsMatches(t *testing.T) {
	s := newState(t, map[string]string{
		"garden.md":       "tomatoes",
		"project/plan.md": "# Plan\n\nwater the garden",
		".trash/old.md":   "garden",
	})

	var out bytes.Buffer
	if err := run(s, "garden", true, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 matches, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "garden.md [name]") {
		t.Fatalf("expected the name match first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "project/plan.md [body]") {
		t.Fatalf("expected the body match second, got %q", lines[1])
	}
}

func TestSearchWithoutBody(t *testing.T) {
	s := newState(t, map[string]string{
		"plan.md": "water the garden",
	})

	var out bytes.Buffer
	if err := run(s, "garden", false, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if out.String() != "No notes match \"garden\"\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
