package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tordek/darkstone/internal/state"
)

func TestPreviewRendersNote(t *testing.T) {
	t.Setenv("DARKSTONE_PREVIEW_STYLE", "notty")
	s, err := state.NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	defer s.Close()

	note := filepath.Join(s.Notes, "plan.md")
	if err := os.WriteFile(note, []byte("# Plan\n\n- **first** step\n"), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	var out bytes.Buffer
	if err := run(s, "plan.md", false, 60, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Plan") || !strings.Contains(out.String(), "first") {
		t.Fatalf("expected rendered note, got %q", out.String())
	}

	out.Reset()
	if err := run(s, "plan.md", true, 0, &out); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "- first step") {
		t.Fatalf("expected plain list item, got %q", out.String())
	}

	if err := run(s, "missing.md", true, 0, &out); err == nil {
		t.Fatal("expected an error for a missing note")
	}
}
