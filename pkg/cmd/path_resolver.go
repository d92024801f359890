package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Tordek/darkstone/internal/pathutil"
	"github.com/Tordek/darkstone/internal/state"
)

// ResolveNotePath turns a command argument into an absolute path inside the
// notes directory. Relative arguments are taken relative to the notes
// directory, and an empty argument means the notes directory itself.
func ResolveNotePath(s *state.State, arg string) (string, error) {
	if s == nil || s.Config == nil {
		return "", fmt.Errorf("state configuration is not initialized")
	}
	notesDir := pathutil.NormalizePath(s.Notes)
	if notesDir == "" {
		return "", fmt.Errorf("notes directory is not configured")
	}

	resolved := pathutil.Resolve(notesDir, arg)
	if !filepath.IsAbs(resolved) {
		return "", fmt.Errorf("notes directory %q is not absolute", notesDir)
	}
	if !pathutil.Within(notesDir, resolved) {
		return "", fmt.Errorf("path %q is outside the notes directory %q", resolved, notesDir)
	}

	return resolved, nil
}
