package state

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Tordek/darkstone/internal/config"
	"github.com/Tordek/darkstone/internal/constants"
	"github.com/Tordek/darkstone/internal/handler"
	"github.com/Tordek/darkstone/internal/logger"
	"github.com/Tordek/darkstone/internal/markdown"
	"github.com/Tordek/darkstone/internal/tree"
	"github.com/Tordek/darkstone/internal/workspace"
)

// State is everything a command needs, built once from the home directory.
type State struct {
	Config   *config.Config
	Home     string
	Notes    string
	Handler  *handler.FileHandler
	Renderer *markdown.Renderer
	Logger   *slog.Logger
	Watcher  *NotesWatcher

	closers []func() error
}

// NewState loads (or on first run writes) the configuration under home and
// builds the handler, renderer and logger from it.
func NewState(home string) (*State, error) {
	cfg, err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	s := &State{Config: cfg, Home: home, Notes: cfg.NotesPath}

	l, closeLog, err := logger.Setup(logger.Config{
		Dir:   filepath.Join(home, constants.ConfigDir),
		Debug: cfg.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	s.Logger = l
	s.closers = append(s.closers, closeLog)

	s.Handler = handler.NewFileHandler(
		cfg.NotesPath,
		handler.WithExtension(cfg.Extension),
		handler.WithDeleteMode(handler.DeleteMode(cfg.DeleteMode)),
	)

	r, err := markdown.NewRenderer(cfg.Preview.Style, cfg.Preview.WordWrap)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Renderer = r

	return s, nil
}

// ScanOptions are the tree scan settings derived from the configuration.
func (s *State) ScanOptions() tree.ScanOptions {
	return tree.ScanOptions{
		IgnoreHidden: s.Config.IgnoreHidden,
		Skip:         []string{s.Handler.TrashDir()},
	}
}

func (s *State) NewWorkspace() *workspace.Model {
	return workspace.New(
		s.Handler,
		workspace.WithLogger(s.Logger),
		workspace.WithScanOptions(s.ScanOptions()),
	)
}

// Watch starts the filesystem watcher for the notes directory. It is only
// needed by the TUI and is closed together with the state.
func (s *State) Watch() (*NotesWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	w, err := NewNotesWatcher(s.Notes, s.Handler.TrashDir())
	if err != nil {
		return nil, fmt.Errorf("failed to create notes watcher: %w", err)
	}
	s.Watcher = w
	return w, nil
}

// Close releases the watcher and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
