package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Tordek/darkstone/internal/pathutil"
)

// NotesChangedMsg reports an entry created, removed or renamed below the
// notes directory. Path is absolute.
type NotesChangedMsg struct {
	Path string
}

type NotesWatcherErrMsg struct {
	Err error
}

// NotesWatcher turns fsnotify events below the notes directory into tea
// messages. Start returns a command that yields one message; issue it again
// after each one to keep listening.
type NotesWatcher struct {
	watcher *fsnotify.Watcher
	root    string
	skip    []string
	done    chan struct{}
	once    sync.Once
}

// NewNotesWatcher watches root and every directory below it, except the
// directories in skip.
func NewNotesWatcher(root string, skip ...string) (*NotesWatcher, error) {
	normalized := pathutil.NormalizePath(root)
	if normalized == "" {
		return nil, errors.New("notes directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &NotesWatcher{
		watcher: w,
		root:    normalized,
		skip:    skip,
		done:    make(chan struct{}),
	}

	if err := watcher.addRecursive(normalized); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

func (w *NotesWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
					}
				}

				if !w.isRelevant(event) {
					continue
				}

				return NotesChangedMsg{Path: pathutil.NormalizePath(event.Name)}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return NotesWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *NotesWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

func (w *NotesWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if w.skipped(path) {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *NotesWatcher) skipped(path string) bool {
	for _, s := range w.skip {
		if pathutil.Within(s, path) {
			return true
		}
	}
	return false
}

// isRelevant keeps structural changes only. Writes to existing notes do not
// change the tree.
func (w *NotesWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	path := pathutil.NormalizePath(event.Name)
	if path == w.root || !pathutil.Within(w.root, path) {
		return false
	}
	return !w.skipped(path)
}
