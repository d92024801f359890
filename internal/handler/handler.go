package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Tordek/darkstone/internal/constants"
	"github.com/Tordek/darkstone/internal/pathutil"
)

type DeleteMode string

const (
	DeleteRemove DeleteMode = "remove"
	DeleteTrash  DeleteMode = "trash"
)

const maxNameAttempts = 10000

var (
	errNotDirectory = errors.New("not a directory")
	errNotesRoot    = errors.New("refusing to delete the notes directory")
	errNoFreeName   = errors.New("no free untitled name")
)

// FileHandler performs every filesystem operation on notes. It holds no
// state besides its configuration and is safe to call from background
// commands.
type FileHandler struct {
	fs       afero.Fs
	notesDir string
	ext      string
	mode     DeleteMode
}

type Option func(*FileHandler)

func WithFs(fsys afero.Fs) Option {
	return func(h *FileHandler) {
		if fsys != nil {
			h.fs = fsys
		}
	}
}

// WithExtension sets the suffix appended to generated note names.
func WithExtension(ext string) Option {
	return func(h *FileHandler) { h.ext = ext }
}

func WithDeleteMode(mode DeleteMode) Option {
	return func(h *FileHandler) {
		if mode != "" {
			h.mode = mode
		}
	}
}

func NewFileHandler(notesDir string, opts ...Option) *FileHandler {
	h := &FileHandler{
		fs:       afero.NewOsFs(),
		notesDir: pathutil.NormalizePath(notesDir),
		mode:     DeleteRemove,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *FileHandler) Fs() afero.Fs { return h.fs }

func (h *FileHandler) NotesDir() string { return h.notesDir }

// Mode is the configured delete mode.
func (h *FileHandler) Mode() DeleteMode { return h.mode }

func (h *FileHandler) TrashDir() string {
	return filepath.Join(h.notesDir, constants.TrashDir)
}

func (h *FileHandler) ReadNote(path string) (string, error) {
	data, err := afero.ReadFile(h.fs, path)
	if err != nil {
		return "", wrap("read", path, err)
	}
	return string(data), nil
}

func (h *FileHandler) WriteNote(path, content string) error {
	perm := fs.FileMode(0o644)
	if info, err := h.fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return wrap("write", path, afero.WriteFile(h.fs, path, []byte(content), perm))
}

// CreateNote creates an empty note in parent under the first free name of
// "Untitled", "Untitled 1", "Untitled 2", ... and returns its path and name.
func (h *FileHandler) CreateNote(parent string) (string, string, error) {
	parent = pathutil.NormalizePath(parent)

	info, err := h.fs.Stat(parent)
	if err != nil {
		return "", "", wrap("create", parent, err)
	}
	if !info.IsDir() {
		return "", "", wrap("create", parent, errNotDirectory)
	}

	for i := 0; i < maxNameAttempts; i++ {
		name := untitledName(i) + h.ext
		path := filepath.Join(parent, name)

		exists, err := afero.Exists(h.fs, path)
		if err != nil {
			return "", "", wrap("create", path, err)
		}
		if exists {
			continue
		}

		f, err := h.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", "", wrap("create", path, err)
		}
		if err := f.Close(); err != nil {
			return "", "", wrap("create", path, err)
		}

		return path, name, nil
	}

	return "", "", wrap("create", parent, errNoFreeName)
}

func untitledName(i int) string {
	if i == 0 {
		return constants.UntitledName
	}
	return fmt.Sprintf("%s %d", constants.UntitledName, i)
}

// Delete removes a note or a directory with everything below it. In trash
// mode the entry is moved under the trash directory instead, unless it is
// already there.
func (h *FileHandler) Delete(path string) error {
	path = pathutil.NormalizePath(path)
	if h.notesDir != "" && pathutil.Same(path, h.notesDir) {
		return wrap("delete", path, errNotesRoot)
	}

	info, err := h.fs.Stat(path)
	if err != nil {
		return wrap("delete", path, err)
	}

	if h.mode == DeleteTrash && !pathutil.Within(h.TrashDir(), path) {
		return h.Trash(path)
	}

	if info.IsDir() {
		return wrap("delete", path, h.fs.RemoveAll(path))
	}
	return wrap("delete", path, h.fs.Remove(path))
}

// Trash moves a note or directory to the trash directory, keeping its
// position relative to the notes directory.
func (h *FileHandler) Trash(path string) error {
	rel, err := filepath.Rel(h.notesDir, filepath.Dir(path))
	if err != nil {
		return wrap("trash", path, err)
	}

	trashDir := filepath.Join(h.TrashDir(), rel)
	if err := h.fs.MkdirAll(trashDir, os.ModePerm); err != nil {
		return wrap("trash", path, err)
	}

	dest := filepath.Join(trashDir, filepath.Base(path))
	for i := 1; i < maxNameAttempts; i++ {
		exists, err := afero.Exists(h.fs, dest)
		if err != nil {
			return wrap("trash", dest, err)
		}
		if !exists {
			break
		}
		dest = filepath.Join(trashDir, fmt.Sprintf("%s %d", filepath.Base(path), i))
	}

	return wrap("trash", path, h.fs.Rename(path, dest))
}
