package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestCreateNoteGeneratesUntitledSequence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := NewFileHandler(dir)

	for i := 0; i < 4; i++ {
		want := "Untitled"
		if i > 0 {
			want = fmt.Sprintf("Untitled %d", i)
		}

		path, name, err := h.CreateNote(dir)
		if err != nil {
			t.Fatalf("CreateNote #%d returned error: %v", i, err)
		}
		if name != want {
			t.Fatalf("CreateNote #%d named %q, want %q", i, name, want)
		}
		if path != filepath.Join(dir, want) {
			t.Fatalf("CreateNote #%d path %q, want %q", i, path, filepath.Join(dir, want))
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
}

func TestCreateNoteFillsGaps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "Untitled"))
	mustWriteFile(t, filepath.Join(dir, "Untitled 2"))

	h := NewFileHandler(dir)
	_, name, err := h.CreateNote(dir)
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if name != "Untitled 1" {
		t.Fatalf("expected first free name 'Untitled 1', got %q", name)
	}
}

func TestCreateNoteUsesExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := NewFileHandler(dir, WithExtension(".md"))

	path, name, err := h.CreateNote(dir)
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if name != "Untitled.md" || filepath.Base(path) != "Untitled.md" {
		t.Fatalf("unexpected note %q at %q", name, path)
	}
}

func TestCreateNoteReportsPermissionDenied(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := NewFileHandler(dir, WithFs(afero.NewReadOnlyFs(afero.NewOsFs())))

	_, _, err := h.CreateNote(dir)
	if err == nil {
		t.Fatal("expected CreateNote to fail on a read-only filesystem")
	}
	if kind := KindOf(err); kind != KindPermission {
		t.Fatalf("expected permission denied, got %s (%v)", kind, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no files to be created, found %d", len(entries))
	}
}

func TestCreateNoteMissingParent(t *testing.T) {
	t.Parallel()

	h := NewFileHandler(t.TempDir())
	_, _, err := h.CreateNote(filepath.Join(t.TempDir(), "missing"))
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReadAndWriteNote(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	h := NewFileHandler("/notes", WithFs(fsys))
	if err := fsys.MkdirAll("/notes", 0o755); err != nil {
		t.Fatalf("failed to create notes dir: %v", err)
	}

	if err := h.WriteNote("/notes/a.md", "# hi\n"); err != nil {
		t.Fatalf("WriteNote returned error: %v", err)
	}
	got, err := h.ReadNote("/notes/a.md")
	if err != nil {
		t.Fatalf("ReadNote returned error: %v", err)
	}
	if got != "# hi\n" {
		t.Fatalf("unexpected content %q", got)
	}

	_, err = h.ReadNote("/notes/missing.md")
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Kind != KindNotFound {
		t.Fatalf("expected not-found IOError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped error to match fs.ErrNotExist, got %v", err)
	}
}

func TestDeleteRemovesFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	note := filepath.Join(dir, "note.md")
	nested := filepath.Join(dir, "project", "deep", "nested.md")
	mustWriteFile(t, note)
	mustWriteFile(t, nested)

	h := NewFileHandler(dir)

	if err := h.Delete(note); err != nil {
		t.Fatalf("Delete(file) returned error: %v", err)
	}
	if err := h.Delete(filepath.Join(dir, "project")); err != nil {
		t.Fatalf("Delete(dir) returned error: %v", err)
	}

	for _, p := range []string{note, filepath.Join(dir, "project")} {
		if _, err := os.Stat(p); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected %s to be gone, got %v", p, err)
		}
	}
}

func TestDeleteRefusesNotesRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := NewFileHandler(dir)
	if err := h.Delete(dir); err == nil {
		t.Fatal("expected deleting the notes directory to fail")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected notes directory to survive: %v", err)
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := NewFileHandler(dir)
	if kind := KindOf(h.Delete(filepath.Join(dir, "ghost.md"))); kind != KindNotFound {
		t.Fatalf("expected not found, got %s", kind)
	}
}

func TestDeleteReadOnlyFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	note := filepath.Join(dir, "keep.md")
	mustWriteFile(t, note)

	h := NewFileHandler(dir, WithFs(afero.NewReadOnlyFs(afero.NewOsFs())))
	if kind := KindOf(h.Delete(note)); kind != KindPermission {
		t.Fatalf("expected permission denied, got %s", kind)
	}
	if _, err := os.Stat(note); err != nil {
		t.Fatalf("expected note to survive failed delete: %v", err)
	}
}

func TestTrashModeMovesEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	note := filepath.Join(dir, "project", "nested.md")
	mustWriteFile(t, note)

	h := NewFileHandler(dir, WithDeleteMode(DeleteTrash))
	if err := h.Delete(note); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	trashed := filepath.Join(h.TrashDir(), "project", "nested.md")
	if _, err := os.Stat(trashed); err != nil {
		t.Fatalf("expected note in trash at %s: %v", trashed, err)
	}

	mustWriteFile(t, note)
	if err := h.Delete(note); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if _, err := os.Stat(trashed + " 1"); err != nil {
		t.Fatalf("expected colliding trash entry to be renamed: %v", err)
	}

	if err := h.Delete(trashed); err != nil {
		t.Fatalf("deleting from trash returned error: %v", err)
	}
	if _, err := os.Stat(trashed); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected trashed entry to be removed permanently, got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{err: fs.ErrNotExist, want: KindNotFound},
		{err: fmt.Errorf("wrapped: %w", fs.ErrPermission), want: KindPermission},
		{err: errors.New("disk on fire"), want: KindOther},
		{err: &IOError{Kind: KindPermission, Err: errors.New("x")}, want: KindPermission},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	mustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
