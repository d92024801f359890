package tree

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
)

func buildVault(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := []string{
		"b.md",
		"a.md",
		"project/plan.md",
		"project/deep/notes.md",
		"journal/2024.md",
		".hidden/secret.md",
	}
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte("# "+name), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("failed to create empty dir: %v", err)
	}
	return root
}

func diskEntries(t *testing.T, root string, skipHidden bool) []Entry {
	t.Helper()

	var out []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if skipHidden && d.Name()[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		out = append(out, Entry{Path: path, IsDir: d.IsDir()})
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", root, err)
	}
	return out
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		default:
			return 0
		}
	})
}

func TestScanEnumeratesEveryEntry(t *testing.T) {
	root := buildVault(t)

	node, err := Scan(afero.NewOsFs(), root, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	got := node.Entries()
	want := diskEntries(t, root, false)
	sortEntries(got)
	sortEntries(want)

	if !slices.Equal(got, want) {
		t.Fatalf("scan entries mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestScanPreservesNestingAndDefaults(t *testing.T) {
	root := buildVault(t)

	node, err := Scan(afero.NewOsFs(), root, ScanOptions{IgnoreHidden: true})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if node.Name != filepath.Base(root) || !node.Expanded {
		t.Fatalf("unexpected root node %q expanded=%v", node.Name, node.Expanded)
	}

	names := func(refs []FileRef) []string {
		out := make([]string, 0, len(refs))
		for _, r := range refs {
			out = append(out, r.Name)
		}
		return out
	}
	if got := names(node.Files); !slices.Equal(got, []string{"a.md", "b.md"}) {
		t.Fatalf("expected sorted root files, got %v", got)
	}

	var dirs []string
	for _, c := range node.Children {
		dirs = append(dirs, c.Name)
		if !c.Expanded {
			t.Fatalf("expected %s to default to expanded", c.Name)
		}
	}
	if !slices.Equal(dirs, []string{"empty", "journal", "project"}) {
		t.Fatalf("expected hidden dir skipped and dirs sorted, got %v", dirs)
	}

	deep := node.Find(filepath.Join(root, "project", "deep"))
	if deep == nil {
		t.Fatal("expected nested directory to be found")
	}
	if len(deep.Files) != 1 || deep.Files[0].Path != filepath.Join(root, "project", "deep", "notes.md") {
		t.Fatalf("unexpected nested files %+v", deep.Files)
	}

	empty := node.Find(filepath.Join(root, "empty"))
	if empty == nil || len(empty.Files) != 0 || len(empty.Children) != 0 {
		t.Fatalf("expected an empty directory node, got %+v", empty)
	}
}

func TestScanSkipsConfiguredPaths(t *testing.T) {
	root := buildVault(t)

	node, err := Scan(afero.NewOsFs(), root, ScanOptions{Skip: []string{filepath.Join(root, "journal")}})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if node.Find(filepath.Join(root, "journal")) != nil {
		t.Fatal("expected skipped directory to be absent")
	}
}

func TestScanMissingRootFails(t *testing.T) {
	_, err := Scan(afero.NewMemMapFs(), "/nope", ScanOptions{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestSetExpandedRoundTrip(t *testing.T) {
	root := buildVault(t)
	node, err := Scan(afero.NewOsFs(), root, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	target := filepath.Join(root, "project", "deep")
	original := node.Find(target).Expanded
	before := node.ExpandedState()

	if !node.SetExpanded(target, true) || !node.SetExpanded(target, false) {
		t.Fatal("expected SetExpanded to find the directory")
	}
	if !node.SetExpanded(target, original) {
		t.Fatal("expected SetExpanded to find the directory")
	}
	if got := node.Find(target).Expanded; got != original {
		t.Fatalf("expected expanded=%v restored, got %v", original, got)
	}

	if node.SetExpanded(filepath.Join(root, "ghost"), false) {
		t.Fatal("expected missing path to report not found")
	}
	after := node.ExpandedState()
	for path, v := range before {
		if after[path] != v {
			t.Fatalf("expected %s untouched by missing path, got %v", path, after[path])
		}
	}
}

func TestAddFileKeepsOrderAndRejectsDuplicates(t *testing.T) {
	node := NewNode("/notes")
	node.AddDir("/notes", NewNode("/notes/sub"))

	for _, name := range []string{"c", "a", "b"} {
		if !node.AddFile("/notes/sub", NewFileRef("/notes/sub/"+name)) {
			t.Fatalf("expected AddFile(%s) to succeed", name)
		}
	}
	if node.AddFile("/notes/sub", NewFileRef("/notes/sub/a")) {
		t.Fatal("expected duplicate path to be rejected")
	}
	if node.AddFile("/notes/missing", NewFileRef("/notes/missing/x")) {
		t.Fatal("expected unknown parent to be rejected")
	}

	sub := node.Find("/notes/sub")
	var got []string
	for _, f := range sub.Files {
		got = append(got, f.Name)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted files, got %v", got)
	}
}

func TestRemoveFilesAndSubtrees(t *testing.T) {
	node := NewNode("/notes")
	node.AddFile("/notes", NewFileRef("/notes/top.md"))
	node.AddDir("/notes", NewNode("/notes/sub"))
	node.AddFile("/notes/sub", NewFileRef("/notes/sub/inner.md"))

	if !node.Contains("/notes/sub/inner.md") {
		t.Fatal("expected nested file to be contained")
	}
	if !node.Remove("/notes/top.md") {
		t.Fatal("expected file removal to succeed")
	}
	if !node.Remove("/notes/sub") {
		t.Fatal("expected subtree removal to succeed")
	}
	if node.Contains("/notes/sub/inner.md") || node.Contains("/notes/sub") {
		t.Fatal("expected subtree to be gone")
	}
	if node.Remove("/notes") {
		t.Fatal("expected root removal to be refused")
	}
	if node.Remove("/notes/ghost") {
		t.Fatal("expected unknown path removal to report false")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	node := NewNode("/notes")
	node.AddDir("/notes", NewNode("/notes/sub"))
	node.AddFile("/notes/sub", NewFileRef("/notes/sub/x"))

	clone := node.Clone()
	clone.SetExpanded("/notes/sub", false)
	clone.Remove("/notes/sub/x")

	if !node.Find("/notes/sub").Expanded {
		t.Fatal("expected original flag untouched")
	}
	if !node.Contains("/notes/sub/x") {
		t.Fatal("expected original file untouched")
	}
}

func TestRowsHonourExpanded(t *testing.T) {
	node := NewNode("/notes")
	node.AddFile("/notes", NewFileRef("/notes/readme"))
	node.AddDir("/notes", NewNode("/notes/sub"))
	node.AddFile("/notes/sub", NewFileRef("/notes/sub/inner"))

	rows := node.Rows()
	if len(rows) != 3 || rows[2].Depth != 1 || rows[2].Name != "inner" {
		t.Fatalf("unexpected expanded rows %+v", rows)
	}

	node.SetExpanded("/notes/sub", false)
	rows = node.Rows()
	if len(rows) != 2 || !rows[1].IsDir || rows[1].Expanded {
		t.Fatalf("unexpected collapsed rows %+v", rows)
	}

	if got := len(node.AllFiles()); got != 2 {
		t.Fatalf("expected AllFiles to ignore collapse, got %d", got)
	}
}

func TestApplyExpandedAcrossRescan(t *testing.T) {
	root := buildVault(t)
	fsys := afero.NewOsFs()

	first, err := Scan(fsys, root, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	first.SetExpanded(filepath.Join(root, "project"), false)

	second, err := Scan(fsys, root, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	second.ApplyExpanded(first.ExpandedState())

	if second.Find(filepath.Join(root, "project")).Expanded {
		t.Fatal("expected collapse state to carry over")
	}
	if !second.Find(filepath.Join(root, "journal")).Expanded {
		t.Fatal("expected other directories to stay expanded")
	}
}
