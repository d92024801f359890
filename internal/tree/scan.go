package tree

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Tordek/darkstone/internal/pathutil"
)

type ScanOptions struct {
	// IgnoreHidden skips entries whose name starts with a dot.
	IgnoreHidden bool
	// Skip lists absolute paths that are left out together with their
	// contents.
	Skip []string
}

func (o ScanOptions) skipped(path, name string) bool {
	if o.IgnoreHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, s := range o.Skip {
		if pathutil.Same(s, path) {
			return true
		}
	}
	return false
}

// Scan reads root and every directory below it. Entries come back sorted by
// name. Symlinks are classified without being followed, so a link to a
// directory shows up as a file. The first read error aborts the scan.
func Scan(fsys afero.Fs, root string, opts ScanOptions) (*Node, error) {
	node := NewNode(root)
	if err := scanInto(fsys, node, opts); err != nil {
		return nil, err
	}
	return node, nil
}

func scanInto(fsys afero.Fs, node *Node, opts ScanOptions) error {
	infos, err := afero.ReadDir(fsys, node.Path)
	if err != nil {
		return err
	}

	for _, info := range infos {
		path := filepath.Join(node.Path, info.Name())
		if opts.skipped(path, info.Name()) {
			continue
		}

		if !info.IsDir() {
			node.Files = append(node.Files, FileRef{Name: info.Name(), Path: path})
			continue
		}

		child := NewNode(path)
		if err := scanInto(fsys, child, opts); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}

	return nil
}
