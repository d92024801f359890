// Package tree mirrors a notes directory in memory: each node lists the
// files and subdirectories directly inside it plus its expand/collapse flag.
// Every mutation is addressed by absolute path.
package tree

import (
	"path/filepath"
	"sort"

	"github.com/Tordek/darkstone/internal/pathutil"
)

type FileRef struct {
	Name string
	Path string
}

type Node struct {
	Name     string
	Path     string
	Expanded bool
	Files    []FileRef
	Children []*Node
}

// NewNode returns an empty, expanded directory node for path.
func NewNode(path string) *Node {
	path = pathutil.NormalizePath(path)
	return &Node{
		Name:     pathutil.DisplayName(path),
		Path:     path,
		Expanded: true,
	}
}

func NewFileRef(path string) FileRef {
	path = pathutil.NormalizePath(path)
	return FileRef{Name: pathutil.DisplayName(path), Path: path}
}

// Find returns the directory node at path, searching depth first.
func (n *Node) Find(path string) *Node {
	if n == nil {
		return nil
	}
	path = pathutil.NormalizePath(path)
	return n.find(path)
}

func (n *Node) find(path string) *Node {
	if n.Path == path {
		return n
	}
	for _, child := range n.Children {
		if found := child.find(path); found != nil {
			return found
		}
	}
	return nil
}

// SetExpanded sets the flag on the directory at path. It reports whether the
// directory was found; a missing path leaves the tree untouched.
func (n *Node) SetExpanded(path string, expanded bool) bool {
	dir := n.Find(path)
	if dir == nil {
		return false
	}
	dir.Expanded = expanded
	return true
}

// Contains reports whether path names this node, a directory or a file
// anywhere in the tree.
func (n *Node) Contains(path string) bool {
	if n == nil {
		return false
	}
	path = pathutil.NormalizePath(path)
	if n.Path == path {
		return true
	}
	parent := n.Find(parentOf(path))
	if parent == nil {
		return false
	}
	return parent.fileIndex(path) >= 0 || parent.childIndex(path) >= 0
}

// AddFile inserts ref into the directory at parent, keeping files sorted by
// name. Duplicate paths and unknown parents are rejected.
func (n *Node) AddFile(parent string, ref FileRef) bool {
	dir := n.Find(parent)
	if dir == nil || dir.fileIndex(ref.Path) >= 0 || dir.childIndex(ref.Path) >= 0 {
		return false
	}

	i := sort.Search(len(dir.Files), func(i int) bool {
		return dir.Files[i].Name >= ref.Name
	})
	dir.Files = append(dir.Files, FileRef{})
	copy(dir.Files[i+1:], dir.Files[i:])
	dir.Files[i] = ref
	return true
}

// AddDir inserts child into the directory at parent, keeping children
// sorted by name.
func (n *Node) AddDir(parent string, child *Node) bool {
	dir := n.Find(parent)
	if dir == nil || child == nil || dir.fileIndex(child.Path) >= 0 || dir.childIndex(child.Path) >= 0 {
		return false
	}

	i := sort.Search(len(dir.Children), func(i int) bool {
		return dir.Children[i].Name >= child.Name
	})
	dir.Children = append(dir.Children, nil)
	copy(dir.Children[i+1:], dir.Children[i:])
	dir.Children[i] = child
	return true
}

// Remove drops the file or directory subtree at path. The root itself cannot
// be removed.
func (n *Node) Remove(path string) bool {
	if n == nil {
		return false
	}
	path = pathutil.NormalizePath(path)
	dir := n.Find(parentOf(path))
	if dir == nil {
		return false
	}

	if i := dir.fileIndex(path); i >= 0 {
		dir.Files = append(dir.Files[:i], dir.Files[i+1:]...)
		return true
	}
	if i := dir.childIndex(path); i >= 0 {
		dir.Children = append(dir.Children[:i], dir.Children[i+1:]...)
		return true
	}
	return false
}

// Clone returns a deep copy that shares nothing with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Name:     n.Name,
		Path:     n.Path,
		Expanded: n.Expanded,
	}
	if n.Files != nil {
		out.Files = append([]FileRef(nil), n.Files...)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// ExpandedState records the flag of every directory below (and including) n.
func (n *Node) ExpandedState() map[string]bool {
	state := make(map[string]bool)
	n.walkDirs(func(dir *Node) {
		state[dir.Path] = dir.Expanded
	})
	return state
}

// ApplyExpanded restores flags saved by ExpandedState. Directories that did
// not exist before keep their current flag.
func (n *Node) ApplyExpanded(state map[string]bool) {
	n.walkDirs(func(dir *Node) {
		if expanded, ok := state[dir.Path]; ok {
			dir.Expanded = expanded
		}
	})
}

func (n *Node) walkDirs(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.walkDirs(fn)
	}
}

func (n *Node) fileIndex(path string) int {
	for i, f := range n.Files {
		if f.Path == path {
			return i
		}
	}
	return -1
}

func (n *Node) childIndex(path string) int {
	for i, c := range n.Children {
		if c.Path == path {
			return i
		}
	}
	return -1
}

func parentOf(path string) string {
	return filepath.Dir(path)
}
