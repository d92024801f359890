package tree

// Entry is one filesystem entry reached from a tree, used when the whole
// tree has to be compared against disk.
type Entry struct {
	Path  string
	IsDir bool
}

// Entries lists every file and directory below n (n itself excluded) in
// depth-first order, ignoring the expanded flags.
func (n *Node) Entries() []Entry {
	var out []Entry
	n.entries(&out)
	return out
}

func (n *Node) entries(out *[]Entry) {
	if n == nil {
		return
	}
	for _, f := range n.Files {
		*out = append(*out, Entry{Path: f.Path})
	}
	for _, c := range n.Children {
		*out = append(*out, Entry{Path: c.Path, IsDir: true})
		c.entries(out)
	}
}

// Row is one visible line of the tree as a list view draws it.
type Row struct {
	Depth    int
	Name     string
	Path     string
	IsDir    bool
	Expanded bool
}

// Rows flattens the visible part of the tree below n: files first, then
// subdirectories, whose contents only appear while they are expanded.
func (n *Node) Rows() []Row {
	var out []Row
	n.rows(0, &out)
	return out
}

func (n *Node) rows(depth int, out *[]Row) {
	if n == nil {
		return
	}
	for _, f := range n.Files {
		*out = append(*out, Row{Depth: depth, Name: f.Name, Path: f.Path})
	}
	for _, c := range n.Children {
		*out = append(*out, Row{
			Depth:    depth,
			Name:     c.Name,
			Path:     c.Path,
			IsDir:    true,
			Expanded: c.Expanded,
		})
		if c.Expanded {
			c.rows(depth+1, out)
		}
	}
}

// AllFiles lists every note path below n regardless of expanded flags.
func (n *Node) AllFiles() []FileRef {
	var out []FileRef
	n.walkDirs(func(dir *Node) {
		out = append(out, dir.Files...)
	})
	return out
}
