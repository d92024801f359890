package search

// Config describes index behavior.
type Config struct {
	// EnableBody controls whether the index searches note bodies in addition to
	// names, headings and links.
	EnableBody bool
	// IgnoredFolders contains directory names that should be skipped when
	// indexing. Paths containing any of these folders will not be indexed.
	IgnoredFolders []string
}

// Query represents a search request against the index.
type Query struct {
	// Term is the free-text query, matched case-insensitively.
	Term string
}

// Match sources, in ranking order.
const (
	FromName    = "name"
	FromHeading = "heading"
	FromLinks   = "links"
	FromBody    = "body"
)

// Result captures a document match from the index.
type Result struct {
	Path      string
	Snippet   string
	MatchFrom string
}
