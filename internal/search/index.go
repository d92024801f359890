package search

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/Tordek/darkstone/internal/markdown"
	"github.com/Tordek/darkstone/internal/pathutil"
)

var (
	wikiLinkRe = regexp.MustCompile(`\[\[(.+?)\]\]`)
	mdLinkRe   = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\)`)
)

type document struct {
	Path     string
	Name     string
	Headings []string
	Links    []string
	Body     string
}

// Index stores searchable representations of notes.
type Index struct {
	fs   afero.Fs
	root string
	cfg  Config
	docs map[string]document
}

// NewIndex constructs an empty index rooted at the provided directory.
func NewIndex(fsys afero.Fs, root string, cfg Config) *Index {
	return &Index{
		fs:   fsys,
		root: pathutil.NormalizePath(root),
		cfg:  cfg,
		docs: make(map[string]document),
	}
}

func (idx *Index) Len() int { return len(idx.docs) }

// Build replaces the index contents using the provided note paths.
func (idx *Index) Build(paths []string) error {
	idx.docs = make(map[string]document, len(paths))
	for _, p := range paths {
		canonical := idx.normalize(p)
		if canonical == "" || idx.shouldIgnore(canonical) {
			continue
		}

		doc, err := idx.loadDocument(canonical)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("search: indexing %s: %w", canonical, err)
		}
		idx.docs[canonical] = doc
	}
	return nil
}

// Update refreshes the indexed representation of the provided path.
//
// The method gracefully handles files that have been removed and ignores
// directories that fall under configured ignore rules.
func (idx *Index) Update(path string) error {
	if idx == nil {
		return nil
	}

	canonical := idx.normalize(path)
	if canonical == "" {
		return nil
	}

	if idx.shouldIgnore(canonical) {
		return idx.Remove(canonical)
	}

	doc, err := idx.loadDocument(canonical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx.Remove(canonical)
		}
		return fmt.Errorf("search: indexing %s: %w", canonical, err)
	}

	if idx.docs == nil {
		idx.docs = make(map[string]document)
	}
	idx.docs[canonical] = doc
	return nil
}

// Remove deletes path, and everything indexed below it, from the index.
func (idx *Index) Remove(path string) error {
	if idx == nil {
		return nil
	}

	canonical := idx.normalize(path)
	if canonical == "" {
		return nil
	}

	for p := range idx.docs {
		if pathutil.Within(canonical, p) {
			delete(idx.docs, p)
		}
	}
	return nil
}

func (idx *Index) normalize(path string) string {
	if path == "" {
		return ""
	}
	return pathutil.Resolve(idx.root, path)
}

// Search returns the notes matching q. A note is reported once, for the
// first source it matches in: name, headings, links, then body. Results
// are ordered by that source and then by path.
func (idx *Index) Search(q Query) []Result {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	if len(idx.docs) == 0 || term == "" {
		return nil
	}

	results := make([]Result, 0)
	for _, doc := range idx.docs {
		if strings.Contains(strings.ToLower(doc.Name), term) {
			results = append(results, Result{Path: doc.Path, Snippet: doc.Name, MatchFrom: FromName})
			continue
		}

		if snippet, ok := matchAny(doc.Headings, term); ok {
			results = append(results, Result{Path: doc.Path, Snippet: snippet, MatchFrom: FromHeading})
			continue
		}

		if snippet, ok := matchAny(doc.Links, term); ok {
			results = append(results, Result{Path: doc.Path, Snippet: snippet, MatchFrom: FromLinks})
			continue
		}

		if idx.cfg.EnableBody {
			if snippet, ok := doc.matchBody(term); ok {
				results = append(results, Result{Path: doc.Path, Snippet: snippet, MatchFrom: FromBody})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := rank(results[i].MatchFrom), rank(results[j].MatchFrom)
		if ri != rj {
			return ri < rj
		}
		return results[i].Path < results[j].Path
	})
	return results
}

func rank(from string) int {
	switch from {
	case FromName:
		return 0
	case FromHeading:
		return 1
	case FromLinks:
		return 2
	default:
		return 3
	}
}

func (idx *Index) shouldIgnore(path string) bool {
	rel, err := pathutil.Relative(idx.root, path)
	if err != nil {
		return false
	}
	for _, segment := range strings.Split(rel, "/") {
		for _, ignored := range idx.cfg.IgnoredFolders {
			if ignored == "" {
				continue
			}
			if strings.EqualFold(segment, ignored) {
				return true
			}
		}
	}
	return false
}

func (idx *Index) loadDocument(path string) (document, error) {
	data, err := afero.ReadFile(idx.fs, path)
	if err != nil {
		return document{}, err
	}
	body := string(data)

	return document{
		Path:     path,
		Name:     pathutil.DisplayName(path),
		Headings: headings(markdown.Parse(body)),
		Links:    extractLinks(body),
		Body:     body,
	}, nil
}

func headings(blocks []markdown.Block) []string {
	var out []string
	for _, b := range blocks {
		if b.Kind == markdown.KindHeading {
			out = append(out, b.Text)
		}
		out = append(out, headings(b.Children)...)
	}
	return out
}

func matchAny(values []string, term string) (string, bool) {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return v, true
		}
	}
	return "", false
}

func (d document) matchBody(term string) (string, bool) {
	lowered := strings.ToLower(d.Body)
	idx := strings.Index(lowered, term)
	if idx == -1 {
		return "", false
	}
	runeStart := utf8.RuneCountInString(lowered[:idx])
	return bodySnippet(d.Body, runeStart, utf8.RuneCountInString(term)), true
}

func extractLinks(body string) []string {
	links := make(map[string]struct{})

	for _, match := range wikiLinkRe.FindAllStringSubmatch(body, -1) {
		if len(match) > 1 {
			links[strings.TrimSpace(match[1])] = struct{}{}
		}
	}
	for _, match := range mdLinkRe.FindAllStringSubmatch(body, -1) {
		if len(match) > 1 {
			links[strings.TrimSpace(match[1])] = struct{}{}
		}
	}

	out := make([]string, 0, len(links))
	for link := range links {
		out = append(out, link)
	}

	sort.Strings(out)
	return out
}

func bodySnippet(body string, index, termLen int) string {
	if termLen <= 0 {
		termLen = 1
	}

	runes := []rune(body)
	start := max(index, 0)
	end := min(index+termLen, len(runes))

	const window = 40
	snippetStart := max(0, start-window)
	snippetEnd := min(len(runes), end+window)

	snippet := string(runes[snippetStart:snippetEnd])
	snippet = strings.Join(strings.Fields(snippet), " ")
	if snippetStart > 0 {
		snippet = "…" + snippet
	}
	if snippetEnd < len(runes) {
		snippet = snippet + "…"
	}
	return snippet
}

// RelativePath is path relative to the index root, for display.
func (idx *Index) RelativePath(path string) string {
	rel, err := pathutil.Relative(idx.root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}
