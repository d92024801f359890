package fzf

import (
	"errors"
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Tordek/darkstone/internal/handler"
	"github.com/Tordek/darkstone/internal/markdown"
	"github.com/Tordek/darkstone/internal/pathutil"
	"github.com/Tordek/darkstone/internal/tree"
)

// ErrNoSelection is returned when the finder was closed without a pick.
var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder picks a note from the notes directory, showing a rendered
// preview of the highlighted one.
type FuzzyFinder struct {
	handler  *handler.FileHandler
	renderer *markdown.Renderer
	scanOpts tree.ScanOptions
	Header   string
	files    []string
	labels   []string
}

func NewFuzzyFinder(h *handler.FileHandler, r *markdown.Renderer, opts tree.ScanOptions, header string) *FuzzyFinder {
	return &FuzzyFinder{handler: h, renderer: r, scanOpts: opts, Header: header}
}

// Load scans the notes directory and builds the finder entries. Each
// entry is labelled with the note's first heading, when it has one, and
// its path relative to the notes directory.
func (f *FuzzyFinder) Load() error {
	root, err := tree.Scan(f.handler.Fs(), f.handler.NotesDir(), f.scanOpts)
	if err != nil {
		return fmt.Errorf("error listing notes: %w", err)
	}

	f.files = f.files[:0]
	f.labels = f.labels[:0]
	for _, ref := range root.AllFiles() {
		rel, err := pathutil.Relative(f.handler.NotesDir(), ref.Path)
		if err != nil {
			rel = ref.Name
		}

		label := rel
		if title := f.title(ref.Path); title != "" {
			label = fmt.Sprintf("%s (%s)", title, rel)
		}

		f.files = append(f.files, ref.Path)
		f.labels = append(f.labels, label)
	}
	return nil
}

func (f *FuzzyFinder) Files() []string { return f.files }

func (f *FuzzyFinder) Labels() []string { return f.labels }

func (f *FuzzyFinder) title(path string) string {
	text, err := f.handler.ReadNote(path)
	if err != nil {
		return ""
	}
	for _, b := range markdown.Parse(text) {
		if b.Kind == markdown.KindHeading {
			return b.Text
		}
	}
	return ""
}

// Find loads the notes and runs the finder, returning the chosen path.
func (f *FuzzyFinder) Find(query string) (string, error) {
	if err := f.Load(); err != nil {
		return "", err
	}
	if len(f.files) == 0 {
		return "", fmt.Errorf("no notes in %s", f.handler.NotesDir())
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.files, func(i int) string {
		return f.labels[i]
	}, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", fmt.Errorf("error selecting note: %w", err)
	}
	return f.files[idx], nil
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i < 0 || i >= len(f.files) {
		return ""
	}
	return f.Preview(f.files[i], w)
}

// Preview renders the note at path for a window of the given width.
func (f *FuzzyFinder) Preview(path string, width int) string {
	text, err := f.handler.ReadNote(path)
	if err != nil {
		return fmt.Sprintf("could not read note: %s", handler.KindOf(err))
	}

	out, err := f.renderer.Render(text, width)
	if err != nil {
		return markdown.Plain(markdown.Parse(text))
	}
	return out
}

// PrintSelection reports the outcome of Find the way the commands show it.
func PrintSelection(w io.Writer, path string, err error) {
	switch {
	case errors.Is(err, ErrNoSelection):
		fmt.Fprintln(w, "No note selected")
	case err != nil:
		fmt.Fprintln(w, "Error selecting note:", err)
	default:
		fmt.Fprintln(w, path)
	}
}
