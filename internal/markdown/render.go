package markdown

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/termenv"
)

const (
	DefaultStyle    = "dracula"
	DefaultWordWrap = 100
	cacheSize       = 64
)

type cacheKey struct {
	sum   [sha256.Size]byte
	width int
}

// Renderer styles notes for the terminal with glamour. Renderers are built
// lazily per wrap width and finished output is cached by content and width.
type Renderer struct {
	style   string
	wrap    int
	profile termenv.Profile

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
	cache     *lru.Cache[cacheKey, string]
}

type RendererOption func(*Renderer)

// WithColorProfile overrides the ANSI256 default, mostly for tests that
// want plain output.
func WithColorProfile(p termenv.Profile) RendererOption {
	return func(r *Renderer) { r.profile = p }
}

func NewRenderer(style string, wrap int, opts ...RendererOption) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	if wrap <= 0 {
		wrap = DefaultWordWrap
	}

	cache, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		style:     style,
		wrap:      wrap,
		profile:   termenv.ANSI256,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     cache,
	}
	for _, opt := range opts {
		opt(r)
	}

	if _, err := r.termRenderer(wrap); err != nil {
		return nil, fmt.Errorf("preview style %q: %w", style, err)
	}
	return r, nil
}

func (r *Renderer) Style() string { return r.style }

// Render returns source styled for a pane that is width cells wide. A width
// of zero or more than the configured wrap uses the configured wrap.
func (r *Renderer) Render(source string, width int) (string, error) {
	wrap := r.wrapFor(width)
	key := cacheKey{sum: sha256.Sum256([]byte(source)), width: wrap}
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tr, err := r.termRenderer(wrap)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(source)
	if err != nil {
		return "", err
	}

	r.cache.Add(key, out)
	return out, nil
}

// Cached reports whether source at width is already in the render cache.
func (r *Renderer) Cached(source string, width int) bool {
	return r.cache.Contains(cacheKey{sum: sha256.Sum256([]byte(source)), width: r.wrapFor(width)})
}

func (r *Renderer) wrapFor(width int) int {
	if width > 0 && width < r.wrap {
		return width
	}
	return r.wrap
}

func (r *Renderer) termRenderer(wrap int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[wrap]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(r.profile),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[wrap] = tr
	return tr, nil
}
