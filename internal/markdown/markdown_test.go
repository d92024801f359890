package markdown

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestParseEmpty(t *testing.T) {
	if blocks := Parse(""); len(blocks) != 0 {
		t.Fatalf("expected no blocks for empty input, got %d", len(blocks))
	}
}

func TestParseBlocks(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"",
		"Some **bold** text",
		"",
		"```go",
		"fmt.Println(1)",
		"```",
		"",
		"> quoted",
		"",
		"1. first",
		"2. second",
		"",
		"---",
	}, "\n")

	blocks := Parse(src)
	kinds := make([]Kind, 0, len(blocks))
	for _, b := range blocks {
		kinds = append(kinds, b.Kind)
	}
	want := []Kind{KindHeading, KindParagraph, KindCodeBlock, KindQuote, KindList, KindThematicBreak}
	if len(kinds) != len(want) {
		t.Fatalf("expected kinds %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("block %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}

	if blocks[0].Level != 1 || blocks[0].Text != "Title" {
		t.Fatalf("unexpected heading %+v", blocks[0])
	}
	if blocks[1].Text != "Some bold text" {
		t.Fatalf("expected inline markup stripped, got %q", blocks[1].Text)
	}
	if blocks[2].Language != "go" || blocks[2].Text != "fmt.Println(1)\n" {
		t.Fatalf("unexpected code block %+v", blocks[2])
	}
	if len(blocks[3].Children) != 1 || blocks[3].Children[0].Text != "quoted" {
		t.Fatalf("unexpected quote %+v", blocks[3])
	}

	list := blocks[4]
	if !list.Ordered || len(list.Children) != 2 {
		t.Fatalf("unexpected list %+v", list)
	}
	if item := list.Children[1]; item.Kind != KindListItem || item.Children[0].Text != "second" {
		t.Fatalf("unexpected list item %+v", item)
	}
}

func TestParseIsPure(t *testing.T) {
	src := "# a\n\nb\n"
	first := Plain(Parse(src))
	second := Plain(Parse(src))
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
	if first != "a\nb" {
		t.Fatalf("unexpected plain text %q", first)
	}
}

func TestPlainNested(t *testing.T) {
	got := Plain(Parse("- one\n- two\n\n> hi\n"))
	want := "- one\n- two\n> hi"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRendererRendersAndCaches(t *testing.T) {
	r, err := NewRenderer("notty", 80, WithColorProfile(termenv.Ascii))
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	src := "# Heading\n\nbody text\n"
	if r.Cached(src, 40) {
		t.Fatal("expected empty cache")
	}

	out, err := r.Render(src, 40)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "body text") {
		t.Fatalf("expected rendered output to contain the note, got %q", out)
	}
	if !r.Cached(src, 40) {
		t.Fatal("expected render to be cached")
	}
	if r.Cached(src, 60) {
		t.Fatal("expected cache to be keyed by width")
	}

	again, err := r.Render(src, 40)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if again != out {
		t.Fatal("expected cached output to match")
	}
}

func TestRendererClampsWidthToWrap(t *testing.T) {
	r, err := NewRenderer("notty", 30, WithColorProfile(termenv.Ascii))
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}
	if _, err := r.Render("x", 500); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !r.Cached("x", 0) {
		t.Fatal("expected wide and zero widths to share the configured wrap")
	}
}

func TestRendererRejectsUnknownStyle(t *testing.T) {
	if _, err := NewRenderer("no-such-style", 80); err == nil {
		t.Fatal("expected an unknown style to fail")
	}
}
