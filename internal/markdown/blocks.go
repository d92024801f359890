// Package markdown turns note text into the block list shown by the editor
// preview and renders notes for the terminal.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindCodeBlock
	KindQuote
	KindList
	KindListItem
	KindThematicBreak
	KindHTML
	KindOther
)

var kindNames = map[Kind]string{
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindCodeBlock:     "code",
	KindQuote:         "quote",
	KindList:          "list",
	KindListItem:      "item",
	KindThematicBreak: "break",
	KindHTML:          "html",
	KindOther:         "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Block is one top-level (or nested, for quotes and lists) piece of a
// document. Text holds the plain inline text for paragraphs and headings
// and the verbatim body for code and HTML blocks.
type Block struct {
	Kind     Kind
	Level    int
	Ordered  bool
	Language string
	Text     string
	Children []Block
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse never fails; empty input yields no blocks.
func Parse(source string) []Block {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	return children(doc, src)
}

func children(n ast.Node, src []byte) []Block {
	var out []Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convert(c, src))
	}
	return out
}

func convert(n ast.Node, src []byte) Block {
	switch node := n.(type) {
	case *ast.Heading:
		return Block{Kind: KindHeading, Level: node.Level, Text: inlineText(node, src)}
	case *ast.Paragraph, *ast.TextBlock:
		return Block{Kind: KindParagraph, Text: inlineText(node, src)}
	case *ast.FencedCodeBlock:
		return Block{
			Kind:     KindCodeBlock,
			Language: string(node.Language(src)),
			Text:     lines(node, src),
		}
	case *ast.CodeBlock:
		return Block{Kind: KindCodeBlock, Text: lines(node, src)}
	case *ast.Blockquote:
		return Block{Kind: KindQuote, Children: children(node, src)}
	case *ast.List:
		return Block{Kind: KindList, Ordered: node.IsOrdered(), Children: children(node, src)}
	case *ast.ListItem:
		return Block{Kind: KindListItem, Children: children(node, src)}
	case *ast.ThematicBreak:
		return Block{Kind: KindThematicBreak}
	case *ast.HTMLBlock:
		return Block{Kind: KindHTML, Text: lines(node, src)}
	default:
		return Block{Kind: KindOther, Text: inlineText(node, src), Children: blockChildren(node, src)}
	}
}

// blockChildren keeps nested blocks of unknown containers (GFM tables and
// the like) while skipping their inline content, which inlineText covers.
func blockChildren(n ast.Node, src []byte) []Block {
	var out []Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock {
			out = append(out, convert(c, src))
		}
	}
	return out
}

func lines(n ast.Node, src []byte) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node != n && node.Type() == ast.TypeBlock {
			return ast.WalkSkipChildren, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimRight(b.String(), "\n")
}

// Plain flattens blocks back into readable text, one block per line.
func Plain(blocks []Block) string {
	var b strings.Builder
	writePlain(&b, blocks, "")
	return strings.TrimRight(b.String(), "\n")
}

func writePlain(b *strings.Builder, blocks []Block, indent string) {
	for _, blk := range blocks {
		switch blk.Kind {
		case KindList:
			writePlain(b, blk.Children, indent)
		case KindListItem:
			b.WriteString(indent + "- ")
			writePlain(b, blk.Children, "")
		case KindQuote:
			writePlain(b, blk.Children, indent+"> ")
		case KindThematicBreak:
			b.WriteString(indent + "---\n")
		default:
			if blk.Text != "" {
				b.WriteString(indent + strings.TrimRight(blk.Text, "\n") + "\n")
			}
			writePlain(b, blk.Children, indent)
		}
	}
}
