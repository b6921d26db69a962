package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"gwcheck/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark. Headings carry
// their level as the outline level; every other block becomes a body
// paragraph with default attributes.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	out := &Document{Title: titleFromFilename(filename)}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
				Text:         string(node.Text(src)),
				OutlineLevel: node.Level,
				Bold:         true,
			})
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				t := extractText(item, src)
				if t != "" {
					out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
						Text: "• " + t,
					})
				}
			}
		default:
			t := extractText(n, src)
			if t != "" {
				out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
					Text: t,
				})
			}
		}
	}
	return out, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
