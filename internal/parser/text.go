package parser

import (
	"bufio"
	"io"
	"strings"

	"gwcheck/internal/doctree"
)

// TextParser handles plain text files. Each line maps to one paragraph;
// blank lines are kept as blank paragraphs so the tree sees document
// whitespace the way the docx path does.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &Document{Title: titleFromFilename(filename)}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
			Text: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Trim trailing blank lines; they carry no structure.
	for len(out.Paragraphs) > 0 && strings.TrimSpace(out.Paragraphs[len(out.Paragraphs)-1].Text) == "" {
		out.Paragraphs = out.Paragraphs[:len(out.Paragraphs)-1]
	}
	return out, nil
}
