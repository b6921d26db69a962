package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"gwcheck/internal/doctree"
)

// PDFParser handles PDF files. PDFs carry no usable paragraph formatting
// for our purposes, so every extracted line becomes a paragraph with
// default attributes and classification falls back to text cues alone.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Document, error) {
	// The pdf library wants a path, so buffer the upload to a temp file.
	tmp, err := os.CreateTemp("", "gwcheck-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	out := &Document{Title: titleFromFilename(filename)}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
				Text: line,
			})
		}
	}

	if len(out.Paragraphs) == 0 {
		return nil, fmt.Errorf("no text extracted from pdf")
	}
	return out, nil
}
