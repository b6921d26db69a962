package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"gwcheck/internal/doctree"
)

// HTMLParser handles HTML files. h1..h6 map to outline levels; paragraph
// elements become body paragraphs; centered alignment survives via the
// align attribute or an inline text-align style.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := &Document{Title: titleFromFilename(filename)}
	if title := findTitle(doc); title != "" {
		out.Title = title
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				t := textContent(n)
				if t != "" {
					out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
						Text:         t,
						OutlineLevel: level,
						Bold:         true,
						Alignment:    elementAlignment(n),
					})
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				t := textContent(n)
				if t != "" {
					out.Paragraphs = append(out.Paragraphs, doctree.ParagraphAttributes{
						Text:      t,
						Alignment: elementAlignment(n),
					})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return out, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func elementAlignment(n *html.Node) doctree.Alignment {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "align":
			return mapAlignment(attr.Val)
		case "style":
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "text-align:center") {
				return doctree.AlignCenter
			}
			if strings.Contains(style, "text-align:right") {
				return doctree.AlignEnd
			}
			if strings.Contains(style, "text-align:justify") {
				return doctree.AlignJustify
			}
		}
	}
	return doctree.AlignUnspecified
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(doc *html.Node) string {
	var title string
	var find func(*html.Node)
	find = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			title = textContent(n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	return title
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	return body
}
