package parser

import (
	"strings"
	"testing"

	"gwcheck/internal/doctree"
)

func TestHTMLParser(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>检查通知</title><style>p { color: red; }</style></head>
<body>
<script>console.log("skip me")</script>
<h1 style="text-align: center">关于开展检查的通知</h1>
<p align="center">市人民政府：</p>
<h2>一、总体要求</h2>
<p>正文<b>内容</b>。</p>
<ul><li>第一项</li><li>第二项</li></ul>
<footer>版权信息</footer>
</body>
</html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "检查通知" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}

	texts := make([]string, len(doc.Paragraphs))
	for i, para := range doc.Paragraphs {
		texts[i] = para.Text
	}
	want := []string{"关于开展检查的通知", "市人民政府：", "一、总体要求", "正文内容。", "第一项", "第二项"}
	if len(texts) != len(want) {
		t.Fatalf("expected %d paragraphs, got %v", len(want), texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("paragraph %d: expected %q, got %q", i, want[i], texts[i])
		}
	}

	h1 := doc.Paragraphs[0]
	if h1.OutlineLevel != 1 || !h1.Bold || h1.Alignment != doctree.AlignCenter {
		t.Errorf("unexpected h1 attributes: %+v", h1)
	}
	if doc.Paragraphs[1].Alignment != doctree.AlignCenter {
		t.Errorf("expected align attribute honored, got %+v", doc.Paragraphs[1])
	}
	if doc.Paragraphs[2].OutlineLevel != 2 {
		t.Errorf("expected h2 outline level 2, got %d", doc.Paragraphs[2].OutlineLevel)
	}
}

func TestHTMLParser_NoTitleFallsBackToFilename(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>hello</p>"), "/tmp/通知.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "通知" {
		t.Errorf("expected filename title, got %q", doc.Title)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"h1", 1}, {"h6", 6}, {"h7", 0}, {"p", 0}, {"header", 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.tag); got != tt.want {
			t.Errorf("headingLevel(%q): expected %d, got %d", tt.tag, tt.want, got)
		}
	}
}
