package analyzer

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/yuin/goldmark"

	"gwcheck/internal/doctree"
)

// Result is the analysis outcome for one node. Analysis is the model's
// markdown reply; Error is set instead when the node could not be checked.
type Result struct {
	Index    int          `json:"index"`
	Role     doctree.Role `json:"role"`
	Content  string       `json:"content"`
	Analysis string       `json:"analysis,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// Report is the full compliance-check output for one document.
type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	NodesTotal  int       `json:"nodes_total"`
	Analyzed    int       `json:"analyzed"`
	Failed      int       `json:"failed"`
	Results     []Result  `json:"results"`
}

// RenderHTML renders the report as a standalone HTML page, converting each
// node's markdown analysis with goldmark.
func (r *Report) RenderHTML() ([]byte, error) {
	var buf bytes.Buffer
	md := goldmark.New()

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"zh\">\n<head><meta charset=\"utf-8\">")
	fmt.Fprintf(&buf, "<title>%s</title></head>\n<body>\n", html.EscapeString(r.Title))
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(r.Title))
	fmt.Fprintf(&buf, "<p>共 %d 个节点，完成 %d，失败 %d。生成时间：%s</p>\n",
		r.NodesTotal, r.Analyzed, r.Failed, r.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, res := range r.Results {
		fmt.Fprintf(&buf, "<section>\n<h2>节点 %d（%s）</h2>\n", res.Index+1, html.EscapeString(res.Role.Label()))
		fmt.Fprintf(&buf, "<blockquote>%s</blockquote>\n", html.EscapeString(res.Content))
		if res.Error != "" {
			fmt.Fprintf(&buf, "<p class=\"error\">分析失败：%s</p>\n", html.EscapeString(res.Error))
		} else if err := md.Convert([]byte(res.Analysis), &buf); err != nil {
			return nil, fmt.Errorf("render analysis %d: %w", res.Index, err)
		}
		buf.WriteString("</section>\n")
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
