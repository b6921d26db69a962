package analyzer

import (
	"strings"
	"testing"
	"time"

	"gwcheck/internal/doctree"
)

func TestReport_RenderHTML(t *testing.T) {
	r := &Report{
		Title:       "关于<检查>的通知",
		GeneratedAt: time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC),
		NodesTotal:  2,
		Analyzed:    1,
		Failed:      1,
		Results: []Result{
			{Index: 0, Role: doctree.DocumentTitle, Content: "标题内容", Analysis: "格式**不符合**要求"},
			{Index: 1, Role: doctree.BodyParagraph, Content: "正文", Error: "timeout"},
		},
	}

	page, err := r.RenderHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(page)

	// Title is escaped, not injected.
	if strings.Contains(html, "关于<检查>") {
		t.Error("expected title to be escaped")
	}
	if !strings.Contains(html, "关于&lt;检查&gt;的通知") {
		t.Error("expected escaped title present")
	}

	// Markdown analysis is rendered.
	if !strings.Contains(html, "<strong>不符合</strong>") {
		t.Error("expected markdown bold converted to strong")
	}

	// Failed nodes show the error instead of an analysis.
	if !strings.Contains(html, "分析失败：timeout") {
		t.Error("expected failure note for errored node")
	}

	// Role labels head each section.
	if !strings.Contains(html, "发文标题") || !strings.Contains(html, "普通段落") {
		t.Error("expected role labels in section headers")
	}

	if !strings.Contains(html, "共 2 个节点，完成 1，失败 1") {
		t.Error("expected summary counts")
	}
}
