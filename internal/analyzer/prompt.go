package analyzer

import (
	"fmt"
	"strings"

	"gwcheck/internal/doctree"
)

// DefaultFormatRules is the built-in formatting requirement checked
// against every node. Deployments override it with their own standard.
const DefaultFormatRules = `拟稿部门或单位：没有附件时，则正文下空一行，右空四字；有附件时，则附件下空二行，右空四字。日期：用阿拉伯数字将年、月、日标全，年份应标全称，月、日不编虚位（即1不编为01），另起一行，位于拟稿部门或单位下方正中间。`

// NodeDetails renders the full Chinese field dump for one node, each line
// prefixed for nesting inside a context block.
func NodeDetails(n *doctree.Node, prefix string) string {
	a := n.Attrs
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s节点内容: %s\n", prefix, a.Text)
	fmt.Fprintf(&sb, "%s节点类型: %s\n", prefix, n.Role.Label())
	fmt.Fprintf(&sb, "%s字体: %s\n", prefix, a.Font)
	fmt.Fprintf(&sb, "%s字号: %s (%gpt)\n", prefix, doctree.FontSizeName(a.SizePt), a.SizePt)
	fmt.Fprintf(&sb, "%s加粗: %v\n", prefix, a.Bold)
	fmt.Fprintf(&sb, "%s行距: %s\n", prefix, a.Line.Label())
	fmt.Fprintf(&sb, "%s对齐方式: %s\n", prefix, a.Alignment.Label())
	fmt.Fprintf(&sb, "%s大纲级别: %s\n", prefix, doctree.OutlineLabel(a.OutlineLevel))
	fmt.Fprintf(&sb, "%s首行缩进: %s\n", prefix, charIndent(a.Indent.FirstLinePt, a))
	fmt.Fprintf(&sb, "%s悬挂缩进: %s\n", prefix, charIndent(a.Indent.HangingPt, a))
	fmt.Fprintf(&sb, "%s左缩进: %s\n", prefix, charIndent(a.Indent.LeftPt, a))
	fmt.Fprintf(&sb, "%s右缩进: %s\n", prefix, charIndent(a.Indent.RightPt, a))
	fmt.Fprintf(&sb, "%s段前间距: %g磅\n", prefix, a.SpaceBeforePt)
	fmt.Fprintf(&sb, "%s段后间距: %g磅\n", prefix, a.SpaceAfterPt)

	return sb.String()
}

func charIndent(pt float64, a doctree.ParagraphAttributes) string {
	return doctree.FormatChars(doctree.PtToChars(pt, a.SizePt, a.Font))
}

// ContextString renders the before/current/after window around node i of
// the flattened document, in document order.
func ContextString(nodes []*doctree.Node, i, before, after int) string {
	var sb strings.Builder
	sb.WriteString("=== 上下文信息 ===\n")

	start := i - before
	if start < 0 {
		start = 0
	}
	prev := nodes[start:i]
	if len(prev) > 0 {
		fmt.Fprintf(&sb, "\n前%d个节点:\n", before)
		for j, n := range prev {
			fmt.Fprintf(&sb, "\n前节点%d:\n", j+1)
			sb.WriteString(NodeDetails(n, "  "))
		}
	} else {
		sb.WriteString("\n前节点: 无\n")
	}

	sb.WriteString("\n当前节点:\n")
	sb.WriteString(NodeDetails(nodes[i], "  "))

	end := i + 1 + after
	if end > len(nodes) {
		end = len(nodes)
	}
	next := nodes[i+1 : end]
	if len(next) > 0 {
		fmt.Fprintf(&sb, "\n后%d个节点:\n", after)
		for j, n := range next {
			fmt.Fprintf(&sb, "\n后节点%d:\n", j+1)
			sb.WriteString(NodeDetails(n, "  "))
		}
	} else {
		sb.WriteString("\n后节点: 无\n")
	}

	return sb.String()
}

// buildAnalysisPrompt assembles the compliance-check prompt for one node.
func buildAnalysisPrompt(formatRules, nodeInfo, context string) string {
	var sb strings.Builder
	sb.WriteString("你是一个专业的文档格式检查专家。请分析以下文档节点的格式是否符合要求。\n\n")
	sb.WriteString("文档格式要求：\n")
	sb.WriteString(formatRules)
	sb.WriteString("\n\n当前节点信息：\n")
	sb.WriteString(nodeInfo)
	sb.WriteString("\n上下文信息：\n")
	sb.WriteString(context)
	sb.WriteString(`
请从以下几个方面进行分析：
1. 节点类型识别（是否为拟稿部门、日期等）
2. 格式合规性检查（字体、字号、对齐、缩进等）
3. 位置关系检查（是否符合文档结构要求）
4. 具体问题描述和建议

请用中文回答，格式要清晰易读。`)
	return sb.String()
}
