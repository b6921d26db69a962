package oracle

import (
	"fmt"
	"strings"

	"gwcheck/internal/doctree"
)

const classifyInstructions = `你是一个专业的公文文档结构分析专家。请分析以下文档节点的类型。`

const classifyCriteria = `请从以下类型中选择最合适的一个：
1. 发文标题 - 由单位名称、事由和文种组成，通常居中，字体较大
2. 主送机关 - 如："XX市人民政府："
3. 一级标题 - 如：一、二、三、等
4. 二级标题 - 如：（一）（二）等
5. 三级标题 - 如：1. 2. 3. 等
6. 四级标题 - 如：（1）（2）等
7. 普通段落 - 正文内容
8. 列表项 - 注意：不要将列表项误判为标题
9. 结尾 - 如："特此报告"、"特此请示"、"特此申请"等
10. 落款 - 发文单位名称和日期
11. 附件 - 附件说明，如："附件：1.XXXX"
12. 分隔符 - 如："———"、"＊＊＊"等
13. 空行 - 空行

判断标准：
- 发文标题：通常位于文档开头，居中对齐，包含事由和文种
- 主送机关：通常在标题下方，以机关名称开头，以冒号结尾
- 标题有明确的编号格式和层级关系
- 普通段落是正文内容，通常首行缩进2字
- 结尾：固定格式，如"特此报告"等
- 落款：包含发文单位和日期
- 附件：以"附件："开头
- 列表项：以项目符号或编号开头，但内容相对简短
- 分隔符：主要由符号组成的分割线

请只返回类型名称，不要包含其他内容。`

// buildPrompt assembles the classification prompt for one paragraph with
// its preceding context.
func buildPrompt(attrs doctree.ParagraphAttributes, preceding []doctree.ParagraphAttributes) string {
	var sb strings.Builder
	sb.WriteString(classifyInstructions)
	sb.WriteString("\n\n节点信息：\n")
	fmt.Fprintf(&sb, "- 内容: %s\n", attrs.Text)
	fmt.Fprintf(&sb, "- 字体: %s\n", attrs.Font)
	fmt.Fprintf(&sb, "- 字号: %gpt\n", attrs.SizePt)
	fmt.Fprintf(&sb, "- 加粗: %v\n", attrs.Bold)
	fmt.Fprintf(&sb, "- 对齐: %s\n", attrs.Alignment.Label())
	fmt.Fprintf(&sb, "- 大纲级别: %s\n", doctree.OutlineLabel(attrs.OutlineLevel))

	if len(preceding) > 0 {
		sb.WriteString("\n上下文节点:\n")
		for i, p := range preceding {
			fmt.Fprintf(&sb, "  节点%d: %s\n", i+1, snippet(p.Text, 50))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(classifyCriteria)
	return sb.String()
}

func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
