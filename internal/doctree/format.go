package doctree

import (
	"fmt"
	"math"
)

// fontSizeNames maps point sizes to the Chinese 字号 convention.
var fontSizeNames = map[float64]string{
	42:   "初号",
	36:   "小初",
	26:   "一号",
	24:   "小一",
	22:   "二号",
	18:   "小二",
	16:   "三号",
	15:   "小三",
	14:   "四号",
	12:   "小四",
	10.5: "五号",
	9:    "小五",
	7.5:  "六号",
	5.5:  "小六",
	5:    "七号",
}

// FontSizeName returns the 字号 name closest to the given point size.
func FontSizeName(pt float64) string {
	if pt <= 0 {
		pt = 12
	}
	bestPt := 0.0
	bestDiff := math.Inf(1)
	for size := range fontSizeNames {
		if d := math.Abs(size - pt); d < bestDiff {
			bestDiff = d
			bestPt = size
		}
	}
	return fontSizeNames[bestPt]
}

// fontWidthFactors give the character width of a font relative to its point
// size. CJK fonts render full-width; Latin fonts are narrower.
var fontWidthFactors = map[string]float64{
	"宋体":              1.0,
	"SimSun":          1.0,
	"仿宋":              1.0,
	"FangSong":        1.0,
	"仿宋_GB2312":       1.0,
	"黑体":              1.0,
	"SimHei":          1.0,
	"楷体":              1.0,
	"KaiTi":           1.0,
	"微软雅黑":            0.95,
	"Microsoft YaHei": 0.95,
	"Arial":           0.6,
	"Times New Roman": 0.6,
	"Calibri":         0.6,
	"Default":         1.0,
}

// cjkRenderAdjust corrects for Word rendering CJK glyphs slightly narrower
// than their nominal width.
const cjkRenderAdjust = 0.92

var cjkAdjustedFonts = map[string]bool{
	"宋体":        true,
	"SimSun":    true,
	"仿宋":        true,
	"FangSong":  true,
	"仿宋_GB2312": true,
	"Default":   true,
}

// CharWidthPt returns the width in points of one character of the given
// font at the given size.
func CharWidthPt(sizePt float64, font string) float64 {
	if sizePt <= 0 {
		sizePt = 12
	}
	factor, ok := fontWidthFactors[font]
	if !ok {
		factor = 1.0
	}
	w := sizePt * factor
	if cjkAdjustedFonts[font] {
		w *= cjkRenderAdjust
	}
	return w
}

// PtToChars converts a point measurement (an indent, typically) into
// character units for the given font and size, rounded to 0.1.
func PtToChars(pt, sizePt float64, font string) float64 {
	if pt <= 0 {
		return 0
	}
	return math.Round(pt/CharWidthPt(sizePt, font)*10) / 10
}

// FormatChars renders a character-unit value the way Word's dialog shows
// it: integral values without a decimal point, suffixed with 字.
func FormatChars(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d字", int(v))
	}
	return fmt.Sprintf("%.1f字", v)
}

// Label returns the Chinese display name of an alignment. Unspecified
// alignment displays as left-aligned, matching Word's default.
func (a Alignment) Label() string {
	switch a {
	case AlignCenter:
		return "居中"
	case AlignEnd:
		return "右对齐"
	case AlignJustify:
		return "两端对齐"
	case AlignDistribute:
		return "分散对齐"
	default:
		return "左对齐"
	}
}

// Label returns the Chinese display name of a line-spacing setting.
func (ls LineSpacing) Label() string {
	switch ls.Rule {
	case LineRuleAtLeast:
		return "最小值"
	case LineRuleExact:
		return "固定值"
	default:
		switch ls.Value {
		case 0, 1.0:
			return "单倍行距"
		case 1.5:
			return "1.5倍行距"
		case 2.0:
			return "2倍行距"
		default:
			return "多倍行距"
		}
	}
}

// OutlineLabel returns the Chinese display name of an outline level.
func OutlineLabel(level int) string {
	if level < 1 || level > 9 {
		return "正文文本"
	}
	return fmt.Sprintf("标题%d", level)
}
