package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"gwcheck/internal/doctree"
)

// DOCXParser handles .docx files. It is the primary input path: only
// WordprocessingML carries the full paragraph formatting the classifier
// and the compliance checker look at.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "gwcheck-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &Document{Title: titleFromFilename(filename)}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		out.Paragraphs = append(out.Paragraphs, paragraphAttributes(para))
	}
	return out, nil
}

// twips (1/20 pt) are the OOXML unit for indents and spacing.
const twipsPerPt = 20

func paragraphAttributes(para *docx.Paragraph) doctree.ParagraphAttributes {
	attrs := doctree.ParagraphAttributes{
		Text: docxParagraphText(para),
	}

	// Run-level formatting comes from the first run, falling back to the
	// paragraph-level run properties.
	var rp *docx.RunProperties
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		if run.RunProperties != nil {
			rp = run.RunProperties
		}
		break
	}
	pr := para.Properties
	if rp == nil && pr != nil {
		rp = pr.RunProperties
	}
	if rp != nil {
		attrs.Font = runFont(rp)
		attrs.SizePt = runSizePt(rp)
		attrs.Bold = rp.Bold != nil
	}

	if pr == nil {
		return attrs
	}
	if pr.Justification != nil {
		attrs.Alignment = mapAlignment(pr.Justification.Val)
	}
	if pr.Style != nil {
		attrs.OutlineLevel = headingStyleLevel(pr.Style.Val)
	}
	if ind := pr.Ind; ind != nil {
		// go-docx does not parse w:right, so RightPt stays zero.
		attrs.Indent = doctree.Indent{
			LeftPt:      indentPt(ind.Left, ind.LeftChars, attrs.SizePt),
			FirstLinePt: indentPt(ind.FirstLine, ind.FirstLineChars, attrs.SizePt),
			HangingPt:   indentPt(ind.Hanging, ind.HangingChars, attrs.SizePt),
		}
	}
	if sp := pr.Spacing; sp != nil {
		// Only w:before is exposed; w:after is not parsed.
		attrs.SpaceBeforePt = float64(sp.Before) / twipsPerPt
		attrs.Line = lineSpacing(sp)
	}
	return attrs
}

func runFont(rp *docx.RunProperties) string {
	if rp.Fonts == nil {
		return ""
	}
	if rp.Fonts.EastAsia != "" {
		return rp.Fonts.EastAsia
	}
	return rp.Fonts.ASCII
}

// runSizePt converts w:sz (half-points) to points.
func runSizePt(rp *docx.RunProperties) float64 {
	if rp.Size == nil {
		return 0
	}
	half, err := strconv.ParseFloat(rp.Size.Val, 64)
	if err != nil || half <= 0 {
		return 0
	}
	return half / 2
}

func mapAlignment(val string) doctree.Alignment {
	switch strings.ToLower(val) {
	case "center":
		return doctree.AlignCenter
	case "left", "start":
		return doctree.AlignStart
	case "right", "end":
		return doctree.AlignEnd
	case "both":
		return doctree.AlignJustify
	case "distribute":
		return doctree.AlignDistribute
	}
	return doctree.AlignUnspecified
}

// headingStyleLevel maps built-in heading style names to a 1-based outline
// level; anything else is body text.
func headingStyleLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if !strings.HasPrefix(s, "heading") {
		return doctree.OutlineBodyText
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "heading"))
	if err != nil || n < 1 || n > 9 {
		return doctree.OutlineBodyText
	}
	return n
}

// indentPt prefers the character-unit attribute (hundredths of a
// character) when present, since that is what Chinese documents use.
func indentPt(twips, hundredthChars int, sizePt float64) float64 {
	if hundredthChars != 0 {
		if sizePt <= 0 {
			sizePt = 12
		}
		return float64(hundredthChars) / 100 * sizePt
	}
	return float64(twips) / twipsPerPt
}

// lineSpacing interprets w:line/w:lineRule. With an auto rule the value is
// in 240ths of a line; otherwise it is in twips.
func lineSpacing(sp *docx.Spacing) doctree.LineSpacing {
	if sp.Line == 0 {
		return doctree.LineSpacing{Rule: doctree.LineRuleMultiple, Value: 1.0}
	}
	switch sp.LineRule {
	case "atLeast":
		return doctree.LineSpacing{Rule: doctree.LineRuleAtLeast, Value: float64(sp.Line) / twipsPerPt}
	case "exact":
		return doctree.LineSpacing{Rule: doctree.LineRuleExact, Value: float64(sp.Line) / twipsPerPt}
	default:
		return doctree.LineSpacing{Rule: doctree.LineRuleMultiple, Value: float64(sp.Line) / 240}
	}
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
