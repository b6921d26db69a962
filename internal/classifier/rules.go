package classifier

import (
	"regexp"
	"strings"
	"unicode"

	"gwcheck/internal/doctree"
)

// Config carries the tunable surface of the rule-based classifier. The
// point thresholds follow the GB-convention 字号 mapping, so they are
// configuration, not constants.
type Config struct {
	// Emphasis thresholds for heading-by-style inference (points).
	H1BoldSizePt float64
	H2BoldSizePt float64
	H3BoldSizePt float64

	// Minimum size of a centered document title (points).
	TitleMinSizePt float64

	// Maximum length of a list item, in runes.
	ListMaxRunes int

	ClosingPhrases  []string
	OrgKeywords     []string
	DocTypeKeywords []string

	// Separator detection: the rule-glyph set, the per-glyph repetition
	// thresholds, and the distinct-character coverage cutoff.
	SeparatorGlyphs   string
	GlyphRepeat       map[rune]int
	DefaultRepeat     int
	CoverageRatio     float64
	MinSeparatorRunes int

	// Number of preceding paragraphs offered to the oracle as context.
	ContextBefore int
}

// DefaultConfig returns the canonical thresholds and keyword lists.
func DefaultConfig() Config {
	return Config{
		H1BoldSizePt:   16,
		H2BoldSizePt:   14,
		H3BoldSizePt:   12,
		TitleMinSizePt: 16,
		ListMaxRunes:   100,

		ClosingPhrases: []string{
			"特此报告", "特此请示", "特此申请", "特此函告", "特此通知", "特此通报",
		},
		OrgKeywords: []string{
			"政府", "委员会", "局", "厅", "部", "院", "处", "科", "司", "公司", "单位",
		},
		DocTypeKeywords: []string{
			"报告", "请示", "申请", "通知", "通报", "函", "意见", "决定", "通告", "公告", "令",
		},

		SeparatorGlyphs:   "—―-_*＊×※＝=",
		GlyphRepeat:       map[rune]int{'-': 5, '_': 5},
		DefaultRepeat:     3,
		CoverageRatio:     0.8,
		MinSeparatorRunes: 3,

		ContextBefore: 3,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.H1BoldSizePt <= 0 {
		c.H1BoldSizePt = d.H1BoldSizePt
	}
	if c.H2BoldSizePt <= 0 {
		c.H2BoldSizePt = d.H2BoldSizePt
	}
	if c.H3BoldSizePt <= 0 {
		c.H3BoldSizePt = d.H3BoldSizePt
	}
	if c.TitleMinSizePt <= 0 {
		c.TitleMinSizePt = d.TitleMinSizePt
	}
	if c.ListMaxRunes <= 0 {
		c.ListMaxRunes = d.ListMaxRunes
	}
	if len(c.ClosingPhrases) == 0 {
		c.ClosingPhrases = d.ClosingPhrases
	}
	if len(c.OrgKeywords) == 0 {
		c.OrgKeywords = d.OrgKeywords
	}
	if len(c.DocTypeKeywords) == 0 {
		c.DocTypeKeywords = d.DocTypeKeywords
	}
	if c.SeparatorGlyphs == "" {
		c.SeparatorGlyphs = d.SeparatorGlyphs
	}
	if c.GlyphRepeat == nil {
		c.GlyphRepeat = d.GlyphRepeat
	}
	if c.DefaultRepeat <= 0 {
		c.DefaultRepeat = d.DefaultRepeat
	}
	if c.CoverageRatio <= 0 {
		c.CoverageRatio = d.CoverageRatio
	}
	if c.MinSeparatorRunes <= 0 {
		c.MinSeparatorRunes = d.MinSeparatorRunes
	}
	if c.ContextBefore <= 0 {
		c.ContextBefore = d.ContextBefore
	}
	return c
}

var signatureDateRe = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`)

const chineseNumerals = "一二三四五六七八九十"

// bulletGlyphs lead list items. Numbered leads are handled by the heading
// patterns instead; see numberingHeading.
const bulletGlyphs = "•·▪▫-—"

// Rules is the deterministic rule-based classifier. It is a pure function
// of the paragraph attributes and is total: every input maps to exactly
// one role.
type Rules struct {
	cfg Config
}

func NewRules(cfg Config) *Rules {
	return &Rules{cfg: cfg.normalized()}
}

// Classify assigns a structural role to one paragraph. The layers are
// tried in order; the first match wins.
func (r *Rules) Classify(attrs doctree.ParagraphAttributes) doctree.Role {
	attrs = attrs.Normalized()
	text := strings.TrimSpace(attrs.Text)

	if text == "" {
		return doctree.BlankLine
	}
	if r.isSeparator(text) {
		return doctree.Separator
	}
	if strings.HasPrefix(text, "附件：") || strings.HasPrefix(text, "附件:") {
		return doctree.Attachment
	}
	if containsAny(text, r.cfg.ClosingPhrases) {
		return doctree.Closing
	}
	if strings.HasSuffix(text, "：") || strings.HasSuffix(text, ":") {
		if containsAny(text, r.cfg.OrgKeywords) {
			return doctree.Addressee
		}
	}
	if signatureDateRe.MatchString(text) {
		return doctree.Signature
	}
	if attrs.Alignment == doctree.AlignCenter && attrs.SizePt >= r.cfg.TitleMinSizePt &&
		containsAny(text, r.cfg.DocTypeKeywords) {
		return doctree.DocumentTitle
	}
	if r.isListItem(text) {
		return doctree.ListItem
	}
	if role, ok := numberingHeading(text); ok {
		return role
	}
	if attrs.OutlineLevel >= 1 && attrs.OutlineLevel <= 4 {
		return doctree.Heading1 + doctree.Role(attrs.OutlineLevel-1)
	}
	if attrs.Bold {
		switch {
		case attrs.SizePt >= r.cfg.H1BoldSizePt:
			return doctree.Heading1
		case attrs.SizePt >= r.cfg.H2BoldSizePt:
			return doctree.Heading2
		case attrs.SizePt >= r.cfg.H3BoldSizePt:
			return doctree.Heading3
		}
	}
	return doctree.BodyParagraph
}

// isSeparator reports whether the text is a rule line: either its distinct
// characters are dominated by separator glyphs, or a single glyph repeats
// past its threshold.
func (r *Rules) isSeparator(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}

	distinct := map[rune]bool{}
	counts := map[rune]int{}
	for _, ch := range runes {
		distinct[ch] = true
		if strings.ContainsRune(r.cfg.SeparatorGlyphs, ch) {
			counts[ch]++
		}
	}

	if len(runes) >= r.cfg.MinSeparatorRunes {
		covered := 0
		for ch := range distinct {
			if strings.ContainsRune(r.cfg.SeparatorGlyphs, ch) {
				covered++
			}
		}
		if float64(covered)/float64(len(distinct)) >= r.cfg.CoverageRatio {
			return true
		}
	}

	for ch, n := range counts {
		threshold := r.cfg.DefaultRepeat
		if t, ok := r.cfg.GlyphRepeat[ch]; ok {
			threshold = t
		}
		if n >= threshold {
			return true
		}
	}
	return false
}

// isListItem matches short bullet-glyph or Latin-lettered leads. Leads that
// introduce hierarchy (一、 / （一） / 1. / （1）) classify as headings and
// are deliberately excluded here.
func (r *Rules) isListItem(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 || len(runes) >= r.cfg.ListMaxRunes {
		return false
	}
	if strings.ContainsRune(bulletGlyphs, runes[0]) {
		return true
	}
	if runes[0] < unicode.MaxASCII && unicode.IsLetter(runes[0]) && withinFirst(runes, '.', 3) {
		return true
	}
	return false
}

// numberingHeading maps the four hierarchical numbering patterns onto
// heading levels.
func numberingHeading(text string) (doctree.Role, bool) {
	runes := []rune(text)
	if len(runes) == 0 {
		return doctree.BodyParagraph, false
	}
	switch {
	case strings.ContainsRune(chineseNumerals, runes[0]) && withinFirst(runes, '、', 3):
		return doctree.Heading1, true
	case runes[0] == '（' && len(runes) > 1 && strings.ContainsRune(chineseNumerals, runes[1]) &&
		strings.ContainsRune(text, '）'):
		return doctree.Heading2, true
	case unicode.IsDigit(runes[0]) && withinFirst(runes, '.', 3):
		return doctree.Heading3, true
	case runes[0] == '（' && len(runes) > 1 && unicode.IsDigit(runes[1]) &&
		strings.ContainsRune(text, '）'):
		return doctree.Heading4, true
	}
	return doctree.BodyParagraph, false
}

func withinFirst(runes []rune, ch rune, n int) bool {
	if len(runes) < n {
		n = len(runes)
	}
	for _, r := range runes[:n] {
		if r == ch {
			return true
		}
	}
	return false
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
