// Package doctree models an administrative document as a tree of
// structurally classified paragraphs.
package doctree

// Alignment is the paragraph alignment category.
type Alignment string

const (
	AlignUnspecified Alignment = ""
	AlignStart       Alignment = "start"
	AlignCenter      Alignment = "center"
	AlignEnd         Alignment = "end"
	AlignJustify     Alignment = "justify"
	AlignDistribute  Alignment = "distribute"
)

// LineSpacingRule distinguishes multiple-based line spacing from
// point-valued rules.
type LineSpacingRule string

const (
	LineRuleMultiple LineSpacingRule = "multiple"
	LineRuleAtLeast  LineSpacingRule = "at_least"
	LineRuleExact    LineSpacingRule = "exact"
)

// LineSpacing holds the line-spacing rule and its value: a multiplier for
// LineRuleMultiple, points otherwise.
type LineSpacing struct {
	Rule  LineSpacingRule `json:"rule"`
	Value float64         `json:"value"`
}

// Indent holds paragraph indents in points. Hanging and first-line are
// mutually exclusive in practice; both are carried as non-negative values.
type Indent struct {
	LeftPt      float64 `json:"left_pt"`
	RightPt     float64 `json:"right_pt"`
	FirstLinePt float64 `json:"first_line_pt"`
	HangingPt   float64 `json:"hanging_pt"`
}

// OutlineBodyText is the OutlineLevel value for paragraphs without an
// author-declared heading depth.
const OutlineBodyText = 0

// ParagraphAttributes is the read-only per-paragraph input produced by the
// document parsers. OutlineLevel is 1-based (1 = 标题1 … 9 = 标题9), with
// OutlineBodyText meaning body text, so the zero value is safe.
type ParagraphAttributes struct {
	Text          string      `json:"text"`
	Font          string      `json:"font"`
	SizePt        float64     `json:"size_pt"`
	Bold          bool        `json:"bold"`
	Alignment     Alignment   `json:"alignment"`
	OutlineLevel  int         `json:"outline_level"`
	SpaceBeforePt float64     `json:"space_before_pt"`
	SpaceAfterPt  float64     `json:"space_after_pt"`
	Line          LineSpacing `json:"line_spacing"`
	Indent        Indent      `json:"indent"`
}

// Normalized returns a copy with missing or malformed fields replaced by
// the documented defaults, so classification is total over its input.
func (a ParagraphAttributes) Normalized() ParagraphAttributes {
	if a.Font == "" {
		a.Font = "Default"
	}
	if a.SizePt <= 0 {
		a.SizePt = 12
	}
	if a.OutlineLevel < 0 || a.OutlineLevel > 9 {
		a.OutlineLevel = OutlineBodyText
	}
	if a.Line.Rule == "" {
		a.Line = LineSpacing{Rule: LineRuleMultiple, Value: 1.0}
	}
	return a
}

// Node is one element of the document tree. Children are appended in
// document order during construction and never mutated afterward.
type Node struct {
	Role     Role                `json:"role"`
	Label    string              `json:"label"`
	Attrs    ParagraphAttributes `json:"attributes"`
	Children []*Node             `json:"children"`
}

// NewRoot returns the synthetic root node. It carries no role and ranks
// below every classified node.
func NewRoot() *Node {
	return &Node{Role: roleRoot, Label: roleRoot.Label()}
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool {
	return !n.Role.Valid()
}

// Rank returns the nesting rank of the node's role.
func (n *Node) Rank() int {
	return n.Role.Rank()
}

// Walk visits n and its descendants in document order (preorder).
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Flatten returns all non-root nodes in document order. Because the builder
// appends nodes as they arrive, preorder equals paragraph order.
func (n *Node) Flatten() []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if !node.IsRoot() {
			out = append(out, node)
		}
	})
	return out
}
