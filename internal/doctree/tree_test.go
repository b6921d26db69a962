package doctree

import (
	"testing"
)

func para(text string) ParagraphAttributes {
	return ParagraphAttributes{Text: text}.Normalized()
}

func TestBuilder_NestsLowerRankedAncestors(t *testing.T) {
	b := NewBuilder()
	b.Add(DocumentTitle, para("关于开展检查的通知"))
	b.Add(Heading1, para("一、总体要求"))
	b.Add(BodyParagraph, para("正文一"))
	b.Add(Heading2, para("（一）基本原则"))
	b.Add(BodyParagraph, para("正文二"))
	root := b.Root()

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(root.Children))
	}
	title := root.Children[0]
	if title.Role != DocumentTitle {
		t.Fatalf("expected document title at top, got %s", title.Role)
	}
	if len(title.Children) != 1 || title.Children[0].Role != Heading1 {
		t.Fatalf("expected heading1 under title, got %+v", title.Children)
	}
	h1 := title.Children[0]
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 children under heading1, got %d", len(h1.Children))
	}
	if h1.Children[0].Role != BodyParagraph || h1.Children[1].Role != Heading2 {
		t.Errorf("expected [body, heading2] under heading1, got [%s, %s]",
			h1.Children[0].Role, h1.Children[1].Role)
	}
	h2 := h1.Children[1]
	if len(h2.Children) != 1 || h2.Children[0].Role != BodyParagraph {
		t.Errorf("expected body under heading2, got %+v", h2.Children)
	}
}

func TestBuilder_EqualRanksAreSiblings(t *testing.T) {
	// [H1, H2, Body, H1]: the second H1 must close the first and become
	// its sibling, not its descendant.
	b := NewBuilder()
	b.Add(Heading1, para("一、第一部分"))
	b.Add(Heading2, para("（一）小节"))
	b.Add(BodyParagraph, para("内容"))
	b.Add(Heading1, para("二、第二部分"))
	root := b.Root()

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level headings, got %d", len(root.Children))
	}
	if root.Children[0].Attrs.Text != "一、第一部分" || root.Children[1].Attrs.Text != "二、第二部分" {
		t.Errorf("unexpected top-level order: %q, %q",
			root.Children[0].Attrs.Text, root.Children[1].Attrs.Text)
	}
	if len(root.Children[1].Children) != 0 {
		t.Errorf("expected second heading to start empty, got %d children", len(root.Children[1].Children))
	}
}

func TestBuilder_BlankLineIsAlwaysLeaf(t *testing.T) {
	b := NewBuilder()
	b.Add(Heading1, para("一、标题"))
	b.Add(BlankLine, para(""))
	b.Add(BodyParagraph, para("空行之后的正文"))
	root := b.Root()

	h1 := root.Children[0]
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 children under heading, got %d", len(h1.Children))
	}
	blank := h1.Children[0]
	if blank.Role != BlankLine {
		t.Fatalf("expected blank line first, got %s", blank.Role)
	}
	if len(blank.Children) != 0 {
		t.Errorf("expected blank line to be a leaf, got %d children", len(blank.Children))
	}
	if h1.Children[1].Role != BodyParagraph {
		t.Errorf("expected body as sibling of blank line, got %s", h1.Children[1].Role)
	}
}

func TestBuilder_AncestorRanksStrictlyBelow(t *testing.T) {
	b := NewBuilder()
	sequence := []Role{
		DocumentTitle, Addressee, BodyParagraph, Heading1, Heading2,
		BodyParagraph, ListItem, Heading3, Heading4, BodyParagraph,
		Heading1, Closing, Signature, Attachment, Separator, BlankLine,
	}
	for i, role := range sequence {
		b.Add(role, para(role.Label()+string(rune('0'+i%10))))
	}

	b.Root().Walk(func(n *Node) {
		for _, c := range n.Children {
			if c.Rank() <= n.Rank() {
				t.Errorf("child %s (rank %d) not strictly below parent %s (rank %d)",
					c.Role, c.Rank(), n.Role, n.Rank())
			}
		}
	})
}

func TestFlatten_PreservesDocumentOrder(t *testing.T) {
	b := NewBuilder()
	texts := []string{"标题", "一、第一", "正文1", "（一）小节", "正文2", "二、第二", "正文3"}
	roles := []Role{DocumentTitle, Heading1, BodyParagraph, Heading2, BodyParagraph, Heading1, BodyParagraph}
	for i := range texts {
		b.Add(roles[i], para(texts[i]))
	}

	flat := b.Root().Flatten()
	if len(flat) != len(texts) {
		t.Fatalf("expected %d nodes, got %d", len(texts), len(flat))
	}
	for i, n := range flat {
		if n.Attrs.Text != texts[i] {
			t.Errorf("position %d: expected %q, got %q", i, texts[i], n.Attrs.Text)
		}
	}
}

func TestNormalized_Defaults(t *testing.T) {
	a := ParagraphAttributes{Text: "x", OutlineLevel: 12}.Normalized()
	if a.Font != "Default" {
		t.Errorf("expected default font, got %q", a.Font)
	}
	if a.SizePt != 12 {
		t.Errorf("expected default size 12, got %v", a.SizePt)
	}
	if a.OutlineLevel != OutlineBodyText {
		t.Errorf("expected out-of-range outline level clamped to body, got %d", a.OutlineLevel)
	}
	if a.Line.Rule != LineRuleMultiple || a.Line.Value != 1.0 {
		t.Errorf("expected single line spacing default, got %+v", a.Line)
	}
}
