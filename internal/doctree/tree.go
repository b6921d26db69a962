package doctree

// Builder folds an ordered sequence of classified paragraphs into a tree.
// It keeps a stack of open nodes; a new node closes every open node whose
// rank is greater than or equal to its own, so equal ranks become siblings
// rather than nesting. Ancestors therefore always rank strictly below
// their descendants.
type Builder struct {
	root  *Node
	stack []*Node
}

func NewBuilder() *Builder {
	root := NewRoot()
	return &Builder{
		root:  root,
		stack: []*Node{root},
	}
}

// Add classifies-in a paragraph: creates its node, pops the stack down to
// the first strictly-lower-ranked open node, appends and pushes. A single
// linear pass over the document; stack depth is bounded by the number of
// distinct ranks.
func (b *Builder) Add(role Role, attrs ParagraphAttributes) *Node {
	n := &Node{Role: role, Label: role.Label(), Attrs: attrs}
	for len(b.stack) > 1 && n.Rank() <= b.stack[len(b.stack)-1].Rank() {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, n)
	b.stack = append(b.stack, n)
	return n
}

// Root returns the synthetic root of the tree built so far.
func (b *Builder) Root() *Node {
	return b.root
}
