// Package classifier assigns structural roles to document paragraphs,
// optionally consulting a remote model before the deterministic rules.
package classifier

import (
	"context"
	"log/slog"
	"strings"

	"gwcheck/internal/doctree"
)

// Oracle is a remote classification capability. Implementations must
// return a valid role or an error; the caller treats any failure as a
// signal to fall back to the rule-based path.
type Oracle interface {
	Classify(ctx context.Context, attrs doctree.ParagraphAttributes, preceding []doctree.ParagraphAttributes) (doctree.Role, error)
}

// Classifier combines the optional oracle with the deterministic rules.
// With a nil oracle it is a pure function of the paragraph attributes.
type Classifier struct {
	rules  *Rules
	oracle Oracle
	before int
	log    *slog.Logger
}

func New(cfg Config, oracle Oracle, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{
		rules:  NewRules(cfg),
		oracle: oracle,
		before: cfg.normalized().ContextBefore,
		log:    log,
	}
}

// Rules exposes the deterministic path, mainly for tests and for callers
// that need oracle-free classification.
func (c *Classifier) Rules() *Rules {
	return c.rules
}

// Classify assigns a role to one paragraph. Oracle failures and unlisted
// labels degrade to the rules for this paragraph only; no paragraph is
// ever left unclassified.
func (c *Classifier) Classify(ctx context.Context, attrs doctree.ParagraphAttributes, preceding []doctree.ParagraphAttributes) doctree.Role {
	if c.oracle != nil && strings.TrimSpace(attrs.Text) != "" {
		role, err := c.oracle.Classify(ctx, attrs.Normalized(), preceding)
		if err == nil && role.Valid() {
			return role
		}
		if err != nil {
			c.log.Warn("oracle classification failed, using rules", "error", err)
		}
	}
	return c.rules.Classify(attrs)
}

// BuildTree runs the full sequential pass: classify each paragraph in
// document order, feeding preceding non-blank paragraphs to the oracle as
// context, and fold the results into a tree.
func (c *Classifier) BuildTree(ctx context.Context, paragraphs []doctree.ParagraphAttributes) *doctree.Node {
	b := doctree.NewBuilder()
	var seen []doctree.ParagraphAttributes

	for _, p := range paragraphs {
		p = p.Normalized()
		role := c.Classify(ctx, p, lastN(seen, c.before))
		b.Add(role, p)
		if strings.TrimSpace(p.Text) != "" {
			seen = append(seen, p)
		}
	}
	return b.Root()
}

func lastN(s []doctree.ParagraphAttributes, n int) []doctree.ParagraphAttributes {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
