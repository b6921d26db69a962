// Package oracle consults a remote chat model to classify a paragraph's
// structural role. The oracle is optional and unreliable; callers must
// always be able to fall back to rule-based classification.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gwcheck/internal/doctree"
	"gwcheck/internal/llm"
)

// Oracle implements classifier.Oracle over a chat-completion backend.
type Oracle struct {
	client llm.ChatClient
	stats  *llm.Stats
}

func New(client llm.ChatClient, stats *llm.Stats) *Oracle {
	return &Oracle{
		client: client,
		stats:  stats,
	}
}

// Classify asks the model for the role of one paragraph, supplying the
// preceding paragraphs as context. The reply is accepted only if it is one
// of the thirteen role labels; anything else is an error so the caller
// falls back to the deterministic rules.
func (o *Oracle) Classify(ctx context.Context, attrs doctree.ParagraphAttributes, preceding []doctree.ParagraphAttributes) (doctree.Role, error) {
	prompt := buildPrompt(attrs, preceding)

	start := time.Now()
	reply, err := o.client.Complete(ctx, llm.ChatRequest{
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   50,
	})
	if o.stats != nil {
		o.stats.Record(time.Since(start))
	}
	if err != nil {
		return doctree.BodyParagraph, fmt.Errorf("oracle call: %w", err)
	}

	label := strings.TrimSpace(reply)
	role, ok := doctree.RoleFromLabel(label)
	if !ok {
		return doctree.BodyParagraph, fmt.Errorf("oracle returned unlisted role %q", snippet(label, 30))
	}
	return role, nil
}
