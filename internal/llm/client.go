// Package llm provides the chat-completion transports used by the
// classification oracle and the compliance analyzer.
package llm

import (
	"context"
	"fmt"
)

// ChatRequest is one synchronous chat-completion call.
type ChatRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// ChatClient abstracts a chat-completion backend. Implementations are
// synchronous and bounded by their own timeouts.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// RetryableError indicates a transient failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
