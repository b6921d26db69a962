// Package analyzer submits each classified node, with its neighbor
// context, to a chat model that checks formatting compliance.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"gwcheck/internal/doctree"
	"gwcheck/internal/llm"
)

// Config controls the analysis pass.
type Config struct {
	ContextBefore int           // preceding nodes per window
	ContextAfter  int           // following nodes per window
	Delay         time.Duration // pause between node calls
	MaxRetries    int           // attempts per node on retryable errors
	FormatRules   string        // requirement text checked against nodes
}

// DefaultConfig returns the canonical analysis settings.
func DefaultConfig() Config {
	return Config{
		ContextBefore: 3,
		ContextAfter:  2,
		Delay:         time.Second,
		MaxRetries:    3,
		FormatRules:   DefaultFormatRules,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.ContextBefore <= 0 {
		c.ContextBefore = d.ContextBefore
	}
	if c.ContextAfter <= 0 {
		c.ContextAfter = d.ContextAfter
	}
	if c.Delay <= 0 {
		c.Delay = d.Delay
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.FormatRules == "" {
		c.FormatRules = d.FormatRules
	}
	return c
}

// Analyzer walks a classified tree in document order and checks each node.
type Analyzer struct {
	client llm.ChatClient
	stats  *llm.Stats
	cfg    Config
	log    *slog.Logger
}

func New(client llm.ChatClient, stats *llm.Stats, cfg Config, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		client: client,
		stats:  stats,
		cfg:    cfg.normalized(),
		log:    log,
	}
}

// AnalyzeAll checks every node of the tree. Per-node failures are recorded
// in the report and never abort the pass. The onProgress callback, if set,
// is invoked after each node.
func (a *Analyzer) AnalyzeAll(ctx context.Context, title string, root *doctree.Node, onProgress func(done, total int)) *Report {
	nodes := root.Flatten()
	report := &Report{
		Title:       title,
		GeneratedAt: time.Now(),
		NodesTotal:  len(nodes),
	}

	for i, n := range nodes {
		result := Result{
			Index:   i,
			Role:    n.Role,
			Content: n.Attrs.Text,
		}

		analysis, err := a.analyzeNode(ctx, nodes, i)
		if err != nil {
			result.Error = err.Error()
			report.Failed++
			a.log.Warn("node analysis failed", "index", i, "error", err)
		} else {
			result.Analysis = analysis
			report.Analyzed++
		}
		report.Results = append(report.Results, result)

		if onProgress != nil {
			onProgress(i+1, len(nodes))
		}
		if ctx.Err() != nil {
			break
		}
		if i < len(nodes)-1 {
			select {
			case <-ctx.Done():
				return report
			case <-time.After(a.cfg.Delay):
			}
		}
	}
	return report
}

// analyzeNode performs one chat call with bounded retries on transient
// failures.
func (a *Analyzer) analyzeNode(ctx context.Context, nodes []*doctree.Node, i int) (string, error) {
	nodeInfo := NodeDetails(nodes[i], "")
	window := ContextString(nodes, i, a.cfg.ContextBefore, a.cfg.ContextAfter)
	prompt := buildAnalysisPrompt(a.cfg.FormatRules, nodeInfo, window)

	var lastErr error
	for attempt := 0; attempt < a.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff(attempt - 1)):
			}
		}

		start := time.Now()
		reply, err := a.client.Complete(ctx, llm.ChatRequest{
			Prompt:      prompt,
			Temperature: 0.3,
			MaxTokens:   2000,
		})
		if a.stats != nil {
			a.stats.Record(time.Since(start))
		}
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !isRetryable(err) {
			break
		}
	}
	return "", lastErr
}

func isRetryable(err error) bool {
	var retryErr *llm.RetryableError
	return errors.As(err, &retryErr)
}

// backoff returns the wait before retry attempt n (0-indexed), with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
