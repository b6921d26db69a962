package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gwcheck/internal/analyzer"
	"gwcheck/internal/classifier"
	"gwcheck/internal/doctree"
	"gwcheck/internal/parser"
)

// Worker runs a single check job end to end: parse, classify into a
// structure tree, then analyze every node against the format rules.
type Worker struct {
	classifier *classifier.Classifier
	analyzer   *analyzer.Analyzer
	log        *slog.Logger
}

func NewWorker(cls *classifier.Classifier, an *analyzer.Analyzer, log *slog.Logger) *Worker {
	return &Worker{
		classifier: cls,
		analyzer:   an,
		log:        log,
	}
}

// Process runs the full check pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title == "" {
		job.Title = doc.Title
	}
	job.ContentHash = ContentHashHex([]byte(flattenParagraphText(doc.Paragraphs)))

	if len(doc.Paragraphs) == 0 {
		log.Warn("no paragraphs extracted")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Classify and build the structure tree.
	job.SetStatus(StatusClassifying, "classifying")
	root := w.classifier.BuildTree(ctx, doc.Paragraphs)
	job.SetTree(root)
	nodes := root.Flatten()
	job.SetNodesTotal(len(nodes))
	log.Info("classified document", "nodes", len(nodes))

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "classifying")
		return
	}

	// Phase 3: Analyze each node. Per-node failures are recorded in the
	// report; only a fully failed pass fails the job.
	job.SetStatus(StatusAnalyzing, "analyzing")
	report := w.analyzer.AnalyzeAll(ctx, job.Title, root, func(done, total int) {
		job.SetNodesAnalyzed(done)
	})
	job.SetReport(report)

	for _, res := range report.Results {
		if res.Error != "" {
			job.AddError(fmt.Sprintf("node %d: %s", res.Index, res.Error))
		}
	}
	log.Info("analysis complete", "analyzed", report.Analyzed, "failed", report.Failed)

	switch {
	case report.Analyzed == 0 && report.Failed > 0:
		job.SetStatus(StatusFailed, "analyzing")
	case report.Failed > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}

// flattenParagraphText joins all non-blank paragraph text for hashing.
func flattenParagraphText(paragraphs []doctree.ParagraphAttributes) string {
	var sb strings.Builder
	for _, p := range paragraphs {
		t := strings.TrimSpace(p.Text)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t)
	}
	return sb.String()
}
