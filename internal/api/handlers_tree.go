package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"gwcheck/internal/parser"
)

// handleTree parses and classifies an upload synchronously, without the
// compliance analysis. Useful for previewing the structure a check would
// run against.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	data, filename, title, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse: "+err.Error(), http.StatusBadRequest)
		return
	}
	if title == "" {
		title = doc.Title
	}

	root := s.orchestrator.Classifier().BuildTree(r.Context(), doc.Paragraphs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"title": title,
		"nodes": len(root.Flatten()),
		"tree":  root.Children,
	})
}
