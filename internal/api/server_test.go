package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gwcheck/internal/analyzer"
	"gwcheck/internal/classifier"
	"gwcheck/internal/config"
	"gwcheck/internal/llm"
	"gwcheck/internal/pipeline"
)

type fakeChat struct{ reply string }

func (f *fakeChat) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	return f.reply, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Port:           "0",
		APIKey:         "secret",
		WorkerCount:    1,
		MaxQueueSize:   4,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cls := classifier.New(classifier.DefaultConfig(), nil, log)
	anCfg := analyzer.DefaultConfig()
	anCfg.Delay = time.Millisecond
	an := analyzer.New(&fakeChat{reply: "格式正确"}, nil, anCfg, log)

	orch := pipeline.NewOrchestrator(cfg, cls, an, log)
	ctx, cancel := context.WithCancel(context.Background())
	orch.Start(ctx)
	t.Cleanup(cancel)

	stats := llm.NewStats(time.Hour)
	srv := httptest.NewServer(NewServer(orch, stats, "deepseek-chat", log, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func upload(t *testing.T, url, token, filename string, content []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(content)
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, url, &body)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func TestHealth_NoAuth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAuth_Rejections(t *testing.T) {
	srv := newTestServer(t)

	// No token.
	resp, _ := http.Get(srv.URL + "/api/stats/llm")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	// Wrong token.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/stats/llm", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong token, got %d", resp.StatusCode)
	}
}

func TestTreeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := upload(t, srv.URL+"/api/tree", "secret", "通知.txt",
		[]byte("一、总体要求\n正文内容。\n特此通知。"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Title string          `json:"title"`
		Nodes int             `json:"nodes"`
		Tree  json.RawMessage `json:"tree"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Title != "通知" {
		t.Errorf("expected title 通知, got %q", out.Title)
	}
	if out.Nodes != 3 {
		t.Errorf("expected 3 nodes, got %d", out.Nodes)
	}
	if !strings.Contains(string(out.Tree), `"heading1"`) {
		t.Errorf("expected heading1 in tree, got %s", out.Tree)
	}
}

func TestTreeEndpoint_UnsupportedType(t *testing.T) {
	srv := newTestServer(t)
	resp := upload(t, srv.URL+"/api/tree", "secret", "data.csv", []byte("a,b"))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for csv, got %d", resp.StatusCode)
	}
}

func TestCheckFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := upload(t, srv.URL+"/api/check", "secret", "报告.txt",
		[]byte("一、总体情况\n工作进展顺利。\n特此报告。"))
	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("expected 202, got %d: %s", resp.StatusCode, body)
	}
	var accepted struct {
		JobID   string `json:"job_id"`
		PollURL string `json:"poll_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		t.Fatalf("decode accept: %v", err)
	}
	resp.Body.Close()
	if accepted.JobID == "" {
		t.Fatal("expected job id")
	}

	// Poll until the pipeline finishes.
	var status string
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+accepted.PollURL, nil)
		req.Header.Set("Authorization", "Bearer secret")
		r, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		var st struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&st)
		r.Body.Close()
		status = st.Status
		if status == string(pipeline.StatusCompleted) || status == string(pipeline.StatusFailed) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if status != string(pipeline.StatusCompleted) {
		t.Fatalf("expected completed, got %q", status)
	}

	// JSON report.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/check/"+accepted.JobID+"/report", nil)
	req.Header.Set("Authorization", "Bearer secret")
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var report analyzer.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	r.Body.Close()
	if report.Analyzed != 3 || report.Failed != 0 {
		t.Errorf("unexpected report counts: %d/%d", report.Analyzed, report.Failed)
	}

	// HTML rendering.
	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/check/"+accepted.JobID+"/report?format=html", nil)
	req.Header.Set("Authorization", "Bearer secret")
	r, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("html report: %v", err)
	}
	page, _ := io.ReadAll(r.Body)
	r.Body.Close()
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	if !strings.Contains(string(page), "格式正确") {
		t.Error("expected analysis text in html report")
	}
}

func TestReport_NotReady(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/check/nonexistent/report", nil)
	req.Header.Set("Authorization", "Bearer secret")
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	r.Body.Close()
	if r.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown job, got %d", r.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/stats/llm", nil)
	req.Header.Set("Authorization", "Bearer secret")
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", r.StatusCode)
	}
	var out struct {
		Model string       `json:"model"`
		Stats llm.Snapshot `json:"stats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Model != "deepseek-chat" {
		t.Errorf("expected model name, got %q", out.Model)
	}
}
