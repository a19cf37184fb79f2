package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/sameas"
	"github.com/xenlixai/aeoscan/internal/validate"
)

func testServer() *Server {
	cfg := model.DefaultConfig()
	return New(cfg, log.New(io.Discard))
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Health response does not parse: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Unexpected health body: %v", body)
	}
}

func TestCitationsEndpoint(t *testing.T) {
	payload := `{"text": "According to research at https://www.nature.com/articles/s1 [1], results hold."}`
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/citations/extract", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp citationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if len(resp.Citations) == 0 {
		t.Fatal("Expected at least one citation")
	}
	if resp.Citations[0].Domain != "nature.com" {
		t.Errorf("Unexpected domain: %s", resp.Citations[0].Domain)
	}
	if !resp.Citations[0].IsTrusted {
		t.Error("Expected nature.com to be trusted")
	}
	if resp.Stats.TotalCitations != len(resp.Citations) {
		t.Errorf("Stats disagree with citation list: %+v", resp.Stats)
	}
}

func TestCitationsEndpoint_BadBody(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/citations/extract", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestCitationsEndpoint_BadThreshold(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/citations/extract",
		`{"text": "hello", "confidence_threshold": 1.5}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range threshold, got %d", rec.Code)
	}
}

func TestGapsEndpoint(t *testing.T) {
	payload := `{"html": "<html><body><h2>What is content marketing?</h2></body></html>", "keyword": "content marketing"}`
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/gaps/analyze", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report model.GapReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if report.Metrics.TotalCandidates == 0 {
		t.Error("Expected candidate questions in report")
	}
	if report.Metrics.AnsweredCount == 0 {
		t.Error("Expected exact heading match to count as answered")
	}
}

func TestGapsEndpoint_MissingKeyword(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/gaps/analyze", `{"html": "<html></html>"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestGapsEndpoint_NoSource(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Questions.Provider = ""
	s := New(cfg, log.New(io.Discard))

	rec := doRequest(t, s, http.MethodPost, "/v1/gaps/analyze", `{"html": "", "keyword": "x"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without a question source, got %d", rec.Code)
	}
}

type fakeChecker struct{}

func (fakeChecker) CheckAll(_ context.Context, candidates []validate.Candidate, _ string, _ bool) []model.ProfileCheck {
	checks := make([]model.ProfileCheck, 0, len(candidates))
	for _, cand := range candidates {
		checks = append(checks, model.ProfileCheck{
			Platform:   cand.Platform,
			URL:        cand.URL,
			Status:     model.StatusValid,
			StatusCode: http.StatusOK,
		})
	}
	return checks
}

func TestSameAsEndpoint(t *testing.T) {
	s := testServer()
	s.generator = sameas.NewGenerator(fakeChecker{})

	rec := doRequest(t, s, http.MethodPost, "/v1/sameas/generate",
		`{"handle": "acme", "canonical": "https://acme.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result model.SameAsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if len(result.SameAs) == 0 {
		t.Error("Expected validated sameAs URLs")
	}
	if result.Summary.Valid != len(result.AllResults) {
		t.Errorf("Expected all checks valid, got %+v", result.Summary)
	}
}

func TestSameAsEndpoint_EmptyRequest(t *testing.T) {
	s := testServer()
	s.generator = sameas.NewGenerator(fakeChecker{})

	rec := doRequest(t, s, http.MethodPost, "/v1/sameas/generate", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty request, got %d", rec.Code)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	payload := `{
		"type": "local_business",
		"profile": {"name": "Acme Plumbing", "url": "https://acme.com"},
		"same_as": ["https://x.com/acme", "https://github.com/acme"]
	}`
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/schema/generate", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp schemaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if resp.Schema["@type"] != "LocalBusiness" {
		t.Errorf("Unexpected schema type: %v", resp.Schema["@type"])
	}
	if !strings.HasPrefix(resp.HTML, `<script type="application/ld+json">`) {
		t.Errorf("Expected embeddable script tag, got %q", resp.HTML)
	}
	sameAs, ok := resp.Schema["sameAs"].([]any)
	if !ok || len(sameAs) != 2 {
		t.Errorf("Expected merged sameAs list, got %v", resp.Schema["sameAs"])
	}
}

func TestSchemaEndpoint_InvalidBlock(t *testing.T) {
	payload := `{"type": "organization", "profile": {"name": "Acme", "url": "/relative"}}`
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/schema/generate", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422 for malformed URL, got %d", rec.Code)
	}

	var resp schemaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response does not parse: %v", err)
	}
	if len(resp.Findings) == 0 {
		t.Error("Expected validation findings")
	}
}

func TestSchemaEndpoint_UnknownType(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/schema/generate",
		`{"type": "recipe", "profile": {"name": "Acme"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestSchemaEndpoint_EmptyFAQ(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodPost, "/v1/schema/generate",
		`{"type": "faq_page", "profile": {"name": "Acme"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for FAQ page without entries, got %d", rec.Code)
	}
}
