package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xenlixai/aeoscan/internal/model"
)

const auditPage = `<!DOCTYPE html>
<html>
<head><title>AEO Guide</title></head>
<body>
<h1>Answer Engine Optimization</h1>
<h2>What is answer engine optimization?</h2>
<p>AEO prepares content for AI answers. CDC guidance at
https://www.cdc.gov/guidance/page [1] says structure matters.</p>
<h2>How does answer engine optimization work?</h2>
<p>See https://example.com/resources for more.</p>
</body>
</html>`

func TestPipeline_AuditURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, auditPage)
	}))
	defer server.Close()

	p := NewPipeline(testConfig())
	report, err := p.AuditURL(context.Background(), server.URL+"/aeo-guide", "answer engine optimization")
	if err != nil {
		t.Fatalf("Expected audit to succeed, got %v", err)
	}

	if report.Subject != "aeo guide" {
		t.Errorf("Unexpected subject: %q", report.Subject)
	}
	if len(report.Citations) != 2 {
		t.Fatalf("Expected 2 citations, got %d: %+v", len(report.Citations), report.Citations)
	}
	if report.CitationStats.TrustedCitations != 1 {
		t.Errorf("Expected 1 trusted citation, got %d", report.CitationStats.TrustedCitations)
	}
	// cdc.gov gets the marker boost, so it sorts first
	if report.Citations[0].Domain != "cdc.gov" {
		t.Errorf("Expected cdc.gov first, got %s", report.Citations[0].Domain)
	}
	if !report.Citations[0].IsPrimary {
		t.Error("Expected highest-confidence citation to be primary")
	}

	if len(report.Questions) != 2 {
		t.Fatalf("Expected 2 extracted questions, got %d: %+v", len(report.Questions), report.Questions)
	}

	if report.GapError != "" {
		t.Fatalf("Unexpected gap error: %s", report.GapError)
	}
	if report.Gaps == nil {
		t.Fatal("Expected gap analysis in report")
	}
	if report.Gaps.Metrics.TotalCandidates != 6 {
		t.Errorf("Expected 6 candidate questions, got %d", report.Gaps.Metrics.TotalCandidates)
	}
	if report.Gaps.Metrics.AnsweredCount == 0 {
		t.Error("Expected exact heading match to count as answered")
	}
}

func TestPipeline_AuditURLWithoutKeyword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, auditPage)
	}))
	defer server.Close()

	p := NewPipeline(testConfig())
	report, err := p.AuditURL(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("Expected audit to succeed, got %v", err)
	}
	if report.Gaps != nil {
		t.Error("Expected no gap analysis without a keyword")
	}
	if report.GapError != "" {
		t.Errorf("Unexpected gap error: %s", report.GapError)
	}
}

func TestPipeline_RenderReport(t *testing.T) {
	report := &model.AuditReport{
		Subject:   "aeo guide",
		SourceURL: "https://example.com/aeo-guide",
		Citations: []model.Citation{{
			NormalizedURL: "https://cdc.gov/guidance",
			Domain:        "cdc.gov",
			Type:          model.CitationTypeURL,
			Confidence:    0.95,
			IsTrusted:     true,
			IsPrimary:     true,
		}},
		CitationStats: model.CitationStats{TotalCitations: 1, UniqueDomains: 1, TrustedCitations: 1},
		Questions:     []model.ExtractedQuestion{{Text: "What is AEO?", Source: model.QuestionFromHeading}},
		Gaps: &model.GapReport{
			Keyword:          "aeo",
			MissingQuestions: []model.CandidateQuestion{{Text: "How does aeo work?"}},
			Metrics:          model.GapMetrics{TotalCandidates: 2, AnsweredCount: 1, MissingCount: 1, CoveragePercentage: 50, OpportunityScore: 30},
		},
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")

	p := NewPipeline(testConfig())
	if err := p.RenderReport(report, jsonPath, mdPath, false); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Expected JSON report: %v", err)
	}
	var decoded model.AuditReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("JSON report does not parse: %v", err)
	}
	if decoded.Subject != "aeo guide" {
		t.Errorf("Unexpected decoded subject: %q", decoded.Subject)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("Expected Markdown report: %v", err)
	}
	for _, want := range []string{"# AEO Audit: aeo guide", "cdc.gov", "What is AEO?", "How does aeo work?", "50.0%"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("Markdown report missing %q", want)
		}
	}
}
