package extract

import (
	"strings"
	"testing"

	"github.com/xenlixai/aeoscan/internal/model"
)

func TestCitationExtractor_URLAndMarkerCollapse(t *testing.T) {
	e := NewCitationExtractor(nil)

	text := `See https://example.com/a and https://example.com/a/ [1]`
	citations, err := e.Extract(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(citations) != 1 {
		t.Fatalf("Expected exactly 1 citation, got %d: %+v", len(citations), citations)
	}

	c := citations[0]
	if c.Type != model.CitationTypeURL {
		t.Errorf("Expected url citation (explicit URL over bracket marker), got %s", c.Type)
	}
	if c.Domain != "example.com" {
		t.Errorf("Expected domain example.com, got %s", c.Domain)
	}
	if !strings.HasSuffix(c.NormalizedURL, "/a") {
		t.Errorf("Expected trailing slash stripped, got %s", c.NormalizedURL)
	}
	if !c.IsPrimary {
		t.Error("Expected the single citation to be primary")
	}
}

func TestCitationExtractor_DedupeKeepsHigherConfidence(t *testing.T) {
	e := NewCitationExtractor(nil)

	// Second instance sits next to a reference marker, so it scores higher
	// and must win the dedup.
	text := `First mention http://Example.COM/Page here. Later cited again http://example.com/Page/ [2].`
	citations, err := e.Extract(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	urlCount := 0
	for _, c := range citations {
		if c.Type == model.CitationTypeURL {
			urlCount++
			if c.Confidence < 0.85 {
				t.Errorf("Expected the boosted instance to survive dedup, got confidence %.2f", c.Confidence)
			}
		}
	}
	if urlCount != 1 {
		t.Errorf("Expected case/slash variants to collapse to 1 url citation, got %d", urlCount)
	}
}

func TestCitationExtractor_ConfidenceBoundsAndOrdering(t *testing.T) {
	e := NewCitationExtractor(nil)

	text := `Intro [3] with more detail. Source: Example Research Group.
Details at https://a.example.org/report [4] and http://b.example.org/notes.
Standalone marker [7] far away from any link appears here too.`

	opts := DefaultOptions()
	opts.ConfidenceThreshold = 0
	citations, err := e.Extract(text, opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(citations) < 3 {
		t.Fatalf("Expected at least 3 citations, got %d", len(citations))
	}

	for i, c := range citations {
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Errorf("Citation %d confidence %.2f outside [0,1]", i, c.Confidence)
		}
		if i > 0 && citations[i-1].Confidence < c.Confidence {
			t.Errorf("Confidence ordering not non-increasing at index %d: %.2f < %.2f",
				i, citations[i-1].Confidence, c.Confidence)
		}
		if c.IsPrimary && i != 0 {
			t.Errorf("Only the top citation may be primary, index %d flagged", i)
		}
	}
}

func TestCitationExtractor_EmptyAndInvalidInput(t *testing.T) {
	e := NewCitationExtractor(nil)

	citations, err := e.Extract("   \n\t ", DefaultOptions())
	if err != nil {
		t.Fatalf("Empty text must not error, got %v", err)
	}
	if len(citations) != 0 {
		t.Errorf("Expected empty result for empty text, got %d", len(citations))
	}

	if _, err := e.Extract("some text", Options{ConfidenceThreshold: 1.5}); err == nil {
		t.Error("Expected error for threshold > 1")
	}
	if _, err := e.Extract("some text", Options{MaxCitations: -2}); err == nil {
		t.Error("Expected error for negative max citations")
	}
}

func TestCitationExtractor_ThresholdAndTruncation(t *testing.T) {
	e := NewCitationExtractor(nil)

	text := `Source: Somebody Said So. Also https://one.example.com/x and https://two.example.com/y and https://three.example.com/z.`

	opts := DefaultOptions()
	opts.ConfidenceThreshold = 0.6
	citations, err := e.Extract(text, opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, c := range citations {
		if c.Type == model.CitationTypeInlineSource {
			t.Error("Inline source should fall below a 0.6 threshold")
		}
	}

	opts = DefaultOptions()
	opts.MaxCitations = 2
	citations, err = e.Extract(text, opts)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(citations) != 2 {
		t.Errorf("Expected truncation to 2, got %d", len(citations))
	}
}

func TestCitationExtractor_TrustedDomains(t *testing.T) {
	e := NewCitationExtractor([]string{"wikipedia.org"})

	text := `Read https://en.wikipedia.org/wiki/AEO and https://cdc.gov/data and https://randomblog.net/post`
	citations, err := e.Extract(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	trust := map[string]bool{}
	for _, c := range citations {
		trust[c.Domain] = c.IsTrusted
	}
	if !trust["en.wikipedia.org"] {
		t.Error("Expected subdomain of configured trusted domain to be trusted")
	}
	if !trust["cdc.gov"] {
		t.Error("Expected .gov host to be trusted")
	}
	if trust["randomblog.net"] {
		t.Error("Expected unknown host to be untrusted")
	}
}

func TestCitationExtractor_InlineSource(t *testing.T) {
	e := NewCitationExtractor(nil)

	text := `The market grew 40% last year. Source: Gartner Research. According to Forrester, growth continues.`
	citations, err := e.Extract(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	inline := 0
	for _, c := range citations {
		if c.Type == model.CitationTypeInlineSource {
			inline++
		}
	}
	if inline != 2 {
		t.Errorf("Expected 2 inline-source citations, got %d", inline)
	}
}

func TestCitationExtractor_InlineSourceNeedsWordBoundary(t *testing.T) {
	e := NewCitationExtractor(nil)

	// "resource:" and "outsourced:" embed the word "source" but are not
	// attributions.
	text := `Download the resource: Gartner templates. We outsourced: X handles it.`
	citations, err := e.Extract(text, DefaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, c := range citations {
		if c.Type == model.CitationTypeInlineSource {
			t.Errorf("Expected no inline-source citation from embedded word, got %q", c.RawText)
		}
	}
}

func TestStats(t *testing.T) {
	citations := []model.Citation{
		{Domain: "a.com", Type: model.CitationTypeURL, IsTrusted: true},
		{Domain: "a.com", Type: model.CitationTypeURL},
		{Domain: "b.com", Type: model.CitationTypeURL},
		{Type: model.CitationTypeReferenceMarker},
		{Type: model.CitationTypeInlineSource},
	}

	stats := Stats(citations)

	if stats.TotalCitations != len(citations) {
		t.Errorf("Expected total %d, got %d", len(citations), stats.TotalCitations)
	}
	if stats.UniqueDomains != 2 {
		t.Errorf("Expected 2 unique domains, got %d", stats.UniqueDomains)
	}
	if stats.UniqueDomains > stats.TotalCitations {
		t.Error("Unique domains must never exceed total citations")
	}
	if stats.TypeDistribution[model.CitationTypeURL] != 3 {
		t.Errorf("Expected 3 url citations in distribution, got %d", stats.TypeDistribution[model.CitationTypeURL])
	}
	if stats.TrustedCitations != 1 {
		t.Errorf("Expected 1 trusted citation, got %d", stats.TrustedCitations)
	}

	empty := Stats(nil)
	if empty.TotalCitations != 0 || empty.UniqueDomains != 0 {
		t.Error("Expected zeroed stats for nil input")
	}
}
