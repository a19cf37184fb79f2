package sameas

import (
	"context"
	"strings"
	"testing"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/validate"
)

// scriptedChecker returns canned statuses per URL substring
type scriptedChecker struct {
	valid   func(url string) bool
	redirct map[string]string // candidate URL -> final URL
	calls   [][]validate.Candidate
}

func (s *scriptedChecker) CheckAll(_ context.Context, candidates []validate.Candidate, _ string, _ bool) []model.ProfileCheck {
	s.calls = append(s.calls, candidates)

	results := make([]model.ProfileCheck, len(candidates))
	for i, c := range candidates {
		check := model.ProfileCheck{Platform: c.Platform, URL: c.URL}
		if s.valid != nil && s.valid(c.URL) {
			check.Status = model.StatusValid
			check.StatusCode = 200
		} else {
			check.Status = model.StatusInvalid
			check.StatusCode = 404
		}
		if final, ok := s.redirct[c.URL]; ok {
			check.FinalURL = final
		}
		results[i] = check
	}
	return results
}

func TestGenerator_AllValid(t *testing.T) {
	checker := &scriptedChecker{valid: func(string) bool { return true }}
	g := NewGenerator(checker)

	result, err := g.Generate(context.Background(), model.SameAsRequest{
		Handle:    "acme",
		Canonical: "https://acme.com",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	validCount := 0
	hosts := map[string]bool{}
	for _, check := range result.AllResults {
		if check.Status == model.StatusValid {
			validCount++
			hosts[responseHost(check)] = true
		}
	}

	if result.Summary.Valid != validCount {
		t.Errorf("summary.valid %d must equal valid AllResults entries %d", result.Summary.Valid, validCount)
	}
	if len(result.SameAs) != len(hosts) {
		t.Errorf("sameAs length %d must equal distinct successful hostnames %d", len(result.SameAs), len(hosts))
	}
}

func TestGenerator_BelowMinimumWarns(t *testing.T) {
	// Only three platforms succeed.
	ok := map[string]bool{"instagram.com": true, "github.com": true, "x.com": true}
	checker := &scriptedChecker{valid: func(u string) bool {
		for host := range ok {
			if strings.Contains(u, host) {
				return true
			}
		}
		return false
	}}
	g := NewGenerator(checker)

	result, err := g.Generate(context.Background(), model.SameAsRequest{
		Handle:         "acme",
		Canonical:      "https://acme.com",
		RequireMinimum: 5,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.SameAs) != 3 {
		t.Errorf("Expected 3 sameAs entries, got %d: %v", len(result.SameAs), result.SameAs)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "5 required") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a warning mentioning '5 required', got %v", result.Warnings)
	}
}

func TestGenerator_LinkedInFallback(t *testing.T) {
	checker := &scriptedChecker{valid: func(u string) bool {
		// Company page fails, personal profile succeeds.
		return strings.Contains(u, "linkedin.com/in/")
	}}
	g := NewGenerator(checker)

	result, err := g.Generate(context.Background(), model.SameAsRequest{Handle: "acme"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	foundPersonal := false
	for _, u := range result.SameAs {
		if strings.Contains(u, "linkedin.com/in/acme") {
			foundPersonal = true
		}
		if strings.Contains(u, "linkedin.com/company/") {
			t.Errorf("Failed company URL must not appear in sameAs: %s", u)
		}
	}
	if !foundPersonal {
		t.Errorf("Expected personal-profile fallback URL in sameAs, got %v", result.SameAs)
	}
}

func TestGenerator_HostnameDedupe(t *testing.T) {
	checker := &scriptedChecker{
		valid: func(u string) bool {
			return strings.Contains(u, "instagram.com") || strings.Contains(u, "threads.net")
		},
		// Both candidates land on the same final host after redirects.
		redirct: map[string]string{
			"https://www.instagram.com/acme/": "https://instagram.com/acme",
			"https://www.threads.net/@acme":   "https://instagram.com/acme",
		},
	}
	g := NewGenerator(checker)

	result, err := g.Generate(context.Background(), model.SameAsRequest{Handle: "acme"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.SameAs) != 1 {
		t.Errorf("Expected redirect-merged hosts to dedupe to 1, got %d: %v", len(result.SameAs), result.SameAs)
	}
}

func TestGenerator_MalformedExtras(t *testing.T) {
	checker := &scriptedChecker{valid: func(string) bool { return true }}
	g := NewGenerator(checker)

	result, err := g.Generate(context.Background(), model.SameAsRequest{
		Handle: "acme",
		Extras: []string{"not a url", "http://legacy.example.com/profile"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	foundSkip, foundHTTP := false, false
	for _, w := range result.Warnings {
		if strings.Contains(w, "malformed extra") {
			foundSkip = true
		}
		if strings.Contains(w, "not HTTPS") {
			foundHTTP = true
		}
	}
	if !foundSkip {
		t.Error("Expected warning for malformed extra URL")
	}
	if !foundHTTP {
		t.Error("Expected warning for non-HTTPS extra URL")
	}
}

func TestGenerator_EmptyRequest(t *testing.T) {
	g := NewGenerator(&scriptedChecker{})
	if _, err := g.Generate(context.Background(), model.SameAsRequest{}); err == nil {
		t.Error("Expected error when handle and extras are both empty")
	}
}

func TestPlatformProfileURL(t *testing.T) {
	tests := []struct {
		platform string
		handle   string
		want     string
	}{
		{"instagram", "acme", "https://www.instagram.com/acme/"},
		{"youtube", "acme", "https://www.youtube.com/@acme"},
		{"tiktok", "@acme", "https://www.tiktok.com/@acme"},
		{"github", "@acme", "https://github.com/acme"},
		{"medium", "acme", "https://medium.com/@acme"},
	}

	byName := map[string]Platform{}
	for _, p := range Platforms() {
		byName[p.Name] = p
	}

	for _, tt := range tests {
		got := byName[tt.platform].ProfileURL(tt.handle)
		if got != tt.want {
			t.Errorf("%s.ProfileURL(%q) = %q, want %q", tt.platform, tt.handle, got, tt.want)
		}
	}
}
