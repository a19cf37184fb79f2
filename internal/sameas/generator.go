package sameas

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/validate"
)

// Checker validates candidate profile URLs; satisfied by
// validate.ProfileChecker
type Checker interface {
	CheckAll(ctx context.Context, candidates []validate.Candidate, canonical string, checkReciprocity bool) []model.ProfileCheck
}

// Generator builds candidate profile URLs for a handle and validates them
type Generator struct {
	checker Checker
}

// NewGenerator creates a generator using the given checker
func NewGenerator(checker Checker) *Generator {
	return &Generator{checker: checker}
}

// Generate expands the handle across all known platforms plus any extras,
// validates every candidate, and returns the deduplicated sameAs list.
// Individual check failures become statuses and warnings, never errors;
// Generate itself only fails on unusable input.
func (g *Generator) Generate(ctx context.Context, req model.SameAsRequest) (*model.SameAsResult, error) {
	handle := strings.TrimSpace(req.Handle)
	if handle == "" && len(req.Extras) == 0 {
		return nil, fmt.Errorf("handle or extras required")
	}

	result := &model.SameAsResult{
		SameAs:   []string{},
		Warnings: []string{},
	}

	var candidates []validate.Candidate
	if handle != "" {
		for _, p := range Platforms() {
			candidates = append(candidates, validate.Candidate{
				Platform: p.Name,
				URL:      p.ProfileURL(handle),
			})
		}
	}
	for _, extra := range req.Extras {
		extra = strings.TrimSpace(extra)
		parsed, err := url.Parse(extra)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping malformed extra URL: %s", extra))
			continue
		}
		if parsed.Scheme != "https" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("extra URL is not HTTPS: %s", extra))
		}
		candidates = append(candidates, validate.Candidate{Platform: "extra", URL: extra})
	}

	checks := g.checker.CheckAll(ctx, candidates, req.Canonical, req.CheckReciprocity)

	// LinkedIn company pages often 404 for sole proprietors; retry the
	// personal-profile form before giving up on the platform.
	for i, check := range checks {
		if check.Platform != "linkedin" || check.Status == model.StatusValid || handle == "" {
			continue
		}
		fallbackURL := fmt.Sprintf(linkedinPersonalTemplate, strings.TrimPrefix(handle, "@"))
		retried := g.checker.CheckAll(ctx, []validate.Candidate{{Platform: "linkedin", URL: fallbackURL}}, req.Canonical, req.CheckReciprocity)
		if len(retried) == 1 && retried[0].Status == model.StatusValid {
			checks[i] = retried[0]
		}
	}

	seenHosts := make(map[string]bool)
	for _, check := range checks {
		result.AllResults = append(result.AllResults, check)

		switch check.Status {
		case model.StatusValid:
			result.Summary.Valid++
		case model.StatusInvalid:
			result.Summary.Invalid++
		case model.StatusTimeout:
			result.Summary.Timeouts++
		case model.StatusError:
			result.Summary.Errors++
		}

		if check.Warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", check.Platform, check.Warning))
		}

		if check.Status != model.StatusValid {
			continue
		}

		// One profile per hostname; the first success wins.
		host := responseHost(check)
		if host == "" || seenHosts[host] {
			continue
		}
		seenHosts[host] = true

		keep := check.URL
		if check.FinalURL != "" {
			keep = check.FinalURL
		}
		result.SameAs = append(result.SameAs, keep)
	}

	if req.RequireMinimum > 0 && result.Summary.Valid < req.RequireMinimum {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"only %d valid profiles found, %d required", result.Summary.Valid, req.RequireMinimum))
	}
	return result, nil
}

// responseHost prefers the post-redirect hostname for deduplication
func responseHost(check model.ProfileCheck) string {
	target := check.FinalURL
	if target == "" {
		target = check.URL
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}
