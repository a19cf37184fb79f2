package extract

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
)

// markerProximity is the distance (in bytes) within which a bracketed
// reference marker is treated as reinforcing a nearby URL instead of
// standing as its own citation.
const markerProximity = 40

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s<>()\[\]{}"']+`)
	markerPattern = regexp.MustCompile(`\[(\d{1,3})\]`)
	inlinePattern = regexp.MustCompile(`(?i)\b(?:source|sources|courtesy of|according to)\s*:?\s+([A-Za-z][A-Za-z0-9 &'\-]{1,80})`)

	// Trailing punctuation that URL matches commonly pick up from prose
	trailingPunct = ".,;:!?'\")"
)

// Options controls a single extraction run
type Options struct {
	MaxCitations        int     // Truncate the result to this many citations (0 = default)
	ExtractTitles       bool    // Capture surrounding text as a title hint
	ConfidenceThreshold float64 // Drop matches scoring below this value
}

// DefaultOptions returns the extraction defaults
func DefaultOptions() Options {
	return Options{
		MaxCitations:        20,
		ConfidenceThreshold: 0.3,
	}
}

// CitationExtractor extracts citations from free-form answer text
type CitationExtractor struct {
	trust *TrustClassifier
}

// NewCitationExtractor creates an extractor with the given trusted domains
func NewCitationExtractor(trustedDomains []string) *CitationExtractor {
	return &CitationExtractor{
		trust: NewTrustClassifier(trustedDomains),
	}
}

// Extract scans text for URL, reference-marker, and inline-source citations.
// It is a pure function: no I/O, no shared state. Empty text yields an empty
// list and no error.
func (e *CitationExtractor) Extract(text string, opts Options) ([]model.Citation, error) {
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []model.Citation{}, nil
	}

	var citations []model.Citation

	// Explicit URLs first. Record their spans so adjacent markers can be
	// absorbed as confidence boosts rather than duplicated.
	urlSpans := urlPattern.FindAllStringIndex(text, -1)
	markerSpans := markerPattern.FindAllStringIndex(text, -1)
	absorbed := make([]bool, len(markerSpans))

	for _, span := range urlSpans {
		raw := strings.TrimRight(text[span[0]:span[1]], trailingPunct)
		normalized, domain, ok := normalizeURL(raw)
		if !ok {
			continue
		}

		confidence := 0.8
		if strings.HasPrefix(strings.ToLower(raw), "https://") {
			confidence += 0.05
		}
		for i, ms := range markerSpans {
			if spansNear(span, ms, markerProximity) {
				confidence += 0.1
				absorbed[i] = true
			}
		}
		if confidence > 1 {
			confidence = 1
		}

		c := model.Citation{
			RawText:       raw,
			NormalizedURL: normalized,
			Domain:        domain,
			Type:          model.CitationTypeURL,
			Confidence:    confidence,
			IsTrusted:     e.trust.IsTrusted(domain),
		}
		if opts.ExtractTitles {
			c.Title = titleAround(text, span[0])
		}
		citations = append(citations, c)
	}

	// Remaining markers stand alone as reference citations.
	for i, ms := range markerSpans {
		if absorbed[i] {
			continue
		}
		citations = append(citations, model.Citation{
			RawText:    text[ms[0]:ms[1]],
			Type:       model.CitationTypeReferenceMarker,
			Confidence: 0.5,
		})
	}

	// Inline "Source: X" / "According to X" mentions.
	for _, m := range inlinePattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(strings.TrimRight(m[1], ".,;: "))
		if name == "" {
			continue
		}
		citations = append(citations, model.Citation{
			RawText:    strings.TrimSpace(m[0]),
			Title:      name,
			Type:       model.CitationTypeInlineSource,
			Confidence: 0.35,
		})
	}

	citations = dedupeCitations(citations)

	// Threshold, then order by descending confidence.
	kept := citations[:0]
	for _, c := range citations {
		if c.Confidence >= opts.ConfidenceThreshold {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence > kept[j].Confidence
	})

	if len(kept) > opts.MaxCitations {
		kept = kept[:opts.MaxCitations]
	}
	if len(kept) > 0 {
		kept[0].IsPrimary = true
	}

	out := make([]model.Citation, len(kept))
	copy(out, kept)
	return out, nil
}

// Stats aggregates counts by type and distinct domain. Pure and stateless.
func Stats(citations []model.Citation) model.CitationStats {
	stats := model.CitationStats{
		TotalCitations:   len(citations),
		TypeDistribution: make(map[model.CitationType]int),
	}

	domains := make(map[string]bool)
	for _, c := range citations {
		stats.TypeDistribution[c.Type]++
		if c.Domain != "" {
			domains[c.Domain] = true
		}
		if c.IsTrusted {
			stats.TrustedCitations++
		}
	}
	stats.UniqueDomains = len(domains)

	return stats
}

func validateOptions(opts *Options) error {
	if opts.MaxCitations < 0 {
		return errors.New("max citations must not be negative")
	}
	if opts.MaxCitations == 0 {
		opts.MaxCitations = DefaultOptions().MaxCitations
	}
	if opts.ConfidenceThreshold < 0 || opts.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold %.2f outside [0,1]", opts.ConfidenceThreshold)
	}
	return nil
}

// normalizeURL lowercases the scheme and host, strips fragments and the
// trailing slash, and returns the dedup form plus the bare domain.
func normalizeURL(raw string) (normalized, domain string, ok bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", "", false
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")

	return parsed.String(), host, true
}

// dedupeCitations collapses citations sharing a dedup key, keeping the
// highest-confidence instance. URL citations key on case-insensitive
// domain+path; other types key on their raw text.
func dedupeCitations(citations []model.Citation) []model.Citation {
	best := make(map[string]int)
	var unique []model.Citation

	for _, c := range citations {
		key := citationKey(c)
		if idx, seen := best[key]; seen {
			if c.Confidence > unique[idx].Confidence {
				unique[idx] = c
			}
			continue
		}
		best[key] = len(unique)
		unique = append(unique, c)
	}

	return unique
}

func citationKey(c model.Citation) string {
	if c.Type == model.CitationTypeURL {
		parsed, err := url.Parse(c.NormalizedURL)
		if err == nil && parsed.Host != "" {
			return "url:" + c.Domain + strings.ToLower(parsed.Path)
		}
		return "url:" + strings.ToLower(c.NormalizedURL)
	}
	return string(c.Type) + ":" + strings.ToLower(strings.TrimSpace(c.RawText))
}

// spansNear reports whether two match spans are within dist bytes
func spansNear(a, b []int, dist int) bool {
	if a[1] <= b[0] {
		return b[0]-a[1] <= dist
	}
	if b[1] <= a[0] {
		return a[0]-b[1] <= dist
	}
	return true // Overlapping
}

// titleAround grabs the sentence fragment preceding a match position
func titleAround(text string, pos int) string {
	start := pos
	for start > 0 && pos-start < 120 {
		r := text[start-1]
		if r == '.' || r == '\n' || r == '!' || r == '?' {
			break
		}
		start--
	}
	title := strings.TrimSpace(text[start:pos])
	title = strings.TrimRight(title, " :-–(")
	if len(title) > 80 {
		title = title[len(title)-80:]
	}
	return title
}
