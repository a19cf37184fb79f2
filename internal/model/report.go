package model

import "time"

// AuditReport is the complete result of auditing one page
type AuditReport struct {
	Subject   string    `json:"subject"`    // Human-readable subject derived from the URL
	SourceURL string    `json:"source_url"` // Final URL after redirects
	Keyword   string    `json:"keyword,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta"`

	Citations     []Citation    `json:"citations"`
	CitationStats CitationStats `json:"citation_stats"`

	Questions []ExtractedQuestion `json:"questions"`
	Gaps      *GapReport          `json:"gaps,omitempty"`
	GapError  string              `json:"gap_error,omitempty"` // Set when gap analysis failed; distinct from zero gaps
}

// FetchMeta contains HTTP metadata from fetching the page
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	FromCache    bool              `json:"from_cache"`
	Headers      map[string]string `json:"headers,omitempty"`
}
