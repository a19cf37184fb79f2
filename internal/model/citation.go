package model

// Citation represents a single source reference extracted from answer text
type Citation struct {
	RawText       string       `json:"raw_text"`                 // The matched text as it appeared
	NormalizedURL string       `json:"normalized_url,omitempty"` // Lowercased, trailing-slash-stripped URL
	Domain        string       `json:"domain,omitempty"`         // Host portion of the URL
	Title         string       `json:"title,omitempty"`          // Surrounding title text, if extraction enabled
	Type          CitationType `json:"type"`                     // Which pattern family matched
	Confidence    float64      `json:"confidence"`               // Heuristic confidence in [0,1]
	IsTrusted     bool         `json:"is_trusted"`               // Domain is on the trusted list
	IsPrimary     bool         `json:"is_primary"`               // Highest-confidence citation of the result set
}

// CitationType classifies how the citation was expressed in the text
type CitationType string

const (
	CitationTypeURL             CitationType = "url"              // Explicit http(s) URL
	CitationTypeReferenceMarker CitationType = "reference_marker" // Bracketed marker such as [1]
	CitationTypeInlineSource    CitationType = "inline_source"    // "Source:" / "According to" phrase
)

// CitationStats aggregates a citation list for reporting
type CitationStats struct {
	TotalCitations   int                  `json:"total_citations"`
	UniqueDomains    int                  `json:"unique_domains"`
	TrustedCitations int                  `json:"trusted_citations"`
	TypeDistribution map[CitationType]int `json:"type_distribution"`
}
