package model

// CheckStatus is the outcome of a single profile existence check
type CheckStatus string

const (
	StatusValid   CheckStatus = "valid"   // 2xx response
	StatusInvalid CheckStatus = "invalid" // Non-2xx response
	StatusTimeout CheckStatus = "timeout" // Request deadline exceeded
	StatusError   CheckStatus = "error"   // Transport or request error
)

// ProfileCheck records the validation of one candidate social profile URL
type ProfileCheck struct {
	Platform       string      `json:"platform"`
	URL            string      `json:"url"`
	FinalURL       string      `json:"final_url,omitempty"` // After redirects
	Status         CheckStatus `json:"status"`
	StatusCode     int         `json:"status_code,omitempty"`
	HasReciprocity bool        `json:"has_reciprocity"` // Page body mentions the canonical domain
	Warning        string      `json:"warning,omitempty"`
}

// SameAsRequest describes one sameAs generation run
type SameAsRequest struct {
	Handle           string   `json:"handle"`
	Canonical        string   `json:"canonical"`         // Canonical site URL, used for reciprocity
	Extras           []string `json:"extras,omitempty"`  // Caller-supplied candidate URLs
	RequireMinimum   int      `json:"require_minimum"`   // Warn if fewer valid profiles found
	CheckReciprocity bool     `json:"check_reciprocity"` // Fetch bodies and look for backlinks
}

// SameAsResult is the outcome of validating all candidate profile URLs
type SameAsResult struct {
	SameAs     []string       `json:"same_as"`  // Validated URLs, one per hostname
	Warnings   []string       `json:"warnings"` // Non-fatal findings
	Summary    CheckSummary   `json:"summary"`
	AllResults []ProfileCheck `json:"all_results"`
}

// CheckSummary counts check outcomes by status
type CheckSummary struct {
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
	Timeouts int `json:"timeouts"`
	Errors   int `json:"errors"`
}
