package model

// BusinessProfile is the structured input for JSON-LD schema generation.
// Rating and FAQ fields are optional; builders never fabricate data for
// fields left empty.
type BusinessProfile struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	URL         string   `json:"url" yaml:"url"`
	Phone       string   `json:"phone,omitempty" yaml:"phone"`
	Email       string   `json:"email,omitempty" yaml:"email"`
	LogoURL     string   `json:"logo_url,omitempty" yaml:"logo_url"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"image_url"`
	PriceRange  string   `json:"price_range,omitempty" yaml:"price_range"`
	SameAs      []string `json:"same_as,omitempty" yaml:"same_as"`

	Address      *PostalAddress `json:"address,omitempty" yaml:"address"`
	Latitude     float64        `json:"latitude,omitempty" yaml:"latitude"`
	Longitude    float64        `json:"longitude,omitempty" yaml:"longitude"`
	OpeningHours []string       `json:"opening_hours,omitempty" yaml:"opening_hours"`

	RatingValue float64 `json:"rating_value,omitempty" yaml:"rating_value"`
	ReviewCount int     `json:"review_count,omitempty" yaml:"review_count"`

	FAQs []FAQ `json:"faqs,omitempty" yaml:"faqs"`
}

// PostalAddress mirrors schema.org/PostalAddress
type PostalAddress struct {
	Street     string `json:"street,omitempty" yaml:"street"`
	City       string `json:"city,omitempty" yaml:"city"`
	Region     string `json:"region,omitempty" yaml:"region"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code"`
	Country    string `json:"country,omitempty" yaml:"country"`
}

// FAQ is a single question/answer pair for FAQPage markup
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// SameAsDiff describes how a merge changed a block's sameAs list
type SameAsDiff struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// SchemaFinding is one issue raised by the structural validator
type SchemaFinding struct {
	Severity FindingSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// FindingSeverity distinguishes blocking errors from advisory warnings
type FindingSeverity string

const (
	FindingError   FindingSeverity = "error"   // Block must not be emitted
	FindingWarning FindingSeverity = "warning" // Callers may proceed
)
