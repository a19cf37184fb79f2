package model

// ExtractedQuestion is a question-like heading or FAQ entry found in a page
type ExtractedQuestion struct {
	Text   string         `json:"text"`
	Source QuestionOrigin `json:"source"` // heading or faq_block
}

// QuestionOrigin identifies where in the markup a question was found
type QuestionOrigin string

const (
	QuestionFromHeading  QuestionOrigin = "heading"
	QuestionFromFAQBlock QuestionOrigin = "faq_block"
)

// CandidateQuestion is a popular question for a keyword, supplied by a
// question source (search suggestions, PAA data, or a generator)
type CandidateQuestion struct {
	Text string `json:"text"`
}

// GapReport is the outcome of comparing a page's answered questions against
// the candidate question set for its primary keyword
type GapReport struct {
	Keyword           string              `json:"keyword"`
	AnsweredQuestions []CandidateQuestion `json:"answered_questions"`
	MissingQuestions  []CandidateQuestion `json:"missing_questions"`
	Metrics           GapMetrics          `json:"analysis_metrics"`
}

// GapMetrics carries the coverage and opportunity numbers for a gap analysis
type GapMetrics struct {
	TotalCandidates    int     `json:"total_candidates"`
	ExtractedQuestions int     `json:"extracted_questions"`
	AnsweredCount      int     `json:"answered_count"`
	MissingCount       int     `json:"missing_count"`
	CoveragePercentage float64 `json:"coverage_percentage"` // 0-100
	OpportunityScore   int     `json:"opportunity_score"`   // 0-100
}
