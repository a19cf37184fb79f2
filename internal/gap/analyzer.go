package gap

import (
	"context"
	"fmt"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
)

// stopWords are filtered out before keyword overlap comparison
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"be": true, "been": true, "do": true, "does": true, "did": true,
	"what": true, "why": true, "how": true, "when": true, "where": true,
	"who": true, "which": true, "can": true, "could": true, "should": true,
	"would": true, "will": true, "i": true, "my": true, "your": true,
	"it": true, "its": true, "in": true, "on": true, "at": true, "of": true,
	"for": true, "to": true, "and": true, "or": true, "with": true,
	"you": true, "me": true, "we": true, "they": true, "this": true,
	"that": true, "there": true, "much": true, "many": true,
}

// Matching thresholds: a candidate counts as answered when an extracted
// question shares at least minSharedKeywords meaningful words, or when the
// overlap ratio against the smaller keyword set reaches minOverlapRatio.
const (
	minSharedKeywords = 2
	minOverlapRatio   = 0.4
)

// Analyzer compares a page's extracted questions against the candidate
// question set for its primary keyword
type Analyzer struct {
	source QuestionSource
}

// NewAnalyzer creates an analyzer backed by the given question source
func NewAnalyzer(source QuestionSource) *Analyzer {
	return &Analyzer{source: source}
}

// Analyze fetches candidate questions for the keyword and classifies each
// as answered or missing based on keyword overlap with the extracted set.
//
// Unlike earlier versions of this logic, failures are returned as errors:
// "analysis failed" must be distinguishable from "zero gaps found".
func (a *Analyzer) Analyze(ctx context.Context, extracted []model.ExtractedQuestion, keyword string) (*model.GapReport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is empty")
	}

	candidates, err := a.source.Questions(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate questions: %w", err)
	}

	extractedSets := make([]map[string]bool, len(extracted))
	for i, q := range extracted {
		extractedSets[i] = meaningfulKeywords(q.Text)
	}

	report := &model.GapReport{
		Keyword:           keyword,
		AnsweredQuestions: []model.CandidateQuestion{},
		MissingQuestions:  []model.CandidateQuestion{},
	}

	for _, candidate := range candidates {
		candidateSet := meaningfulKeywords(candidate)

		answered := false
		for _, set := range extractedSets {
			if matches(candidateSet, set) {
				answered = true
				break
			}
		}

		cq := model.CandidateQuestion{Text: candidate}
		if answered {
			report.AnsweredQuestions = append(report.AnsweredQuestions, cq)
		} else {
			report.MissingQuestions = append(report.MissingQuestions, cq)
		}
	}

	report.Metrics = computeMetrics(len(candidates), len(extracted), len(report.AnsweredQuestions))

	return report, nil
}

// matches applies the shared-keyword and overlap-ratio rules
func matches(candidate, extracted map[string]bool) bool {
	if len(candidate) == 0 || len(extracted) == 0 {
		return false
	}

	shared := 0
	for word := range candidate {
		if extracted[word] {
			shared++
		}
	}
	if shared >= minSharedKeywords {
		return true
	}

	smaller := len(candidate)
	if len(extracted) < smaller {
		smaller = len(extracted)
	}
	return float64(shared)/float64(smaller) >= minOverlapRatio
}

func computeMetrics(totalCandidates, extractedCount, answeredCount int) model.GapMetrics {
	metrics := model.GapMetrics{
		TotalCandidates:    totalCandidates,
		ExtractedQuestions: extractedCount,
		AnsweredCount:      answeredCount,
		MissingCount:       totalCandidates - answeredCount,
	}

	if totalCandidates > 0 {
		metrics.CoveragePercentage = float64(answeredCount) / float64(totalCandidates) * 100
	}

	// Opportunity: each missing question is worth 10 points, with bonuses
	// for thin content relative to the candidate set and for low coverage.
	score := metrics.MissingCount * 10
	if extractedCount*2 < totalCandidates {
		score += 15
	}
	switch {
	case metrics.CoveragePercentage < 40:
		score += 20
	case metrics.CoveragePercentage < 70:
		score += 10
	}
	if score > 100 {
		score = 100
	}
	if totalCandidates == 0 {
		score = 0
	}
	metrics.OpportunityScore = score

	return metrics
}

// meaningfulKeywords lowercases, strips punctuation, and removes stop words
func meaningfulKeywords(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) > 1 && !stopWords[w] {
			set[w] = true
		}
	}
	return set
}
