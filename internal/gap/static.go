package gap

import (
	"context"
	"fmt"
	"strings"
)

// keyword categories select which question templates apply
type keywordCategory string

const (
	categoryService       keywordCategory = "service"
	categoryProduct       keywordCategory = "product"
	categoryLocal         keywordCategory = "local"
	categoryInformational keywordCategory = "informational"
)

var categoryTemplates = map[keywordCategory][]string{
	categoryService: {
		"What is %s?",
		"How much does %s cost?",
		"How long does %s take?",
		"Is %s worth it?",
		"How do I choose a %s provider?",
		"What should I look for in %s?",
	},
	categoryProduct: {
		"What is %s?",
		"How much does %s cost?",
		"Where can I buy %s?",
		"What are the best %s alternatives?",
		"Is %s worth the money?",
		"How do I use %s?",
	},
	categoryLocal: {
		"What is the best %s near me?",
		"How much does %s cost?",
		"What are the hours for %s?",
		"How do I find a reliable %s?",
		"Does %s offer free estimates?",
		"What areas does %s serve?",
	},
	categoryInformational: {
		"What is %s?",
		"How does %s work?",
		"Why is %s important?",
		"What are the benefits of %s?",
		"How do I get started with %s?",
		"What are common mistakes with %s?",
	},
}

// StaticSource is a deterministic question generator keyed by keyword
// category. It is the offline stand-in for a real search-suggestion API:
// same keyword in, same questions out.
type StaticSource struct {
	maxQuestions int
}

// NewStaticSource creates a static source returning at most maxQuestions
func NewStaticSource(maxQuestions int) *StaticSource {
	if maxQuestions <= 0 {
		maxQuestions = 10
	}
	return &StaticSource{maxQuestions: maxQuestions}
}

// Name returns the source name
func (s *StaticSource) Name() string { return "static" }

// Questions generates template questions for the keyword's category
func (s *StaticSource) Questions(_ context.Context, keyword string) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is empty")
	}

	templates := categoryTemplates[categorize(keyword)]
	questions := make([]string, 0, len(templates))
	for _, tpl := range templates {
		questions = append(questions, fmt.Sprintf(tpl, keyword))
		if len(questions) >= s.maxQuestions {
			break
		}
	}

	return questions, nil
}

func categorize(keyword string) keywordCategory {
	lower := strings.ToLower(keyword)

	for _, marker := range []string{"near me", "in ", "local"} {
		if strings.Contains(lower, marker) {
			return categoryLocal
		}
	}
	for _, marker := range []string{"service", "repair", "cleaning", "consulting", "agency", "contractor"} {
		if strings.Contains(lower, marker) {
			return categoryService
		}
	}
	for _, marker := range []string{"software", "tool", "app", "platform", "device"} {
		if strings.Contains(lower, marker) {
			return categoryProduct
		}
	}
	return categoryInformational
}
