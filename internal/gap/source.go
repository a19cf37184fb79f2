package gap

import (
	"context"
	"fmt"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
)

// QuestionSource supplies candidate popular questions for a keyword.
// Implementations stand in for search-suggestion APIs; the analyzer never
// cares where the questions come from.
type QuestionSource interface {
	// Name returns the source name
	Name() string

	// Questions returns candidate questions for the keyword
	Questions(ctx context.Context, keyword string) ([]string, error)
}

// NewSource creates a question source from configuration
func NewSource(cfg model.QuestionsConfig) (QuestionSource, error) {
	switch strings.ToLower(cfg.Provider) {
	case "static", "":
		return NewStaticSource(cfg.MaxQuestions), nil

	case "openai":
		return NewOpenAISource(cfg)

	default:
		return nil, fmt.Errorf("unknown question provider: %s (supported: static, openai)", cfg.Provider)
	}
}
