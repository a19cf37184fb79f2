package gap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"

	"github.com/xenlixai/aeoscan/internal/model"
)

// OpenAISource generates candidate questions with a chat model. It asks for
// a JSON array and runs the response through jsonrepair before unmarshaling,
// since models routinely emit trailing commas or fenced code blocks.
type OpenAISource struct {
	client       *openai.Client
	model        string
	maxQuestions int
}

// NewOpenAISource creates an OpenAI-backed question source
func NewOpenAISource(cfg model.QuestionsConfig) (*OpenAISource, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxQuestions := cfg.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = 10
	}

	return &OpenAISource{
		client:       openai.NewClientWithConfig(clientConfig),
		model:        chatModel,
		maxQuestions: maxQuestions,
	}, nil
}

// Name returns the source name
func (s *OpenAISource) Name() string { return "openai" }

// Questions asks the model for the questions searchers actually pose about
// the keyword, in the style of "People Also Ask" suggestions
func (s *OpenAISource) Questions(ctx context.Context, keyword string) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is empty")
	}

	prompt := fmt.Sprintf(
		`List the %d most common questions people search for about "%s". `+
			`Respond with a JSON array of strings only, no commentary.`,
		s.maxQuestions, keyword)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You generate realistic search questions. Output JSON arrays only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	questions, err := parseQuestionArray(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	if len(questions) > s.maxQuestions {
		questions = questions[:s.maxQuestions]
	}

	return questions, nil
}

// parseQuestionArray unmarshals a model response into a string slice,
// stripping code fences and repairing sloppy JSON first
func parseQuestionArray(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return nil, fmt.Errorf("repair: %w", err)
	}

	var questions []string
	if err := json.Unmarshal([]byte(repaired), &questions); err != nil {
		return nil, err
	}

	cleaned := questions[:0]
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q != "" {
			cleaned = append(cleaned, q)
		}
	}
	return cleaned, nil
}
