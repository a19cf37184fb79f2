package gap

import (
	"context"
	"testing"
	"time"

	"github.com/xenlixai/aeoscan/internal/cache"
	"github.com/xenlixai/aeoscan/internal/model"
)

func TestStaticSource_Deterministic(t *testing.T) {
	source := NewStaticSource(10)

	first, err := source.Questions(context.Background(), "plumbing service")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := source.Questions(context.Background(), "plumbing service")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(first) == 0 {
		t.Fatal("Expected generated questions")
	}
	if len(first) != len(second) {
		t.Fatalf("Expected deterministic output, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Question %d differs between runs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestStaticSource_CategoryTemplates(t *testing.T) {
	source := NewStaticSource(10)

	local, _ := source.Questions(context.Background(), "dentist near me")
	foundNearMe := false
	for _, q := range local {
		if q == "What is the best dentist near me near me?" || q == "How much does dentist near me cost?" {
			foundNearMe = true
		}
	}
	if !foundNearMe {
		t.Errorf("Expected local templates for 'near me' keyword, got %v", local)
	}

	if _, err := source.Questions(context.Background(), "  "); err == nil {
		t.Error("Expected error for empty keyword")
	}
}

func TestStaticSource_MaxQuestions(t *testing.T) {
	source := NewStaticSource(2)
	questions, err := source.Questions(context.Background(), "seo")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("Expected 2 questions, got %d", len(questions))
	}
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(model.QuestionsConfig{Provider: "static"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if src.Name() != "static" {
		t.Errorf("Expected static source, got %s", src.Name())
	}

	if _, err := NewSource(model.QuestionsConfig{Provider: "bing"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	if _, err := NewSource(model.QuestionsConfig{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai provider without API key")
	}
}

// countingSource tracks upstream calls to verify caching
type countingSource struct {
	calls int
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Questions(_ context.Context, _ string) ([]string, error) {
	c.calls++
	return []string{"What is cached?"}, nil
}

func TestCachedSource(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		questions, err := cached.Questions(context.Background(), "aeo")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(questions) != 1 || questions[0] != "What is cached?" {
			t.Fatalf("Unexpected questions: %v", questions)
		}
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", inner.calls)
	}
}

func TestParseQuestionArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"clean", `["What is AEO?", "How does AEO work?"]`, 2},
		{"fenced", "```json\n[\"What is AEO?\"]\n```", 1},
		{"trailing comma", `["What is AEO?", "Why AEO?",]`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := parseQuestionArray(tt.content)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(questions) != tt.want {
				t.Errorf("Expected %d questions, got %d: %v", tt.want, len(questions), questions)
			}
		})
	}
}
