package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/xenlixai/aeoscan/internal/model"
)

// questionWords open sentences that read as questions even without a
// trailing question mark
var questionWords = []string{
	"what", "why", "how", "when", "where", "who", "which",
	"can", "does", "do", "is", "are", "should", "will",
}

// faqMarkers are class/id substrings that identify FAQ-like markup blocks
var faqMarkers = []string{"faq", "question", "qanda", "q-and-a", "accordion"}

// QuestionExtractor pulls question-like text out of page markup
type QuestionExtractor struct{}

// NewQuestionExtractor creates a question extractor
func NewQuestionExtractor() *QuestionExtractor {
	return &QuestionExtractor{}
}

// Extract collects h2/h3 headings and FAQ-block entries that look like
// questions. Results are deduplicated by lowercased text.
func (e *QuestionExtractor) Extract(htmlContent string) ([]model.ExtractedQuestion, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var questions []model.ExtractedQuestion

	var walk func(n *html.Node, inFAQ bool)
	walk = func(n *html.Node, inFAQ bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "h2", "h3":
				text := nodeText(n)
				if IsQuestionLike(text) {
					source := model.QuestionFromHeading
					if inFAQ {
						source = model.QuestionFromFAQBlock
					}
					questions = append(questions, model.ExtractedQuestion{Text: text, Source: source})
				}
			case "dt", "summary":
				text := nodeText(n)
				if IsQuestionLike(text) {
					questions = append(questions, model.ExtractedQuestion{Text: text, Source: model.QuestionFromFAQBlock})
				}
			}

			if !inFAQ && hasFAQMarker(n) {
				inFAQ = true
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inFAQ)
		}
	}

	walk(doc, false)

	return dedupeQuestions(questions), nil
}

// IsQuestionLike reports whether text reads as a question: it either ends
// with a question mark or opens with an interrogative word.
func IsQuestionLike(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) < 4 || len(text) > 200 {
		return false
	}
	if strings.HasSuffix(text, "?") {
		return true
	}

	first := strings.ToLower(strings.Fields(text)[0])
	for _, w := range questionWords {
		if first == w {
			return true
		}
	}
	return false
}

func hasFAQMarker(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" && attr.Key != "id" && attr.Key != "itemtype" {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, marker := range faqMarkers {
			if strings.Contains(val, marker) {
				return true
			}
		}
	}
	return false
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func dedupeQuestions(questions []model.ExtractedQuestion) []model.ExtractedQuestion {
	seen := make(map[string]bool)
	unique := make([]model.ExtractedQuestion, 0, len(questions))

	for _, q := range questions {
		key := strings.ToLower(strings.TrimSpace(q.Text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, q)
		}
	}

	return unique
}
