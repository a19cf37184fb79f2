package schema

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
)

// urlFields are block keys whose values must be absolute URLs when present
var urlFields = []string{"url", "logo", "image"}

// Validate runs the structural checks on a JSON-LD block. Errors make the
// block unusable (missing @type, malformed URLs); warnings (non-HTTPS,
// duplicates) are advisory and callers may proceed on them.
func Validate(block map[string]any) []model.SchemaFinding {
	var findings []model.SchemaFinding

	blockType, _ := block["@type"].(string)
	if strings.TrimSpace(blockType) == "" {
		findings = append(findings, model.SchemaFinding{
			Severity: model.FindingError,
			Message:  "missing @type",
		})
	}

	if ctx, ok := block["@context"].(string); !ok || ctx == "" {
		findings = append(findings, model.SchemaFinding{
			Severity: model.FindingWarning,
			Message:  "missing @context",
		})
	}

	for _, field := range urlFields {
		raw, ok := block[field].(string)
		if !ok || raw == "" {
			continue
		}
		findings = append(findings, checkURL(field, raw)...)
	}

	seen := make(map[string]bool)
	for i, u := range existingSameAs(block) {
		findings = append(findings, checkURL(fmt.Sprintf("sameAs[%d]", i), u)...)
		if seen[strings.ToLower(u)] {
			findings = append(findings, model.SchemaFinding{
				Severity: model.FindingWarning,
				Message:  fmt.Sprintf("duplicate sameAs entry: %s", u),
			})
		}
		seen[strings.ToLower(u)] = true
	}

	return findings
}

// HasErrors reports whether any finding is blocking
func HasErrors(findings []model.SchemaFinding) bool {
	for _, f := range findings {
		if f.Severity == model.FindingError {
			return true
		}
	}
	return false
}

func checkURL(field, raw string) []model.SchemaFinding {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return []model.SchemaFinding{{
			Severity: model.FindingError,
			Message:  fmt.Sprintf("%s is not an absolute URL: %s", field, raw),
		}}
	}
	if parsed.Scheme != "https" {
		return []model.SchemaFinding{{
			Severity: model.FindingWarning,
			Message:  fmt.Sprintf("%s is not HTTPS: %s", field, raw),
		}}
	}
	return nil
}
