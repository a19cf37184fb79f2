package schema

import (
	"encoding/json"
	"fmt"
)

// Pretty renders a block as indented JSON
func Pretty(block map[string]any) (string, error) {
	data, err := json.MarshalIndent(block, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal block: %w", err)
	}
	return string(data), nil
}

// Minified renders a block as compact JSON
func Minified(block map[string]any) (string, error) {
	data, err := json.Marshal(block)
	if err != nil {
		return "", fmt.Errorf("marshal block: %w", err)
	}
	return string(data), nil
}

// HTMLScript renders a block as an embeddable ld+json script tag
func HTMLScript(block map[string]any) (string, error) {
	minified, err := Minified(block)
	if err != nil {
		return "", err
	}
	return `<script type="application/ld+json">` + minified + `</script>`, nil
}
