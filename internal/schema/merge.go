package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/xenlixai/aeoscan/internal/model"
)

// ParseBlock parses a JSON-LD block from raw text. Blocks scraped out of
// page source are frequently sloppy (trailing commas, single quotes,
// comments), so a failed strict parse is retried through jsonrepair.
func ParseBlock(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty block")
	}

	var block map[string]any
	if err := json.Unmarshal([]byte(raw), &block); err == nil {
		return block, nil
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, fmt.Errorf("repair block: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &block); err != nil {
		return nil, fmt.Errorf("parse repaired block: %w", err)
	}

	return block, nil
}

// MergeSameAs replaces the block's sameAs list with the validated URLs and
// reports how the list changed. The input block is not mutated.
func MergeSameAs(block map[string]any, sameAs []string) (map[string]any, model.SameAsDiff) {
	previous := existingSameAs(block)
	next := dedupe(sameAs)

	diff := model.SameAsDiff{
		Added:     []string{},
		Removed:   []string{},
		Unchanged: []string{},
	}

	prevSet := make(map[string]bool, len(previous))
	for _, u := range previous {
		prevSet[u] = true
	}
	nextSet := make(map[string]bool, len(next))
	for _, u := range next {
		nextSet[u] = true
	}

	for _, u := range next {
		if prevSet[u] {
			diff.Unchanged = append(diff.Unchanged, u)
		} else {
			diff.Added = append(diff.Added, u)
		}
	}
	for _, u := range previous {
		if !nextSet[u] {
			diff.Removed = append(diff.Removed, u)
		}
	}

	merged := make(map[string]any, len(block)+1)
	for k, v := range block {
		merged[k] = v
	}
	if len(next) > 0 {
		merged["sameAs"] = next
	} else {
		delete(merged, "sameAs")
	}

	return merged, diff
}

// existingSameAs reads the block's current sameAs value, tolerating both
// string and array forms
func existingSameAs(block map[string]any) []string {
	raw, ok := block["sameAs"]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		var urls []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				urls = append(urls, s)
			}
		}
		return urls
	default:
		return nil
	}
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
