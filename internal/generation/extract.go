package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SpanPolicy selects how the extractor delimits a JSON value inside prose.
type SpanPolicy string

const (
	// SpanGreedy takes everything from the first opening bracket to the last
	// closing bracket. Trailing prose that itself contains a bracket is
	// swallowed and surfaces later as a parse failure.
	SpanGreedy SpanPolicy = "greedy"

	// SpanBalanced takes the first complete JSON value starting at an
	// opening bracket, preferring arrays that contain objects.
	SpanBalanced SpanPolicy = "balanced"
)

// ParseSpanPolicy converts a configuration value to a SpanPolicy.
func ParseSpanPolicy(s string) (SpanPolicy, error) {
	switch p := SpanPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case SpanGreedy, SpanBalanced:
		return p, nil
	case "":
		return SpanGreedy, nil
	default:
		return "", fmt.Errorf("unknown span policy %q", s)
	}
}

// Extract locates the JSON text in raw that most likely holds the
// flashcards. An array span is preferred; a single object span is the
// fallback. When raw contains neither, Extract returns an extraction
// Failure carrying an excerpt of raw.
func Extract(raw string, policy SpanPolicy) (string, error) {
	var (
		span string
		ok   bool
	)
	switch policy {
	case SpanBalanced:
		span, ok = balancedSpan(raw)
	default:
		span, ok = greedySpan(raw)
	}
	if ok {
		return span, nil
	}

	return "", NewFailure(KindExtraction, "Failed to extract JSON from AI response", nil).WithDebug(raw)
}

func greedySpan(raw string) (string, bool) {
	if span, ok := between(raw, '[', ']'); ok {
		return span, true
	}
	return between(raw, '{', '}')
}

// between returns raw from the first open to the last close after it.
func between(raw string, open, close byte) (string, bool) {
	start := strings.IndexByte(raw, open)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, close)
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func balancedSpan(raw string) (string, bool) {
	var firstArray string
	for _, start := range indexesOf(raw, '[') {
		value, ok := decodeAt(raw, start)
		if !ok {
			continue
		}
		if containsObject(value) {
			return value, true
		}
		if firstArray == "" {
			firstArray = value
		}
	}
	if firstArray != "" {
		return firstArray, true
	}

	for _, start := range indexesOf(raw, '{') {
		if value, ok := decodeAt(raw, start); ok {
			return value, true
		}
	}

	// Nothing decodes on its own; hand the greedy span to the validator so
	// the caller gets the parser's complaint instead of a bare extraction
	// failure.
	return greedySpan(raw)
}

func indexesOf(s string, c byte) []int {
	var idx []int
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			idx = append(idx, i)
		}
	}
	return idx
}

// decodeAt returns the complete JSON value beginning at raw[start].
func decodeAt(raw string, start int) (string, bool) {
	dec := json.NewDecoder(strings.NewReader(raw[start:]))
	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return "", false
	}
	return raw[start : start+int(dec.InputOffset())], true
}

func containsObject(array string) bool {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(array), &items); err != nil {
		return false
	}
	for _, item := range items {
		if len(item) > 0 && item[0] == '{' {
			return true
		}
	}
	return false
}
