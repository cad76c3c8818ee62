package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phrazzld/flashgen-api/internal/domain"
)

// MaxFlashcards is the most cards a single generation returns, whatever the
// model produced.
const MaxFlashcards = 3

// Validate parses candidate with a strict JSON decoder and converts it into
// at most MaxFlashcards flashcards, in the order they appear. raw is the full
// model output and is only used for failure excerpts.
//
// A single object is treated as a one-element array. Entries that are not
// objects, or that lack a question or answer key, are skipped. Non-string
// values, null included, are converted to text rather than rejected.
func Validate(candidate, raw string) ([]*domain.Flashcard, error) {
	parsed, err := decodeStrict(candidate)
	if err != nil {
		return nil, NewFailure(KindParse, "Invalid JSON in AI response: "+err.Error(), err).WithDebug(raw)
	}

	var items []any
	switch v := parsed.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	}

	cards := make([]*domain.Flashcard, 0, MaxFlashcards)
	for _, item := range items {
		if len(cards) == MaxFlashcards {
			break
		}
		card, ok := toFlashcard(item)
		if !ok {
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, NewFailure(KindEmptyResult, "AI response contained no valid flashcards", nil).WithDebug(raw)
	}
	return cards, nil
}

func decodeStrict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON value at offset %d", dec.InputOffset())
	}
	return v, nil
}

func toFlashcard(item any) (*domain.Flashcard, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, false
	}
	rawQ, hasQ := m["question"]
	rawA, hasA := m["answer"]
	if !hasQ || !hasA {
		return nil, false
	}

	question, ok := coerceText(rawQ)
	if !ok {
		return nil, false
	}
	answer, ok := coerceText(rawA)
	if !ok {
		return nil, false
	}

	card, err := domain.NewFlashcard(question, answer)
	if err != nil {
		return nil, false
	}
	return card, true
}

// coerceText renders a decoded JSON value as text.
func coerceText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "null", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
