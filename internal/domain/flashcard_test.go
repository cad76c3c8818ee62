package domain

import (
	"errors"
	"testing"
)

func TestNewFlashcard(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard("  What is Go?  ", "\tA programming language\n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if card.Question != "What is Go?" {
		t.Errorf("Expected trimmed question, got %q", card.Question)
	}
	if card.Answer != "A programming language" {
		t.Errorf("Expected trimmed answer, got %q", card.Answer)
	}
	if card.ID != 0 || !card.CreatedAt.IsZero() {
		t.Error("Expected ID and CreatedAt to be left for the store")
	}
}

func TestNewFlashcard_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question string
		answer   string
		wantErr  error
	}{
		{name: "empty question", question: "", answer: "A", wantErr: ErrEmptyQuestion},
		{name: "blank question", question: "   ", answer: "A", wantErr: ErrEmptyQuestion},
		{name: "empty answer", question: "Q", answer: "", wantErr: ErrEmptyAnswer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFlashcard(tc.question, tc.answer)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
			if !errors.Is(err, ErrEmptyContent) {
				t.Errorf("Expected error to wrap ErrEmptyContent, got %v", err)
			}
		})
	}
}
