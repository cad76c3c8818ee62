package domain

import (
	"fmt"
	"strings"
	"time"
)

// Flashcard-specific validation errors
var (
	// ErrEmptyQuestion is returned when a flashcard has no question text.
	ErrEmptyQuestion = fmt.Errorf("%w: question", ErrEmptyContent)

	// ErrEmptyAnswer is returned when a flashcard has no answer text.
	ErrEmptyAnswer = fmt.Errorf("%w: answer", ErrEmptyContent)
)

// Flashcard is a question/answer pair persisted for later study.
// ID and CreatedAt are assigned by the store; a flashcard is never updated.
type Flashcard struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFlashcard creates an unsaved Flashcard after trimming surrounding
// whitespace from both sides. Returns a validation error if either is empty.
func NewFlashcard(question, answer string) (*Flashcard, error) {
	card := &Flashcard{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks that both sides of the card carry text.
func (f *Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return NewValidationError("question", "is required", ErrEmptyQuestion)
	}
	if strings.TrimSpace(f.Answer) == "" {
		return NewValidationError("answer", "is required", ErrEmptyAnswer)
	}
	return nil
}
