package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/flashgen-api/internal/domain"
)

// Common request/response structures

// OKResponse is the body of endpoints that only acknowledge success.
type OKResponse struct {
	OK bool `json:"ok"`
}

// CreateFlashcardRequest defines the payload for saving a flashcard.
type CreateFlashcardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// FlashcardResponse is a saved flashcard as returned by the list endpoint.
type FlashcardResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateRequest defines the payload for the generate endpoint. Notes are
// validated by the pipeline, not by struct tags, so the empty-notes message
// stays the same however the request is made.
type GenerateRequest struct {
	Notes string `json:"notes"`
}

// GeneratedFlashcard is an unsaved question/answer pair.
type GeneratedFlashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateResponse wraps the generated cards.
type GenerateResponse struct {
	Flashcards []GeneratedFlashcard `json:"flashcards"`
}

// Amount is a decimal amount that clients may send either as a JSON string
// or a JSON number. The textual form is kept as sent.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("amount must be a string or a number: %w", err)
		}
		*a = Amount(n.String())
		return nil
	}
}

// PayRequest defines the payload for the pay endpoint.
type PayRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Amount      Amount `json:"amount"`
	Plan        string `json:"plan"`
}

// ToCharge converts the request into a domain charge.
func (r PayRequest) ToCharge() domain.PaymentCharge {
	return domain.PaymentCharge{
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Amount:      string(r.Amount),
		Plan:        r.Plan,
	}
}

// Checkout identifies the provider invoice created for a charge.
type Checkout struct {
	Invoice string `json:"invoice"`
}

// PaymentResponse is the body of every pay response, success or not.
type PaymentResponse struct {
	Success  bool      `json:"success"`
	Checkout *Checkout `json:"checkout,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID,
		Question:  card.Question,
		Answer:    card.Answer,
		CreatedAt: card.CreatedAt,
	}
}
