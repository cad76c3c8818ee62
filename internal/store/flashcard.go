package store

import (
	"context"

	"github.com/phrazzld/flashgen-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
// Flashcards are append-only: there is no update or delete.
type FlashcardStore interface {
	// Create inserts card and fills in its store-assigned ID and CreatedAt.
	// Returns validation errors from the domain Flashcard if data is invalid.
	Create(ctx context.Context, card *domain.Flashcard) error

	// List returns every flashcard, newest first.
	// Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Flashcard, error)
}
