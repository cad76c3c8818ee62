package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashgen-api/internal/domain"
)

// MockFlashcardGenerator implements service.FlashcardGenerator for testing
type MockFlashcardGenerator struct {
	GenerateFn func(ctx context.Context, notes string) ([]*domain.Flashcard, error)

	// Default response values
	Cards []*domain.Flashcard
	Err   error

	GenerateCalls struct {
		mu    sync.Mutex
		Count int
		Notes []string
	}
}

// Generate implements service.FlashcardGenerator
func (m *MockFlashcardGenerator) Generate(ctx context.Context, notes string) ([]*domain.Flashcard, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Notes = append(m.GenerateCalls.Notes, notes)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, notes)
	}
	return m.Cards, m.Err
}
