package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// MockFlashcardStore is an in-memory store.FlashcardStore. Without
// overrides it behaves like the SQL store: it assigns increasing IDs and
// creation times and lists newest first.
type MockFlashcardStore struct {
	CreateFn func(ctx context.Context, card *domain.Flashcard) error
	ListFn   func(ctx context.Context) ([]*domain.Flashcard, error)

	mu     sync.Mutex
	cards  []*domain.Flashcard
	nextID int64
	now    time.Time
}

var _ store.FlashcardStore = (*MockFlashcardStore)(nil)

// Create implements store.FlashcardStore
func (m *MockFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	if err := card.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.now.IsZero() {
		m.now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	// Each card is a second newer than the previous one so ordering is
	// deterministic.
	m.now = m.now.Add(time.Second)
	m.nextID++

	card.ID = m.nextID
	card.CreatedAt = m.now
	stored := *card
	m.cards = append(m.cards, &stored)
	return nil
}

// List implements store.FlashcardStore
func (m *MockFlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Flashcard, 0, len(m.cards))
	for i := len(m.cards) - 1; i >= 0; i-- {
		c := *m.cards[i]
		out = append(out, &c)
	}
	return out, nil
}
