package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// FlashcardGenerator produces flashcards from notes without persisting them.
// It is implemented by generation.Pipeline.
type FlashcardGenerator interface {
	Generate(ctx context.Context, notes string) ([]*domain.Flashcard, error)
}

// FlashcardService provides flashcard operations
type FlashcardService interface {
	// Create saves a user-submitted flashcard. Question and answer are
	// trimmed; empty values are rejected with a domain validation error.
	Create(ctx context.Context, question, answer string) (*domain.Flashcard, error)

	// List returns every saved flashcard, newest first.
	List(ctx context.Context) ([]*domain.Flashcard, error)

	// Generate asks the model for flashcards from notes. Generated cards
	// are returned to the caller, not saved.
	Generate(ctx context.Context, notes string) ([]*domain.Flashcard, error)
}

type flashcardServiceImpl struct {
	cards     store.FlashcardStore
	generator FlashcardGenerator
	logger    *slog.Logger
}

// NewFlashcardService creates a FlashcardService.
// It returns an error if any of the required dependencies are nil.
func NewFlashcardService(
	cards store.FlashcardStore,
	generator FlashcardGenerator,
	logger *slog.Logger,
) (FlashcardService, error) {
	if cards == nil {
		return nil, &ServiceError{Service: "flashcard", Operation: "create_service", Message: "flashcard store cannot be nil"}
	}
	if generator == nil {
		return nil, &ServiceError{Service: "flashcard", Operation: "create_service", Message: "generator cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardServiceImpl{
		cards:     cards,
		generator: generator,
		logger:    logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

func (s *flashcardServiceImpl) Create(ctx context.Context, question, answer string) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewFlashcard(question, answer)
	if err != nil {
		return nil, err
	}

	if err := s.cards.Create(ctx, card); err != nil {
		log.Error("failed to save flashcard", slog.String("error", err.Error()))
		return nil, NewServiceError("flashcard", "create", "failed to save flashcard", err)
	}
	return card, nil
}

func (s *flashcardServiceImpl) List(ctx context.Context) ([]*domain.Flashcard, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, NewServiceError("flashcard", "list", "failed to list flashcards", err)
	}
	return cards, nil
}

// Generate passes generation failures through unchanged so the caller can
// inspect their kind.
func (s *flashcardServiceImpl) Generate(ctx context.Context, notes string) ([]*domain.Flashcard, error) {
	return s.generator.Generate(ctx, notes)
}
