package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a SQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new FlashcardStore backed by db.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// Create implements store.FlashcardStore.Create.
// The creation timestamp is assigned here, never taken from the caller.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	query := `
		INSERT INTO flashcards (question, answer, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query, card.Question, card.Answer, createdAt).Scan(&id)
	if err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()))
		return store.NewOpError("flashcard", "create", "insert failed", MapError(err))
	}

	card.ID = id
	card.CreatedAt = createdAt

	log.Info("flashcard created successfully",
		slog.Int64("flashcard_id", id))
	return nil
}

// List implements store.FlashcardStore.List.
func (s *PostgresFlashcardStore) List(ctx context.Context) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question, answer, created_at
		FROM flashcards
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query flashcards",
			slog.String("error", err.Error()))
		return nil, store.NewOpError("flashcard", "list", "query failed", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.ID, &card.Question, &card.Answer, &card.CreatedAt); err != nil {
			log.Error("failed to scan flashcard row",
				slog.String("error", err.Error()))
			return nil, store.NewOpError("flashcard", "list", "scan failed", err)
		}
		card.CreatedAt = card.CreatedAt.UTC()
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating flashcard rows",
			slog.String("error", err.Error()))
		return nil, store.NewOpError("flashcard", "list", "row iteration failed", MapError(err))
	}

	log.Debug("flashcards listed", slog.Int("count", len(cards)))
	return cards, nil
}
