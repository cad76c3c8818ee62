package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// PostgresPaymentStore implements the store.PaymentStore interface.
type PostgresPaymentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPaymentStore creates a new PaymentStore backed by db.
// If logger is nil, a default logger will be used.
func NewPostgresPaymentStore(db store.DBTX, logger *slog.Logger) *PostgresPaymentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPaymentStore{
		db:     db,
		logger: logger.With(slog.String("component", "payment_store")),
	}
}

var _ store.PaymentStore = (*PostgresPaymentStore)(nil)

// Create implements store.PaymentStore.Create.
// Provider-reported status and transaction ID are written as given; empty
// values become NULL.
func (s *PostgresPaymentStore) Create(ctx context.Context, record *domain.PaymentRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO payments (id, amount, status, transaction_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		record.ID.String(),
		record.Amount,
		nullIfEmpty(record.Status),
		nullIfEmpty(record.TransactionID),
		record.UserID,
		record.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create payment record",
			slog.String("error", err.Error()),
			slog.String("payment_id", record.ID.String()),
			slog.String("transaction_id", record.TransactionID))
		return store.NewOpError("payment", "create", "insert failed", MapError(err))
	}

	log.Info("payment record created",
		slog.String("payment_id", record.ID.String()),
		slog.String("transaction_id", record.TransactionID),
		slog.String("status", record.Status))
	return nil
}
