package store

import (
	"context"

	"github.com/phrazzld/flashgen-api/internal/domain"
)

// PaymentStore defines the interface for payment record persistence.
type PaymentStore interface {
	// Create inserts a payment record exactly as given.
	Create(ctx context.Context, record *domain.PaymentRecord) error
}
