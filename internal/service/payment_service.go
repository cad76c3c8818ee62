package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// ChargeRequest is what a PaymentProvider needs to collect a payment.
type ChargeRequest struct {
	PhoneNumber string
	Email       string
	Amount      string
	Currency    string
	// APIRef is the caller's reference for the charge; the plan name when
	// one was given, otherwise a fresh UUID.
	APIRef string
}

// ChargeResult is the provider's answer to a charge, reported verbatim.
type ChargeResult struct {
	State     string
	InvoiceID string
}

// PaymentProvider sends a single charge to an external payment service.
type PaymentProvider interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// Receipt is returned to the client after a successful charge call.
type Receipt struct {
	PaymentID uuid.UUID
	InvoiceID string
	State     string
}

// PaymentService collects payments and records their outcome.
type PaymentService interface {
	// Charge validates charge, calls the provider exactly once and persists
	// the outcome. Validation errors wrap domain.ErrValidation and are
	// returned before any provider call.
	Charge(ctx context.Context, charge domain.PaymentCharge) (*Receipt, error)
}

type paymentServiceImpl struct {
	provider PaymentProvider
	payments store.PaymentStore
	currency string
	logger   *slog.Logger
}

// NewPaymentService creates a PaymentService charging in currency.
// It returns an error if any of the required dependencies are nil.
func NewPaymentService(
	provider PaymentProvider,
	payments store.PaymentStore,
	currency string,
	logger *slog.Logger,
) (PaymentService, error) {
	if provider == nil {
		return nil, &ServiceError{Service: "payment", Operation: "create_service", Message: "provider cannot be nil"}
	}
	if payments == nil {
		return nil, &ServiceError{Service: "payment", Operation: "create_service", Message: "payment store cannot be nil"}
	}
	if strings.TrimSpace(currency) == "" {
		return nil, &ServiceError{Service: "payment", Operation: "create_service", Message: "currency cannot be empty"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &paymentServiceImpl{
		provider: provider,
		payments: payments,
		currency: strings.ToUpper(currency),
		logger:   logger.With(slog.String("component", "payment_service")),
	}, nil
}

// Charge implements PaymentService.
func (s *paymentServiceImpl) Charge(ctx context.Context, charge domain.PaymentCharge) (*Receipt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := charge.Validate(); err != nil {
		log.Debug("payment charge rejected", slog.String("error", err.Error()))
		return nil, err
	}

	apiRef := strings.TrimSpace(charge.Plan)
	if apiRef == "" {
		apiRef = uuid.NewString()
	}

	result, err := s.provider.Charge(ctx, ChargeRequest{
		PhoneNumber: strings.TrimSpace(charge.PhoneNumber),
		Email:       strings.TrimSpace(charge.Email),
		Amount:      strings.TrimSpace(charge.Amount),
		Currency:    s.currency,
		APIRef:      apiRef,
	})
	if err != nil {
		log.Error("payment provider charge failed",
			slog.String("error", err.Error()),
			slog.String("api_ref", apiRef))
		return nil, fmt.Errorf("%w: %w", ErrChargeFailed, err)
	}

	record := domain.NewPaymentRecord(charge.Amount, result.State, result.InvoiceID)
	if err := s.payments.Create(ctx, record); err != nil {
		// The provider has already been asked to charge. Not retried.
		log.Error("charge sent but payment record not saved",
			slog.String("error", err.Error()),
			slog.String("invoice_id", result.InvoiceID),
			slog.String("state", result.State))
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	log.Info("payment charge recorded",
		slog.String("payment_id", record.ID.String()),
		slog.String("invoice_id", result.InvoiceID),
		slog.String("state", result.State))

	return &Receipt{
		PaymentID: record.ID,
		InvoiceID: result.InvoiceID,
		State:     result.State,
	}, nil
}
