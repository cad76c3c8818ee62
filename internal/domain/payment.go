package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceholderUserID is written to every payment record. There is no user
// model yet, so all payments are attributed to this single account.
const PlaceholderUserID int64 = 1

// Amounts are stored as NUMERIC(12,2).
const amountScale = 2

var (
	amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
	// maxAmount is the first value a NUMERIC(12,2) column cannot hold.
	maxAmount = decimal.New(1, 10)
)

// ErrMissingPaymentField is returned when a charge has no phone number or amount.
var ErrMissingPaymentField = fmt.Errorf("%w: payment field", ErrEmptyContent)

// PaymentCharge is an inbound request to collect money from a phone number.
type PaymentCharge struct {
	PhoneNumber string
	Email       string
	// Amount is a decimal string, e.g. "150" or "99.50".
	Amount string
	Plan   string
}

// Validate checks the charge before any provider call is made.
func (c PaymentCharge) Validate() error {
	if strings.TrimSpace(c.PhoneNumber) == "" {
		return NewValidationError("phone_number", "is required", ErrMissingPaymentField)
	}
	amount := strings.TrimSpace(c.Amount)
	if amount == "" {
		return NewValidationError("amount", "is required", ErrMissingPaymentField)
	}
	if !amountPattern.MatchString(amount) {
		return NewValidationError("amount", "must be a decimal number", ErrInvalidFormat)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return NewValidationError("amount", "must be a decimal number", ErrInvalidFormat)
	}
	if !d.IsPositive() {
		return NewValidationError("amount", "must be greater than zero", ErrValidation)
	}
	if !d.Equal(d.Round(amountScale)) {
		return NewValidationError("amount", "must have at most 2 decimal places", ErrValidation)
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return NewValidationError("amount", "must be less than 10000000000", ErrValidation)
	}
	return nil
}

// PaymentRecord is the persisted outcome of one provider charge call.
// Status and TransactionID are stored exactly as the provider reported them.
type PaymentRecord struct {
	ID            uuid.UUID `json:"id"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	UserID        int64     `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewPaymentRecord builds a record for a completed provider call.
func NewPaymentRecord(amount, status, transactionID string) *PaymentRecord {
	return &PaymentRecord{
		ID:            uuid.New(),
		Amount:        strings.TrimSpace(amount),
		Status:        status,
		TransactionID: transactionID,
		UserID:        PlaceholderUserID,
		CreatedAt:     time.Now().UTC(),
	}
}
