package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestPaymentCharge_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		charge  PaymentCharge
		wantErr error
		field   string
	}{
		{name: "valid", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "100"}},
		{name: "valid decimal", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "99.50"}},
		{name: "missing phone", charge: PaymentCharge{Amount: "100"}, wantErr: ErrMissingPaymentField, field: "phone_number"},
		{name: "missing amount", charge: PaymentCharge{PhoneNumber: "254712345678"}, wantErr: ErrMissingPaymentField, field: "amount"},
		{name: "non numeric amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "ten"}, wantErr: ErrInvalidFormat, field: "amount"},
		{name: "zero amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "0"}, wantErr: ErrValidation, field: "amount"},
		{name: "negative amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "-5"}, wantErr: ErrValidation, field: "amount"},
		{name: "trailing zero places", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "1.500"}},
		{name: "largest storable amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "9999999999.99"}},
		{name: "fraction amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "1/2"}, wantErr: ErrInvalidFormat, field: "amount"},
		{name: "hex amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "0x10"}, wantErr: ErrInvalidFormat, field: "amount"},
		{name: "exponent amount", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "1e3"}, wantErr: ErrInvalidFormat, field: "amount"},
		{name: "too many decimal places", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "0.001"}, wantErr: ErrValidation, field: "amount"},
		{name: "amount too large", charge: PaymentCharge{PhoneNumber: "254712345678", Amount: "99999999999999"}, wantErr: ErrValidation, field: "amount"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.charge.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tc.field {
				t.Errorf("Expected validation error on field %q, got %v", tc.field, err)
			}
		})
	}
}

func TestNewPaymentRecord(t *testing.T) {
	t.Parallel()

	record := NewPaymentRecord(" 150 ", "PENDING", "INV-123")

	if record.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if record.Amount != "150" {
		t.Errorf("Expected trimmed amount, got %q", record.Amount)
	}
	if record.Status != "PENDING" || record.TransactionID != "INV-123" {
		t.Errorf("Expected provider values verbatim, got %q/%q", record.Status, record.TransactionID)
	}
	if record.UserID != PlaceholderUserID {
		t.Errorf("Expected placeholder user, got %d", record.UserID)
	}
	if record.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
}
