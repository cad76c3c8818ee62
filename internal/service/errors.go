package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps these to HTTP status codes.
var (
	// ErrChargeFailed indicates the payment provider call returned an error.
	// The charge is never retried.
	ErrChargeFailed = errors.New("payment provider charge failed")

	// ErrPersistFailed indicates the provider accepted the charge but the
	// outcome could not be recorded.
	ErrPersistFailed = errors.New("failed to record payment outcome")
)

// ServiceError wraps errors from a service with the operation that failed.
type ServiceError struct {
	// Service is the service that failed (e.g., "payment", "flashcard")
	Service string
	// Operation is the operation that failed (e.g., "charge", "create")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. It returns nil when err is nil.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
