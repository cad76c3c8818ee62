package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashgen-api/internal/api/shared"
	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/phrazzld/flashgen-api/internal/redact"
	"github.com/phrazzld/flashgen-api/internal/service"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// MissingPaymentFieldsMessage is returned when a charge lacks a phone number or amount.
const MissingPaymentFieldsMessage = "Missing phone number or amount"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if failure, ok := generation.AsFailure(err); ok {
		return failureStatus(failure.Kind)
	}

	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Payment errors
	case errors.Is(err, service.ErrChargeFailed),
		errors.Is(err, service.ErrPersistFailed):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

func failureStatus(kind generation.Kind) int {
	switch kind {
	case generation.KindValidation:
		return http.StatusBadRequest
	case generation.KindTimeout:
		return http.StatusGatewayTimeout
	case generation.KindTransport:
		return http.StatusBadGateway
	default:
		// Extraction, parse and empty-result failures are all server-side.
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	if failure, ok := generation.AsFailure(err); ok {
		// Transport messages can quote upstream error bodies.
		if failure.Kind == generation.KindTransport {
			return redact.String(failure.Message)
		}
		return failure.Message
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrMissingPaymentField):
		return MissingPaymentFieldsMessage

	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, service.ErrChargeFailed):
		return "Payment request failed"

	case errors.Is(err, service.ErrPersistFailed):
		return "Payment was sent but could not be recorded"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
