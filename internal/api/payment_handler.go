package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashgen-api/internal/api/shared"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/redact"
	"github.com/phrazzld/flashgen-api/internal/service"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService, logger *slog.Logger) *PaymentHandler {
	if paymentService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("paymentService cannot be nil for PaymentHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger.With(slog.String("component", "payment_handler")),
	}
}

// Pay handles POST /api/pay requests.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	receipt, err := h.paymentService.Charge(r.Context(), req.ToCharge())
	if err != nil {
		h.respondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PaymentResponse{
		Success:  true,
		Checkout: &Checkout{Invoice: receipt.InvoiceID},
	})
}

// respondWithError writes the pay endpoint's failure body, which differs
// from the shared error body.
func (h *PaymentHandler) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.LogAttrs(r.Context(), level, "payment request failed",
		slog.Int("status_code", status),
		slog.String("user_message", message),
		slog.String("error", redact.Error(err)),
		slog.String("trace_id", shared.GetTraceID(r.Context())))

	shared.RespondWithJSON(w, r, status, PaymentResponse{Success: false, Error: message})
}
