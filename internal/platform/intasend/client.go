package intasend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/service"
)

// API base URLs.
const (
	SandboxBaseURL = "https://sandbox.intasend.com"
	LiveBaseURL    = "https://payment.intasend.com"
)

const (
	stkPushPath    = "/api/v1/payment/mpesa-stk-push/"
	maxErrorBody   = 4096
	defaultTimeout = 30 * time.Second
)

// Config configures the IntaSend client.
type Config struct {
	SecretKey      string
	PublishableKey string
	// Sandbox selects the sandbox API when BaseURL is empty.
	Sandbox bool
	// BaseURL overrides the API host.
	BaseURL    string
	HTTPClient *http.Client
}

// Client sends charges to IntaSend. Charges are never retried.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a Client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("intasend: secret key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = LiveBaseURL
		if cfg.Sandbox {
			cfg.BaseURL = SandboxBaseURL
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "intasend_client")),
	}, nil
}

var _ service.PaymentProvider = (*Client)(nil)

type stkPushRequest struct {
	PublicKey   string `json:"public_key,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	APIRef      string `json:"api_ref"`
}

type invoice struct {
	InvoiceID string `json:"invoice_id"`
	State     string `json:"state"`
}

// stkPushResponse accepts the state at the top level or nested under invoice.
type stkPushResponse struct {
	InvoiceID string   `json:"invoice_id"`
	State     string   `json:"state"`
	Invoice   *invoice `json:"invoice"`
}

// Charge implements service.PaymentProvider.
func (c *Client) Charge(ctx context.Context, req service.ChargeRequest) (*service.ChargeResult, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(stkPushRequest{
		PublicKey:   c.cfg.PublishableKey,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency,
		APIRef:      req.APIRef,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+stkPushPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)

	res, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charge request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		log.Warn("charge rejected by provider", slog.Int("status", res.StatusCode))
		return nil, fmt.Errorf("charge request status %d: %s", res.StatusCode, errorDetail(raw))
	}

	var payload stkPushResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}

	result := &service.ChargeResult{
		State:     payload.State,
		InvoiceID: payload.InvoiceID,
	}
	if payload.Invoice != nil {
		if result.State == "" {
			result.State = payload.Invoice.State
		}
		if result.InvoiceID == "" {
			result.InvoiceID = payload.Invoice.InvoiceID
		}
	}

	log.Info("charge submitted",
		slog.String("invoice_id", result.InvoiceID),
		slog.String("state", result.State))
	return result, nil
}

// errorDetail extracts a readable message from an IntaSend error body.
func errorDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Errors []struct {
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if len(body.Errors) > 0 && body.Errors[0].Detail != "" {
			return body.Errors[0].Detail
		}
	}
	return strings.TrimSpace(string(raw))
}
