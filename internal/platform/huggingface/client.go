package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4096

// Config configures the inference endpoint and HTTP behavior.
type Config struct {
	// ModelURL is the full inference URL of the model.
	ModelURL string
	// APIKey is sent as a Bearer token.
	APIKey     string
	HTTPClient *http.Client
}

// Client calls a text-generation model hosted on Hugging Face.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a Client. It returns an error when the model URL or the
// credential is missing.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ModelURL) == "" {
		return nil, errors.New("huggingface: model url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("huggingface: api key is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "huggingface_client")),
	}, nil
}

var _ generation.TextGenerator = (*Client)(nil)

type requestParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters requestParameters `json:"parameters"`
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

type errorBody struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Generate implements generation.TextGenerator.
func (c *Client) Generate(ctx context.Context, prompt string, params generation.Params) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: requestParameters{
			MaxNewTokens:   params.MaxNewTokens,
			Temperature:    params.Temperature,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ModelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", generation.ErrAttemptTimeout, err)
		}
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	log.Debug("inference response received",
		slog.Int("status", res.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", c.statusError(res)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", generation.ErrAttemptTimeout, err)
		}
		return "", fmt.Errorf("read inference response: %w", err)
	}
	return parseGeneratedText(payload)
}

func (c *Client) statusError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	var body errorBody
	_ = json.Unmarshal(raw, &body)

	switch {
	case res.StatusCode == http.StatusServiceUnavailable && body.EstimatedTime > 0:
		return &generation.ModelLoadingError{EstimatedTime: seconds(body.EstimatedTime)}
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return generation.NewFailure(generation.KindTransport, "Invalid Hugging Face API key", generation.ErrUnauthorized)
	}

	detail := strings.TrimSpace(body.Error)
	if detail == "" {
		detail = strings.TrimSpace(string(raw))
	}
	return generation.NewFailure(
		generation.KindTransport,
		fmt.Sprintf("AI API error: status %d: %s", res.StatusCode, generation.Excerpt(detail)),
		fmt.Errorf("inference request status %d", res.StatusCode),
	)
}

// parseGeneratedText accepts the documented list form and a bare object.
func parseGeneratedText(payload []byte) (string, error) {
	var list []generatedText
	if err := json.Unmarshal(payload, &list); err == nil {
		if len(list) == 0 {
			return "", fmt.Errorf("%w: empty generation list", generation.ErrInvalidResponse)
		}
		return list[0].GeneratedText, nil
	}

	var single generatedText
	if err := json.Unmarshal(payload, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", fmt.Errorf("%w: unexpected inference payload", generation.ErrInvalidResponse)
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Ceil(s * float64(time.Second)))
}
