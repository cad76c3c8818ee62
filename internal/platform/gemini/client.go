package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"google.golang.org/genai"
)

// Config configures the Gemini client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Client sends prompts to a Gemini model. Each Generate call is a single
// attempt.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a Client for cfg.Model.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key cannot be empty")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("gemini: model name cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Model,
		logger: logger.With(slog.String("component", "gemini_client"), slog.String("model", cfg.Model)),
	}, nil
}

var _ generation.TextGenerator = (*Client)(nil)

// Generate implements generation.TextGenerator.
func (c *Client) Generate(ctx context.Context, prompt string, params generation.Params) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(params.Temperature)),
	}
	if params.MaxNewTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxNewTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", generation.ErrAttemptTimeout, err)
		}
		log.Warn("Gemini API call error", slog.String("error", err.Error()))
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
			return "", generation.NewFailure(generation.KindTransport, "Invalid Gemini API key",
				fmt.Errorf("%w: %w", generation.ErrUnauthorized, err))
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: response has no text parts", generation.ErrInvalidResponse)
	}
	return text.String(), nil
}
