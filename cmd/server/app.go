package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashgen-api/internal/config"
	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/phrazzld/flashgen-api/internal/platform/gemini"
	"github.com/phrazzld/flashgen-api/internal/platform/huggingface"
	"github.com/phrazzld/flashgen-api/internal/platform/intasend"
	"github.com/phrazzld/flashgen-api/internal/platform/postgres"
	"github.com/phrazzld/flashgen-api/internal/service"
	"github.com/phrazzld/flashgen-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores
	flashcardStore store.FlashcardStore
	paymentStore   store.PaymentStore

	// Service interfaces
	flashcardService service.FlashcardService
	paymentService   service.PaymentService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)
	app.paymentStore = postgres.NewPostgresPaymentStore(db, logger)

	// Create the generation pipeline on top of the configured model
	textGenerator, err := newTextGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	pipeline, err := newPipeline(textGenerator, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("LLM generator initialized successfully",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("span_policy", cfg.LLM.SpanPolicy),
		slog.Int("max_attempts", cfg.LLM.MaxAttempts))

	// Create the payment provider
	paymentProvider, err := intasend.NewClient(intasend.Config{
		SecretKey:      cfg.Payment.SecretKey,
		PublishableKey: cfg.Payment.PublishableKey,
		Sandbox:        cfg.Payment.IsSandbox(),
		BaseURL:        cfg.Payment.BaseURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	// Initialize services
	app.flashcardService, err = service.NewFlashcardService(app.flashcardStore, pipeline, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	app.paymentService, err = service.NewPaymentService(
		paymentProvider,
		app.paymentStore,
		cfg.Payment.Currency,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newTextGenerator builds the single-attempt client for the configured provider.
func newTextGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.TextGenerator, error) {
	switch cfg.Provider {
	case "gemini":
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "huggingface":
		client, err := huggingface.NewClient(huggingface.Config{
			ModelURL: cfg.HuggingFaceModelURL,
			APIKey:   cfg.HuggingFaceAPIKey,
			// Deadlines come from the retry policy, per attempt.
			HTTPClient: &http.Client{},
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// newPipeline wraps next in the retry policy and builds the pipeline.
func newPipeline(next generation.TextGenerator, cfg config.LLMConfig, logger *slog.Logger) (*generation.Pipeline, error) {
	spanPolicy, err := generation.ParseSpanPolicy(cfg.SpanPolicy)
	if err != nil {
		return nil, err
	}

	retrying := generation.NewRetryingClient(next, generation.RetryPolicy{
		MaxAttempts:       cfg.MaxAttempts,
		AttemptTimeout:    cfg.RequestTimeout(),
		TimeoutRetryDelay: cfg.TimeoutRetryDelay(),
		LoadingPadding:    cfg.LoadingPadding(),
	}, logger)

	return generation.NewPipeline(retrying, generation.PipelineConfig{
		Params: generation.Params{
			MaxNewTokens: cfg.MaxNewTokens,
			Temperature:  cfg.Temperature,
		},
		SpanPolicy: spanPolicy,
	}, logger), nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
