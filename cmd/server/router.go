package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashgen-api/internal/api"
	apiMiddleware "github.com/phrazzld/flashgen-api/internal/api/middleware"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		MaxAge:         86400,
	}).Handler)

	// Create API handlers using the application's services
	flashcardHandler := api.NewFlashcardHandler(app.flashcardService, app.logger)
	paymentHandler := api.NewPaymentHandler(app.paymentService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", flashcardHandler.Ping)

		// Flashcard endpoints
		r.Get("/flashcards", flashcardHandler.ListFlashcards)
		r.Post("/flashcards", flashcardHandler.CreateFlashcard)
		r.Post("/generate", flashcardHandler.GenerateFlashcards)

		// Payment endpoints
		r.Post("/pay", paymentHandler.Pay)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
