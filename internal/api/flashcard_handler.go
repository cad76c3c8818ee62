package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashgen-api/internal/api/shared"
	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/service"
)

// FlashcardHandler handles flashcard-related HTTP requests
type FlashcardHandler struct {
	flashcardService service.FlashcardService
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler
func NewFlashcardHandler(flashcardService service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if flashcardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcardService cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		flashcardService: flashcardService,
		logger:           logger.With(slog.String("component", "flashcard_handler")),
	}
}

// Ping handles GET /api/ping requests.
func (h *FlashcardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, OKResponse{OK: true})
}

// ListFlashcards handles GET /api/flashcards requests.
// Cards are returned newest first; an empty store yields [].
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.flashcardService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	response := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, flashcardToResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateFlashcard handles POST /api/flashcards requests
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err,
			shared.WithElevatedLogLevel())
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	card, err := h.flashcardService.Create(r.Context(), req.Question, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("flashcard saved", slog.Int64("flashcard_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, OKResponse{OK: true})
}

// GenerateFlashcards handles POST /api/generate requests.
// Generated cards are returned but not saved. Failures carry a status per
// failure kind and, where available, a bounded excerpt of the model output.
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err,
			shared.WithElevatedLogLevel())
		return
	}

	cards, err := h.flashcardService.Generate(r.Context(), req.Notes)
	if err != nil {
		var opts []shared.ResponseOption
		if failure, ok := generation.AsFailure(err); ok {
			log.Info("flashcard generation failed", slog.String("failure_kind", string(failure.Kind)))
			if failure.Debug != "" {
				opts = append(opts, shared.WithDebug(failure.Debug))
			}
		}
		HandleAPIError(w, r, err, opts...)
		return
	}

	response := GenerateResponse{Flashcards: make([]GeneratedFlashcard, 0, len(cards))}
	for _, card := range cards {
		response.Flashcards = append(response.Flashcards, GeneratedFlashcard{
			Question: card.Question,
			Answer:   card.Answer,
		})
	}

	log.Debug("flashcards generated", slog.Int("count", len(response.Flashcards)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
