package generation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/phrazzld/flashgen-api/internal/generation"

// PipelineConfig holds the settings a Pipeline applies to every run.
type PipelineConfig struct {
	Params     Params
	SpanPolicy SpanPolicy
}

// Pipeline runs notes through prompt rendering, inference, extraction and
// validation. It keeps no state between runs and is safe for concurrent use.
type Pipeline struct {
	generator TextGenerator
	config    PipelineConfig
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewPipeline creates a Pipeline. generator is usually a RetryingClient.
func NewPipeline(generator TextGenerator, cfg PipelineConfig, logger *slog.Logger) *Pipeline {
	if generator == nil {
		panic("text generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SpanPolicy == "" {
		cfg.SpanPolicy = SpanGreedy
	}

	return &Pipeline{
		generator: generator,
		config:    cfg,
		logger:    logger.With(slog.String("component", "generation_pipeline")),
		tracer:    otel.Tracer(tracerName),
	}
}

// Generate produces up to MaxFlashcards flashcards from notes. Every error it
// returns is a *Failure.
func (p *Pipeline) Generate(ctx context.Context, notes string) ([]*domain.Flashcard, error) {
	ctx, span := p.tracer.Start(ctx, "generation.Generate")
	defer span.End()

	log := logger.FromContextOrDefault(ctx, p.logger)

	if strings.TrimSpace(notes) == "" {
		return nil, p.fail(span, NewFailure(KindValidation, "No notes provided", domain.ErrEmptyContent))
	}

	prompt := BuildPrompt(notes)
	span.SetAttributes(
		attribute.Int("generation.notes_length", len(notes)),
		attribute.Int("generation.prompt_length", len(prompt)),
		attribute.String("generation.span_policy", string(p.config.SpanPolicy)),
	)

	raw, err := p.infer(ctx, prompt)
	if err != nil {
		log.Warn("inference failed", slog.String("error", err.Error()))
		return nil, p.fail(span, transportFailure(err))
	}

	candidate, err := Extract(raw, p.config.SpanPolicy)
	if err != nil {
		log.Warn("no JSON found in model output",
			slog.Int("raw_length", len(raw)))
		return nil, p.fail(span, err)
	}

	cards, err := Validate(candidate, raw)
	if err != nil {
		log.Warn("model output did not validate",
			slog.String("error", err.Error()))
		return nil, p.fail(span, err)
	}

	span.SetAttributes(attribute.Int("generation.flashcards", len(cards)))
	log.Info("flashcards generated", slog.Int("count", len(cards)))
	return cards, nil
}

func (p *Pipeline) infer(ctx context.Context, prompt string) (string, error) {
	ctx, span := p.tracer.Start(ctx, "generation.inference")
	defer span.End()

	raw, err := p.generator.Generate(ctx, prompt, p.config.Params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inference failed")
		return "", err
	}
	span.SetAttributes(attribute.Int("generation.raw_length", len(raw)))
	return raw, nil
}

func (p *Pipeline) fail(span trace.Span, err error) error {
	span.RecordError(err)
	if f, ok := AsFailure(err); ok {
		span.SetAttributes(attribute.String("generation.failure_kind", string(f.Kind)))
		span.SetStatus(codes.Error, f.Message)
	}
	return err
}
