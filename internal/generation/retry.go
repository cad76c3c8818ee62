package generation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/flashgen-api/internal/platform/logger"
)

// Params are the generation parameters sent with every attempt.
type Params struct {
	MaxNewTokens int
	Temperature  float64
}

// TextGenerator sends one prompt to a text-generation backend and returns
// the continuation it produced. Implementations make exactly one attempt;
// they report a warming model with *ModelLoadingError and an expired
// attempt deadline with ErrAttemptTimeout.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// maxAttemptsLimit caps RetryPolicy.MaxAttempts regardless of configuration.
const maxAttemptsLimit = 2

// RetryPolicy bounds how a RetryingClient reacts to transient provider states.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first.
	// Values outside 1..2 are clamped.
	MaxAttempts int

	// AttemptTimeout is the deadline applied to each individual call.
	AttemptTimeout time.Duration

	// TimeoutRetryDelay is the pause before retrying a timed-out call.
	TimeoutRetryDelay time.Duration

	// LoadingPadding is added to the provider's estimated loading time.
	LoadingPadding time.Duration
}

// DefaultRetryPolicy returns the policy used when nothing is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       2,
		AttemptTimeout:    45 * time.Second,
		TimeoutRetryDelay: 10 * time.Second,
		LoadingPadding:    10 * time.Second,
	}
}

func (p RetryPolicy) attempts() int {
	switch {
	case p.MaxAttempts < 1:
		return 1
	case p.MaxAttempts > maxAttemptsLimit:
		return maxAttemptsLimit
	default:
		return p.MaxAttempts
	}
}

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryingClient wraps a TextGenerator with a RetryPolicy. Every outcome it
// returns other than success is a *Failure.
type RetryingClient struct {
	next   TextGenerator
	policy RetryPolicy
	sleep  SleepFunc
	logger *slog.Logger
}

// RetryOption configures a RetryingClient.
type RetryOption func(*RetryingClient)

// WithSleeper replaces the wait between attempts. Tests use it to observe
// the requested delays without waiting.
func WithSleeper(fn SleepFunc) RetryOption {
	return func(c *RetryingClient) {
		c.sleep = fn
	}
}

// NewRetryingClient creates a RetryingClient around next.
func NewRetryingClient(next TextGenerator, policy RetryPolicy, logger *slog.Logger, opts ...RetryOption) *RetryingClient {
	if next == nil {
		panic("text generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &RetryingClient{
		next:   next,
		policy: policy,
		sleep:  sleepContext,
		logger: logger.With(slog.String("component", "inference_retry")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ TextGenerator = (*RetryingClient)(nil)

// Generate implements TextGenerator.
func (c *RetryingClient) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	maxAttempts := c.policy.attempts()

	for attempt := 1; ; attempt++ {
		log.Debug("calling inference provider",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxAttempts))

		text, err := c.attempt(ctx, prompt, params)
		if err == nil {
			log.Info("inference call succeeded", slog.Int("attempt", attempt))
			return text, nil
		}

		if ctx.Err() != nil {
			return "", NewFailure(KindTimeout, "Request was cancelled before the AI service responded", ctx.Err())
		}

		var (
			delay   time.Duration
			loading *ModelLoadingError
		)
		switch {
		case errors.As(err, &loading):
			if attempt >= maxAttempts {
				log.Warn("model still loading after final attempt",
					slog.Int("attempt", attempt),
					slog.Duration("estimated_time", loading.EstimatedTime))
				return "", NewFailure(KindTransport, "AI model is still loading, please try again shortly", err)
			}
			delay = loading.EstimatedTime + c.policy.LoadingPadding
			log.Info("model is loading, waiting before retry",
				slog.Int("attempt", attempt),
				slog.Duration("estimated_time", loading.EstimatedTime),
				slog.Duration("delay", delay))

		case errors.Is(err, ErrAttemptTimeout):
			if attempt >= maxAttempts {
				log.Warn("inference call timed out on final attempt",
					slog.Int("attempt", attempt),
					slog.Duration("attempt_timeout", c.policy.AttemptTimeout))
				return "", NewFailure(KindTimeout, "AI service timed out, please try again", err)
			}
			delay = c.policy.TimeoutRetryDelay
			log.Info("inference call timed out, waiting before retry",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

		default:
			log.Warn("inference call failed, not retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return "", transportFailure(err)
		}

		if err := c.sleep(ctx, delay); err != nil {
			return "", NewFailure(KindTimeout, "Request was cancelled before the AI service responded", err)
		}
	}
}

// attempt makes one call with the per-attempt deadline applied. A deadline
// that expires here, while the caller's context is still live, is reported
// as ErrAttemptTimeout whatever the backend returned.
func (c *RetryingClient) attempt(ctx context.Context, prompt string, params Params) (string, error) {
	if c.policy.AttemptTimeout <= 0 {
		return c.next.Generate(ctx, prompt, params)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.policy.AttemptTimeout)
	defer cancel()

	text, err := c.next.Generate(attemptCtx, prompt, params)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		if !errors.Is(err, ErrAttemptTimeout) {
			err = errors.Join(ErrAttemptTimeout, err)
		}
	}
	return text, err
}

func transportFailure(err error) *Failure {
	if f, ok := AsFailure(err); ok {
		return f
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewFailure(KindTransport, "Invalid AI service API key", err)
	case errors.Is(err, ErrContentBlocked):
		return NewFailure(KindTransport, "AI service refused to generate content for these notes", err)
	default:
		return NewFailure(KindTransport, "AI API error: "+err.Error(), err)
	}
}
