package generation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxDebugLength bounds the raw-output excerpt attached to a Failure.
const MaxDebugLength = 500

// Kind classifies a generation failure.
type Kind string

// Failure kinds, in pipeline order.
const (
	KindValidation  Kind = "validation"
	KindTimeout     Kind = "timeout"
	KindTransport   Kind = "transport"
	KindExtraction  Kind = "extraction"
	KindParse       Kind = "parse"
	KindEmptyResult Kind = "empty_result"
)

// Common errors returned by provider clients
var (
	// ErrAttemptTimeout is returned when a single inference attempt exceeded
	// its deadline. It is the only condition besides ModelLoadingError that
	// the retry policy will retry.
	ErrAttemptTimeout = errors.New("inference attempt timed out")

	// ErrUnauthorized is returned when the provider rejected the credential.
	ErrUnauthorized = errors.New("inference credential rejected")

	// ErrInvalidResponse is returned when the provider answered with a body
	// that does not carry generated text.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the provider refused to generate.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)

// ModelLoadingError reports that the provider is warming the model up and
// expects it to be ready after EstimatedTime.
type ModelLoadingError struct {
	EstimatedTime time.Duration
}

func (e *ModelLoadingError) Error() string {
	return fmt.Sprintf("model is loading, estimated time %s", e.EstimatedTime)
}

// Failure is the typed outcome of a pipeline run that produced no cards.
// Message is safe to return to clients; Debug is a bounded excerpt of the
// raw model output when one is available.
type Failure struct {
	Kind    Kind
	Message string
	Debug   string
	Err     error
}

// NewFailure creates a Failure of kind with a client-safe message.
func NewFailure(kind Kind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: err}
}

// WithDebug attaches a bounded excerpt of raw to the failure.
func (f *Failure) WithDebug(raw string) *Failure {
	f.Debug = Excerpt(raw)
	return f
}

// Error includes Err unless Message already ends with its text, as parse
// failures do.
func (f *Failure) Error() string {
	if f.Err != nil && !strings.HasSuffix(f.Message, f.Err.Error()) {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure reports whether err is, or wraps, a *Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Excerpt returns at most MaxDebugLength characters of s, never splitting a
// multi-byte character.
func Excerpt(s string) string {
	return truncateRunes(s, MaxDebugLength)
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
