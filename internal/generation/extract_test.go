package generation_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		policy   generation.SpanPolicy
		expected string
	}{
		{
			name:     "bare array",
			raw:      `[{"question":"Q","answer":"A"}]`,
			policy:   generation.SpanGreedy,
			expected: `[{"question":"Q","answer":"A"}]`,
		},
		{
			name:     "array wrapped in prose across lines",
			raw:      "Sure! Here you go:\n[\n  {\"question\": \"Q\", \"answer\": \"A\"}\n]\nHope this helps.",
			policy:   generation.SpanGreedy,
			expected: "[\n  {\"question\": \"Q\", \"answer\": \"A\"}\n]",
		},
		{
			name:     "greedy swallows trailing bracketed prose",
			raw:      `[{"question":"Q","answer":"A"}] see [1]`,
			policy:   generation.SpanGreedy,
			expected: `[{"question":"Q","answer":"A"}] see [1]`,
		},
		{
			name:     "balanced stops at the end of the first array",
			raw:      `[{"question":"Q","answer":"A"}] see [1]`,
			policy:   generation.SpanBalanced,
			expected: `[{"question":"Q","answer":"A"}]`,
		},
		{
			name:     "balanced prefers an array of objects over a citation",
			raw:      `As noted in [1], here: [{"question":"Q","answer":"A"}]`,
			policy:   generation.SpanBalanced,
			expected: `[{"question":"Q","answer":"A"}]`,
		},
		{
			name:     "object fallback without brackets",
			raw:      `The card is {"question":"Q","answer":"A"} as requested.`,
			policy:   generation.SpanGreedy,
			expected: `{"question":"Q","answer":"A"}`,
		},
		{
			name:     "balanced object fallback",
			raw:      `The card is {"question":"Q","answer":"A"} {oops}`,
			policy:   generation.SpanBalanced,
			expected: `{"question":"Q","answer":"A"}`,
		},
		{
			name:     "balanced falls back to greedy span when nothing decodes",
			raw:      `[{"question": 'single quotes'}]`,
			policy:   generation.SpanBalanced,
			expected: `[{"question": 'single quotes'}]`,
		},
		{
			name:     "closing bracket before opening bracket is not an array",
			raw:      `] nothing here [ {"question":"Q","answer":"A"}`,
			policy:   generation.SpanGreedy,
			expected: `{"question":"Q","answer":"A"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			span, err := generation.Extract(tc.raw, tc.policy)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, span)
		})
	}
}

func TestExtract_NoStructure(t *testing.T) {
	t.Parallel()

	for _, policy := range []generation.SpanPolicy{generation.SpanGreedy, generation.SpanBalanced} {
		t.Run(string(policy), func(t *testing.T) {
			t.Parallel()

			raw := strings.Repeat("The model declined to answer in JSON. ", 50)

			_, err := generation.Extract(raw, policy)

			require.Error(t, err)
			failure, ok := generation.AsFailure(err)
			require.True(t, ok, "error should be a *Failure")
			assert.Equal(t, generation.KindExtraction, failure.Kind)
			assert.Equal(t, "Failed to extract JSON from AI response", failure.Message)
			assert.LessOrEqual(t, utf8.RuneCountInString(failure.Debug), generation.MaxDebugLength)
			assert.True(t, strings.HasPrefix(raw, failure.Debug))
		})
	}
}

func TestParseSpanPolicy(t *testing.T) {
	t.Parallel()

	p, err := generation.ParseSpanPolicy("Balanced")
	require.NoError(t, err)
	assert.Equal(t, generation.SpanBalanced, p)

	p, err = generation.ParseSpanPolicy("")
	require.NoError(t, err)
	assert.Equal(t, generation.SpanGreedy, p)

	_, err = generation.ParseSpanPolicy("lazy")
	assert.Error(t, err)
}
