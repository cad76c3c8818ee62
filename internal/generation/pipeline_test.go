package generation_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/phrazzld/flashgen-api/internal/domain"
	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/phrazzld/flashgen-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(gen generation.TextGenerator, policy generation.SpanPolicy) *generation.Pipeline {
	return generation.NewPipeline(gen, generation.PipelineConfig{
		Params:     generation.Params{MaxNewTokens: 500, Temperature: 0.3},
		SpanPolicy: policy,
	}, nil)
}

func TestPipeline_Generate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		output    string
		questions []string
	}{
		{
			name: "well-formed three element array in prose",
			output: "Here are your flashcards:\n" +
				`[{"question":"What is ATP?","answer":"The energy currency of the cell."},` +
				`{"question":"Where is ATP made?","answer":"Mostly in mitochondria."},` +
				`{"question":"What makes ATP?","answer":"ATP synthase."}]` +
				"\nLet me know if you need more.",
			questions: []string{"What is ATP?", "Where is ATP made?", "What makes ATP?"},
		},
		{
			name: "more than three entries",
			output: `[{"question":"1","answer":"a"},{"question":"2","answer":"b"},` +
				`{"question":"3","answer":"c"},{"question":"4","answer":"d"}]`,
			questions: []string{"1", "2", "3"},
		},
		{
			name:      "single object without brackets",
			output:    `Only one card: {"question":"Q","answer":"A"}`,
			questions: []string{"Q"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen := mocks.NewMockTextGeneratorWithText(tc.output)
			pipeline := newTestPipeline(gen, generation.SpanGreedy)

			cards, err := pipeline.Generate(context.Background(), "Cells store energy as ATP.")

			require.NoError(t, err)
			require.Len(t, cards, len(tc.questions))
			for i, q := range tc.questions {
				assert.Equal(t, q, cards[i].Question)
			}
		})
	}
}

func TestPipeline_PromptCarriesOnlyTruncatedNotes(t *testing.T) {
	t.Parallel()

	gen := mocks.NewMockTextGeneratorWithText(`[{"question":"Q","answer":"A"}]`)
	pipeline := newTestPipeline(gen, generation.SpanGreedy)

	notes := strings.Repeat("x", generation.MaxNotesLength) + strings.Repeat("§", 500)
	_, err := pipeline.Generate(context.Background(), notes)

	require.NoError(t, err)
	prompt := gen.LastPrompt()
	_, embedded, found := strings.Cut(prompt, "Text: ")
	require.True(t, found)
	assert.Equal(t, strings.Repeat("x", generation.MaxNotesLength), embedded)
	assert.NotContains(t, prompt, "§")
	assert.Equal(t, generation.Params{MaxNewTokens: 500, Temperature: 0.3}, gen.GenerateCalls.Params[0])
}

func TestPipeline_Failures(t *testing.T) {
	t.Parallel()

	longProse := strings.Repeat("no structure here ", 100)

	testCases := []struct {
		name         string
		notes        string
		gen          *mocks.MockTextGenerator
		expectedKind generation.Kind
		expectCalls  int
	}{
		{
			name:         "empty notes",
			notes:        "   ",
			gen:          mocks.NewMockTextGeneratorWithText("[]"),
			expectedKind: generation.KindValidation,
			expectCalls:  0,
		},
		{
			name:         "no bracketed structure",
			notes:        "notes",
			gen:          mocks.NewMockTextGeneratorWithText(longProse),
			expectedKind: generation.KindExtraction,
			expectCalls:  1,
		},
		{
			name:         "invalid json",
			notes:        "notes",
			gen:          mocks.NewMockTextGeneratorWithText(`[{question: "Q"}]`),
			expectedKind: generation.KindParse,
			expectCalls:  1,
		},
		{
			name:         "no usable entries",
			notes:        "notes",
			gen:          mocks.NewMockTextGeneratorWithText(`[{"front":"Q","back":"A"}]`),
			expectedKind: generation.KindEmptyResult,
			expectCalls:  1,
		},
		{
			name:         "provider error",
			notes:        "notes",
			gen:          mocks.NewMockTextGeneratorWithError(generation.ErrUnauthorized),
			expectedKind: generation.KindTransport,
			expectCalls:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pipeline := newTestPipeline(tc.gen, generation.SpanGreedy)

			cards, err := pipeline.Generate(context.Background(), tc.notes)

			require.Error(t, err)
			assert.Nil(t, cards)
			failure, ok := generation.AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, tc.expectedKind, failure.Kind)
			assert.LessOrEqual(t, utf8.RuneCountInString(failure.Debug), generation.MaxDebugLength)
			assert.Equal(t, tc.expectCalls, tc.gen.CallCount())
		})
	}
}

func TestPipeline_EmptyNotesMessage(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(mocks.NewMockTextGeneratorWithText("[]"), generation.SpanGreedy)

	_, err := pipeline.Generate(context.Background(), "")

	failure, ok := generation.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "No notes provided", failure.Message)
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestPipeline_BalancedPolicyIgnoresTrailingBrackets(t *testing.T) {
	t.Parallel()

	output := `[{"question":"Q","answer":"A"}] (source: [1])`

	greedy := newTestPipeline(mocks.NewMockTextGeneratorWithText(output), generation.SpanGreedy)
	_, err := greedy.Generate(context.Background(), "notes")
	failure, ok := generation.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, generation.KindParse, failure.Kind)

	balanced := newTestPipeline(mocks.NewMockTextGeneratorWithText(output), generation.SpanBalanced)
	cards, err := balanced.Generate(context.Background(), "notes")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Q", cards[0].Question)
}

func TestPipeline_WithRetryingClient(t *testing.T) {
	t.Parallel()

	gen := &mocks.MockTextGenerator{Responses: []mocks.MockResponse{
		{Err: generation.ErrAttemptTimeout},
		{Err: generation.ErrAttemptTimeout},
		{Text: `[{"question":"never","answer":"reached"}]`},
	}}
	noWait := func(ctx context.Context, _ time.Duration) error { return nil }
	client := generation.NewRetryingClient(gen, generation.DefaultRetryPolicy(), nil, generation.WithSleeper(noWait))
	pipeline := newTestPipeline(client, generation.SpanGreedy)

	_, err := pipeline.Generate(context.Background(), "notes")

	failure, ok := generation.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, generation.KindTimeout, failure.Kind)
	assert.Equal(t, 2, gen.CallCount())
}
