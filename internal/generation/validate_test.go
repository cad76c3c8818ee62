package generation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/phrazzld/flashgen-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	type qa struct{ q, a string }

	testCases := []struct {
		name      string
		candidate string
		expected  []qa
	}{
		{
			name:      "three cards in order",
			candidate: `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3","answer":"A3"}]`,
			expected:  []qa{{"Q1", "A1"}, {"Q2", "A2"}, {"Q3", "A3"}},
		},
		{
			name: "more than three keeps the first three",
			candidate: `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},` +
				`{"question":"Q3","answer":"A3"},{"question":"Q4","answer":"A4"},{"question":"Q5","answer":"A5"}]`,
			expected: []qa{{"Q1", "A1"}, {"Q2", "A2"}, {"Q3", "A3"}},
		},
		{
			name:      "single object becomes one card",
			candidate: `{"question":"Q","answer":"A"}`,
			expected:  []qa{{"Q", "A"}},
		},
		{
			name:      "entries without both keys are skipped",
			candidate: `[{"question":"Q1"},{"answer":"A2"},"text",42,{"question":"Q3","answer":"A3"}]`,
			expected:  []qa{{"Q3", "A3"}},
		},
		{
			name:      "skipped entries do not count toward the cap",
			candidate: `[{"q":"x"},{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},null,{"question":"Q3","answer":"A3"},{"question":"Q4","answer":"A4"}]`,
			expected:  []qa{{"Q1", "A1"}, {"Q2", "A2"}, {"Q3", "A3"}},
		},
		{
			name:      "non-string values are converted to text",
			candidate: `[{"question":42,"answer":true},{"question":"List","answer":["a","b"]},{"question":1.50,"answer":{"k":"v"}}]`,
			expected:  []qa{{"42", "true"}, {"List", `["a","b"]`}, {"1.50", `{"k":"v"}`}},
		},
		{
			name:      "null values are converted to text",
			candidate: `[{"question":null,"answer":"A"},{"question":"Q","answer":null}]`,
			expected:  []qa{{"null", "A"}, {"Q", "null"}},
		},
		{
			name:      "blank values drop the entry",
			candidate: `[{"question":"Q","answer":"   "},{"question":"Q2","answer":"A2"}]`,
			expected:  []qa{{"Q2", "A2"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cards, err := generation.Validate(tc.candidate, tc.candidate)

			require.NoError(t, err)
			require.Len(t, cards, len(tc.expected))
			for i, want := range tc.expected {
				assert.Equal(t, want.q, cards[i].Question)
				assert.Equal(t, want.a, cards[i].Answer)
			}
		})
	}
}

func TestValidate_ParseFailure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		candidate string
	}{
		{name: "single quotes", candidate: `[{'question': 'Q', 'answer': 'A'}]`},
		{name: "trailing comma", candidate: `[{"question":"Q","answer":"A"},]`},
		{name: "trailing data", candidate: `[{"question":"Q","answer":"A"}] see [1]`},
		{name: "expression is not evaluated", candidate: `[__import__('os').system('true')]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := "prefix " + tc.candidate

			_, err := generation.Validate(tc.candidate, raw)

			require.Error(t, err)
			failure, ok := generation.AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, generation.KindParse, failure.Kind)
			assert.Contains(t, failure.Message, "Invalid JSON in AI response")
			assert.Equal(t, raw, failure.Debug)
			cause := errors.Unwrap(failure).Error()
			assert.Equal(t, 1, strings.Count(err.Error(), cause), "parser error should appear once")
		})
	}
}

func TestValidate_EmptyResult(t *testing.T) {
	t.Parallel()

	for _, candidate := range []string{`[]`, `[{"front":"Q","back":"A"}]`, `{"cards":[]}`, `[1,2,3]`} {
		t.Run(candidate, func(t *testing.T) {
			t.Parallel()

			_, err := generation.Validate(candidate, candidate)

			require.Error(t, err)
			failure, ok := generation.AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, generation.KindEmptyResult, failure.Kind)
			assert.Equal(t, candidate, failure.Debug)
		})
	}
}
