package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashgen-api/internal/generation"
)

// MockResponse is one scripted reply from a MockTextGenerator.
type MockResponse struct {
	Text string
	Err  error
}

// MockTextGenerator implements generation.TextGenerator for testing
type MockTextGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt string, params generation.Params) (string, error)

	// Responses are returned in order, one per call. The last response is
	// repeated once the list is exhausted.
	Responses []MockResponse

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Prompts contains all prompts passed to Generate calls
		Prompts []string

		// Params contains all generation parameters passed to Generate calls
		Params []generation.Params
	}
}

var _ generation.TextGenerator = (*MockTextGenerator)(nil)

// Generate implements the generation.TextGenerator interface
func (m *MockTextGenerator) Generate(
	ctx context.Context,
	prompt string,
	params generation.Params,
) (string, error) {
	m.GenerateCalls.mu.Lock()
	call := m.GenerateCalls.Count
	m.GenerateCalls.Count++
	m.GenerateCalls.Prompts = append(m.GenerateCalls.Prompts, prompt)
	m.GenerateCalls.Params = append(m.GenerateCalls.Params, params)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt, params)
	}

	if len(m.Responses) == 0 {
		return "", nil
	}
	if call >= len(m.Responses) {
		call = len(m.Responses) - 1
	}
	return m.Responses[call].Text, m.Responses[call].Err
}

// CallCount returns the number of Generate calls so far.
func (m *MockTextGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastPrompt returns the prompt of the most recent call, or "".
func (m *MockTextGenerator) LastPrompt() string {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Prompts) == 0 {
		return ""
	}
	return m.GenerateCalls.Prompts[len(m.GenerateCalls.Prompts)-1]
}

// NewMockTextGeneratorWithText creates a MockTextGenerator that always returns text
func NewMockTextGeneratorWithText(text string) *MockTextGenerator {
	return &MockTextGenerator{Responses: []MockResponse{{Text: text}}}
}

// NewMockTextGeneratorWithError creates a MockTextGenerator that always fails with err
func NewMockTextGeneratorWithError(err error) *MockTextGenerator {
	return &MockTextGenerator{Responses: []MockResponse{{Err: err}}}
}
