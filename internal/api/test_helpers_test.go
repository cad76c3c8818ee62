package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/flashgen-api/internal/mocks"
	"github.com/phrazzld/flashgen-api/internal/service"
	"github.com/stretchr/testify/require"
)

// newFlashcardHandler wires a FlashcardHandler to a real FlashcardService
// over in-memory mocks.
func newFlashcardHandler(
	t *testing.T,
	store *mocks.MockFlashcardStore,
	generator *mocks.MockFlashcardGenerator,
) *FlashcardHandler {
	t.Helper()

	svc, err := service.NewFlashcardService(store, generator, nil)
	require.NoError(t, err)
	return NewFlashcardHandler(svc, nil)
}

func newPaymentHandler(
	t *testing.T,
	provider *mocks.MockPaymentProvider,
	payments *mocks.MockPaymentStore,
) *PaymentHandler {
	t.Helper()

	svc, err := service.NewPaymentService(provider, payments, "KES", nil)
	require.NoError(t, err)
	return NewPaymentHandler(svc, nil)
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}
