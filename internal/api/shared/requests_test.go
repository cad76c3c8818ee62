package shared

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{name: "valid json", requestBody: `{"notes": "cells"}`},
		{name: "invalid json", requestBody: `{"notes": "cells",}`, wantErr: true, errContains: "invalid character"},
		{name: "empty body", requestBody: "", wantErr: true, errContains: "EOF"},
		{
			name:        "body too large",
			requestBody: `{"notes": "` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`,
			wantErr:     true,
			errContains: "too large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))

			var target struct {
				Notes string `json:"notes"`
			}
			err := DecodeJSON(req, &target)

			if tc.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "cells", target.Notes)
		})
	}
}

type errorReader struct{}

func (errorReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target struct{}
	err := DecodeJSON(req, &target)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type selfValidating struct {
	Name string `validate:"required"`
}

func (s *selfValidating) Validate() error {
	if s.Name == "invalid" {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantErr bool
	}{
		{name: "custom validator passes", req: &selfValidating{Name: "ok"}},
		{name: "custom validator fails", req: &selfValidating{Name: "invalid"}, wantErr: true},
		{
			name: "struct tags pass",
			req: &struct {
				Notes string `validate:"required"`
			}{"text"},
		},
		{
			name: "struct tags fail",
			req: &struct {
				Notes string `validate:"required"`
			}{},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
