package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashgen-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection refused")

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, expected: store.ErrDuplicate},
		{
			name:     "check violation",
			err:      &pgconn.PgError{Code: checkViolationCode, ConstraintName: "flashcards_question_check"},
			expected: store.ErrInvalidEntity,
		},
		{name: "not null violation", err: &pgconn.PgError{Code: notNullViolationCode}, expected: store.ErrInvalidEntity},
		{name: "bad numeric text", err: &pgconn.PgError{Code: invalidTextRepresentationCode}, expected: store.ErrInvalidEntity},
		{name: "unmapped", err: plain, expected: plain},
		{name: "no rows passes through", err: sql.ErrNoRows, expected: sql.ErrNoRows},
		{name: "unmapped pg code", err: &pgconn.PgError{Code: "40001"}, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			if tc.expected == nil {
				assert.Same(t, tc.err, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expected)
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestNullIfEmpty(t *testing.T) {
	t.Parallel()

	assert.False(t, nullIfEmpty("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, nullIfEmpty("x"))
}
