package testdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/flashgen-api/internal/platform/postgres"
	"github.com/phrazzld/flashgen-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrations(t *testing.T) {
	db := testdb.Open(t)

	states, err := postgres.MigrationStatus(context.Background(), db, testdb.Dialect())
	require.NoError(t, err)
	require.NotEmpty(t, states)
	for _, s := range states {
		assert.True(t, s.Applied, "migration %d should be applied", s.Version)
	}
}

func TestDialectDefaultsToSQLite(t *testing.T) {
	t.Setenv(testdb.EnvTestDatabaseURL, "")

	assert.Equal(t, postgres.DialectSQLite, testdb.Dialect())
	assert.Empty(t, testdb.DatabaseURL())
}

func TestWithTxRollsBack(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	var questionInTx string
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO flashcards (question, answer, created_at) VALUES ($1, $2, CURRENT_TIMESTAMP)`,
			"rolled back?", "yes")
		require.NoError(t, err)

		require.NoError(t, tx.QueryRowContext(ctx,
			`SELECT question FROM flashcards WHERE question = $1`, "rolled back?").Scan(&questionInTx))
	})
	assert.Equal(t, "rolled back?", questionInTx)

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flashcards WHERE question = $1`, "rolled back?").Scan(&count))
	assert.Zero(t, count)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	db := testdb.Open(t)

	assert.Panics(t, func() {
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			panic("boom")
		})
	})

	// The single sqlite connection must have been released.
	var one int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&one))
	assert.Equal(t, 1, one)
}
