package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/flashgen-api/internal/platform/postgres"
	"github.com/phrazzld/flashgen-api/internal/redact"
	_ "modernc.org/sqlite" // sqlite driver
)

// EnvTestDatabaseURL selects a PostgreSQL database for tests.
const EnvTestDatabaseURL = "FLASHGEN_TEST_DB_URL"

var (
	sharedOnce sync.Once
	sharedDB   *sql.DB
	sharedErr  error
)

// DatabaseURL returns the configured PostgreSQL test URL, or "".
func DatabaseURL() string {
	return strings.TrimSpace(os.Getenv(EnvTestDatabaseURL))
}

// Dialect reports the migration dialect of the databases returned by Open.
func Dialect() string {
	if DatabaseURL() != "" {
		return postgres.DialectPostgres
	}
	return postgres.DialectSQLite
}

// Open returns a migrated database. Without FLASHGEN_TEST_DB_URL it is a
// fresh in-memory SQLite database closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	if url := DatabaseURL(); url != "" {
		sharedOnce.Do(func() {
			sharedDB, sharedErr = openPostgres(url)
		})
		if sharedErr != nil {
			t.Fatalf("failed to open test database %s: %s", redact.String(url), redact.Error(sharedErr))
		}
		return sharedDB
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// An in-memory database only exists on the connection that created it.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(context.Background(), db, postgres.DialectSQLite, nil); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}

func openPostgres(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, postgres.DialectPostgres, nil); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn inside a transaction that is rolled back afterwards,
// even when fn panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		// sql.ErrTxDone is expected if fn already ended the transaction
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
