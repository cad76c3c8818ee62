package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql
	"github.com/phrazzld/flashgen-api/internal/config"
	"github.com/phrazzld/flashgen-api/internal/platform/postgres"
	_ "modernc.org/sqlite" // Register sqlite driver for database/sql
)

// sqlDriverName maps the configured database driver to its database/sql name.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "pgx", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// migrationDialect maps the configured database driver to a migration dialect.
func migrationDialect(driver string) string {
	if driver == "sqlite" {
		return postgres.DialectSQLite
	}
	return postgres.DialectPostgres
}

// openDatabase establishes a connection to the database and configures the
// connection pool. The connection is verified with a ping before returning.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite allows one writer at a time, and an in-memory database
		// only exists on the connection that created it.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", slog.String("driver", cfg.Driver))
	return db, nil
}
