package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/phrazzld/flashgen-api/internal/platform/postgres"
)

// runMigrationCommand executes a -migrate command against db. "up" applies
// pending migrations; "status" writes one line per migration to out.
func runMigrationCommand(
	ctx context.Context,
	db *sql.DB,
	driver string,
	command string,
	out io.Writer,
	logger *slog.Logger,
) error {
	dialect := migrationDialect(driver)

	switch command {
	case "up":
		logger.Info("Applying migrations", slog.String("dialect", dialect))
		if err := postgres.Migrate(ctx, db, dialect, logger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil

	case "status":
		states, err := postgres.MigrationStatus(ctx, db, dialect)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, s := range states {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			if _, err := fmt.Fprintf(out, "%05d\t%s\t%s\n", s.Version, state, s.Path); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown migration command %q (want up or status)", command)
	}
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	// Parse the URL
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	// Mask the password if user info exists
	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
			return parsedURL.String()
		}
	}

	return dbURL
}
