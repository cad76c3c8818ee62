// Package main implements the entry point for the flashcard generation API
// server. It also runs schema migrations when started with -migrate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/flashgen-api/internal/config"
	"github.com/phrazzld/flashgen-api/internal/platform/logger"
	"github.com/phrazzld/flashgen-api/internal/platform/tracing"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a migration command and exit (up, status)")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("flashgen-api: %v", err)
	}
}

// run loads configuration, opens the database and either executes a
// migration command or serves HTTP until interrupted.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("database_url", maskDatabaseURL(cfg.Database.URL)),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("payment_environment", cfg.Payment.Environment))

	db, err := openDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if migrateCmd != "" {
		return runMigrationCommand(ctx, db, cfg.Database.Driver, migrateCmd, os.Stdout, l)
	}

	if cfg.Database.MigrateOnStart {
		if err := runMigrationCommand(ctx, db, cfg.Database.Driver, "up", os.Stdout, l); err != nil {
			return err
		}
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, l)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			l.Error("Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
