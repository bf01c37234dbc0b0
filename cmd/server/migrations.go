package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/expense-api/internal/config"
	"github.com/phrazzld/expense-api/internal/platform/migrate"
)

// handleMigrations runs a single migration command against the configured
// database and returns. It's called from run() when the -migrate flag is set.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	dialect, err := migrate.Dialect(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, fsys, err := openForMigrations(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing database connection", "error", cerr)
		}
	}()

	logger.Info("Executing migrations", "command", command, "driver", cfg.Database.Driver)
	if err := migrate.Run(ctx, db, dialect, fsys, command, logger); err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}
