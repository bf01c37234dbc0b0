// Package main implements the entry point for the expense API server,
// which manages user accounts and their expense records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// main is the entry point for the expense-api server.
// It initializes configuration and logging, then either runs a migration
// command or connects to the database and serves HTTP until interrupted.
func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("expense-api exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires the application together. It is separate from main so that
// errors propagate instead of exiting mid-initialization.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, logger)
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
