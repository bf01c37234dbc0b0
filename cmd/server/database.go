package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/phrazzld/expense-api/internal/config"
	"github.com/phrazzld/expense-api/internal/platform/postgres"
	"github.com/phrazzld/expense-api/internal/platform/sqlite"

	// Register the pgx database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"

	// pgxDriverName is the database/sql name registered by pgx's stdlib package.
	pgxDriverName = "pgx"

	dbPingTimeout = 5 * time.Second
)

// setupAppDatabase establishes a connection to the configured database.
// SQLite databases are migrated on open; PostgreSQL schemas are managed
// explicitly with the -migrate flag.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case driverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established", "driver", driverSQLite)
		return db, nil

	case driverPostgres:
		db, err := openPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established", "driver", driverPostgres)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// openPostgres opens a pgx-backed pool and verifies it with a ping.
func openPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open(pgxDriverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// openForMigrations connects without applying any migration and returns the
// migration set that belongs to the driver.
func openForMigrations(ctx context.Context, cfg *config.Config) (*sql.DB, fs.FS, error) {
	switch cfg.Database.Driver {
	case driverSQLite:
		db, err := sqlite.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.Migrations(), nil

	case driverPostgres:
		db, err := openPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.Migrations(), nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
