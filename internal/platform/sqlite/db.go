package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/phrazzld/expense-api/internal/platform/migrate"
	"github.com/pressly/goose/v3"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the goose SQL migrations for the SQLite schema.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// ALLOW-PANIC: the directory is embedded at build time
		panic(err)
	}
	return sub
}

// Open opens the database at dsn and brings its schema up to date.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate.Up(ctx, db, goose.DialectSQLite3, Migrations(), logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Connect opens and pings the database at dsn without touching its schema.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, withTimeFormat(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows a single writer, and every connection to ":memory:"
	// would otherwise see its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return db, nil
}

// withTimeFormat makes the driver store timestamps in a sortable text layout.
func withTimeFormat(dsn string) string {
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_time_format=sqlite"
}
