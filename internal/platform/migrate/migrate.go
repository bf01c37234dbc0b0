// Package migrate applies the embedded SQL schema migrations with goose.
// Each database backend ships its own migration set; the runner here is
// shared by the server binary, the sqlite opener and the test helpers.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// TableName is the table goose uses to track applied migrations.
const TableName = "schema_migrations"

// Supported commands.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// ErrUnknownCommand is returned for a command other than up, down or status.
var ErrUnknownCommand = errors.New("unknown migration command")

// Dialect returns the goose dialect for a configured database driver name.
func Dialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return goose.DialectPostgres, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewProvider builds a goose provider over fsys that records its state in TableName.
func NewProvider(db *sql.DB, dialect goose.Dialect, fsys fs.FS) (*goose.Provider, error) {
	versions, err := database.NewStore(dialect, TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration store: %w", err)
	}

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(versions))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Run executes command against db using the migrations in fsys.
func Run(
	ctx context.Context,
	db *sql.DB,
	dialect goose.Dialect,
	fsys fs.FS,
	command string,
	log *slog.Logger,
) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", string(dialect)),
	)

	provider, err := NewProvider(db, dialect, fsys)
	if err != nil {
		return err
	}

	start := time.Now()
	switch command {
	case CommandUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
		for _, r := range results {
			logResult(log, r)
		}
		log.Info("migrations applied",
			slog.Int("count", len(results)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	case CommandDown:
		result, err := provider.Down(ctx)
		if err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				log.Info("no migrations to roll back")
				return nil
			}
			return fmt.Errorf("migrate down failed: %w", err)
		}
		logResult(log, result)

	case CommandStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status failed: %w", err)
		}
		for _, s := range statuses {
			attrs := []any{
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)),
			}
			if !s.AppliedAt.IsZero() {
				attrs = append(attrs, slog.Time("applied_at", s.AppliedAt))
			}
			log.Info("migration status", attrs...)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	return nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS, log *slog.Logger) error {
	return Run(ctx, db, dialect, fsys, CommandUp, log)
}

func logResult(log *slog.Logger, r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	log.Info("migration executed",
		slog.Int64("version", r.Source.Version),
		slog.String("path", r.Source.Path),
		slog.String("direction", r.Direction),
		slog.Int64("duration_ms", r.Duration.Milliseconds()))
}
