package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/expense-api/internal/domain"
	"github.com/phrazzld/expense-api/internal/platform/logger"
	"github.com/phrazzld/expense-api/internal/store"
)

const expenseColumns = `id, user_id, title, category, amount, description, spent_at`

// PostgresExpenseStore implements the store.ExpenseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExpenseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExpenseStore creates a new PostgreSQL implementation of the ExpenseStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresExpenseStore(db store.DBTX, logger *slog.Logger) *PostgresExpenseStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresExpenseStore{
		db:     db,
		logger: logger.With(slog.String("component", "expense_store")),
	}
}

// Ensure PostgresExpenseStore implements store.ExpenseStore interface
var _ store.ExpenseStore = (*PostgresExpenseStore)(nil)

// Create implements store.ExpenseStore.Create
func (s *PostgresExpenseStore) Create(ctx context.Context, expense *domain.Expense) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := expense.Validate(); err != nil {
		log.Warn("expense validation failed during create",
			slog.String("error", err.Error()),
			slog.String("expense_id", expense.ID.String()))
		return err
	}

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Title,
		expense.Category,
		expense.Amount,
		expense.Description,
		expense.Date,
	)
	if err != nil {
		log.Error("failed to create expense",
			slog.String("error", err.Error()),
			slog.String("expense_id", expense.ID.String()))
		return store.NewStoreError("expense", "create", "insert failed", MapError(err))
	}

	log.Debug("expense created",
		slog.String("expense_id", expense.ID.String()),
		slog.String("user_id", expense.UserID))
	return nil
}

// ListByUser implements store.ExpenseStore.ListByUser
func (s *PostgresExpenseStore) ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY spent_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list expenses", slog.String("error", err.Error()))
		return nil, store.NewStoreError("expense", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, store.NewStoreError("expense", "list", "scan failed", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("expense", "list", "iteration failed", err)
	}

	return expenses, nil
}

// Update implements store.ExpenseStore.Update
func (s *PostgresExpenseStore) Update(
	ctx context.Context,
	userID string,
	id uuid.UUID,
	changes domain.ExpenseChanges,
) (*domain.Expense, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE expenses
		SET title       = COALESCE($3, title),
		    category    = COALESCE($4, category),
		    amount      = COALESCE($5, amount),
		    description = COALESCE($6, description)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + expenseColumns

	row := s.db.QueryRowContext(ctx, query,
		id,
		userID,
		nullString(changes.Title),
		nullString(changes.Category),
		nullFloat(changes.Amount),
		nullString(changes.Description),
	)
	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrExpenseNotFound
		}
		log.Error("failed to update expense",
			slog.String("error", err.Error()),
			slog.String("expense_id", id.String()))
		return nil, store.NewStoreError("expense", "update", "update failed", MapError(err))
	}

	return expense, nil
}

// Delete implements store.ExpenseStore.Delete
func (s *PostgresExpenseStore) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		log.Error("failed to delete expense",
			slog.String("error", err.Error()),
			slog.String("expense_id", id.String()))
		return store.NewStoreError("expense", "delete", "delete failed", err)
	}

	return CheckRowsAffected(result, store.ErrExpenseNotFound)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.Date,
	); err != nil {
		return nil, err
	}
	e.Date = e.Date.UTC()
	return &e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
