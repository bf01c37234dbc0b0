package sqlite

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

// ExpenseStore implements store.ExpenseStore on SQLite.
type ExpenseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewExpenseStore creates a SQLite expense store. If logger is nil, a
// default logger will be used.
func NewExpenseStore(db store.DBTX, logger *slog.Logger) *ExpenseStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenseStore{
		db:     db,
		logger: logger.With(slog.String("component", "expense_store"), slog.String("backend", "sqlite")),
	}
}

var _ store.ExpenseStore = (*ExpenseStore)(nil)

// Create implements store.ExpenseStore.Create
func (s *ExpenseStore) Create(ctx context.Context, expense *domain.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.UserID,
		expense.Title,
		expense.Category,
		expense.Amount,
		expense.Description,
		expense.Date.UTC(),
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create expense",
			slog.String("error", err.Error()),
			slog.String("expense_id", expense.ID.String()))
		return store.NewStoreError("expense", "create", "insert failed", MapError(err))
	}
	return nil
}

// ListByUser implements store.ExpenseStore.ListByUser
func (s *ExpenseStore) ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE user_id = ?
		ORDER BY spent_at DESC, id DESC`, userID)
	if err != nil {
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
func (s *ExpenseStore) Update(
	ctx context.Context,
	userID string,
	id uuid.UUID,
	changes domain.ExpenseChanges,
) (*domain.Expense, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE expenses
		SET title       = COALESCE(?3, title),
		    category    = COALESCE(?4, category),
		    amount      = COALESCE(?5, amount),
		    description = COALESCE(?6, description)
		WHERE id = ?1 AND user_id = ?2
		RETURNING `+expenseColumns,
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
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update expense",
			slog.String("error", err.Error()),
			slog.String("expense_id", id.String()))
		return nil, store.NewStoreError("expense", "update", "update failed", MapError(err))
	}
	return expense, nil
}

// Delete implements store.ExpenseStore.Delete
func (s *ExpenseStore) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return store.NewStoreError("expense", "delete", "delete failed", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("expense", "delete", "rows affected unavailable", err)
	}
	if n == 0 {
		return store.ErrExpenseNotFound
	}
	return nil
}

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
