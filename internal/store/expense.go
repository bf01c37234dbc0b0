package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/expense-api/internal/domain"
)

// ExpenseStore defines the interface for expense persistence.
// Every method is scoped by the owner's user ID: an expense that exists but
// belongs to someone else is reported exactly like a missing one.
type ExpenseStore interface {
	// Create saves a new expense.
	Create(ctx context.Context, expense *domain.Expense) error

	// ListByUser returns the user's expenses, newest date first. Ties are
	// ordered by ID so the result is stable.
	ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error)

	// Update applies changes to the expense matching (id, userID) in a single
	// statement and returns the updated record.
	// Returns ErrExpenseNotFound if nothing matches.
	Update(ctx context.Context, userID string, id uuid.UUID, changes domain.ExpenseChanges) (*domain.Expense, error)

	// Delete permanently removes the expense matching (id, userID).
	// Returns ErrExpenseNotFound if nothing matches.
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
