package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/expense-api/internal/domain"
	"github.com/phrazzld/expense-api/internal/platform/logger"
	"github.com/phrazzld/expense-api/internal/store"
)

// ExpenseService manages the expenses of the calling user. userID is always
// the subject of a validated access token.
type ExpenseService interface {
	// List returns the caller's expenses, newest first.
	List(ctx context.Context, userID string) ([]*domain.Expense, error)

	// Add creates an expense owned by userID.
	Add(ctx context.Context, userID string, in domain.ExpenseInput) (*domain.Expense, error)

	// Update applies a partial update to one of the caller's expenses.
	// Returns a validation error for a malformed ID, a non-numeric amount or
	// a patch with nothing to update, and store.ErrExpenseNotFound when the
	// caller owns no expense with that ID.
	Update(ctx context.Context, userID, expenseID string, patch domain.ExpensePatch) (*domain.Expense, error)

	// Delete removes one of the caller's expenses.
	Delete(ctx context.Context, userID, expenseID string) error
}

type expenseServiceImpl struct {
	expenses store.ExpenseStore
	logger   *slog.Logger
	timeFunc func() time.Time
}

var _ ExpenseService = (*expenseServiceImpl)(nil)

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenses store.ExpenseStore, logger *slog.Logger) (ExpenseService, error) {
	if expenses == nil {
		return nil, fmt.Errorf("expense store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &expenseServiceImpl{
		expenses: expenses,
		logger:   logger.With(slog.String("component", "expense_service")),
		timeFunc: time.Now,
	}, nil
}

// List implements ExpenseService.List.
func (s *expenseServiceImpl) List(ctx context.Context, userID string) ([]*domain.Expense, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []*domain.Expense{}
	}
	return expenses, nil
}

// Add implements ExpenseService.Add.
func (s *expenseServiceImpl) Add(
	ctx context.Context,
	userID string,
	in domain.ExpenseInput,
) (*domain.Expense, error) {
	expense, err := domain.NewExpense(userID, in, s.timeFunc())
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("expense added",
		slog.String("expense_id", expense.ID.String()),
		slog.String("user_id", userID))
	return expense, nil
}

// Update implements ExpenseService.Update.
func (s *expenseServiceImpl) Update(
	ctx context.Context,
	userID, expenseID string,
	patch domain.ExpensePatch,
) (*domain.Expense, error) {
	id, err := domain.ParseExpenseID(expenseID)
	if err != nil {
		return nil, err
	}

	changes, err := patch.Changes()
	if err != nil {
		return nil, err
	}

	expense, err := s.expenses.Update(ctx, userID, id, changes)
	if err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("expense updated",
		slog.String("expense_id", expense.ID.String()),
		slog.String("user_id", userID))
	return expense, nil
}

// Delete implements ExpenseService.Delete.
func (s *expenseServiceImpl) Delete(ctx context.Context, userID, expenseID string) error {
	id, err := domain.ParseExpenseID(expenseID)
	if err != nil {
		return err
	}

	if err := s.expenses.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("expense deleted",
		slog.String("expense_id", id.String()),
		slog.String("user_id", userID))
	return nil
}
