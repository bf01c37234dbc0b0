package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/expense-api/internal/domain"
	"github.com/phrazzld/expense-api/internal/store"
)

// MockExpenseStore implements store.ExpenseStore for testing. Its default
// behaviour keeps expenses in memory with the same ownership scoping and
// ordering as the SQL stores.
type MockExpenseStore struct {
	CreateFn     func(ctx context.Context, expense *domain.Expense) error
	ListByUserFn func(ctx context.Context, userID string) ([]*domain.Expense, error)
	UpdateFn     func(ctx context.Context, userID string, id uuid.UUID, changes domain.ExpenseChanges) (*domain.Expense, error)
	DeleteFn     func(ctx context.Context, userID string, id uuid.UUID) error

	mu       sync.Mutex
	Expenses map[uuid.UUID]*domain.Expense
}

var _ store.ExpenseStore = (*MockExpenseStore)(nil)

// NewMockExpenseStore creates an empty in-memory expense store.
func NewMockExpenseStore() *MockExpenseStore {
	return &MockExpenseStore{
		Expenses: make(map[uuid.UUID]*domain.Expense),
	}
}

// Create implements the ExpenseStore interface
func (m *MockExpenseStore) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, expense)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Expenses[expense.ID]; exists {
		return store.ErrDuplicate
	}
	stored := *expense
	m.Expenses[expense.ID] = &stored
	return nil
}

// ListByUser implements the ExpenseStore interface
func (m *MockExpenseStore) ListByUser(ctx context.Context, userID string) ([]*domain.Expense, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.UserID == userID {
			c := *e
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID.String() > result[j].ID.String()
	})
	return result, nil
}

// Update implements the ExpenseStore interface
func (m *MockExpenseStore) Update(
	ctx context.Context,
	userID string,
	id uuid.UUID,
	changes domain.ExpenseChanges,
) (*domain.Expense, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, id, changes)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.Expenses[id]
	if !ok || e.UserID != userID {
		return nil, store.ErrExpenseNotFound
	}
	if changes.Title != nil {
		e.Title = *changes.Title
	}
	if changes.Category != nil {
		e.Category = *changes.Category
	}
	if changes.Amount != nil {
		e.Amount = *changes.Amount
	}
	if changes.Description != nil {
		e.Description = *changes.Description
	}
	c := *e
	return &c, nil
}

// Delete implements the ExpenseStore interface
func (m *MockExpenseStore) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.Expenses[id]
	if !ok || e.UserID != userID {
		return store.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}
