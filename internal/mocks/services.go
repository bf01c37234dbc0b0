package mocks

import (
	"context"

	"github.com/phrazzld/expense-api/internal/domain"
	"github.com/phrazzld/expense-api/internal/service"
)

// MockAuthService implements service.AuthService for testing
type MockAuthService struct {
	RegisterFn   func(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	LoginFn      func(ctx context.Context, email, password string) (*service.AuthResult, error)
	GetProfileFn func(ctx context.Context, userID string) (*domain.Profile, error)

	// Default return values
	Result       *service.AuthResult
	Profile      *domain.Profile
	DefaultError error
}

var _ service.AuthService = (*MockAuthService)(nil)

// Register implements the AuthService.Register method
func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*service.AuthResult, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return m.Result, m.DefaultError
}

// Login implements the AuthService.Login method
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.Result, m.DefaultError
}

// GetProfile implements the AuthService.GetProfile method
func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, userID)
	}
	return m.Profile, m.DefaultError
}

// MockExpenseService implements service.ExpenseService for testing
type MockExpenseService struct {
	ListFn   func(ctx context.Context, userID string) ([]*domain.Expense, error)
	AddFn    func(ctx context.Context, userID string, in domain.ExpenseInput) (*domain.Expense, error)
	UpdateFn func(ctx context.Context, userID, expenseID string, patch domain.ExpensePatch) (*domain.Expense, error)
	DeleteFn func(ctx context.Context, userID, expenseID string) error

	// Default return values
	Expense      *domain.Expense
	Expenses     []*domain.Expense
	DefaultError error
}

var _ service.ExpenseService = (*MockExpenseService)(nil)

// List implements the ExpenseService.List method
func (m *MockExpenseService) List(ctx context.Context, userID string) ([]*domain.Expense, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return m.Expenses, m.DefaultError
}

// Add implements the ExpenseService.Add method
func (m *MockExpenseService) Add(ctx context.Context, userID string, in domain.ExpenseInput) (*domain.Expense, error) {
	if m.AddFn != nil {
		return m.AddFn(ctx, userID, in)
	}
	return m.Expense, m.DefaultError
}

// Update implements the ExpenseService.Update method
func (m *MockExpenseService) Update(
	ctx context.Context,
	userID, expenseID string,
	patch domain.ExpensePatch,
) (*domain.Expense, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, expenseID, patch)
	}
	return m.Expense, m.DefaultError
}

// Delete implements the ExpenseService.Delete method
func (m *MockExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, expenseID)
	}
	return m.DefaultError
}
