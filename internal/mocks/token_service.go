package mocks

import (
	"context"

	"github.com/phrazzld/expense-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueFn allows test cases to mock the Issue behavior
	IssueFn func(ctx context.Context, userID string) (string, error)

	// ValidateFn allows test cases to mock the Validate behavior
	ValidateFn func(ctx context.Context, token string) (string, error)

	// Default values used when functions aren't explicitly defined
	Token       string
	UserID      string
	Err         error
	ValidateErr error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// Issue implements the auth.TokenService interface
func (m *MockTokenService) Issue(ctx context.Context, userID string) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "token-" + userID, nil
}

// Validate implements the auth.TokenService interface
func (m *MockTokenService) Validate(ctx context.Context, token string) (string, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	if m.ValidateErr != nil {
		return "", m.ValidateErr
	}
	return m.UserID, nil
}
