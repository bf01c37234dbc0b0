package mocks

import (
	"errors"
	"strings"

	"github.com/phrazzld/expense-api/internal/service/auth"
)

const hashPrefix = "hashed:"

// MockPasswordHasher implements auth.PasswordHasher for testing. By default
// a hash is the password with a fixed prefix, which keeps tests fast and
// deterministic.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(hash, password string) bool

	HashErr     error
	VerifyCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	if password == "" {
		return "", errors.New("empty password")
	}
	return hashPrefix + password, nil
}

// Verify implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Verify(hash, password string) bool {
	m.VerifyCount++
	if m.VerifyFn != nil {
		return m.VerifyFn(hash, password)
	}
	return strings.HasPrefix(hash, hashPrefix) && strings.TrimPrefix(hash, hashPrefix) == password
}
