// Package mocks provides centralized mock implementations for testing.
//
// Most mocks follow the same pattern: function fields that override a
// method when set, and an in-memory default behaviour otherwise, so a test
// only spells out what it cares about:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("connection refused")
//	}
//
// TestifyMockUserStore is available for tests that prefer testify/mock
// expectations.
package mocks
