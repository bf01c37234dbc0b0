// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// defined in internal/store to fulfill application features.
//
// Key components:
//
//   - AuthService registers users, logs them in and reads their profile.
//   - ExpenseService lists, adds, updates and deletes the caller's expenses.
//
// Services receive their dependencies through constructor injection and never
// depend on a specific storage implementation. Every ExpenseService call is
// scoped by the caller's user ID, taken from a validated access token.
//
// Error handling principles:
//  1. Expected conditions are returned as sentinel errors (ErrEmailTaken,
//     ErrInvalidCredentials) or as the domain/store sentinels they wrap
//  2. Callers use errors.Is/errors.As to check for specific conditions
//  3. The API layer maps these errors to HTTP status codes
package service
