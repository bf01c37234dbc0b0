// Package auth implements the credential primitives used by the services:
// bcrypt password hashing and HMAC-SHA256 signed JWT access tokens.
// It performs no storage lookups.
package auth
