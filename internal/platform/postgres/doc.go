// Package postgres provides PostgreSQL implementations of the user and
// expense stores defined in internal/store, together with the embedded
// goose migrations for the schema. It maps driver errors (pgx/pgconn) onto
// the store package's sentinel errors.
package postgres
