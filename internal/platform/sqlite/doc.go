// Package sqlite provides embedded SQLite implementations of the user and
// expense stores, backed by the pure-Go modernc.org/sqlite driver. It is used
// for local runs without a PostgreSQL server and for fast store tests.
package sqlite
