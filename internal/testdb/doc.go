//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests.
//
// Tests run inside a transaction that is rolled back when the test completes,
// so they can run in parallel without cleaning up after themselves:
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The connection string is read from DATABASE_URL, falling back to
// EXPENSES_TEST_DB_URL. Without either, tests that ask for a database skip.
package testdb
