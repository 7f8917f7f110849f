//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Each test runs in its own transaction which is rolled back when the test
// completes, so tests can run in parallel against the same schema:
//
//	func TestBookStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        books := postgres.NewPostgresBookStore(tx, nil, 0)
//	        // ...
//	    })
//	}
//
// Tests are skipped when DATABASE_URL (or BOOKS_TEST_DB_URL) is not set.
package testdb
