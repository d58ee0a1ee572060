// Package database provides SurrealDB connectivity for the Guildhall API.
//
// The Database interface hides the SurrealDB client from repositories so they can
// be exercised against a fake in tests.
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "guildhall",
//	    Database:  "main",
//	    User:      "root",
//	    Password:  "root",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
// # Query Methods
//
//   - Query: one {status, result} entry per statement in the query
//   - QueryOne: first record of the first statement, or ErrNotFound
//   - Execute: mutation with no result
//
// # Atomic Writes
//
// Transactions are batch-based. TxBuilder and AtomicBatch collect statements and
// send them as a single BEGIN TRANSACTION / COMMIT TRANSACTION block, so either
// every statement applies or none does. There is no isolation between Add calls.
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
package database
