// Package sqlite provides the SQLite-backed ledger store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The ledger is a single
// table keyed by PO number; merges replace rows wholesale inside one
// transaction so a run's shard lands in the ledger atomically.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.poscan/data/ledger.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
