// Package store provides SQLite-backed storage for the locator catalog.
//
// Every rendered definition is recorded once per (name, hash) pair, where
// hash is the content hash of the definition. Re-saving an unchanged
// definition is a no-op; saving a changed one appends a new revision.
//
// # Ordering
//
// Revisions are ordered by seq, a logical clock assigned on insert, never
// by wall time. All queries use ORDER BY seq ASC, id ASC COLLATE BINARY so
// results are identical across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
