// Package store persists the story collection in a single key-value slot.
//
// The collection is stored as one JSON array under a fixed key and is read
// and rewritten whole:
//   - Load: returns the collection, or an empty one if the slot is absent
//     or holds malformed data (logged, never returned as an error)
//   - Save: overwrites the slot and then notifies subscribers
//
// There is no locking or optimistic concurrency: two holders of stale
// copies overwrite each other, and the last Save wins.
//
// # Slots
//
//   - SQLiteSlot: durable slot in a SQLite database (mattn/go-sqlite3)
//   - MemorySlot: in-process slot for tests and scenario runs
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single connection: SQLite allows one writer at a time
package store
