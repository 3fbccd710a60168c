// Package database provides SQLite-based run history storage.
//
// Every crawl run is recorded as one row in the runs table plus one row
// per fetched page in the pages table, so past runs can be compared and
// partially failed runs can be re-driven from their skip lists.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
