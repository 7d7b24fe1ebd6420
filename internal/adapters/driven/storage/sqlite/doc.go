// Package sqlite records indexing runs and the pages each run collected,
// implementing driven.RunStore on modernc.org/sqlite (pure Go, no cgo).
//
// The schema lives in migrations/ as numbered up and down files, applied in
// order when the store opens. The database defaults to ~/.kb/data/runs.db
// and is opened in WAL mode so history reads do not block a running setup.
package sqlite
