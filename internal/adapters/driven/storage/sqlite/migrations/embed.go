// Package migrations holds the versioned schema of the run ledger.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and NNN_name.down.sql files, applied in
// version order by the store.
//
//go:embed *.sql
var FS embed.FS
