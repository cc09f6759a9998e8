package migrations

import "embed"

// FS contains the embedded SQLite migrations for deck snapshots.
//
//go:embed *.sql
var FS embed.FS
