package migrations

import "embed"

// FS contains embedded PostgreSQL migrations for the catalog store.
//
//go:embed *.sql
var FS embed.FS
