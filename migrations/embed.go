package migrations

import "embed"

// FS holds the SQL migrations for each backend, one sub-directory per backend.
//
//go:embed sqlite/*.sql
var FS embed.FS
