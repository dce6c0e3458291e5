// Package migrations holds the versioned schema for the chunk, status and
// profile tables.
package migrations

import "embed"

// FS holds the numbered .up.sql and .down.sql files.
//
//go:embed *.sql
var FS embed.FS
