// Package migrations embeds the SQL migration files that define the
// attendance bot's database schema.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
