// Package migrations embeds the SQL migration files so schema setup can run
// from the binary at startup instead of relying on a filesystem path.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
