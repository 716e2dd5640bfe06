// Package migrations embeds the server-side goose migrations (Postgres).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
