// Package migrations embeds the client database schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
