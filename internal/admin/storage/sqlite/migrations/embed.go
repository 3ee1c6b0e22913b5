// Package migrations embeds the admin store's SQL migration files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
