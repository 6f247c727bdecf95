// Package migrations embeds the SQL schema migrations applied by gbctl.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
