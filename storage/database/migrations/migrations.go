// Package migrations embeds the goose SQL migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Dir is the migrations directory within FS.
const Dir = "."
