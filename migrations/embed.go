// Package migrations holds the versioned SQL files applied at start-up.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
