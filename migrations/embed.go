// Package migrations embeds the SQL schema migrations for the local
// key-value store (local/) and the backend document store (server/).
package migrations

import "embed"

//go:embed local/*.sql server/*.sql
var FS embed.FS
