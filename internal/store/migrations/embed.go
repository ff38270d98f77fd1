// Package migrations embeds the Postgres schema's golang-migrate SQL
// files for use by the source/iofs driver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
