// Package migrations содержит схему БД, применяемую при старте сервиса.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
