package storage

import "embed"

// Migrations holds the goose migration scripts compiled into the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS
