package db

import "embed"

// Migrations holds the schema migrations applied at startup and by cmd/migration.
//
//go:embed migrations/*.sql
var Migrations embed.FS
