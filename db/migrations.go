// Package db embeds the goose SQL migrations.
package db

import "embed"

// Migrations holds migrations/*.sql for goose.SetBaseFS.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"
