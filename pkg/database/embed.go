package database

import "embed"

// EmbedMigrations contains the documents table migrations, one directory per
// SQL dialect.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var EmbedMigrations embed.FS
