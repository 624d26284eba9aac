package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// gooseLogger routes goose output through zerolog at debug level.
type gooseLogger struct {
	logger *zerolog.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// RunMigrations applies the pending documents table migrations for dbType.
func RunMigrations(db *sql.DB, dbType string, logger *zerolog.Logger) error {
	var dialect, dir string
	switch dbType {
	case TypePostgres:
		dialect, dir = "postgres", "migrations/postgres"
	case TypeSQLite:
		dialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for database type %q", dbType)
	}

	goose.SetBaseFS(EmbedMigrations)
	goose.SetLogger(gooseLogger{logger: logger})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
