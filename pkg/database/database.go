// Package database opens the configured document store backend and prepares
// its schema.
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	rds "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
	TypeRedis    = "redis"
)

// Connection holds whichever client the configured backend needs. Exactly
// one of SQL and Redis is set.
type Connection struct {
	Type  string
	SQL   *sqlx.DB
	Redis *rds.Client
}

// New opens dbType at URL. SQL backends are migrated before returning.
func New(dbType, URL string, logger *zerolog.Logger) (*Connection, func(), error) {
	if URL == "" {
		return nil, nil, fmt.Errorf("DB_URL is not set")
	}

	switch dbType {
	case TypePostgres, TypeSQLite:
		var (
			db      *sqlx.DB
			cleanup func()
			err     error
		)
		if dbType == TypePostgres {
			db, cleanup, err = OpenPostgres(URL)
		} else {
			db, cleanup, err = OpenSQLite(URL)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		if err := RunMigrations(db.DB, dbType, logger); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate %s: %w", dbType, err)
		}
		logger.Debug().Str("db_type", dbType).Msg("database ready")
		return &Connection{Type: dbType, SQL: db}, cleanup, nil

	case TypeRedis:
		client, cleanup, err := OpenRedis(URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Debug().Str("db_type", dbType).Msg("redis ready")
		return &Connection{Type: dbType, Redis: client}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported DB_TYPE %q: use postgres, sqlite or redis", dbType)
	}
}
