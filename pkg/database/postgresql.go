package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const pingTimeout = 5 * time.Second

// OpenPostgres connects with lib/pq and verifies the connection.
func OpenPostgres(URL string) (*sqlx.DB, func(), error) {
	return open("postgres", URL)
}

// OpenSQLite opens a SQLite file through the pure Go driver. WAL and a busy
// timeout keep concurrent readers from failing while a batch commits.
func OpenSQLite(path string) (*sqlx.DB, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("sqlite path is required")
	}
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, cleanup, err := open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1)
	return db, cleanup, nil
}

func open(driver, dsn string) (*sqlx.DB, func(), error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	cleanup := func() {
		_ = db.Close()
	}
	db.Mapper = reflectx.NewMapper("json")

	return db, cleanup, nil
}
