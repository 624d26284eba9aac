package factory

import (
	"fmt"

	"github.com/masbusiness/business-os/internal/config"
	"github.com/masbusiness/business-os/internal/repository"
	"github.com/masbusiness/business-os/internal/seeddata"
	"github.com/masbusiness/business-os/pkg/database"
	"github.com/masbusiness/business-os/pkg/logger"
)

type Options struct {
	// WithStore opens the configured backend. Dry runs and listings leave
	// it off so they work without a reachable database.
	WithStore bool
}

type Factory struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *seeddata.Registry
	DB       *database.Connection
	Store    repository.Store
}

func New(cfg *config.Config, log *logger.Logger, opts Options) (*Factory, func(), error) {
	registry, err := seeddata.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load seed data: %w", err)
	}

	f := &Factory{
		Config:   cfg,
		Logger:   log,
		Registry: registry,
	}
	if !opts.WithStore {
		return f, func() {}, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	conn, cleanup, err := database.New(cfg.Database.Type, cfg.Database.URL, log.Logger)
	if err != nil {
		return nil, nil, err
	}

	f.DB = conn
	f.Store = NewStore(conn, cfg.ProjectID, log)
	return f, func() {
		cleanup()
	}, nil
}

// NewStore wraps an open connection in the matching document store.
func NewStore(conn *database.Connection, project string, log *logger.Logger) repository.Store {
	switch conn.Type {
	case database.TypeRedis:
		return repository.NewRedisStore(conn.Redis, log.Logger, project)
	case database.TypeSQLite:
		return repository.NewSQLStore(conn.SQL, repository.DialectSQLite, project)
	default:
		return repository.NewSQLStore(conn.SQL, repository.DialectPostgres, project)
	}
}
