package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMissingProject = errors.New("PROJECT_ID is not set")

type DataBaseConfig struct {
	URL  string `env:"DB_URL"`
	Type string `env:"DB_TYPE" envDefault:"postgres"`
}

type SeedConfig struct {
	Actor string `env:"SEED_ACTOR" envDefault:"seed-script"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Config struct {
	Env       string `env:"ENV" envDefault:"development"`
	ProjectID string `env:"PROJECT_ID"`
	Database  DataBaseConfig
	Seed      SeedConfig
	Log       LogConfig

	IsDev        bool
	IsProduction bool
}

// New loads an optional .env file and then parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.IsDev = cfg.Env == "development"
	cfg.IsProduction = isProductionEnv(cfg.Env)
	return &cfg, nil
}

func isProductionEnv(name string) bool {
	switch name {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// Validate checks the settings every store-touching command needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return ErrMissingProject
	}
	return nil
}
