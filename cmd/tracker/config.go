package main

import (
	"github.com/caarlos0/env/v11"

	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/flags"
	redisclient "github.com/feyloom/attunement-tracker/internal/redis"
	"github.com/feyloom/attunement-tracker/internal/repositories/documents"
)

// appConfig is populated from the environment. Every command that
// touches storage shares the same variables.
type appConfig struct {
	RedisAddr     string `env:"TRACKER_REDIS_ADDR"     envDefault:"localhost:6379"`
	FlagBackend   string `env:"TRACKER_FLAG_BACKEND"   envDefault:"redis"`
	SQLitePath    string `env:"TRACKER_SQLITE_PATH"    envDefault:"tracker.db"`
	MetricsAddr   string `env:"TRACKER_METRICS_ADDR"   envDefault:":9190"`
	CompendiumURL string `env:"TRACKER_COMPENDIUM_URL"`
}

func loadConfig() (*appConfig, error) {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	switch cfg.FlagBackend {
	case "redis", "sqlite", "memory":
	default:
		return nil, errors.InvalidArgumentf("unknown flag backend %q (want redis, sqlite, or memory)", cfg.FlagBackend)
	}

	return &cfg, nil
}

// storage bundles the backends a command needs, plus a teardown hook.
type storage struct {
	Flags      flags.Store
	Repository documents.Repository
	Close      func() error
}

// openStorage connects the document repository and the configured
// flag store. The repository is always Redis; only flags can fall
// back to sqlite or memory.
func openStorage(cfg *appConfig) (*storage, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	repo, err := documents.NewRedis(&documents.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	var store flags.Store
	switch cfg.FlagBackend {
	case "redis":
		store, err = flags.NewRedis(&flags.RedisConfig{Client: client})
	case "sqlite":
		store, err = flags.NewSQLite(&flags.SQLiteConfig{Path: cfg.SQLitePath})
	case "memory":
		store = flags.NewMemory()
	}
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &storage{
		Flags:      store,
		Repository: repo,
		Close:      client.Close,
	}, nil
}
