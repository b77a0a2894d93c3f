package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/kabar/internal/cache"
	"github.com/ziadkadry99/kabar/internal/config"
	"github.com/ziadkadry99/kabar/internal/db"
	"github.com/ziadkadry99/kabar/internal/loader"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `kabar init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// cacheStore is the configured cache plus the database backing it, if any.
type cacheStore struct {
	*cache.Cache
	db *db.DB
}

func (s *cacheStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// openStore builds the cache for the configured backend.
func openStore(cfg *config.Config) (*cacheStore, error) {
	options := []cache.Option{
		cache.WithTTL(cfg.Cache.TTLDuration()),
		cache.WithKey(cfg.Cache.Key),
		cache.WithLogger(slog.Default()),
	}

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return &cacheStore{Cache: cache.New(cache.NewMemoryBackend(0), options...)}, nil
	case config.CacheSQLite:
		database, err := db.Open(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("opening cache database: %w", err)
		}
		return &cacheStore{Cache: cache.New(cache.NewSQLiteBackend(database), options...), db: database}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func newLoader(cfg *config.Config, store cache.Store) *loader.Loader {
	return loader.New(cfg.DataURL, store, loader.WithLogger(slog.Default()))
}
