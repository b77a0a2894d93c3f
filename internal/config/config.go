package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: KABAR_CACHE__TTL sets cache.ttl.
const EnvPrefix = "KABAR_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (KABAR_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: KABAR_DATA_URL -> data_url, KABAR_CACHE__TTL -> cache.ttl.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validBackends is the set of recognized cache backends.
var validBackends = map[CacheBackend]bool{
	CacheSQLite: true,
	CacheMemory: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataURL == "" {
		return fmt.Errorf("data_url is required")
	}
	if strings.Contains(c.DataURL, "://") {
		u, err := url.Parse(c.DataURL)
		if err != nil {
			return fmt.Errorf("invalid data_url %q: %w", c.DataURL, err)
		}
		switch u.Scheme {
		case "http", "https", "file":
		default:
			return fmt.Errorf("invalid data_url %q: scheme must be http, https or file", c.DataURL)
		}
	}

	if !validBackends[c.Cache.Backend] {
		return fmt.Errorf("invalid cache.backend %q: must be one of sqlite, memory", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheSQLite && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required for the sqlite backend")
	}
	if c.Cache.Key == "" {
		return fmt.Errorf("cache.key is required")
	}
	if err := validDuration("cache.ttl", c.Cache.TTL); err != nil {
		return err
	}
	if err := validDuration("search.debounce", c.Search.Debounce); err != nil {
		return err
	}

	if c.Render.WordsPerMinute <= 0 {
		return fmt.Errorf("render.words_per_minute must be positive")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}

	return nil
}

func validDuration(key, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive", key)
	}
	return nil
}
