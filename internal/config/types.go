package config

import "time"

// CacheBackend selects where the article cache entry is kept.
type CacheBackend string

const (
	CacheSQLite CacheBackend = "sqlite"
	CacheMemory CacheBackend = "memory"
)

// Config is the top-level kabar configuration, corresponding to .kabar.yml.
type Config struct {
	DataURL   string       `yaml:"data_url" koanf:"data_url"`
	SiteTitle string       `yaml:"site_title" koanf:"site_title"`
	Cache     CacheConfig  `yaml:"cache" koanf:"cache"`
	Search    SearchConfig `yaml:"search" koanf:"search"`
	Render    RenderConfig `yaml:"render" koanf:"render"`
	Server    ServerConfig `yaml:"server" koanf:"server"`
	Site      SiteConfig   `yaml:"site" koanf:"site"`
}

// CacheConfig holds the cache entry settings.
type CacheConfig struct {
	Backend CacheBackend `yaml:"backend" koanf:"backend"`
	Path    string       `yaml:"path" koanf:"path"`
	Key     string       `yaml:"key" koanf:"key"`
	TTL     string       `yaml:"ttl" koanf:"ttl"`
}

// TTLDuration returns the parsed TTL, or the default when unset or invalid.
func (c CacheConfig) TTLDuration() time.Duration {
	return parseDuration(c.TTL, DefaultCacheTTL)
}

// SearchConfig holds the filter engine settings.
type SearchConfig struct {
	Debounce     string `yaml:"debounce" koanf:"debounce"`
	MatchExcerpt bool   `yaml:"match_excerpt" koanf:"match_excerpt"`
}

// DebounceDuration returns the parsed debounce interval, or the default when
// unset or invalid.
func (s SearchConfig) DebounceDuration() time.Duration {
	return parseDuration(s.Debounce, DefaultDebounce)
}

// RenderConfig holds markup rendering settings.
type RenderConfig struct {
	WordsPerMinute int `yaml:"words_per_minute" koanf:"words_per_minute"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// SiteConfig holds static export settings.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
