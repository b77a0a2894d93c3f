package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ziadkadry99/kabar/internal/cache"
	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/render"
)

const (
	DefaultConfigFile     = ".kabar.yml"
	DefaultDataURL        = "data/articles.json"
	DefaultSiteTitle      = "Kabar"
	DefaultCacheKey       = cache.DefaultKey
	DefaultCacheTTL       = cache.DefaultTTL
	DefaultDebounce       = filter.DefaultDebounce
	DefaultWordsPerMinute = render.DefaultWordsPerMinute
	DefaultPort           = 8080
	DefaultOutputDir      = "dist"
)

// DefaultCachePath is the SQLite cache location under the user cache directory.
func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "kabar", "cache.db")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataURL:   DefaultDataURL,
		SiteTitle: DefaultSiteTitle,
		Cache: CacheConfig{
			Backend: CacheSQLite,
			Path:    DefaultCachePath(),
			Key:     DefaultCacheKey,
			TTL:     DefaultCacheTTL.String(),
		},
		Search: SearchConfig{
			Debounce:     DefaultDebounce.String(),
			MatchExcerpt: true,
		},
		Render: RenderConfig{
			WordsPerMinute: DefaultWordsPerMinute,
		},
		Server: ServerConfig{
			Port: DefaultPort,
		},
		Site: SiteConfig{
			OutputDir: DefaultOutputDir,
		},
	}
}
