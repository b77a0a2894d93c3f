// Package cache keeps the loaded article collection in one expiring entry.
//
// A Cache stores a {data, timestamp} envelope under a single fixed key of a
// Backend. Reads fail soft: corrupt, mistyped or expired entries are reported
// as absent and removed. Writes fail soft: backend errors are logged and the
// caller carries on without a cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ziadkadry99/kabar/internal/article"
)

const (
	// DefaultKey is the storage key holding the whole collection.
	DefaultKey = "articles_cache"
	// DefaultTTL is how long a written entry stays valid.
	DefaultTTL = 5 * time.Minute
)

var errMalformed = errors.New("malformed cache entry")

// Store is the narrow contract consumers of the cache depend on.
type Store interface {
	// Read returns the cached collection, or false when there is no valid entry.
	Read(ctx context.Context) ([]article.Article, bool)
	// Write replaces the entry with articles stamped with the current instant.
	Write(ctx context.Context, articles []article.Article)
	// Clear removes the entry.
	Clear(ctx context.Context)
}

// Backend is a synchronous key/value store holding serialized entries.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Option mutates cache configuration.
type Option func(*Cache)

// WithTTL sets how long an entry is valid after being written.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(c *Cache) {
		if key != "" {
			c.key = key
		}
	}
}

// WithClock injects the time source used for stamping and expiry.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger injects the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cache implements Store on top of a Backend.
type Cache struct {
	backend Backend
	key     string
	ttl     time.Duration
	clock   func() time.Time
	logger  *slog.Logger
}

var _ Store = (*Cache)(nil)

// New creates a cache over backend.
func New(backend Backend, options ...Option) *Cache {
	c := &Cache{
		backend: backend,
		key:     DefaultKey,
		ttl:     DefaultTTL,
		clock:   time.Now,
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Key returns the storage key.
func (c *Cache) Key() string { return c.key }

// envelope is the serialized entry.
type envelope struct {
	Data      []article.Article `json:"data"`
	Timestamp int64             `json:"timestamp"`
}

// rawEnvelope lets decodeEntry tell a missing field from a zero value.
type rawEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp *int64          `json:"timestamp"`
}

func decodeEntry(raw []byte) ([]article.Article, time.Time, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if env.Timestamp == nil || len(env.Data) == 0 {
		return nil, time.Time{}, errMalformed
	}
	var articles []article.Article
	if err := json.Unmarshal(env.Data, &articles); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: data: %v", errMalformed, err)
	}
	if articles == nil {
		return nil, time.Time{}, fmt.Errorf("%w: data is not an array", errMalformed)
	}
	return articles, time.UnixMilli(*env.Timestamp), nil
}

func (c *Cache) fresh(stamp time.Time) bool {
	return c.clock().Sub(stamp) < c.ttl
}

// Read implements Store.
func (c *Cache) Read(ctx context.Context) ([]article.Article, bool) {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		c.logger.Debug("cache read failed", "key", c.key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	articles, stamp, err := decodeEntry(raw)
	if err != nil {
		c.logger.Debug("discarding cache entry", "key", c.key, "error", err)
		c.purge(ctx)
		return nil, false
	}
	if !c.fresh(stamp) {
		c.logger.Debug("cache entry expired", "key", c.key, "age", c.clock().Sub(stamp))
		c.purge(ctx)
		return nil, false
	}
	return articles, true
}

// Write implements Store.
func (c *Cache) Write(ctx context.Context, articles []article.Article) {
	if articles == nil {
		articles = []article.Article{}
	}
	raw, err := json.Marshal(envelope{Data: articles, Timestamp: c.clock().UnixMilli()})
	if err != nil {
		c.logger.Warn("cache write failed", "key", c.key, "error", err)
		return
	}
	if err := c.backend.Set(ctx, c.key, raw); err != nil {
		c.logger.Warn("cache write failed", "key", c.key, "error", err)
	}
}

// Clear implements Store.
func (c *Cache) Clear(ctx context.Context) {
	c.purge(ctx)
}

func (c *Cache) purge(ctx context.Context) {
	if err := c.backend.Delete(ctx, c.key); err != nil {
		c.logger.Warn("cache delete failed", "key", c.key, "error", err)
	}
}

// Status describes the stored entry without modifying it.
type Status struct {
	Present   bool
	Malformed bool
	Valid     bool
	Count     int
	WrittenAt time.Time
	Age       time.Duration
	ExpiresIn time.Duration
}

// Status inspects the current entry. Unlike Read it never purges.
func (c *Cache) Status(ctx context.Context) (Status, error) {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		return Status{}, fmt.Errorf("reading cache entry: %w", err)
	}
	if !ok {
		return Status{}, nil
	}

	articles, stamp, err := decodeEntry(raw)
	if err != nil {
		return Status{Present: true, Malformed: true}, nil
	}

	age := c.clock().Sub(stamp)
	st := Status{
		Present:   true,
		Valid:     age < c.ttl,
		Count:     len(articles),
		WrittenAt: stamp,
		Age:       age,
	}
	if st.Valid {
		st.ExpiresIn = c.ttl - age
	}
	return st, nil
}
