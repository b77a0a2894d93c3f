// Package loader retrieves the article collection, preferring a valid cache
// entry over a fresh retrieval of the data file.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/cache"
)

// maxBodyBytes caps how much of the data file is read.
const maxBodyBytes = 32 << 20

// LoadFailure is the only error kind returned by Load. Status is the HTTP
// status for non-success responses and 0 otherwise.
type LoadFailure struct {
	Status  int
	Message string
}

func (e *LoadFailure) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("loading articles: %s (status %d)", e.Message, e.Status)
	}
	return "loading articles: " + e.Message
}

// Option mutates loader configuration.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLogger injects the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader implements the cache-then-fetch sequence for one data source.
// Concurrent Load calls that miss the cache share a single retrieval.
type Loader struct {
	source string
	store  cache.Store
	client *http.Client
	logger *slog.Logger
	group  singleflight.Group
}

// New creates a loader for source, which is an http(s) URL, a file:// URL or a local path.
func New(source string, store cache.Store, options ...Option) *Loader {
	l := &Loader{
		source: source,
		store:  store,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: slog.Default(),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Source returns the configured data source.
func (l *Loader) Source() string { return l.source }

// Load returns the article collection. A valid cache entry is returned without
// touching the source; otherwise the source is retrieved, validated and written
// back to the cache. Every failure is a *LoadFailure.
func (l *Loader) Load(ctx context.Context) ([]article.Article, error) {
	if articles, ok := l.store.Read(ctx); ok {
		return articles, nil
	}

	// The retrieval outlives any single caller so joined callers still get a result.
	flightCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(l.source, func() (any, error) {
		if articles, ok := l.store.Read(flightCtx); ok {
			return articles, nil
		}
		articles, err := l.fetch(flightCtx)
		if err != nil {
			return nil, err
		}
		l.store.Write(flightCtx, articles)
		return articles, nil
	})

	select {
	case <-ctx.Done():
		return nil, &LoadFailure{Message: "request canceled: " + ctx.Err().Error()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]article.Article), nil
	}
}

func (l *Loader) fetch(ctx context.Context) ([]article.Article, error) {
	var (
		body []byte
		err  error
	)
	if isHTTP(l.source) {
		body, err = l.fetchHTTP(ctx)
	} else {
		body, err = l.readFile()
	}
	if err != nil {
		return nil, err
	}
	return decode(body)
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, &LoadFailure{Message: "invalid source url: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	l.logger.Debug("fetching articles", "source", l.source)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadFailure{Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &LoadFailure{Status: resp.StatusCode, Message: "unexpected response " + resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &LoadFailure{Message: "reading response: " + err.Error()}
	}
	return body, nil
}

func (l *Loader) readFile() ([]byte, error) {
	path := strings.TrimPrefix(l.source, "file://")
	l.logger.Debug("reading articles", "path", path)
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadFailure{Message: "reading data file: " + err.Error()}
	}
	return body, nil
}

// decode accepts only a JSON array of article records.
func decode(body []byte) ([]article.Article, error) {
	var articles []article.Article
	if err := json.Unmarshal(body, &articles); err != nil || articles == nil {
		return nil, &LoadFailure{Message: "invalid format"}
	}
	return articles, nil
}

func isHTTP(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
