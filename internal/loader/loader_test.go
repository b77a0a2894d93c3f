package loader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ziadkadry99/kabar/internal/cache"
)

const sampleJSON = `[
  {"id":"a1","topic":"Berita","title":"Gempa","date":"2024-02-01","extra":"ignored"},
  {"id":"a2","topic":"Edukasi","title":"Fisika Dasar"}
]`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCache() *cache.Cache {
	return cache.New(cache.NewMemoryBackend(0), cache.WithLogger(quietLogger()))
}

func serve(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

// loadFailure asserts err is a *LoadFailure and returns it.
func loadFailure(t *testing.T, err error) *LoadFailure {
	t.Helper()
	var failure *LoadFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *LoadFailure, got %T: %v", err, err)
	}
	return failure
}

func TestLoad_FetchesOnceThenUsesCache(t *testing.T) {
	ts, calls := serve(t, http.StatusOK, sampleJSON)
	store := newCache()
	l := New(ts.URL, store, WithHTTPClient(ts.Client()), WithLogger(quietLogger()))
	ctx := context.Background()

	got, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a1" || got[1].Title != "Fisika Dasar" {
		t.Fatalf("unexpected articles %+v", got)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("expected 1 fetch, got %d", n)
	}

	cached, ok := store.Read(ctx)
	if !ok {
		t.Fatal("expected a populated cache entry")
	}
	if !reflect.DeepEqual(cached, got) {
		t.Errorf("cached = %+v, want %+v", cached, got)
	}

	if _, err := l.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("second load must not hit the network, got %d fetches", n)
	}
}

func TestLoad_RequestsFreshBytes(t *testing.T) {
	var header http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		io.WriteString(w, sampleJSON)
	}))
	defer ts.Close()

	if _, err := New(ts.URL, newCache(), WithHTTPClient(ts.Client())).Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(header.Get("Cache-Control"), "no-cache") {
		t.Errorf("Cache-Control = %q", header.Get("Cache-Control"))
	}
	if header.Get("Pragma") != "no-cache" {
		t.Errorf("Pragma = %q", header.Get("Pragma"))
	}
}

func TestLoad_NonSuccessStatus(t *testing.T) {
	ts, _ := serve(t, http.StatusInternalServerError, "boom")
	store := newCache()

	_, err := New(ts.URL, store, WithHTTPClient(ts.Client())).Load(context.Background())
	if failure := loadFailure(t, err); failure.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", failure.Status)
	}

	if _, ok := store.Read(context.Background()); ok {
		t.Error("failed loads must not populate the cache")
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	for name, body := range map[string]string{
		"object":       `{"articles":[]}`,
		"null":         `null`,
		"not json":     `<html>`,
		"number items": `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			ts, _ := serve(t, http.StatusOK, body)
			_, err := New(ts.URL, newCache(), WithHTTPClient(ts.Client())).Load(context.Background())

			failure := loadFailure(t, err)
			if failure.Status != 0 || failure.Message != "invalid format" {
				t.Errorf("failure = %+v, want invalid format without status", failure)
			}
		})
	}
}

func TestLoad_EmptyArrayIsValid(t *testing.T) {
	ts, _ := serve(t, http.StatusOK, `[]`)
	got, err := New(ts.URL, newCache(), WithHTTPClient(ts.Client())).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no articles, got %d", len(got))
	}
}

func TestLoad_NetworkError(t *testing.T) {
	ts, _ := serve(t, http.StatusOK, sampleJSON)
	url := ts.URL
	ts.Close()

	_, err := New(url, newCache()).Load(context.Background())
	if failure := loadFailure(t, err); !strings.Contains(failure.Message, "network error") {
		t.Errorf("message = %q", failure.Message)
	}
	if errors.Unwrap(err) != nil {
		t.Error("low-level errors are not re-exposed")
	}
}

func TestLoad_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, source := range []string{path, "file://" + path} {
		got, err := New(source, newCache()).Load(context.Background())
		if err != nil {
			t.Fatalf("%s: %v", source, err)
		}
		if len(got) != 2 {
			t.Errorf("%s: expected 2 articles, got %d", source, len(got))
		}
	}
}

func TestLoad_MissingLocalFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.json"), newCache()).Load(context.Background())
	if failure := loadFailure(t, err); !strings.Contains(failure.Message, "reading data file") {
		t.Errorf("message = %q", failure.Message)
	}
}

func TestLoad_ConcurrentCallsShareOneFetch(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		io.WriteString(w, sampleJSON)
	}))
	defer ts.Close()

	l := New(ts.URL, newCache(), WithHTTPClient(ts.Client()))

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Load(context.Background())
			errs <- err
		}()
	}
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Load: %v", err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 fetch, got %d", n)
	}
}

func TestLoad_CanceledCaller(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		io.WriteString(w, sampleJSON)
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ts.URL, newCache(), WithHTTPClient(ts.Client())).Load(ctx)
	if failure := loadFailure(t, err); !strings.Contains(failure.Message, "canceled") {
		t.Errorf("message = %q", failure.Message)
	}
}

func TestLoadFailureError(t *testing.T) {
	tests := []struct {
		failure *LoadFailure
		want    string
	}{
		{&LoadFailure{Message: "invalid format"}, "loading articles: invalid format"},
		{&LoadFailure{Status: 404, Message: "unexpected response 404 Not Found"}, "loading articles: unexpected response 404 Not Found (status 404)"},
	}
	for _, tt := range tests {
		if got := tt.failure.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
