package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/ziadkadry99/kabar/internal/db"
)

// ErrQuotaExceeded is returned by MemoryBackend when a value would exceed its quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryBackend keeps entries in a process-local map.
type MemoryBackend struct {
	mu       sync.Mutex
	values   map[string][]byte
	maxBytes int
}

// NewMemoryBackend creates an empty in-memory backend. A positive maxBytes
// rejects values larger than that with ErrQuotaExceeded.
func NewMemoryBackend(maxBytes int) *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte), maxBytes: maxBytes}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	if m.maxBytes > 0 && len(value) > m.maxBytes {
		return fmt.Errorf("setting %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// SQLiteBackend persists entries in the kv table of a kabar database.
type SQLiteBackend struct {
	db *db.DB
}

// NewSQLiteBackend creates a backend over an opened database.
func NewSQLiteBackend(database *db.DB) *SQLiteBackend {
	return &SQLiteBackend{db: database}
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("upserting %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}
