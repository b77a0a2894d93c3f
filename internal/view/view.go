// Package view orchestrates load, filter and render for the list and detail
// pages and owns their loading, empty, error and not-found states.
package view

import (
	"context"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/filter"
)

// Status is the state a view renders in.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusEmpty    Status = "empty"
	StatusError    Status = "error"
	StatusNotFound Status = "not-found"
)

// User-facing messages.
const (
	MessageLoading  = "Memuat artikel..."
	MessageEmpty    = "Tidak ada artikel yang cocok dengan pencarian Anda."
	MessageNoData   = "Belum ada artikel."
	MessageError    = "Gagal memuat artikel."
	MessageNotFound = "Artikel tidak ditemukan."
	MessageFallback = "Artikel yang diminta tidak ditemukan. Menampilkan artikel pertama."
)

// Loader supplies the article collection.
type Loader interface {
	Load(ctx context.Context) ([]article.Article, error)
}

// LoadingView is the list placeholder shown while the collection loads.
func LoadingView(state filter.State) ListView {
	return ListView{Status: StatusLoading, Message: MessageLoading, State: normalize(state)}
}

// FailedView is the list shown when the collection could not be loaded.
func FailedView(state filter.State, err error) ListView {
	state = normalize(state)
	return ListView{
		Status:    StatusError,
		Message:   MessageError,
		Detail:    err.Error(),
		RetryHref: listHref(state.ActiveTopic, state.Query),
		State:     state,
	}
}
