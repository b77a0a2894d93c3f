package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/render"
)

func (s *Server) registerAPI(r chi.Router) {
	r.Get("/api/articles", s.handleListArticles)
	r.Get("/api/articles/{id}", s.handleGetArticle)
	r.Get("/api/topics", s.handleTopics)
}

type listResponse struct {
	Articles []article.Article `json:"articles"`
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Topic    string            `json:"topic"`
	Query    string            `json:"query"`
}

type articleResponse struct {
	article.Article
	DateLabel      string `json:"date_label,omitempty"`
	ReadingMinutes int    `json:"reading_minutes"`
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Error("api load failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	state := stateFromQuery(r)
	if state.ActiveTopic == "" {
		state.ActiveTopic = article.AllTopics
	}
	visible := filter.Apply(articles, state, s.list.FilterOptions())
	writeJSON(w, http.StatusOK, listResponse{
		Articles: visible,
		Count:    len(visible),
		Total:    len(articles),
		Topic:    state.ActiveTopic,
		Query:    state.Query,
	})
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	articles, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Error("api load failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	id, err := articleID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid article id"})
		return
	}

	a, err := article.Lookup(articles, id)
	if errors.Is(err, article.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, articleResponse{
		Article:        a,
		DateLabel:      render.FormatDate(a.Date),
		ReadingMinutes: s.renderer.ReadingMinutes(a),
	})
}

// articleID returns the decoded {id} segment. chi matches on RawPath when the
// request carries reserved escapes such as %2F, leaving the param escaped.
func articleID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	articles, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Error("api load failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	topics := article.Topics(articles)
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"topics": topics})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
