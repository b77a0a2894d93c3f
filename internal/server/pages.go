package server

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/view"
)

func (s *Server) registerPages(r chi.Router) {
	r.Get("/", s.handleList)
	r.Get("/article", s.handleDetail)
	r.Get("/style.css", serveAsset("text/css; charset=utf-8", view.Stylesheet))
	r.Get("/app.js", serveAsset("application/javascript; charset=utf-8", view.Script))
}

func (s *Server) site() view.Site {
	return view.Site{Title: s.cfg.SiteTitle, BasePath: "/", Home: "/", SocketPath: SocketPath}
}

// clearCache empties the cache when the query string mentions "clearcache"
// and redirects to the same path without the query.
func (s *Server) clearCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "clearcache") {
			next.ServeHTTP(w, r)
			return
		}
		if s.store != nil {
			s.store.Clear(r.Context())
			s.logger.Info("cache cleared by request", "path", r.URL.Path)
		}
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
	})
}

func stateFromQuery(r *http.Request) filter.State {
	q := r.URL.Query()
	return filter.State{ActiveTopic: q.Get("topic"), Query: q.Get("q")}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	v := s.list.Show(r.Context(), stateFromQuery(r))
	status := http.StatusOK
	if v.Status == view.StatusError {
		status = http.StatusServiceUnavailable
	}

	var buf bytes.Buffer
	if err := view.WriteList(&buf, s.site(), v); err != nil {
		s.logger.Error("rendering list page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	v := s.detail.Show(r.Context(), r.URL.Query().Get("id"))
	status := http.StatusOK
	switch v.Status {
	case view.StatusError:
		status = http.StatusServiceUnavailable
	case view.StatusNotFound:
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := view.WriteDetail(&buf, s.site(), v); err != nil {
		s.logger.Error("rendering detail page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write([]byte(body))
	}
}
