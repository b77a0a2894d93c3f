package view

import (
	"context"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/render"
)

// DetailView is the computed detail page.
type DetailView struct {
	Status      Status
	Message     string
	Detail      string
	RetryHref   string
	RequestedID string
	// Fallback is set when RequestedID matched nothing and the first article
	// of the collection is shown instead.
	Fallback       bool
	Article        article.Article
	ReadingMinutes int
	HTML           template.HTML
}

// Ready reports whether the view shows an article.
func (v DetailView) Ready() bool { return v.Status == StatusReady }

// DetailController builds the detail page.
type DetailController struct {
	loader   Loader
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewDetailController creates a detail controller. A nil logger means slog.Default().
func NewDetailController(loader Loader, renderer *render.Renderer, logger *slog.Logger) *DetailController {
	if renderer == nil {
		renderer = render.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailController{loader: loader, renderer: renderer, logger: logger}
}

// Show loads the collection and renders the article with the given id,
// falling back to the first article when the id is absent or unknown.
func (c *DetailController) Show(ctx context.Context, id string) DetailView {
	articles, err := c.loader.Load(ctx)
	if err != nil {
		c.logger.Error("detail view load failed", "id", id, "error", err)
		return DetailView{
			Status:      StatusError,
			Message:     MessageError,
			Detail:      err.Error(),
			RetryHref:   "?id=" + url.QueryEscape(id),
			RequestedID: id,
		}
	}
	return c.Build(articles, id)
}

// Build renders the detail view for id over an already loaded collection.
func (c *DetailController) Build(articles []article.Article, id string) DetailView {
	a, fallback, ok := article.Find(articles, id)
	if !ok {
		return DetailView{Status: StatusNotFound, Message: MessageNotFound, RequestedID: id}
	}
	if fallback {
		c.logger.Debug("detail fallback to first article", "requested", id, "shown", a.ID)
	}
	v := DetailView{
		Status:         StatusReady,
		RequestedID:    id,
		Fallback:       fallback,
		Article:        a,
		ReadingMinutes: c.renderer.ReadingMinutes(a),
		HTML:           c.renderer.Detail(a),
	}
	if fallback {
		v.Message = MessageFallback
	}
	return v
}
