package view

import (
	"context"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/render"
)

// AllTopicsLabel labels the chip that clears the topic filter.
const AllTopicsLabel = "Semua"

// Chip is one topic selector. Exactly one chip of a bar is active.
type Chip struct {
	Label  string
	Value  string
	Active bool
	Href   string
}

// ListView is the computed list page.
type ListView struct {
	Status    Status
	Message   string
	Detail    string
	RetryHref string
	State     filter.State
	Chips     []Chip
	Cards     []template.HTML
	Count     int
	Total     int
}

// Ready reports whether the view shows cards.
func (v ListView) Ready() bool { return v.Status == StatusReady }

// ListOption mutates list controller configuration.
type ListOption func(*ListController)

// WithFilterOptions sets the query predicate options.
func WithFilterOptions(opts filter.Options) ListOption {
	return func(c *ListController) { c.opts = opts }
}

// WithListLogger injects the logger used for load failures.
func WithListLogger(logger *slog.Logger) ListOption {
	return func(c *ListController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithChipLink sets how topic chips link to a filtered list. The function
// must return an already escaped URL.
func WithChipLink(link func(topic, query string) string) ListOption {
	return func(c *ListController) {
		if link != nil {
			c.chipLink = link
		}
	}
}

// ListController builds the list page.
type ListController struct {
	loader   Loader
	renderer *render.Renderer
	opts     filter.Options
	chipLink func(topic, query string) string
	logger   *slog.Logger
}

// NewListController creates a list controller.
func NewListController(loader Loader, renderer *render.Renderer, options ...ListOption) *ListController {
	if renderer == nil {
		renderer = render.New()
	}
	c := &ListController{loader: loader, renderer: renderer, chipLink: listHref, logger: slog.Default()}
	for _, option := range options {
		option(c)
	}
	return c
}

// FilterOptions returns the query predicate options the controller applies.
func (c *ListController) FilterOptions() filter.Options { return c.opts }

// Show loads the collection and computes the list for state. Load failures
// produce an error view with a retry link rather than an error.
func (c *ListController) Show(ctx context.Context, state filter.State) ListView {
	articles, err := c.loader.Load(ctx)
	if err != nil {
		c.logger.Error("list view load failed", "error", err)
		return FailedView(state, err)
	}
	return c.Build(articles, filter.Result{State: normalize(state), Visible: filter.Apply(articles, state, c.opts)})
}

// Build turns a filter result over articles into a list view.
func (c *ListController) Build(articles []article.Article, res filter.Result) ListView {
	state := normalize(res.State)
	v := ListView{
		State: state,
		Chips: chips(articles, state, c.chipLink),
		Count: len(res.Visible),
		Total: len(articles),
	}
	if len(res.Visible) == 0 {
		v.Status = StatusEmpty
		v.Message = MessageEmpty
		if len(articles) == 0 {
			v.Message = MessageNoData
		}
		return v
	}
	v.Status = StatusReady
	v.Cards = make([]template.HTML, 0, len(res.Visible))
	for _, a := range res.Visible {
		v.Cards = append(v.Cards, c.renderer.Card(a))
	}
	return v
}

// Chips returns the topic bar: "all" followed by the collection's topics in
// article.Topics order, with only the active one marked.
func Chips(articles []article.Article, state filter.State) []Chip {
	return chips(articles, state, listHref)
}

func chips(articles []article.Article, state filter.State, link func(topic, query string) string) []Chip {
	state = normalize(state)
	topics := article.Topics(articles)
	out := make([]Chip, 0, len(topics)+1)
	out = append(out, Chip{
		Label:  AllTopicsLabel,
		Value:  article.AllTopics,
		Active: state.ActiveTopic == article.AllTopics,
		Href:   link(article.AllTopics, state.Query),
	})
	for _, t := range topics {
		out = append(out, Chip{
			Label:  t,
			Value:  t,
			Active: state.ActiveTopic == t,
			Href:   link(t, state.Query),
		})
	}
	return out
}

func normalize(s filter.State) filter.State {
	if s.ActiveTopic == "" {
		s.ActiveTopic = article.AllTopics
	}
	return s
}

func listHref(topic, query string) string {
	v := url.Values{}
	if topic != "" && topic != article.AllTopics {
		v.Set("topic", topic)
	}
	if query != "" {
		v.Set("q", query)
	}
	if len(v) == 0 {
		return "?"
	}
	return "?" + v.Encode()
}
