// Package render turns articles into markup fragments for the list and
// detail views. Scalar fields are escaped by html/template; only article
// content is inserted as markup, after passing through the sanitizer.
package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/sanitize"
)

// AnonymousAuthor is shown when an article has no author.
const AnonymousAuthor = "Anonim"

var (
	cardTmpl   = template.Must(template.New("card").Parse(cardTemplate))
	detailTmpl = template.Must(template.New("detail").Parse(detailTemplate))
)

// QueryLink links to the detail page as "?id=<escaped id>".
func QueryLink(id string) string {
	return "?id=" + url.QueryEscape(id)
}

// Option mutates renderer configuration.
type Option func(*Renderer)

// WithWordsPerMinute sets the reading speed for reading-time estimates.
func WithWordsPerMinute(wpm int) Option {
	return func(r *Renderer) {
		if wpm > 0 {
			r.wpm = wpm
		}
	}
}

// WithDetailLink sets how cards link to the detail view. The function receives
// the raw article id and must return an already escaped URL.
func WithDetailLink(link func(id string) string) Option {
	return func(r *Renderer) {
		if link != nil {
			r.link = link
		}
	}
}

// Renderer holds the settings for card and detail rendering. It has no
// mutable state and is safe for concurrent use.
type Renderer struct {
	wpm  int
	link func(id string) string
}

// New creates a renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{wpm: DefaultWordsPerMinute, link: QueryLink}
	for _, option := range options {
		option(r)
	}
	return r
}

var defaultRenderer = New()

// RenderCard renders a in list context with the default renderer.
func RenderCard(a article.Article) template.HTML { return defaultRenderer.Card(a) }

// RenderDetail renders a in detail context with the default renderer.
func RenderDetail(a article.Article) template.HTML { return defaultRenderer.Detail(a) }

type cardData struct {
	ID        string
	Topic     string
	Title     string
	Excerpt   string
	Author    string
	Date      string
	DateLabel string
	Cover     string
	Href      template.URL
}

type detailData struct {
	ID             string
	Topic          string
	Title          string
	Author         string
	Date           string
	DateLabel      string
	Cover          string
	ReadingMinutes int
	Content        template.HTML
}

func authorOrPlaceholder(author string) string {
	if strings.TrimSpace(author) == "" {
		return AnonymousAuthor
	}
	return author
}

// Card renders a in list context.
func (r *Renderer) Card(a article.Article) template.HTML {
	data := cardData{
		ID:        a.ID,
		Topic:     a.Topic,
		Title:     a.Title,
		Excerpt:   a.Excerpt,
		Author:    authorOrPlaceholder(a.Author),
		Date:      a.Date,
		DateLabel: FormatDate(a.Date),
		Cover:     a.Cover,
		Href:      template.URL(r.link(a.ID)),
	}
	return execute(cardTmpl, data)
}

// Detail renders a in detail context, including its sanitized content and reading time.
func (r *Renderer) Detail(a article.Article) template.HTML {
	data := detailData{
		ID:             a.ID,
		Topic:          a.Topic,
		Title:          a.Title,
		Author:         authorOrPlaceholder(a.Author),
		Date:           a.Date,
		DateLabel:      FormatDate(a.Date),
		Cover:          a.Cover,
		ReadingMinutes: ReadingTime(a.Content, r.wpm),
		Content:        template.HTML(sanitize.Sanitize(a.Content)),
	}
	return execute(detailTmpl, data)
}

// ReadingMinutes returns the reading-time estimate r uses for a.
func (r *Renderer) ReadingMinutes(a article.Article) int {
	return ReadingTime(a.Content, r.wpm)
}

func execute(t *template.Template, data any) template.HTML {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return ""
	}
	return template.HTML(b.String())
}
