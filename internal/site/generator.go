// Package site exports the catalog as a static site: a list page, one list
// page per topic, one detail page per article and a search index.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/progress"
	"github.com/ziadkadry99/kabar/internal/render"
	"github.com/ziadkadry99/kabar/internal/view"
)

// SiteGenerator renders the loaded catalog into OutputDir.
type SiteGenerator struct {
	OutputDir      string
	Title          string
	WordsPerMinute int
	MatchExcerpt   bool
	// Workers bounds concurrent page writes. Zero means 4.
	Workers  int
	Reporter progress.Reporter
	Logger   *slog.Logger

	loader view.Loader
}

// NewSiteGenerator creates a SiteGenerator that reads articles from loader.
func NewSiteGenerator(loader view.Loader, outputDir, title string) *SiteGenerator {
	return &SiteGenerator{
		OutputDir: outputDir,
		Title:     title,
		Workers:   4,
		Reporter:  progress.Nop{},
		Logger:    slog.Default(),
		loader:    loader,
	}
}

// Result summarizes one export.
type Result struct {
	Pages    int
	Articles int
	Skipped  []string
}

// page is one document to write, relative to OutputDir with forward slashes.
type page struct {
	rel  string
	body []byte
}

// Generate loads the catalog and writes the site. Load failures abort the
// export before anything is written.
func (g *SiteGenerator) Generate(ctx context.Context) (Result, error) {
	articles, err := g.loader.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(view.Stylesheet), 0o644); err != nil {
		return Result{}, err
	}

	var res Result
	var pages []page

	root, err := g.listPage("", articles, filter.DefaultState())
	if err != nil {
		return Result{}, err
	}
	pages = append(pages, root)

	for _, topic := range article.Topics(articles) {
		dir, ok := safeDir("topic", topic)
		if !ok {
			g.logger().Warn("skipping topic page with unusable name", "topic", topic)
			continue
		}
		p, err := g.listPage(dir, articles, filter.State{ActiveTopic: topic})
		if err != nil {
			return Result{}, err
		}
		pages = append(pages, p)
	}

	detail := view.NewDetailController(nil, g.renderer(2), g.logger())
	seen := make(map[string]bool)
	for _, a := range articles {
		dir, ok := safeDir("article", a.ID)
		if !ok || seen[dir] {
			g.logger().Warn("skipping article with unusable or duplicate id", "id", a.ID)
			res.Skipped = append(res.Skipped, a.ID)
			continue
		}
		seen[dir] = true
		p, err := g.detailPage(dir, detail, articles, a.ID)
		if err != nil {
			return Result{}, err
		}
		pages = append(pages, p)
		res.Articles++
	}

	if err := g.writePages(ctx, pages); err != nil {
		return Result{}, err
	}
	res.Pages = len(pages)

	if err := WriteSearchIndex(BuildSearchIndex(articles, articleHref), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return Result{}, fmt.Errorf("writing search index: %w", err)
	}
	return res, nil
}

func (g *SiteGenerator) listPage(dir string, articles []article.Article, state filter.State) (page, error) {
	depth := strings.Count(dir, "/")
	if dir != "" {
		depth++
	}
	base := basePath(depth)
	list := view.NewListController(nil, g.renderer(depth),
		view.WithFilterOptions(filter.Options{MatchExcerpt: g.MatchExcerpt}),
		view.WithChipLink(func(topic, _ string) string { return base + topicHref(topic) }),
	)
	v := list.Build(articles, filter.Result{State: state, Visible: filter.Apply(articles, state, filter.Options{MatchExcerpt: g.MatchExcerpt})})

	var buf bytes.Buffer
	if err := view.WriteList(&buf, g.site(base), v); err != nil {
		return page{}, fmt.Errorf("rendering list %q: %w", dir, err)
	}
	return page{rel: path.Join(dir, "index.html"), body: buf.Bytes()}, nil
}

func (g *SiteGenerator) detailPage(dir string, c *view.DetailController, articles []article.Article, id string) (page, error) {
	var buf bytes.Buffer
	if err := view.WriteDetail(&buf, g.site(basePath(2)), c.Build(articles, id)); err != nil {
		return page{}, fmt.Errorf("rendering article %q: %w", id, err)
	}
	return page{rel: path.Join(dir, "index.html"), body: buf.Bytes()}, nil
}

func (g *SiteGenerator) writePages(ctx context.Context, pages []page) error {
	workers := g.Workers
	if workers <= 0 {
		workers = 4
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	reporter.Start(len(pages))
	defer reporter.Finish()

	var mu sync.Mutex
	done := 0

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, p := range pages {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := filepath.Join(g.OutputDir, filepath.FromSlash(p.rel))
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(out, p.body, 0o644); err != nil {
				return err
			}
			mu.Lock()
			done++
			reporter.Update(done, p.rel)
			mu.Unlock()
			return nil
		})
	}
	return eg.Wait()
}

func (g *SiteGenerator) renderer(depth int) *render.Renderer {
	base := basePath(depth)
	return render.New(
		render.WithWordsPerMinute(g.WordsPerMinute),
		render.WithDetailLink(func(id string) string { return base + articleHref(id) }),
	)
}

func (g *SiteGenerator) site(base string) view.Site {
	return view.Site{Title: g.Title, BasePath: base, Home: base + "index.html"}
}

func (g *SiteGenerator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// basePath climbs depth directories back to the site root.
func basePath(depth int) string {
	return strings.Repeat("../", depth)
}

// safeDir is the output directory for name under prefix. Names that could
// escape prefix are rejected.
func safeDir(prefix, name string) (string, bool) {
	escaped := url.PathEscape(name)
	if escaped == "" || escaped == "." || escaped == ".." {
		return "", false
	}
	return prefix + "/" + escaped, true
}

// articleHref links to an article page from the site root.
func articleHref(id string) string {
	return "article/" + url.PathEscape(url.PathEscape(id)) + "/index.html"
}

// topicHref links to a topic page from the site root.
func topicHref(topic string) string {
	if topic == article.AllTopics {
		return "index.html"
	}
	return "topic/" + url.PathEscape(url.PathEscape(topic)) + "/index.html"
}
