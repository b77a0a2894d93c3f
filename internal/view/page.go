package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

var pages = template.Must(template.Must(template.New("kabar").Parse(partialTemplates)).Parse(pageTemplates))

// Site carries the page chrome shared by every document.
type Site struct {
	Title string
	// BasePath prefixes style.css and app.js.
	BasePath string
	// Home is the href of the list page.
	Home string
	// SocketPath enables live search when non-empty.
	SocketPath string
}

type pageData struct {
	Title  string
	Kind   string
	Site   Site
	List   *ListView
	Detail *DetailView
}

// WriteList writes the full list document.
func WriteList(w io.Writer, site Site, v ListView) error {
	return pages.ExecuteTemplate(w, "list", pageData{Title: site.Title, Kind: "list", Site: site, List: &v})
}

// WriteDetail writes the full detail document.
func WriteDetail(w io.Writer, site Site, v DetailView) error {
	title := site.Title
	if v.Ready() && v.Article.Title != "" {
		title = v.Article.Title + " | " + site.Title
	}
	return pages.ExecuteTemplate(w, "detail", pageData{Title: title, Kind: "detail", Site: site, Detail: &v})
}

// Results renders the results block of v.
func Results(v ListView) (template.HTML, error) { return fragment("results", v) }

// ChipBar renders the topic bar of v.
func ChipBar(v ListView) (template.HTML, error) { return fragment("chips", v) }

func fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
