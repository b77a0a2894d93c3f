package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/sanitize"
)

// maxSearchContent caps the indexed text of one article, in bytes.
const maxSearchContent = 2000

// SearchEntry represents a single searchable article of the exported site.
type SearchEntry struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Topic   string `json:"topic,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Content string `json:"content,omitempty"`
}

// BuildSearchIndex builds one entry per article in collection order. href maps
// an article id to its page path.
func BuildSearchIndex(articles []article.Article, href func(id string) string) []SearchEntry {
	entries := make([]SearchEntry, 0, len(articles))
	for _, a := range articles {
		content := sanitize.StripTags(a.Content)
		if len(content) > maxSearchContent {
			content = truncate(content, maxSearchContent)
		}
		entries = append(entries, SearchEntry{
			ID:      a.ID,
			Path:    href(a.ID),
			Title:   a.Title,
			Topic:   a.Topic,
			Excerpt: a.Excerpt,
			Content: content,
		})
	}
	return entries
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
