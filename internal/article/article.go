// Package article defines the article record served by kabar and the small
// lookup helpers shared by the loader, filter and view packages.
package article

import "errors"

// AllTopics is the filter value that matches every topic.
const AllTopics = "all"

// Known topic labels. Data files may carry other labels; they are shown as-is.
const (
	TopicBerita    = "Berita"
	TopicEdukasi   = "Edukasi"
	TopicTeknologi = "Teknologi"
	TopicSains     = "Sains"
	TopicOpini     = "Opini"
)

// KnownTopics lists the fixed vocabulary in display order.
var KnownTopics = []string{TopicBerita, TopicEdukasi, TopicTeknologi, TopicSains, TopicOpini}

// ErrNotFound is returned by Lookup when no article carries the requested id.
var ErrNotFound = errors.New("article not found")

// Article is one record of the static data file. Unknown JSON fields are ignored.
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Topic   string `json:"topic"`
	Excerpt string `json:"excerpt,omitempty"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date"`
	Cover   string `json:"cover,omitempty"`
	Content string `json:"content,omitempty"`
}

// Lookup returns the article with the given id.
func Lookup(articles []Article, id string) (Article, error) {
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}

// Find returns the article with the given id, falling back to the first
// article of the collection when the id is unknown. The second result
// reports whether the fallback was used; ok is false only for an empty
// collection.
func Find(articles []Article, id string) (a Article, fallback bool, ok bool) {
	if len(articles) == 0 {
		return Article{}, false, false
	}
	if found, err := Lookup(articles, id); err == nil {
		return found, false, true
	}
	return articles[0], true, true
}

// Topics returns the distinct topic labels of the collection. Known labels
// come first in vocabulary order, then other labels in first-seen order.
// A label equal to AllTopics cannot be selected on its own and is left out;
// such articles are still listed under every topic.
func Topics(articles []Article) []string {
	seen := make(map[string]bool)
	var unknown []string
	for _, a := range articles {
		if a.Topic == "" || a.Topic == AllTopics || seen[a.Topic] {
			continue
		}
		seen[a.Topic] = true
		if !IsKnownTopic(a.Topic) {
			unknown = append(unknown, a.Topic)
		}
	}

	var out []string
	for _, t := range KnownTopics {
		if seen[t] {
			out = append(out, t)
		}
	}
	return append(out, unknown...)
}

// IsKnownTopic reports whether label belongs to the fixed vocabulary.
func IsKnownTopic(label string) bool {
	for _, t := range KnownTopics {
		if t == label {
			return true
		}
	}
	return false
}
