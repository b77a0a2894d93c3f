// Package filter computes the visible subset of the article collection from
// the active topic and the free-text query.
package filter

import (
	"strings"

	"github.com/ziadkadry99/kabar/internal/article"
)

// State is the current filter input. The zero value is normalized to
// showing every topic with no query.
type State struct {
	ActiveTopic string `json:"topic"`
	Query       string `json:"query"`
}

// DefaultState matches every article.
func DefaultState() State {
	return State{ActiveTopic: article.AllTopics}
}

// Options tune the query predicate.
type Options struct {
	// MatchExcerpt also matches the query against article excerpts.
	MatchExcerpt bool
}

func (s State) topic() string {
	if s.ActiveTopic == "" {
		return article.AllTopics
	}
	return s.ActiveTopic
}

// MatchesTopic reports whether a passes the topic predicate. Matching is exact and case-sensitive.
func (s State) MatchesTopic(a article.Article) bool {
	t := s.topic()
	return t == article.AllTopics || t == a.Topic
}

// MatchesQuery reports whether a passes the case-insensitive query predicate.
func (s State) MatchesQuery(a article.Article, opts Options) bool {
	q := strings.ToLower(strings.TrimSpace(s.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Title), q) {
		return true
	}
	return opts.MatchExcerpt && strings.Contains(strings.ToLower(a.Excerpt), q)
}

// Apply returns the articles matching both predicates in their original order.
func Apply(articles []article.Article, s State, opts Options) []article.Article {
	out := make([]article.Article, 0, len(articles))
	for _, a := range articles {
		if s.MatchesTopic(a) && s.MatchesQuery(a, opts) {
			out = append(out, a)
		}
	}
	return out
}
