package filter

import (
	"sync"
	"time"

	"github.com/ziadkadry99/kabar/internal/article"
)

// Result is one recomputation of the visible subset.
type Result struct {
	State   State
	Visible []article.Article
}

// EngineOption mutates engine configuration.
type EngineOption func(*Engine)

// WithDebounce sets the quiescence interval for Input.
func WithDebounce(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithScheduler injects the scheduler used for debouncing.
func WithScheduler(s Scheduler) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithMatchExcerpt enables matching the query against excerpts.
func WithMatchExcerpt(enabled bool) EngineOption {
	return func(e *Engine) { e.opts.MatchExcerpt = enabled }
}

// WithInitialState sets the state the engine starts in. An empty topic
// selects every topic.
func WithInitialState(s State) EngineOption {
	return func(e *Engine) {
		if s.ActiveTopic == "" {
			s.ActiveTopic = article.AllTopics
		}
		e.state = s
	}
}

// WithOnChange registers the callback invoked after every recomputation,
// including debounced ones fired from the scheduler.
func WithOnChange(fn func(Result)) EngineOption {
	return func(e *Engine) { e.onChange = fn }
}

// Engine owns the filter state for one view. Topic selection and explicit
// submits recompute immediately; free-text input recomputes only after the
// debounce interval has passed without further input. Recomputations and
// their callbacks are serialized.
type Engine struct {
	delay     time.Duration
	scheduler Scheduler
	opts      Options
	onChange  func(Result)
	debouncer *Debouncer

	emit sync.Mutex

	mu       sync.Mutex
	articles []article.Article
	state    State
	inputSeq uint64
}

// NewEngine creates an engine showing every article of the collection.
func NewEngine(articles []article.Article, options ...EngineOption) *Engine {
	e := &Engine{
		delay:     DefaultDebounce,
		scheduler: RealScheduler,
		articles:  articles,
		state:     DefaultState(),
	}
	for _, option := range options {
		option(e)
	}
	e.debouncer = NewDebouncer(e.delay, e.scheduler)
	return e
}

// State returns the current filter state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetCollection replaces the collection and recomputes immediately.
func (e *Engine) SetCollection(articles []article.Article) Result {
	return e.update(func() bool {
		e.articles = articles
		return true
	})
}

// SelectTopic makes topic the only active topic and recomputes immediately.
// An empty topic selects every topic.
func (e *Engine) SelectTopic(topic string) Result {
	if topic == "" {
		topic = article.AllTopics
	}
	return e.update(func() bool {
		e.state.ActiveTopic = topic
		return true
	})
}

// Input records a keystroke-level change of the query. The recomputation runs
// once no further Input or Submit arrives within the debounce interval.
func (e *Engine) Input(raw string) {
	e.mu.Lock()
	e.inputSeq++
	seq := e.inputSeq
	e.mu.Unlock()

	e.debouncer.Schedule(func() {
		e.update(func() bool {
			if seq != e.inputSeq {
				return false
			}
			e.state.Query = raw
			return true
		})
	})
}

// Submit bypasses the debounce: the pending input is dropped and the query
// is applied immediately.
func (e *Engine) Submit(raw string) Result {
	e.debouncer.Cancel()
	return e.update(func() bool {
		e.inputSeq++
		e.state.Query = raw
		return true
	})
}

// Pending reports whether a debounced recomputation is waiting.
func (e *Engine) Pending() bool { return e.debouncer.Pending() }

// Close drops any pending recomputation.
func (e *Engine) Close() { e.debouncer.Cancel() }

// update applies mutate under the state lock and, if it reports a change,
// notifies with the new result. Only one update runs at a time.
func (e *Engine) update(mutate func() bool) Result {
	e.emit.Lock()
	defer e.emit.Unlock()

	e.mu.Lock()
	changed := mutate()
	res := e.resultLocked()
	e.mu.Unlock()

	if changed && e.onChange != nil {
		e.onChange(res)
	}
	return res
}

func (e *Engine) resultLocked() Result {
	return Result{State: e.state, Visible: Apply(e.articles, e.state, e.opts)}
}
