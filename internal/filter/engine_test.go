package filter

import (
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/kabar/internal/article"
)

// manualScheduler fires tasks only when the test advances its clock.
type manualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, at: s.now + d, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.tasks {
		if !t.fired && !t.stopped && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type recorder struct {
	mu      sync.Mutex
	results []Result
}

func (r *recorder) record(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) all() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.results...)
}

func newTestEngine(s Scheduler, rec *recorder, opts ...EngineOption) *Engine {
	return NewEngine(catalog(), append([]EngineOption{WithScheduler(s), WithOnChange(rec.record)}, opts...)...)
}

func TestDebouncerReplacesPendingTask(t *testing.T) {
	s := &manualScheduler{}
	// zero delay falls back to DefaultDebounce
	d := NewDebouncer(0, s)

	var ran []string
	d.Schedule(func() { ran = append(ran, "first") })
	s.Advance(200 * time.Millisecond)
	d.Schedule(func() { ran = append(ran, "second") })
	if n := s.live(); n != 1 {
		t.Errorf("superseded task must be stopped, %d live", n)
	}

	s.Advance(200 * time.Millisecond)
	if len(ran) != 0 || !d.Pending() {
		t.Fatalf("task ran early: %v", ran)
	}

	s.Advance(100 * time.Millisecond)
	if len(ran) != 1 || ran[0] != "second" {
		t.Errorf("ran = %v, want [second]", ran)
	}
	if d.Pending() {
		t.Error("nothing should be pending after the task fired")
	}
}

func TestDebouncerCancel(t *testing.T) {
	s := &manualScheduler{}
	d := NewDebouncer(50*time.Millisecond, s)
	ran := false
	d.Schedule(func() { ran = true })

	if !d.Cancel() {
		t.Error("first Cancel should report a stopped task")
	}
	if d.Cancel() {
		t.Error("second Cancel should report nothing to stop")
	}
	s.Advance(time.Second)
	if ran {
		t.Error("canceled task ran")
	}
}

func TestEngineInputWaitsForQuiescence(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)

	e.Input("banjir")
	s.Advance(299 * time.Millisecond)
	if len(rec.all()) != 0 || e.State().Query != "" {
		t.Fatal("input applied before the quiescence interval")
	}

	s.Advance(time.Millisecond)
	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 recomputation, got %d", len(got))
	}
	if got[0].State.Query != "banjir" {
		t.Errorf("query = %q, want banjir", got[0].State.Query)
	}
	checkIDs(t, got[0].Visible, "3")
}

func TestEngineKeystrokesCoalesce(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)

	e.Input("f")
	s.Advance(200 * time.Millisecond)
	e.Input("fi")
	s.Advance(200 * time.Millisecond)
	e.Input("fis")
	s.Advance(200 * time.Millisecond)
	if len(rec.all()) != 0 {
		t.Fatal("recomputed while keystrokes were still arriving")
	}

	s.Advance(100 * time.Millisecond)
	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("only the most recent input recomputes, got %d", len(got))
	}
	if got[0].State.Query != "fis" {
		t.Errorf("query = %q, want fis", got[0].State.Query)
	}
}

func TestEngineSubmitBypassesDebounce(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)

	e.Input("fis")
	res := e.Submit("fisika")
	checkIDs(t, res.Visible, "2")
	if e.Pending() {
		t.Error("Submit should drop the pending input")
	}

	s.Advance(time.Second)
	got := rec.all()
	if len(got) != 1 || got[0].State.Query != "fisika" {
		t.Errorf("expected a single recomputation for fisika, got %+v", got)
	}
}

func TestEngineSelectTopicIsImmediateAndExclusive(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)

	checkIDs(t, e.SelectTopic("Berita").Visible, "1", "3", "5")

	res := e.SelectTopic("Edukasi")
	if res.State.ActiveTopic != "Edukasi" {
		t.Errorf("active topic = %q, want Edukasi", res.State.ActiveTopic)
	}
	checkIDs(t, res.Visible, "2")

	res = e.SelectTopic("")
	if res.State.ActiveTopic != article.AllTopics {
		t.Errorf("empty topic should select all, got %q", res.State.ActiveTopic)
	}
	if len(res.Visible) != len(catalog()) {
		t.Errorf("expected every article, got %d", len(res.Visible))
	}
	if n := len(rec.all()); n != 3 {
		t.Errorf("expected 3 notifications, got %d", n)
	}
}

func TestEngineSelectTopicKeepsPendingInput(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)

	e.Input("banjir")
	res := e.SelectTopic("Berita")
	if res.State.Query != "" {
		t.Errorf("topic change must not apply the pending query early, got %q", res.State.Query)
	}
	checkIDs(t, res.Visible, "1", "3", "5")
	if !e.Pending() {
		t.Fatal("pending input should survive a topic change")
	}

	s.Advance(300 * time.Millisecond)
	got := rec.all()
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	last := got[1]
	if last.State != (State{ActiveTopic: "Berita", Query: "banjir"}) {
		t.Errorf("state = %+v", last.State)
	}
	checkIDs(t, last.Visible, "3")
}

func TestEngineTopicAndQueryCombine(t *testing.T) {
	s := &manualScheduler{}
	e := newTestEngine(s, &recorder{}, WithMatchExcerpt(true))

	e.SelectTopic("Sains")
	checkIDs(t, e.Submit("fisika").Visible, "4")
}

func TestEngineInitialState(t *testing.T) {
	e := newTestEngine(&manualScheduler{}, &recorder{}, WithInitialState(State{Query: "gempa"}))

	if got := e.State(); got != (State{ActiveTopic: article.AllTopics, Query: "gempa"}) {
		t.Errorf("state = %+v", got)
	}
	checkIDs(t, e.SetCollection(catalog()).Visible, "1")
}

func TestEngineSetCollection(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)
	e.SelectTopic("Berita")

	checkIDs(t, e.SetCollection(scenario()).Visible, "a1")
	if n := len(rec.all()); n != 2 {
		t.Errorf("SetCollection should notify, got %d notifications", n)
	}
}

func TestEngineCloseDropsPendingInput(t *testing.T) {
	s := &manualScheduler{}
	rec := &recorder{}
	e := newTestEngine(s, rec)

	e.Input("gempa")
	e.Close()
	s.Advance(time.Second)
	if n := len(rec.all()); n != 0 {
		t.Errorf("closed engine recomputed %d times", n)
	}
}

func TestEngineRealScheduler(t *testing.T) {
	done := make(chan Result, 1)
	e := NewEngine(catalog(), WithDebounce(10*time.Millisecond), WithOnChange(func(r Result) { done <- r }))
	defer e.Close()

	e.Input("pemilu")
	select {
	case res := <-done:
		checkIDs(t, res.Visible, "5")
	case <-time.After(2 * time.Second):
		t.Fatal("debounced recomputation never ran")
	}
}
