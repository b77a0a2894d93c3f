package filter

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence interval for free-text input.
const DefaultDebounce = 300 * time.Millisecond

// Timer is a pending scheduled task.
type Timer interface {
	// Stop cancels the task. It reports false if the task already ran.
	Stop() bool
}

// Scheduler runs f after d. time.AfterFunc is the production scheduler;
// tests inject a manual one.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealScheduler schedules on the runtime timer.
var RealScheduler Scheduler = realScheduler{}

// Debouncer holds at most one pending task. Scheduling replaces the pending
// task, so only the most recent one can run.
type Debouncer struct {
	delay     time.Duration
	scheduler Scheduler

	mu      sync.Mutex
	timer   Timer
	pending uint64
}

// NewDebouncer creates a debouncer with the given quiescence interval.
func NewDebouncer(delay time.Duration, scheduler Scheduler) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if scheduler == nil {
		scheduler = RealScheduler
	}
	return &Debouncer{delay: delay, scheduler: scheduler}
}

// Schedule cancels any pending task and schedules f after the delay.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending++
	gen := d.pending
	d.timer = d.scheduler.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A superseded task may already be running when Stop is called.
		if gen != d.pending || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		f()
	})
}

// Cancel drops the pending task, if any. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Pending reports whether a task is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.pending++
	return true
}
