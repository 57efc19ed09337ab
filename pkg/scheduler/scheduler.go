// Package scheduler provides a keyed debounce primitive: scheduling a task
// under a key cancels any task still pending under the same key. It replaces
// ad hoc timer-handle bookkeeping with a single named abstraction.
package scheduler

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending task per key. Tasks run on their own
// goroutine once their delay elapses without the key being rescheduled.
type Debouncer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewDebouncer creates an empty Debouncer.
func NewDebouncer() *Debouncer {
	return &Debouncer{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms task to run after delay, cancelling any task still pending
// under the same key. A new call with the same key restarts the timer, which
// is what debounces a stream of keystrokes.
func (d *Debouncer) Schedule(key string, delay time.Duration, task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}
	d.timers[key] = time.AfterFunc(delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		task()
	})
}

// Cancel clears the pending task for key, if any, and reports whether one was
// pending. Used when the state a task would act on is removed, e.g. a line
// with an in-flight search.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	timer, ok := d.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(d.timers, key)
	return ok
}

// Stop cancels every pending task and refuses further scheduling.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}

// Pending reports whether a task is currently scheduled under key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[key]
	return ok
}
