package history

import (
	"sync"
	"time"
)

// Throttle runs fn at most once per interval. Calls only arm a timer: fn runs
// when the window closing after the first call of a burst elapses, on the
// timer's goroutine.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	timer    *time.Timer
	stopped  bool
}

// NewThrottle creates a throttle around fn
func NewThrottle(interval time.Duration, fn func()) *Throttle {
	return &Throttle{interval: interval, fn: fn}
}

// Call schedules fn unless a run is already pending
func (t *Throttle) Call() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.interval, t.fire)
}

// Pending reports whether a run is scheduled
func (t *Throttle) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Stop cancels the pending run and disables the throttle
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Throttle) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.fn()
}
