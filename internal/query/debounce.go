package query

import (
	"sync"
	"time"
)

// DefaultDebounce is the pause required after the last keystroke before a
// search is applied.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback invocation after a
// quiet period. Each instance owns its own timer, so multiple search inputs
// never interfere with each other.
type Debouncer struct {
	timer *time.Timer
	delay time.Duration
	mu    sync.Mutex
}

// NewDebouncer creates a debouncer. A non-positive delay falls back to
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, canceling any previously
// scheduled call that has not fired yet.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
