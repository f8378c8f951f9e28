package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debouncer collapses bursts of events into one callback. Editors often
// save a file as write+chmod or rename+create, which should reload once.
type Debouncer struct {
	mu       sync.Mutex
	ops      fsnotify.Op
	pending  bool
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a new debouncer with the given interval
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
	}
}

// Add records an event and (re)arms the timer. callback receives the
// combined operations once no event has arrived for the interval.
func (d *Debouncer) Add(op fsnotify.Op, callback func(fsnotify.Op)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ops |= op
	d.pending = true

	// Cancel any existing timer
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if !d.pending {
			d.mu.Unlock()
			return
		}
		ops := d.ops
		d.ops = 0
		d.pending = false
		d.mu.Unlock()

		// Call the callback outside the lock
		callback(ops)
	})
}

// Stop cancels a pending callback
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
	d.ops = 0
}
