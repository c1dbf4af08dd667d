package format

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has passed without another Call.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	fn    func()
	timer *time.Timer
}

// Debounce returns a Debouncer for fn.
func Debounce(fn func(), wait time.Duration) *Debouncer {
	return &Debouncer{fn: fn, wait: wait}
}

// Call (re)starts the wait window.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fn)
}

// Stop cancels a pending call. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
