package apiclient

import "sync/atomic"

// NopIndicator ignores loading state.
type NopIndicator struct{}

func (NopIndicator) Show() {}
func (NopIndicator) Hide() {}

// Counter is a nesting-aware indicator: it stays active while any call is in
// flight. OnChange, when set, is called whenever activity starts or stops.
type Counter struct {
	inFlight atomic.Int64
	OnChange func(active bool)
}

// Show marks one more call as in flight.
func (c *Counter) Show() {
	if c.inFlight.Add(1) == 1 && c.OnChange != nil {
		c.OnChange(true)
	}
}

// Hide marks one call as finished.
func (c *Counter) Hide() {
	n := c.inFlight.Add(-1)
	if n < 0 {
		c.inFlight.Store(0)
		return
	}
	if n == 0 && c.OnChange != nil {
		c.OnChange(false)
	}
}

// Active reports whether any call is in flight.
func (c *Counter) Active() bool {
	return c.inFlight.Load() > 0
}
