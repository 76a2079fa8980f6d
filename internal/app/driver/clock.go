package driver

import "time"

// Clock measures wall time between successive steps.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Elapsed returns milliseconds since the previous call. The first call
// returns 0 and a clock moving backwards yields 0.
func (c *Clock) Elapsed() float64 {
	now := c.now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
