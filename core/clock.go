package core

import "time"

// Clock is the explicit, restartable, pausable stopwatch driving the
// simulation. Resets produce a clean t=0 on data reloads. All access happens
// on the frame loop; other goroutines only ever see published snapshots.
type Clock struct {
	now         func() time.Time
	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

// NewClock creates a running clock at t=0.
func NewClock() *Clock {
	return newClockAt(time.Now)
}

func newClockAt(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns stopwatch seconds, excluding paused spans.
func (c *Clock) Elapsed() float64 {
	if c.paused {
		return c.pausedAt.Sub(c.start).Seconds() - c.pausedTotal.Seconds()
	}
	return c.now().Sub(c.start).Seconds() - c.pausedTotal.Seconds()
}

// Restart rewinds the stopwatch to t=0 and resumes it.
func (c *Clock) Restart() {
	c.start = c.now()
	c.paused = false
	c.pausedAt = time.Time{}
	c.pausedTotal = 0
}

// Pause freezes elapsed time.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.now()
}

// Resume continues elapsed time from where Pause froze it.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.pausedTotal += c.now().Sub(c.pausedAt)
	c.paused = false
	c.pausedAt = time.Time{}
}

// IsPaused reports whether the stopwatch is frozen.
func (c *Clock) IsPaused() bool {
	return c.paused
}
