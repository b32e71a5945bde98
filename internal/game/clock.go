package game

import "time"

// TimeProvider is the wall-clock source for tick gating.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime reads the monotonic system clock.
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }

// Clock gates discrete tile steps to a fixed wall-clock cadence, independent
// of how often frames are rendered.
type Clock struct {
	threshold time.Duration
	last      time.Time
}

func NewClock(threshold time.Duration, start time.Time) *Clock {
	return &Clock{threshold: threshold, last: start}
}

// ShouldTick reports whether a step is due at now. It does not consume the
// tick; call Reset once the step has been applied to every segment.
func (c *Clock) ShouldTick(now time.Time) bool {
	return now.Sub(c.last) >= c.threshold
}

func (c *Clock) Reset(now time.Time) {
	c.last = now
}

func (c *Clock) Threshold() time.Duration { return c.threshold }
