// Package playback keeps the shared playback time and advances it while
// autoplay is running.
package playback

import "math"

// Cursor is a playback position that always stays within [0, duration].
type Cursor struct {
	time     float64
	duration float64
}

// NewCursor returns a cursor at 0 for the given duration.
func NewCursor(duration float64) Cursor {
	return Cursor{duration: math.Max(0, duration)}
}

// Time reports the current position in seconds.
func (c *Cursor) Time() float64 { return c.time }

// Duration reports the length of the loaded audio in seconds.
func (c *Cursor) Duration() float64 { return c.duration }

// Set moves the cursor, clamping t to [0, duration].
func (c *Cursor) Set(t float64) {
	if math.IsNaN(t) {
		t = 0
	}
	c.time = math.Max(0, math.Min(t, c.duration))
}

// SetDuration changes the duration and re-clamps the current position.
func (c *Cursor) SetDuration(d float64) {
	c.duration = math.Max(0, d)
	c.Set(c.time)
}

// Advance moves the cursor forward by dt, wrapping to 0 once it reaches the
// end. It reports whether a wrap happened.
func (c *Cursor) Advance(dt float64) bool {
	if c.duration <= 0 {
		c.time = 0
		return false
	}
	t := c.time + dt
	if t >= c.duration {
		c.time = 0
		return true
	}
	c.Set(t)
	return false
}
