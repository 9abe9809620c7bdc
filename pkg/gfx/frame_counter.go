package gfx

import "time"

// FrameCounter samples frames per second. The first Tick only records the
// time; every later Tick counts one frame and, once more than a second has
// accumulated, reports the count and starts over.
type FrameCounter struct {
	window     time.Duration
	lastUpdate time.Time
	total      time.Duration
	frames     int
}

func NewFrameCounter() *FrameCounter {
	return &FrameCounter{window: time.Second}
}

func (c *FrameCounter) Tick(now time.Time) (int, bool) {
	if c.lastUpdate.IsZero() {
		c.lastUpdate = now
		return 0, false
	}
	c.total += now.Sub(c.lastUpdate)
	c.lastUpdate = now
	c.frames++
	if c.total <= c.window {
		return 0, false
	}
	fps := c.frames
	c.total = 0
	c.frames = 0
	Logger().Info("frame rate", "fps", fps)
	return fps, true
}
