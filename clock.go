package handfollow

import (
	"sync"
	"time"
)

// Clock is the logical time source shared by playback and timed effects.
// Now returns the elapsed time since the clock's origin.
type Clock interface {
	Now() time.Duration
}

// WallClock measures real time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock returns a clock anchored at the current instant.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns the real time elapsed since NewWallClock.
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

// FrameClock is a deterministic clock advanced by whole frames.
// Export drives it so that output is frame-for-frame reproducible.
//
// FrameClock is safe for concurrent use.
type FrameClock struct {
	mu    sync.Mutex
	fps   float64
	frame int64
}

// NewFrameClock creates a clock at frame 0 ticking at fps frames per second.
// A non-positive fps defaults to 60.
func NewFrameClock(fps float64) *FrameClock {
	if fps <= 0 {
		fps = 60
	}
	return &FrameClock{fps: fps}
}

// Now returns frame/fps as a duration.
func (c *FrameClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(float64(c.frame) / c.fps * float64(time.Second))
}

// Advance moves the clock forward by n frames.
func (c *FrameClock) Advance(n int) {
	c.mu.Lock()
	c.frame += int64(n)
	c.mu.Unlock()
}

// Seek sets the current frame.
func (c *FrameClock) Seek(frame int64) {
	c.mu.Lock()
	c.frame = frame
	c.mu.Unlock()
}

// Frame returns the current frame number.
func (c *FrameClock) Frame() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}
