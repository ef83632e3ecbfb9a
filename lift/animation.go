package lift

import (
	"math"
	"time"

	"github.com/gogpu/handfollow"
)

// Animation is a timed lift from StartPos to EndPos. Position follows an
// ease-in-out cubic; height follows a half sine, zero at both ends and
// PeakHeight halfway.
type Animation struct {
	StartTime  time.Duration
	Duration   time.Duration
	StartPos   handfollow.Point
	EndPos     handfollow.Point
	PeakHeight float64
}

// Frame is the animation sampled at one instant.
type Frame struct {
	Position handfollow.Point
	Height   float64
	// Progress is the elapsed fraction in [0, 1].
	Progress float64
}

// NewAnimation starts an animation at the clock's current time.
func NewAnimation(clock handfollow.Clock, from, to handfollow.Point, peak float64, d time.Duration) *Animation {
	return &Animation{
		StartTime:  clock.Now(),
		Duration:   d,
		StartPos:   from,
		EndPos:     to,
		PeakHeight: peak,
	}
}

// Progress returns the elapsed fraction at now, clamped to [0, 1].
func (a *Animation) Progress(now time.Duration) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now-a.StartTime) / float64(a.Duration)
	return math.Max(0, math.Min(1, p))
}

// Done reports whether the animation has finished at now.
func (a *Animation) Done(now time.Duration) bool {
	return a.Progress(now) >= 1
}

// At samples the animation at now.
func (a *Animation) At(now time.Duration) Frame {
	p := a.Progress(now)
	return Frame{
		Position: a.StartPos.Lerp(a.EndPos, EaseInOutCubic(p)),
		Height:   a.PeakHeight * math.Sin(p*math.Pi),
		Progress: p,
	}
}

// EaseInOutCubic maps [0, 1] onto itself, slow at both ends.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
