package follow

import (
	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/lift"
	"github.com/gogpu/handfollow/pathgeom"
)

// DefaultSampleDistance is the uniform sample spacing in pixels.
const DefaultSampleDistance = 2.0

// Option configures a Follower.
type Option func(*Follower)

// WithClock sets the clock timing lifts. The default is a WallClock; pass
// a FrameClock for reproducible export.
func WithClock(c handfollow.Clock) Option {
	return func(f *Follower) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithCache shares a sample cache between followers.
func WithCache(c *pathgeom.SampleCache) Option {
	return func(f *Follower) {
		f.cache = c
	}
}

// WithLiftConfig replaces lift.DefaultConfig.
func WithLiftConfig(cfg lift.Config) Option {
	return func(f *Follower) {
		f.cfg = cfg
	}
}

// WithScale sets the sprite scale. Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(f *Follower) {
		if s > 0 {
			f.scale = s
		}
	}
}

// WithSampling sets the sampling mode and, for ModeUniform, the spacing.
func WithSampling(mode pathgeom.Mode, distance float64) Option {
	return func(f *Follower) {
		f.mode = mode
		if distance > 0 {
			f.distance = distance
		}
	}
}
