package lift

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/handfollow"
)

// Config tunes corner detection and lifting.
type Config struct {
	// AngleThreshold is the direction change, in degrees, above which a
	// sample is flagged as a corner.
	AngleThreshold float64 `json:"angleThreshold" yaml:"angleThreshold" toml:"angleThreshold"`
	// LiftThreshold is the direction change, in degrees, at which a
	// corner is sharp enough for a timed lift.
	LiftThreshold float64 `json:"liftThreshold" yaml:"liftThreshold" toml:"liftThreshold"`

	// LiftHeight is the peak lift in pixels for a full reversal.
	LiftHeight float64 `json:"liftHeight" yaml:"liftHeight" toml:"liftHeight"`

	// Anticipation and Settle are sample counts around a corner. Together
	// they form the lift window; a timed lift travels Settle samples past
	// the corner.
	Anticipation int `json:"anticipation" yaml:"anticipation" toml:"anticipation"`
	Settle       int `json:"settle" yaml:"settle" toml:"settle"`

	// Duration is the length of a timed lift.
	Duration Duration `json:"duration" yaml:"duration" toml:"duration"`

	// ScalePerPixel enlarges the sprite while lifted, by this factor per
	// pixel of height.
	ScalePerPixel float64 `json:"scalePerPixel" yaml:"scalePerPixel" toml:"scalePerPixel"`
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		AngleThreshold: 30,
		LiftThreshold:  60,
		LiftHeight:     14,
		Anticipation:   6,
		Settle:         10,
		Duration:       Duration(280 * time.Millisecond),
		ScalePerPixel:  0.004,
	}
}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("lift: invalid config")

// Validate rejects negative windows, heights and durations and a lift
// threshold below the corner threshold.
func (c Config) Validate() error {
	switch {
	case c.AngleThreshold <= 0 || c.AngleThreshold >= 180:
		return fmt.Errorf("%w: angleThreshold %v not in (0, 180)", ErrInvalidConfig, c.AngleThreshold)
	case c.LiftThreshold < c.AngleThreshold:
		return fmt.Errorf("%w: liftThreshold %v below angleThreshold %v", ErrInvalidConfig, c.LiftThreshold, c.AngleThreshold)
	case c.LiftHeight < 0:
		return fmt.Errorf("%w: negative liftHeight", ErrInvalidConfig)
	case c.Anticipation < 0 || c.Settle < 0:
		return fmt.Errorf("%w: negative window", ErrInvalidConfig)
	case c.Duration < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	case c.ScalePerPixel < 0:
		return fmt.Errorf("%w: negative scalePerPixel", ErrInvalidConfig)
	}
	return nil
}

// Window returns the distance in samples, on either side of a corner, over
// which the progress-driven lift fades to zero.
func (c Config) Window() int {
	return c.Anticipation + c.Settle
}

// Perturb applies a lift of height pixels to a target point and scale:
// the point moves up the screen and the scale grows by ScalePerPixel per
// pixel.
func (c Config) Perturb(target handfollow.Point, scale, height float64) (handfollow.Point, float64) {
	if height <= 0 {
		return target, scale
	}
	return handfollow.Pt(target.X, target.Y-height), scale * (1 + height*c.ScalePerPixel)
}

// Duration is a time.Duration written in config files as a string such as
// "280ms".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("lift: duration: %w", err)
	}
	*d = Duration(v)
	return nil
}
