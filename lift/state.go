package lift

import (
	"math"

	"github.com/gogpu/handfollow/pathgeom"
)

// State is the progress-driven lift at one point of a path.
type State struct {
	ShouldLift bool
	Height     float64
	// Corner is the corner being lifted over, nil when not lifting.
	Corner *CornerInfo
}

// StateAt returns the lift at path progress t. The height peaks at
// LiftHeight × Sharpness on the corner's sample and falls off linearly to
// zero Window samples away from it, on either side.
func StateAt(t float64, samples []pathgeom.PathSample, corners []CornerInfo, cfg Config) State {
	if len(corners) == 0 || len(samples) < 2 {
		return State{}
	}
	idx := pathgeom.IndexAtProgress(samples, t)

	nearest, dist := -1, math.Inf(1)
	for k, c := range corners {
		if d := math.Abs(idx - float64(c.SampleIndex)); d < dist {
			nearest, dist = k, d
		}
	}
	c := corners[nearest]

	var frac float64
	switch w := cfg.Window(); {
	case dist == 0:
		frac = 0
	case w <= 0:
		return State{}
	default:
		frac = dist / float64(w)
	}
	if frac >= 1 {
		return State{}
	}
	h := cfg.LiftHeight * c.Sharpness * (1 - frac)
	if h <= 0 {
		return State{}
	}
	return State{ShouldLift: true, Height: h, Corner: &c}
}
