package lift

import (
	"math"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/pathgeom"
)

// CornerInfo describes one sharp turn of a sample table.
type CornerInfo struct {
	SampleIndex int `json:"sampleIndex"`
	// AngleChange is the signed turn in radians; positive turns clockwise
	// on screen.
	AngleChange float64 `json:"angleChange"`
	// Sharpness is |AngleChange| / π, in [0, 1].
	Sharpness float64 `json:"sharpness"`
	NeedsLift bool    `json:"needsLift"`
}

// direction returns the heading from a to b, or fallback when they
// coincide.
func direction(a, b pathgeom.PathSample, fallback float64) float64 {
	d := b.Point().Sub(a.Point())
	if d.IsZero() {
		return fallback
	}
	return d.Angle()
}

// DetectCorners returns the samples where the direction of travel turns
// by more than cfg.AngleThreshold. The turn at sample i is measured
// between the steps i-1→i and i→i+1. When two adjacent samples share a
// turn, only the stronger is kept.
func DetectCorners(samples []pathgeom.PathSample, cfg Config) []CornerInfo {
	threshold := handfollow.Radians(cfg.AngleThreshold)
	lift := handfollow.Radians(cfg.LiftThreshold)

	var corners []CornerInfo
	for i := 1; i+1 < len(samples); i++ {
		in := direction(samples[i-1], samples[i], samples[i-1].TangentAngle)
		out := direction(samples[i], samples[i+1], samples[i+1].TangentAngle)
		change := handfollow.AngleDiff(in, out)
		mag := math.Abs(change)
		if mag <= threshold {
			continue
		}
		c := CornerInfo{
			SampleIndex: i,
			AngleChange: change,
			Sharpness:   math.Min(mag/math.Pi, 1),
			NeedsLift:   mag >= lift,
		}
		if n := len(corners); n > 0 && corners[n-1].SampleIndex == i-1 {
			if c.Sharpness > corners[n-1].Sharpness {
				corners[n-1] = c
			}
			continue
		}
		corners = append(corners, c)
	}
	return corners
}
