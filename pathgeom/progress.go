package pathgeom

import (
	"math"
	"sort"

	"github.com/gogpu/handfollow"
)

// TotalLength returns the cumulative length of the last sample.
func TotalLength(samples []PathSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return samples[len(samples)-1].CumulativeLength
}

// locate returns the bracketing index i (samples[i-1], samples[i]) and the
// fraction between them for progress t in (0, 1).
func locate(samples []PathSample, t float64) (int, float64) {
	target := t * TotalLength(samples)
	i := sort.Search(len(samples), func(i int) bool {
		return samples[i].CumulativeLength >= target
	})
	if i == 0 {
		i = 1
	}
	if i >= len(samples) {
		i = len(samples) - 1
	}
	a, b := samples[i-1], samples[i]
	span := b.CumulativeLength - a.CumulativeLength
	if span <= 0 {
		return i, 1
	}
	return i, clamp((target-a.CumulativeLength)/span, 0, 1)
}

// PointAtProgress returns the sample at normalized progress t along the
// table. t is clamped to [0, 1]: 0 returns the first sample and 1 the last.
// Between samples position and length are interpolated linearly and the
// tangent angle along the shorter arc.
func PointAtProgress(samples []PathSample, t float64) PathSample {
	n := len(samples)
	switch {
	case n == 0:
		return PathSample{}
	case t <= 0 || math.IsNaN(t):
		return samples[0]
	case t >= 1:
		return samples[n-1]
	case TotalLength(samples) <= 0:
		return samples[0]
	}

	i, f := locate(samples, t)
	a, b := samples[i-1], samples[i]
	seg := a.SegmentIndex
	if f >= 1 {
		seg = b.SegmentIndex
	}
	pos := a.Point().Lerp(b.Point(), f)
	return PathSample{
		X:                pos.X,
		Y:                pos.Y,
		CumulativeLength: a.CumulativeLength + (b.CumulativeLength-a.CumulativeLength)*f,
		TangentAngle:     handfollow.LerpAngle(a.TangentAngle, b.TangentAngle, f),
		SegmentIndex:     seg,
	}
}

// IndexAtProgress returns the fractional sample index at progress t,
// clamped to [0, len(samples)-1].
func IndexAtProgress(samples []PathSample, t float64) float64 {
	n := len(samples)
	switch {
	case n < 2:
		return 0
	case t <= 0 || math.IsNaN(t) || TotalLength(samples) <= 0:
		return 0
	case t >= 1:
		return float64(n - 1)
	}
	i, f := locate(samples, t)
	return float64(i-1) + f
}
