package handfollow

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle returns the angle in the range [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// AngleDiff returns b-a wrapped into (-π, π], the signed shortest rotation
// that takes a onto b.
func AngleDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

// UnwrapAngle returns the representation of a (a ± k·2π) closest to prev,
// so consecutive angles never jump by more than π.
func UnwrapAngle(prev, a float64) float64 {
	return prev + AngleDiff(prev, a)
}

// LerpAngle interpolates from a to b along the shorter arc.
// The result is continuous with a, not normalized.
func LerpAngle(a, b, t float64) float64 {
	return a + AngleDiff(a, b)*t
}
