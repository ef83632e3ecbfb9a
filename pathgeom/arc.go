package pathgeom

import (
	"math"

	"github.com/gogpu/handfollow"
)

// Arc segment walking parameters.
const (
	// arcSegmentsPerRadian is the walking density of an arc under an
	// identity transform.
	arcSegmentsPerRadian = 8

	minArcSegments = 4

	// MaxArcSegments caps the polyline of a single arc.
	MaxArcSegments = 512
)

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center handfollow.Point
	RX, RY float64
	// Phi is the rotation of the ellipse's x-axis, in radians.
	Phi float64
	// Theta is the start angle and Delta the signed sweep, in radians.
	Theta, Delta float64
}

// Point returns the point of the ellipse at parameter angle theta.
func (a Arc) Point(theta float64) handfollow.Point {
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(a.Phi)
	x := a.RX * cosT
	y := a.RY * sinT
	return handfollow.Point{
		X: a.Center.X + x*cosP - y*sinP,
		Y: a.Center.Y + x*sinP + y*cosP,
	}
}

// ArcFromEndpoints converts the endpoint form used by the A command into
// center form. rotation is in degrees.
//
// Radii too small to span the endpoints are scaled up uniformly until the
// arc is feasible. ok is false when the arc degenerates: coincident
// endpoints draw nothing, and a zero radius draws a straight line.
func ArcFromEndpoints(p1, p2 handfollow.Point, rx, ry, rotation float64, large, sweep bool) (arc Arc, ok bool) {
	if p1 == p2 {
		return Arc{}, false
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return Arc{}, false
	}

	phi := handfollow.Radians(rotation)
	sinP, cosP := math.Sincos(phi)

	// Step 1: move the midpoint to the origin and undo the rotation.
	dx := (p1.X - p2.X) / 2
	dy := (p1.Y - p2.Y) / 2
	x1p := cosP*dx + sinP*dy
	y1p := -sinP*dx + cosP*dy

	// Radii correction.
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: center in the rotated frame.
	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	coef := 0.0
	if den > 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	// Step 3: back to user space.
	center := handfollow.Point{
		X: cosP*cxp - sinP*cyp + (p1.X+p2.X)/2,
		Y: sinP*cxp + cosP*cyp + (p1.Y+p2.Y)/2,
	}

	// Step 4: start angle and sweep.
	u := handfollow.Pt((x1p-cxp)/rx, (y1p-cyp)/ry)
	v := handfollow.Pt((-x1p-cxp)/rx, (-y1p-cyp)/ry)
	theta := u.Angle()
	delta := math.Atan2(u.Cross(v), u.Dot(v))
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return Arc{Center: center, RX: rx, RY: ry, Phi: phi, Theta: theta, Delta: delta}, true
}

// Segments returns how many chords walk the arc under transform m.
func (a Arc) Segments(m handfollow.Matrix) int {
	stretch := math.Max(1, m.MaxScale())
	n := math.Ceil(math.Abs(a.Delta) * arcSegmentsPerRadian * stretch)
	if math.IsNaN(n) || n < minArcSegments {
		return minArcSegments
	}
	if n > MaxArcSegments {
		return MaxArcSegments
	}
	return int(n)
}

// Flatten walks the arc and returns the transformed polyline, both end
// points included.
func (a Arc) Flatten(m handfollow.Matrix) []handfollow.Point {
	n := a.Segments(m)
	pts := make([]handfollow.Point, n+1)
	for i := range pts {
		theta := a.Theta + a.Delta*float64(i)/float64(n)
		pts[i] = m.TransformPoint(a.Point(theta))
	}
	return pts
}
