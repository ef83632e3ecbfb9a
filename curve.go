package handfollow

import "math"

// Curve types for arc-length measurement.
// Based on kurbo patterns, adapted for Go idioms.

// MaxSubdivisionDepth bounds the recursion of adaptive Bézier subdivision.
// 2^16 pieces is far beyond anything a flatness test at pixel tolerances
// asks for; the cap only matters for NaN or pathological inputs.
const MaxSubdivisionDepth = 16

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the exact Euclidean length of the segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise elevates the quadratic to the equivalent cubic Bezier curve.
// Length and flattening of quadratics go through the cubic code path.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Tangent returns the derivative vector at parameter t.
// At a cusp or a degenerate end (coincident control points) the derivative
// vanishes; callers that need a direction should fall back to a chord.
func (c CubicBez) Tangent(t float64) Point {
	mt := 1.0 - t
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	return Point{
		X: 3 * (d0.X*mt*mt + 2*d1.X*mt*t + d2.X*t*t),
		Y: 3 * (d0.Y*mt*mt + 2*d1.Y*mt*t + d2.Y*t*t),
	}
}

// Flatness returns the largest distance of the inner control points from
// the chord P0-P3. When the chord is degenerate the distance to P0 is used.
func (c CubicBez) Flatness() float64 {
	return math.Max(distanceToChord(c.P1, c.P0, c.P3), distanceToChord(c.P2, c.P0, c.P3))
}

// Length returns the arc length of the curve. Pieces are subdivided until
// their flatness is below tolerance; accepted pieces contribute the average
// of chord and control-polygon length (Gravesen's estimate for cubics).
func (c CubicBez) Length(tolerance float64) float64 {
	if tolerance <= 0 {
		tolerance = DefaultFlatness
	}
	return cubicLength(c, tolerance, 0)
}

func cubicLength(c CubicBez, tolerance float64, depth int) float64 {
	if depth >= MaxSubdivisionDepth || c.Flatness() <= tolerance {
		chord := c.P0.Distance(c.P3)
		polygon := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
		return (chord + polygon) / 2
	}
	left, right := c.Subdivide()
	return cubicLength(left, tolerance, depth+1) + cubicLength(right, tolerance, depth+1)
}

// Flatten calls fn with the end point of every flat piece, in order.
// P0 is not reported. fn receives the curve parameter of the point too.
func (c CubicBez) Flatten(tolerance float64, fn func(pt Point, t float64)) {
	if tolerance <= 0 {
		tolerance = DefaultFlatness
	}
	flattenCubic(c, tolerance, 0, 0, 1, fn)
}

func flattenCubic(c CubicBez, tolerance float64, depth int, t0, t1 float64, fn func(Point, float64)) {
	if depth >= MaxSubdivisionDepth || c.Flatness() <= tolerance {
		fn(c.P3, t1)
		return
	}
	left, right := c.Subdivide()
	mid := (t0 + t1) / 2
	flattenCubic(left, tolerance, depth+1, t0, mid, fn)
	flattenCubic(right, tolerance, depth+1, mid, t1, fn)
}

// DefaultFlatness is the default flatness tolerance in pixels.
const DefaultFlatness = 0.05

// distanceToChord returns the distance of p from the segment a-b.
func distanceToChord(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Mul(t)))
}
