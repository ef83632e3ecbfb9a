package pathgeom

import (
	"fmt"
	"sort"

	"github.com/gogpu/handfollow"
)

// Engine measures and samples paths. An Engine holds only configuration
// and is safe for concurrent use.
type Engine struct {
	flatness  float64
	lookahead float64
	modes     map[Mode]ModeParams
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFlatness sets the Bézier flatness tolerance in pixels.
// Smaller values measure more accurately and cost more subdivisions.
func WithFlatness(tolerance float64) EngineOption {
	return func(e *Engine) {
		if tolerance > 0 {
			e.flatness = tolerance
		}
	}
}

// WithTangentLookahead sets the finite-difference distance, in pixels,
// used to estimate tangent angles.
func WithTangentLookahead(d float64) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.lookahead = d
		}
	}
}

// WithModeParams overrides the step bounds of a curvature-aware mode.
func WithModeParams(mode Mode, p ModeParams) EngineOption {
	return func(e *Engine) {
		e.modes[mode] = p
	}
}

// DefaultTangentLookahead is the default finite-difference distance.
const DefaultTangentLookahead = 0.5

// NewEngine creates an engine with default tolerances.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		flatness:  handfollow.DefaultFlatness,
		lookahead: DefaultTangentLookahead,
		modes:     DefaultModeParams(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Flatness returns the configured flatness tolerance.
func (e *Engine) Flatness() float64 {
	return e.flatness
}

// SegmentLength returns the arc length of one segment.
// Lines are exact; curves use adaptive subdivision; arcs are walked.
func (e *Engine) SegmentLength(s Segment) float64 {
	switch s.Kind {
	case KindLine:
		return s.Start.Distance(s.End)
	case KindQuad, KindCubic:
		return s.Cubic().Length(e.flatness)
	case KindArc:
		return polylineLength(e.arcPoints(s))
	}
	return 0
}

// Length returns the total length of p and the length of each segment.
func (e *Engine) Length(p Path) (total float64, segments []float64) {
	segments = make([]float64, len(p.Segments))
	for i, s := range p.Segments {
		segments[i] = e.SegmentLength(s)
		total += segments[i]
	}
	return total, segments
}

// PathLength parses path data and returns its total length under m.
func (e *Engine) PathLength(d string, m handfollow.Matrix) (float64, error) {
	toks, err := Tokenize(d)
	if err != nil {
		return 0, err
	}
	return e.TokensLength(toks, m)
}

// TokensLength returns the total length of already tokenized path data.
func (e *Engine) TokensLength(toks []Token, m handfollow.Matrix) (float64, error) {
	p, err := BuildSegments(toks, m)
	if err != nil {
		return 0, fmt.Errorf("build segments: %w", err)
	}
	total, _ := e.Length(p)
	return total, nil
}

// arcPoints returns the arc's polyline with its exact transformed end points.
func (e *Engine) arcPoints(s Segment) []handfollow.Point {
	pts := s.Arc.Flatten(s.Matrix)
	pts[0] = s.Start
	pts[len(pts)-1] = s.End
	return pts
}

func polylineLength(pts []handfollow.Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Distance(pts[i])
	}
	return l
}

// polyline is a flattened segment with cumulative distances.
// cum[0] is 0 and cum[len-1] equals the segment's measured length.
type polyline struct {
	pts []handfollow.Point
	cum []float64
}

// flatten returns the polyline of s. For curves the chord distances are
// rescaled so that the polyline ends at the adaptive length estimate;
// positions along the segment then agree with SegmentLength.
func (e *Engine) flatten(s Segment) polyline {
	var pts []handfollow.Point
	switch s.Kind {
	case KindLine:
		pts = []handfollow.Point{s.Start, s.End}
	case KindQuad, KindCubic:
		pts = append(pts, s.Start)
		s.Cubic().Flatten(e.flatness, func(p handfollow.Point, _ float64) {
			pts = append(pts, p)
		})
	case KindArc:
		pts = e.arcPoints(s)
	}

	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + pts[i-1].Distance(pts[i])
	}
	if s.Kind == KindQuad || s.Kind == KindCubic {
		if chordSum := cum[len(cum)-1]; chordSum > 0 {
			scale := e.SegmentLength(s) / chordSum
			for i := range cum {
				cum[i] *= scale
			}
		}
	}
	return polyline{pts: pts, cum: cum}
}

func (pl polyline) length() float64 {
	return pl.cum[len(pl.cum)-1]
}

// at returns the point at distance d along the polyline, clamped.
func (pl polyline) at(d float64) handfollow.Point {
	n := len(pl.pts)
	if d <= 0 {
		return pl.pts[0]
	}
	if d >= pl.cum[n-1] {
		return pl.pts[n-1]
	}
	i := sort.SearchFloat64s(pl.cum, d)
	if i == 0 {
		return pl.pts[0]
	}
	span := pl.cum[i] - pl.cum[i-1]
	if span <= 0 {
		return pl.pts[i]
	}
	return pl.pts[i-1].Lerp(pl.pts[i], (d-pl.cum[i-1])/span)
}
