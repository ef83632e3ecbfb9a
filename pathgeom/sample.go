package pathgeom

import (
	"fmt"
	"math"

	"github.com/gogpu/handfollow"
)

// PathSample is one entry of an arc-length sample table.
type PathSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// CumulativeLength is the distance along the path from its start.
	// It never decreases along a sample table.
	CumulativeLength float64 `json:"cumulativeLength"`
	// TangentAngle is the direction of travel in radians, unwrapped so
	// that adjacent samples never differ by a ±2π jump.
	TangentAngle float64 `json:"tangentAngle"`
	// SegmentIndex is the index of the segment the sample lies on.
	SegmentIndex int `json:"segmentIndex"`
}

// Point returns the sample position.
func (s PathSample) Point() handfollow.Point {
	return handfollow.Pt(s.X, s.Y)
}

// Mode selects how sample spacing is chosen.
type Mode uint8

const (
	// ModeUniform places samples every sampleDistance pixels.
	ModeUniform Mode = iota
	// ModePreview adapts the step to curvature with coarse bounds for
	// interactive playback.
	ModePreview
	// ModeExport adapts the step to curvature with fine bounds.
	ModeExport
)

func (m Mode) String() string {
	switch m {
	case ModeUniform:
		return "uniform"
	case ModePreview:
		return "preview"
	case ModeExport:
		return "export"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "uniform", "":
		return ModeUniform, nil
	case "preview":
		return ModePreview, nil
	case "export":
		return ModeExport, nil
	}
	return 0, fmt.Errorf("pathgeom: unknown sampling mode %q", s)
}

// ModeParams bound the curvature-aware step:
//
//	step = clamp(K1 / (K2 + |Δθ|), MinStep, MaxStep)
//
// where Δθ is the tangent change, in radians, over the next MaxStep pixels.
type ModeParams struct {
	MinStep, MaxStep float64
	K1, K2           float64
}

// DefaultModeParams returns the step bounds of the curvature-aware modes.
func DefaultModeParams() map[Mode]ModeParams {
	return map[Mode]ModeParams{
		ModePreview: {MinStep: 2, MaxStep: 16, K1: 4, K2: 0.25},
		ModeExport:  {MinStep: 0.5, MaxStep: 6, K1: 1.5, K2: 0.25},
	}
}

const (
	// DefaultSampleDistance is used when Measure gets a non-positive distance.
	DefaultSampleDistance = 2.0

	// DefaultMaxSamples caps sample tables unless WithMaxSamples says otherwise.
	DefaultMaxSamples = 10000

	// degenerateLength is the total length below which a path is treated
	// as a single point.
	degenerateLength = 1e-6
)

type measureOptions struct {
	matrix     handfollow.Matrix
	maxSamples int
	mode       Mode
}

// MeasureOption configures a single Measure call.
type MeasureOption func(*measureOptions)

// WithMatrix transforms the path before measuring.
func WithMatrix(m handfollow.Matrix) MeasureOption {
	return func(o *measureOptions) {
		o.matrix = m
	}
}

// WithMaxSamples caps the number of samples. Values below 2 are ignored.
func WithMaxSamples(n int) MeasureOption {
	return func(o *measureOptions) {
		if n >= 2 {
			o.maxSamples = n
		}
	}
}

// WithMode selects the sampling mode.
func WithMode(m Mode) MeasureOption {
	return func(o *measureOptions) {
		o.mode = m
	}
}

func resolveOptions(opts []MeasureOption) measureOptions {
	o := measureOptions{
		matrix:     handfollow.Identity(),
		maxSamples: DefaultMaxSamples,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Measure parses path data and returns its arc-length sample table.
//
// In ModeUniform a sample is emitted every sampleDistance pixels of arc
// length; the curvature-aware modes ignore sampleDistance. In every mode a
// sample is also emitted at the start of each segment, so vertices are
// sampled exactly, and at the end of the path. A path of near-zero length
// yields two identical samples at its start point.
func (e *Engine) Measure(d string, sampleDistance float64, opts ...MeasureOption) ([]PathSample, error) {
	o := resolveOptions(opts)
	toks, err := Tokenize(d)
	if err != nil {
		return nil, err
	}
	p, err := BuildSegments(toks, o.matrix)
	if err != nil {
		return nil, err
	}
	return e.Sample(p, sampleDistance, o.maxSamples, o.mode), nil
}

// track is a path flattened for sampling.
type track struct {
	polys []polyline
	segs  []Segment
	total float64
}

func (e *Engine) newTrack(p Path) *track {
	t := &track{polys: make([]polyline, len(p.Segments)), segs: p.Segments}
	for i, s := range p.Segments {
		t.polys[i] = e.flatten(s)
		t.total += t.polys[i].length()
	}
	return t
}

// Sample builds the sample table of an already parsed path.
func (e *Engine) Sample(p Path, sampleDistance float64, maxSamples int, mode Mode) []PathSample {
	if maxSamples < 2 {
		maxSamples = DefaultMaxSamples
	}
	tr := e.newTrack(p)
	if tr.total < degenerateLength {
		start := p.Start
		if len(p.Segments) > 0 {
			start = p.Segments[0].Start
		}
		s := PathSample{X: start.X, Y: start.Y}
		return []PathSample{s, s}
	}

	step := e.stepper(tr, sampleDistance, maxSamples, mode)
	out := make([]PathSample, 0, e.estimate(tr, sampleDistance, mode))

	var (
		offset, lastOffset float64
		prev               float64
		havePrev           bool
		last               = -1
	)
	emit := func(k int, local float64) {
		pos := tr.polys[k].at(local)
		angle, ok := e.tangent(tr, k, local)
		if !ok {
			angle = prev
		}
		if havePrev {
			angle = handfollow.UnwrapAngle(prev, angle)
		}
		out = append(out, PathSample{
			X:                pos.X,
			Y:                pos.Y,
			CumulativeLength: offset + local,
			TangentAngle:     angle,
			SegmentIndex:     k,
		})
		prev, havePrev = angle, true
	}

	for k, pl := range tr.polys {
		l := pl.length()
		if l >= degenerateLength {
			for local := 0.0; local < l-degenerateLength; local += step(k, local) {
				emit(k, local)
			}
			lastOffset, last = offset, k
		}
		offset += l
	}
	if last < 0 {
		// Only slivers: no single segment is long enough to walk.
		first, final := tr.segs[0], tr.segs[len(tr.segs)-1]
		return []PathSample{
			{X: first.Start.X, Y: first.Start.Y},
			{X: final.End.X, Y: final.End.Y, CumulativeLength: tr.total, SegmentIndex: len(tr.segs) - 1},
		}
	}
	offset = lastOffset
	emit(last, tr.polys[last].length())
	// Trailing zero-length segments still count toward the total.
	out[len(out)-1].CumulativeLength = tr.total

	if len(out) > maxSamples {
		out = decimate(out, maxSamples)
	}
	return out
}

// stepper returns the function choosing the distance to the next sample.
func (e *Engine) stepper(tr *track, sampleDistance float64, maxSamples int, mode Mode) func(k int, local float64) float64 {
	// Keep the table near maxSamples before decimation has to step in.
	floor := tr.total / float64(maxSamples)

	params, adaptive := e.modes[mode]
	if mode == ModeUniform || !adaptive {
		if sampleDistance <= 0 {
			sampleDistance = DefaultSampleDistance
		}
		step := math.Max(sampleDistance, floor)
		return func(int, float64) float64 { return step }
	}

	minStep := math.Max(params.MinStep, floor)
	maxStep := math.Max(params.MaxStep, minStep)
	return func(k int, local float64) float64 {
		a, okA := e.tangent(tr, k, local)
		ahead := math.Min(local+maxStep, tr.polys[k].length())
		b, okB := e.tangent(tr, k, ahead)
		dTheta := 0.0
		if okA && okB {
			dTheta = math.Abs(handfollow.AngleDiff(a, b))
		}
		return clamp(params.K1/(params.K2+dTheta), minStep, maxStep)
	}
}

func (e *Engine) estimate(tr *track, sampleDistance float64, mode Mode) int {
	step := sampleDistance
	if p, ok := e.modes[mode]; ok && mode != ModeUniform {
		step = p.MaxStep
	}
	if step <= 0 {
		step = DefaultSampleDistance
	}
	n := int(tr.total/step) + len(tr.polys) + 2
	return min(n, DefaultMaxSamples+len(tr.polys)+2)
}

// tangent estimates the direction of travel at distance local along
// segment k by a forward difference over the lookahead distance, or a
// backward one at the segment's end. ok is false when the segment has no
// direction at all.
func (e *Engine) tangent(tr *track, k int, local float64) (float64, bool) {
	pl := tr.polys[k]
	l := pl.length()
	here := pl.at(local)

	if ahead := math.Min(local+e.lookahead, l); ahead-local > degenerateLength {
		if d := pl.at(ahead).Sub(here); d.Length() > degenerateLength*degenerateLength {
			return d.Angle(), true
		}
	}
	if behind := math.Max(local-e.lookahead, 0); local-behind > degenerateLength {
		if d := here.Sub(pl.at(behind)); d.Length() > degenerateLength*degenerateLength {
			return d.Angle(), true
		}
	}
	if chord := tr.segs[k].End.Sub(tr.segs[k].Start); !chord.IsZero() {
		return chord.Angle(), true
	}
	return 0, false
}

// decimate keeps n evenly spread samples, including the first and last.
func decimate(in []PathSample, n int) []PathSample {
	out := make([]PathSample, n)
	last := len(in) - 1
	for j := range n {
		idx := int(math.Round(float64(j) * float64(last) / float64(n-1)))
		out[j] = in[idx]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
