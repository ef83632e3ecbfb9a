package pathgeom

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/handfollow"
)

func mustMeasure(t *testing.T, e *Engine, d string, dist float64, opts ...MeasureOption) []PathSample {
	t.Helper()
	s, err := e.Measure(d, dist, opts...)
	if err != nil {
		t.Fatalf("Measure(%q) error = %v", d, err)
	}
	return s
}

func checkMonotonic(t *testing.T, samples []PathSample) {
	t.Helper()
	for i := 1; i < len(samples); i++ {
		if samples[i].CumulativeLength < samples[i-1].CumulativeLength {
			t.Fatalf("CumulativeLength[%d] = %v < CumulativeLength[%d] = %v",
				i, samples[i].CumulativeLength, i-1, samples[i-1].CumulativeLength)
		}
	}
}

func TestMeasureStraightLine(t *testing.T) {
	samples := mustMeasure(t, NewEngine(), "M0,0 L100,0", 2)
	if len(samples) < 3 {
		t.Fatalf("len(samples) = %d, want >= 3", len(samples))
	}
	checkMonotonic(t, samples)
	if got := samples[len(samples)-1].CumulativeLength; math.Abs(got-100) > 1e-9 {
		t.Errorf("final CumulativeLength = %v, want 100", got)
	}
	for i, s := range samples {
		if s.TangentAngle != 0 {
			t.Errorf("samples[%d].TangentAngle = %v, want 0", i, s.TangentAngle)
		}
		if s.Y != 0 {
			t.Errorf("samples[%d].Y = %v, want 0", i, s.Y)
		}
	}
	if got := samples[1].CumulativeLength; math.Abs(got-2) > 1e-9 {
		t.Errorf("samples[1].CumulativeLength = %v, want 2", got)
	}
}

func TestMeasureSamplesVertices(t *testing.T) {
	samples := mustMeasure(t, NewEngine(), "M0,0 L10,0 L10,10", 3)
	checkMonotonic(t, samples)

	found := false
	for _, s := range samples {
		if s.SegmentIndex == 1 && s.CumulativeLength == 10 {
			found = true
			if !s.Point().Approx(handfollow.Pt(10, 0), 1e-12) {
				t.Errorf("vertex sample at %v, want (10,0)", s.Point())
			}
			if math.Abs(s.TangentAngle-math.Pi/2) > 1e-9 {
				t.Errorf("vertex TangentAngle = %v, want π/2", s.TangentAngle)
			}
		}
	}
	if !found {
		t.Error("no sample at the start of segment 1")
	}
	last := samples[len(samples)-1]
	if !last.Point().Approx(handfollow.Pt(10, 10), 1e-12) || last.CumulativeLength != 20 {
		t.Errorf("last sample = %+v, want (10,10) at 20", last)
	}
}

func TestMeasureTangentUnwrapped(t *testing.T) {
	// Full circle clockwise on screen: the raw tangent crosses ±π.
	samples := mustMeasure(t, NewEngine(), "M100,50 A50,50 0 1 1 0,50 A50,50 0 1 1 100,50", 1)
	checkMonotonic(t, samples)
	for i := 1; i < len(samples); i++ {
		if d := math.Abs(samples[i].TangentAngle - samples[i-1].TangentAngle); d > 0.5 {
			t.Fatalf("TangentAngle jumps by %v between samples %d and %d", d, i-1, i)
		}
	}
	turn := samples[len(samples)-1].TangentAngle - samples[0].TangentAngle
	if math.Abs(math.Abs(turn)-2*math.Pi) > 0.25 {
		t.Errorf("total turn = %v, want ±2π", turn)
	}
}

func TestMeasureDegenerate(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want handfollow.Point
	}{
		{"empty", "", handfollow.Pt(0, 0)},
		{"move only", "M5,5", handfollow.Pt(5, 5)},
		{"zero length line", "M5,5 L5,5", handfollow.Pt(5, 5)},
		{"close on itself", "M7,3 Z", handfollow.Pt(7, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := mustMeasure(t, NewEngine(), tt.d, 2)
			if len(samples) != 2 {
				t.Fatalf("len(samples) = %d, want 2", len(samples))
			}
			for i, s := range samples {
				if s.Point() != tt.want || s.CumulativeLength != 0 {
					t.Errorf("samples[%d] = %+v, want %v at 0", i, s, tt.want)
				}
			}
		})
	}
}

func TestMeasureMaxSamples(t *testing.T) {
	samples := mustMeasure(t, NewEngine(), "M0,0 L1000,0", 0.1, WithMaxSamples(50))
	if len(samples) != 50 {
		t.Fatalf("len(samples) = %d, want 50", len(samples))
	}
	checkMonotonic(t, samples)
	if samples[0].CumulativeLength != 0 || samples[49].CumulativeLength != 1000 {
		t.Errorf("ends = %v, %v, want 0, 1000", samples[0].CumulativeLength, samples[49].CumulativeLength)
	}
}

func TestMeasureMatrix(t *testing.T) {
	samples := mustMeasure(t, NewEngine(), "M0,0 L100,0", 5, WithMatrix(handfollow.Rotate(math.Pi/2).Multiply(handfollow.Scale(2, 2))))
	last := samples[len(samples)-1]
	if math.Abs(last.CumulativeLength-200) > 1e-9 {
		t.Errorf("final CumulativeLength = %v, want 200", last.CumulativeLength)
	}
	if !last.Point().Approx(handfollow.Pt(0, 200), 1e-9) {
		t.Errorf("last point = %v, want (0,200)", last.Point())
	}
	if math.Abs(last.TangentAngle-math.Pi/2) > 1e-9 {
		t.Errorf("TangentAngle = %v, want π/2", last.TangentAngle)
	}
}

func TestMeasureModes(t *testing.T) {
	e := NewEngine()
	line := "M0,0 L160,0"
	preview := mustMeasure(t, e, line, 2, WithMode(ModePreview))
	export := mustMeasure(t, e, line, 2, WithMode(ModeExport))
	uniform := mustMeasure(t, e, line, 2)

	if len(preview) != 11 {
		t.Errorf("preview samples = %d, want 11", len(preview))
	}
	if len(export) != 28 {
		t.Errorf("export samples = %d, want 28", len(export))
	}
	if len(uniform) != 81 {
		t.Errorf("uniform samples = %d, want 81", len(uniform))
	}
}

func TestMeasureCurvatureAdaptive(t *testing.T) {
	samples := mustMeasure(t, NewEngine(), "M0,0 L100,0 A5,5 0 0 1 100,10", 2, WithMode(ModePreview))
	checkMonotonic(t, samples)

	maxStep := map[int]float64{}
	for i := 1; i < len(samples); i++ {
		if samples[i].SegmentIndex != samples[i-1].SegmentIndex {
			continue
		}
		step := samples[i].CumulativeLength - samples[i-1].CumulativeLength
		k := samples[i].SegmentIndex
		maxStep[k] = math.Max(maxStep[k], step)
	}
	params := DefaultModeParams()[ModePreview]
	if maxStep[0] != params.MaxStep {
		t.Errorf("straight max step = %v, want %v", maxStep[0], params.MaxStep)
	}
	if maxStep[1] >= params.MaxStep/2 {
		t.Errorf("curve max step = %v, want < %v", maxStep[1], params.MaxStep/2)
	}
}

func TestMeasureErrors(t *testing.T) {
	if _, err := NewEngine().Measure("M0,0 L5", 1); !errors.Is(err, ErrMissingArgs) {
		t.Errorf("Measure() error = %v, want %v", err, ErrMissingArgs)
	}
	if _, err := NewEngine().Measure("Q1,1 2,2", 1); !errors.Is(err, ErrNoMoveTo) {
		t.Errorf("Measure() error = %v, want %v", err, ErrNoMoveTo)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeUniform, ModePreview, ModeExport} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseMode("fast"); err == nil {
		t.Error("ParseMode(fast) error = nil")
	}
}
