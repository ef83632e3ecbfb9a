package lift

import (
	"math"
	"testing"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/pathgeom"
)

func measure(t *testing.T, d string) []pathgeom.PathSample {
	t.Helper()
	s, err := pathgeom.NewEngine().Measure(d, 5)
	if err != nil {
		t.Fatalf("Measure(%q) error = %v", d, err)
	}
	return s
}

func TestDetectCorners(t *testing.T) {
	tests := []struct {
		name      string
		d         string
		wantCount int
		wantAngle float64 // degrees
		wantLift  bool
	}{
		{"right angle", "M0,0 L50,0 L50,50", 1, 90, true},
		{"left turn", "M0,0 L50,0 L50,-50", 1, -90, true},
		{"forty five", "M0,0 L50,0 L85.35534,35.35534", 1, 45, false},
		{"five degrees", "M0,0 L50,0 L99.80973,4.35779", 0, 0, false},
		{"straight", "M0,0 L100,0", 0, 0, false},
	}
	cfg := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corners := DetectCorners(measure(t, tt.d), cfg)
			if len(corners) != tt.wantCount {
				t.Fatalf("len(corners) = %d, want %d (%+v)", len(corners), tt.wantCount, corners)
			}
			if tt.wantCount == 0 {
				return
			}
			c := corners[0]
			if c.SampleIndex != 10 {
				t.Errorf("SampleIndex = %d, want 10", c.SampleIndex)
			}
			if got := handfollow.Degrees(c.AngleChange); math.Abs(got-tt.wantAngle) > 1e-3 {
				t.Errorf("AngleChange = %v°, want %v°", got, tt.wantAngle)
			}
			if want := math.Abs(tt.wantAngle) / 180; math.Abs(c.Sharpness-want) > 1e-5 {
				t.Errorf("Sharpness = %v, want %v", c.Sharpness, want)
			}
			if c.NeedsLift != tt.wantLift {
				t.Errorf("NeedsLift = %v, want %v", c.NeedsLift, tt.wantLift)
			}
		})
	}
}

func TestDetectCornersThreshold(t *testing.T) {
	samples := measure(t, "M0,0 L50,0 L99.80973,4.35779")
	cfg := DefaultConfig()
	cfg.AngleThreshold = 2
	corners := DetectCorners(samples, cfg)
	if len(corners) != 1 {
		t.Fatalf("len(corners) = %d, want 1", len(corners))
	}
	if corners[0].NeedsLift {
		t.Error("NeedsLift = true for a 5° bend")
	}
}

func TestDetectCornersKeepsStrongerNeighbour(t *testing.T) {
	pts := []handfollow.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 17.0711, Y: 7.0711},
		{X: 10, Y: 20},
		{X: 10, Y: 30},
	}
	samples := make([]pathgeom.PathSample, len(pts))
	for i, p := range pts {
		samples[i] = pathgeom.PathSample{X: p.X, Y: p.Y}
	}
	corners := DetectCorners(samples, DefaultConfig())
	if len(corners) != 1 {
		t.Fatalf("len(corners) = %d, want 1 (%+v)", len(corners), corners)
	}
	if corners[0].SampleIndex != 2 {
		t.Errorf("SampleIndex = %d, want 2", corners[0].SampleIndex)
	}
}

func TestDetectCornersCoincidentSamples(t *testing.T) {
	samples := []pathgeom.PathSample{
		{X: 0, Y: 0, TangentAngle: 0},
		{X: 10, Y: 0, TangentAngle: 0},
		{X: 10, Y: 0, TangentAngle: math.Pi / 2},
		{X: 10, Y: 10, TangentAngle: math.Pi / 2},
	}
	corners := DetectCorners(samples, DefaultConfig())
	if len(corners) != 1 {
		t.Fatalf("len(corners) = %d, want 1 (%+v)", len(corners), corners)
	}
	if got := handfollow.Degrees(corners[0].AngleChange); math.Abs(got-90) > 1e-9 {
		t.Errorf("AngleChange = %v°, want 90°", got)
	}
}

func TestDetectCornersShortTable(t *testing.T) {
	if got := DetectCorners(nil, DefaultConfig()); got != nil {
		t.Errorf("DetectCorners(nil) = %v, want nil", got)
	}
}
