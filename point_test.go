package handfollow

import (
	"math"
	"testing"
)

func TestPointRotate(t *testing.T) {
	got := Pt(1, 0).Rotate(math.Pi / 2)
	if !got.Approx(Pt(0, 1), 1e-12) {
		t.Errorf("Rotate(π/2) = %v, want (0, 1)", got)
	}
}

func TestPointRound(t *testing.T) {
	got := Pt(1.234567, -9.87654).Round(1e-4)
	if !got.Approx(Pt(1.2346, -9.8765), 1e-12) {
		t.Errorf("Round(1e-4) = %v, want (1.2346, -9.8765)", got)
	}
	if p := Pt(1.5, 2.5); p.Round(0) != p {
		t.Error("Round(0) should return the point unchanged")
	}
}

func TestPointAngle(t *testing.T) {
	tests := []struct {
		p    Point
		want float64
	}{
		{Pt(1, 0), 0},
		{Pt(0, 1), math.Pi / 2},
		{Pt(-1, 0), math.Pi},
		{Pt(0, 0), 0},
	}
	for _, tt := range tests {
		if got := tt.p.Angle(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%v.Angle() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
