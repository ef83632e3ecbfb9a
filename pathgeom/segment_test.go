package pathgeom

import (
	"errors"
	"testing"

	"github.com/gogpu/handfollow"
)

func mustBuild(t *testing.T, d string, m handfollow.Matrix) Path {
	t.Helper()
	toks, err := Tokenize(d)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", d, err)
	}
	p, err := BuildSegments(toks, m)
	if err != nil {
		t.Fatalf("BuildSegments(%q) error = %v", d, err)
	}
	return p
}

func TestBuildSegmentsKinds(t *testing.T) {
	p := mustBuild(t, "M0,0 L10,0 h5 v5 C20,5 20,10 15,10 Q10,10 10,5 A5,5 0 0 0 5,0 Z", handfollow.Identity())
	want := []SegmentKind{KindLine, KindLine, KindLine, KindCubic, KindQuad, KindArc, KindLine}
	if len(p.Segments) != len(want) {
		t.Fatalf("len(Segments) = %d, want %d", len(p.Segments), len(want))
	}
	for i, s := range p.Segments {
		if s.Kind != want[i] {
			t.Errorf("Segments[%d].Kind = %v, want %v", i, s.Kind, want[i])
		}
	}
	if got := p.Segments[2].End; got != handfollow.Pt(15, 5) {
		t.Errorf("relative v end = %v, want (15,5)", got)
	}
	if got := p.Segments[6].End; got != handfollow.Pt(0, 0) {
		t.Errorf("close end = %v, want (0,0)", got)
	}
}

func TestBuildSegmentsSmoothReflection(t *testing.T) {
	tests := []struct {
		name   string
		d      string
		index  int
		wantC1 handfollow.Point
	}{
		{"S after C reflects", "M0,0 C0,10 10,10 10,0 S20,-10 20,0", 1, handfollow.Pt(10, -10)},
		{"S after S reflects", "M0,0 C0,10 10,10 10,0 S20,-10 20,0 S30,10 30,0", 2, handfollow.Pt(20, 10)},
		{"S after L uses current point", "M0,0 L10,0 S20,10 20,0", 1, handfollow.Pt(10, 0)},
		{"S after Q uses current point", "M0,0 Q5,10 10,0 S20,10 20,0", 1, handfollow.Pt(10, 0)},
		{"T after Q reflects", "M0,0 Q5,10 10,0 T20,0", 1, handfollow.Pt(15, -10)},
		{"T after T reflects", "M0,0 Q5,10 10,0 T20,0 T30,0", 2, handfollow.Pt(25, 10)},
		{"T after C uses current point", "M0,0 C0,10 10,10 10,0 T20,0", 1, handfollow.Pt(10, 0)},
		{"relative s", "M0,0 c0,10 10,10 10,0 s10,-10 10,0", 1, handfollow.Pt(10, -10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustBuild(t, tt.d, handfollow.Identity())
			if got := p.Segments[tt.index].C1; !got.Approx(tt.wantC1, 1e-9) {
				t.Errorf("Segments[%d].C1 = %v, want %v", tt.index, got, tt.wantC1)
			}
		})
	}
}

func TestBuildSegmentsMatrix(t *testing.T) {
	m := handfollow.Translate(100, 50).Multiply(handfollow.Scale(2, 2))
	p := mustBuild(t, "M10,10 l10,0", m)
	if got, want := p.Start, handfollow.Pt(120, 70); got != want {
		t.Errorf("Start = %v, want %v", got, want)
	}
	if got, want := p.Segments[0].End, handfollow.Pt(140, 70); got != want {
		t.Errorf("End = %v, want %v", got, want)
	}
}

func TestBuildSegmentsSubpaths(t *testing.T) {
	p := mustBuild(t, "M0,0 L10,0 M20,0 L30,0 z", handfollow.Identity())
	want := []int{0, 1, 1}
	if len(p.Segments) != len(want) {
		t.Fatalf("len(Segments) = %d, want %d", len(p.Segments), len(want))
	}
	for i, s := range p.Segments {
		if s.Subpath != want[i] {
			t.Errorf("Segments[%d].Subpath = %d, want %d", i, s.Subpath, want[i])
		}
	}
}

func TestBuildSegmentsDegenerateArcs(t *testing.T) {
	p := mustBuild(t, "M0,0 A10,10 0 0 1 0,0 A0,10 0 0 1 10,0", handfollow.Identity())
	if len(p.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1", len(p.Segments))
	}
	if p.Segments[0].Kind != KindLine {
		t.Errorf("zero-radius arc Kind = %v, want line", p.Segments[0].Kind)
	}
}

func TestBuildSegmentsErrors(t *testing.T) {
	if _, err := BuildSegments([]Token{{Cmd: 'L', Args: []float64{1, 1}}}, handfollow.Identity()); !errors.Is(err, ErrNoMoveTo) {
		t.Errorf("BuildSegments(L first) error = %v, want %v", err, ErrNoMoveTo)
	}
	if _, err := BuildSegments([]Token{{Cmd: 'M', Args: []float64{1}}}, handfollow.Identity()); !errors.Is(err, ErrMissingArgs) {
		t.Errorf("BuildSegments(short M) error = %v, want %v", err, ErrMissingArgs)
	}
	if _, err := BuildSegments([]Token{{Cmd: 'M', Args: []float64{0, 0}}, {Cmd: 'K'}}, handfollow.Identity()); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("BuildSegments(K) error = %v, want %v", err, ErrUnknownCommand)
	}
}
