package pathgeom

import (
	"fmt"

	"github.com/gogpu/handfollow"
)

// SegmentKind identifies the geometry of a Segment.
type SegmentKind uint8

const (
	// KindLine is a straight segment (L, H, V and the closing line of Z).
	KindLine SegmentKind = iota
	// KindQuad is a quadratic Bézier (Q, T).
	KindQuad
	// KindCubic is a cubic Bézier (C, S).
	KindCubic
	// KindArc is an elliptical arc (A).
	KindArc
)

func (k SegmentKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindQuad:
		return "quad"
	case KindCubic:
		return "cubic"
	case KindArc:
		return "arc"
	}
	return fmt.Sprintf("SegmentKind(%d)", uint8(k))
}

// Segment is one drawn piece of a path, in transformed coordinates.
type Segment struct {
	Kind       SegmentKind
	Start, End handfollow.Point
	// C1 and C2 are the control points. A quadratic uses C1 only.
	C1, C2 handfollow.Point

	// Arc is the untransformed ellipse of a KindArc segment; it is walked
	// through Matrix so that stretched arcs get proportionally more chords.
	Arc    Arc
	Matrix handfollow.Matrix

	// Subpath counts the move commands before this segment, starting at 0.
	Subpath int
}

// Cubic returns the segment as a cubic Bézier. Quadratics are degree
// raised and lines get control points at their thirds. Arcs have no cubic
// form and return the chord.
func (s Segment) Cubic() handfollow.CubicBez {
	switch s.Kind {
	case KindCubic:
		return handfollow.CubicBez{P0: s.Start, P1: s.C1, P2: s.C2, P3: s.End}
	case KindQuad:
		return handfollow.QuadBez{P0: s.Start, P1: s.C1, P2: s.End}.Raise()
	}
	return handfollow.CubicBez{
		P0: s.Start,
		P1: s.Start.Lerp(s.End, 1.0/3.0),
		P2: s.Start.Lerp(s.End, 2.0/3.0),
		P3: s.End,
	}
}

// Path is a parsed, transformed path ready for measurement.
type Path struct {
	Segments []Segment
	// Start is the transformed point of the first move command.
	Start handfollow.Point
}

// builder tracks the pen state while resolving tokens into segments.
// Positions are kept in untransformed path space so that relative
// commands and smooth reflections follow the mini-language exactly.
type builder struct {
	m        handfollow.Matrix
	cur      handfollow.Point
	subStart handfollow.Point
	lastCtrl handfollow.Point
	lastCmd  byte // upper-case family of the previous command
	subpath  int
	moved    bool
	path     Path
}

// BuildSegments resolves tokens into absolute, transformed segments.
//
// S and T reflect the previous control point about the current point only
// when the previous command was of the same family (C/S or Q/T);
// otherwise the current point is used as the first control point.
func BuildSegments(toks []Token, m handfollow.Matrix) (Path, error) {
	b := builder{m: m}
	for i, tok := range toks {
		if n := argCount(tok.Cmd); n < 0 {
			return Path{}, fmt.Errorf("token %d: %w", i, &ParseError{Cmd: tok.Cmd, Err: ErrUnknownCommand})
		} else if len(tok.Args) < n {
			return Path{}, fmt.Errorf("token %d: %w", i, &ParseError{Cmd: tok.Cmd, Err: ErrMissingArgs})
		}
		if i == 0 && tok.Cmd != 'M' && tok.Cmd != 'm' {
			return Path{}, &ParseError{Cmd: tok.Cmd, Err: ErrNoMoveTo}
		}
		b.apply(tok)
	}
	return b.path, nil
}

func (b *builder) abs(rel bool, x, y float64) handfollow.Point {
	if rel {
		return handfollow.Pt(b.cur.X+x, b.cur.Y+y)
	}
	return handfollow.Pt(x, y)
}

func (b *builder) apply(tok Token) {
	a := tok.Args
	rel := tok.Cmd >= 'a'
	family := tok.Cmd &^ 0x20 // to upper case

	switch family {
	case 'M':
		p := b.abs(rel, a[0], a[1])
		if !b.moved {
			b.path.Start = b.m.TransformPoint(p)
			b.moved = true
		} else {
			b.subpath++
		}
		b.cur, b.subStart = p, p
	case 'L':
		b.line(b.abs(rel, a[0], a[1]))
	case 'H':
		x := a[0]
		if rel {
			x += b.cur.X
		}
		b.line(handfollow.Pt(x, b.cur.Y))
	case 'V':
		y := a[0]
		if rel {
			y += b.cur.Y
		}
		b.line(handfollow.Pt(b.cur.X, y))
	case 'C':
		c1 := b.abs(rel, a[0], a[1])
		c2 := b.abs(rel, a[2], a[3])
		b.cubic(c1, c2, b.abs(rel, a[4], a[5]))
	case 'S':
		c1 := b.cur
		if b.lastCmd == 'C' || b.lastCmd == 'S' {
			c1 = b.reflect()
		}
		c2 := b.abs(rel, a[0], a[1])
		b.cubic(c1, c2, b.abs(rel, a[2], a[3]))
	case 'Q':
		c := b.abs(rel, a[0], a[1])
		b.quad(c, b.abs(rel, a[2], a[3]))
	case 'T':
		c := b.cur
		if b.lastCmd == 'Q' || b.lastCmd == 'T' {
			c = b.reflect()
		}
		b.quad(c, b.abs(rel, a[0], a[1]))
	case 'A':
		b.arc(a[0], a[1], a[2], a[3] != 0, a[4] != 0, b.abs(rel, a[5], a[6]))
	case 'Z':
		if b.cur != b.subStart {
			b.line(b.subStart)
		}
		b.cur = b.subStart
	}
	b.lastCmd = family
}

func (b *builder) reflect() handfollow.Point {
	return b.cur.Mul(2).Sub(b.lastCtrl)
}

func (b *builder) push(s Segment, end handfollow.Point) {
	s.Start = b.m.TransformPoint(b.cur)
	s.End = b.m.TransformPoint(end)
	s.Subpath = b.subpath
	b.path.Segments = append(b.path.Segments, s)
	b.cur = end
}

func (b *builder) line(end handfollow.Point) {
	b.push(Segment{Kind: KindLine}, end)
}

func (b *builder) cubic(c1, c2, end handfollow.Point) {
	b.push(Segment{
		Kind: KindCubic,
		C1:   b.m.TransformPoint(c1),
		C2:   b.m.TransformPoint(c2),
	}, end)
	b.lastCtrl = c2
}

func (b *builder) quad(c, end handfollow.Point) {
	b.push(Segment{Kind: KindQuad, C1: b.m.TransformPoint(c)}, end)
	b.lastCtrl = c
}

func (b *builder) arc(rx, ry, rotation float64, large, sweep bool, end handfollow.Point) {
	if b.cur == end {
		return
	}
	arc, ok := ArcFromEndpoints(b.cur, end, rx, ry, rotation, large, sweep)
	if !ok {
		b.line(end)
		return
	}
	b.push(Segment{Kind: KindArc, Arc: arc, Matrix: b.m}, end)
}
