package surface

import (
	"math"

	"github.com/iburimskiy/embers/internal/vmath"
)

// Verb is the kind of a path segment.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	CubicTo
	Close
)

// Segment is one path command. MoveTo and LineTo use Pts[0]; CubicTo uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type Segment struct {
	Verb Verb
	Pts  [3]vmath.Vec
}

// Path is a recorded sequence of drawing commands, replayed by backends.
type Path struct {
	segs []Segment
}

func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, Segment{Verb: MoveTo, Pts: [3]vmath.Vec{{X: x, Y: y}}})
}

func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, Segment{Verb: LineTo, Pts: [3]vmath.Vec{{X: x, Y: y}}})
}

func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.segs = append(p.segs, Segment{Verb: CubicTo, Pts: [3]vmath.Vec{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}}})
}

func (p *Path) Close() {
	p.segs = append(p.segs, Segment{Verb: Close})
}

// Reset empties the path, keeping its storage.
func (p *Path) Reset() { p.segs = p.segs[:0] }

func (p *Path) Segments() []Segment { return p.segs }

// Flatten converts the path into polylines in device space. Each cubic is
// split into steps straight pieces. Closed subpaths end on their first point.
func (p *Path) Flatten(m Affine, steps int) [][]vmath.Vec {
	if steps < 1 {
		steps = 1
	}
	var (
		out   [][]vmath.Vec
		cur   []vmath.Vec
		start vmath.Vec
		pen   vmath.Vec
	)
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, s := range p.segs {
		switch s.Verb {
		case MoveTo:
			flush()
			start, pen = s.Pts[0], s.Pts[0]
			cur = append(cur, m.Apply(pen))
		case LineTo:
			if cur == nil {
				cur = append(cur, m.Apply(pen))
			}
			pen = s.Pts[0]
			cur = append(cur, m.Apply(pen))
		case CubicTo:
			if cur == nil {
				cur = append(cur, m.Apply(pen))
			}
			p0 := pen
			for i := 1; i <= steps; i++ {
				cur = append(cur, m.Apply(cubic(p0, s.Pts[0], s.Pts[1], s.Pts[2], float64(i)/float64(steps))))
			}
			pen = s.Pts[2]
		case Close:
			if cur != nil {
				cur = append(cur, m.Apply(start))
			}
			flush()
			pen = start
		}
	}
	flush()
	return out
}

func cubic(p0, p1, p2, p3 vmath.Vec, t float64) vmath.Vec {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return vmath.Vec{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// Affine is a 2D affine transform in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the transform that leaves points unchanged.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translate returns m followed by a translation in m's local space.
func (m Affine) Translate(x, y float64) Affine {
	m.E += m.A*x + m.C*y
	m.F += m.B*x + m.D*y
	return m
}

// Rotate returns m followed by a rotation by angle radians in m's local space.
func (m Affine) Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{
		A: m.A*cos + m.C*sin,
		B: m.B*cos + m.D*sin,
		C: m.C*cos - m.A*sin,
		D: m.D*cos - m.B*sin,
		E: m.E,
		F: m.F,
	}
}

// Invert returns the inverse of m. A singular m yields the identity.
func (m Affine) Invert() Affine {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity()
	}
	return Affine{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}
}

func (m Affine) Apply(v vmath.Vec) vmath.Vec {
	return vmath.Vec{X: m.A*v.X + m.C*v.Y + m.E, Y: m.B*v.X + m.D*v.Y + m.F}
}

// TransformStack implements the Save/Translate/Rotate/Restore part of
// Surface for backends that transform points themselves.
type TransformStack struct {
	cur   Affine
	saved []Affine
}

// Current returns the active transform.
func (t *TransformStack) Current() Affine {
	if t.cur == (Affine{}) {
		t.cur = Identity()
	}
	return t.cur
}

func (t *TransformStack) Save() { t.saved = append(t.saved, t.Current()) }

func (t *TransformStack) Translate(x, y float64) { t.cur = t.Current().Translate(x, y) }

func (t *TransformStack) Rotate(angle float64) { t.cur = t.Current().Rotate(angle) }

// Restore pops the last saved transform. An unbalanced Restore resets to
// identity.
func (t *TransformStack) Restore() {
	if n := len(t.saved); n > 0 {
		t.cur = t.saved[n-1]
		t.saved = t.saved[:n-1]
		return
	}
	t.cur = Identity()
}

// ResetTransform drops every saved scope.
func (t *TransformStack) ResetTransform() {
	t.cur = Identity()
	t.saved = t.saved[:0]
}
