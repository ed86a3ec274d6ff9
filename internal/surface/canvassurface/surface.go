// Package canvassurface implements surface.Surface on an HTML5-style
// tfriedel6/canvas context, such as the one sdlcanvas opens.
package canvassurface

import (
	"image/color"
	"math"

	"github.com/tfriedel6/canvas"

	"github.com/iburimskiy/embers/internal/surface"
)

// Context is the part of *canvas.Canvas the surface draws with.
type Context interface {
	Width() int
	Height() int

	SetFillStyle(value ...interface{})
	SetStrokeStyle(value ...interface{})
	SetLineWidth(width float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(x1, y1, x2, y2, x3, y3 float64)
	Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool)
	ClosePath()
	Fill()
	Stroke()

	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)

	CreateLinearGradient(x0, y0, x1, y1 float64) *canvas.LinearGradient
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *canvas.RadialGradient
}

var _ Context = (*canvas.Canvas)(nil)

// Surface forwards every call to the context. Transforms are the
// context's own, so Save/Restore nest exactly like the browser canvas.
type Surface struct {
	cv   Context
	w, h int
}

// New wraps cv at its current size.
func New(cv Context) *Surface {
	return &Surface{cv: cv, w: cv.Width(), h: cv.Height()}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// SetSize records the size the canvas was laid out at. The window owns the
// backing store, so nothing is reallocated here.
func (s *Surface) SetSize(w, h int) { s.w, s.h = w, h }

func (s *Surface) Clear() {
	s.cv.ClearRect(0, 0, float64(s.w), float64(s.h))
}

func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	s.cv.SetFillStyle(c)
	s.cv.BeginPath()
	s.cv.Arc(x, y, r, 0, math.Pi*2, false)
	s.cv.Fill()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	s.cv.SetStrokeStyle(c)
	s.cv.SetLineWidth(width)
	s.cv.BeginPath()
	s.cv.MoveTo(x0, y0)
	s.cv.LineTo(x1, y1)
	s.cv.Stroke()
}

func (s *Surface) FillPath(p *surface.Path, c color.Color) {
	s.cv.SetFillStyle(c)
	s.trace(p)
	s.cv.Fill()
}

func (s *Surface) StrokePath(p *surface.Path, width float64, c color.Color) {
	s.cv.SetStrokeStyle(c)
	s.cv.SetLineWidth(width)
	s.trace(p)
	s.cv.Stroke()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.cv.SetFillStyle(c)
	s.cv.FillRect(x, y, w, h)
}

func (s *Surface) FillGradient(x, y, w, h float64, g *surface.Gradient) {
	switch g.Kind {
	case surface.Radial:
		rg := s.cv.CreateRadialGradient(g.X0, g.Y0, g.R0, g.X1, g.Y1, g.R1)
		for _, st := range g.Stops {
			rg.AddColorStop(st.Offset, st.Color)
		}
		s.cv.SetFillStyle(rg)
	default:
		lg := s.cv.CreateLinearGradient(g.X0, g.Y0, g.X1, g.Y1)
		for _, st := range g.Stops {
			lg.AddColorStop(st.Offset, st.Color)
		}
		s.cv.SetFillStyle(lg)
	}
	s.cv.FillRect(x, y, w, h)
}

func (s *Surface) trace(p *surface.Path) {
	s.cv.BeginPath()
	for _, seg := range p.Segments() {
		switch seg.Verb {
		case surface.MoveTo:
			s.cv.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case surface.LineTo:
			s.cv.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case surface.CubicTo:
			s.cv.BezierCurveTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case surface.Close:
			s.cv.ClosePath()
		}
	}
}

func (s *Surface) Save()                  { s.cv.Save() }
func (s *Surface) Translate(x, y float64) { s.cv.Translate(x, y) }
func (s *Surface) Rotate(angle float64)   { s.cv.Rotate(angle) }
func (s *Surface) Restore()               { s.cv.Restore() }

var _ surface.Surface = (*Surface)(nil)
