// Package termsurface rasterises surface.Surface drawing into a small pixel
// buffer and presents it on a tcell screen with half-block cells, two
// pixels per cell.
package termsurface

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

// DefaultScale is how many logical pixels one buffer pixel spans.
const DefaultScale = 8

const (
	curveSteps = 8
	halfBlock  = '▀'
)

// Surface keeps its logical size and a buffer Scale times smaller.
type Surface struct {
	surface.TransformStack

	scale float64
	w, h  int
	buf   *image.NRGBA
}

func New(w, h int, scale float64) *Surface {
	if scale <= 0 {
		scale = DefaultScale
	}
	s := &Surface{scale: scale}
	s.SetSize(w, h)
	return s
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) SetSize(w, h int) {
	s.w, s.h = w, h
	pw := int(math.Ceil(float64(w) / s.scale))
	ph := int(math.Ceil(float64(h) / s.scale))
	s.buf = image.NewNRGBA(image.Rect(0, 0, max(pw, 0), max(ph, 0)))
}

// Scale returns logical pixels per buffer pixel.
func (s *Surface) Scale() float64 { return s.scale }

// Pixels returns the buffer. Its bounds are the logical size divided by
// Scale.
func (s *Surface) Pixels() *image.NRGBA { return s.buf }

func (s *Surface) Clear() {
	s.ResetTransform()
	clear(s.buf.Pix)
}

// device maps a logical point through the current transform into buffer
// pixel space.
func (s *Surface) device(x, y float64) vmath.Vec {
	return s.Current().Apply(vmath.Vec{X: x, Y: y}).Scale(1 / s.scale)
}

func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	p := s.device(x, y)
	pr := math.Max(r/s.scale, 0.75)
	src := nrgba(c)
	s.span(p.X-pr, p.Y-pr, p.X+pr, p.Y+pr, func(px, py float64) bool {
		return math.Hypot(px-p.X, py-p.Y) <= pr
	}, func(float64, float64) color.NRGBA { return src })
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	a, b := s.device(x0, y0), s.device(x1, y1)
	s.strokePolys([][]vmath.Vec{{a, b}}, width, c)
}

func (s *Surface) FillPath(p *surface.Path, c color.Color) {
	polys := s.devicePolys(p)
	if len(polys) == 0 {
		return
	}
	minX, minY, maxX, maxY := bounds(polys)
	src := nrgba(c)
	s.span(minX, minY, maxX, maxY, func(px, py float64) bool {
		return winding(polys, px, py) != 0
	}, func(float64, float64) color.NRGBA { return src })
}

func (s *Surface) StrokePath(p *surface.Path, width float64, c color.Color) {
	s.strokePolys(s.devicePolys(p), width, c)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	var p surface.Path
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	s.FillPath(&p, c)
}

// FillGradient samples g at the logical position of every buffer pixel
// covered by the rectangle.
func (s *Surface) FillGradient(x, y, w, h float64, g *surface.Gradient) {
	var p surface.Path
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	polys := s.devicePolys(&p)
	minX, minY, maxX, maxY := bounds(polys)
	inv := s.Current().Invert()
	s.span(minX, minY, maxX, maxY, func(px, py float64) bool {
		return winding(polys, px, py) != 0
	}, func(px, py float64) color.NRGBA {
		l := inv.Apply(vmath.Vec{X: px * s.scale, Y: py * s.scale})
		return g.At(l.X, l.Y)
	})
}

func (s *Surface) devicePolys(p *surface.Path) [][]vmath.Vec {
	polys := p.Flatten(s.Current(), curveSteps)
	for _, poly := range polys {
		for i := range poly {
			poly[i] = poly[i].Scale(1 / s.scale)
		}
	}
	return polys
}

func (s *Surface) strokePolys(polys [][]vmath.Vec, width float64, c color.Color) {
	if len(polys) == 0 {
		return
	}
	hw := math.Max(width/s.scale/2, 0.5)
	minX, minY, maxX, maxY := bounds(polys)
	src := nrgba(c)
	s.span(minX-hw, minY-hw, maxX+hw, maxY+hw, func(px, py float64) bool {
		pt := vmath.Vec{X: px, Y: py}
		for _, poly := range polys {
			for i := 1; i < len(poly); i++ {
				if segmentDistance(pt, poly[i-1], poly[i]) <= hw {
					return true
				}
			}
		}
		return false
	}, func(float64, float64) color.NRGBA { return src })
}

// span composites paint over every buffer pixel in the box whose centre
// passes inside. Each pixel is painted at most once per call.
func (s *Surface) span(x0, y0, x1, y1 float64, inside func(px, py float64) bool, paint func(px, py float64) color.NRGBA) {
	r := s.buf.Rect
	ix0 := max(int(math.Floor(x0)), r.Min.X)
	iy0 := max(int(math.Floor(y0)), r.Min.Y)
	ix1 := min(int(math.Ceil(x1)), r.Max.X-1)
	iy1 := min(int(math.Ceil(y1)), r.Max.Y-1)
	for py := iy0; py <= iy1; py++ {
		for px := ix0; px <= ix1; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			if !inside(cx, cy) {
				continue
			}
			src := paint(cx, cy)
			if src.A == 0 {
				continue
			}
			s.buf.SetNRGBA(px, py, Over(s.buf.NRGBAAt(px, py), src))
		}
	}
}

// Over composites src over dst, both with straight alpha.
func Over(dst, src color.NRGBA) color.NRGBA {
	sa := float64(src.A) / 255
	da := float64(dst.A) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return color.NRGBA{}
	}
	d := colorful.Color{R: float64(dst.R) / 255, G: float64(dst.G) / 255, B: float64(dst.B) / 255}
	c := colorful.Color{R: float64(src.R) / 255, G: float64(src.G) / 255, B: float64(src.B) / 255}
	r, g, b := d.BlendRgb(c, sa/oa).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(oa * 255))}
}

// Present draws the buffer onto screen at cell (x0, y0), over bg. Each
// cell shows two vertically stacked pixels.
func (s *Surface) Present(screen tcell.Screen, x0, y0 int, bg color.NRGBA) {
	bg.A = 255
	r := s.buf.Rect
	for cy := 0; cy*2 < r.Max.Y; cy++ {
		for cx := 0; cx < r.Max.X; cx++ {
			top := Over(bg, s.buf.NRGBAAt(cx, cy*2))
			bottom := bg
			if cy*2+1 < r.Max.Y {
				bottom = Over(bg, s.buf.NRGBAAt(cx, cy*2+1))
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			screen.SetContent(x0+cx, y0+cy, halfBlock, nil, style)
		}
	}
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func bounds(polys [][]vmath.Vec) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	return
}

// winding returns the non-zero winding number of (x, y) against the
// polylines, each treated as closed.
func winding(polys [][]vmath.Vec, x, y float64) int {
	n := 0
	for _, poly := range polys {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			if a.Y <= y {
				if b.Y > y && cross(a, b, x, y) > 0 {
					n++
				}
			} else if b.Y <= y && cross(a, b, x, y) < 0 {
				n--
			}
		}
	}
	return n
}

func cross(a, b vmath.Vec, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
}

func segmentDistance(p, a, b vmath.Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return vmath.Distance(p, a)
	}
	t := vmath.Clamp01(((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2)
	return vmath.Distance(p, a.Add(ab.Scale(t)))
}

var _ surface.Surface = (*Surface)(nil)
