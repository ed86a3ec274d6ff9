package surface

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/embers/internal/vmath"
)

// GradientKind distinguishes linear from radial gradients.
type GradientKind uint8

const (
	Linear GradientKind = iota
	Radial
)

// Stop is a colour at an offset in [0, 1] along a gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient follows HTML canvas semantics. A radial gradient interpolates
// between circle (X0, Y0, R0) and circle (X1, Y1, R1); a linear gradient
// runs from (X0, Y0) to (X1, Y1). Both pad with the end stops.
type Gradient struct {
	Kind       GradientKind
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []Stop
	sorted     bool
}

func NewLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return &Gradient{Kind: Linear, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *Gradient {
	return &Gradient{Kind: Radial, X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

// AddStop appends a colour stop and returns g for chaining.
func (g *Gradient) AddStop(offset float64, c color.NRGBA) *Gradient {
	g.Stops = append(g.Stops, Stop{Offset: vmath.Clamp01(offset), Color: c})
	g.sorted = false
	return g
}

// At returns the gradient colour at device point (x, y). Points a radial
// gradient does not cover are fully transparent.
func (g *Gradient) At(x, y float64) color.NRGBA {
	t, ok := g.param(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return g.ColorAt(t)
}

func (g *Gradient) param(x, y float64) (float64, bool) {
	if g.Kind == Linear {
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0, false
		}
		return ((x-g.X0)*dx + (y-g.Y0)*dy) / l2, true
	}

	// Largest t with |p - c(t)| == r(t) and r(t) >= 0.
	cdx, cdy := g.X1-g.X0, g.Y1-g.Y0
	dr := g.R1 - g.R0
	px, py := x-g.X0, y-g.Y0
	a := cdx*cdx + cdy*cdy - dr*dr
	b := px*cdx + py*cdy + g.R0*dr
	c := px*px + py*py - g.R0*g.R0

	valid := func(t float64) bool { return g.R0+t*dr >= 0 }
	if a == 0 {
		if b == 0 {
			return 0, false
		}
		t := c / (2 * b)
		return t, valid(t)
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1, t2 := (b+sq)/a, (b-sq)/a
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if valid(t1) {
		return t1, true
	}
	if valid(t2) {
		return t2, true
	}
	return 0, false
}

// ColorAt returns the interpolated colour at parameter t, padded outside
// [0, 1]. RGB is blended with go-colorful, alpha linearly.
func (g *Gradient) ColorAt(t float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	if !g.sorted {
		sort.SliceStable(g.Stops, func(i, j int) bool { return g.Stops[i].Offset < g.Stops[j].Offset })
		g.sorted = true
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		hi := g.Stops[i]
		if t > hi.Offset {
			continue
		}
		lo := g.Stops[i-1]
		span := hi.Offset - lo.Offset
		if span == 0 {
			return hi.Color
		}
		return Blend(lo.Color, hi.Color, (t-lo.Offset)/span)
	}
	return last.Color
}

// Blend mixes two straight-alpha colours.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, gg, bb := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: gg, B: bb, A: uint8(math.Round(vmath.Lerp(float64(a.A), float64(b.A), t)))}
}

// Rasterize paints the gradient over the device rectangle (x, y, w, h),
// sampling pixel centres. The result is indexed from (0, 0).
func (g *Gradient) Rasterize(x, y, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			img.SetNRGBA(i, j, g.At(float64(x+i)+0.5, float64(y+j)+0.5))
		}
	}
	return img
}
