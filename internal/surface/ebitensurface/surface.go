// Package ebitensurface implements surface.Surface on an offscreen
// *ebiten.Image using the vector package.
package ebitensurface

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

const (
	curveSteps = 12
	// gradientCacheSize bounds the rasterised gradient images kept between
	// frames.
	gradientCacheSize = 32
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws into its own image. Hosts composite it onto the screen
// with Image.
type Surface struct {
	surface.TransformStack

	img *ebiten.Image
	w   int
	h   int

	// AntiAlias smooths circles, lines and paths.
	AntiAlias bool

	vertices []ebiten.Vertex
	indices  []uint16

	gradients map[string]*ebiten.Image
}

func New(w, h int) *Surface {
	s := &Surface{AntiAlias: true, gradients: make(map[string]*ebiten.Image)}
	s.SetSize(w, h)
	return s
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) SetSize(w, h int) {
	if w == s.w && h == s.h && s.img != nil {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

// Image returns the backing image, nil while the surface has no size.
func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) Clear() {
	s.ResetTransform()
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	if s.img == nil || r <= 0 {
		return
	}
	p := s.Current().Apply(vmath.Vec{X: x, Y: y})
	vector.DrawFilledCircle(s.img, float32(p.X), float32(p.Y), float32(r), c, s.AntiAlias)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if s.img == nil {
		return
	}
	m := s.Current()
	a := m.Apply(vmath.Vec{X: x0, Y: y0})
	b := m.Apply(vmath.Vec{X: x1, Y: y1})
	vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, s.AntiAlias)
}

func (s *Surface) FillPath(p *surface.Path, c color.Color) {
	if s.img == nil {
		return
	}
	vp := s.devicePath(p)
	s.vertices, s.indices = vp.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.drawTriangles(c)
}

func (s *Surface) StrokePath(p *surface.Path, width float64, c color.Color) {
	if s.img == nil {
		return
	}
	vp := s.devicePath(p)
	s.vertices, s.indices = vp.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	s.drawTriangles(c)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	if s.img == nil {
		return
	}
	var p surface.Path
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	s.FillPath(&p, c)
}

// FillGradient rasterises g over the rectangle once per distinct shape
// and blits the cached image.
func (s *Surface) FillGradient(x, y, w, h float64, g *surface.Gradient) {
	if s.img == nil || w <= 0 || h <= 0 {
		return
	}
	ix, iy := math.Floor(x), math.Floor(y)
	iw, ih := int(math.Ceil(x+w-ix)), int(math.Ceil(y+h-iy))

	local := *g
	local.Stops = append([]surface.Stop(nil), g.Stops...)
	local.X0, local.Y0 = g.X0-ix, g.Y0-iy
	local.X1, local.Y1 = g.X1-ix, g.Y1-iy
	key := fmt.Sprintf("%d %.2f %.2f %.2f %.2f %.2f %.2f %v %dx%d",
		local.Kind, local.X0, local.Y0, local.R0, local.X1, local.Y1, local.R1, local.Stops, iw, ih)

	img, ok := s.gradients[key]
	if !ok {
		if len(s.gradients) >= gradientCacheSize {
			for k, v := range s.gradients {
				v.Deallocate()
				delete(s.gradients, k)
			}
		}
		img = ebiten.NewImageFromImage(local.Rasterize(0, 0, iw, ih))
		s.gradients[key] = img
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ix, iy)
	op.GeoM.Concat(geoM(s.Current()))
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(img, op)
}

func (s *Surface) devicePath(p *surface.Path) *vector.Path {
	var vp vector.Path
	for _, poly := range p.Flatten(s.Current(), curveSteps) {
		vp.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, pt := range poly[1:] {
			vp.LineTo(float32(pt.X), float32(pt.Y))
		}
	}
	return &vp
}

func (s *Surface) drawTriangles(c color.Color) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return
	}
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(r) / 0xffff
		v.ColorG = float32(g) / 0xffff
		v.ColorB = float32(b) / 0xffff
		v.ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		FillRule:       ebiten.FillRuleNonZero,
		AntiAlias:      s.AntiAlias,
	}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

// geoM converts a canvas-order affine transform to an ebiten.GeoM.
func geoM(m surface.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.A)
	g.SetElement(0, 1, m.C)
	g.SetElement(0, 2, m.E)
	g.SetElement(1, 0, m.B)
	g.SetElement(1, 1, m.D)
	g.SetElement(1, 2, m.F)
	return g
}

var _ surface.Surface = (*Surface)(nil)
