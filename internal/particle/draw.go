package particle

import (
	"image/color"

	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

type drawFunc func(s surface.Surface, p *Particle, st *Style, path *surface.Path)

// Indexed by Motion.
var painters = [...]drawFunc{
	Rise:  drawDot,
	Fall:  drawPetal,
	Drift: drawDot,
}

// Draw renders particle i onto s.
func (pl *Pool) Draw(i int, s surface.Surface) {
	painters[pl.style.Motion](s, &pl.particles[i], &pl.style, &pl.path)
}

// Tint returns the particle's palette colour with its alpha scaled by a.
func (st *Style) Tint(p *Particle, a float64) color.NRGBA {
	if len(st.Palette) == 0 {
		return color.NRGBA{}
	}
	c := st.Palette[p.Color%len(st.Palette)]
	c.A = uint8(float64(c.A) * vmath.Clamp01(a))
	return c
}

// drawDot renders a filled circle faded by remaining life.
func drawDot(s surface.Surface, p *Particle, st *Style, _ *surface.Path) {
	if p.Life <= 0 {
		return
	}
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Size, st.Tint(p, p.Life))
}

// drawPetal renders a rotated two-curve petal at the particle position.
func drawPetal(s surface.Surface, p *Particle, st *Style, path *surface.Path) {
	w, h := p.Size, p.Size*0.8

	path.Reset()
	path.MoveTo(0, 0)
	path.CubicTo(w/2, -h/2, w, h/2, 0, h)
	path.CubicTo(-w, h/2, -w/2, -h/2, 0, 0)
	path.Close()

	s.Save()
	s.Translate(p.Pos.X, p.Pos.Y)
	s.Rotate(p.Rotation)
	s.FillPath(path, st.Tint(p, p.Opacity*p.Life))
	s.Restore()
}
