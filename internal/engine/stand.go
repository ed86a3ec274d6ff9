package engine

import (
	"image/color"

	"github.com/iburimskiy/embers/internal/particle"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

var (
	standLine = color.NRGBA{R: 255, G: 255, B: 255, A: 77}
	standGlow = color.NRGBA{R: 255, G: 100, A: 102}
)

// drawStand strokes the fire stand (two legs, two cross bars, one support)
// on the bottom edge and lays a radial glow over its top. It is redrawn
// every frame since the sparks are painted on top of it.
func (e *Engine) drawStand(s surface.Surface, f particle.Field) {
	h := e.opts.Style.StandHeight
	if h <= 0 {
		h = 100
	}
	cx, cy := f.W/2, f.H
	top, bottom := h*0.6, h

	p := &e.stand
	p.Reset()
	p.MoveTo(cx-top, cy-h)
	p.LineTo(cx-bottom, cy)
	p.MoveTo(cx+top, cy-h)
	p.LineTo(cx+bottom, cy)
	p.MoveTo(cx-top, cy-h)
	p.LineTo(cx+bottom, cy)
	p.MoveTo(cx+top, cy-h)
	p.LineTo(cx-bottom, cy)
	p.MoveTo(cx-(top+10), cy-h+40)
	p.LineTo(cx+(top+10), cy-h+40)
	s.StrokePath(p, 3, standLine)

	glow := standGlow
	if e.opts.Flicker != nil {
		scale := 0.8 + 0.4*vmath.Clamp01(e.opts.Flicker())
		glow.A = uint8(vmath.Clamp01(float64(glow.A)*scale/255) * 255)
	}
	transparent := glow
	transparent.A = 0
	g := surface.NewRadialGradient(cx, cy-h+20, 10, cx, cy-h, h).
		AddStop(0, glow).
		AddStop(1, transparent)
	s.FillGradient(cx-h, cy-1.5*h, 2*h, 1.5*h, g)
}
