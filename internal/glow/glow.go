// Package glow draws a soft light that trails the pointer.
package glow

import (
	"image/color"

	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

// DefaultEase is the fraction of the remaining distance covered per frame.
const DefaultEase = 0.15

// Options configures a Glow. Zero values fall back to the defaults below.
type Options struct {
	Radius float64
	Color  color.NRGBA
	Ease   float64

	// Spring replaces the exponential follow with a damped spring.
	Spring    bool
	FPS       int
	Frequency float64
	Damping   float64
}

// DefaultOptions is a warm gold light with the exponential follow.
func DefaultOptions() Options {
	return Options{
		Radius: 20,
		Color:  color.NRGBA{R: 255, G: 215, B: 0, A: 153},
		Ease:   DefaultEase,
	}
}

// Glow is a single tracked point eased toward the pointer. Like the
// engines it is driven from one host goroutine.
type Glow struct {
	opts Options

	pos, vel vmath.Vec
	target   vmath.Vec
	visible  bool

	spring harmonica.Spring

	loop   *scheduler.Loop
	detach func()
	torn   bool
	s      surface.Surface
}

func New(opts Options) *Glow {
	d := DefaultOptions()
	if opts.Radius <= 0 {
		opts.Radius = d.Radius
	}
	if opts.Color == (color.NRGBA{}) {
		opts.Color = d.Color
	}
	if opts.Ease <= 0 || opts.Ease > 1 {
		opts.Ease = d.Ease
	}
	g := &Glow{opts: opts}
	if opts.Spring {
		fps := opts.FPS
		if fps <= 0 {
			fps = 60
		}
		freq, damp := opts.Frequency, opts.Damping
		if freq <= 0 {
			freq = 6
		}
		if damp <= 0 {
			damp = 0.7
		}
		g.spring = harmonica.NewSpring(harmonica.FPS(fps), freq, damp)
	}
	return g
}

// PointerMove retargets the glow and shows it.
func (g *Glow) PointerMove(x, y float64) {
	if g.torn {
		return
	}
	g.target = vmath.Vec{X: x, Y: y}
	g.visible = true
}

// PointerLeave hides the glow. It keeps its position so it resumes from
// there.
func (g *Glow) PointerLeave() {
	if g.torn {
		return
	}
	g.visible = false
}

// Step advances the glow one frame toward its target.
func (g *Glow) Step() {
	if g.torn {
		return
	}
	if g.opts.Spring {
		g.pos.X, g.vel.X = g.spring.Update(g.pos.X, g.vel.X, g.target.X)
		g.pos.Y, g.vel.Y = g.spring.Update(g.pos.Y, g.vel.Y, g.target.Y)
		return
	}
	k := g.opts.Ease
	g.pos = g.pos.Add(g.target.Sub(g.pos).Scale(k))
}

// Draw paints the glow at its smoothed position when visible.
func (g *Glow) Draw(s surface.Surface) {
	if g.torn || !g.visible {
		return
	}
	r := g.opts.Radius
	edge := g.opts.Color
	edge.A = 0
	grad := surface.NewRadialGradient(g.pos.X, g.pos.Y, 0, g.pos.X, g.pos.Y, r).
		AddStop(0, g.opts.Color).
		AddStop(1, edge)
	s.FillGradient(g.pos.X-r, g.pos.Y-r, 2*r, 2*r, grad)
}

// Frame steps and draws onto the surface given to Attach.
func (g *Glow) Frame() {
	g.Step()
	if g.s != nil {
		g.Draw(g.s)
	}
}

// Attach follows pointer signals and runs Frame on every clock tick,
// drawing onto s. The glow does not clear s; hosts layer it over others.
func (g *Glow) Attach(s surface.Surface, ev *surface.Events, clock scheduler.Clock) {
	if g.torn || g.loop != nil {
		return
	}
	g.s = s
	g.detach = ev.Attach(surface.Handlers{
		Move:  g.PointerMove,
		Leave: g.PointerLeave,
	})
	g.loop = scheduler.NewLoop(clock, g.Frame)
	g.loop.Start()
}

// Teardown stops the loop and detaches; later calls are no-ops.
func (g *Glow) Teardown() {
	if g.torn {
		return
	}
	g.torn = true
	if g.loop != nil {
		g.loop.Stop()
	}
	if g.detach != nil {
		g.detach()
		g.detach = nil
	}
}

func (g *Glow) Position() vmath.Vec { return g.pos }

func (g *Glow) Visible() bool { return g.visible }
