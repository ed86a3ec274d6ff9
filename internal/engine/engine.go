// Package engine runs one particle effect on one surface: it owns the
// viewport, the particle pool and the frame loop, and nothing is shared
// between instances.
package engine

import (
	"log"
	"math/rand"

	"github.com/iburimskiy/embers/internal/link"
	"github.com/iburimskiy/embers/internal/particle"
	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

// DefaultBreakpoint is the screen width below which compact counts apply.
const DefaultBreakpoint = 768

// Options configures one engine instance.
type Options struct {
	// Name labels log lines.
	Name string

	Style particle.Style

	// Count and LinkDistance apply at or above the breakpoint, the Compact
	// variants below it.
	Count               int
	CompactCount        int
	LinkDistance        float64
	CompactLinkDistance float64
	Breakpoint          int
	// ScreenWidth is the global viewport width the breakpoint is tested
	// against. Zero uses the container width.
	ScreenWidth int

	// Links styles the proximity lines. Its Distance is replaced by the
	// breakpoint choice above.
	Links link.Renderer

	// Background draws the campfire stand under the particles.
	Background bool
	// Flicker, when set, returns a level in [0, 1] that brightens the
	// stand glow.
	Flicker func() float64
}

// Compact reports whether a screen of the given width uses the compact
// counts.
func (o *Options) Compact(width int) bool {
	bp := o.Breakpoint
	if bp <= 0 {
		bp = DefaultBreakpoint
	}
	return width < bp
}

// Engine is one independent simulate-and-render loop bound to one surface.
// All methods must be called from the host's frame goroutine.
type Engine struct {
	name     string
	viewport *surface.Viewport
	pool     *particle.Pool
	links    link.Renderer
	opts     Options

	loop   *scheduler.Loop
	detach func()
	torn   bool

	stand  surface.Path
	frames uint64

	// laidOut is false while the pool has only seen an empty field.
	laidOut bool
}

// New lays the surface out in its container and fills the particle pool.
// The count and link distance are fixed here from the breakpoint and are
// not revisited on resize.
func New(s surface.Surface, c surface.Container, opts Options, rng *rand.Rand) *Engine {
	v := surface.NewViewport(s, c)

	screen := opts.ScreenWidth
	if screen <= 0 {
		screen = c.Layout().W
	}
	count, dist := opts.Count, opts.LinkDistance
	if opts.Compact(screen) {
		if opts.CompactCount > 0 {
			count = opts.CompactCount
		}
		if opts.CompactLinkDistance > 0 {
			dist = opts.CompactLinkDistance
		}
	}

	e := &Engine{
		name:     opts.Name,
		viewport: v,
		links:    opts.Links,
		opts:     opts,
	}
	e.links.Distance = dist
	f := e.field()
	e.pool = particle.NewPool(count, opts.Style, f, rng)
	e.laidOut = f.W > 0 && f.H > 0
	return e
}

// Attach subscribes the engine to host signals and starts its frame loop.
func (e *Engine) Attach(ev *surface.Events, clock scheduler.Clock) {
	if e.torn || e.loop != nil {
		return
	}
	e.detach = ev.Attach(surface.Handlers{
		Resize: e.Resize,
		Move:   e.PointerMove,
		Leave:  e.PointerLeave,
	})
	e.loop = scheduler.NewLoop(clock, e.Frame)
	e.loop.Start()
	log.Printf("engine %s: attached with %d particles", e.name, e.pool.Len())
}

// Teardown stops the frame loop and detaches from host signals. Every later
// call on the engine is a no-op.
func (e *Engine) Teardown() {
	if e.torn {
		return
	}
	e.torn = true
	if e.loop != nil {
		e.loop.Stop()
	}
	if e.detach != nil {
		e.detach()
		e.detach = nil
	}
	log.Printf("engine %s: torn down after %d frames", e.name, e.frames)
}

// TornDown reports whether Teardown has run.
func (e *Engine) TornDown() bool { return e.torn }

func (e *Engine) Resize() {
	if e.torn {
		return
	}
	if !e.viewport.Resize() {
		return
	}
	w, h := e.viewport.Size()
	log.Printf("engine %s: resized to %dx%d", e.name, w, h)
	if !e.laidOut {
		// Built while hidden: start in flight over the real field.
		e.pool.Refill(e.field())
		e.laidOut = true
	}
}

func (e *Engine) PointerMove(x, y float64) {
	if e.torn {
		return
	}
	e.viewport.PointerMove(x, y)
}

func (e *Engine) PointerLeave() {
	if e.torn {
		return
	}
	e.viewport.PointerLeave()
}

// Frame runs one clear, background, update-and-draw, links pass.
func (e *Engine) Frame() {
	if e.torn {
		return
	}
	s := e.viewport.Surface()
	field := e.field()
	if field.W <= 0 || field.H <= 0 {
		return
	}

	s.Clear()
	if e.opts.Background {
		e.drawStand(s, field)
	}

	cursor, ok := e.viewport.Cursor()
	for i := 0; i < e.pool.Len(); i++ {
		e.pool.Update(i, field, cursor, ok)
		e.pool.Draw(i, s)
	}
	e.pool.Tick()

	e.links.Draw(s, e.pool.Particles())
	e.frames++
}

func (e *Engine) field() particle.Field {
	w, h := e.viewport.Size()
	return particle.Field{W: float64(w), H: float64(h)}
}

func (e *Engine) Particles() []particle.Particle { return e.pool.Particles() }

func (e *Engine) Pool() *particle.Pool { return e.pool }

func (e *Engine) Links() link.Renderer { return e.links }

func (e *Engine) Frames() uint64 { return e.frames }

func (e *Engine) Name() string { return e.name }

// Cursor returns the local pointer position, if the pointer is over the
// surface.
func (e *Engine) Cursor() (vmath.Vec, bool) { return e.viewport.Cursor() }

// Size returns the current surface dimensions.
func (e *Engine) Size() (w, h int) { return e.viewport.Size() }
