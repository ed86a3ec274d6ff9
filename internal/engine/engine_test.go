package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/embers/internal/engine"
	"github.com/iburimskiy/embers/internal/preset"
	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/surface/surfacetest"
)

type box struct {
	b surface.Box
}

func (c *box) Layout() surface.Box { return c.b }

func newCampfire(t *testing.T, w, h, screen int) (*engine.Engine, *surfacetest.Recorder, *box) {
	t.Helper()
	rec := surfacetest.New(0, 0)
	c := &box{b: surface.Box{W: w, H: h, Visible: true}}
	opts := preset.Campfire()
	opts.ScreenWidth = screen
	return engine.New(rec, c, opts, rand.New(rand.NewSource(42))), rec, c
}

func TestCampfireThousandTicks(t *testing.T) {
	e, _, _ := newCampfire(t, 1024, 640, 1024)
	require.Equal(t, 80, e.Pool().Len())
	require.Equal(t, 150.0, e.Links().Distance)

	for tick := 0; tick < 1000; tick++ {
		require.NotPanics(t, e.Frame)
		ps := e.Particles()
		require.Len(t, ps, 80)
		for i := range ps {
			require.Greater(t, ps[i].Life, 0.0)
			require.LessOrEqual(t, ps[i].Life, 1.0)
		}
	}
	_, ok := e.Cursor()
	assert.False(t, ok)
	assert.Equal(t, uint64(1000), e.Frames())
}

func TestBreakpointChosenOnceAtConstruction(t *testing.T) {
	e, _, c := newCampfire(t, 500, 400, 500)
	assert.Equal(t, 40, e.Pool().Len())
	assert.Equal(t, 100.0, e.Links().Distance)

	c.b.W = 1400
	e.Resize()
	e.Frame()
	w, _ := e.Size()
	assert.Equal(t, 1400, w)
	assert.Equal(t, 40, e.Pool().Len(), "count is not re-evaluated on resize")
	assert.Equal(t, 100.0, e.Links().Distance)
}

func TestScreenWidthDefaultsToContainer(t *testing.T) {
	e, _, _ := newCampfire(t, 700, 400, 0)
	assert.Equal(t, 40, e.Pool().Len())
}

func TestFrameDrawOrder(t *testing.T) {
	e, rec, _ := newCampfire(t, 1024, 640, 1024)
	e.Frame()

	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, "clear", rec.Ops[0].Name)
	assert.Equal(t, "strokepath", rec.Ops[1].Name, "stand first")
	assert.Equal(t, "gradient", rec.Ops[2].Name, "then its glow")
	assert.Equal(t, 80, rec.Count("circle"))

	lastCircle, firstLine := -1, len(rec.Ops)
	for i, op := range rec.Ops {
		switch op.Name {
		case "circle":
			lastCircle = i
		case "line":
			if i < firstLine {
				firstLine = i
			}
		}
	}
	assert.Less(t, lastCircle, firstLine, "links are drawn after every particle")
}

func TestNoBackgroundWithoutStand(t *testing.T) {
	rec := surfacetest.New(0, 0)
	c := &box{b: surface.Box{W: 800, H: 600, Visible: true}}
	e := engine.New(rec, c, preset.Connections(), rand.New(rand.NewSource(1)))
	e.Frame()
	assert.Zero(t, rec.Count("strokepath"))
	assert.Zero(t, rec.Count("gradient"))
	assert.Equal(t, 100, rec.Count("circle"))
}

func TestPetalsNeverLink(t *testing.T) {
	rec := surfacetest.New(0, 0)
	c := &box{b: surface.Box{W: 800, H: 600, Visible: true}}
	e := engine.New(rec, c, preset.Petals(), rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		e.Frame()
	}
	assert.Zero(t, rec.Count("line"))
	assert.Equal(t, 50*20, rec.Count("fillpath"))
}

func TestAttachAndTeardown(t *testing.T) {
	e, rec, _ := newCampfire(t, 800, 600, 1024)
	var ev surface.Events
	var clock scheduler.PulseClock

	e.Attach(&ev, &clock)
	assert.Equal(t, 1, ev.Len())
	for i := 0; i < 5; i++ {
		clock.Pulse()
	}
	assert.Equal(t, uint64(5), e.Frames())

	e.Teardown()
	e.Teardown()
	assert.True(t, e.TornDown())
	assert.Zero(t, ev.Len(), "listeners detached")
	assert.Zero(t, clock.Pending(), "no frame held against the clock")

	ops := len(rec.Ops)
	clock.Pulse()
	e.Frame()
	e.PointerMove(10, 10)
	e.Resize()
	assert.Equal(t, ops, len(rec.Ops), "torn down engine draws nothing")
	assert.Equal(t, uint64(5), e.Frames())
	_, ok := e.Cursor()
	assert.False(t, ok)
}

func TestCursorAbsenceAcrossFrames(t *testing.T) {
	e, _, c := newCampfire(t, 800, 600, 1024)
	c.b.X, c.b.Y = 100, 100
	var ev surface.Events
	var clock scheduler.PulseClock
	e.Attach(&ev, &clock)

	ev.EmitMove(300, 300)
	pos, ok := e.Cursor()
	require.True(t, ok)
	assert.Equal(t, 200.0, pos.X)

	ev.EmitLeave()
	for i := 0; i < 50; i++ {
		clock.Pulse()
		_, ok = e.Cursor()
		require.False(t, ok)
	}

	ev.EmitMove(300, 300)
	ev.EmitMove(5000, 5000)
	_, ok = e.Cursor()
	assert.False(t, ok, "outside the container")
}

func TestResizeSignalSkipsHiddenContainer(t *testing.T) {
	e, rec, c := newCampfire(t, 800, 600, 1024)
	var ev surface.Events
	var clock scheduler.PulseClock
	e.Attach(&ev, &clock)

	c.b.Visible = false
	c.b.W, c.b.H = 0, 0
	ev.EmitResize()
	w, h := e.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 800, rec.W)

	clock.Pulse()
	assert.Equal(t, uint64(1), e.Frames(), "keeps animating at the old size")
}

func TestInstancesAreIndependent(t *testing.T) {
	var ev surface.Events
	var clock scheduler.PulseClock

	a, recA, _ := newCampfire(t, 800, 600, 1024)
	rec := surfacetest.New(0, 0)
	b := engine.New(rec, &box{b: surface.Box{W: 800, H: 600, Visible: true}}, preset.Connections(), rand.New(rand.NewSource(7)))
	a.Attach(&ev, &clock)
	b.Attach(&ev, &clock)

	clock.Pulse()
	a.Teardown()
	clock.Pulse()
	clock.Pulse()

	assert.Equal(t, uint64(1), a.Frames())
	assert.Equal(t, uint64(3), b.Frames())
	assert.Equal(t, 1, ev.Len())
	assert.Equal(t, 1, recA.Count("clear"))
	assert.Equal(t, 3, rec.Count("clear"))
}

func TestFlickerBrightensGlow(t *testing.T) {
	glowAlpha := func(level float64) uint8 {
		rec := surfacetest.New(0, 0)
		opts := preset.Campfire()
		opts.ScreenWidth = 1024
		opts.Flicker = func() float64 { return level }
		e := engine.New(rec, &box{b: surface.Box{W: 800, H: 600, Visible: true}}, opts, rand.New(rand.NewSource(3)))
		e.Frame()
		g := rec.Named("gradient")[0].Grad
		return g.Stops[0].Color.A
	}
	assert.Less(t, glowAlpha(0), glowAlpha(1))
}

func TestZeroSizedSurfaceSkipsFrames(t *testing.T) {
	rec := surfacetest.New(0, 0)
	c := &box{b: surface.Box{Visible: false}}
	e := engine.New(rec, c, preset.Campfire(), rand.New(rand.NewSource(9)))
	e.Frame()
	assert.Empty(t, rec.Ops)

	c.b = surface.Box{W: 400, H: 300, Visible: true}
	e.Resize()
	e.Frame()
	assert.Equal(t, 1, rec.Count("clear"))
}

func TestHiddenAtConstructionStartsInFlightWhenShown(t *testing.T) {
	rec := surfacetest.New(0, 0)
	c := &box{}
	e := engine.New(rec, c, preset.Embers(), rand.New(rand.NewSource(9)))
	for _, p := range e.Particles() {
		require.Zero(t, p.Pos.X)
		require.Zero(t, p.Pos.Y)
	}

	c.b = surface.Box{W: 320, H: 600, Visible: true}
	e.Resize()
	e.Frame()

	ps := e.Particles()
	var left, right, top, bottom int
	for _, p := range ps {
		if p.Pos.X < 160 {
			left++
		} else {
			right++
		}
		if p.Pos.Y < 300 {
			top++
		} else {
			bottom++
		}
	}
	assert.Positive(t, left)
	assert.Positive(t, right)
	assert.Positive(t, top)
	assert.Positive(t, bottom)
	assert.Less(t, rec.Count("line"), len(ps)*len(ps)/4, "no pile-up of links in one corner")

	// Lives are staggered, so the pool does not respawn in one wave.
	respawned := map[int]int{}
	prev := make([]float64, len(ps))
	for i := range ps {
		prev[i] = ps[i].Life
	}
	for tick := 1; tick <= 30; tick++ {
		e.Frame()
		for i, p := range e.Particles() {
			if p.Life > prev[i] {
				respawned[tick]++
			}
			prev[i] = p.Life
		}
	}
	for tick, n := range respawned {
		assert.Less(t, n, len(ps)/2, "tick %d respawned %d particles at once", tick, n)
	}
}
