package glow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/surface/surfacetest"
)

func TestEaseFollow(t *testing.T) {
	g := New(Options{})
	g.PointerMove(100, 200)
	g.Step()
	assert.InDelta(t, 15, g.Position().X, 1e-9)
	assert.InDelta(t, 30, g.Position().Y, 1e-9)

	g.Step()
	assert.InDelta(t, 15+85*0.15, g.Position().X, 1e-9)

	for i := 0; i < 200; i++ {
		g.Step()
	}
	assert.InDelta(t, 100, g.Position().X, 1e-6)
	assert.InDelta(t, 200, g.Position().Y, 1e-6)
}

func TestSpringFollowSettles(t *testing.T) {
	g := New(Options{Spring: true, FPS: 60, Frequency: 6, Damping: 1})
	g.PointerMove(300, -50)
	for i := 0; i < 600; i++ {
		g.Step()
	}
	assert.InDelta(t, 300, g.Position().X, 0.5)
	assert.InDelta(t, -50, g.Position().Y, 0.5)
}

func TestHiddenOnLeave(t *testing.T) {
	rec := surfacetest.New(800, 600)
	g := New(Options{})

	g.Draw(rec)
	assert.Empty(t, rec.Ops, "hidden until the pointer moves")

	g.PointerMove(40, 40)
	g.Step()
	g.Draw(rec)
	require.Equal(t, 1, rec.Count("gradient"))
	op := rec.Named("gradient")[0]
	assert.Equal(t, surface.Radial, op.Grad.Kind)
	assert.Equal(t, 40.0, op.Args[2])

	g.PointerLeave()
	pos := g.Position()
	g.Step()
	g.Draw(rec)
	assert.Equal(t, 1, rec.Count("gradient"))
	assert.False(t, g.Visible())
	assert.NotEqual(t, pos, g.Position(), "keeps easing while hidden")
}

func TestAttachTeardown(t *testing.T) {
	rec := surfacetest.New(800, 600)
	var ev surface.Events
	var clock scheduler.PulseClock
	g := New(Options{})
	g.Attach(rec, &ev, &clock)

	ev.EmitMove(10, 20)
	clock.Pulse()
	clock.Pulse()
	assert.Equal(t, 2, rec.Count("gradient"))

	g.Teardown()
	assert.Zero(t, ev.Len())
	assert.Zero(t, clock.Pending())

	before := g.Position()
	ev.EmitMove(500, 500)
	g.Step()
	assert.Equal(t, before, g.Position())
	assert.False(t, math.IsNaN(before.X))
}
