package surface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/surface/surfacetest"
	"github.com/iburimskiy/embers/internal/vmath"
)

type fakeContainer struct {
	box surface.Box
}

func (c *fakeContainer) Layout() surface.Box { return c.box }

func TestViewportResizeFollowsContainer(t *testing.T) {
	rec := surfacetest.New(0, 0)
	c := &fakeContainer{box: surface.Box{W: 640, H: 480, Visible: true}}
	v := surface.NewViewport(rec, c)

	w, h := v.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 640, rec.W)
	assert.Equal(t, 1, rec.Resets)

	c.box.W, c.box.H = 800, 600
	assert.True(t, v.Resize())
	assert.Equal(t, 800, rec.W)
	assert.Equal(t, 600, rec.H)

	assert.False(t, v.Resize(), "unchanged box does not reallocate")
	assert.Equal(t, 2, rec.Resets)
}

func TestViewportResizeSkipsHiddenContainer(t *testing.T) {
	rec := surfacetest.New(0, 0)
	c := &fakeContainer{box: surface.Box{W: 300, H: 200, Visible: true}}
	v := surface.NewViewport(rec, c)

	c.box = surface.Box{Visible: false}
	assert.False(t, v.Resize())
	w, h := v.Size()
	assert.Equal(t, 300, w, "keeps previous width")
	assert.Equal(t, 200, h, "keeps previous height")

	c.box = surface.Box{W: 0, H: 0, Visible: true}
	assert.False(t, v.Resize(), "empty box is not laid out")
	assert.Equal(t, 300, rec.W)
}

func TestViewportPointerLocalCoordinates(t *testing.T) {
	c := &fakeContainer{box: surface.Box{X: 100, Y: 50, W: 200, H: 100, Visible: true}}
	v := surface.NewViewport(surfacetest.New(0, 0), c)

	v.PointerMove(150, 75)
	pos, ok := v.Cursor()
	require.True(t, ok)
	assert.Equal(t, vmath.Vec{X: 50, Y: 25}, pos)

	v.PointerMove(300, 150)
	pos, ok = v.Cursor()
	require.True(t, ok, "edges are inside")
	assert.Equal(t, vmath.Vec{X: 200, Y: 100}, pos)
}

func TestViewportPointerOutsideClearsCursor(t *testing.T) {
	c := &fakeContainer{box: surface.Box{X: 100, Y: 50, W: 200, H: 100, Visible: true}}
	v := surface.NewViewport(surfacetest.New(0, 0), c)

	v.PointerMove(150, 75)
	v.PointerMove(99, 75)
	_, ok := v.Cursor()
	assert.False(t, ok)

	v.PointerMove(150, 75)
	c.box.Visible = false
	v.PointerMove(150, 75)
	_, ok = v.Cursor()
	assert.False(t, ok, "hidden container has no cursor")
}

func TestViewportCursorAbsenceIsSticky(t *testing.T) {
	c := &fakeContainer{box: surface.Box{W: 200, H: 100, Visible: true}}
	v := surface.NewViewport(surfacetest.New(0, 0), c)

	v.PointerMove(10, 10)
	v.PointerLeave()
	for i := 0; i < 100; i++ {
		v.Resize()
		pos, ok := v.Cursor()
		assert.False(t, ok)
		assert.Equal(t, vmath.Vec{}, pos)
	}
}
