package surface

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/embers/internal/vmath"
)

func TestAffineTranslateRotate(t *testing.T) {
	m := Identity().Translate(10, 20).Rotate(math.Pi / 2)
	got := m.Apply(vmath.Vec{X: 1, Y: 0})
	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, 21, got.Y, 1e-9)
}

func TestAffineInvert(t *testing.T) {
	m := Identity().Translate(10, -4).Rotate(0.7).Translate(3, 3)
	inv := m.Invert()
	for _, p := range []vmath.Vec{{X: 0, Y: 0}, {X: 5, Y: -2}, {X: 100, Y: 40}} {
		got := inv.Apply(m.Apply(p))
		assert.InDelta(t, p.X, got.X, 1e-9)
		assert.InDelta(t, p.Y, got.Y, 1e-9)
	}
	assert.Equal(t, Identity(), Affine{}.Invert())
}

func TestTransformStackRestore(t *testing.T) {
	var ts TransformStack
	ts.Save()
	ts.Translate(5, 5)
	ts.Rotate(1)
	ts.Restore()
	assert.Equal(t, Identity(), ts.Current())

	ts.Restore()
	assert.Equal(t, Identity(), ts.Current(), "unbalanced restore")
}

func TestPathFlattenClosesSubpath(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()

	polys := p.Flatten(Identity(), 4)
	require.Len(t, polys, 1)
	poly := polys[0]
	assert.Equal(t, vmath.Vec{}, poly[0])
	assert.Equal(t, vmath.Vec{}, poly[len(poly)-1])
}

func TestPathFlattenCubicEndpoints(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.CubicTo(5, -5, 10, 5, 0, 10)

	polys := p.Flatten(Identity().Translate(100, 0), 8)
	require.Len(t, polys, 1)
	assert.Len(t, polys[0], 9)
	assert.Equal(t, vmath.Vec{X: 100, Y: 0}, polys[0][0])
	assert.InDelta(t, 100, polys[0][8].X, 1e-9)
	assert.InDelta(t, 10, polys[0][8].Y, 1e-9)
}

func TestRadialGradientConcentric(t *testing.T) {
	g := NewRadialGradient(50, 50, 0, 50, 50, 100).
		AddStop(0, color.NRGBA{R: 255, G: 100, A: 200}).
		AddStop(1, color.NRGBA{R: 255, G: 100, A: 0})

	assert.Equal(t, uint8(200), g.At(50, 50).A, "centre")
	assert.Equal(t, uint8(100), g.At(100, 50).A, "half way")
	assert.Equal(t, uint8(0), g.At(200, 50).A, "padded past the outer circle")
}

func TestRadialGradientOffsetCircles(t *testing.T) {
	// Same shape as the campfire stand glow.
	g := NewRadialGradient(100, 120, 10, 100, 100, 100).
		AddStop(0, color.NRGBA{R: 255, G: 100, A: 102}).
		AddStop(1, color.NRGBA{R: 255, G: 100})

	inner := g.At(100, 120)
	outer := g.At(100, 10)
	assert.Equal(t, uint8(102), inner.A)
	assert.Less(t, outer.A, inner.A)
}

func TestLinearGradientPads(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddStop(1, color.NRGBA{B: 255, A: 255}).
		AddStop(0, color.NRGBA{R: 255, A: 255})

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, g.At(-5, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, g.At(50, 3))
	mid := g.At(5, 0)
	assert.Equal(t, uint8(255), mid.A)
	assert.NotZero(t, mid.R)
	assert.NotZero(t, mid.B)
}

func TestGradientRasterize(t *testing.T) {
	g := NewLinearGradient(0, 0, 4, 0).
		AddStop(0, color.NRGBA{A: 0}).
		AddStop(1, color.NRGBA{A: 255})
	img := g.Rasterize(0, 0, 4, 2)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Less(t, img.NRGBAAt(0, 0).A, img.NRGBAAt(3, 1).A)
}

func TestEventsDetach(t *testing.T) {
	var ev Events
	moves := 0
	detach := ev.Attach(Handlers{Move: func(x, y float64) { moves++ }})
	ev.Attach(Handlers{Leave: func() {}})

	ev.EmitMove(1, 2)
	detach()
	detach()
	ev.EmitMove(3, 4)
	ev.EmitResize()

	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, ev.Len())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FFB7C5")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 183, B: 197, A: 255}, c)

	bare, err := ParseColor("ffb7c5")
	require.NoError(t, err)
	assert.Equal(t, c, bare)

	_, err = ParseColor("#zzz")
	assert.Error(t, err)

	_, err = ParsePalette("#000000", "nope")
	assert.Error(t, err)
	assert.Panics(t, func() { MustPalette("nope") })
}
