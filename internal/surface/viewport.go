package surface

import "github.com/iburimskiy/embers/internal/vmath"

// Box is a container's layout in global (page/window) coordinates.
type Box struct {
	X, Y, W, H int
	// Visible is false while the container is hidden or not laid out.
	Visible bool
}

// Contains reports whether global point (x, y) lies inside b, edges
// included.
func (b Box) Contains(x, y float64) bool {
	return x >= float64(b.X) && x <= float64(b.X+b.W) &&
		y >= float64(b.Y) && y <= float64(b.Y+b.H)
}

// Container is the host element a surface is laid out in.
type Container interface {
	Layout() Box
}

// ContainerFunc adapts a plain function to Container.
type ContainerFunc func() Box

func (f ContainerFunc) Layout() Box { return f() }

// Viewport owns a surface's pixel dimensions and the pointer position over
// it. It is not safe for concurrent use; hosts call it from their frame
// goroutine.
type Viewport struct {
	surface   Surface
	container Container

	w, h int

	cursor    vmath.Vec
	hasCursor bool
}

// NewViewport binds s to c and performs the first resize.
func NewViewport(s Surface, c Container) *Viewport {
	v := &Viewport{surface: s, container: c}
	v.w, v.h = s.Size()
	v.Resize()
	return v
}

// Resize copies the container's box size onto the surface. A hidden or
// empty container is skipped and the previous dimensions are kept. It
// reports whether the surface was resized.
func (v *Viewport) Resize() bool {
	b := v.container.Layout()
	if !b.Visible || b.W <= 0 || b.H <= 0 {
		return false
	}
	if b.W == v.w && b.H == v.h {
		return false
	}
	v.w, v.h = b.W, b.H
	v.surface.SetSize(b.W, b.H)
	return true
}

// Size returns the dimensions last applied to the surface.
func (v *Viewport) Size() (w, h int) { return v.w, v.h }

// PointerMove records a global pointer position. Positions outside the
// container, or any position while it is hidden, clear the cursor.
func (v *Viewport) PointerMove(gx, gy float64) {
	b := v.container.Layout()
	if !b.Visible || !b.Contains(gx, gy) {
		v.PointerLeave()
		return
	}
	v.cursor = vmath.Vec{X: gx - float64(b.X), Y: gy - float64(b.Y)}
	v.hasCursor = true
}

// PointerLeave clears the cursor.
func (v *Viewport) PointerLeave() {
	v.cursor = vmath.Vec{}
	v.hasCursor = false
}

// Cursor returns the pointer in surface-local coordinates, if present.
func (v *Viewport) Cursor() (vmath.Vec, bool) { return v.cursor, v.hasCursor }

// Surface returns the bound surface.
func (v *Viewport) Surface() Surface { return v.surface }

// Container returns the bound container.
func (v *Viewport) Container() Container { return v.container }
