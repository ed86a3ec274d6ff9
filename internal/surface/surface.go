// Package surface describes the drawing surface an engine renders onto and
// the viewport adapter that tracks its size and the pointer over it.
//
// Backends live in subpackages: ebitensurface draws into an offscreen
// *ebiten.Image, termsurface rasterises into terminal cells and
// canvassurface forwards to an HTML5-style tfriedel6/canvas context.
package surface

import "image/color"

// Surface is an immediate-mode 2D drawing target. Coordinates are logical
// pixels, transformed by the current Save/Translate/Rotate/Restore scope.
type Surface interface {
	// Size returns the backing pixel dimensions.
	Size() (w, h int)
	// SetSize reallocates the backing store. Contents are undefined after.
	SetSize(w, h int)
	Clear()

	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	FillPath(p *Path, c color.Color)
	StrokePath(p *Path, width float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	FillGradient(x, y, w, h float64, g *Gradient)

	Save()
	Translate(x, y float64)
	Rotate(angle float64)
	Restore()
}
