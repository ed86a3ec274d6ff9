package game

import (
	"github.com/iburimskiy/embers/internal/config"
	"github.com/iburimskiy/embers/internal/surface"
)

const (
	standWidth  = 480
	standHeight = 300
	standMargin = 24
)

// fullBox covers the whole window.
func fullBox(w, h int) surface.Box {
	return surface.Box{W: w, H: h, Visible: w > 0 && h > 0}
}

// standBox is the campfire panel: centred horizontally, resting on the
// bottom edge, shrunk to fit narrow windows.
func standBox(w, h int) surface.Box {
	bw := min(standWidth, w-2*standMargin)
	bh := min(standHeight, h-2*standMargin)
	if bw <= 0 || bh <= 0 {
		return surface.Box{}
	}
	return surface.Box{
		X:       (w - bw) / 2,
		Y:       h - bh - standMargin,
		W:       bw,
		H:       bh,
		Visible: true,
	}
}

// menuBox is the side panel on the right. It is hidden unless open.
func menuBox(w, h int, open bool) surface.Box {
	bw := min(config.PanelWidth, w-2*config.PanelMargin)
	bh := h - 2*config.PanelMargin
	if !open || bw <= 0 || bh <= 0 {
		return surface.Box{}
	}
	return surface.Box{
		X:       w - bw - config.PanelMargin,
		Y:       config.PanelMargin,
		W:       bw,
		H:       bh,
		Visible: true,
	}
}

func buttonBox() surface.Box {
	return surface.Box{
		X:       config.ButtonX,
		Y:       config.ButtonY,
		W:       config.ButtonWidth,
		H:       config.ButtonHeight,
		Visible: true,
	}
}

// pointer turns polled cursor positions into move and leave edges. ebiten
// reports a position even when the cursor is outside the window, so
// presence is decided by focus and bounds.
type pointer struct {
	inside bool
	x, y   int
}

// update returns whether a move should be emitted and whether the pointer
// just left.
func (p *pointer) update(x, y int, focused bool, w, h int) (moved, left bool) {
	inside := focused && x >= 0 && y >= 0 && x < w && y < h
	switch {
	case inside && (!p.inside || x != p.x || y != p.y):
		moved = true
	case !inside && p.inside:
		left = true
	}
	p.inside, p.x, p.y = inside, x, y
	return moved, left
}
