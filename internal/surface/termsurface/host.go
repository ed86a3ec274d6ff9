package termsurface

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
)

// FrameInterval is the host refresh tick, about 60 FPS.
const FrameInterval = 16 * time.Millisecond

// Host owns a tcell screen and turns its events into surface signals and
// its refresh ticker into clock pulses. Everything runs on the Run
// goroutine.
type Host struct {
	Screen  tcell.Screen
	Surface *Surface
	Events  surface.Events
	Clock   scheduler.PulseClock

	Background color.NRGBA
	// Status, when set, is printed on the bottom row after every frame.
	Status func() string
	// Overlay runs after the clock pulse and before Present, for drawing
	// that is not driven by the clock.
	Overlay func(now time.Time)

	buttons tcell.ButtonMask
}

// NewHost sizes a surface to the whole screen.
func NewHost(screen tcell.Screen, scale float64) *Host {
	h := &Host{Screen: screen, Surface: New(0, 0, scale)}
	h.Surface.SetSize(h.Layout().W, h.Layout().H)
	return h
}

// Layout reports the screen as a container box in logical pixels.
func (h *Host) Layout() surface.Box {
	cols, rows := h.Screen.Size()
	sc := h.Surface.Scale()
	return surface.Box{
		W:       int(float64(cols) * sc),
		H:       int(float64(rows*2) * sc),
		Visible: cols > 0 && rows > 0,
	}
}

// Logical maps a cell to the logical pixel at its centre.
func (h *Host) Logical(x, y int) (float64, float64) {
	sc := h.Surface.Scale()
	return (float64(x) + 0.5) * sc, (float64(y)*2 + 1) * sc
}

// Handle dispatches one tcell event. It returns false when the user asked
// to quit.
func (h *Host) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		h.Screen.Sync()
		h.Events.EmitResize()
	case *tcell.EventMouse:
		x, y := ev.Position()
		lx, ly := h.Logical(x, y)
		h.Events.EmitMove(lx, ly)
		btn := ev.Buttons()
		if btn&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0 {
			h.Events.EmitClick(lx, ly)
		}
		h.buttons = btn
	case *tcell.EventFocus:
		if !ev.Focused {
			h.Events.EmitLeave()
		}
	}
	return true
}

// Frame pulses the clock, runs the overlay and presents the surface.
func (h *Host) Frame(now time.Time) {
	h.Clock.Pulse()
	if h.Overlay != nil {
		h.Overlay(now)
	}
	h.Screen.Clear()
	h.Surface.Present(h.Screen, 0, 0, h.Background)
	if h.Status != nil {
		_, rows := h.Screen.Size()
		h.print(1, rows-1, h.Status())
	}
	h.Screen.Show()
}

func (h *Host) print(x, y int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(rgb(h.Background))
	for i, r := range []rune(s) {
		h.Screen.SetContent(x+i, y, r, nil, style)
	}
}

// Run polls events and ticks frames until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.Screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !h.Handle(ev) {
				return
			}
		case now := <-ticker.C:
			h.Frame(now)
		}
	}
}
