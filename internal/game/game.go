// Package game composes the effect layers into one ebiten window: the
// configured engines each on their own offscreen surface, a menu panel, the
// cursor glow and click bursts, a countdown line and the soundtrack button.
package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/embers/internal/ambience"
	"github.com/iburimskiy/embers/internal/burst"
	"github.com/iburimskiy/embers/internal/config"
	"github.com/iburimskiy/embers/internal/engine"
	"github.com/iburimskiy/embers/internal/glow"
	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/surface/ebitensurface"
)

var backgroundColor = color.RGBA{R: 14, G: 11, B: 16, A: 255}

// layer is one engine drawing into its own image, composited at its box.
type layer struct {
	name   string
	box    func() surface.Box
	surf   *ebitensurface.Surface
	engine *engine.Engine
}

func (l *layer) Layout() surface.Box { return l.box() }

type Game struct {
	cfg  *config.Wrapper
	seed int64
	rng  *rand.Rand

	w, h    int
	resized bool

	clock  scheduler.PulseClock
	events surface.Events

	layers   []*layer
	menu     *layer
	menuOpen bool

	overlay     *ebitensurface.Surface
	glow        *glow.Glow
	bursts      *burst.Burster
	detachClick func()

	player *ambience.Player
	target time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool
	ptr     pointer

	// button state
	buttonHovered bool
	buttonPressed bool

	lastErr error
}

// New builds every layer named by the config. Audio failures are logged and
// shown in the status line; the page runs silently instead.
func New(cfg *config.Wrapper) (*Game, error) {
	seed := cfg.Page.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	target, err := cfg.Page.Target()
	if err != nil {
		return nil, fmt.Errorf("countdown: %w", err)
	}
	g := &Game{
		cfg:     cfg,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		w:       cfg.Page.Width,
		h:       cfg.Page.Height,
		target:  target,
		prevKey: map[ebiten.Key]bool{},
	}

	if cfg.Audio.Enabled {
		if err := g.startAudio(cfg.Audio); err != nil {
			log.Printf("game: audio disabled: %v", err)
			g.lastErr = err
		}
	}

	for i, name := range cfg.Page.Layers() {
		l, err := g.newLayer(name, int64(i))
		if err != nil {
			g.Close()
			return nil, err
		}
		g.layers = append(g.layers, l)
	}
	if cfg.Page.Menu != "" {
		l, err := g.newLayer(cfg.Page.Menu, int64(len(g.layers)))
		if err != nil {
			g.Close()
			return nil, err
		}
		l.box = func() surface.Box { return menuBox(g.w, g.h, g.menuOpen) }
		g.menu = l
	}

	g.overlay = ebitensurface.New(g.w, g.h)
	if cfg.Page.Glow {
		g.glow = glow.New(glow.Options{Spring: cfg.Page.GlowSpring, FPS: ebiten.DefaultTPS})
		g.glow.Attach(g.overlay, &g.events, &g.clock)
	}
	if cfg.Page.Bursts {
		g.bursts = burst.New(burst.Options{OnTrigger: g.tick}, rand.New(rand.NewSource(seed^0x5eed)))
		g.detachClick = g.events.Attach(surface.Handlers{
			Click: func(x, y float64) { g.bursts.Trigger(x, y) },
		})
	}
	return g, nil
}

// newLayer resolves name through the config and starts its engine. Layers
// with a stand sit in the campfire panel, the rest fill the window.
func (g *Game) newLayer(name string, n int64) (*layer, error) {
	opts, err := g.cfg.Options(name)
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", name, err)
	}
	opts.ScreenWidth = g.w
	l := &layer{name: name, box: func() surface.Box { return fullBox(g.w, g.h) }}
	if opts.Background {
		l.box = func() surface.Box { return standBox(g.w, g.h) }
		opts.Flicker = g.flicker
	}
	l.surf = ebitensurface.New(0, 0)
	l.engine = engine.New(l.surf, l, opts, rand.New(rand.NewSource(g.seed+n+1)))
	l.engine.Attach(&g.events, &g.clock)
	return l, nil
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if g.resized {
		g.resized = false
		g.overlay.SetSize(g.w, g.h)
		g.events.EmitResize()
	}

	mouseX, mouseY := ebiten.CursorPosition()
	moved, left := g.ptr.update(mouseX, mouseY, ebiten.IsFocused(), g.w, g.h)
	if moved {
		g.events.EmitMove(float64(mouseX), float64(mouseY))
	}
	if left {
		g.events.EmitLeave()
	}

	g.buttonHovered = buttonBox().Contains(float64(mouseX), float64(mouseY))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.buttonHovered {
			g.buttonPressed = true
		} else {
			g.events.EmitClick(float64(mouseX), float64(mouseY))
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			if err := g.openSoundtrackDialog(); err != nil {
				g.lastErr = err
			}
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyM) {
		g.toggleMenu()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.overlay.Clear()
	g.clock.Pulse()
	if g.bursts != nil {
		g.bursts.Draw(g.overlay, time.Now())
	}
	return nil
}

func (g *Game) toggleMenu() {
	if g.menu == nil {
		return
	}
	g.menuOpen = !g.menuOpen
	g.events.EmitResize()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, l := range g.layers {
		g.drawLayer(screen, l)
	}
	if g.menuOpen && g.menu != nil {
		g.drawPanel(screen, g.menu.Layout())
		g.drawLayer(screen, g.menu)
	}
	if img := g.overlay.Image(); img != nil {
		screen.DrawImage(img, nil)
	}

	g.drawButton(screen)
	g.drawCountdown(screen, time.Now())
	g.drawStatus(screen)
}

func (g *Game) drawLayer(screen *ebiten.Image, l *layer) {
	box := l.Layout()
	img := l.surf.Image()
	if img == nil || !box.Visible {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(box.X), float64(box.Y))
	screen.DrawImage(img, op)
}

// Layout follows the window so the layers resize with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.resized = true
	}
	return g.w, g.h
}

// Close tears every engine down and releases the speaker.
func (g *Game) Close() {
	for _, l := range g.layers {
		l.engine.Teardown()
	}
	if g.menu != nil {
		g.menu.engine.Teardown()
	}
	if g.glow != nil {
		g.glow.Teardown()
	}
	if g.detachClick != nil {
		g.detachClick()
	}
	if g.bursts != nil {
		g.bursts.Close()
	}
	if g.player != nil {
		if err := g.player.Close(); err != nil {
			log.Printf("game: close audio: %v", err)
		}
		g.player = nil
	}
}
