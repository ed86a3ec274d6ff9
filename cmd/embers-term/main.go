// Command embers-term runs one effect in the terminal, drawn with half-block
// cells. Mouse motion steers the particles and the glow, clicks burst.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/embers/internal/burst"
	"github.com/iburimskiy/embers/internal/config"
	"github.com/iburimskiy/embers/internal/countdown"
	"github.com/iburimskiy/embers/internal/engine"
	"github.com/iburimskiy/embers/internal/glow"
	"github.com/iburimskiy/embers/internal/logging"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/surface/termsurface"
)

var (
	configFlag = flag.String("config", "", "Path to a gcfg page configuration file.")
	effectFlag = flag.String("effect", "embers", "Effect section or preset to run.")
	scaleFlag  = flag.Float64("scale", termsurface.DefaultScale, "Logical pixels per terminal column.")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logging.Dir+"/"+logging.FileName+".")
)

// app is everything attached to one host.
type app struct {
	host   *termsurface.Host
	engine *engine.Engine
	glow   *glow.Glow
	bursts *burst.Burster
	target time.Time
}

// newApp builds the effect named by effect on h. The screen's width picks
// the breakpoint the way a browser window would.
func newApp(h *termsurface.Host, cfg *config.Wrapper, effect string) (*app, error) {
	opts, err := cfg.Options(effect)
	if err != nil {
		return nil, err
	}
	target, err := cfg.Page.Target()
	if err != nil {
		return nil, err
	}
	seed := cfg.Page.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &app{host: h, target: target}
	a.engine = engine.New(h.Surface, h, opts, rand.New(rand.NewSource(seed)))
	a.engine.Attach(&h.Events, &h.Clock)

	if cfg.Page.Glow {
		a.glow = glow.New(glow.Options{
			Radius: 3 * h.Surface.Scale(),
			Spring: cfg.Page.GlowSpring,
			FPS:    int(time.Second / termsurface.FrameInterval),
		})
		a.glow.Attach(h.Surface, &h.Events, &h.Clock)
	}
	if cfg.Page.Bursts {
		a.bursts = burst.New(burst.Options{
			MinTravel: 2 * h.Surface.Scale(),
			MaxTravel: 6 * h.Surface.Scale(),
			Size:      h.Surface.Scale(),
		}, rand.New(rand.NewSource(seed+1)))
		h.Events.Attach(surface.Handlers{Click: func(x, y float64) { a.bursts.Trigger(x, y) }})
		h.Overlay = func(now time.Time) { a.bursts.Draw(h.Surface, now) }
	}
	h.Status = a.status
	return a, nil
}

func (a *app) status() string {
	s := a.engine.Name() + " | q: quit"
	if !a.target.IsZero() {
		s = countdown.Format(time.Now(), a.target) + " | " + s
	}
	return s
}

func (a *app) close() {
	a.engine.Teardown()
	if a.glow != nil {
		a.glow.Teardown()
	}
	if a.bursts != nil {
		a.bursts.Close()
	}
}

func main() {
	flag.Parse()

	if f := logging.Setup(logging.Dir, *debugFlag); f != nil {
		defer f.Close()
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "embers-term: %v\n", err)
			os.Exit(1)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "embers-term: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "embers-term: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mEMBERS CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	h := termsurface.NewHost(screen, *scaleFlag)
	a, err := newApp(h, cfg, *effectFlag)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "embers-term: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("embers-term: running %s", *effectFlag)
	h.Run(ctx)

	a.close()
	screen.Fini()
}
