// Command embers-sdl runs one effect in an SDL window through the
// HTML5-style canvas API.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/tfriedel6/canvas/sdlcanvas"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/iburimskiy/embers/internal/burst"
	"github.com/iburimskiy/embers/internal/config"
	"github.com/iburimskiy/embers/internal/engine"
	"github.com/iburimskiy/embers/internal/glow"
	"github.com/iburimskiy/embers/internal/logging"
	"github.com/iburimskiy/embers/internal/scheduler"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/surface/canvassurface"
)

const mouseLeft = 1

var (
	configFlag = flag.String("config", "", "Path to a gcfg page configuration file.")
	effectFlag = flag.String("effect", "campfire", "Effect section or preset to run.")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logging.Dir+"/"+logging.FileName+".")
)

func main() {
	flag.Parse()

	if f := logging.Setup(logging.Dir, *debugFlag); f != nil {
		defer f.Close()
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "embers-sdl: %v\n", err)
			os.Exit(1)
		}
	}
	opts, err := cfg.Options(*effectFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "embers-sdl: %v\n", err)
		os.Exit(1)
	}
	seed := cfg.Page.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	wnd, cv, err := sdlcanvas.CreateWindow(cfg.Page.Width, cfg.Page.Height, cfg.Page.Title)
	if err != nil {
		panic(err)
	}
	defer wnd.Destroy()

	var (
		clock  scheduler.PulseClock
		events surface.Events
	)
	surf := canvassurface.New(cv)
	window := surface.ContainerFunc(func() surface.Box {
		return surface.Box{W: cv.Width(), H: cv.Height(), Visible: true}
	})

	eng := engine.New(surf, window, opts, rand.New(rand.NewSource(seed)))
	eng.Attach(&events, &clock)
	defer eng.Teardown()

	if cfg.Page.Glow {
		g := glow.New(glow.Options{Spring: cfg.Page.GlowSpring, FPS: 60})
		g.Attach(surf, &events, &clock)
		defer g.Teardown()
	}
	var bursts *burst.Burster
	if cfg.Page.Bursts {
		bursts = burst.New(burst.Options{}, rand.New(rand.NewSource(seed+1)))
		defer bursts.Close()
		events.Attach(surface.Handlers{Click: func(x, y float64) { bursts.Trigger(x, y) }})
	}

	wnd.MouseMove = func(x, y int) { events.EmitMove(float64(x), float64(y)) }
	wnd.MouseDown = func(button, x, y int) {
		if button == mouseLeft {
			events.EmitClick(float64(x), float64(y))
		}
	}
	wnd.KeyDown = func(scancode int, rn rune, name string) {
		if name == "Escape" || rn == 'q' {
			wnd.Close()
		}
	}
	wnd.Event = func(e sdl.Event) {
		if we, ok := e.(*sdl.WindowEvent); ok && we.Event == sdl.WINDOWEVENT_LEAVE {
			events.EmitLeave()
		}
	}

	log.Printf("embers-sdl: running %s", *effectFlag)
	w, h := cv.Width(), cv.Height()
	wnd.MainLoop(func() {
		if cv.Width() != w || cv.Height() != h {
			w, h = cv.Width(), cv.Height()
			events.EmitResize()
		}
		clock.Pulse()
		if bursts != nil {
			bursts.Draw(surf, time.Now())
		}
	})
}
