package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/embers/internal/config"
	"github.com/iburimskiy/embers/internal/game"
	"github.com/iburimskiy/embers/internal/logging"
)

var (
	configFlag  = flag.String("config", "", "Path to a gcfg page configuration file.")
	pickFlag    = flag.Bool("pick-config", false, "Choose the configuration file in a dialog.")
	exampleFlag = flag.Bool("example-config", false, "Print an example configuration file and exit.")
	debugFlag   = flag.Bool("debug", false, "Write logs to "+logging.Dir+"/"+logging.FileName+".")
)

// loadConfig reads path, or asks for one when pick is set. With neither the
// built-in defaults are used.
func loadConfig(path string, pick bool) (*config.Wrapper, error) {
	if pick {
		chosen, err := zenity.SelectFile(
			zenity.Title("Open Page Configuration"),
			zenity.FileFilters{{
				Name:     "Config",
				Patterns: []string{"*.gcfg", "*.ini", "*.conf"},
			}},
		)
		switch {
		case errors.Is(err, zenity.ErrCanceled):
		case err != nil:
			return nil, err
		default:
			path = chosen
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func main() {
	flag.Parse()

	if *exampleFlag {
		fmt.Print(config.Example)
		return
	}

	if f := logging.Setup(logging.Dir, *debugFlag); f != nil {
		defer f.Close()
	}

	cfg, err := loadConfig(*configFlag, *pickFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "embers: %v\n", err)
		os.Exit(1)
	}

	g, err := game.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "embers: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Page.Width, cfg.Page.Height)
	ebiten.SetWindowTitle(cfg.Page.Title + " - Click for sparks, M: menu, Space: pause audio, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("embers: running %v", cfg.Page.Layers())
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("embers: %v", err)
		fmt.Fprintf(os.Stderr, "embers: %v\n", err)
		os.Exit(1)
	}
}
