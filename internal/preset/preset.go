// Package preset holds the parameter bundles of each visual style. Presets
// add no behaviour; they only fill in engine.Options.
package preset

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/iburimskiy/embers/internal/engine"
	"github.com/iburimskiy/embers/internal/link"
	"github.com/iburimskiy/embers/internal/particle"
	"github.com/iburimskiy/embers/internal/surface"
)

// ErrUnknown is returned by ByName for names with no preset.
var ErrUnknown = errors.New("unknown preset")

var (
	// FirePalette is orange, gold, orange-red and dark orange.
	FirePalette = surface.MustPalette("#FFA500", "#FFD700", "#FF4500", "#FF8C00")
	// WeddingPalette is goldenrod, dark green, coral, steel blue, indian red.
	WeddingPalette = surface.MustPalette("#DAA520", "#2C4A3B", "#FF7F50", "#4682B4", "#CD5C5C")
	// SakuraPalette is classic sakura, pink and misty rose.
	SakuraPalette = surface.MustPalette("#FFB7C5", "#FFC0CB", "#FFE4E1")
)

var (
	emberLinks = link.Renderer{MinLife: 0.2, Scale: 0.5, Width: 1, Color: color.NRGBA{R: 255, G: 180, B: 50, A: 255}}
	greyLinks  = link.Renderer{Scale: 0.5, Width: 1, Color: color.NRGBA{R: 150, G: 150, B: 150, A: 255}}
)

// Campfire is the stand campfire: sparks rise from a source above the stand
// in a widening cone, drift toward the cursor, and link while still bright.
func Campfire() engine.Options {
	return engine.Options{
		Name: "campfire",
		Style: particle.Style{
			Geometry:       particle.SourceCone,
			Motion:         particle.Rise,
			Boundary:       particle.Respawn,
			Coupling:       particle.Attract,
			Palette:        FirePalette,
			Size:           particle.Range{Min: 1, Max: 4},
			Decay:          particle.Range{Min: 0.005, Max: 0.015},
			VX:             particle.Range{Min: -1.5, Max: 1.5},
			VY:             particle.Range{Min: -4, Max: -1},
			StandHeight:    100,
			ConeDrift:      0.02,
			ConeJitter:     20,
			Overflow:       10,
			CursorRadius:   200,
			CursorStrength: 0.5,
		},
		Count:               80,
		CompactCount:        40,
		LinkDistance:        150,
		CompactLinkDistance: 100,
		Links:               emberLinks,
		Background:          true,
	}
}

// Embers is the borderless campfire used behind the menu: sparks drift up
// from the whole bottom edge with no stand.
func Embers() engine.Options {
	o := Campfire()
	o.Name = "embers"
	o.Background = false
	o.Style.Geometry = particle.FullField
	o.Style.StandHeight = 0
	o.Style.ConeDrift = 0
	o.Style.VX = particle.Range{Min: -0.5, Max: 0.5}
	o.Style.VY = particle.Range{Min: -2.5, Max: -0.5}
	return o
}

// Petals is the falling sakura overlay. Petals are never linked.
func Petals() engine.Options {
	return engine.Options{
		Name: "petals",
		Style: particle.Style{
			Geometry:  particle.FullField,
			Motion:    particle.Fall,
			Boundary:  particle.Respawn,
			Palette:   SakuraPalette,
			Size:      particle.Range{Min: 8, Max: 13},
			VX:        particle.Range{Min: -0.75, Max: 0.75},
			VY:        particle.Range{Min: 1, Max: 2},
			Sway:      particle.Range{Min: 0, Max: 2},
			SwaySpeed: particle.Range{Min: 0.01, Max: 0.06},
			Spin:      particle.Range{Min: -0.01, Max: 0.01},
			Opacity:   particle.Range{Min: 0.3, Max: 0.8},
			Overflow:  10,
		},
		Count:        50,
		CompactCount: 50,
	}
}

// Connections is the ambient background: coloured dots float at constant
// speed, bounce off the edges and are always eligible for links.
func Connections() engine.Options {
	return engine.Options{
		Name: "connections",
		Style: particle.Style{
			Geometry: particle.FullField,
			Motion:   particle.Drift,
			Boundary: particle.Reflect,
			Palette:  WeddingPalette,
			Size:     particle.Range{Min: 2, Max: 5},
			VX:       particle.Range{Min: -0.5, Max: 0.5},
			VY:       particle.Range{Min: -0.5, Max: 0.5},
		},
		Count:               100,
		CompactCount:        50,
		LinkDistance:        150,
		CompactLinkDistance: 150,
		Links:               greyLinks,
	}
}

var registry = map[string]func() engine.Options{
	"campfire":    Campfire,
	"embers":      Embers,
	"petals":      Petals,
	"connections": Connections,
}

// ByName returns a fresh copy of the named preset.
func ByName(name string) (engine.Options, error) {
	fn, ok := registry[name]
	if !ok {
		return engine.Options{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return fn(), nil
}

// Names lists the registered presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
