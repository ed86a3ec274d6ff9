// Package config reads the gcfg (INI style) file that lays out the page:
// window size, which effect layers run, per-effect overrides and audio.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gcfg.v1"

	"github.com/iburimskiy/embers/internal/engine"
	"github.com/iburimskiy/embers/internal/particle"
	"github.com/iburimskiy/embers/internal/preset"
	"github.com/iburimskiy/embers/internal/surface"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// CountdownLayout is the format of Page.Countdown, in local time.
	CountdownLayout = "2006-01-02 15:04"

	// Menu panel dimensions.
	PanelWidth  = 320
	PanelMargin = 20

	// Soundtrack button.
	ButtonWidth  = 120
	ButtonHeight = 32
	ButtonX      = 20
	ButtonY      = 40
)

// DefaultLayers are drawn back to front when Page.Layer is not set.
var DefaultLayers = []string{"connections", "petals", "campfire"}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

type PageConfig struct {
	Width, Height int
	Title         string

	// Layer may be repeated; each names an [Effect] section or a preset.
	Layer []string
	// Menu names the effect shown in the panel toggled with M.
	Menu string

	Countdown  string
	Breakpoint int
	Seed       int64

	Glow       bool
	GlowSpring bool
	Bursts     bool
}

func (p *PageConfig) ValidWidth() bool  { return p.Width > 0 }
func (p *PageConfig) ValidHeight() bool { return p.Height > 0 }
func (p *PageConfig) ValidBreakpoint() bool {
	return p.Breakpoint >= 0
}
func (p *PageConfig) ValidCountdown() bool {
	_, err := p.Target()
	return err == nil
}

// Target parses Countdown. An empty Countdown yields the zero time.
func (p *PageConfig) Target() (time.Time, error) {
	if p.Countdown == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(CountdownLayout, p.Countdown, time.Local)
}

// Layers returns Page.Layer or DefaultLayers.
func (p *PageConfig) Layers() []string {
	if len(p.Layer) == 0 {
		return DefaultLayers
	}
	return p.Layer
}

type AudioConfig struct {
	Enabled    bool
	Crackle    bool
	Volume     float64
	SampleRate int
	Soundtrack string
}

func (a *AudioConfig) ValidVolume() bool     { return a.Volume >= 0 && a.Volume <= 1 }
func (a *AudioConfig) ValidSampleRate() bool { return a.SampleRate > 0 }

// EffectConfig overrides preset fields for one named layer. Zero values
// keep the preset's.
type EffectConfig struct {
	Preset string

	Count, CompactCount               int
	LinkDistance, CompactLinkDistance float64

	Coupling       string
	CursorRadius   float64
	CursorStrength float64
	Boundary       string
	Background     string
	Wind           float64

	// Palette may be repeated, one colour per line, as "#rrggbb" or rrggbb.
	Palette []string
}

var couplings = map[string]particle.Coupling{
	"none":    particle.None,
	"attract": particle.Attract,
	"repel":   particle.Repel,
}

var boundaries = map[string]particle.Boundary{
	"respawn": particle.Respawn,
	"reflect": particle.Reflect,
}

func (e *EffectConfig) ValidCoupling() bool {
	_, ok := couplings[strings.ToLower(e.Coupling)]
	return e.Coupling == "" || ok
}
func (e *EffectConfig) ValidBoundary() bool {
	_, ok := boundaries[strings.ToLower(e.Boundary)]
	return e.Boundary == "" || ok
}
func (e *EffectConfig) ValidBackground() bool {
	_, err := strconv.ParseBool(e.Background)
	return e.Background == "" || err == nil
}
func (e *EffectConfig) ValidCounts() bool {
	return e.Count >= 0 && e.CompactCount >= 0 &&
		e.LinkDistance >= 0 && e.CompactLinkDistance >= 0
}
func (e *EffectConfig) ValidPalette() bool {
	_, err := surface.ParsePalette(e.Palette...)
	return err == nil
}

// Apply writes the overrides onto o.
func (e *EffectConfig) Apply(o engine.Options) (engine.Options, error) {
	if e.Count > 0 {
		o.Count = e.Count
	}
	if e.CompactCount > 0 {
		o.CompactCount = e.CompactCount
	}
	if e.LinkDistance > 0 {
		o.LinkDistance = e.LinkDistance
	}
	if e.CompactLinkDistance > 0 {
		o.CompactLinkDistance = e.CompactLinkDistance
	}
	if e.Coupling != "" {
		c, ok := couplings[strings.ToLower(e.Coupling)]
		if !ok {
			return o, fmt.Errorf("%w: coupling %q", ErrInvalid, e.Coupling)
		}
		o.Style.Coupling = c
	}
	if e.CursorRadius > 0 {
		o.Style.CursorRadius = e.CursorRadius
	}
	if e.CursorStrength > 0 {
		o.Style.CursorStrength = e.CursorStrength
	}
	if e.Boundary != "" {
		b, ok := boundaries[strings.ToLower(e.Boundary)]
		if !ok {
			return o, fmt.Errorf("%w: boundary %q", ErrInvalid, e.Boundary)
		}
		o.Style.Boundary = b
	}
	if e.Background != "" {
		bg, err := strconv.ParseBool(e.Background)
		if err != nil {
			return o, fmt.Errorf("%w: background %q", ErrInvalid, e.Background)
		}
		o.Background = bg
	}
	if e.Wind != 0 {
		o.Style.Wind = e.Wind
	}
	if len(e.Palette) > 0 {
		p, err := surface.ParsePalette(e.Palette...)
		if err != nil {
			return o, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		o.Style.Palette = p
	}
	return o, nil
}

// Wrapper is the whole file.
type Wrapper struct {
	Page   PageConfig
	Audio  AudioConfig
	Effect map[string]*EffectConfig
}

// Default returns the configuration used when no file is given.
func Default() *Wrapper {
	return &Wrapper{
		Page: PageConfig{
			Width:      WindowWidth,
			Height:     WindowHeight,
			Title:      "Embers",
			Menu:       "embers",
			Breakpoint: engine.DefaultBreakpoint,
			Glow:       true,
			Bursts:     true,
		},
		Audio: AudioConfig{
			Crackle:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Wrapper, error) {
	w := Default()
	if err := gcfg.ReadFileInto(w, path); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Parse is Load for an in-memory file.
func Parse(src string) (*Wrapper, error) {
	w := Default()
	if err := gcfg.ReadStringInto(w, src); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate reports every invalid field, wrapped in ErrInvalid.
func (w *Wrapper) Validate() error {
	var bad []string
	check := func(ok bool, field string) {
		if !ok {
			bad = append(bad, field)
		}
	}
	check(w.Page.ValidWidth(), "Page.Width")
	check(w.Page.ValidHeight(), "Page.Height")
	check(w.Page.ValidBreakpoint(), "Page.Breakpoint")
	check(w.Page.ValidCountdown(), "Page.Countdown")
	check(w.Audio.ValidVolume(), "Audio.Volume")
	check(w.Audio.ValidSampleRate(), "Audio.SampleRate")

	names := make([]string, 0, len(w.Effect))
	for name := range w.Effect {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e := w.Effect[name]
		prefix := fmt.Sprintf("Effect %q.", name)
		check(e.ValidCoupling(), prefix+"Coupling")
		check(e.ValidBoundary(), prefix+"Boundary")
		check(e.ValidBackground(), prefix+"Background")
		check(e.ValidCounts(), prefix+"Count")
		check(e.ValidPalette(), prefix+"Palette")
	}
	for _, name := range w.Page.Layers() {
		_, err := w.presetName(name)
		check(err == nil, fmt.Sprintf("Page.Layer %q", name))
	}
	if w.Page.Menu != "" {
		_, err := w.presetName(w.Page.Menu)
		check(err == nil, fmt.Sprintf("Page.Menu %q", w.Page.Menu))
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(bad, ", "))
	}
	return nil
}

func (w *Wrapper) presetName(name string) (string, error) {
	p := name
	if e, ok := w.Effect[name]; ok && e.Preset != "" {
		p = e.Preset
	}
	if _, err := preset.ByName(p); err != nil {
		return "", err
	}
	return p, nil
}

// Options resolves a layer name to engine options: its preset, the
// section's overrides and the page breakpoint.
func (w *Wrapper) Options(name string) (engine.Options, error) {
	p, err := w.presetName(name)
	if err != nil {
		return engine.Options{}, err
	}
	o, err := preset.ByName(p)
	if err != nil {
		return engine.Options{}, err
	}
	o.Name = name
	o.Breakpoint = w.Page.Breakpoint
	if e, ok := w.Effect[name]; ok {
		return e.Apply(o)
	}
	return o, nil
}

const Example = `# Embers page configuration.

[Page]
# Window size in pixels.
Width  = 1024
Height = 640
Title  = Embers

# Effect layers, drawn back to front. Each names an [Effect] section below
# or one of the built-in presets: campfire, connections, embers, petals.
Layer = connections
Layer = petals
Layer = campfire

# Effect shown in the menu panel, toggled with M.
Menu = embers

# Target of the countdown line, local time. Leave empty to hide it.
Countdown = 2026-02-23 00:00

# Screens narrower than this use the compact particle counts.
Breakpoint = 768

Glow   = true
# GlowSpring = true
Bursts = true

[Audio]
Enabled = false
Crackle = true
Volume  = 0.5
# Soundtrack = path/to/loop.mp3

#######################
# Optional Parameters #
#######################

# Every field is optional and overrides the preset's value.
[Effect "campfire"]
Preset = campfire
# Count = 80
# CompactCount = 40
# LinkDistance = 150
# CompactLinkDistance = 100
# Coupling = attract
# CursorRadius = 200
# CursorStrength = 0.5
# Background = true

[Effect "petals"]
Preset = petals
# Wind = 0.5
# Colours need quotes since # starts a comment.
# Palette = "#FFB7C5"
# Palette = "#FFC0CB"
`
