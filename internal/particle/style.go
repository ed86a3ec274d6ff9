package particle

import (
	"image/color"
	"math/rand"
)

// Geometry selects where particles are placed on spawn.
type Geometry uint8

const (
	// FullField fills the whole surface at start and respawns along one edge.
	FullField Geometry = iota
	// SourceCone spawns around a fixed source point above the stand.
	SourceCone
)

// Motion selects the per-tick kinematic rule.
type Motion uint8

const (
	Rise  Motion = iota // upward, constant velocity
	Fall                // downward with sinusoidal sway and spin
	Drift               // constant velocity in any direction
)

// Boundary selects what happens when a particle leaves the surface.
type Boundary uint8

const (
	Respawn Boundary = iota
	Reflect
)

// Coupling selects how the cursor acts on particles.
type Coupling uint8

const (
	None Coupling = iota
	Attract
	Repel
)

// Range is a closed-open interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Sample draws a value in [Min, Max).
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Style is the full parameter bundle of one particle kind. Presets in
// package preset fill it in; the pool reads it and never mutates it.
type Style struct {
	Geometry Geometry
	Motion   Motion
	Boundary Boundary
	Coupling Coupling

	Palette []color.NRGBA

	Size  Range
	Decay Range
	VX    Range
	VY    Range

	// Petal parameters. Zero ranges disable sway and spin.
	Sway      Range
	SwaySpeed Range
	Spin      Range
	Opacity   Range

	// StandHeight lifts the cone source above the bottom edge.
	StandHeight float64
	// ConeDrift adds horizontal speed proportional to the offset from the
	// source, which opens the cone as particles rise.
	ConeDrift float64
	// ConeJitter is the width of the respawn cluster around the source.
	ConeJitter float64
	// Overflow is how far past an edge a particle may travel before it is
	// considered gone.
	Overflow float64

	CursorRadius   float64
	CursorStrength float64

	// Wind scales a Perlin noise gust added to falling particles.
	Wind float64
}

func (s *Style) overflow() float64 {
	if s.Overflow <= 0 {
		return 10
	}
	return s.Overflow
}

func (s *Style) cursorStrength() float64 {
	switch s.Coupling {
	case Attract:
		return s.CursorStrength
	case Repel:
		return -s.CursorStrength
	}
	return 0
}
