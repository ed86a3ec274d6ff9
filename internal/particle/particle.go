// Package particle implements the fixed-size particle pool: per-particle
// state, spawn geometry, per-tick kinematics and in-place respawn.
package particle

import "github.com/iburimskiy/embers/internal/vmath"

// SpawnMode records which spawn geometry last produced a particle.
type SpawnMode uint8

const (
	// SpawnField is the randomised "already in flight" fill at pool creation.
	SpawnField SpawnMode = iota
	// SpawnRespawn is a steady-state reset at the source point or edge.
	SpawnRespawn
)

func (m SpawnMode) String() string {
	if m == SpawnRespawn {
		return "respawn"
	}
	return "field"
}

// Particle is one simulated entity. Size, Decay and Color are fixed at
// spawn; Pos, Vel and Life change every tick.
type Particle struct {
	Pos  vmath.Vec
	Vel  vmath.Vec
	Size float64
	Life float64
	// Decay is subtracted from Life every tick.
	Decay float64
	// Color indexes Style.Palette.
	Color int
	Spawn SpawnMode

	Rotation  float64
	Spin      float64
	SwayPhase float64
	SwaySpeed float64
	SwayAmp   float64
	Opacity   float64
}

// Field is the current extent of the surface a pool lives on.
type Field struct {
	W, H float64
}

// Source returns the cone source point for st on this field.
func (f Field) Source(st *Style) vmath.Vec {
	return vmath.Vec{X: f.W / 2, Y: f.H - st.StandHeight}
}

// Contains reports whether p lies within the field, edges included.
func (f Field) Contains(p vmath.Vec) bool {
	return p.X >= 0 && p.X <= f.W && p.Y >= 0 && p.Y <= f.H
}
