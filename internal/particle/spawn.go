package particle

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/embers/internal/vmath"
)

// spawnFunc places p for a fresh life. initial is true only while the pool
// is being filled for the first time.
type spawnFunc func(p *Particle, st *Style, f Field, initial bool, rng *rand.Rand)

func spawnerFor(st *Style) spawnFunc {
	switch st.Motion {
	case Fall:
		return spawnFalling
	case Drift:
		return spawnDrifting
	}
	if st.Geometry == SourceCone {
		return spawnCone
	}
	return spawnRising
}

// spawnCone clusters respawns at the source point and scatters the initial
// fill over a wide cone above it.
func spawnCone(p *Particle, st *Style, f Field, initial bool, rng *rand.Rand) {
	src := f.Source(st)
	jitter := st.ConeJitter
	if jitter <= 0 {
		jitter = 20
	}
	if initial {
		p.Pos = vmath.Vec{
			X: src.X + (rng.Float64()-0.5)*f.W,
			Y: rng.Float64() * src.Y,
		}
	} else {
		p.Pos = vmath.Vec{
			X: src.X + (rng.Float64()-0.5)*jitter,
			Y: src.Y + rng.Float64()*jitter,
		}
	}
	p.Vel = vmath.Vec{
		X: st.VX.Sample(rng) + (p.Pos.X-src.X)*st.ConeDrift,
		Y: st.VY.Sample(rng),
	}
	reset(p, st, initial, rng)
}

// spawnRising fills the field at start and re-enters just below the bottom
// edge afterwards.
func spawnRising(p *Particle, st *Style, f Field, initial bool, rng *rand.Rand) {
	p.Pos.X = rng.Float64() * f.W
	if initial {
		p.Pos.Y = rng.Float64() * f.H
	} else {
		p.Pos.Y = f.H + st.overflow()
	}
	p.Vel = vmath.Vec{X: st.VX.Sample(rng), Y: st.VY.Sample(rng)}
	reset(p, st, initial, rng)
}

// spawnFalling fills the field at start and re-enters just above the top
// edge afterwards.
func spawnFalling(p *Particle, st *Style, f Field, initial bool, rng *rand.Rand) {
	p.Pos.X = rng.Float64() * f.W
	if initial {
		p.Pos.Y = rng.Float64() * f.H
	} else {
		p.Pos.Y = -st.overflow()
	}
	p.Vel = vmath.Vec{X: st.VX.Sample(rng), Y: st.VY.Sample(rng)}
	p.SwayAmp = st.Sway.Sample(rng)
	p.SwaySpeed = st.SwaySpeed.Sample(rng)
	p.SwayPhase = rng.Float64() * 2 * math.Pi
	p.Rotation = rng.Float64() * 2 * math.Pi
	p.Spin = st.Spin.Sample(rng)
	p.Opacity = st.Opacity.Sample(rng)
	reset(p, st, initial, rng)
}

// spawnDrifting fills the field at start. Respawns enter from a random
// point on one of the four edges, heading inward.
func spawnDrifting(p *Particle, st *Style, f Field, initial bool, rng *rand.Rand) {
	p.Vel = vmath.Vec{X: st.VX.Sample(rng), Y: st.VY.Sample(rng)}
	if initial {
		p.Pos = vmath.Vec{X: rng.Float64() * f.W, Y: rng.Float64() * f.H}
		reset(p, st, initial, rng)
		return
	}
	switch rng.Intn(4) {
	case 0: // top
		p.Pos = vmath.Vec{X: rng.Float64() * f.W, Y: 0}
		p.Vel.Y = math.Abs(p.Vel.Y)
	case 1: // bottom
		p.Pos = vmath.Vec{X: rng.Float64() * f.W, Y: f.H}
		p.Vel.Y = -math.Abs(p.Vel.Y)
	case 2: // left
		p.Pos = vmath.Vec{X: 0, Y: rng.Float64() * f.H}
		p.Vel.X = math.Abs(p.Vel.X)
	default: // right
		p.Pos = vmath.Vec{X: f.W, Y: rng.Float64() * f.H}
		p.Vel.X = -math.Abs(p.Vel.X)
	}
	reset(p, st, initial, rng)
}

// reset assigns the per-life constants. Styles without decay keep Life at
// exactly 1 forever; the others start the initial fill at a random age in
// (0, 1] so the first frame is not a synchronised burst.
func reset(p *Particle, st *Style, initial bool, rng *rand.Rand) {
	p.Size = st.Size.Sample(rng)
	p.Decay = st.Decay.Sample(rng)
	if len(st.Palette) > 0 {
		p.Color = rng.Intn(len(st.Palette))
	}
	p.Life = 1
	p.Spawn = SpawnRespawn
	if initial {
		p.Spawn = SpawnField
		if st.Decay.Max > 0 {
			p.Life = 1 - rng.Float64()
		}
	}
}
