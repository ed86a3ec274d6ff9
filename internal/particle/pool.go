package particle

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

type moveFunc func(pl *Pool, p *Particle)

type exitFunc func(p *Particle, st *Style, f Field) bool

// Indexed by Motion.
var (
	movers = [...]moveFunc{
		Rise:  moveLinear,
		Fall:  moveFalling,
		Drift: moveLinear,
	}
	exits = [...]exitFunc{
		Rise:  exitedTop,
		Fall:  exitedBottom,
		Drift: exitedAny,
	}
)

// Pool is a fixed-capacity set of particles sharing one Style. Particles are
// stored by value and only ever overwritten in place.
type Pool struct {
	particles []Particle
	style     Style

	spawn spawnFunc
	move  moveFunc
	exit  exitFunc

	rng   *rand.Rand
	noise *perlin.Perlin
	ticks uint64

	// scratch path reused by petal drawing
	path surface.Path
}

// NewPool creates n particles already in flight across f.
func NewPool(n int, st Style, f Field, rng *rand.Rand) *Pool {
	if n < 0 {
		n = 0
	}
	pl := &Pool{
		particles: make([]Particle, n),
		style:     st,
		spawn:     spawnerFor(&st),
		move:      movers[st.Motion],
		exit:      exits[st.Motion],
		rng:       rng,
	}
	if st.Wind != 0 {
		pl.noise = perlin.NewPerlin(2, 2, 3, rng.Int63())
	}
	for i := range pl.particles {
		pl.spawn(&pl.particles[i], &pl.style, f, true, rng)
	}
	return pl
}

// Len is the pool capacity. It never changes.
func (pl *Pool) Len() int { return len(pl.particles) }

// At returns the i-th particle for in-place inspection.
func (pl *Pool) At(i int) *Particle { return &pl.particles[i] }

// Particles exposes the backing slice. Callers must not append to it.
func (pl *Pool) Particles() []Particle { return pl.particles }

func (pl *Pool) Style() *Style { return &pl.style }

// Update advances particle i by one tick: integrate, age, apply the cursor,
// then respawn or reflect at the boundary.
func (pl *Pool) Update(i int, f Field, cursor vmath.Vec, present bool) {
	st := &pl.style
	p := &pl.particles[i]

	pl.move(pl, p)

	if st.Boundary == Respawn {
		p.Life -= p.Decay
	}

	if strength := st.cursorStrength(); strength != 0 {
		nudged := vmath.ApplyRadialForce(p.Pos, p.Vel, cursor, present, st.CursorRadius, strength)
		if st.Motion == Rise {
			// Sparks are only pushed sideways.
			nudged.Y = p.Vel.Y
		}
		p.Vel = nudged
	}

	switch st.Boundary {
	case Reflect:
		reflect(p, f)
	default:
		if p.Life <= 0 || pl.exit(p, st, f) {
			pl.spawn(p, st, f, false, pl.rng)
		}
	}
}

// Step updates every particle once and counts one tick.
func (pl *Pool) Step(f Field, cursor vmath.Vec, present bool) {
	for i := range pl.particles {
		pl.Update(i, f, cursor, present)
	}
	pl.Tick()
}

// Refill re-runs the initial spawn of every particle over f, as NewPool
// does. Engines call it when a pool created on an empty field is first laid
// out.
func (pl *Pool) Refill(f Field) {
	for i := range pl.particles {
		pl.spawn(&pl.particles[i], &pl.style, f, true, pl.rng)
	}
}

// Tick advances the pool clock used by time-varying forces.
func (pl *Pool) Tick() { pl.ticks++ }

func moveLinear(_ *Pool, p *Particle) {
	p.Pos = vmath.Integrate(p.Pos, p.Vel)
}

func moveFalling(pl *Pool, p *Particle) {
	p.Pos.Y += p.Vel.Y
	p.SwayPhase += p.SwaySpeed
	p.Pos.X += math.Sin(p.SwayPhase)*p.SwayAmp + p.Vel.X
	if pl.noise != nil {
		p.Pos.X += pl.noise.Noise2D(p.Pos.Y*0.004, float64(pl.ticks)*0.002) * pl.style.Wind
	}
	p.Rotation += p.Spin
}

// The exit tests count the margin line itself as gone.

func exitedTop(p *Particle, st *Style, f Field) bool {
	m := st.overflow()
	return p.Pos.Y <= -m || p.Pos.X <= -m || p.Pos.X >= f.W+m
}

func exitedBottom(p *Particle, st *Style, f Field) bool {
	m := st.overflow()
	return p.Pos.Y >= f.H+m || p.Pos.X <= -2*m || p.Pos.X >= f.W+2*m
}

func exitedAny(p *Particle, st *Style, f Field) bool {
	m := st.overflow()
	return p.Pos.Y <= -m || p.Pos.Y >= f.H+m || p.Pos.X <= -m || p.Pos.X >= f.W+m
}

// reflect points the velocity back inside for every crossed edge. The sign
// is forced rather than flipped so a particle left outside by a shrinking
// resize still heads home.
func reflect(p *Particle, f Field) {
	if p.Pos.X < 0 {
		p.Vel.X = math.Abs(p.Vel.X)
	} else if p.Pos.X > f.W {
		p.Vel.X = -math.Abs(p.Vel.X)
	}
	if p.Pos.Y < 0 {
		p.Vel.Y = math.Abs(p.Vel.Y)
	} else if p.Pos.Y > f.H {
		p.Vel.Y = -math.Abs(p.Vel.Y)
	}
}
