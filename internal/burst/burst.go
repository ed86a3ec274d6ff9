// Package burst spawns short-lived sparks on discrete clicks. Sparks are
// timed by the wall clock and remove themselves; no frame loop owns them.
package burst

import (
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

const (
	DefaultCount       = 8
	DefaultMinTravel   = 10
	DefaultMaxTravel   = 40
	DefaultMinDuration = 400 * time.Millisecond
	DefaultMaxDuration = 600 * time.Millisecond
	DefaultSize        = 3
)

// Palette is gold, white, bright gold and dark orange.
var Palette = surface.MustPalette("#C5A065", "#FFFFFF", "#FFD700", "#FF8C00")

// Spark is one ephemeral particle. It travels from Origin to Origin+Offset
// over Duration, shrinking and fading as it goes.
type Spark struct {
	ID       uint64
	Origin   vmath.Vec
	Offset   vmath.Vec
	Color    color.NRGBA
	Born     time.Time
	Duration time.Duration
}

// Progress returns the eased completion of s at now in [0, 1].
func (s Spark) Progress(now time.Time) float64 {
	if s.Duration <= 0 {
		return 1
	}
	t := vmath.Clamp01(float64(now.Sub(s.Born)) / float64(s.Duration))
	return EaseOut(t)
}

// EaseOut is a cubic ease-out on [0, 1].
func EaseOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Options configures a Burster.
type Options struct {
	Count       int
	MinTravel   float64
	MaxTravel   float64
	MinDuration time.Duration
	MaxDuration time.Duration
	Size        float64
	Palette     []color.NRGBA
	// OnTrigger, when set, runs after each burst is spawned.
	OnTrigger func(x, y float64)
}

func (o *Options) defaults() {
	if o.Count <= 0 {
		o.Count = DefaultCount
	}
	if o.MaxTravel <= 0 {
		o.MinTravel, o.MaxTravel = DefaultMinTravel, DefaultMaxTravel
	}
	if o.MaxDuration <= 0 {
		o.MinDuration, o.MaxDuration = DefaultMinDuration, DefaultMaxDuration
	}
	if o.MinDuration > o.MaxDuration {
		o.MinDuration = o.MaxDuration
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if len(o.Palette) == 0 {
		o.Palette = Palette
	}
}

// Burster owns the live sparks. Trigger, Draw and Close may be called from
// any goroutine; the removal timers fire on their own.
type Burster struct {
	opts Options
	now  func() time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	next    uint64
	sparks  map[uint64]Spark
	timers  map[uint64]*time.Timer
	created uint64
	closed  bool
}

func New(opts Options, rng *rand.Rand) *Burster {
	opts.defaults()
	return &Burster{
		opts:   opts,
		now:    time.Now,
		rng:    rng,
		sparks: make(map[uint64]Spark),
		timers: make(map[uint64]*time.Timer),
	}
}

// Trigger spawns one burst at (x, y) and returns the sparks it created.
func (b *Burster) Trigger(x, y float64) []Spark {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	born := b.now()
	out := make([]Spark, 0, b.opts.Count)
	for i := 0; i < b.opts.Count; i++ {
		angle := b.rng.Float64() * 2 * math.Pi
		travel := b.opts.MinTravel + b.rng.Float64()*(b.opts.MaxTravel-b.opts.MinTravel)
		dur := b.opts.MinDuration + time.Duration(b.rng.Float64()*float64(b.opts.MaxDuration-b.opts.MinDuration))
		s := Spark{
			ID:       b.next,
			Origin:   vmath.Vec{X: x, Y: y},
			Offset:   vmath.Vec{X: math.Cos(angle) * travel, Y: math.Sin(angle) * travel},
			Color:    b.opts.Palette[b.rng.Intn(len(b.opts.Palette))],
			Born:     born,
			Duration: dur,
		}
		b.next++
		b.created++
		b.sparks[s.ID] = s
		id := s.ID
		b.timers[id] = time.AfterFunc(dur, func() { b.remove(id) })
		out = append(out, s)
	}
	b.mu.Unlock()

	if b.opts.OnTrigger != nil {
		b.opts.OnTrigger(x, y)
	}
	return out
}

func (b *Burster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sparks, id)
	delete(b.timers, id)
}

// Live returns the number of sparks still animating.
func (b *Burster) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sparks)
}

// Created returns the number of sparks spawned since New.
func (b *Burster) Created() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

// Sparks returns a snapshot of the live sparks.
func (b *Burster) Sparks() []Spark {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Spark, 0, len(b.sparks))
	for _, s := range b.sparks {
		out = append(out, s)
	}
	return out
}

// Draw paints every live spark as it appears at now. It returns how many
// sparks were drawn.
func (b *Burster) Draw(s surface.Surface, now time.Time) int {
	n := 0
	for _, sp := range b.Sparks() {
		k := sp.Progress(now)
		if k >= 1 {
			continue
		}
		p := sp.Origin.Add(sp.Offset.Scale(k))
		c := sp.Color
		c.A = uint8(float64(c.A) * (1 - k))
		s.FillCircle(p.X, p.Y, b.opts.Size*(1-k), c)
		n++
	}
	return n
}

// Close stops every pending timer and drops the live sparks. Trigger is a
// no-op afterwards.
func (b *Burster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	for id := range b.sparks {
		delete(b.sparks, id)
	}
}
