package ambience

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
)

// Crackle returns an endless fire crackle: a low filtered hiss with random
// decaying pops on top.
func Crackle(sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &crackle{
		rng:     rng,
		popRate: 6 / float64(sr.N(time.Second)),
		decay:   math.Exp(-1 / (0.004 * float64(sr.N(time.Second)))),
	}
}

type crackle struct {
	rng     *rand.Rand
	popRate float64
	decay   float64

	hiss float64
	pop  float64
	pan  float64
}

func (c *crackle) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		c.hiss = 0.97*c.hiss + 0.03*(c.rng.Float64()*2-1)
		if c.rng.Float64() < c.popRate {
			c.pop = 0.3 + c.rng.Float64()*0.5
			c.pan = c.rng.Float64()
		}
		pop := c.pop * (c.rng.Float64()*2 - 1)
		c.pop *= c.decay
		base := c.hiss * 0.2
		samples[i][0] = base + pop*(1-c.pan)
		samples[i][1] = base + pop*c.pan
	}
	return len(samples), true
}

func (c *crackle) Err() error { return nil }

// TickLength is the duration of the sound returned by Tick.
const TickLength = 30 * time.Millisecond

// Tick returns a short noise click with a linear fade, played on bursts.
func Tick(sr beep.SampleRate, rng *rand.Rand) beep.Streamer {
	total := sr.N(TickLength)
	played := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if played >= total {
			return 0, false
		}
		n := min(len(samples), total-played)
		for i := 0; i < n; i++ {
			env := 1 - float64(played+i)/float64(total)
			v := (rng.Float64()*2 - 1) * 0.4 * env
			samples[i][0], samples[i][1] = v, v
		}
		played += n
		return n, true
	})
}
