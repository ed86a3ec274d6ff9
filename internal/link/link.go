// Package link draws proximity lines between particles of one pool.
//
// The scan is a plain O(N²) pass over every unordered pair. Pools are kept
// at a hundred particles or fewer, so there is no spatial index.
package link

import (
	"image/color"
	"math"

	"github.com/iburimskiy/embers/internal/particle"
	"github.com/iburimskiy/embers/internal/surface"
	"github.com/iburimskiy/embers/internal/vmath"
)

// Link is a pair of particle indices with I < J and its line opacity.
type Link struct {
	I, J  int
	Alpha float64
}

// Renderer holds the link style of one engine.
type Renderer struct {
	// Distance is the exclusive upper bound on linked pair distance.
	Distance float64
	// MinLife gates both ends of a link: each life must exceed it.
	MinLife float64
	// Scale multiplies the opacity.
	Scale float64
	Width float64
	Color color.NRGBA
}

// Enabled reports whether r draws anything at all.
func (r Renderer) Enabled() bool { return r.Distance > 0 && r.Scale > 0 }

// Opacity returns the link alpha between a and b and whether the pair is
// linked. It is symmetric in a and b.
func (r Renderer) Opacity(a, b *particle.Particle) (float64, bool) {
	if !r.Enabled() {
		return 0, false
	}
	d := vmath.Distance(a.Pos, b.Pos)
	if d == 0 || d >= r.Distance {
		return 0, false
	}
	if a.Life <= r.MinLife || b.Life <= r.MinLife {
		return 0, false
	}
	alpha := (1 - d/r.Distance) * math.Min(a.Life, b.Life) * r.Scale
	return vmath.Clamp01(alpha), true
}

// Links appends every linked pair of ps to dst.
func (r Renderer) Links(ps []particle.Particle, dst []Link) []Link {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if alpha, ok := r.Opacity(&ps[i], &ps[j]); ok {
				dst = append(dst, Link{I: i, J: j, Alpha: alpha})
			}
		}
	}
	return dst
}

// Draw strokes every linked pair of ps onto s.
func (r Renderer) Draw(s surface.Surface, ps []particle.Particle) int {
	if !r.Enabled() {
		return 0
	}
	width := r.Width
	if width <= 0 {
		width = 1
	}
	n := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			alpha, ok := r.Opacity(&ps[i], &ps[j])
			if !ok || alpha == 0 {
				continue
			}
			c := r.Color
			c.A = uint8(float64(c.A) * alpha)
			s.StrokeLine(ps[i].Pos.X, ps[i].Pos.Y, ps[j].Pos.X, ps[j].Pos.Y, width, c)
			n++
		}
	}
	return n
}
