// Package vmath holds the position/velocity primitives shared by every
// particle kind.
package vmath

import "math"

// Vec is a point or displacement in surface-local pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Integrate advances pos by one Euler step of vel.
func Integrate(pos, vel Vec) Vec {
	return pos.Add(vel)
}

// Distance returns the Euclidean distance between a and b. It is symmetric
// bit for bit: Distance(a, b) == Distance(b, a).
func Distance(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// ApplyRadialForce returns vel nudged toward source when source is present
// and closer than radius. The push is strength*(radius-d)/radius along the
// unit vector from pos to source; a negative strength pushes away. An absent
// source or a particle sitting exactly on it leaves vel unchanged.
func ApplyRadialForce(pos, vel, source Vec, present bool, radius, strength float64) Vec {
	if !present || radius <= 0 {
		return vel
	}
	delta := source.Sub(pos)
	d := delta.Len()
	if d == 0 || d >= radius {
		return vel
	}
	force := strength * (radius - d) / radius
	return vel.Add(delta.Scale(force / d))
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
