// Package scheduler drives per-frame callbacks from a host refresh tick.
package scheduler

import "sync"

// Clock invokes a callback once before the next repaint.
type Clock interface {
	// RequestFrame schedules fn for the next frame. cancel drops the
	// request if it has not run yet and is safe to call more than once.
	RequestFrame(fn func()) (cancel func())
}

// PulseClock is a Clock driven by the host: each call to Pulse runs every
// callback requested before it, in request order, on the caller's
// goroutine. Callbacks requested while a pulse is running wait for the
// next one.
type PulseClock struct {
	mu      sync.Mutex
	next    uint64
	pending []request
	pulses  uint64
}

type request struct {
	id uint64
	fn func()
}

func (c *PulseClock) RequestFrame(fn func()) (cancel func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.pending = append(c.pending, request{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, r := range c.pending {
			if r.id == id {
				c.pending = append(c.pending[:i], c.pending[i+1:]...)
				return
			}
		}
	}
}

// Pulse runs one frame's worth of callbacks and returns how many ran.
func (c *PulseClock) Pulse() int {
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.pulses++
	c.mu.Unlock()

	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next pulse.
func (c *PulseClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Pulses returns how many times Pulse has been called.
func (c *PulseClock) Pulses() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pulses
}
