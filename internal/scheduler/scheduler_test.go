package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulseRunsInRequestOrder(t *testing.T) {
	var c PulseClock
	var got []int
	c.RequestFrame(func() { got = append(got, 1) })
	c.RequestFrame(func() { got = append(got, 2) })
	cancel := c.RequestFrame(func() { got = append(got, 3) })
	cancel()
	cancel()

	assert.Equal(t, 2, c.Pulse())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, c.Pulse(), "requests are one-shot")
}

func TestRequestDuringPulseWaitsForNextPulse(t *testing.T) {
	var c PulseClock
	runs := 0
	var fn func()
	fn = func() {
		runs++
		c.RequestFrame(fn)
	}
	c.RequestFrame(fn)

	c.Pulse()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, c.Pending())
	c.Pulse()
	assert.Equal(t, 2, runs)
}

func TestLoopRunsOncePerPulse(t *testing.T) {
	var c PulseClock
	frames := 0
	l := NewLoop(&c, func() { frames++ })

	c.Pulse()
	assert.Equal(t, 0, frames, "not started")

	l.Start()
	l.Start()
	for i := 0; i < 10; i++ {
		c.Pulse()
	}
	assert.Equal(t, 10, frames)
	assert.Equal(t, uint64(10), l.Frames())
	assert.True(t, l.Running())
}

func TestLoopStopReleasesClock(t *testing.T) {
	var c PulseClock
	frames := 0
	l := NewLoop(&c, func() { frames++ })
	l.Start()
	c.Pulse()

	l.Stop()
	l.Stop()
	assert.False(t, l.Running())
	assert.Equal(t, 0, c.Pending(), "no request left against the clock")

	for i := 0; i < 5; i++ {
		c.Pulse()
	}
	assert.Equal(t, 1, frames)
}

func TestLoopStoppedFromInsideFrame(t *testing.T) {
	var c PulseClock
	var l *Loop
	frames := 0
	l = NewLoop(&c, func() {
		frames++
		if frames == 3 {
			l.Stop()
		}
	})
	l.Start()
	for i := 0; i < 10; i++ {
		c.Pulse()
	}
	require.Equal(t, 3, frames)
	assert.Equal(t, 0, c.Pending())
}

func TestLoopRestart(t *testing.T) {
	var c PulseClock
	frames := 0
	l := NewLoop(&c, func() { frames++ })
	l.Start()
	c.Pulse()
	l.Stop()
	c.Pulse()
	l.Start()
	c.Pulse()
	assert.Equal(t, 2, frames)
}

func TestIndependentLoopsShareOneClock(t *testing.T) {
	var c PulseClock
	a, b := 0, 0
	la := NewLoop(&c, func() { a++ })
	lb := NewLoop(&c, func() { b++ })
	la.Start()
	lb.Start()
	c.Pulse()
	la.Stop()
	c.Pulse()
	c.Pulse()
	assert.Equal(t, 1, a)
	assert.Equal(t, 3, b)
}

func TestLoopRestartedFromInsideFrameRunsOncePerPulse(t *testing.T) {
	var c PulseClock
	frames := 0
	var l *Loop
	l = NewLoop(&c, func() {
		frames++
		if frames == 1 {
			l.Stop()
			l.Start()
		}
	})
	l.Start()
	c.Pulse()
	require.Equal(t, 1, frames)
	assert.Equal(t, 1, c.Pending())

	for i := 0; i < 5; i++ {
		c.Pulse()
	}
	assert.Equal(t, 6, frames)
	assert.Equal(t, 1, c.Pending())
	assert.Equal(t, uint64(6), l.Frames())
}
