package ambience

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/embers/internal/vmath"
)

const (
	// RingSize is the number of recent stereo frames a Meter keeps.
	RingSize = 8192
	// Smoothing weighs the previous level against the new one.
	Smoothing = 0.6
)

// Meter wraps a beep.Streamer and records the last frames it played into a
// ring buffer so the renderer can follow the loudness of the audio.
type Meter struct {
	Source beep.Streamer

	mu        sync.RWMutex
	buffer    [][2]float64
	nextIndex int
	filled    int

	level float64
}

func NewMeter(src beep.Streamer, ringSize int) *Meter {
	if ringSize <= 0 {
		ringSize = RingSize
	}
	return &Meter{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (m *Meter) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.Source.Stream(samples)
	if n > 0 {
		m.mu.Lock()
		for i := 0; i < n; i++ {
			m.buffer[m.nextIndex] = samples[i]
			m.nextIndex++
			if m.nextIndex >= len(m.buffer) {
				m.nextIndex = 0
			}
		}
		m.filled = min(m.filled+n, len(m.buffer))
		m.mu.Unlock()
	}
	return n, ok
}

func (m *Meter) Err() error { return m.Source.Err() }

// Snapshot returns up to the last n frames, oldest first.
func (m *Meter) Snapshot(n int) [][2]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n = min(n, m.filled)
	out := make([][2]float64, n)
	idx := m.nextIndex - n
	if idx < 0 {
		idx += len(m.buffer)
	}
	for i := range out {
		out[i] = m.buffer[idx]
		idx++
		if idx >= len(m.buffer) {
			idx = 0
		}
	}
	return out
}

// Level returns the compressed RMS loudness of the last n frames in [0, 1].
func (m *Meter) Level(n int) float64 {
	samples := m.Snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	return vmath.Clamp01(math.Pow(rms, 0.3))
}

// Smoothed is Level eased against the previous call.
func (m *Meter) Smoothed(n int) float64 {
	mag := m.Level(n)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = Smoothing*m.level + (1-Smoothing)*mag
	return m.level
}
