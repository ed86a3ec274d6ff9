package scheduler

import "sync"

// Loop re-requests a frame callback from a Clock after every frame until it
// is stopped. It is the explicit handle for an otherwise self-rescheduling
// animation.
type Loop struct {
	clock Clock
	frame func()

	mu      sync.Mutex
	cancel  func()
	running bool
	frames  uint64
	// gen changes on every Start, so a frame only re-requests itself for
	// the run it belongs to.
	gen uint64
}

// NewLoop binds frame to clock. Nothing runs until Start.
func NewLoop(clock Clock, frame func()) *Loop {
	return &Loop{clock: clock, frame: frame}
}

// Start requests the first frame. Starting a running loop does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.gen++
	l.request(l.gen)
}

// request must be called with l.mu held.
func (l *Loop) request(gen uint64) {
	l.cancel = l.clock.RequestFrame(func() { l.tick(gen) })
}

// Stop drops the pending frame request. A frame already dequeued by the
// clock becomes a no-op. Stop is idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Running reports whether the loop holds a frame request.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *Loop) tick(gen uint64) {
	l.mu.Lock()
	if !l.running || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.frames++
	l.mu.Unlock()

	l.frame()

	l.mu.Lock()
	defer l.mu.Unlock()
	// frame may have stopped, or stopped and restarted, the loop
	if l.running && gen == l.gen {
		l.request(gen)
	}
}
