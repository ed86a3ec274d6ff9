package surface

import "sync"

// Handlers receive host signals. Nil fields are ignored.
type Handlers struct {
	Resize func()
	Move   func(x, y float64)
	Leave  func()
	Click  func(x, y float64)
}

// Events fans host signals (resize, pointer move/leave, click) out to
// attached handlers. Pointer coordinates are global.
type Events struct {
	mu       sync.Mutex
	next     int
	handlers map[int]Handlers
	order    []int
}

// Attach registers h and returns a function detaching it. Detach is
// idempotent; signals emitted after it returns skip h.
func (e *Events) Attach(h Handlers) (detach func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[int]Handlers)
	}
	id := e.next
	e.next++
	e.handlers[id] = h
	e.order = append(e.order, id)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.handlers[id]; !ok {
			return
		}
		delete(e.handlers, id)
		for i, o := range e.order {
			if o == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of attached handler sets.
func (e *Events) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

func (e *Events) snapshot() []Handlers {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Handlers, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.handlers[id])
	}
	return out
}

func (e *Events) EmitResize() {
	for _, h := range e.snapshot() {
		if h.Resize != nil {
			h.Resize()
		}
	}
}

func (e *Events) EmitMove(x, y float64) {
	for _, h := range e.snapshot() {
		if h.Move != nil {
			h.Move(x, y)
		}
	}
}

func (e *Events) EmitLeave() {
	for _, h := range e.snapshot() {
		if h.Leave != nil {
			h.Leave()
		}
	}
}

func (e *Events) EmitClick(x, y float64) {
	for _, h := range e.snapshot() {
		if h.Click != nil {
			h.Click(x, y)
		}
	}
}
