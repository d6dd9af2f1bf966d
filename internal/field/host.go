package field

// FrameID identifies a requested frame callback.
type FrameID uint64

// Listeners are the event callbacks a controller registers with its host.
type Listeners struct {
	Resize      func()
	PointerMove func(x, y float64)
}

// Host is the environment a controller runs in.
type Host interface {
	Viewport() (width, height float64)
	Theme() Theme
	Listen(ls Listeners) (release func())
	RequestFrame(fn func(t float64)) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func(t float64)
}

// Loop implements the event and frame half of Host. Hosts embed it and feed
// it events and frame times from their own main loop.
type Loop struct {
	frames       []frameRequest
	lastFrame    FrameID
	listeners    map[int]Listeners
	nextListener int
}

// RequestFrame queues fn for the next RunFrame.
func (l *Loop) RequestFrame(fn func(t float64)) FrameID {
	l.lastFrame++
	l.frames = append(l.frames, frameRequest{id: l.lastFrame, fn: fn})
	return l.lastFrame
}

// CancelFrame drops a queued callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// Pending reports whether any frame callback is queued.
func (l *Loop) Pending() bool { return len(l.frames) > 0 }

// RunFrame runs the callbacks queued before this call. Callbacks requested
// while running wait for the next frame. It reports whether anything ran.
func (l *Loop) RunFrame(t float64) bool {
	if len(l.frames) == 0 {
		return false
	}
	due := l.frames
	l.frames = nil
	for _, f := range due {
		f.fn(t)
	}
	return true
}

// Listen registers ls and returns its release func. Release is idempotent.
func (l *Loop) Listen(ls Listeners) func() {
	if l.listeners == nil {
		l.listeners = make(map[int]Listeners)
	}
	id := l.nextListener
	l.nextListener++
	l.listeners[id] = ls
	return func() { delete(l.listeners, id) }
}

// Listening returns the number of registered listener sets.
func (l *Loop) Listening() int { return len(l.listeners) }

// DispatchResize notifies every listener of a viewport change.
func (l *Loop) DispatchResize() {
	for _, ls := range l.listeners {
		if ls.Resize != nil {
			ls.Resize()
		}
	}
}

// DispatchPointer notifies every listener of a pointer move.
func (l *Loop) DispatchPointer(x, y float64) {
	for _, ls := range l.listeners {
		if ls.PointerMove != nil {
			ls.PointerMove(x, y)
		}
	}
}
