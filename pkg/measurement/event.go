package measurement

// Painted is delivered to listeners after a tool commits
type Painted struct {
	Mode Mode
	// Results holds the committed results; a polygon with surface display
	// delivers the polygon followed by its surface.
	Results []Result
}

type listener struct {
	fn      func(Painted)
	removed bool
}

// PaintedEvent is an observable fired on every commit
type PaintedEvent struct {
	listeners []*listener
}

// AddListener registers fn and returns a function removing it
func (e *PaintedEvent) AddListener(fn func(Painted)) (remove func()) {
	l := &listener{fn: fn}
	e.listeners = append(e.listeners, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		for i, other := range e.listeners {
			if other == l {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				break
			}
		}
	}
}

// NumListeners returns the number of registered listeners
func (e *PaintedEvent) NumListeners() int {
	return len(e.listeners)
}

func (e *PaintedEvent) raise(p Painted) {
	for _, l := range append([]*listener(nil), e.listeners...) {
		if !l.removed {
			l.fn(p)
		}
	}
}
