package memscene

import (
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

type subscription struct {
	d         *Dispatcher
	eventType scene.EventType
	callback  func(scene.Event)
	disposed  bool
}

func (s *subscription) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.d.subs[s.eventType] = without(s.d.subs[s.eventType], s)
}

// Dispatcher delivers events synchronously, in subscription order
type Dispatcher struct {
	subs   map[scene.EventType][]*subscription
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher with no subscriptions
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{subs: make(map[scene.EventType][]*subscription), logger: logger}
}

func (d *Dispatcher) Subscribe(eventType scene.EventType, callback func(scene.Event)) scene.Subscription {
	s := &subscription{d: d, eventType: eventType, callback: callback}
	d.subs[eventType] = append(d.subs[eventType], s)
	return s
}

// Dispatch delivers ev to every live subscriber of its type. A subscription
// disposed by an earlier callback is skipped.
func (d *Dispatcher) Dispatch(ev scene.Event) {
	subs := append([]*subscription(nil), d.subs[ev.Type]...)
	d.logger.Debug("dispatch", zap.Stringer("type", ev.Type), zap.Float64("x", ev.Position.X), zap.Float64("y", ev.Position.Y), zap.Int("subscribers", len(subs)))
	for _, s := range subs {
		if !s.disposed {
			s.callback(ev)
		}
	}
}

// Click dispatches a left click at (x, y)
func (d *Dispatcher) Click(x, y float64) {
	d.Dispatch(scene.Event{Type: scene.LeftClick, Position: scene.ScreenPosition{X: x, Y: y}})
}

// RightClick dispatches a right click at (x, y)
func (d *Dispatcher) RightClick(x, y float64) {
	d.Dispatch(scene.Event{Type: scene.RightClick, Position: scene.ScreenPosition{X: x, Y: y}})
}

// Move dispatches a pointer move ending at (x, y)
func (d *Dispatcher) Move(x, y float64) {
	d.Dispatch(scene.Event{Type: scene.MouseMove, Position: scene.ScreenPosition{X: x, Y: y}})
}

// LiveSubscriptions counts subscriptions that have not been disposed
func (d *Dispatcher) LiveSubscriptions() int {
	n := 0
	for _, subs := range d.subs {
		n += len(subs)
	}
	return n
}
