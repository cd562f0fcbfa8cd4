package scene

// EventType identifies a pointer event
type EventType int

const (
	LeftClick EventType = iota
	RightClick
	MouseMove
)

func (t EventType) String() string {
	switch t {
	case LeftClick:
		return "left_click"
	case RightClick:
		return "right_click"
	case MouseMove:
		return "mouse_move"
	default:
		return "unknown"
	}
}

// Event is a pointer event; for MouseMove, Position is where the pointer ended
type Event struct {
	Type     EventType
	Position ScreenPosition
}

// Subscription is a live event registration
type Subscription interface {
	// Dispose detaches the callback; calling it more than once is harmless
	Dispose()
}

// EventSource delivers pointer events from the host's main loop
type EventSource interface {
	Subscribe(eventType EventType, callback func(Event)) Subscription
}
