package game

type EventType int

const (
	EventTick EventType = iota
	EventDirectionChanged
	EventFoodEaten
	EventFieldCleared
)

func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventDirectionChanged:
		return "direction_changed"
	case EventFoodEaten:
		return "food_eaten"
	case EventFieldCleared:
		return "field_cleared"
	}
	return "unknown"
}

type Event struct {
	Type      EventType
	Pos       Vec2      // head render position when the event fired
	FoodID    int       // EventFoodEaten only
	Length    int       // chain length after the event
	Direction Direction // EventDirectionChanged only
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the emitting goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
