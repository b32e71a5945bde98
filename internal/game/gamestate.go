package game

import (
	"time"

	"github.com/google/uuid"
)

type GameState int

const (
	StatePlaying GameState = iota // food remains
	StateCleared                  // every food item eaten; the snake keeps moving
)

func (s GameState) String() string {
	if s == StateCleared {
		return "cleared"
	}
	return "playing"
}

// FrameUpdater is driven once per rendered frame.
type FrameUpdater interface {
	Update(delta time.Duration)
}

// Session is the single owner of one game's chain, food and clock. Key
// events and frames may come from different host callbacks, but all calls
// must be made from one goroutine.
type Session struct {
	ID    string
	State GameState

	cfg      Config
	time     TimeProvider
	clock    *Clock
	chain    *Chain
	food     *FoodField
	camera   CameraFollow
	director *Director
	events   *EventBus

	pending []KeyCode
	ticks   uint64
	eaten   int
}

var (
	_ FrameUpdater = (*Session)(nil)
	_ KeyHandler   = (*Session)(nil)
	_ KeyHandler   = (*Director)(nil)
	_ Steerer      = (*Chain)(nil)
	_ HeadTracker  = (*Chain)(nil)
)

// NewSession builds a fresh game from cfg. The tick clock starts at tp's
// current time, so the first step happens one threshold after creation.
func NewSession(cfg Config, tp TimeProvider) *Session {
	chain := NewChain(ChainOptions{
		Length:   cfg.InitialLength,
		CellSize: cfg.CellSize,
		Rate:     cfg.InterpolationRate,
		Step:     cfg.InterpolationUnit.Step(),
	})
	food := NewFoodField(cfg.CaptureRadius)
	food.Scatter(NewRand(cfg.Seed), cfg.FoodCount, cfg.FoodColumns, cfg.FoodRows, cfg.CellSize, chain.Tiles())

	s := &Session{
		ID:       uuid.NewString(),
		cfg:      cfg,
		time:     tp,
		clock:    NewClock(cfg.TickThreshold, tp.Now()),
		chain:    chain,
		food:     food,
		camera:   NewCameraFollow(chain),
		director: NewDirector(chain, East),
		events:   NewEventBus(),
	}
	if food.Len() == 0 {
		s.State = StateCleared
	}
	return s
}

func (s *Session) Config() Config { return s.cfg }
func (s *Session) Chain() *Chain { return s.chain }
func (s *Session) Food() *FoodField { return s.food }
func (s *Session) Direction() Direction { return s.director.Direction() }
func (s *Session) Ticks() uint64 { return s.ticks }
func (s *Session) Eaten() int { return s.eaten }
func (s *Session) Subscribe(t EventType, fn EventHandler) { s.events.Subscribe(t, fn) }

// CameraOffset is the scene translation centring the head in a w x h view.
func (s *Session) CameraOffset(w, h float64) Vec2 {
	return s.camera.Offset(w, h)
}

// KeyDown queues code; queued keys are applied at the start of the next
// Update, before movement.
func (s *Session) KeyDown(code KeyCode) {
	s.pending = append(s.pending, code)
}

func (s *Session) KeyUp(code KeyCode) {
	s.director.KeyUp(code)
}

// Update runs one frame: queued input, at most one tile step, render
// interpolation, then food collision against the head.
func (s *Session) Update(delta time.Duration) {
	if delta < 0 {
		delta = 0
	}

	for _, code := range s.pending {
		if s.director.Steer(code) {
			s.events.Emit(Event{
				Type:      EventDirectionChanged,
				Pos:       s.chain.HeadPosition(),
				Length:    s.chain.Len(),
				Direction: s.director.Direction(),
			})
		}
	}
	s.pending = s.pending[:0]

	now := s.time.Now()
	tick := s.clock.ShouldTick(now)
	s.chain.Advance(delta, tick)
	if tick {
		s.clock.Reset(now)
		s.director.Commit()
		s.ticks++
		s.events.Emit(Event{Type: EventTick, Pos: s.chain.HeadPosition(), Length: s.chain.Len()})
	}

	head := s.chain.HeadPosition()
	if item, ok := s.food.Remove(s.food.Test(head)); ok {
		s.chain.GrowFromTail()
		s.eaten++
		s.events.Emit(Event{Type: EventFoodEaten, Pos: head, FoodID: item.ID, Length: s.chain.Len()})
		if s.food.Len() == 0 && s.State == StatePlaying {
			s.State = StateCleared
			s.events.Emit(Event{Type: EventFieldCleared, Pos: head, Length: s.chain.Len()})
		}
	}
}
