package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptySession(t *testing.T, mt *mockTime) *Session {
	t.Helper()
	cfg := testConfig()
	cfg.FoodCount = 0
	return NewSession(cfg, mt)
}

func TestSession_New(t *testing.T) {
	mt := newMockTime()
	s := NewSession(testConfig(), mt)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 4, s.Chain().Len())
	assert.Equal(t, FoodCount, s.Food().Len())
	assert.Equal(t, East, s.Direction())

	for _, item := range s.Food().Items() {
		for _, tile := range s.Chain().Tiles() {
			assert.NotEqual(t, tile.World(CellSize), item.Position, "no food under the starting chain")
		}
	}

	other := NewSession(testConfig(), mt)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, s.Food().Items(), other.Food().Items(), "same seed, same layout")
}

func TestSession_TickGating(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)
	start := s.Chain().Tiles()

	for i := 0; i < 9; i++ {
		mt.Advance(10 * time.Millisecond)
		s.Update(10 * time.Millisecond)
		require.Equal(t, start, s.Chain().Tiles(), "no step before the threshold (frame %d)", i)
	}
	assert.Zero(t, s.Ticks())

	mt.Advance(10 * time.Millisecond)
	s.Update(10 * time.Millisecond)
	assert.Equal(t, []Cell{{1, 0}, {2, 0}, {3, 0}, {4, 0}}, s.Chain().Tiles())
	assert.Equal(t, uint64(1), s.Ticks())

	s.Update(10 * time.Millisecond)
	assert.Equal(t, uint64(1), s.Ticks(), "clock reset after the step")
}

func TestSession_InputAppliedBeforeStep(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)

	var changes []Event
	s.Subscribe(EventDirectionChanged, func(e Event) { changes = append(changes, e) })

	s.KeyDown(KeyDown)
	s.KeyUp(KeyDown)
	assert.Equal(t, East, s.Direction(), "queued until the next frame")

	mt.Advance(TickThreshold)
	s.Update(time.Millisecond)
	assert.Equal(t, Cell{X: 3, Y: 1}, s.Chain().Head().Tile, "the step uses the new heading")
	require.Len(t, changes, 1)
	assert.Equal(t, South, changes[0].Direction)

	s.KeyDown(KeyUp)
	s.KeyDown(65)
	s.Update(time.Millisecond)
	assert.Equal(t, South, s.Direction(), "reversal and unknown key rejected")
	assert.Len(t, changes, 1)
}

func TestSession_TwoTurnsBeforeStepCannotReverse(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)
	neck := s.Chain().Segments()[s.Chain().Len()-2].Tile

	s.KeyDown(KeyUp)
	s.KeyDown(KeyLeft)
	mt.Advance(TickThreshold)
	s.Update(time.Millisecond)

	head := s.Chain().Head().Tile
	assert.NotEqual(t, neck, head, "head must not step back onto its neck")
	assert.Equal(t, Cell{X: 3, Y: -1}, head)
	assert.Equal(t, North, s.Direction())
	require.NoError(t, s.Chain().Validate())

	// After the step north, west is a plain turn again.
	s.KeyDown(KeyLeft)
	mt.Advance(TickThreshold)
	s.Update(time.Millisecond)
	assert.Equal(t, West, s.Direction())
	assert.Equal(t, Cell{X: 2, Y: -1}, s.Chain().Head().Tile)
}

func TestSession_EatAndGrow(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)
	food := s.Food().Add(Vec2{X: 85, Y: 5})

	var eaten []Event
	s.Subscribe(EventFoodEaten, func(e Event) { eaten = append(eaten, e) })

	mt.Advance(100 * time.Millisecond)
	s.Update(time.Millisecond)
	require.Equal(t, []Cell{{1, 0}, {2, 0}, {3, 0}, {4, 0}}, s.Chain().Tiles())
	assert.Equal(t, 1, s.Food().Len(), "head still interpolating toward (80,0)")
	preTail := s.Chain().Tail().Tile

	s.Update(20 * time.Millisecond)
	assert.Equal(t, Vec2{X: 80, Y: 0}, s.Chain().HeadPosition())
	assert.Equal(t, 0, s.Food().Len())
	assert.Equal(t, 5, s.Chain().Len())
	assert.Equal(t, preTail, s.Chain().Tail().Tile)
	assert.Equal(t, NoFood, s.Food().Test(s.Chain().HeadPosition()))
	require.NoError(t, s.Chain().Validate())

	require.Len(t, eaten, 1)
	assert.Equal(t, food.ID, eaten[0].FoodID)
	assert.Equal(t, 5, eaten[0].Length)
	assert.Equal(t, 1, s.Eaten())

	s.Update(20 * time.Millisecond)
	assert.Equal(t, 5, s.Chain().Len(), "nothing left to eat")
}

func TestSession_OneGrowthPerFrame(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)
	head := s.Chain().HeadPosition()
	s.Food().Add(head)
	s.Food().Add(head)

	s.Update(time.Millisecond)
	assert.Equal(t, 5, s.Chain().Len())
	assert.Equal(t, 1, s.Food().Len())

	s.Update(time.Millisecond)
	assert.Equal(t, 6, s.Chain().Len())
	assert.Equal(t, 0, s.Food().Len())
}

func TestSession_FieldCleared(t *testing.T) {
	mt := newMockTime()
	cfg := testConfig()
	cfg.FoodCount = 1
	cfg.FoodColumns = 5
	cfg.FoodRows = 1
	s := NewSession(cfg, mt)
	require.Equal(t, 1, s.Food().Len())
	assert.Equal(t, Vec2{X: 80, Y: 0}, s.Food().Items()[0].Position, "the only free cell in row 0")

	cleared := 0
	s.Subscribe(EventFieldCleared, func(Event) { cleared++ })

	mt.Advance(TickThreshold)
	s.Update(time.Second)
	assert.Equal(t, StateCleared, s.State)
	assert.Equal(t, 1, cleared)

	mt.Advance(TickThreshold)
	s.Update(time.Second)
	assert.Equal(t, 1, cleared)
	assert.Equal(t, uint64(2), s.Ticks(), "movement continues after the field is cleared")
}

func TestSession_NegativeDelta(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)
	mt.Advance(TickThreshold)
	s.Update(-time.Hour)

	assert.Equal(t, uint64(1), s.Ticks())
	assert.Equal(t, Vec2{X: 60, Y: 0}, s.Chain().HeadPosition(), "render position untouched")
}

func TestSession_CameraOffset(t *testing.T) {
	mt := newMockTime()
	s := emptySession(t, mt)
	assert.Equal(t, Vec2{X: 400 - 60, Y: 300}, s.CameraOffset(800, 600))
}
