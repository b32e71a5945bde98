package game

import (
	"fmt"
	"time"
)

// noLeader marks the head: the one segment that steps by its own velocity.
const noLeader = -1

// Segment is one body cell. Tile is authoritative; Render is the smoothed
// world position a renderer draws.
type Segment struct {
	Tile     Cell
	Velocity Cell
	Render   Vec2

	follows int // arena index of the leader, noLeader for the head
}

// IsHead reports whether the segment steers itself.
func (s Segment) IsHead() bool { return s.follows == noLeader }

type ChainOptions struct {
	Length   int
	Origin   Cell
	CellSize float64
	Rate     float64       // render progress per Step of delta
	Step     time.Duration // zero means one millisecond
}

// Chain is a follow-the-leader snake body. Segments live in an arena and
// never move once allocated; order lists arena indices from tail (0) to
// head (last), and order[i] always follows order[i+1].
type Chain struct {
	segs     []Segment
	order    []int
	cellSize float64
	rate     float64
	step     time.Duration
}

// NewChain lays segments along one row starting at Origin, heading East.
// Lengths below 1 are raised to 1.
func NewChain(opts ChainOptions) *Chain {
	n := opts.Length
	if n < 1 {
		n = 1
	}
	c := &Chain{
		segs:     make([]Segment, n),
		order:    make([]int, n),
		cellSize: opts.CellSize,
		rate:     opts.Rate,
		step:     opts.Step,
	}
	if c.step <= 0 {
		c.step = time.Millisecond
	}
	vel := East.Delta()
	for i := 0; i < n; i++ {
		tile := opts.Origin.Add(Cell{X: i})
		leader := i + 1
		if leader == n {
			leader = noLeader
		}
		c.segs[i] = Segment{
			Tile:     tile,
			Velocity: vel,
			Render:   tile.World(c.cellSize),
			follows:  leader,
		}
		c.order[i] = i
	}
	return c
}

func (c *Chain) Len() int { return len(c.order) }

func (c *Chain) Head() Segment { return c.segs[c.order[len(c.order)-1]] }

func (c *Chain) Tail() Segment { return c.segs[c.order[0]] }

// HeadPosition is the head's render position.
func (c *Chain) HeadPosition() Vec2 { return c.Head().Render }

// Segments returns a copy of the body in chain order, tail first.
func (c *Chain) Segments() []Segment {
	out := make([]Segment, len(c.order))
	for i, idx := range c.order {
		out[i] = c.segs[idx]
	}
	return out
}

// Tiles returns every segment's tile coordinates, tail first.
func (c *Chain) Tiles() []Cell {
	out := make([]Cell, len(c.order))
	for i, idx := range c.order {
		out[i] = c.segs[idx].Tile
	}
	return out
}

// Advance runs one frame. When tickDue, every segment steps exactly once:
// walking tail to head means each follower reads its leader's tile before
// the leader itself moves, giving the one-cell lag per segment. Render
// positions are interpolated every frame regardless.
func (c *Chain) Advance(delta time.Duration, tickDue bool) {
	if tickDue {
		for _, idx := range c.order {
			s := &c.segs[idx]
			if s.follows == noLeader {
				s.Tile = s.Tile.Add(s.Velocity)
			} else {
				s.Tile = c.segs[s.follows].Tile
			}
		}
	}
	if delta < 0 {
		delta = 0
	}
	amt := clampF(c.rate*float64(delta)/float64(c.step), 0, 1)
	for _, idx := range c.order {
		s := &c.segs[idx]
		target := s.Tile.World(c.cellSize)
		s.Render.X = smooth(s.Render.X, target.X, amt)
		s.Render.Y = smooth(s.Render.Y, target.Y, amt)
	}
}

func smooth(cur, target, amt float64) float64 {
	v := Lerp(cur, target, amt)
	if d := target - v; d < SnapEpsilon && d > -SnapEpsilon {
		return target
	}
	return v
}

// ChangeDirection sets the head's velocity. Followers ignore velocity.
func (c *Chain) ChangeDirection(d Direction) {
	if !d.Valid() {
		return
	}
	c.segs[c.order[len(c.order)-1]].Velocity = d.Delta()
}

// GrowFromTail appends a copy of the tail behind it. The copy follows the
// old tail, so on the next step it lands where the tail is now and nothing
// jumps on screen.
func (c *Chain) GrowFromTail() {
	oldTail := c.order[0]
	t := c.segs[oldTail]
	c.segs = append(c.segs, Segment{
		Tile:     t.Tile,
		Velocity: t.Velocity,
		Render:   t.Render,
		follows:  oldTail,
	})
	idx := len(c.segs) - 1
	c.order = append(c.order, 0)
	copy(c.order[1:], c.order)
	c.order[0] = idx
}

// Validate checks the structural invariants: one head at the end of the
// order, and every other segment following its successor.
func (c *Chain) Validate() error {
	if len(c.order) == 0 {
		return fmt.Errorf("chain is empty")
	}
	if len(c.order) != len(c.segs) {
		return fmt.Errorf("order has %d entries for %d segments", len(c.order), len(c.segs))
	}
	seen := make([]bool, len(c.segs))
	for i, idx := range c.order {
		if idx < 0 || idx >= len(c.segs) || seen[idx] {
			return fmt.Errorf("order[%d]=%d is out of range or repeated", i, idx)
		}
		seen[idx] = true
		s := c.segs[idx]
		if i == len(c.order)-1 {
			if s.follows != noLeader {
				return fmt.Errorf("head %d follows %d", idx, s.follows)
			}
			continue
		}
		if want := c.order[i+1]; s.follows != want {
			return fmt.Errorf("segment %d follows %d, want %d", idx, s.follows, want)
		}
	}
	return nil
}
