package game

// KeyCode is a raw keyboard code as delivered by the host.
type KeyCode int

const (
	KeyLeft  KeyCode = 37
	KeyUp    KeyCode = 38
	KeyRight KeyCode = 39
	KeyDown  KeyCode = 40
)

// Steerer accepts heading changes.
type Steerer interface {
	ChangeDirection(d Direction)
}

// KeyHandler receives raw key transitions.
type KeyHandler interface {
	KeyDown(code KeyCode)
	KeyUp(code KeyCode)
}

// Director maps arrow keys to headings and refuses 180 degree turns.
// The confirmed direction is tracked here rather than read back from the
// head's velocity. stepped is the heading of the head's last tile step;
// several turns may be confirmed between two steps, and none of them may
// reverse it.
type Director struct {
	keys    map[KeyCode]Direction
	current Direction
	stepped Direction
	target  Steerer
}

func NewDirector(target Steerer, initial Direction) *Director {
	return &Director{
		keys: map[KeyCode]Direction{
			KeyLeft:  West,
			KeyRight: East,
			KeyUp:    North,
			KeyDown:  South,
		},
		current: initial,
		stepped: initial,
		target:  target,
	}
}

// Steer applies the heading for code and reports whether it was accepted.
// Unknown codes and reversals are ignored.
func (d *Director) Steer(code KeyCode) bool {
	dir, ok := d.keys[code]
	if !ok {
		return false
	}
	if rev := dir.Opposite(); rev == d.current || rev == d.stepped {
		return false
	}
	d.target.ChangeDirection(dir)
	d.current = dir
	return true
}

func (d *Director) KeyDown(code KeyCode) { d.Steer(code) }

// KeyUp does nothing: the snake keeps moving after a key is released.
func (d *Director) KeyUp(code KeyCode) {}

func (d *Director) Direction() Direction { return d.current }

// Commit records that the head has stepped with the confirmed direction.
// Call it once per tick, after the step.
func (d *Director) Commit() { d.stepped = d.current }
