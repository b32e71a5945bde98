package game

// Direction is a cardinal movement heading. Y grows downward.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// Delta returns the unit step for the direction, or the zero Cell when d is
// not a valid direction.
func (d Direction) Delta() Cell {
	switch d {
	case North:
		return Cell{X: 0, Y: -1}
	case East:
		return Cell{X: 1, Y: 0}
	case South:
		return Cell{X: 0, Y: 1}
	case West:
		return Cell{X: -1, Y: 0}
	}
	return Cell{}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Unknown"
}
