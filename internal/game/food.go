package game

// NoFood is returned by FoodField.Test when nothing is in reach.
const NoFood = -1

// Food is one pickup. ID is unique within its field and lets a renderer
// drop whatever it drew for a consumed item.
type Food struct {
	ID       int
	Position Vec2
}

// FoodField owns the session's food. Items keep insertion order, so Test
// resolves ties to the oldest item.
type FoodField struct {
	items  []Food
	radius float64
	nextID int
}

func NewFoodField(radius float64) *FoodField {
	return &FoodField{radius: radius}
}

func (f *FoodField) Radius() float64 { return f.radius }

func (f *FoodField) Len() int { return len(f.items) }

// Items returns a copy of the current food in insertion order.
func (f *FoodField) Items() []Food {
	out := make([]Food, len(f.items))
	copy(out, f.items)
	return out
}

func (f *FoodField) Add(pos Vec2) Food {
	item := Food{ID: f.nextID, Position: pos}
	f.nextID++
	f.items = append(f.items, item)
	return item
}

// Test returns the index of the first food within the capture radius of
// pos, or NoFood.
func (f *FoodField) Test(pos Vec2) int {
	for i, item := range f.items {
		if pos.Dist(item.Position) <= f.radius {
			return i
		}
	}
	return NoFood
}

// Remove deletes the food at index i, preserving the order of the rest.
// Out-of-range indices, NoFood included, are ignored.
func (f *FoodField) Remove(i int) (Food, bool) {
	if i < 0 || i >= len(f.items) {
		return Food{}, false
	}
	item := f.items[i]
	f.items = append(f.items[:i], f.items[i+1:]...)
	return item, true
}

// Scatter adds up to count grid-aligned items at distinct random cells of a
// cols x rows area, skipping cells in exclude and cells that already hold
// food. It returns how many were placed.
func (f *FoodField) Scatter(r *Rand, count, cols, rows int, cellSize float64, exclude []Cell) int {
	taken := make(map[Cell]bool, len(exclude)+len(f.items)+count)
	for _, c := range exclude {
		taken[c] = true
	}
	for _, item := range f.items {
		taken[Cell{X: int(item.Position.X / cellSize), Y: int(item.Position.Y / cellSize)}] = true
	}

	free := make([]Cell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if c := (Cell{X: x, Y: y}); !taken[c] {
				free = append(free, c)
			}
		}
	}

	placed := 0
	for placed < count && len(free) > 0 {
		j := r.Intn(len(free))
		c := free[j]
		free[j] = free[len(free)-1]
		free = free[:len(free)-1]
		f.Add(c.World(cellSize))
		placed++
	}
	return placed
}
