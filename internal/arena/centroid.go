package arena

import "github.com/vovakirdan/snake-arena/internal/grid"

// FoodCenter tracks the average position of live food incrementally, using
// truncating integer division at every step. The truncation error is kept
// on purpose: enemies steer by this value.
type FoodCenter struct {
	count int
	pos   grid.Position
}

// Add folds p into the average.
func (f *FoodCenter) Add(p grid.Position) {
	old := f.count
	f.count++
	f.pos = f.pos.Mul(old).Add(p).Div(f.count)
}

// Remove takes p out of the average. When the last item goes the position is
// left where it was.
func (f *FoodCenter) Remove(p grid.Position) {
	old := f.count
	f.count--
	if f.count < 1 {
		f.count = 0
		return
	}
	f.pos = f.pos.Mul(old).Sub(p).Div(f.count)
}

// Pos returns the current centroid.
func (f FoodCenter) Pos() grid.Position {
	return f.pos
}

// Count returns the number of tracked items.
func (f FoodCenter) Count() int {
	return f.count
}

// Reset forgets every item and returns the centroid to the origin.
func (f *FoodCenter) Reset() {
	*f = FoodCenter{}
}
