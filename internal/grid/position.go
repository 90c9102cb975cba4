// Package grid provides integer positions, headings and bounds for the arena.
// It has no dependencies so every other package can share these value types.
package grid

import "fmt"

// Position is a cell on the arena grid. Y grows upward.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Mul scales both coordinates by k.
func (p Position) Mul(k int) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// Div divides both coordinates by k, truncating toward zero.
func (p Position) Div(k int) Position {
	return Position{X: p.X / k, Y: p.Y / k}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
