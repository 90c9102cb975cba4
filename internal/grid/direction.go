package grid

// Direction is a heading on the grid. The values are ordered clockwise so
// that turning is modulo arithmetic.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every heading in clockwise order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Rotate turns the heading n quarter steps clockwise.
func (d Direction) Rotate(n int) Direction {
	return Direction(((int(d)+n)%4 + 4) % 4)
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return d.Rotate(2)
}

// Vector returns the offset of moving step cells in this heading.
func (d Direction) Vector(step int) Position {
	switch d {
	case Up:
		return Position{X: 0, Y: step}
	case Right:
		return Position{X: step, Y: 0}
	case Down:
		return Position{X: 0, Y: -step}
	case Left:
		return Position{X: -step, Y: 0}
	default:
		return Position{}
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}
