package arena

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

// Kind classifies a renderable entity.
type Kind uint8

const (
	KindFood Kind = iota
	KindEnemyBody
	KindPlayerBody
	KindEnemyHead
	KindPlayerHead
)

func (k Kind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindEnemyBody:
		return "enemy-body"
	case KindPlayerBody:
		return "player-body"
	case KindEnemyHead:
		return "enemy-head"
	case KindPlayerHead:
		return "player-head"
	default:
		return "unknown"
	}
}

// Size is the render scale of an entity relative to one cell.
type Size struct {
	W, H float64
}

// Segment marks one body cell of a snake.
type Segment struct {
	Owner ecs.Entity
	Kind  Kind
}

// Food marks an edible item.
type Food struct{}

// Snake is an ordered body (head first) plus its heading.
type Snake struct {
	Body    []ecs.Entity
	Heading grid.Direction
	// Moved is the heading of the last committed step.
	Moved grid.Direction
	// TailPos is where the tail stood before the latest step; growth appends there.
	TailPos grid.Position
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Player tags the player's snake.
type Player struct{}

// Enemy tags an autonomous snake.
type Enemy struct {
	// Straight counts steps taken since the heading was last reconsidered.
	Straight int
}
