package arena

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

// steer applies the player's held direction and lets every enemy that has run
// further than its own length pick a new heading.
func (w *World) steer(in Intent) {
	if in.Held && !w.player.IsZero() && w.ecs.Alive(w.player) {
		s := w.snake(w.player)
		if in.Dir != s.Heading.Opposite() && in.Dir != s.Moved.Opposite() {
			s.Heading = in.Dir
		}
	}

	q := w.enemyFilter.Query()
	for q.Next() {
		s, en := q.Get()
		if en.Straight <= s.Len() {
			continue
		}
		head := *w.positions.Get(s.Body[0])
		weights := TurnWeights(w.cfg.Enemies.Weights, s.Heading, w.center.Pos().Sub(head))
		s.Heading = s.Heading.Rotate(SampleTurn(w.rng, weights))
		en.Straight = 0
	}
}

// TurnWeights returns the sampling weight of each relative turn (0 straight,
// 1 right, 2 reverse, 3 left) for a snake heading h whose target lies at
// delta from its head. A zero base weight always yields zero.
//
// Offset i takes the pull of absolute direction i-h. For Right and Left
// headings that is the mirrored turn, not the turn facing the target.
func TurnWeights(base [4]int, h grid.Direction, delta grid.Position) [4]int {
	pull := [4]int{
		grid.Up:    max(delta.Y, 0),
		grid.Right: max(delta.X, 0),
		grid.Down:  max(-delta.Y, 0),
		grid.Left:  max(-delta.X, 0),
	}

	var weights [4]int
	for i, b := range base {
		if b == 0 {
			continue
		}
		weights[i] = b + pull[grid.Direction(i).Rotate(-int(h))]
	}
	return weights
}

// SampleTurn draws an index with probability proportional to its weight.
// It panics when the weights sum to zero.
func SampleTurn(rng *rand.Rand, weights [4]int) int {
	var cum [4]int
	total := 0
	for i, wt := range weights {
		total += max(wt, 0)
		cum[i] = total
	}
	if total <= 0 {
		panic("arena: turn weights sum to zero")
	}
	r := rng.Intn(total)
	return sort.Search(len(cum), func(i int) bool { return cum[i] > r })
}
