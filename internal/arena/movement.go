package arena

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

type foodAt struct {
	entity ecs.Entity
	pos    grid.Position
}

// move advances every snake one cell once the movement cooldown has elapsed.
// Collisions are classified against positions frozen before any snake moves.
func (w *World) move(now time.Time) {
	if !w.timers.Due(TimerPlayer, now, w.moveInterval()) {
		return
	}
	w.timers.Mark(TimerPlayer, now)
	w.ticks++

	occupied := w.occupiedCells()
	foods := w.foodCells()

	for _, e := range w.snakeEntities() {
		s := w.snake(e)
		body := w.bodyPositions(s)
		s.TailPos = body[len(body)-1]
		next := body[0].Add(s.Heading.Vector(1))
		_, hit := occupied[next]

		if w.players.Has(e) {
			if hit || !w.arena.Contains(next) {
				w.log.Debug("player crashed", "at", next, "heading", s.Heading, "tick", w.ticks)
				w.endGame()
				return
			}
			w.heat.Record(next, w.cfg.Arena.Width, w.cfg.Arena.Height)
		} else {
			if hit || !w.extended.Contains(next) {
				w.deaths = append(w.deaths, e)
				continue
			}
			w.enemies.Get(e).Straight++
		}

		for _, f := range foods {
			if f.pos == next {
				w.growth = append(w.growth, growthEvent{snake: e, food: f.entity, pos: f.pos})
			}
		}

		*w.position(s.Body[0]) = next
		for i, seg := range s.Body[1:] {
			*w.position(seg) = body[i]
		}
		s.Moved = s.Heading
	}
}

// snakeEntities lists every snake so systems can mutate storage outside the
// query.
func (w *World) snakeEntities() []ecs.Entity {
	var out []ecs.Entity
	q := w.snakeFilter.Query()
	for q.Next() {
		out = append(out, q.Entity())
	}
	return out
}

// occupiedCells snapshots the position of every body segment.
func (w *World) occupiedCells() map[grid.Position]struct{} {
	cells := make(map[grid.Position]struct{})
	q := w.segmentFilter.Query()
	for q.Next() {
		p, _, _ := q.Get()
		cells[*p] = struct{}{}
	}
	return cells
}

func (w *World) foodCells() []foodAt {
	var out []foodAt
	q := w.foodFilter.Query()
	for q.Next() {
		p, _ := q.Get()
		out = append(out, foodAt{entity: q.Entity(), pos: *p})
	}
	return out
}

func (w *World) bodyPositions(s *Snake) []grid.Position {
	out := make([]grid.Position, len(s.Body))
	for i, seg := range s.Body {
		out[i] = *w.position(seg)
	}
	return out
}
