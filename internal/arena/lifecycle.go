package arena

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

// consumeGrowth drains this frame's growth events. Food already eaten by an
// earlier event this frame is not eaten twice.
func (w *World) consumeGrowth() {
	for _, ev := range w.growth {
		if !w.ecs.Alive(ev.food) || !w.ecs.Alive(ev.snake) {
			continue
		}
		w.center.Remove(ev.pos)
		w.ecs.RemoveEntity(ev.food)

		isPlayer := w.players.Has(ev.snake)
		kind := KindEnemyBody
		if isPlayer {
			kind = KindPlayerBody
		}
		tail := w.snake(ev.snake).TailPos
		seg := w.newSegment(ev.snake, tail, kind)
		s := w.snake(ev.snake)
		s.Body = append(s.Body, seg)

		if isPlayer {
			w.food++
			w.emit(EventFoodEaten)
		}
	}
	w.growth = w.growth[:0]
}

// consumeDeaths removes every enemy that died this frame.
func (w *World) consumeDeaths() {
	for _, e := range w.deaths {
		if !w.ecs.Alive(e) {
			continue
		}
		body := w.snake(e).Body
		for _, seg := range body {
			w.ecs.RemoveEntity(seg)
		}
		w.ecs.RemoveEntity(e)
		w.counters.Dec(CounterEnemies)
		w.log.Debug("enemy died", "enemies", w.counters.Get(CounterEnemies))
		w.emit(EventEnemyDied)
	}
	w.deaths = w.deaths[:0]
}

// spawnEnemies adds one enemy per interval while the population is below the cap.
func (w *World) spawnEnemies(now time.Time) {
	if !w.counters.Less(CounterEnemies, w.cfg.Enemies.Cap) {
		return
	}
	if !w.timers.Due(TimerEnemySpawn, now, w.cfg.EnemySpawnInterval()) {
		return
	}
	w.timers.Mark(TimerEnemySpawn, now)
	w.spawnEnemy(w.enemySpawnPoint())
}

// enemySpawnPoint picks a head position in one of the twelve half-arena
// blocks surrounding the arena. The body extends downward from the head.
func (w *World) enemySpawnPoint() grid.Position {
	width, height := w.cfg.Arena.Width, w.cfg.Arena.Height
	hw, hh := width/2, height/2

	px, py := w.spawnBlock()
	p := grid.Pos(
		blockOrigin(px, width, hw)+w.rng.Intn(hw),
		blockOrigin(py, height, hh)+w.rng.Intn(hh),
	)
	// Only heads in the bottom row of blocks (py == -1) can sit low enough
	// for the tail to leave the extended area; lift those.
	p.Y = max(p.Y, w.extended.MinY+w.cfg.Enemies.InitialLength-1)
	return p
}

// spawnBlock draws block indices in [-1, 2] on each axis, rejecting the four
// blocks that make up the arena itself.
func (w *World) spawnBlock() (px, py int) {
	for {
		px, py = w.rng.Intn(4)-1, w.rng.Intn(4)-1
		if !(isArenaBlock(px) && isArenaBlock(py)) {
			return px, py
		}
	}
}

func isArenaBlock(b int) bool { return b == 0 || b == 1 }

// blockOrigin returns the first coordinate of block index b in [-1, 2] along
// an axis of the given size.
func blockOrigin(b, size, half int) int {
	switch b {
	case -1:
		return -half
	case 0:
		return 0
	case 1:
		return half
	default:
		return size
	}
}

// spawnFood drops one food item per interval at a uniform arena position.
func (w *World) spawnFood(now time.Time) {
	if !w.timers.Due(TimerFoodSpawn, now, w.cfg.FoodSpawnInterval()) {
		return
	}
	w.timers.Mark(TimerFoodSpawn, now)
	w.addFood(grid.Pos(w.rng.Intn(w.cfg.Arena.Width), w.rng.Intn(w.cfg.Arena.Height)))
}

func (w *World) addFood(p grid.Position) ecs.Entity {
	size := Size{W: w.cfg.Food.Size, H: w.cfg.Food.Size}
	e := w.foodBuilder.NewEntity(&p, &size, &Food{})
	w.center.Add(p)
	return e
}

// spawnPlayer creates the player heading up with one body segment below the head.
func (w *World) spawnPlayer(head grid.Position) ecs.Entity {
	e := w.playerBuilder.NewEntity(&Snake{Heading: grid.Up, Moved: grid.Up}, &Player{})
	body := []ecs.Entity{
		w.newSegment(e, head, KindPlayerHead),
		w.newSegment(e, head.Add(grid.Down.Vector(1)), KindPlayerBody),
	}
	s := w.snake(e)
	s.Body = body
	s.TailPos = head.Add(grid.Down.Vector(1))
	return e
}

// spawnEnemy creates an enemy heading up with its body trailing downward.
func (w *World) spawnEnemy(head grid.Position) ecs.Entity {
	e := w.enemyBuilder.NewEntity(&Snake{Heading: grid.Up, Moved: grid.Up}, &Enemy{})
	n := w.cfg.Enemies.InitialLength
	body := make([]ecs.Entity, 0, n)
	for i := range n {
		kind := KindEnemyBody
		if i == 0 {
			kind = KindEnemyHead
		}
		body = append(body, w.newSegment(e, head.Add(grid.Down.Vector(i)), kind))
	}
	s := w.snake(e)
	s.Body = body
	s.TailPos = head.Add(grid.Down.Vector(n - 1))
	w.counters.Inc(CounterEnemies)
	return e
}

func (w *World) newSegment(owner ecs.Entity, p grid.Position, kind Kind) ecs.Entity {
	scale := w.cfg.Snake.BodySize
	if kind == KindPlayerHead || kind == KindEnemyHead {
		scale = w.cfg.Snake.HeadSize
	}
	return w.segmentBuilder.NewEntity(&p, &Size{W: scale, H: scale}, &Segment{Owner: owner, Kind: kind})
}
