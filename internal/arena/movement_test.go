package arena

import (
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

func TestMoveRespectsCooldown(t *testing.T) {
	w := playing(t, quietConfig())
	w.Frame(t0.Add(59*time.Millisecond), Intent{})
	if head, _, _ := w.PlayerHead(); head != grid.Pos(28, 28) {
		t.Fatalf("moved before the cooldown: head %v", head)
	}
	w.Frame(t0.Add(60*time.Millisecond), Intent{})
	if head, _, _ := w.PlayerHead(); head != grid.Pos(28, 29) {
		t.Errorf("head = %v, expected (28,29)", head)
	}
	if w.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", w.Ticks())
	}
}

func TestMoveShiftsBody(t *testing.T) {
	w := playing(t, quietConfig())
	e := w.spawnEnemy(grid.Pos(-5, 10))
	w.snake(e).Heading = grid.Right

	w.Frame(tick(w, 1), Intent{})

	want := []grid.Position{grid.Pos(-4, 10), grid.Pos(-5, 10), grid.Pos(-5, 9), grid.Pos(-5, 8)}
	got := bodyOf(w, e)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body = %v, expected %v", got, want)
		}
	}
	if s := w.snake(e); s.TailPos != grid.Pos(-5, 7) {
		t.Errorf("TailPos = %v, expected pre-tick tail (-5,7)", s.TailPos)
	}
	if w.enemies.Get(e).Straight != 1 {
		t.Errorf("Straight = %d, expected 1", w.enemies.Get(e).Straight)
	}
}

func TestMovePreservesSegmentCount(t *testing.T) {
	w := playing(t, quietConfig())
	enemies := []grid.Position{grid.Pos(-10, 5), grid.Pos(60, 20), grid.Pos(10, -3), grid.Pos(70, 70)}
	for _, p := range enemies {
		w.spawnEnemy(p)
	}

	for n := 1; n <= 20 && w.Phase() == PhasePlaying; n++ {
		before := map[ecs.Entity]int{}
		for _, e := range w.snakeEntities() {
			before[e] = w.snake(e).Len()
		}
		w.steer(Intent{})
		w.move(tick(w, n))
		for _, e := range w.snakeEntities() {
			if got := w.snake(e).Len(); got != before[e] {
				t.Fatalf("tick %d: segment count changed %d -> %d", n, before[e], got)
			}
		}
		w.deaths = w.deaths[:0]
	}
}

func TestGrowthAppendsAtPreTickTail(t *testing.T) {
	w := playing(t, quietConfig())
	w.addFood(grid.Pos(28, 29))

	w.Frame(tick(w, 1), Intent{})

	if w.PlayerLen() != 3 {
		t.Fatalf("PlayerLen() = %d, expected 3", w.PlayerLen())
	}
	want := []grid.Position{grid.Pos(28, 29), grid.Pos(28, 28), grid.Pos(28, 27)}
	got := bodyOf(w, w.player)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body = %v, expected %v", got, want)
		}
	}
	if w.FoodEaten() != 1 {
		t.Errorf("FoodEaten() = %d, expected 1", w.FoodEaten())
	}
	if c := w.Center(); c.Count() != 0 || c.Pos() != grid.Pos(28, 29) {
		t.Errorf("centroid = %v count %d, expected stale (28,29) count 0", c.Pos(), c.Count())
	}
	for _, r := range w.Snapshot() {
		if r.Kind == KindFood {
			t.Error("eaten food still rendered")
		}
	}
}

func TestEnemyGrowth(t *testing.T) {
	w := playing(t, quietConfig())
	e := w.spawnEnemy(grid.Pos(-10, 0))
	w.addFood(grid.Pos(-10, 1))
	w.addFood(grid.Pos(40, 40))

	w.Frame(tick(w, 1), Intent{})

	if got := w.snake(e).Len(); got != 5 {
		t.Fatalf("enemy length = %d, expected 5", got)
	}
	if body := bodyOf(w, e); body[4] != grid.Pos(-10, -3) {
		t.Errorf("new segment at %v, expected (-10,-3)", body[4])
	}
	if w.FoodEaten() != 0 {
		t.Error("enemy growth must not count as player food")
	}
	// (15,20)*2 - (-10,1) = (40,39): the truncated average does not recover (40,40)
	if c := w.Center(); c.Count() != 1 || c.Pos() != grid.Pos(40, 39) {
		t.Errorf("centroid = %v count %d, expected (40,39) count 1", c.Pos(), c.Count())
	}
}

func TestSharedFoodEatenOnce(t *testing.T) {
	w := playing(t, quietConfig())
	a := w.spawnEnemy(grid.Pos(-10, 0))
	b := w.spawnEnemy(grid.Pos(-9, 1))
	w.snake(b).Heading = grid.Left
	w.addFood(grid.Pos(-10, 1))

	// Both heads enter (-10,1) on the same tick
	w.Frame(tick(w, 1), Intent{})

	grown := 0
	if w.snake(a).Len() == 5 {
		grown++
	}
	if w.snake(b).Len() == 5 {
		grown++
	}
	if grown != 1 {
		t.Errorf("%d snakes grew from one food, expected 1", grown)
	}
	if w.Center().Count() != 0 {
		t.Errorf("centroid count = %d, expected 0", w.Center().Count())
	}
}

func TestPlayerLeavesArenaOnExactTick(t *testing.T) {
	w := playing(t, quietConfig())

	for n := 1; n < 28; n++ {
		w.Frame(tick(w, n), Intent{})
		if w.Phase() != PhasePlaying {
			t.Fatalf("game ended early on tick %d", n)
		}
		if head, _, _ := w.PlayerHead(); head != grid.Pos(28, 28+n) {
			t.Fatalf("tick %d: head %v, expected (28,%d)", n, head, 28+n)
		}
	}

	w.Frame(tick(w, 28), Intent{})
	if w.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v after tick 28, expected game-over", w.Phase())
	}
	if w.Ticks() != 28 {
		t.Errorf("Ticks() = %d, expected 28", w.Ticks())
	}
	// The crash frame does not move the player
	if head, _, _ := w.PlayerHead(); head != grid.Pos(28, 55) {
		t.Errorf("head = %v, expected (28,55)", head)
	}
	heat := w.Heatmap()
	if heat.Total() != 27 {
		t.Errorf("heat-map visits = %v, expected 27", heat.Total())
	}
}

func TestPlayerHitsFrozenBody(t *testing.T) {
	w := playing(t, quietConfig())
	// Enemy tail sits where the player moves next; it leaves this tick but
	// collisions use the positions from before anyone moved.
	w.spawnEnemy(grid.Pos(28, 32))

	w.Frame(tick(w, 1), Intent{})
	if w.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected game-over", w.Phase())
	}
}

func TestPlayerHitsOwnBody(t *testing.T) {
	w := playing(t, quietConfig())
	for n := range 3 {
		w.addFood(grid.Pos(28, 29+n))
	}
	for n := 1; n <= 3; n++ {
		w.Frame(tick(w, n), Intent{})
	}
	if w.PlayerLen() != 5 {
		t.Fatalf("PlayerLen() = %d, expected 5", w.PlayerLen())
	}
	// Up, right, down, left closes the loop onto the body
	w.Frame(tick(w, 4), Intent{Dir: grid.Right, Held: true})
	w.Frame(tick(w, 5), Intent{Dir: grid.Down, Held: true})
	w.Frame(tick(w, 6), Intent{Dir: grid.Left, Held: true})
	if w.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected game-over", w.Phase())
	}
}

func TestEnemyDiesOutsideExtendedArena(t *testing.T) {
	w := playing(t, quietConfig())
	top := w.extended.MaxY - 1
	w.spawnEnemy(grid.Pos(-10, top))
	survivor := w.spawnEnemy(grid.Pos(-20, 0))
	if w.Enemies() != 2 {
		t.Fatalf("Enemies() = %d, expected 2", w.Enemies())
	}

	w.Frame(tick(w, 1), Intent{})

	if w.Enemies() != 1 {
		t.Errorf("Enemies() = %d, expected 1", w.Enemies())
	}
	if len(w.snakeEntities()) != 2 {
		t.Errorf("snakes = %d, expected player and one enemy", len(w.snakeEntities()))
	}
	heads := 0
	for _, r := range w.Snapshot() {
		if r.Kind == KindEnemyHead {
			heads++
		}
		if r.Kind == KindEnemyBody && r.Pos.X == -10 {
			t.Errorf("dead enemy segment still present at %v", r.Pos)
		}
	}
	if heads != 1 {
		t.Errorf("enemy heads = %d, expected 1", heads)
	}
	if w.Phase() != PhasePlaying {
		t.Error("enemy death must not end the game")
	}
	if got := w.enemies.Get(survivor).Straight; got != 1 {
		t.Errorf("survivor Straight = %d, expected 1", got)
	}
}

func TestEnemyDiesOnOtherSnake(t *testing.T) {
	w := playing(t, quietConfig())
	e := w.spawnEnemy(grid.Pos(27, 27))
	w.snake(e).Heading = grid.Right

	// Enemy head moves into the player's body segment at (28,27)
	w.Frame(tick(w, 1), Intent{})

	if w.Enemies() != 0 {
		t.Errorf("Enemies() = %d, expected 0", w.Enemies())
	}
	if w.Phase() != PhasePlaying {
		t.Errorf("phase = %v, expected playing", w.Phase())
	}
}
