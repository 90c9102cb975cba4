package arena

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/grid"
)

var defaultWeights = [4]int{60, 20, 0, 20}

func TestTurnWeights(t *testing.T) {
	tests := []struct {
		name    string
		heading grid.Direction
		delta   grid.Position
		want    [4]int
	}{
		{"on target", grid.Up, grid.Pos(0, 0), [4]int{60, 20, 0, 20}},
		{"ahead", grid.Up, grid.Pos(0, 10), [4]int{70, 20, 0, 20}},
		{"to the right heading up", grid.Up, grid.Pos(5, 0), [4]int{60, 25, 0, 20}},
		{"to the right heading right", grid.Right, grid.Pos(5, 0), [4]int{60, 20, 0, 20}},
		{"far right heading right", grid.Right, grid.Pos(100, 0), [4]int{60, 20, 0, 20}},
		{"to the right heading left", grid.Left, grid.Pos(5, 0), [4]int{65, 20, 0, 20}},
		{"behind heading down", grid.Down, grid.Pos(0, 8), [4]int{60, 20, 0, 20}},
		{"ahead heading down", grid.Down, grid.Pos(0, -8), [4]int{68, 20, 0, 20}},
		{"below heading right", grid.Right, grid.Pos(0, -7), [4]int{60, 20, 0, 27}},
		{"above heading right", grid.Right, grid.Pos(0, 9), [4]int{60, 29, 0, 20}},
		{"below left heading left", grid.Left, grid.Pos(-3, -4), [4]int{60, 24, 0, 20}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TurnWeights(defaultWeights, tc.heading, tc.delta); got != tc.want {
				t.Errorf("TurnWeights() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestTurnWeightsNeverReverse(t *testing.T) {
	for _, h := range grid.Directions {
		for dx := -60; dx <= 60; dx += 7 {
			for dy := -60; dy <= 60; dy += 7 {
				got := TurnWeights(defaultWeights, h, grid.Pos(dx, dy))
				if got[2] != 0 {
					t.Fatalf("heading %v delta (%d,%d): reverse weight %d", h, dx, dy, got[2])
				}
				sum := got[0] + got[1] + got[2] + got[3]
				if sum <= 0 {
					t.Fatalf("heading %v delta (%d,%d): weights sum to %d", h, dx, dy, sum)
				}
			}
		}
	}
}

func TestSampleTurn(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var seen [4]int
	for range 5000 {
		seen[SampleTurn(rng, defaultWeights)]++
	}
	if seen[2] != 0 {
		t.Errorf("reverse sampled %d times", seen[2])
	}
	for _, i := range []int{0, 1, 3} {
		if seen[i] == 0 {
			t.Errorf("offset %d never sampled", i)
		}
	}
	if seen[0] < seen[1] || seen[0] < seen[3] {
		t.Errorf("straight should dominate: %v", seen)
	}
}

func TestSampleTurnSingleOption(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 100 {
		if got := SampleTurn(rng, [4]int{0, 0, 0, 9}); got != 3 {
			t.Fatalf("SampleTurn() = %d, expected 3", got)
		}
	}
}

func TestSampleTurnPanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero weights")
		}
	}()
	SampleTurn(rand.New(rand.NewSource(1)), [4]int{})
}

func TestSteerPlayerInput(t *testing.T) {
	tests := []struct {
		name  string
		steps []grid.Direction
		want  grid.Direction
	}{
		{"turn right", []grid.Direction{grid.Right}, grid.Right},
		{"reverse ignored", []grid.Direction{grid.Down}, grid.Up},
		{"two turns before a step", []grid.Direction{grid.Right, grid.Down}, grid.Right},
		{"turn back", []grid.Direction{grid.Left, grid.Up}, grid.Up},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := playing(t, quietConfig())
			for _, d := range tc.steps {
				w.Frame(t0, Intent{Dir: d, Held: true})
			}
			_, heading, _ := w.PlayerHead()
			if heading != tc.want {
				t.Errorf("heading = %v, expected %v", heading, tc.want)
			}
		})
	}
}

func TestSteerEnemyCadence(t *testing.T) {
	w := playing(t, quietConfig())
	e := w.spawnEnemy(grid.Pos(-10, -10))
	w.addFood(grid.Pos(40, 40))

	en := w.enemies.Get(e)
	en.Straight = w.snake(e).Len()
	w.steer(Intent{})
	if w.enemies.Get(e).Straight != w.snake(e).Len() {
		t.Fatal("enemy re-steered before exceeding its length")
	}

	for seed := range int64(200) {
		w.rng = rand.New(rand.NewSource(seed))
		s := w.snake(e)
		before := s.Heading
		w.enemies.Get(e).Straight = s.Len() + 1
		w.steer(Intent{})

		if got := w.enemies.Get(e).Straight; got != 0 {
			t.Fatalf("Straight = %d after steering, expected 0", got)
		}
		if after := w.snake(e).Heading; after == before.Opposite() {
			t.Fatalf("seed %d: heading reversed from %v to %v", seed, before, after)
		}
	}
}
