package arena

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/grid"
	"github.com/vovakirdan/snake-arena/internal/scoring"
)

var t0 = time.Unix(1_700_000_000, 0)

// quietConfig returns the defaults with spawning disabled so tests control
// every entity.
func quietConfig() config.ArenaConfig {
	cfg := config.DefaultArenaConfig()
	cfg.Enemies.Cap = 0
	cfg.Food.SpawnIntervalMS = int(time.Hour / time.Millisecond)
	return cfg
}

// playing returns a world that has just left the menu at t0.
func playing(t *testing.T, cfg config.ArenaConfig, opts ...Option) *World {
	t.Helper()
	w := New(cfg, 1, opts...)
	w.Frame(t0, Intent{Start: true})
	if w.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", w.Phase())
	}
	return w
}

// tick returns the instant of movement tick n after t0.
func tick(w *World, n int) time.Time {
	return t0.Add(time.Duration(n) * w.Config().MoveInterval())
}

func bodyOf(w *World, e ecs.Entity) []grid.Position {
	return w.bodyPositions(w.snake(e))
}

type fixedScorer struct {
	bonus int
	err   error
	seen  float32
}

func (f *fixedScorer) Bonus(_ context.Context, h *scoring.Heatmap) (int, error) {
	f.seen = h.Total()
	return f.bonus, f.err
}

var errScorer = errors.New("model unavailable")
