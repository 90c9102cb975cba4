// Package arena is the snake arena simulation: a player snake and autonomous
// enemy snakes moving on a bounded grid, eating food and colliding.
//
// The world advances only when Frame is called. Every system runs as an
// ordered step of a single frame: input and steering, the movement tick,
// growth and death consumers, then the spawners.
package arena

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/grid"
	"github.com/vovakirdan/snake-arena/internal/scoring"
)

// Phase is a step of the session state machine.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseShowScore
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	case PhaseShowScore:
		return "show-score"
	default:
		return "unknown"
	}
}

// Intent is the input sampled for one frame.
type Intent struct {
	Dir   grid.Direction
	Held  bool // Dir is pressed
	Start bool // leave the menu
}

// Event is a notable moment reported to listeners.
type Event uint8

const (
	EventStart Event = iota
	EventFoodEaten
	EventEnemyDied
	EventGameOver
	EventScored
)

// Result summarises a finished session.
type Result struct {
	Food     int
	Bonus    int
	Score    int
	Ticks    int
	Duration time.Duration
	EndedAt  time.Time
}

type growthEvent struct {
	snake ecs.Entity
	food  ecs.Entity
	pos   grid.Position
}

// World owns the entity storage and all session state.
type World struct {
	cfg        config.ArenaConfig
	log        *log.Logger
	rng        *rand.Rand
	scorer     scoring.Scorer
	listener   func(Event)
	difficulty *config.DifficultyManager

	ecs       *ecs.World
	positions *ecs.Map[grid.Position]
	segments  *ecs.Map[Segment]
	snakes    *ecs.Map[Snake]
	enemies   *ecs.Map[Enemy]
	players   *ecs.Map[Player]

	segmentBuilder *ecs.Map3[grid.Position, Size, Segment]
	foodBuilder    *ecs.Map3[grid.Position, Size, Food]
	playerBuilder  *ecs.Map2[Snake, Player]
	enemyBuilder   *ecs.Map2[Snake, Enemy]

	snakeFilter    *ecs.Filter1[Snake]
	enemyFilter    *ecs.Filter2[Snake, Enemy]
	foodFilter     *ecs.Filter2[grid.Position, Food]
	segmentFilter  *ecs.Filter3[grid.Position, Size, Segment]
	renderFoodFilt *ecs.Filter3[grid.Position, Size, Food]

	arena    grid.Bounds
	extended grid.Bounds

	phase     Phase
	timers    Timers
	counters  Counters
	center    FoodCenter
	heat      scoring.Heatmap
	player    ecs.Entity
	food      int
	ticks     int
	startedAt time.Time
	visible   bool
	last      *Result

	growth []growthEvent
	deaths []ecs.Entity
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger for phase transitions and diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithScorer sets the bonus scorer consulted at the end of a session.
func WithScorer(s scoring.Scorer) Option {
	return func(w *World) {
		if s != nil {
			w.scorer = s
		}
	}
}

// WithListener registers a callback for notable events. It runs inside
// Frame and must not call back into the World.
func WithListener(fn func(Event)) Option {
	return func(w *World) {
		w.listener = fn
	}
}

// New creates a world in the menu phase.
func New(cfg config.ArenaConfig, seed int64, opts ...Option) *World {
	store := ecs.NewWorld()
	world := &store
	w := &World{
		cfg:        cfg,
		log:        log.New(io.Discard),
		rng:        rand.New(rand.NewSource(seed)),
		scorer:     scoring.NopScorer{},
		difficulty: config.NewDifficultyManager(cfg.Difficulty),

		ecs:       world,
		positions: ecs.NewMap[grid.Position](world),
		segments:  ecs.NewMap[Segment](world),
		snakes:    ecs.NewMap[Snake](world),
		enemies:   ecs.NewMap[Enemy](world),
		players:   ecs.NewMap[Player](world),

		segmentBuilder: ecs.NewMap3[grid.Position, Size, Segment](world),
		foodBuilder:    ecs.NewMap3[grid.Position, Size, Food](world),
		playerBuilder:  ecs.NewMap2[Snake, Player](world),
		enemyBuilder:   ecs.NewMap2[Snake, Enemy](world),

		snakeFilter:    ecs.NewFilter1[Snake](world),
		enemyFilter:    ecs.NewFilter2[Snake, Enemy](world),
		foodFilter:     ecs.NewFilter2[grid.Position, Food](world),
		segmentFilter:  ecs.NewFilter3[grid.Position, Size, Segment](world),
		renderFoodFilt: ecs.NewFilter3[grid.Position, Size, Food](world),

		arena:    grid.ArenaBounds(cfg.Arena.Width, cfg.Arena.Height),
		extended: grid.ExtendedBounds(cfg.Arena.Width, cfg.Arena.Height),
		phase:    PhaseMenu,
		visible:  true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Frame advances the simulation to now using the input sampled this frame.
func (w *World) Frame(now time.Time, in Intent) {
	switch w.phase {
	case PhaseMenu:
		if in.Start {
			w.startPlaying(now)
		}
	case PhasePlaying:
		w.spawnEnemies(now)
		w.steer(in)
		w.move(now)
		w.consumeGrowth()
		w.consumeDeaths()
		if w.phase == PhasePlaying {
			w.spawnFood(now)
		}
	case PhaseGameOver:
		w.flash(now)
	case PhaseShowScore:
		w.showScore(now)
	}
}

func (w *World) startPlaying(now time.Time) {
	w.timers.Reset(now)
	w.counters.Reset()
	w.center.Reset()
	w.heat.Reset()
	w.food = 0
	w.ticks = 0
	w.startedAt = now
	w.visible = true

	cx, cy := w.cfg.Arena.Width/2, w.cfg.Arena.Height/2
	w.player = w.spawnPlayer(grid.Pos(cx, cy))

	w.setPhase(PhasePlaying)
	w.emit(EventStart)
}

func (w *World) endGame() {
	w.setPhase(PhaseGameOver)
	w.emit(EventGameOver)
}

// flash toggles the end-of-game mask, holds it, then tears the board down.
func (w *World) flash(now time.Time) {
	if !w.timers.Due(TimerFlash, now, w.cfg.FlashInterval()) {
		return
	}
	w.timers.Mark(TimerFlash, now)

	toggles := w.cfg.Effects.FlashToggles
	switch {
	case w.counters.Less(CounterFlash, toggles):
		w.visible = w.counters.Even(CounterFlash)
		w.counters.Inc(CounterFlash)
	case w.counters.Less(CounterFlash, toggles+w.cfg.Effects.FlashHold):
		w.counters.Inc(CounterFlash)
	default:
		w.teardown(now)
		w.setPhase(PhaseShowScore)
	}
}

func (w *World) showScore(now time.Time) {
	bonus, err := w.scorer.Bonus(context.Background(), &w.heat)
	if err != nil {
		w.log.Warn("scoring failed, no bonus awarded", "err", err)
		bonus = 0
	}
	w.last = &Result{
		Food:     w.food,
		Bonus:    bonus,
		Score:    w.food + bonus,
		Ticks:    w.ticks,
		Duration: now.Sub(w.startedAt),
		EndedAt:  now,
	}
	w.log.Info("session scored", "food", w.food, "bonus", bonus, "score", w.last.Score, "ticks", w.ticks)
	w.emit(EventScored)
	w.setPhase(PhaseMenu)
}

// teardown destroys every entity and restarts all cadences.
func (w *World) teardown(now time.Time) {
	var doomed []ecs.Entity
	q := w.snakeFilter.Query()
	for q.Next() {
		doomed = append(doomed, q.Entity())
		doomed = append(doomed, q.Get().Body...)
	}
	fq := w.foodFilter.Query()
	for fq.Next() {
		doomed = append(doomed, fq.Entity())
	}
	for _, e := range doomed {
		w.ecs.RemoveEntity(e)
	}

	w.timers.Reset(now)
	w.counters.Reset()
	w.center.Reset()
	w.growth = w.growth[:0]
	w.deaths = w.deaths[:0]
	w.player = ecs.Entity{}
	w.visible = true
}

func (w *World) setPhase(p Phase) {
	if w.phase == p {
		return
	}
	w.log.Debug("phase", "from", w.phase, "to", p)
	w.phase = p
}

func (w *World) emit(e Event) {
	if w.listener != nil {
		w.listener(e)
	}
}

func (w *World) moveInterval() time.Duration {
	base := time.Duration(w.cfg.Snake.TickBaseMS) * time.Millisecond
	return w.difficulty.MoveInterval(base, w.cfg.Snake.Speed, w.food, w.ticks)
}

// snake returns the live snake component of e.
func (w *World) snake(e ecs.Entity) *Snake {
	if !w.ecs.Alive(e) {
		panic(fmt.Sprintf("arena: snake lookup on dead entity %v", e))
	}
	return w.snakes.Get(e)
}

// position returns the live position component of e.
func (w *World) position(e ecs.Entity) *grid.Position {
	if !w.ecs.Alive(e) {
		panic(fmt.Sprintf("arena: position lookup on dead entity %v", e))
	}
	return w.positions.Get(e)
}

// Phase returns the current phase.
func (w *World) Phase() Phase { return w.phase }

// FoodEaten returns the food eaten by the player this session.
func (w *World) FoodEaten() int { return w.food }

// Enemies returns the number of live enemies.
func (w *World) Enemies() int { return w.counters.Get(CounterEnemies) }

// Ticks returns the number of movement ticks this session.
func (w *World) Ticks() int { return w.ticks }

// Center returns the food centroid tracker.
func (w *World) Center() FoodCenter { return w.center }

// Heatmap returns a copy of the session heat-map.
func (w *World) Heatmap() scoring.Heatmap { return w.heat }

// Visible reports whether the board is shown; false during the dark half of
// the end-of-game flash.
func (w *World) Visible() bool { return w.visible }

// Config returns the configuration the world was built with.
func (w *World) Config() config.ArenaConfig { return w.cfg }

// LastResult returns the result of the most recent finished session.
func (w *World) LastResult() (Result, bool) {
	if w.last == nil {
		return Result{}, false
	}
	return *w.last, true
}

// PlayerHead returns the player's head position and heading, if the player
// snake exists.
func (w *World) PlayerHead() (grid.Position, grid.Direction, bool) {
	if w.player.IsZero() || !w.ecs.Alive(w.player) {
		return grid.Position{}, grid.Up, false
	}
	s := w.snakes.Get(w.player)
	return *w.position(s.Body[0]), s.Heading, true
}

// PlayerLen returns the player's segment count, or 0 without a player.
func (w *World) PlayerLen() int {
	if w.player.IsZero() || !w.ecs.Alive(w.player) {
		return 0
	}
	return w.snakes.Get(w.player).Len()
}
