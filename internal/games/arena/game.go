// Package arena adapts the snake arena simulation to the platform's Game
// interface: it turns input frames into intents and draws the world into a
// character screen.
package arena

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	sim "github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/audio"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/scoring"
)

// Mode selects the registered variant.
type Mode string

const (
	ModeArena Mode = "arena"
	ModeSolo  Mode = "arena_solo"
)

// Package-level collaborators, set from the CLI before games are created.
var (
	mu               sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	scorer           scoring.Scorer = scoring.NopScorer{}
	logger                          = log.New(io.Discard)
	cues             *audio.Player
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	mu.Lock()
	configPath = path
	mu.Unlock()
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	mu.Lock()
	difficultyPreset = parsePreset(preset)
	mu.Unlock()
}

// SetScorer installs the bonus scorer used when a session ends.
func SetScorer(s scoring.Scorer) {
	mu.Lock()
	defer mu.Unlock()
	if s == nil {
		s = scoring.NopScorer{}
	}
	scorer = s
}

// SetLogger sets the logger handed to new worlds.
func SetLogger(l *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetAudio sets the cue player. Nil disables sound.
func SetAudio(p *audio.Player) {
	mu.Lock()
	cues = p
	mu.Unlock()
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          string(ModeArena),
		Title:       "Snake Arena",
		Description: "Outlast the enemy snakes roaming in from beyond the walls",
	}, func() registry.Game { return New() })
	registry.Register(registry.GameInfo{
		ID:          string(ModeSolo),
		Title:       "Snake Arena (Solo)",
		Description: "Just you and the food",
	}, func() registry.Game { return NewSolo() })
}

// Game implements registry.Game for the arena.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.ArenaConfig
	world   *sim.World
	log     *log.Logger
	audio   *audio.Player
	clock   func() time.Time
	paused  bool
	preset  config.DifficultyPreset
}

// New creates the arena with enemies.
func New() *Game {
	return &Game{mode: ModeArena, clock: time.Now}
}

// NewSolo creates the arena without enemies.
func NewSolo() *Game {
	return &Game{mode: ModeSolo, clock: time.Now}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSolo {
		return "Snake Arena (Solo)"
	}
	return "Snake Arena"
}

// Reset loads the configuration and builds a fresh world in the menu phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	mu.RLock()
	path, preset, sc, l, player := configPath, difficultyPreset, scorer, logger, cues
	mu.RUnlock()
	if g.preset != "" {
		preset = g.preset
	}

	g.runtime = runtime
	g.log = l.With("game", g.ID())
	g.audio = player
	g.paused = false

	cfg, err := config.LoadArena(path)
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
		cfg = config.DefaultArenaConfig()
	}
	config.ApplyArenaPreset(&cfg, preset)
	if g.mode == ModeSolo {
		cfg.Enemies.Cap = 0
	}
	g.cfg = cfg

	g.world = sim.New(cfg, runtime.Seed,
		sim.WithLogger(g.log),
		sim.WithScorer(sc),
		sim.WithListener(g.onEvent),
	)
}

// SetDifficulty overrides the package preset for this instance. It takes
// effect on the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = parsePreset(preset)
}

func parsePreset(preset string) config.DifficultyPreset {
	switch p := config.DifficultyPreset(preset); p {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return p
	}
	return ""
}

// Step feeds one platform frame into the world.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionMute) && g.audio != nil {
		g.audio.SetMuted(!g.audio.Muted())
	}
	if in.Has(core.ActionPause) && g.world.Phase() == sim.PhasePlaying {
		g.paused = !g.paused
	}
	if !g.paused {
		now := in.At
		if now.IsZero() {
			now = g.clock()
		}
		g.world.Frame(now, intentFor(in))
	}
	return core.StepResult{State: g.State()}
}

// State reports the live session, or the last scored one while the world
// waits in its menu.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	if g.world.Phase() == sim.PhaseMenu {
		if r, ok := g.world.LastResult(); ok {
			return core.GameState{
				Score:    r.Score,
				Food:     r.Food,
				Bonus:    r.Bonus,
				GameOver: true,
				Ticks:    r.Ticks,
				Elapsed:  r.Duration,
			}
		}
		return core.GameState{}
	}
	return core.GameState{
		Score:  g.world.FoodEaten(),
		Food:   g.world.FoodEaten(),
		Paused: g.paused,
		Active: true,
		Ticks:  g.world.Ticks(),
	}
}

// World exposes the simulation for inspection.
func (g *Game) World() *sim.World {
	return g.world
}

// Snapshot returns every renderable entity with the colour it is drawn in.
func (g *Game) Snapshot() []Sprite {
	items := g.world.Snapshot()
	out := make([]Sprite, len(items))
	for i, r := range items {
		out[i] = Sprite{Renderable: r, Color: colorOf(r.Kind), Glyph: glyphOf(r)}
	}
	return out
}

func (g *Game) onEvent(e sim.Event) {
	c, ok := cueFor(e)
	if !ok {
		return
	}
	g.audio.Trigger(c)
}

// cueFor maps simulation events to sound cues.
func cueFor(e sim.Event) (audio.Cue, bool) {
	switch e {
	case sim.EventStart:
		return audio.CueStart, true
	case sim.EventFoodEaten:
		return audio.CueEat, true
	case sim.EventEnemyDied:
		return audio.CueEnemyDown, true
	case sim.EventGameOver:
		return audio.CueGameOver, true
	case sim.EventScored:
		return audio.CueScore, true
	}
	return 0, false
}
