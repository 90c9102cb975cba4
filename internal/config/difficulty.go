package config

import "time"

// DifficultyManager turns run progress (food eaten or ticks survived) into a
// movement cadence. Progress only ever speeds the snakes up.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = min(max(cfg.InitialLevel, 0), 1)
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled switches progression on or off mid-run.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

func (d *DifficultyManager) progressing() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level is the current difficulty in [InitialLevel, 1]. It moves linearly
// from the initial level to 1 as food (type "score") or ticks (type "time")
// approach MaxAt.
func (d *DifficultyManager) Level(food, ticks int) float64 {
	if !d.progressing() {
		return d.cfg.InitialLevel
	}

	var done int
	switch d.cfg.Progression.Type {
	case "score":
		done = food
	case "time":
		done = ticks
	default:
		return d.cfg.InitialLevel
	}

	target := max(d.cfg.Progression.MaxAt, 1)
	frac := min(max(float64(done)/float64(target), 0), 1)
	return d.cfg.InitialLevel + frac*(1-d.cfg.InitialLevel)
}

// MoveInterval is the cooldown between movement ticks. Without progression
// it is exactly tickBase/speed; with progression the speed grows by up to
// Scaling.SpeedMultiplier at level 1.
func (d *DifficultyManager) MoveInterval(tickBase time.Duration, speed, food, ticks int) time.Duration {
	if !d.cfg.Enabled {
		return tickBase / time.Duration(speed)
	}
	factor := 1 + d.Level(food, ticks)*d.cfg.Scaling.SpeedMultiplier
	return time.Duration(float64(tickBase) / (float64(speed) * factor))
}
