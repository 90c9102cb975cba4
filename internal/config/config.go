// Package config provides YAML-based arena configuration loading, validation
// and difficulty management.
package config

import "time"

// ArenaConfig contains all configuration for the snake arena simulation.
type ArenaConfig struct {
	Arena      ArenaGrid        `yaml:"arena" validate:"required"`
	Snake      SnakeSettings    `yaml:"snake" validate:"required"`
	Enemies    EnemySettings    `yaml:"enemies"`
	Food       FoodSettings     `yaml:"food" validate:"required"`
	Effects    EffectSettings   `yaml:"effects" validate:"required"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaGrid defines the playing field dimensions in cells.
type ArenaGrid struct {
	Width  int `yaml:"width" validate:"min=8,max=1024"`
	Height int `yaml:"height" validate:"min=8,max=1024"`
}

// SnakeSettings defines movement cadence and segment render sizes.
type SnakeSettings struct {
	Speed      int     `yaml:"speed" validate:"min=1,max=100"`           // Cells per TickBase
	TickBaseMS int     `yaml:"tick_base_ms" validate:"min=10,max=10000"` // Divided by speed to get the move interval
	HeadSize   float64 `yaml:"head_size" validate:"gt=0,lte=1"`
	BodySize   float64 `yaml:"body_size" validate:"gt=0,lte=1"`
}

// EnemySettings defines the enemy population and steering.
type EnemySettings struct {
	Cap             int    `yaml:"cap" validate:"min=0,max=1000"`
	SpawnIntervalMS int    `yaml:"spawn_interval_ms" validate:"min=0"`
	InitialLength   int    `yaml:"initial_length" validate:"min=2,max=64"`
	Weights         [4]int `yaml:"weights" validate:"dive,min=0"` // straight, right, reverse, left
}

// FoodSettings defines food spawning.
type FoodSettings struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms" validate:"min=1"`
	Size            float64 `yaml:"size" validate:"gt=0,lte=1"`
}

// EffectSettings defines the end-of-game flash cue.
type EffectSettings struct {
	FlashIntervalMS int `yaml:"flash_interval_ms" validate:"min=1"`
	FlashToggles    int `yaml:"flash_toggles" validate:"min=0"`
	FlashHold       int `yaml:"flash_hold" validate:"min=0"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" validate:"gte=0,lte=1"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" validate:"omitempty,oneof=score time none"`
	MaxAt int    `yaml:"max_at" validate:"min=0"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" validate:"gte=0"` // Multiplier added to speed at max difficulty
}

// MoveInterval returns the base cooldown between movement ticks.
func (c ArenaConfig) MoveInterval() time.Duration {
	return time.Duration(c.Snake.TickBaseMS) * time.Millisecond / time.Duration(c.Snake.Speed)
}

// EnemySpawnInterval returns the cooldown between enemy spawn attempts.
func (c ArenaConfig) EnemySpawnInterval() time.Duration {
	return time.Duration(c.Enemies.SpawnIntervalMS) * time.Millisecond
}

// FoodSpawnInterval returns the cooldown between food spawns.
func (c ArenaConfig) FoodSpawnInterval() time.Duration {
	return time.Duration(c.Food.SpawnIntervalMS) * time.Millisecond
}

// FlashInterval returns the cadence of the end-of-game flash.
func (c ArenaConfig) FlashInterval() time.Duration {
	return time.Duration(c.Effects.FlashIntervalMS) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
