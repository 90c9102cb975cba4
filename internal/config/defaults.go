package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Arena: ArenaGrid{
			Width:  56,
			Height: 56,
		},
		Snake: SnakeSettings{
			Speed:      10,
			TickBaseMS: 600,
			HeadSize:   0.8,
			BodySize:   0.6,
		},
		Enemies: EnemySettings{
			Cap:             30,
			SpawnIntervalMS: 200,
			InitialLength:   4,
			Weights:         [4]int{60, 20, 0, 20},
		},
		Food: FoodSettings{
			SpawnIntervalMS: 1000,
			Size:            0.8,
		},
		Effects: EffectSettings{
			FlashIntervalMS: 50,
			FlashToggles:    10,
			FlashHold:       3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "arena", "arena_solo":
		return defaultArenaYAML
	default:
		return nil
	}
}
