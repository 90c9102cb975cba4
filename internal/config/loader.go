package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance returns the shared validator with arena-specific rules registered.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(enemyWeightsValidation, EnemySettings{})
	})
	return validate
}

// enemyWeightsValidation enforces a positive straight-ahead weight and a zero
// reverse weight, so steering always has something to sample and never reverses.
func enemyWeightsValidation(sl validator.StructLevel) {
	e, ok := sl.Current().Interface().(EnemySettings)
	if !ok {
		return
	}
	if e.Weights[0] <= 0 {
		sl.ReportError(e.Weights, "weights", "Weights", "straight_positive", "")
	}
	if e.Weights[2] != 0 {
		sl.ReportError(e.Weights, "weights", "Weights", "reverse_zero", "")
	}
}

// Validate checks an arena configuration against its constraints.
func Validate(cfg ArenaConfig) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid arena config: %s", strings.Join(msgs, "; "))
}

// LoadArena loads the arena configuration.
// Search order: customPath -> ~/.snake-arena/configs/arena.yaml -> ./configs/arena.yaml -> embedded default
func LoadArena(customPath string) (ArenaConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultArenaConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := Validate(cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if cfg, err := parseArena(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := parseArena("configs/arena.yaml"); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(defaultArenaYAML, &cfg); err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseArena reads and validates a config file layered over the defaults.
func parseArena(path string) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, Validate(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake-arena", "configs", filename)
}

// ApplyArenaPreset modifies the config based on a difficulty preset.
func ApplyArenaPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust population based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Enemies.Cap = min(cfg.Enemies.Cap, 15)
		cfg.Enemies.SpawnIntervalMS *= 2
	case DifficultyHard:
		cfg.Enemies.SpawnIntervalMS /= 2
	}
}
