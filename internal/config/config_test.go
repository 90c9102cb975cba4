package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultArenaConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg ArenaConfig
	if err := yaml.Unmarshal(GetDefaultYAML("arena"), &cfg); err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if cfg != DefaultArenaConfig() {
		t.Errorf("embedded YAML differs from DefaultArenaConfig():\n%+v\n%+v", cfg, DefaultArenaConfig())
	}
}

func TestMoveInterval(t *testing.T) {
	cfg := DefaultArenaConfig()
	if got := cfg.MoveInterval(); got != 60*time.Millisecond {
		t.Errorf("MoveInterval() = %v, expected 60ms", got)
	}
	if got := cfg.FoodSpawnInterval(); got != time.Second {
		t.Errorf("FoodSpawnInterval() = %v, expected 1s", got)
	}
	if got := cfg.FlashInterval(); got != 50*time.Millisecond {
		t.Errorf("FlashInterval() = %v, expected 50ms", got)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights [4]int
		wantErr bool
	}{
		{"defaults", [4]int{60, 20, 0, 20}, false},
		{"straight only", [4]int{1, 0, 0, 0}, false},
		{"zero straight", [4]int{0, 20, 0, 20}, true},
		{"reverse allowed", [4]int{60, 20, 5, 20}, true},
		{"negative turn", [4]int{60, -1, 0, 20}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultArenaConfig()
			cfg.Enemies.Weights = tc.weights
			err := Validate(cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateRejectsBadDimensions(t *testing.T) {
	cfg := DefaultArenaConfig()
	cfg.Arena.Width = 2
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error for tiny arena")
	}
	if !strings.Contains(err.Error(), "Width") {
		t.Errorf("error should name the field, got %v", err)
	}

	cfg = DefaultArenaConfig()
	cfg.Snake.Speed = 0
	if Validate(cfg) == nil {
		t.Error("expected error for zero speed")
	}
}

func TestLoadArenaCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	data := []byte("arena:\n  width: 40\n  height: 30\nenemies:\n  cap: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArena(path)
	if err != nil {
		t.Fatalf("LoadArena() failed: %v", err)
	}
	if cfg.Arena.Width != 40 || cfg.Arena.Height != 30 {
		t.Errorf("arena = %dx%d, expected 40x30", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Enemies.Cap != 5 {
		t.Errorf("cap = %d, expected 5", cfg.Enemies.Cap)
	}
	// Unset keys keep their defaults
	if cfg.Snake.Speed != 10 {
		t.Errorf("speed = %d, expected default 10", cfg.Snake.Speed)
	}
}

func TestLoadArenaCustomPathErrors(t *testing.T) {
	if _, err := LoadArena(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("enemies:\n  weights: [0, 1, 1, 1]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadArena(path); err == nil {
		t.Error("expected validation error for bad weights")
	}
}

func TestApplyArenaPreset(t *testing.T) {
	cfg := DefaultArenaConfig()
	ApplyArenaPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}

	cfg = DefaultArenaConfig()
	ApplyArenaPreset(&cfg, DifficultyEasy)
	if cfg.Enemies.Cap != 15 {
		t.Errorf("easy preset cap = %d, expected 15", cfg.Enemies.Cap)
	}

	cfg = DefaultArenaConfig()
	ApplyArenaPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultArenaConfig()
	ApplyArenaPreset(&cfg, "")
	if cfg != DefaultArenaConfig() {
		t.Error("empty preset should leave config untouched")
	}
}

func TestDifficultyMoveInterval(t *testing.T) {
	base := 600 * time.Millisecond

	dm := NewDifficultyManager(DifficultyConfig{Enabled: false})
	if got := dm.MoveInterval(base, 10, 100, 0); got != 60*time.Millisecond {
		t.Errorf("disabled progression interval = %v, expected 60ms", got)
	}

	dm = NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})
	if got := dm.MoveInterval(base, 10, 0, 0); got != 60*time.Millisecond {
		t.Errorf("score 0 interval = %v, expected 60ms", got)
	}
	if got := dm.MoveInterval(base, 10, 10, 0); got != 30*time.Millisecond {
		t.Errorf("max score interval = %v, expected 30ms", got)
	}
	if got := dm.MoveInterval(base, 10, 1000, 0); got != 30*time.Millisecond {
		t.Errorf("progress should clamp, got %v", got)
	}
}

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})
	if got := dm.Level(0, 50); got != 0.75 {
		t.Errorf("Level() = %v, expected 0.75", got)
	}
	dm.SetEnabled(false)
	if got := dm.Level(0, 50); got != 0.5 {
		t.Errorf("disabled Level() = %v, expected initial 0.5", got)
	}
}
