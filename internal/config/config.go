// Package config provides YAML-based configuration loading and
// difficulty management for evil 2048.
package config

import (
	"fmt"

	"github.com/vovakirdan/evil2048/internal/adversary"
	"github.com/vovakirdan/evil2048/internal/heuristic"
)

// Config contains all configuration for a game of evil 2048.
type Config struct {
	Board      BoardConfig       `yaml:"board"`
	Heuristic  heuristic.Weights `yaml:"heuristic"`
	Adversary  adversary.Params  `yaml:"adversary"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// BoardConfig defines the board parameters.
type BoardConfig struct {
	Size       int `yaml:"size"`
	WinValue   int `yaml:"win_value"`
	StartTiles int `yaml:"start_tiles"`
}

// DifficultyConfig defines how often the adversary, rather than the
// classic random spawn, places the next tile.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = classic, 1.0 = always evil
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how the level rises during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which the level reaches 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyEvil    DifficultyPreset = "evil"
	DifficultyClassic DifficultyPreset = "classic"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyEvil, DifficultyClassic}

// ParsePreset converts a name to a DifficultyPreset.
func ParsePreset(name string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.25
	case DifficultyNormal:
		return 0.6
	case DifficultyClassic:
		return 0.0
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyEvil || preset == DifficultyClassic
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
		cfg.Difficulty.Progression.Type = "score"
	}
	if cfg.Difficulty.Progression.MaxAt <= 0 {
		cfg.Difficulty.Progression.MaxAt = defaultRampMaxAt
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	b := c.Board
	if b.Size < 1 {
		return fmt.Errorf("config: board.size must be at least 1, got %d", b.Size)
	}
	if b.WinValue < 4 || b.WinValue&(b.WinValue-1) != 0 {
		return fmt.Errorf("config: board.win_value must be a power of two of at least 4, got %d", b.WinValue)
	}
	if b.StartTiles < 1 || b.StartTiles > b.Size*b.Size {
		return fmt.Errorf("config: board.start_tiles out of range, got %d", b.StartTiles)
	}

	a := c.Adversary
	if a.MinChance2 < 0 || a.MaxChance2 > 1 || a.MinChance2 > a.MaxChance2 {
		return fmt.Errorf("config: adversary chance bounds must satisfy 0 <= min <= max <= 1, got %v..%v", a.MinChance2, a.MaxChance2)
	}
	if a.FallbackChance2 < 0 || a.FallbackChance2 > 1 {
		return fmt.Errorf("config: adversary.fallback_chance2 must be in [0,1], got %v", a.FallbackChance2)
	}

	d := c.Difficulty
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return fmt.Errorf("config: difficulty.initial_level must be in [0,1], got %v", d.InitialLevel)
	}
	switch d.Progression.Type {
	case "score", "moves", "none":
	default:
		return fmt.Errorf("config: unknown difficulty.progression.type %q", d.Progression.Type)
	}
	return nil
}
