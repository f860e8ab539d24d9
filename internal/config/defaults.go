package config

import (
	_ "embed"

	"github.com/vovakirdan/evil2048/internal/adversary"
	"github.com/vovakirdan/evil2048/internal/heuristic"
)

//go:embed defaults/evil2048.yaml
var defaultYAML []byte

// defaultRampMaxAt is the score at which ramping presets reach full evil.
const defaultRampMaxAt = 4096

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:       4,
			WinValue:   2048,
			StartTiles: 2,
		},
		Heuristic: heuristic.DefaultWeights(),
		Adversary: adversary.DefaultParams(),
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 1.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: defaultRampMaxAt,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
