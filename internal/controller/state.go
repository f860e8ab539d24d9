package controller

import (
	"fmt"

	"github.com/vovakirdan/evil2048/internal/grid"
)

// StateVersion is the saved-game format version.
const StateVersion = 1

// State is the persisted form of a game.
type State struct {
	Version     int             `json:"version"`
	Grid        grid.Serialized `json:"grid"`
	Score       int             `json:"score"`
	Over        bool            `json:"over"`
	Won         bool            `json:"won"`
	KeepPlaying bool            `json:"keepPlaying"`
	Moves       int             `json:"moves,omitempty"`
}

// RestoreError reports a saved game that cannot be resumed. The
// controller discards such state and starts a fresh game.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("controller: cannot restore saved game: %v", e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// validate checks everything about s except the grid cells.
func (s State) validate() error {
	if s.Version != StateVersion {
		return &RestoreError{Err: fmt.Errorf("unsupported version %d", s.Version)}
	}
	if s.Score < 0 || s.Moves < 0 {
		return &RestoreError{Err: fmt.Errorf("negative counters (score %d, moves %d)", s.Score, s.Moves)}
	}
	return nil
}
