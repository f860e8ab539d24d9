package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/evil2048/internal/controller"
)

// Slot persists the running game and the best score of one variant.
// It implements controller.Store.
type Slot struct {
	store  *Store
	gameID string
}

var _ controller.Store = (*Slot)(nil)

// Slot returns the save slot for gameID.
func (s *Store) Slot(gameID string) *Slot {
	return &Slot{store: s, gameID: gameID}
}

// Load returns the saved game, or nil when there is none. Undecodable
// state is reported as a *controller.RestoreError.
func (sl *Slot) Load() (*controller.State, error) {
	var data string
	err := sl.store.db.QueryRow(
		"SELECT state FROM saved_games WHERE game_id = ?",
		sl.gameID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}

	var state controller.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, &controller.RestoreError{Err: err}
	}
	return &state, nil
}

// Save replaces the saved game.
func (sl *Slot) Save(state controller.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("storage: cannot encode game: %w", err)
	}
	_, err = sl.store.db.Exec(
		`INSERT INTO saved_games (game_id, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		sl.gameID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// Clear deletes the saved game.
func (sl *Slot) Clear() error {
	if _, err := sl.store.db.Exec("DELETE FROM saved_games WHERE game_id = ?", sl.gameID); err != nil {
		return fmt.Errorf("storage: cannot clear game: %w", err)
	}
	return nil
}

// BestScore returns the best score, or 0 when none was stored.
func (sl *Slot) BestScore() (int, error) {
	var score int
	err := sl.store.db.QueryRow(
		"SELECT score FROM best_scores WHERE game_id = ?",
		sl.gameID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore replaces the best score.
func (sl *Slot) SetBestScore(score int) error {
	_, err := sl.store.db.Exec(
		`INSERT INTO best_scores (game_id, score) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET score = excluded.score`,
		sl.gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}
