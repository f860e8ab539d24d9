package controller

import (
	"github.com/vovakirdan/evil2048/internal/grid"
)

// Store persists the running game and the best score.
type Store interface {
	// Load returns the saved game, or nil when there is none. A saved game
	// that cannot be decoded is reported as a *RestoreError.
	Load() (*State, error)
	Save(s State) error
	Clear() error
	BestScore() (int, error)
	SetBestScore(score int) error
}

// Meta accompanies the grid on every presentation.
type Meta struct {
	Score      int
	Over       bool
	Won        bool
	BestScore  int
	Terminated bool
}

// Presenter is notified after every settled turn. The grid must not be
// retained or modified.
type Presenter interface {
	Present(g *grid.Grid, m Meta)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(g *grid.Grid, m Meta)

// Present calls f.
func (f PresenterFunc) Present(g *grid.Grid, m Meta) {
	f(g, m)
}

// MemoryStore keeps state in memory. The zero value is ready to use.
type MemoryStore struct {
	state *State
	best  int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*State, error) {
	if m.state == nil {
		return nil, nil
	}
	s := *m.state
	return &s, nil
}

func (m *MemoryStore) Save(s State) error {
	m.state = &s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.state = nil
	return nil
}

func (m *MemoryStore) BestScore() (int, error) {
	return m.best, nil
}

func (m *MemoryStore) SetBestScore(score int) error {
	m.best = score
	return nil
}
