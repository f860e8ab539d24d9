package adversary

import (
	"errors"

	"github.com/vovakirdan/evil2048/internal/grid"
)

// ErrBoardFull is returned when a tile is requested for a board with no
// empty cell. The board is left unchanged.
var ErrBoardFull = errors.New("adversary: board is full")

// Random is the source of uniform draws in [0,1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Placement is a tile a spawner inserted.
type Placement struct {
	Cell  grid.Position
	Value int
}

// Spawner inserts the tile that follows a player move.
type Spawner interface {
	Place(g *grid.Grid, last grid.Direction) (Placement, error)
}

// RandomSpawner is the classic spawn: a uniformly chosen empty cell,
// holding a 2 with probability Chance2 and a 4 otherwise.
type RandomSpawner struct {
	Rand    Random
	Chance2 float64
}

// NewRandomSpawner returns a classic spawner with a 0.9 chance of a 2.
func NewRandomSpawner(rng Random) *RandomSpawner {
	return &RandomSpawner{Rand: rng, Chance2: DefaultParams().FallbackChance2}
}

// Place inserts a random tile. The last direction is ignored.
func (s *RandomSpawner) Place(g *grid.Grid, _ grid.Direction) (Placement, error) {
	cells := g.AvailableCells()
	if len(cells) == 0 {
		return Placement{}, ErrBoardFull
	}
	p := randomPick(cells, s.Rand, s.Chance2)
	g.Insert(p.Cell, p.Value)
	return p, nil
}

// randomPick draws the value first and the cell second.
func randomPick(cells []grid.Position, rng Random, chance2 float64) Placement {
	value := 4
	if rng.Float64() < chance2 {
		value = 2
	}
	i := min(int(rng.Float64()*float64(len(cells))), len(cells)-1)
	return Placement{Cell: cells[i], Value: value}
}
