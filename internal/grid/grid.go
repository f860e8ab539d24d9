// Package grid implements the 2048 board: tile storage, directional
// slide/merge simulation, and the board queries the adversary and the
// heuristics are built on.
package grid

import (
	"errors"
	"fmt"
)

// DefaultSize is the classic board dimension.
const DefaultSize = 4

// DefaultWinValue is the tile value that wins the game.
const DefaultWinValue = 2048

var (
	// ErrInvalidSize is returned when a grid is created with size < 1.
	ErrInvalidSize = errors.New("grid: invalid size")

	// ErrInvalidDirection is returned for direction codes outside 0..3.
	ErrInvalidDirection = errors.New("grid: invalid direction")

	// ErrMalformed is returned when restoring from an inconsistent cell array.
	ErrMalformed = errors.New("grid: malformed state")
)

// Position is a board coordinate. X is the column, Y the row; (0,0) is
// the top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by v.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Tile is a numbered tile stored in a grid cell. A zero Value means the
// cell is empty.
type Tile struct {
	Position Position
	Value    int
	Previous Position // position before the current move

	merged     bool
	mergedFrom [2]Position
}

// Empty reports whether the cell holds no tile.
func (t Tile) Empty() bool {
	return t.Value == 0
}

// Merged reports whether the tile was produced by a merge during the
// current move.
func (t Tile) Merged() bool {
	return t.merged
}

// MergedFrom returns the pre-move positions of the two tiles consumed to
// produce t. ok is false unless t was merged during the current move.
func (t Tile) MergedFrom() (from [2]Position, ok bool) {
	return t.mergedFrom, t.merged
}

// Moved reports whether the tile's position differs from its snapshot.
func (t Tile) Moved() bool {
	return t.Position != t.Previous
}

// Grid is a size×size board stored as a flat arena indexed x*size+y.
type Grid struct {
	size     int
	winValue int
	cells    []Tile
}

// Option configures a Grid.
type Option func(*Grid)

// WithWinValue sets the tile value that marks a move as winning.
func WithWinValue(v int) Option {
	return func(g *Grid) {
		if v > 0 {
			g.winValue = v
		}
	}
}

// New creates an empty size×size grid.
func New(size int, opts ...Option) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	g := &Grid{
		size:     size,
		winValue: DefaultWinValue,
		cells:    make([]Tile, size*size),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustNew is like New but panics on an invalid size. Intended for tests
// and fixed-size setups.
func MustNew(size int, opts ...Option) *Grid {
	g, err := New(size, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the board dimension.
func (g *Grid) Size() int {
	return g.size
}

// WinValue returns the tile value that wins the game.
func (g *Grid) WinValue() int {
	return g.winValue
}

func (g *Grid) index(p Position) int {
	return p.X*g.size + p.Y
}

// WithinBounds reports whether p lies on the board.
func (g *Grid) WithinBounds(p Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// At returns the tile at p. ok is false for empty or out-of-bounds cells.
func (g *Grid) At(p Position) (Tile, bool) {
	if !g.WithinBounds(p) {
		return Tile{}, false
	}
	t := g.cells[g.index(p)]
	return t, !t.Empty()
}

// Occupied reports whether p is on the board and holds a tile.
func (g *Grid) Occupied(p Position) bool {
	_, ok := g.At(p)
	return ok
}

// Available reports whether p is on the board and empty.
func (g *Grid) Available(p Position) bool {
	return g.WithinBounds(p) && g.cells[g.index(p)].Empty()
}

// Insert places a new tile of the given value at p, replacing any tile
// already there.
func (g *Grid) Insert(p Position, value int) {
	g.cells[g.index(p)] = Tile{Position: p, Value: value, Previous: p}
}

// Remove empties the cell at p.
func (g *Grid) Remove(p Position) {
	g.cells[g.index(p)] = Tile{}
}

// moveTile relocates the tile at from to the empty cell to.
func (g *Grid) moveTile(from, to Position) {
	if from == to {
		return
	}
	t := g.cells[g.index(from)]
	t.Position = to
	g.cells[g.index(to)] = t
	g.cells[g.index(from)] = Tile{}
}

// AvailableCells returns the empty coordinates in row-major order
// (x outer, y inner).
func (g *Grid) AvailableCells() []Position {
	return g.AppendAvailableCells(nil)
}

// AppendAvailableCells appends the empty coordinates to dst, in the same
// order as AvailableCells.
func (g *Grid) AppendAvailableCells(dst []Position) []Position {
	for i, t := range g.cells {
		if t.Empty() {
			dst = append(dst, Position{X: i / g.size, Y: i % g.size})
		}
	}
	return dst
}

// AvailableCount returns the number of empty cells.
func (g *Grid) AvailableCount() int {
	n := 0
	for _, t := range g.cells {
		if t.Empty() {
			n++
		}
	}
	return n
}

// CellsAvailable reports whether at least one cell is empty.
func (g *Grid) CellsAvailable() bool {
	for _, t := range g.cells {
		if t.Empty() {
			return true
		}
	}
	return false
}

// EachTile calls fn for every occupied cell in row-major order.
func (g *Grid) EachTile(fn func(t Tile)) {
	for _, t := range g.cells {
		if !t.Empty() {
			fn(t)
		}
	}
}

// TileCount returns the number of tiles on the board.
func (g *Grid) TileCount() int {
	return len(g.cells) - g.AvailableCount()
}

// Sum returns the total of all tile values.
func (g *Grid) Sum() int {
	sum := 0
	for _, t := range g.cells {
		sum += t.Value
	}
	return sum
}

// MaxTile returns the largest tile value on the board.
func (g *Grid) MaxTile() int {
	maxVal := 0
	for _, t := range g.cells {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Values returns the board as a matrix indexed [y][x], 0 for empty cells.
func (g *Grid) Values() [][]int {
	rows := make([][]int, g.size)
	for y := range rows {
		rows[y] = make([]int, g.size)
		for x := range rows[y] {
			rows[y][x] = g.cells[x*g.size+y].Value
		}
	}
	return rows
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return g.CopyInto(nil)
}

// CopyInto copies g into dst, reusing dst's storage when it has the same
// size, and returns dst. A nil dst allocates a new grid.
func (g *Grid) CopyInto(dst *Grid) *Grid {
	if dst == nil || len(dst.cells) != len(g.cells) {
		dst = &Grid{cells: make([]Tile, len(g.cells))}
	}
	dst.size = g.size
	dst.winValue = g.winValue
	copy(dst.cells, g.cells)
	return dst
}

// Equal reports whether both grids hold the same values in the same cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}
