package grid

import (
	"fmt"
)

// SerializedTile is the persisted form of a tile.
type SerializedTile struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
}

// Serialized is the persisted form of a grid. Cells is indexed [x][y];
// nil entries are empty cells.
type Serialized struct {
	Size  int                 `json:"size"`
	Cells [][]*SerializedTile `json:"cells"`
}

// Serialize returns the persisted form of g.
func (g *Grid) Serialize() Serialized {
	cells := make([][]*SerializedTile, g.size)
	for x := range cells {
		cells[x] = make([]*SerializedTile, g.size)
		for y := range cells[x] {
			t := g.cells[x*g.size+y]
			if t.Empty() {
				continue
			}
			cells[x][y] = &SerializedTile{Position: t.Position, Value: t.Value}
		}
	}
	return Serialized{Size: g.size, Cells: cells}
}

// Restore builds a grid from its persisted form. It fails with
// ErrInvalidSize for size < 1 and ErrMalformed when the cell array does
// not match the size, a tile's position disagrees with its cell, or a
// value is not a power of two ≥ 2.
//
// The cell array shape is checked before the board is allocated, so a
// corrupt size never costs more memory than the cells it came with.
func Restore(s Serialized, opts ...Option) (*Grid, error) {
	if s.Size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, s.Size)
	}
	if len(s.Cells) != s.Size {
		return nil, fmt.Errorf("%w: %d columns for size %d", ErrMalformed, len(s.Cells), s.Size)
	}
	for x, column := range s.Cells {
		if len(column) != s.Size {
			return nil, fmt.Errorf("%w: column %d has %d cells for size %d", ErrMalformed, x, len(column), s.Size)
		}
	}
	g, err := New(s.Size, opts...)
	if err != nil {
		return nil, err
	}
	for x, column := range s.Cells {
		for y, st := range column {
			if st == nil {
				continue
			}
			p := Position{X: x, Y: y}
			if st.Position != p {
				return nil, fmt.Errorf("%w: tile at %v claims position %v", ErrMalformed, p, st.Position)
			}
			if !validValue(st.Value) {
				return nil, fmt.Errorf("%w: tile at %v has value %d", ErrMalformed, p, st.Value)
			}
			g.Insert(p, st.Value)
		}
	}
	return g, nil
}

// FromValues builds a grid from a matrix indexed [y][x] where 0 marks an
// empty cell. The matrix must be square.
func FromValues(rows [][]int, opts ...Option) (*Grid, error) {
	g, err := New(len(rows), opts...)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.size {
			return nil, fmt.Errorf("%w: row %d has %d cells for size %d", ErrMalformed, y, len(row), g.size)
		}
		for x, v := range row {
			if v == 0 {
				continue
			}
			if !validValue(v) {
				return nil, fmt.Errorf("%w: value %d at (%d,%d)", ErrMalformed, v, x, y)
			}
			g.Insert(Position{X: x, Y: y}, v)
		}
	}
	return g, nil
}

func validValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
