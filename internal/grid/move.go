package grid

// MoveResult reports the outcome of simulating one directional move.
type MoveResult struct {
	Moved       bool // At least one tile changed position
	ScoreGained int  // Sum of the values of all tiles created by merges
	Won         bool // A merge produced the win value
	Merges      int  // Number of merges performed
}

// FindFarthestPosition walks from cell along v while the next cell is on
// the board and empty. farthest is the last empty cell reached (cell
// itself if the first step is blocked); next is the first blocking cell,
// which may be out of bounds.
func (g *Grid) FindFarthestPosition(cell Position, v Vector) (farthest, next Position) {
	next = cell
	for {
		farthest = next
		next = farthest.Add(v)
		if !g.Available(next) {
			return farthest, next
		}
	}
}

// PrepareForMove clears every tile's merge annotation and snapshots its
// current position.
func (g *Grid) PrepareForMove() {
	for i := range g.cells {
		t := &g.cells[i]
		if t.Empty() {
			continue
		}
		t.merged = false
		t.mergedFrom = [2]Position{}
		t.Previous = t.Position
	}
}

// traversal returns the i-th coordinate along one axis, starting from the
// edge the tiles are moving toward.
func (g *Grid) traversal(i, step int) int {
	if step == 1 {
		return g.size - 1 - i
	}
	return i
}

// ApplyMove slides every tile in direction d, merging equal neighbours
// at most once per tile.
func (g *Grid) ApplyMove(d Direction) (MoveResult, error) {
	v, err := d.Vector()
	if err != nil {
		return MoveResult{}, err
	}

	var result MoveResult
	g.PrepareForMove()

	for i := 0; i < g.size; i++ {
		x := g.traversal(i, v.X)
		for j := 0; j < g.size; j++ {
			cell := Position{X: x, Y: g.traversal(j, v.Y)}
			tile := g.cells[g.index(cell)]
			if tile.Empty() {
				continue
			}

			farthest, next := g.FindFarthestPosition(cell, v)
			target, ok := g.At(next)

			if ok && target.Value == tile.Value && !target.merged {
				merged := Tile{
					Position:   next,
					Value:      tile.Value * 2,
					Previous:   tile.Previous,
					merged:     true,
					mergedFrom: [2]Position{tile.Previous, target.Previous},
				}
				g.cells[g.index(next)] = merged
				g.Remove(cell)

				result.ScoreGained += merged.Value
				result.Merges++
				if merged.Value == g.winValue {
					result.Won = true
				}
				if next != cell {
					result.Moved = true
				}
				continue
			}

			g.moveTile(cell, farthest)
			if farthest != cell {
				result.Moved = true
			}
		}
	}

	return result, nil
}

// CanMove reports whether moving in d would change the board, without
// modifying g.
func (g *Grid) CanMove(d Direction) bool {
	v, err := d.Vector()
	if err != nil {
		return false
	}
	for _, t := range g.cells {
		if t.Empty() {
			continue
		}
		next := t.Position.Add(v)
		if !g.WithinBounds(next) {
			continue
		}
		other := g.cells[g.index(next)]
		if other.Empty() || other.Value == t.Value {
			return true
		}
	}
	return false
}
