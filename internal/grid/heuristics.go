package grid

import (
	"math"

	"github.com/vovakirdan/evil2048/internal/core"
)

// Smoothness term weights. These are tuned values; changing them changes
// the adversary's behaviour.
const (
	smoothPairWeight    = 0.4
	smoothHillWeight    = 1.0
	smoothMonotoneBonus = 0.5
	smoothRateExp       = 0.4
	smoothDiffExp       = 0.8
)

// lineCell returns the j-th cell of the i-th line of the given axis: axis 0 walks cells
// (i, 0..size-1), axis 1 walks cells (0..size-1, i).
func (g *Grid) lineCell(axis, i, j int) Position {
	if axis == 0 {
		return Position{X: i, Y: j}
	}
	return Position{X: j, Y: i}
}

// MovesAvailable reports whether any move can still change the board.
func (g *Grid) MovesAvailable() bool {
	return g.CellsAvailable() || g.MaxMergeValue() > 0
}

// MaxMergeValue returns the largest value v such that two tiles of value
// v are consecutive (ignoring empty cells) along some row or column, or 0
// when no such pair exists.
func (g *Grid) MaxMergeValue() int {
	result := 0
	for axis := 0; axis < 2; axis++ {
		for i := 0; i < g.size; i++ {
			last := 0
			for j := 0; j < g.size; j++ {
				t := g.cells[g.index(g.lineCell(axis, i, j))]
				if t.Empty() {
					continue
				}
				if last != 0 && t.Value == last && t.Value > result {
					result = t.Value
				}
				last = t.Value
			}
		}
	}
	return result
}

// Smoothness scores how gently log2 tile values change along rows and
// columns. Empty cells are skipped. Higher (less negative) is smoother.
func (g *Grid) Smoothness() float64 {
	result := 0.0
	for axis := 0; axis < 2; axis++ {
		for i := 0; i < g.size; i++ {
			var second, first float64
			count := 0
			for j := 0; j < g.size; j++ {
				t := g.cells[g.index(g.lineCell(axis, i, j))]
				if t.Empty() {
					continue
				}
				value := math.Log2(float64(t.Value))
				if count > 0 {
					rate := math.Pow(math.Max(value, first), smoothRateExp)
					result -= smoothPairWeight * rate * math.Pow(math.Abs(value-first), smoothDiffExp)
					if count > 1 {
						temp := (second - first) * (second - value)
						rate2 := math.Pow(math.Max(value, math.Max(first, second)), smoothRateExp)
						if temp > 0 {
							result -= smoothHillWeight * rate2 * math.Pow(temp, smoothDiffExp)
						} else {
							result += smoothMonotoneBonus * rate2
						}
					}
				}
				second, first = first, value
				count++
			}
		}
	}
	return result
}

// OccupiedBetween counts the occupied cells strictly between a and b.
// ok is false unless a and b share a row or column.
func (g *Grid) OccupiedBetween(a, b Position) (count int, ok bool) {
	switch {
	case a.X == b.X:
		for y := min(a.Y, b.Y) + 1; y < max(a.Y, b.Y); y++ {
			if g.Occupied(Position{X: a.X, Y: y}) {
				count++
			}
		}
		return count, true
	case a.Y == b.Y:
		for x := min(a.X, b.X) + 1; x < max(a.X, b.X); x++ {
			if g.Occupied(Position{X: x, Y: a.Y}) {
				count++
			}
		}
		return count, true
	default:
		return 0, false
	}
}

// ObstacleDistance is the influence distance between two cells: the
// Manhattan distance plus one, reduced to the number of occupied cells
// strictly between them when they share a row or column. Two aligned
// cells with nothing in between are at distance 0.
func (g *Grid) ObstacleDistance(a, b Position) int {
	dist := core.Abs(a.X-b.X) + core.Abs(a.Y-b.Y) + 1
	if between, ok := g.OccupiedBetween(a, b); ok && between < dist {
		dist = between
	}
	return dist
}
