// Package heuristic scores hypothetical player responses for the
// adversary's lookahead.
package heuristic

import (
	"math"

	"github.com/vovakirdan/evil2048/internal/grid"
)

// Weights are the coefficients of the move value.
type Weights struct {
	Smoothness float64 `yaml:"smoothness"`
	Score      float64 `yaml:"score"`
	MaxMerge   float64 `yaml:"max_merge"`
	EmptyCells float64 `yaml:"empty_cells"`
}

// DefaultWeights returns the tuned weights.
func DefaultWeights() Weights {
	return Weights{
		Smoothness: 0.2,
		Score:      0.7,
		MaxMerge:   1.1,
		EmptyCells: 1.4,
	}
}

// Evaluator turns a simulated move into a single value. Larger is better
// for the player.
type Evaluator struct {
	Weights Weights

	scratch *grid.Grid
}

// New returns an Evaluator using w.
func New(w Weights) *Evaluator {
	return &Evaluator{Weights: w}
}

// Evaluate scores result, the outcome of a move that produced after.
// ok is false when the move did not change the board; the value is then
// meaningless. A winning move is worth +Inf.
func (e *Evaluator) Evaluate(result grid.MoveResult, after *grid.Grid) (value float64, ok bool) {
	if !result.Moved {
		return 0, false
	}
	if result.Won {
		return math.Inf(1), true
	}

	w := e.Weights
	value += w.Smoothness * after.Smoothness()
	value += w.Score * math.Log2(float64(max(result.ScoreGained, 1)))
	value += w.MaxMerge * math.Log2(float64(max(after.MaxMergeValue(), 1)))
	value -= w.EmptyCells * float64(after.AvailableCount())
	return value, true
}

// BestResponse plays each of the four moves on a copy of g and returns
// the best value the player can reach. It is -Inf when no move changes
// the board. g is never modified.
func (e *Evaluator) BestResponse(g *grid.Grid) float64 {
	best := math.Inf(-1)
	for _, d := range grid.Directions {
		e.scratch = g.CopyInto(e.scratch)
		result, err := e.scratch.ApplyMove(d)
		if err != nil {
			continue
		}
		if v, ok := e.Evaluate(result, e.scratch); ok && v > best {
			best = v
		}
	}
	return best
}
