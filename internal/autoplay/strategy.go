// Package autoplay drives headless games with simple bots. It is used to
// measure how hard the adversary is and to export traces for analysis.
package autoplay

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/evil2048/internal/grid"
	"github.com/vovakirdan/evil2048/internal/heuristic"
)

// Strategy picks the player's next move. ok is false when no move changes
// the board.
type Strategy interface {
	Name() string
	NextMove(g *grid.Grid) (d grid.Direction, ok bool)
}

// Greedy plays the move the heuristic evaluator rates highest, looking one
// move ahead. Ties go to the first direction in Up, Right, Down, Left order.
type Greedy struct {
	eval    *heuristic.Evaluator
	scratch *grid.Grid
}

// NewGreedy returns a greedy bot using the given weights.
func NewGreedy(w heuristic.Weights) *Greedy {
	return &Greedy{eval: heuristic.New(w)}
}

func (s *Greedy) Name() string { return "greedy" }

func (s *Greedy) NextMove(g *grid.Grid) (grid.Direction, bool) {
	var (
		best  grid.Direction
		value float64
		found bool
	)
	for _, d := range grid.Directions {
		s.scratch = g.CopyInto(s.scratch)
		result, err := s.scratch.ApplyMove(d)
		if err != nil {
			continue
		}
		v, ok := s.eval.Evaluate(result, s.scratch)
		if !ok {
			continue
		}
		if !found || v > value {
			best, value, found = d, v, true
		}
	}
	return best, found
}

// Random plays a uniformly random move among those that change the board.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random bot drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (s *Random) Name() string { return "random" }

func (s *Random) NextMove(g *grid.Grid) (grid.Direction, bool) {
	for _, i := range s.rng.Perm(len(grid.Directions)) {
		d := grid.Directions[i]
		if g.CanMove(d) {
			return d, true
		}
	}
	return 0, false
}

// StrategyNames lists the bots accepted by NewStrategy.
var StrategyNames = []string{"greedy", "random"}

// NewStrategy builds a bot by name. rng is only used by the random bot.
func NewStrategy(name string, w heuristic.Weights, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "greedy":
		return NewGreedy(w), nil
	case "random":
		return NewRandom(rng), nil
	}
	return nil, fmt.Errorf("autoplay: unknown strategy %q", name)
}
