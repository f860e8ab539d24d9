// Package adversary chooses the tile that appears after each player move.
// Placer picks the cell and value that leave the player worst off after
// a one-ply lookahead; RandomSpawner is the classic uniform spawn.
package adversary

import (
	"math"
	"slices"

	"github.com/vovakirdan/evil2048/internal/grid"
	"github.com/vovakirdan/evil2048/internal/heuristic"
)

// Candidate is one scored placement. Higher Score is worse for the player.
type Candidate struct {
	Placement
	Score        float64
	AtEdge       bool      // cell is already the farthest cell along the last move
	Neighbors    []float64 // log2 values of the tiles at distance 0, ascending
	Weight2      float64   // proximity weight of existing 2 tiles
	Chance2      float64   // probability the value draw yielded a 2
	BestResponse float64   // best player move value after the placement
}

// Placer is the adversarial spawner. It is not safe for concurrent use.
type Placer struct {
	params   Params
	eval     *heuristic.Evaluator
	rng      Random
	observer Observer

	cells     []grid.Position
	neighbors []float64
	lookahead *grid.Grid
}

// Option configures a Placer.
type Option func(*Placer)

// WithParams overrides the placement constants.
func WithParams(params Params) Option {
	return func(p *Placer) {
		p.params = params
	}
}

// WithWeights overrides the lookahead evaluation weights.
func WithWeights(w heuristic.Weights) Option {
	return func(p *Placer) {
		p.eval = heuristic.New(w)
	}
}

// WithObserver attaches a tracing observer.
func WithObserver(o Observer) Option {
	return func(p *Placer) {
		p.observer = o
	}
}

// NewPlacer returns a Placer drawing from rng.
func NewPlacer(rng Random, opts ...Option) *Placer {
	p := &Placer{
		params: DefaultParams(),
		eval:   heuristic.New(heuristic.DefaultWeights()),
		rng:    rng,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Params returns the placement constants in use.
func (p *Placer) Params() Params {
	return p.params
}

// Place chooses a placement for g after a move in direction last and
// inserts it. It returns ErrBoardFull when g has no empty cell.
func (p *Placer) Place(g *grid.Grid, last grid.Direction) (Placement, error) {
	c, err := p.Choose(g, last)
	if err != nil {
		return Placement{}, err
	}
	g.Insert(c.Cell, c.Value)
	return c.Placement, nil
}

// Choose scores every empty cell of g and returns the most harmful
// placement without inserting it. Every candidate consumes exactly one
// random draw, in row-major order. When no candidate has a score above
// -Inf the placement falls back to a classic random spawn.
func (p *Placer) Choose(g *grid.Grid, last grid.Direction) (Candidate, error) {
	v, err := last.Vector()
	if err != nil {
		return Candidate{}, err
	}
	p.cells = g.AppendAvailableCells(p.cells[:0])
	if len(p.cells) == 0 {
		return Candidate{}, ErrBoardFull
	}

	best := Candidate{Score: math.Inf(-1)}
	found := false
	for _, cell := range p.cells {
		c := p.score(g, cell, v)
		if p.observer != nil {
			p.observer.Scored(c)
		}
		if c.Score > best.Score {
			best = c
			best.Neighbors = slices.Clone(c.Neighbors)
			found = true
		}
	}

	if !found {
		best = Candidate{
			Placement: randomPick(p.cells, p.rng, p.params.FallbackChance2),
			Score:     math.Inf(-1),
		}
	}
	if p.observer != nil {
		p.observer.Chosen(best, !found)
	}
	return best, nil
}

func (p *Placer) score(g *grid.Grid, cell grid.Position, v grid.Vector) Candidate {
	c := Candidate{Placement: Placement{Cell: cell}}

	farthest, _ := g.FindFarthestPosition(cell, v)
	c.AtEdge = farthest == cell
	if !c.AtEdge {
		c.Score -= p.params.ReachabilityPenalty
	}

	p.neighbors = p.neighbors[:0]
	g.EachTile(func(t grid.Tile) {
		d := g.ObstacleDistance(t.Position, cell)
		if t.Value == 2 {
			c.Weight2 += 1 / (float64(d) + 0.5)
		}
		if d == 0 {
			p.neighbors = append(p.neighbors, math.Log2(float64(t.Value)))
		}
	})

	c.Chance2 = min(p.params.MaxChance2, max(p.params.MinChance2, math.Pow(p.params.TwoDecay, c.Weight2)))
	c.Value = 4
	if p.rng.Float64() < c.Chance2 {
		c.Value = 2
	}

	if len(p.neighbors) > 0 {
		slices.Sort(p.neighbors)
		sum := 0.0
		for i, n := range p.neighbors {
			sum += n
			if i > 0 && n-p.neighbors[i-1] <= 1 {
				c.Score += p.params.ClusterBonus
			}
		}
		c.Score += p.params.NeighborWeight * sum / float64(1+len(p.neighbors))
	} else {
		c.Score -= p.params.IsolationPenalty
	}
	c.Neighbors = p.neighbors

	p.lookahead = g.CopyInto(p.lookahead)
	p.lookahead.Insert(cell, c.Value)
	c.BestResponse = p.eval.BestResponse(p.lookahead)
	c.Score -= c.BestResponse
	return c
}
