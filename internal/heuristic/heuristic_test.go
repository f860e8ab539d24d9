package heuristic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/evil2048/internal/grid"
)

func TestDefaultWeights(t *testing.T) {
	assert.Equal(t, Weights{Smoothness: 0.2, Score: 0.7, MaxMerge: 1.1, EmptyCells: 1.4}, DefaultWeights())
}

func TestEvaluateNotMoved(t *testing.T) {
	e := New(DefaultWeights())
	_, ok := e.Evaluate(grid.MoveResult{}, grid.MustNew(4))
	assert.False(t, ok)
}

func TestEvaluateWin(t *testing.T) {
	e := New(DefaultWeights())
	v, ok := e.Evaluate(grid.MoveResult{Moved: true, Won: true}, grid.MustNew(4))
	require.True(t, ok)
	assert.True(t, math.IsInf(v, 1))
}

func TestEvaluateFormula(t *testing.T) {
	g, err := grid.FromValues([][]int{
		{4, 4, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	e := New(DefaultWeights())
	result := grid.MoveResult{Moved: true, ScoreGained: 8, Merges: 1}
	v, ok := e.Evaluate(result, g)
	require.True(t, ok)

	want := 0.2*g.Smoothness() + 0.7*3 + 1.1*2 - 1.4*13
	assert.InDelta(t, want, v, 1e-9)
}

func TestEvaluateZeroScoreUsesLogOfOne(t *testing.T) {
	g := grid.MustNew(2)
	g.Insert(grid.Position{X: 0, Y: 0}, 2)

	e := New(Weights{Score: 0.7, MaxMerge: 1.1})
	v, ok := e.Evaluate(grid.MoveResult{Moved: true}, g)
	require.True(t, ok)
	assert.Zero(t, v)
}

func TestBestResponse(t *testing.T) {
	t.Run("no move available", func(t *testing.T) {
		g, err := grid.FromValues([][]int{
			{2, 4},
			{4, 2},
		})
		require.NoError(t, err)
		assert.True(t, math.IsInf(New(DefaultWeights()).BestResponse(g), -1))
	})

	t.Run("winning response", func(t *testing.T) {
		g, err := grid.FromValues([][]int{
			{1024, 1024},
			{0, 0},
		})
		require.NoError(t, err)
		assert.True(t, math.IsInf(New(DefaultWeights()).BestResponse(g), 1))
	})

	t.Run("maximum over moves", func(t *testing.T) {
		g, err := grid.FromValues([][]int{
			{2, 2, 0},
			{0, 0, 0},
			{0, 0, 8},
		})
		require.NoError(t, err)
		before := g.Clone()

		e := New(DefaultWeights())
		want := math.Inf(-1)
		for _, d := range grid.Directions {
			c := g.Clone()
			res, err := c.ApplyMove(d)
			require.NoError(t, err)
			if v, ok := e.Evaluate(res, c); ok {
				want = math.Max(want, v)
			}
		}

		assert.InDelta(t, want, e.BestResponse(g), 1e-9)
		assert.True(t, g.Equal(before), "BestResponse must not modify its input")
	})
}
