package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFromValues(t *testing.T, rows [][]int) *Grid {
	t.Helper()
	g, err := FromValues(rows)
	require.NoError(t, err)
	return g
}

func TestApplyMoveRowMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		moved    bool
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
			moved:    true,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			score:    0,
			moved:    false,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			moved:    true,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    0,
			moved:    true,
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			score:    0,
			moved:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustFromValues(t, [][]int{tt.input, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}})

			result, err := g.ApplyMove(Left)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g.Values()[0], "row %v moved left", tt.input)
			assert.Equal(t, tt.score, result.ScoreGained)
			assert.Equal(t, tt.moved, result.Moved)
		})
	}
}

func TestApplyMoveDirections(t *testing.T) {
	tests := []struct {
		dir      Direction
		board    [][]int
		expected [][]int
	}{
		{
			dir: Left,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
		},
		{
			dir: Right,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
		},
		{
			dir: Up,
			board: [][]int{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: [][]int{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
		},
		{
			dir: Down,
			board: [][]int{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			g := mustFromValues(t, tt.board)
			result, err := g.ApplyMove(tt.dir)
			require.NoError(t, err)
			assert.True(t, result.Moved, "move should report the board changed")
			assert.Equal(t, tt.expected, g.Values())
		})
	}
}

func TestApplyMoveRightMergesPair(t *testing.T) {
	// Two 2s side by side in the top row, everything else empty.
	g := MustNew(4)
	g.Insert(Position{X: 0, Y: 0}, 2)
	g.Insert(Position{X: 1, Y: 0}, 2)

	result, err := g.ApplyMove(Right)
	require.NoError(t, err)

	assert.Equal(t, MoveResult{Moved: true, ScoreGained: 4, Won: false, Merges: 1}, result)
	require.Equal(t, 1, g.TileCount())
	tile, ok := g.At(Position{X: 3, Y: 0})
	require.True(t, ok)
	assert.Equal(t, 4, tile.Value)
	from, merged := tile.MergedFrom()
	require.True(t, merged, "merged tile should carry its merge annotation")
	assert.Contains(t, from[:], Position{X: 0, Y: 0})
}

func TestApplyMoveWin(t *testing.T) {
	g := mustFromValues(t, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	result, err := g.ApplyMove(Left)
	require.NoError(t, err)
	assert.True(t, result.Won, "merging into 2048 should win")

	// Past the win value, merges no longer report a win.
	g = mustFromValues(t, [][]int{
		{2048, 2048, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	result, err = g.ApplyMove(Left)
	require.NoError(t, err)
	assert.False(t, result.Won, "merging into 4096 should not report a win")
}

func TestApplyMoveCustomWinValue(t *testing.T) {
	g := MustNew(4, WithWinValue(8))
	g.Insert(Position{X: 0, Y: 0}, 4)
	g.Insert(Position{X: 0, Y: 1}, 4)

	result, err := g.ApplyMove(Up)
	require.NoError(t, err)
	assert.True(t, result.Won, "merging into the configured win value should win")
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	g := MustNew(4)
	g.Insert(Position{X: 1, Y: 1}, 2)

	for _, d := range []Direction{-1, 4, 17} {
		_, err := g.ApplyMove(d)
		assert.ErrorIs(t, err, ErrInvalidDirection, "ApplyMove(%d)", d)
	}
	tile, _ := g.At(Position{X: 1, Y: 1})
	assert.Equal(t, 2, tile.Value, "invalid move should leave the board untouched")
}

func TestApplyMoveNoOpLeavesGridUnchanged(t *testing.T) {
	g := mustFromValues(t, [][]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := g.Clone()

	require.False(t, g.CanMove(Left))
	require.False(t, g.CanMove(Up))
	for _, d := range []Direction{Left, Up} {
		result, err := g.ApplyMove(d)
		require.NoError(t, err)
		assert.False(t, result.Moved, "ApplyMove(%v) reported a move", d)
		assert.True(t, g.Equal(before), "ApplyMove(%v) changed the grid", d)
	}
}

func TestApplyMoveConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []int{2, 2, 2, 4, 4, 8, 16}

	for round := 0; round < 200; round++ {
		g := MustNew(4)
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				if rng.Float64() < 0.6 {
					g.Insert(Position{X: x, Y: y}, values[rng.Intn(len(values))])
				}
			}
		}

		for _, d := range Directions {
			work := g.Clone()
			tilesBefore, sumBefore := work.TileCount(), work.Sum()
			canMove := work.CanMove(d)

			result, err := work.ApplyMove(d)
			require.NoError(t, err)

			require.Equal(t, tilesBefore-result.Merges, work.TileCount(), "round %d %v: tile count", round, d)
			require.Equal(t, sumBefore, work.Sum(), "round %d %v: tile sum", round, d)
			require.Equal(t, canMove, result.Moved, "round %d %v: Moved vs CanMove", round, d)

			mergedSum := 0
			work.EachTile(func(tile Tile) {
				require.True(t, work.WithinBounds(tile.Position), "tile out of bounds: %+v", tile)
				if tile.Merged() {
					mergedSum += tile.Value
				}
			})
			require.Equal(t, result.ScoreGained, mergedSum, "round %d %v: merged tiles vs score gained", round, d)
		}
	}
}

func TestPrepareForMoveClearsMergeAnnotation(t *testing.T) {
	g := mustFromValues(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	_, err := g.ApplyMove(Left)
	require.NoError(t, err)
	tile, _ := g.At(Position{X: 0, Y: 0})
	require.True(t, tile.Merged(), "tile should be marked merged after the move")

	g.PrepareForMove()
	tile, _ = g.At(Position{X: 0, Y: 0})
	assert.False(t, tile.Merged(), "PrepareForMove should clear the merge annotation")
	assert.False(t, tile.Moved(), "PrepareForMove should snapshot the current position")
}

func TestFindFarthestPosition(t *testing.T) {
	g := mustFromValues(t, [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	tests := []struct {
		name     string
		cell     Position
		dir      Direction
		farthest Position
		next     Position
	}{
		{"blocked by tile", Position{X: 0, Y: 0}, Right, Position{X: 2, Y: 0}, Position{X: 3, Y: 0}},
		{"runs to edge", Position{X: 0, Y: 3}, Up, Position{X: 0, Y: 0}, Position{X: 0, Y: -1}},
		{"already at edge", Position{X: 0, Y: 1}, Left, Position{X: 0, Y: 1}, Position{X: -1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := tt.dir.Vector()
			farthest, next := g.FindFarthestPosition(tt.cell, v)
			assert.Equal(t, tt.farthest, farthest)
			assert.Equal(t, tt.next, next)
		})
	}
}
