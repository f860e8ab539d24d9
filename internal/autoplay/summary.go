package autoplay

import (
	"slices"
	"time"

	"github.com/vovakirdan/evil2048/internal/record"
)

// Summary aggregates a batch of games.
type Summary struct {
	Games     int
	Wins      int
	BestScore int
	MeanScore float64
	MeanMoves float64
	BestTile  int
	Elapsed   time.Duration

	// TileCounts maps a max tile to the number of games that ended with it.
	TileCounts map[int]int
}

// Summarize aggregates results.
func Summarize(results []GameResult) Summary {
	s := Summary{Games: len(results), TileCounts: make(map[int]int)}
	if len(results) == 0 {
		return s
	}
	var scores, moves int
	for _, r := range results {
		if r.Won {
			s.Wins++
		}
		s.BestScore = max(s.BestScore, r.Score)
		s.BestTile = max(s.BestTile, r.MaxTile)
		s.TileCounts[r.MaxTile]++
		s.Elapsed += r.Duration
		scores += r.Score
		moves += r.Moves
	}
	s.MeanScore = float64(scores) / float64(len(results))
	s.MeanMoves = float64(moves) / float64(len(results))
	return s
}

// Tiles returns the max tiles seen, ascending.
func (s Summary) Tiles() []int {
	tiles := make([]int, 0, len(s.TileCounts))
	for t := range s.TileCounts {
		tiles = append(tiles, t)
	}
	slices.Sort(tiles)
	return tiles
}

// WinRate returns the share of won games.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// GameRow converts the result for export.
func (r GameResult) GameRow() record.GameRow {
	return record.GameRow{
		GameID:     r.ID,
		Variant:    string(r.Variant),
		Strategy:   r.Strategy,
		Seed:       r.Seed,
		Score:      int32(r.Score),
		Moves:      int32(r.Moves),
		MaxTile:    int32(r.MaxTile),
		Won:        r.Won,
		DurationMS: r.Duration.Milliseconds(),
	}
}

// TurnRows converts the recorded turns for export. It is empty unless the
// game ran with RecordTurns.
func (r GameResult) TurnRows() []record.TurnRow {
	rows := make([]record.TurnRow, 0, len(r.Turns))
	for _, t := range r.Turns {
		values := t.Board.Values()
		size := t.Board.Size()
		board := make([]int32, 0, size*size)
		for _, row := range values {
			for _, v := range row {
				board = append(board, int32(v))
			}
		}
		row := record.TurnRow{
			GameID:      r.ID,
			Variant:     string(r.Variant),
			Strategy:    r.Strategy,
			Turn:        int32(t.Number),
			Direction:   int32(t.Direction),
			ScoreGained: int32(t.Result.ScoreGained),
			Score:       int32(t.Score),
			Merges:      int32(t.Result.Merges),
			SpawnX:      -1,
			SpawnY:      -1,
			Size:        int32(size),
			Board:       board,
			MaxTile:     int32(t.Board.MaxTile()),
			EmptyCells:  int32(t.Board.AvailableCount()),
		}
		if t.Spawned {
			row.SpawnX = int32(t.Spawn.Cell.X)
			row.SpawnY = int32(t.Spawn.Cell.Y)
			row.SpawnValue = int32(t.Spawn.Value)
		}
		rows = append(rows, row)
	}
	return rows
}
