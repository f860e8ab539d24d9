package storage

import (
	"database/sql"
	"fmt"
)

// Stats aggregates the recorded games of one variant.
type Stats struct {
	Games        int
	Wins         int
	BestScore    int
	AverageScore float64
	BestTile     int
	TotalMoves   int
}

// WinRate returns the fraction of recorded games that reached the win value.
func (st Stats) WinRate() float64 {
	if st.Games == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Games)
}

// Stats returns the aggregate of all scores recorded for gameID.
func (s *Store) Stats(gameID string) (Stats, error) {
	var (
		st      Stats
		wins    sql.NullInt64
		best    sql.NullInt64
		avg     sql.NullFloat64
		maxTile sql.NullInt64
		moves   sql.NullInt64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(won), MAX(score), AVG(score), MAX(max_tile), SUM(moves)
		 FROM scores
		 WHERE game_id = ?`,
		gameID,
	).Scan(&st.Games, &wins, &best, &avg, &maxTile, &moves)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.Wins = int(wins.Int64)
	st.BestScore = int(best.Int64)
	st.AverageScore = avg.Float64
	st.BestTile = int(maxTile.Int64)
	st.TotalMoves = int(moves.Int64)
	return st, nil
}
