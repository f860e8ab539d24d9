// Package record writes simulated games to Parquet files for offline
// analysis of the adversary.
package record

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TurnRow is one player move and the tile spawned after it.
//
// Board is the board after the spawn, flattened row by row (index y*size+x),
// 0 for empty cells. Direction uses 0=up, 1=right, 2=down, 3=left.
type TurnRow struct {
	GameID      string  `parquet:"game_id,dict"`
	Variant     string  `parquet:"variant,dict"`
	Strategy    string  `parquet:"strategy,dict"`
	Turn        int32   `parquet:"turn"`
	Direction   int32   `parquet:"direction"`
	ScoreGained int32   `parquet:"score_gained"`
	Score       int32   `parquet:"score"`
	Merges      int32   `parquet:"merges"`
	SpawnX      int32   `parquet:"spawn_x"`
	SpawnY      int32   `parquet:"spawn_y"`
	SpawnValue  int32   `parquet:"spawn_value"`
	Size        int32   `parquet:"size"`
	Board       []int32 `parquet:"board"`
	MaxTile     int32   `parquet:"max_tile"`
	EmptyCells  int32   `parquet:"empty_cells"`
}

// GameRow summarises one finished game.
type GameRow struct {
	GameID     string `parquet:"game_id,dict"`
	Variant    string `parquet:"variant,dict"`
	Strategy   string `parquet:"strategy,dict"`
	Seed       int64  `parquet:"seed"`
	Score      int32  `parquet:"score"`
	Moves      int32  `parquet:"moves"`
	MaxTile    int32  `parquet:"max_tile"`
	Won        bool   `parquet:"won"`
	DurationMS int64  `parquet:"duration_ms"`
}

const (
	turnSchema = "evil2048_turn_v1"
	gameSchema = "evil2048_game_v1"
)

// WriteTurns writes rows to outPath atomically.
func WriteTurns(outPath string, rows []TurnRow) error {
	return writeAtomic(outPath, rows, turnSchema)
}

// WriteGames writes rows to outPath atomically.
func WriteGames(outPath string, rows []GameRow) error {
	return writeAtomic(outPath, rows, gameSchema)
}

func writeAtomic[T any](outPath string, rows []T, schema string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("record: create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("record: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("record: rename parquet: %w", err)
	}
	return nil
}

// ReadTurns loads every row of a turn file.
func ReadTurns(path string) ([]TurnRow, error) {
	return readAll[TurnRow](path)
}

// ReadGames loads every row of a game file.
func ReadGames(path string) ([]GameRow, error) {
	return readAll[GameRow](path)
}

func readAll[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("record: open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("record: read parquet: %w", err)
	}
	return rows[:n], nil
}
