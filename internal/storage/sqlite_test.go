package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/evil2048/internal/controller"
	"github.com/vovakirdan/evil2048/internal/grid"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, score := range scores {
		_, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: score})
		require.NoError(t, err)
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created in nested directory")
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)

	id, err := store.SaveScore(ScoreEntry{GameID: "evil2048", Score: 1200, MaxTile: 128, Moves: 210, Won: false})
	require.NoError(t, err)
	assert.Positive(t, id)
	saveScores(t, store, "evil2048", 50, 3000)
	saveScores(t, store, "classic2048", 500)

	scores, err := store.TopScores("evil2048", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []int{3000, 1200, 50}, []int{scores[0].Score, scores[1].Score, scores[2].Score})
	assert.Equal(t, 128, scores[1].MaxTile)
	assert.Equal(t, 210, scores[1].Moves)
	assert.False(t, scores[1].CreatedAt.IsZero())

	classic, err := store.TopScores("classic2048", 10)
	require.NoError(t, err)
	assert.Len(t, classic, 1)
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTest(t)
	saveScores(t, store, "evil2048", 100, 200, 300, 400, 500)

	scores, err := store.TopScores("evil2048", 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 500, scores[0].Score)
	assert.Equal(t, 300, scores[2].Score)

	all, err := store.AllScores("evil2048")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTest(t)

	high, err := store.HighScore("evil2048")
	require.NoError(t, err)
	assert.Zero(t, high)

	saveScores(t, store, "evil2048", 100, 300, 200)
	saveScores(t, store, "classic2048", 900)

	high, err = store.HighScore("evil2048")
	require.NoError(t, err)
	assert.Equal(t, 300, high)

	require.NoError(t, store.ClearScores("evil2048"))
	evil, err := store.TopScores("evil2048", 10)
	require.NoError(t, err)
	assert.Empty(t, evil)

	classic, err := store.TopScores("classic2048", 10)
	require.NoError(t, err)
	assert.Len(t, classic, 1, "clearing one variant must not touch another")
}

func TestStoreStats(t *testing.T) {
	store := openTest(t)

	empty, err := store.Stats("evil2048")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty)
	assert.Zero(t, empty.WinRate())

	entries := []ScoreEntry{
		{GameID: "evil2048", Score: 100, MaxTile: 16, Moves: 40},
		{GameID: "evil2048", Score: 300, MaxTile: 64, Moves: 90},
		{GameID: "evil2048", Score: 20000, MaxTile: 2048, Moves: 900, Won: true},
		{GameID: "classic2048", Score: 99999, MaxTile: 4096, Won: true},
	}
	for _, e := range entries {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	st, err := store.Stats("evil2048")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Games)
	assert.Equal(t, 1, st.Wins)
	assert.Equal(t, 20000, st.BestScore)
	assert.InDelta(t, 20400.0/3, st.AverageScore, 1e-9)
	assert.Equal(t, 2048, st.BestTile)
	assert.Equal(t, 1030, st.TotalMoves)
	assert.InDelta(t, 1.0/3, st.WinRate(), 1e-9)
}

func TestSlotSaveLoadClear(t *testing.T) {
	store := openTest(t)
	slot := store.Slot("evil2048")

	state, err := slot.Load()
	require.NoError(t, err)
	assert.Nil(t, state)

	g, err := grid.FromValues([][]int{
		{2, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 16},
	})
	require.NoError(t, err)
	saved := controller.State{Version: controller.StateVersion, Grid: g.Serialize(), Score: 64, Won: true, KeepPlaying: true, Moves: 12}
	require.NoError(t, slot.Save(saved))

	saved.Score = 128
	require.NoError(t, slot.Save(saved))

	state, err = slot.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 128, state.Score)
	assert.True(t, state.KeepPlaying)
	restored, err := grid.Restore(state.Grid)
	require.NoError(t, err)
	assert.True(t, restored.Equal(g))

	other, err := store.Slot("classic2048").Load()
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, slot.Clear())
	state, err = slot.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSlotCorruptState(t *testing.T) {
	store := openTest(t)
	_, err := store.db.Exec("INSERT INTO saved_games (game_id, state) VALUES (?, ?)", "evil2048", "{not json")
	require.NoError(t, err)

	_, err = store.Slot("evil2048").Load()
	var restoreErr *controller.RestoreError
	assert.ErrorAs(t, err, &restoreErr)
}

func TestSlotBestScore(t *testing.T) {
	store := openTest(t)
	slot := store.Slot("evil2048")

	best, err := slot.BestScore()
	require.NoError(t, err)
	assert.Zero(t, best)

	require.NoError(t, slot.SetBestScore(512))
	require.NoError(t, slot.SetBestScore(1024))

	best, err = slot.BestScore()
	require.NoError(t, err)
	assert.Equal(t, 1024, best)
}

func TestSlotDrivesController(t *testing.T) {
	store := openTest(t)

	c, err := controller.New(controller.Options{Store: store.Slot("evil2048")})
	require.NoError(t, err)
	want := c.Grid()

	resumed, err := controller.New(controller.Options{Store: store.Slot("evil2048")})
	require.NoError(t, err)
	assert.True(t, resumed.Grid().Equal(want), "a second controller resumes the saved board")
}
