package evil2048

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/evil2048/internal/config"
	"github.com/vovakirdan/evil2048/internal/controller"
	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/grid"
	"github.com/vovakirdan/evil2048/internal/registry"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func storeWithBoard(t *testing.T, rows [][]int) *controller.MemoryStore {
	t.Helper()
	g, err := grid.FromValues(rows)
	require.NoError(t, err)
	store := controller.NewMemoryStore()
	require.NoError(t, store.Save(controller.State{Version: controller.StateVersion, Grid: g.Serialize()}))
	return store
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDEvil, IDClassic} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestResetStartsWithTwoTiles(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig(1))

	snap := g.Snapshot()
	tiles := 0
	for _, row := range snap.Board {
		for _, v := range row {
			if v != 0 {
				tiles++
			}
		}
	}
	assert.Equal(t, 2, tiles)
	assert.Equal(t, StatePlaying, snap.State)
	assert.Zero(t, snap.Score)
}

func TestDeterministicReplay(t *testing.T) {
	moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}

	play := func(g *Game) Snapshot {
		g.Reset(runtimeConfig(42))
		for i := 0; i < 60; i++ {
			g.Step(frame(moves[i%len(moves)]))
		}
		return g.Snapshot()
	}

	for _, newGame := range []func() *Game{New, NewClassic} {
		a := play(newGame())
		b := play(newGame())
		assert.Equal(t, a, b, "%s: same seed gave different snapshots", a.Variant)
	}
}

func TestStepMovesAndScores(t *testing.T) {
	g := New()
	g.UseStore(storeWithBoard(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	g.Reset(runtimeConfig(3))

	res := g.Step(frame(core.ActionRight))
	require.True(t, res.Moved, "expected the move to change the board")
	assert.Equal(t, 4, res.State.Score)
	assert.Equal(t, 4, res.State.BestScore)
	assert.Equal(t, 4, g.Snapshot().Board[0][3])
}

func TestWinContinueAndRestart(t *testing.T) {
	g := New()
	g.UseStore(storeWithBoard(t, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	g.Reset(runtimeConfig(5))

	res := g.Step(frame(core.ActionLeft))
	require.True(t, res.State.Won)
	require.True(t, res.State.Terminated())
	assert.Equal(t, StateWon, g.Snapshot().State)

	assert.False(t, g.Step(frame(core.ActionRight)).Moved, "moves must be ignored after a win")

	g.Step(frame(core.ActionContinue))
	assert.False(t, g.State().Won, "continue should clear the won state")
	assert.True(t, g.Step(frame(core.ActionRight)).Moved, "moves should resume after continue")

	res = g.Step(frame(core.ActionRestart))
	assert.True(t, res.Restarted)
	snap := g.Snapshot()
	assert.Zero(t, snap.Score)
	assert.LessOrEqual(t, snap.MaxTile, 4)
}

func TestPauseBlocksMoves(t *testing.T) {
	g := NewClassic()
	g.Reset(runtimeConfig(9))
	before := g.Snapshot().Board

	g.Step(frame(core.ActionPause))
	for _, a := range []core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft} {
		g.Step(frame(a))
	}
	assert.Equal(t, before, g.Snapshot().Board, "board changed while paused")
	assert.Equal(t, StatePaused, g.Snapshot().State)
	assert.False(t, g.Step(frame(core.ActionRestart)).Restarted, "restart reported while paused")

	g.Step(frame(core.ActionPause))
	assert.True(t, g.Step(frame(core.ActionRestart)).Restarted, "restart not reported after unpausing")
}

func TestClassicConfigSpawnsNoAdversary(t *testing.T) {
	cfg := config.Default()
	config.ApplyPreset(&cfg, config.DifficultyClassic)

	g := New()
	g.UseConfig(cfg)
	g.Reset(runtimeConfig(11))
	for i := 0; i < 20; i++ {
		g.Step(frame(core.ActionLeft))
		g.Step(frame(core.ActionDown))
	}
	assert.NotZero(t, g.Snapshot().Moves, "expected some moves to be played")
}

func TestResetFallsBackToDefaultBoard(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Board.Size = -1

	g := New()
	g.UseConfig(cfg)
	g.UseLogger(log.New(&buf))
	g.Reset(runtimeConfig(2))

	require.NotNil(t, g.Controller())
	assert.Equal(t, 4, g.Controller().Grid().Size())
	assert.Contains(t, buf.String(), "invalid board configuration")
	assert.True(t, g.Step(frame(core.ActionRestart)).Restarted)
}

func TestRender(t *testing.T) {
	g := New()
	g.UseStore(storeWithBoard(t, [][]int{
		{2048, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 16},
	}))
	g.Reset(runtimeConfig(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Evil 2048", "Score: 0", "2048", "16", "┌"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	cfg := runtimeConfig(1)
	cfg.ScreenW, cfg.ScreenH = 20, 8
	g.Reset(cfg)

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	assert.Contains(t, screen.String(), "too small")
	assert.True(t, g.State().Paused, "a too-small window pauses the game")
	assert.False(t, g.Step(frame(core.ActionRestart)).Restarted, "restart ignored while the window is too small")
}

func TestSpawnHighlight(t *testing.T) {
	g := New()
	g.UseStore(storeWithBoard(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	g.Reset(runtimeConfig(3))

	g.Step(frame(core.ActionRight))
	spawn, ok := g.Controller().LastSpawn()
	require.True(t, ok, "no tile placed after a move")
	require.Equal(t, spawnMark{cell: spawn.Cell, ticks: spawnHighlightTicks}, g.spawn)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "[", "highlighted tile is not bracketed")

	for range spawnHighlightTicks {
		g.Step(frame())
	}
	assert.Zero(t, g.spawn.ticks, "mark still active after %d ticks", spawnHighlightTicks)
	g.Render(screen)
	assert.NotContains(t, screen.String(), "[", "bracket drawn after the mark expired")
}
