package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/evil2048/internal/config"
	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/games/evil2048"
	"github.com/vovakirdan/evil2048/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"l", core.ActionRight, false},
		{"s", core.ActionDown, false},
		{"left", core.ActionLeft, false},
		{"r", core.ActionRestart, false},
		{"c", core.ActionContinue, false},
		{"p", core.ActionPause, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		assert.Equal(t, tt.action, action, "MapKey(%q)", tt.key)
		assert.Equal(t, tt.quit, quit, "MapKey(%q) quit", tt.key)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"j":     MenuActionDown,
		"left":  MenuActionLeft,
		"d":     MenuActionRight,
		"enter": MenuActionSelect,
		"tab":   MenuActionScoreboard,
		"b":     MenuActionBack,
		"q":     MenuActionQuit,
		"z":     MenuActionNone,
	}
	for key, want := range tests {
		assert.Equal(t, want, km.MapKeyToMenuAction(keyMsg(key)), "MapKeyToMenuAction(%q)", key)
	}
}

func TestMenuSelectsVariantAndPreset(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyEvil)
	require.Equal(t, config.DifficultyEvil, m.Preset())

	// Variants are listed by ID: classic2048 first, then evil2048.
	next, _ := m.Update(keyMsg("j"))
	m = next.(MenuModel)
	next, _ = m.Update(keyMsg("left"))
	m = next.(MenuModel)
	assert.Equal(t, config.DifficultyNormal, m.Preset())
	assert.Contains(t, m.View(), "Difficulty: < normal >")

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	require.NotNil(t, cmd, "select should quit the menu program")
	res := m.result()
	assert.Equal(t, evil2048.IDEvil, res.GameID)
	assert.Equal(t, config.DifficultyNormal, res.Preset)
	assert.False(t, res.Quit)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyEvil)
	next, _ := m.Update(keyMsg("tab"))
	assert.True(t, next.(MenuModel).result().WantsScoreboard)

	next, _ = m.Update(keyMsg("q"))
	assert.True(t, next.(MenuModel).result().Quit)
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, '2', core.ColorWhite)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ab"), "line 0 = %q", lines[0])
	assert.Contains(t, lines[1], "2")
}

func TestScoreRows(t *testing.T) {
	rows := scoreRows([]storage.ScoreEntry{
		{Score: 1200, MaxTile: 128, Moves: 150, Won: false, CreatedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)},
		{Score: 900, MaxTile: 64, Moves: 99, Won: true},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"#1", "1200", "128", "150", "", "Jan 02 15:04"}, []string(rows[0]))
	assert.Equal(t, "yes", rows[1][4], "won column")
}

// finishedGame is over from the first tick.
type finishedGame struct {
	score int
}

func (g *finishedGame) ID() string { return "finished" }
func (g *finishedGame) Title() string { return "Finished" }
func (g *finishedGame) Reset(core.RuntimeConfig) {}
func (g *finishedGame) Render(*core.Screen) {}
func (g *finishedGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.State()}
}
func (g *finishedGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: true}
}

func TestModelRecordsFinishedGameOnce(t *testing.T) {
	store := openStore(t)

	m := NewModel(&finishedGame{score: 512}, store, nil, core.DefaultConfig())
	for range 3 {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	scores, err := store.TopScores("finished", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 512, scores[0].Score)
	assert.True(t, m.State().GameOver, "model did not pick up the game state")
}

// pausableGame restarts on R unless paused.
type pausableGame struct {
	score    int
	paused   bool
	restarts int
}

func (g *pausableGame) ID() string { return "pausable" }
func (g *pausableGame) Title() string { return "Pausable" }
func (g *pausableGame) Reset(core.RuntimeConfig) {}
func (g *pausableGame) Render(*core.Screen) {}
func (g *pausableGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || !in.Has(core.ActionRestart) {
		return core.StepResult{State: g.State()}
	}
	g.restarts++
	g.score = 0
	return core.StepResult{State: g.State(), Restarted: true}
}
func (g *pausableGame) State() core.GameState {
	return core.GameState{Score: g.score, Paused: g.paused}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
		next, _ = m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func TestModelRecordsRestartOnlyWhenItHappens(t *testing.T) {
	store := openStore(t)

	game := &pausableGame{score: 32}
	m := NewModel(game, store, nil, core.DefaultConfig())
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	m = press(m, "p", "r", "r", "r")
	require.Zero(t, game.restarts, "paused game restarted")
	scores, err := store.TopScores("pausable", 10)
	require.NoError(t, err)
	require.Empty(t, scores, "no score is recorded while the restart is ignored")

	m = press(m, "p", "r", "r")
	require.Equal(t, 2, game.restarts)
	scores, err = store.TopScores("pausable", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 32, scores[0].Score)
	assert.Zero(t, m.State().Score)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&finishedGame{}, nil, nil, core.DefaultConfig())
	next, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd, "q should quit")
	assert.Empty(t, next.(Model).View(), "view after quit should be empty")
}
