package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/games/evil2048"
	"github.com/vovakirdan/evil2048/internal/registry"
	"github.com/vovakirdan/evil2048/internal/storage"
)

// Resizer is implemented by games that adapt to a new terminal size
// without a reset.
type Resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // score already recorded for the finished game
}

// NewModel creates a new Bubble Tea model for the given game. The store
// and the logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.Default()
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop. The game must already be Reset.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	// Quitting keeps the game saved for the next session.
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var abandoned storage.ScoreEntry
	if m.inputFrame.Has(core.ActionRestart) {
		abandoned = m.scoreEntry()
	}

	result := m.game.Step(m.inputFrame)
	if result.Restarted {
		// An abandoned game still counts.
		m.saveScore(abandoned)
		m.scoreSaved = false
	}
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveScore(m.scoreEntry())
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// scoreEntry describes the game as of the last tick.
func (m *Model) scoreEntry() storage.ScoreEntry {
	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Won:    m.gameState.Won,
	}
	if g, ok := m.game.(*evil2048.Game); ok {
		snap := g.Snapshot()
		entry.MaxTile = snap.MaxTile
		entry.Moves = snap.Moves
		entry.Won = g.Controller().Won()
	}
	return entry
}

// saveScore stores the current game once, if it scored at all.
func (m *Model) saveScore(entry storage.ScoreEntry) {
	if m.scoreSaved || m.store == nil || entry.Score == 0 {
		return
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Error("cannot save score", "game", entry.GameID, "error", err)
		return
	}
	m.scoreSaved = true
}

// saveScreenshot saves the current screen to ~/.evil2048/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".evil2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last stepped game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run resets the game and runs it until the player quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	game.Reset(cfg)
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
