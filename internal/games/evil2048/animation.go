package evil2048

import (
	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/grid"
)

// spawnHighlightTicks is how long the last placed tile stays marked
// (~250ms at 60fps).
const spawnHighlightTicks = 15

// spawnMark highlights the tile placed after the last move.
type spawnMark struct {
	cell  grid.Position
	ticks int
}

func (g *Game) markSpawn() {
	if p, ok := g.ctrl.LastSpawn(); ok {
		g.spawn = spawnMark{cell: p.Cell, ticks: spawnHighlightTicks}
	}
}

func (g *Game) advanceSpawnMark() {
	if g.spawn.ticks > 0 {
		g.spawn.ticks--
	}
}

// renderSpawnMark brackets the highlighted cell.
func (g *Game) renderSpawnMark(dst *core.Screen, boardX, boardY int) {
	if g.spawn.ticks == 0 {
		return
	}
	x := boardX + g.spawn.cell.X*cellWidth
	y := boardY + g.spawn.cell.Y*cellHeight + 1
	dst.SetColored(x+1, y, '[', core.ColorBrightRed)
	dst.SetColored(x+cellWidth-1, y, ']', core.ColorBrightRed)
}
