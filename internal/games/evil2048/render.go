package evil2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/grid"
)

const (
	cellWidth  = 7 // Width of each cell (including the left border)
	cellHeight = 2 // Height of each cell (including the top border)
	hudHeight  = 3
)

// boardDims returns the rendered width and height of a size×size board.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.ctrl.Grid()
	boardW, boardH := boardDims(board.Size())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, board, boardX, boardW)
	renderBoard(dst, board, boardX, boardY)
	g.renderSpawnMark(dst, boardX, boardY)
	g.renderOverlays(dst, board, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, board *grid.Grid, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightRed)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.ctrl.Score()))

	best := fmt.Sprintf("Best: %d", max(g.meta.BestScore, g.ctrl.Score()))
	dst.DrawText(core.Max(boardX, boardX+boardW-len(best)), 1, best)

	info := fmt.Sprintf("Max: %d  Moves: %d", board.MaxTile(), g.ctrl.Moves())
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderBoard draws the grid lines and the tiles. Rows are y, columns x.
func renderBoard(dst *core.Screen, board *grid.Grid, boardX, boardY int) {
	n := board.Size()
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	board.EachTile(func(t grid.Tile) {
		text := strconv.Itoa(t.Value)
		pad := core.Clamp((cellWidth-1-len(text))/2, 0, cellWidth-1)
		cellX := boardX + t.Position.X*cellWidth + 1
		cellY := boardY + t.Position.Y*cellHeight + 1
		dst.DrawTextColored(cellX+pad, cellY, text, core.TileColor(t.Value))
	})
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board *grid.Grid, area core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, area, "PAUSED", "Press P to resume")
	case g.ctrl.Over():
		drawOverlay(dst, area, "GAME OVER", fmt.Sprintf("Max tile: %d", board.MaxTile()), "Press R to restart")
	case g.ctrl.Won() && !g.ctrl.KeepingOn():
		drawOverlay(dst, area, "YOU WIN!", "C: keep playing", "R: restart")
	}
}

// drawOverlay draws a boxed text overlay centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	centerX, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | C: Continue | P: Pause | R: Restart | Q: Quit"
}
