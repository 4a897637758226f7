package match3

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/crystal-arcade/internal/core"
	m3 "github.com/vovakirdan/crystal-arcade/internal/match3"
)

const (
	cellWidth = 3 // gem plus a bracket on each side
	hudHeight = 3
	footerH   = 2
)

// Gems differ in shape as well as color so the board reads without color.
var gemGlyphs = [m3.MaxColors + 1]rune{' ', '◆', '●', '▲', '★', '■', '♥', '♣', '✦'}

var gemColors = [m3.MaxColors + 1]core.Color{
	core.ColorDefault,
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorYellow,
	core.ColorMagenta,
	core.ColorOrange,
	core.ColorCyan,
	core.ColorWhite,
}

func (g *Game) boardSize() (int, int) {
	return g.cfg.Board.Width*cellWidth + 2, g.cfg.Board.Height + 2
}

func (g *Game) minScreenSize() (int, int) {
	w, h := g.boardSize()
	return max(w, 34), h + hudHeight + footerH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	area := core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-footerH)
	box := area.Centered(boardW, boardH)
	box.Y = max(box.Y, hudHeight)

	g.renderHUD(dst, box)
	g.renderBoard(dst, box)
	g.renderFooter(dst, box)
	g.renderOverlays(dst, box)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, g.screenW, g.screenH))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and level progress.
func (g *Game) renderHUD(dst *core.Screen, box core.Rect) {
	dst.DrawColoredTextCentered(0, strings.ToUpper(g.Title()), core.ColorBrightYellow)

	dst.DrawText(box.X, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d  %d/%d", g.level, g.score, g.target)
	} else {
		info = fmt.Sprintf("Moves %d  Chain %d", g.moves, g.maxChain)
	}
	dst.DrawText(max(box.X, box.Right()-len(info)), 1, info)

	if g.mode == ModeCampaign && g.target > 0 {
		// Progress toward the level target
		filled := min(box.W*g.score/g.target, box.W)
		for x := range box.W {
			if x < filled {
				dst.SetColored(box.X+x, 2, '█', core.ColorGreen)
			} else {
				dst.SetColored(box.X+x, 2, '░', core.ColorGray)
			}
		}
	}
}

// renderBoard draws the grid of gems with cursor, selection and effects.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)

	grid := g.board
	var f *frame
	if f = g.currentFrame(); f != nil {
		grid = f.grid
	}
	blink := (g.tick/6)%2 == 0

	for r := range grid.H {
		for c := range grid.W {
			p := m3.P(r, c)
			x := box.X + 1 + c*cellWidth
			y := box.Y + 1 + r

			cell := grid.At(p)
			glyph := core.Cell{Rune: gemGlyphs[cell.Color], Color: gemColors[cell.Color]}

			switch {
			case f != nil && slices.Contains(f.flash, p):
				if blink {
					glyph = core.Cell{Rune: '✧', Color: core.ColorBrightWhite, Bold: true}
				}
			case f != nil && slices.Contains(f.fresh, p):
				glyph.Bold = true
			case f == nil && slices.Contains(g.hint, p):
				glyph.Bold = blink
			}
			dst.SetCell(x+1, y, glyph)

			switch {
			case f != nil && slices.Contains(f.swap, p):
				dst.SetColored(x, y, '‹', core.ColorBrightWhite)
				dst.SetColored(x+2, y, '›', core.ColorBrightWhite)
			case f == nil && g.hasSel && g.selected == p:
				dst.SetColored(x, y, '(', core.ColorBrightYellow)
				dst.SetColored(x+2, y, ')', core.ColorBrightYellow)
			case f == nil && g.cursor == p:
				dst.SetColored(x, y, '[', core.ColorBrightWhite)
				dst.SetColored(x+2, y, ']', core.ColorBrightWhite)
			}
		}
	}
}

// renderFooter draws allowances and the current banner.
func (g *Game) renderFooter(dst *core.Screen, box core.Rect) {
	y := box.Bottom()
	dst.DrawColoredText(box.X, y, fmt.Sprintf("Hints %d  Shuffles %d", g.hintsLeft, g.reshufflesLeft), core.ColorGray)

	if g.banner != "" {
		color := core.ColorCyan
		if strings.HasPrefix(g.banner, "COMBO") {
			color = core.ColorBrightYellow
		}
		dst.DrawColoredTextCentered(y+1, g.banner, color)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, box core.Rect) {
	switch {
	case g.paused:
		g.drawOverlay(dst, box, "PAUSED", "Press P to resume")
	case g.gameOver:
		g.drawOverlay(dst, box, "GAME OVER", fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("Best chain: x%d", g.maxChain), "Press R to restart")
	case g.levelUpTicks > 0:
		g.drawOverlay(dst, box, fmt.Sprintf("LEVEL %d", g.level), LevelName(g.level),
			fmt.Sprintf("Target: %d", g.target))
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, box core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	cx, cy := box.Center()
	r := core.NewRect(cx-(maxLen+4)/2, cy-(len(lines)+2)/2, maxLen+4, len(lines)+2)

	dst.FillRect(r, core.Cell{Rune: ' '})
	dst.DrawBox(r, core.ColorWhite)
	for i, line := range lines {
		x := cx - len([]rune(line))/2
		dst.DrawColoredText(x, r.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Select | ?: Hint | X: Shuffle | P: Pause | R: Restart | Q: Quit"
}
