package rails

import (
	"fmt"

	"github.com/vovakirdan/tui-rails/internal/core"
	railcore "github.com/vovakirdan/tui-rails/internal/games/rails/core"
)

// Layout rows above and below the map.
const (
	hudRows    = 1
	footerRows = 2
)

var railGlyphs = map[railcore.RailMask]rune{
	railcore.MaskNorth | railcore.MaskSouth: '│',
	railcore.MaskEast | railcore.MaskWest:   '─',
	railcore.MaskNorth | railcore.MaskEast:  '└',
	railcore.MaskNorth | railcore.MaskWest:  '┘',
	railcore.MaskSouth | railcore.MaskEast:  '┌',
	railcore.MaskSouth | railcore.MaskWest:  '┐',
	railcore.MaskNorth:                      '╵',
	railcore.MaskSouth:                      '╷',
	railcore.MaskEast:                       '╶',
	railcore.MaskWest:                       '╴',
}

var facingGlyphs = [...]rune{
	railcore.DirNorth: '▲',
	railcore.DirEast:  '▶',
	railcore.DirSouth: '▼',
	railcore.DirWest:  '◀',
}

// mapRect returns where the bordered map is drawn on a screen of w×h.
func mapRect(rows, cols, w int) core.Rect {
	mw := cols*2 + 2
	return core.NewRect((w-mw)/2, hudRows, mw, rows+2)
}

// Render draws the HUD, the map and the status bar.
func (g *Game) Render(dst *core.Screen) {
	snap := g.session.Snapshot()
	box := mapRect(snap.Rows, snap.Cols, dst.Width())

	if dst.Width() < box.W || dst.Height() < box.H+hudRows+footerRows {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("need %dx%d", box.W, box.H+hudRows+footerRows), core.ColorGray)
		return
	}

	g.renderHUD(dst, snap)
	dst.DrawBox(box, core.ColorGray)
	ox, oy := box.X+1, box.Y+1

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			c := railcore.C(row, col)
			left, right := cellGlyphs(snap.Cell(c))
			dst.SetCell(ox+col*2, oy+row, left)
			dst.SetCell(ox+col*2+1, oy+row, right)
		}
	}

	grid := g.session.Grid()
	for _, t := range snap.Trains {
		g.renderWagons(dst, grid, snap, t, ox, oy)
	}
	for _, st := range snap.Stations {
		bg := terrainBG(snap.Cell(st.Cell).Terrain)
		fg := core.ColorBrightWhite
		if st.Full > 0 {
			fg = core.ColorBrightRed
		}
		if st.ID == g.selected {
			bg = core.ColorMagenta
		}
		x, y := ox+st.Cell.Col*2, oy+st.Cell.Row
		dst.SetCell(x, y, core.Cell{Rune: st.Shape.Glyph(), FG: fg, BG: bg})
		dst.SetCell(x+1, y, core.Cell{Rune: countGlyph(len(st.Waiting)), FG: fg, BG: bg})
	}
	for _, t := range snap.Trains {
		c, ok := grid.WorldToCell(t.Pos)
		if !ok {
			c = t.Cell
		}
		bg := terrainBG(snap.Cell(c).Terrain)
		x, y := ox+c.Col*2, oy+c.Row
		dst.SetCell(x, y, core.Cell{Rune: facingGlyphs[t.Facing], FG: core.ColorBrightYellow, BG: bg})
		dst.SetCell(x+1, y, core.Cell{Rune: countGlyph(len(t.Passengers)), FG: core.ColorBrightYellow, BG: bg})
	}

	g.renderCursor(dst, ox, oy)
	g.renderFooter(dst, box)

	if snap.GameOver {
		renderGameOver(dst, box, snap.Delivered)
	} else if g.paused {
		dst.DrawTextCentered(box.Y+box.H/2, " PAUSED ", core.ColorBrightYellow)
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap railcore.Snapshot) {
	secs := int(snap.Elapsed)
	hud := fmt.Sprintf("Points: %d   Time: %d:%02d   Delivered: %d   [%s]",
		snap.Score, secs/60, secs%60, snap.Delivered, g.preset)
	dst.DrawTextCentered(0, hud, core.ColorBrightWhite)
}

// renderWagons marks the cells the train recently left, one per wagon.
func (g *Game) renderWagons(dst *core.Screen, grid *railcore.Grid, snap railcore.Snapshot, t railcore.TrainView, ox, oy int) {
	head, ok := grid.WorldToCell(t.Pos)
	if !ok {
		return
	}
	last := head
	drawn := 0
	for _, p := range t.Trail {
		if drawn >= t.Wagons {
			break
		}
		c, ok := grid.WorldToCell(p)
		if !ok || c == last || c == head {
			continue
		}
		last = c
		drawn++
		cell := snap.Cell(c)
		if cell.HasStation {
			continue
		}
		dst.SetCell(ox+c.Col*2, oy+c.Row, core.Cell{Rune: '▪', FG: core.ColorYellow, BG: terrainBG(cell.Terrain)})
	}
}

func (g *Game) renderCursor(dst *core.Screen, ox, oy int) {
	x, y := ox+g.cursor.Col*2, oy+g.cursor.Row
	for i := 0; i < 2; i++ {
		c := dst.GetCell(x+i, y)
		c.BG = core.ColorBrightYellow
		c.FG = core.ColorDefault
		if c.Rune == ' ' && i == 0 {
			c.Rune = '+'
		}
		dst.SetCell(x+i, y, c)
	}
}

func (g *Game) renderFooter(dst *core.Screen, box core.Rect) {
	y := box.Bottom()
	if g.status != "" {
		dst.DrawTextCentered(y, g.status, g.statusFG)
	}
	dst.DrawTextCentered(y+1, "enter connect  t train  e wagon  x erase  c cancel  p pause  r new map", core.ColorGray)
}

func renderGameOver(dst *core.Screen, box core.Rect, delivered int) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Passengers delivered: %d", delivered),
		"press r to restart",
	}
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	panel := core.NewRect((dst.Width()-w-4)/2, box.Y+box.H/2-2, w+4, len(lines)+2)
	for y := panel.Y; y < panel.Bottom(); y++ {
		for x := panel.X; x < panel.Right(); x++ {
			dst.SetCell(x, y, core.Cell{Rune: ' '})
		}
	}
	dst.DrawBox(panel, core.ColorRed)
	for i, l := range lines {
		fg := core.ColorWhite
		if i == 0 {
			fg = core.ColorBrightRed
		}
		dst.DrawTextCentered(panel.Y+1+i, l, fg)
	}
}

// cellGlyphs returns the two screen cells for one map cell. The right half
// continues eastward rail so horizontal track reads as a line.
func cellGlyphs(c railcore.Cell) (core.Cell, core.Cell) {
	bg := terrainBG(c.Terrain)
	left := core.Cell{Rune: ' ', BG: bg}
	right := core.Cell{Rune: ' ', BG: bg}
	if c.Terrain == railcore.TerrainMountain && c.Rail == 0 {
		left.Rune, left.FG = '^', core.ColorWhite
	}
	if c.Rail == 0 {
		return left, right
	}

	fg := railFG(c.Kind)
	r, ok := railGlyphs[c.Rail]
	if !ok {
		r = '┼'
	}
	left.Rune, left.FG = r, fg
	if c.Rail.Has(railcore.DirEast) {
		right.Rune, right.FG = '─', fg
	}
	return left, right
}

func terrainBG(t railcore.Terrain) core.Color {
	switch t {
	case railcore.TerrainWater:
		return core.ColorBlue
	case railcore.TerrainMountain:
		return core.ColorGray
	default:
		return core.ColorGreen
	}
}

func railFG(k railcore.RailKind) core.Color {
	switch k {
	case railcore.RailBridge:
		return core.ColorOrange
	case railcore.RailTunnel:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightWhite
	}
}

// countGlyph renders a small count as one digit.
func countGlyph(n int) rune {
	switch {
	case n <= 0:
		return ' '
	case n > 9:
		return '+'
	default:
		return rune('0' + n)
	}
}
