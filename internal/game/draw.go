package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Dombrovo/dread-tactics/internal/battle"
)

var (
	colBackground = color.RGBA{R: 16, G: 14, B: 18, A: 255}
	colFloor      = color.RGBA{R: 38, G: 34, B: 40, A: 255}
	colHalfCover  = color.RGBA{R: 92, G: 74, B: 48, A: 255}
	colFullCover  = color.RGBA{R: 58, G: 58, B: 66, A: 255}
	colGridLine   = color.RGBA{R: 52, G: 48, B: 56, A: 255}
	colBorder     = color.RGBA{R: 120, G: 110, B: 90, A: 255}
	colReachable  = color.RGBA{R: 60, G: 140, B: 150, A: 70}
	colHover      = color.RGBA{R: 220, G: 210, B: 160, A: 200}
	colPlayer     = color.RGBA{R: 70, G: 170, B: 180, A: 255}
	colOpponent   = color.RGBA{R: 190, G: 60, B: 60, A: 255}
	colDowned     = color.RGBA{R: 70, G: 66, B: 72, A: 255}
	colActiveRing = color.RGBA{R: 245, G: 230, B: 150, A: 255}
	colHPBar      = color.RGBA{R: 80, G: 200, B: 90, A: 255}
	colSanityBar  = color.RGBA{R: 140, G: 100, B: 220, A: 255}
	colBarBack    = color.RGBA{R: 20, G: 20, B: 22, A: 220}
	colLOSClear   = color.RGBA{R: 120, G: 220, B: 130, A: 200}
	colLOSBlocked = color.RGBA{R: 220, G: 90, B: 80, A: 200}
	colPanel      = color.RGBA{R: 12, G: 10, B: 14, A: 248}
	colPanelHead  = color.RGBA{R: 28, G: 24, B: 32, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	gw := float32(g.session.Grid.Cols * tileSize)
	gh := float32(g.session.Grid.Rows * tileSize)
	ox := float32(g.offX)
	oy := float32(g.offY)

	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, colBorder, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 60, G: 55, B: 45, A: 100}, false)

	g.drawTiles(screen)
	g.drawReachable(screen)
	g.drawHoverAndPreview(screen)
	g.drawUnits(screen)
	g.drawLogPanel(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) tileOrigin(p battle.Point) (float32, float32) {
	return float32(g.offX + p.X*tileSize), float32(g.offY + p.Y*tileSize)
}

func (g *Game) tileCenter(p battle.Point) (float32, float32) {
	x, y := g.tileOrigin(p)
	return x + tileSize/2, y + tileSize/2
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	grid := g.session.Grid
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			p := battle.Point{X: x, Y: y}
			px, py := g.tileOrigin(p)
			vector.FillRect(screen, px, py, tileSize, tileSize, colFloor, false)
			switch grid.TerrainAt(p) {
			case battle.TerrainHalfCover:
				// Low sandbag block: fills the bottom half of the cell.
				vector.FillRect(screen, px+4, py+tileSize/2, tileSize-8, tileSize/2-4, colHalfCover, false)
			case battle.TerrainFullCover:
				vector.FillRect(screen, px+2, py+2, tileSize-4, tileSize-4, colFullCover, false)
				vector.StrokeRect(screen, px+2, py+2, tileSize-4, tileSize-4, 1.0, color.RGBA{R: 90, G: 90, B: 100, A: 255}, false)
			}
		}
	}
	// Grid lines drawn over terrain so cells stay readable.
	for x := 0; x <= grid.Cols; x++ {
		lx := float32(g.offX + x*tileSize)
		vector.StrokeLine(screen, lx, float32(g.offY), lx, float32(g.offY+grid.Rows*tileSize), 1.0, colGridLine, false)
	}
	for y := 0; y <= grid.Rows; y++ {
		ly := float32(g.offY + y*tileSize)
		vector.StrokeLine(screen, float32(g.offX), ly, float32(g.offX+grid.Cols*tileSize), ly, 1.0, colGridLine, false)
	}
}

func (g *Game) drawReachable(screen *ebiten.Image) {
	if !g.playerActive() {
		return
	}
	for p := range g.reachable {
		px, py := g.tileOrigin(p)
		vector.FillRect(screen, px+1, py+1, tileSize-2, tileSize-2, colReachable, false)
	}
}

// drawHoverAndPreview highlights the hovered tile and, when the cursor rests
// on an enemy during a player turn, draws the sightline and attack preview.
func (g *Game) drawHoverAndPreview(screen *ebiten.Image) {
	if !g.hoverValid {
		return
	}
	px, py := g.tileOrigin(g.hoverTile)
	vector.StrokeRect(screen, px+1, py+1, tileSize-2, tileSize-2, 2.0, colHover, false)

	if !g.playerActive() {
		return
	}
	active := g.session.ActiveUnit()
	target := g.session.Grid.UnitAt(g.hoverTile)
	if target == nil || target.Team == active.Team {
		return
	}

	preview := g.session.Resolver().PreviewAttack(active, target)
	lineCol := colLOSClear
	if !preview.Valid {
		lineCol = colLOSBlocked
	}
	ax, ay := g.tileCenter(active.Pos)
	tx, ty := g.tileCenter(target.Pos)
	vector.StrokeLine(screen, ax, ay, tx, ty, 1.5, lineCol, false)

	var lines []string
	if preview.Valid {
		lines = []string{
			fmt.Sprintf("hit %d%%", preview.HitChance),
			fmt.Sprintf("dmg %d-%d", preview.MinDamage, preview.MaxDamage),
		}
		if preview.SanityDamage > 0 {
			lines = append(lines, fmt.Sprintf("sanity -%d", preview.SanityDamage))
		}
		if preview.Cover != battle.TerrainEmpty {
			lines = append(lines, "in "+preview.Cover.String())
		}
	} else {
		lines = []string{preview.Block.String()}
	}
	boxW := float32(90)
	boxH := float32(len(lines)*14 + 6)
	bx := px + tileSize + 4
	by := py
	if int(bx+boxW) > g.offX+g.session.Grid.Cols*tileSize {
		bx = px - boxW - 4
	}
	vector.FillRect(screen, bx, by, boxW, boxH, colBarBack, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(bx)+4, int(by)+2+i*14)
	}
}

func (g *Game) drawUnits(screen *ebiten.Image) {
	active := g.session.ActiveUnit()
	for _, u := range g.session.Units {
		if !u.Placed {
			continue
		}
		cx, cy := g.tileCenter(u.Pos)
		fill := colPlayer
		if u.Team == battle.TeamOpponent {
			fill = colOpponent
		}
		if u.IsIncapacitated() {
			fill = colDowned
		}
		vector.FillCircle(screen, cx, cy, tileSize/2-8, fill, false)
		if active != nil && active.ID == u.ID && !u.IsIncapacitated() {
			vector.StrokeCircle(screen, cx, cy, tileSize/2-5, 2.0, colActiveRing, false)
		}
		if u.IsIncapacitated() {
			r := float32(tileSize/2 - 12)
			cross := color.RGBA{R: 30, G: 28, B: 30, A: 255}
			vector.StrokeLine(screen, cx-r, cy-r, cx+r, cy+r, 2.0, cross, false)
			vector.StrokeLine(screen, cx-r, cy+r, cx+r, cy-r, 2.0, cross, false)
		} else {
			g.drawUnitBars(screen, u)
		}
		ebitenutil.DebugPrintAt(screen, u.Label(), int(cx)-6, int(cy)-6)
	}
}

func (g *Game) drawUnitBars(screen *ebiten.Image, u *battle.Unit) {
	px, py := g.tileOrigin(u.Pos)
	barW := float32(tileSize - 8)
	vector.FillRect(screen, px+4, py+2, barW, 3, colBarBack, false)
	vector.FillRect(screen, px+4, py+2, barW*float32(u.HP)/float32(u.MaxHP), 3, colHPBar, false)
	vector.FillRect(screen, px+4, py+6, barW, 3, colBarBack, false)
	vector.FillRect(screen, px+4, py+6, barW*float32(u.Sanity)/float32(u.MaxSanity), 3, colSanityBar, false)
}

func (g *Game) drawLogPanel(screen *ebiten.Image) {
	panelX := float32(g.width - logPanelWidth)
	vector.FillRect(screen, panelX, 0, logPanelWidth, float32(g.height), colPanel, false)
	vector.FillRect(screen, panelX, 0, logPanelWidth, 16, colPanelHead, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE LOG", int(panelX)+8, 1)

	maxLines := (g.height - 24) / 14
	for i, e := range g.session.Log.Tail(maxLines) {
		line := e.String()
		if len(line) > 44 {
			line = line[:44]
		}
		ebitenutil.DebugPrintAt(screen, line, int(panelX)+6, 20+i*14)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hy := g.offY + g.session.Grid.Rows*tileSize + borderWidth
	face := basicfont.Face7x13

	switch g.session.State() {
	case battle.StateTerminal:
		text.Draw(screen, "BATTLE OVER: "+g.session.Outcome().String(), face, g.offX, hy+14, colActiveRing)
	default:
		if active := g.session.ActiveUnit(); active != nil {
			header := fmt.Sprintf("Round %d  %s %s", g.session.Round(), active.Label(), active.Name)
			text.Draw(screen, header, face, g.offX, hy+14, color.White)
			stats := fmt.Sprintf("HP %d/%d  Sanity %d/%d  AP %d/%d  %s (rng %.1f, dmg %d)",
				active.HP, active.MaxHP, active.Sanity, active.MaxSanity,
				active.AP, active.MaxAP, active.Weapon.Name, active.Weapon.Range, active.Weapon.Damage)
			text.Draw(screen, stats, face, g.offX, hy+30, color.RGBA{R: 190, G: 190, B: 200, A: 255})
		}
	}
	if g.statusLine != "" {
		text.Draw(screen, g.statusLine, face, g.offX, hy+46, color.RGBA{R: 220, G: 200, B: 140, A: 255})
	}
	legend := "[click] move/attack  [enter] end turn  [C] copy report  [R] restart  [H] hud"
	text.Draw(screen, legend, face, g.offX, hy+64, color.RGBA{R: 120, G: 120, B: 130, A: 255})
}
