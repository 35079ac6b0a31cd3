package game

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Dombrovo/dread-tactics/internal/battle"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// tileSize is the pixel edge of one grid cell.
const tileSize = 48

// logPanelWidth is the fixed width of the battle log panel on the right.
const logPanelWidth = 320

// hudHeight is the strip below the battlefield for unit stats and key hints.
const hudHeight = 96

// SessionBuilder rebuilds the battle from scratch for a given seed. The
// restart key bumps the seed so each run plays out differently.
type SessionBuilder func(seed int64) (*battle.Session, error)

type Game struct {
	session *battle.Session
	build   SessionBuilder
	seed    int64

	width  int
	height int
	offX   int // pixel offset from window left to battlefield left
	offY   int // pixel offset from window top to battlefield top

	// Hover state, recomputed every frame from the cursor.
	hoverTile  battle.Point
	hoverValid bool

	// Reachable tiles for the active player unit, recomputed when the
	// active unit or its action points change.
	reachable     map[battle.Point]float64
	reachableFor  battle.UnitID
	reachableAP   int
	reachableTurn int

	showHUD       bool
	statusLine    string // transient feedback from the last action
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
}

func New(build SessionBuilder, seed int64) (*Game, error) {
	s, err := build(seed)
	if err != nil {
		return nil, err
	}
	g := &Game{
		session:      s,
		build:        build,
		seed:         seed,
		offX:         borderWidth,
		offY:         borderWidth,
		showHUD:      true,
		reachableFor: battle.NoUnit,
		prevKeys:     make(map[ebiten.Key]bool),
	}
	g.width = borderWidth + s.Grid.Cols*tileSize + borderWidth + logPanelWidth
	g.height = borderWidth + s.Grid.Rows*tileSize + borderWidth + hudHeight
	s.Start()
	return g, nil
}

func (g *Game) Update() error {
	g.updateHover()
	g.handleKeys()
	g.handleMouse()
	g.refreshReachable()
	return nil
}

// updateHover converts the cursor position into a grid tile, if any.
func (g *Game) updateHover() {
	mx, my := ebiten.CursorPosition()
	tx := (mx - g.offX) / tileSize
	ty := (my - g.offY) / tileSize
	g.hoverValid = mx >= g.offX && my >= g.offY && g.session.Grid.InBounds(tx, ty)
	if g.hoverValid {
		g.hoverTile = battle.Point{X: tx, Y: ty}
	}
}

func (g *Game) handleKeys() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// Enter or Space: end the active unit's turn.
	if pressed(ebiten.KeyEnter) || pressed(ebiten.KeySpace) {
		if g.playerActive() {
			g.session.EndTurn()
			g.statusLine = "turn ended"
		}
	}

	// C: copy the battle report to the clipboard.
	if pressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.session.Report()); err != nil {
			g.statusLine = "clipboard unavailable"
		} else {
			g.statusLine = "report copied"
		}
	}

	// R: restart with the next seed.
	if pressed(ebiten.KeyR) {
		if s, err := g.build(g.seed + 1); err == nil {
			g.seed++
			g.session = s
			g.reachableFor = battle.NoUnit
			g.statusLine = fmt.Sprintf("restarted (seed %d)", g.seed)
			s.Start()
		}
	}

	// H: toggle the HUD strip.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	g.prevKeys = currentKeys
}

// handleMouse resolves an edge-triggered left click into a move or attack
// order for the active player unit.
func (g *Game) handleMouse() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := left && !g.prevMouseLeft
	g.prevMouseLeft = left
	if !clicked || !g.hoverValid || !g.playerActive() {
		return
	}

	active := g.session.ActiveUnit()
	if target := g.session.Grid.UnitAt(g.hoverTile); target != nil {
		if target.Team == active.Team {
			return
		}
		res := g.session.AttemptAttack(target.ID)
		g.statusLine = describeAttack(res, target)
		return
	}

	res := g.session.AttemptMove(g.hoverTile)
	if res.Block == battle.MoveOK {
		g.statusLine = fmt.Sprintf("%s moved to (%d,%d)", unitName(g.session, res.Unit), res.To.X, res.To.Y)
	} else {
		g.statusLine = "move blocked: " + res.Block.String()
	}
}

// refreshReachable recomputes the movement overlay when the active unit,
// its AP, or the round changed since the cached version.
func (g *Game) refreshReachable() {
	active := g.session.ActiveUnit()
	if active == nil || active.Team != battle.TeamPlayer {
		g.reachable = nil
		g.reachableFor = battle.NoUnit
		return
	}
	if active.ID == g.reachableFor && active.AP == g.reachableAP && g.session.Round() == g.reachableTurn {
		return
	}
	if active.AP > 0 {
		g.reachable = battle.ReachableTiles(g.session.Grid, active.Pos, active.EffectiveMove())
	} else {
		g.reachable = nil
	}
	g.reachableFor = active.ID
	g.reachableAP = active.AP
	g.reachableTurn = g.session.Round()
}

func (g *Game) playerActive() bool {
	active := g.session.ActiveUnit()
	return active != nil && active.Team == battle.TeamPlayer &&
		g.session.State() == battle.StateUnitActive
}

func describeAttack(res battle.AttackResult, target *battle.Unit) string {
	switch {
	case !res.Valid:
		return "attack blocked: " + res.Block.String()
	case !res.Hit:
		return fmt.Sprintf("missed %s (rolled %d vs %d)", target.Label(), res.Roll, res.HitChance)
	case res.TargetDown:
		return fmt.Sprintf("%s goes down (%d damage)", target.Label(), res.FinalDamage)
	default:
		return fmt.Sprintf("hit %s for %d [%s]", target.Label(), res.FinalDamage, res.Card.Kind)
	}
}

func unitName(s *battle.Session, id battle.UnitID) string {
	if u := s.UnitByID(id); u != nil {
		return u.Label()
	}
	return "?"
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func (g *Game) Width() int  { return g.width }
func (g *Game) Height() int { return g.height }
