package battle

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Scheduler states. Between activations the machine passes back through
// awaiting_start; once terminal is reached no further turns are processed.
const (
	StateAwaitingStart = "awaiting_start"
	StateUnitActive    = "unit_active"
	StateTerminal      = "terminal"
)

const (
	eventActivate = "activate"
	eventYield    = "yield"
	eventFinish   = "finish"
)

// Outcome is the terminal battle result.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// MoveResult is the per-move record emitted for the presentation layer.
type MoveResult struct {
	Unit   UnitID
	Block  MoveBlock
	From   Point
	To     Point
	Path   []Point // realized path including the start tile
	APLeft int
}

// Scheduler orchestrates the turn loop: it steps the queue, auto-resolves
// opponent turns through EnemyAI, suspends for player units, and detects the
// terminal state. All mutation of the battlefield funnels through here or
// the resolver it owns.
type Scheduler struct {
	grid     *Grid
	units    []*Unit // creation order
	queue    *TurnQueue
	resolver *Resolver
	log      *BattleLog

	machine *fsm.FSM
	outcome Outcome
}

// NewScheduler wires a scheduler over an assembled battlefield.
func NewScheduler(grid *Grid, units []*Unit, queue *TurnQueue, resolver *Resolver, log *BattleLog) *Scheduler {
	s := &Scheduler{
		grid:     grid,
		units:    units,
		queue:    queue,
		resolver: resolver,
		log:      log,
	}
	s.machine = fsm.NewFSM(
		StateAwaitingStart,
		fsm.Events{
			{Name: eventActivate, Src: []string{StateAwaitingStart}, Dst: StateUnitActive},
			{Name: eventYield, Src: []string{StateUnitActive}, Dst: StateAwaitingStart},
			{Name: eventFinish, Src: []string{StateAwaitingStart, StateUnitActive}, Dst: StateTerminal},
		},
		fsm.Callbacks{},
	)
	return s
}

// State returns the current scheduler state name.
func (s *Scheduler) State() string {
	return s.machine.Current()
}

// Outcome returns the terminal result, OutcomeNone while the battle runs.
func (s *Scheduler) Outcome() Outcome {
	return s.outcome
}

// Round returns the current round counter.
func (s *Scheduler) Round() int {
	return s.queue.Round()
}

// Queue exposes the turn queue, read-only by convention.
func (s *Scheduler) Queue() *TurnQueue {
	return s.queue
}

// ActiveUnit returns the unit whose turn it is, or nil outside unit_active.
func (s *Scheduler) ActiveUnit() *Unit {
	if s.machine.Current() != StateUnitActive {
		return nil
	}
	return s.unitByID(s.queue.Current())
}

func (s *Scheduler) unitByID(id UnitID) *Unit {
	for _, u := range s.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Scheduler) unitsOfTeam(team Team) []*Unit {
	var out []*Unit
	for _, u := range s.units {
		if u.Team == team {
			out = append(out, u)
		}
	}
	return out
}

func (s *Scheduler) livingCount(team Team) int {
	n := 0
	for _, u := range s.units {
		if u.Team == team && u.Placed && !u.IsIncapacitated() {
			n++
		}
	}
	return n
}

// Start begins the battle: evaluates degenerate terminal setups, then runs
// the first activation.
func (s *Scheduler) Start() {
	if s.machine.Current() != StateAwaitingStart || s.queue.Current() != NoUnit {
		return
	}
	if s.checkTerminal() {
		return
	}
	s.Advance()
}

// Advance yields the active unit's turn and activates the next living unit.
// Opponent turns resolve synchronously and advance again; the scheduler only
// hands control back on a player unit or the terminal state.
func (s *Scheduler) Advance() {
	for {
		if s.machine.Current() == StateTerminal {
			return
		}
		if s.machine.Current() == StateUnitActive {
			_ = s.machine.Event(context.Background(), eventYield)
		}
		if s.checkTerminal() {
			return
		}

		// Skip incapacitated units; with both teams alive at this point the
		// scan always lands on someone within one full wrap.
		var u *Unit
		for i := 0; i <= len(s.units); i++ {
			s.queue.advance()
			cand := s.unitByID(s.queue.Current())
			if cand != nil && cand.Placed && !cand.IsIncapacitated() {
				u = cand
				break
			}
		}
		if u == nil {
			return
		}

		u.ResetAP()
		_ = s.machine.Event(context.Background(), eventActivate)
		s.log.Add(s.queue.Round(), u.Label(), u.Team.String(), "turn", "activate",
			fmt.Sprintf("%s begins round %d", u.Name, s.queue.Round()), float64(u.ID))

		if u.Team == TeamPlayer {
			return // suspend for external commands
		}
		s.runOpponentTurn(u)
	}
}

// runOpponentTurn computes and applies one EnemyAI decision. Decision
// failures (no target, no reachable tile) end the turn silently.
func (s *Scheduler) runOpponentTurn(u *Unit) {
	dec := Decide(u, s.unitsOfTeam(u.Team.Opposing()), s.grid)

	if dec.Move != nil && u.AP > 0 {
		from := u.Pos
		if block := s.grid.MoveUnit(from, *dec.Move); block == MoveOK {
			u.AP--
			s.log.Add(s.queue.Round(), u.Label(), u.Team.String(), "move", "step",
				fmt.Sprintf("(%d,%d) -> (%d,%d) cost %.1f", from.X, from.Y, dec.Move.X, dec.Move.Y, PathCost(dec.Path)),
				PathCost(dec.Path))
		}
	}

	if dec.Attack && dec.Target != NoUnit && u.AP > 0 {
		target := s.unitByID(dec.Target)
		if target != nil {
			res := s.resolver.ResolveAttack(u, target)
			if res.Valid {
				u.AP--
			}
			s.logAttack(u, target, res)
		}
	}
}

// AttemptMove is the player-facing movement command: path to dest within the
// active unit's movement budget and spend one action point.
func (s *Scheduler) AttemptMove(dest Point) MoveResult {
	res := MoveResult{Unit: NoUnit, Block: MoveNotActive}
	u := s.ActiveUnit()
	if u == nil || u.Team != TeamPlayer {
		return res
	}
	res.Unit = u.ID
	res.From = u.Pos
	res.APLeft = u.AP
	if u.AP <= 0 {
		res.Block = MoveNoActionPoints
		return res
	}

	path := FindPath(s.grid, u.Pos, dest, u.EffectiveMove())
	if path == nil {
		res.Block = s.classifyMoveDenial(dest)
		return res
	}

	if block := s.grid.MoveUnit(u.Pos, dest); block != MoveOK {
		res.Block = block
		return res
	}
	u.AP--
	res.Block = MoveOK
	res.To = dest
	res.Path = path
	res.APLeft = u.AP
	s.log.Add(s.queue.Round(), u.Label(), u.Team.String(), "move", "step",
		fmt.Sprintf("(%d,%d) -> (%d,%d) cost %.1f", res.From.X, res.From.Y, dest.X, dest.Y, PathCost(path)),
		PathCost(path))

	if u.AP == 0 {
		s.Advance()
	}
	return res
}

// classifyMoveDenial picks the most specific reason a destination was
// unreachable.
func (s *Scheduler) classifyMoveDenial(dest Point) MoveBlock {
	t := s.grid.At(dest.X, dest.Y)
	switch {
	case t == nil:
		return MoveOutOfBounds
	case t.Occupant != nil:
		return MoveOccupied
	case t.Terrain.BlocksMovement():
		return MoveBlockedTerrain
	default:
		return MoveNoPath
	}
}

// AttemptAttack is the player-facing attack command: resolve one attack
// against the target unit and spend one action point.
func (s *Scheduler) AttemptAttack(targetID UnitID) AttackResult {
	u := s.ActiveUnit()
	if u == nil || u.Team != TeamPlayer {
		return AttackResult{Attacker: NoUnit, Target: targetID, Block: AttackNotActive}
	}
	if u.AP <= 0 {
		return AttackResult{Attacker: u.ID, Target: targetID, Block: AttackNoActionPoints}
	}
	target := s.unitByID(targetID)
	if target == nil || !target.Placed {
		return AttackResult{Attacker: u.ID, Target: targetID, Block: AttackInvalidTarget}
	}

	res := s.resolver.ResolveAttack(u, target)
	if res.Valid {
		u.AP--
	}
	s.logAttack(u, target, res)

	if s.checkTerminal() {
		return res
	}
	if res.Valid && u.AP == 0 {
		s.Advance()
	}
	return res
}

// EndTurn yields the active player unit's turn.
func (s *Scheduler) EndTurn() {
	u := s.ActiveUnit()
	if u == nil || u.Team != TeamPlayer {
		return
	}
	s.Advance()
}

func (s *Scheduler) logAttack(attacker, target *Unit, res AttackResult) {
	switch {
	case !res.Valid:
		s.log.Add(s.queue.Round(), attacker.Label(), attacker.Team.String(), "combat", "attack_invalid",
			fmt.Sprintf("vs %s: %s", target.Label(), res.Block), float64(res.Block))
	case !res.Hit:
		s.log.Add(s.queue.Round(), attacker.Label(), attacker.Team.String(), "combat", "attack_miss",
			fmt.Sprintf("vs %s: roll %d vs %d at %.1f tiles (%s)",
				target.Label(), res.Roll, res.HitChance, res.Distance, res.Cover), float64(res.Roll))
	default:
		s.log.Add(s.queue.Round(), attacker.Label(), attacker.Team.String(), "combat", "attack_hit",
			fmt.Sprintf("vs %s: roll %d vs %d, card %s, %d dmg %d sanity",
				target.Label(), res.Roll, res.HitChance, res.Card.Kind, res.FinalDamage, res.SanityDamage),
			float64(res.FinalDamage))
		if res.TargetDown {
			s.log.Add(s.queue.Round(), target.Label(), target.Team.String(), "combat", "incapacitated",
				fmt.Sprintf("%s is down", target.Name), 0)
		}
	}
}

// checkTerminal evaluates the win/lose conditions and, on the first trigger,
// transitions to terminal and emits the outcome event exactly once.
func (s *Scheduler) checkTerminal() bool {
	if s.outcome != OutcomeNone {
		return true
	}
	switch {
	case s.livingCount(TeamOpponent) == 0:
		s.outcome = OutcomeVictory
	case s.livingCount(TeamPlayer) == 0:
		s.outcome = OutcomeDefeat
	default:
		return false
	}
	_ = s.machine.Event(context.Background(), eventFinish)
	s.log.Add(s.queue.Round(), "--", "--", "battle", s.outcome.String(),
		fmt.Sprintf("battle over after %d rounds", s.queue.Round()), float64(s.queue.Round()))
	return true
}
