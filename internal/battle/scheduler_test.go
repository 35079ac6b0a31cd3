package battle

import "testing"

func TestScheduler_StartSuspendsOnPlayerTurn(t *testing.T) {
	s := twoUnitSession(t,
		WithRand(scriptedRand(99)), // any attack would miss
		WithTurnOrder(0, 1),
	)
	s.Start()

	if s.State() != StateUnitActive {
		t.Fatalf("expected unit_active after start, got %s", s.State())
	}
	active := s.ActiveUnit()
	if active == nil || active.Team != TeamPlayer {
		t.Fatalf("expected the player unit active, got %+v", active)
	}
	if active.AP != active.MaxAP {
		t.Fatalf("activation should reset AP to %d, got %d", active.MaxAP, active.AP)
	}
	if s.Log.CountCategory("turn", "activate") != 1 {
		t.Fatal("expected exactly one activation logged")
	}
}

func TestScheduler_OpponentTurnRunsAutomatically(t *testing.T) {
	s := twoUnitSession(t,
		WithRand(scriptedRand(99)),
		WithTurnOrder(1, 0), // opponent first
	)
	s.Start()

	// The opponent turn resolved synchronously; control is back on the player.
	active := s.ActiveUnit()
	if active == nil || active.Team != TeamPlayer {
		t.Fatalf("expected suspension on the player unit, got %+v", active)
	}
	if s.Log.CountCategory("turn", "activate") != 2 {
		t.Fatal("expected the opponent and player activations logged")
	}
	if s.Log.CountCategory("move", "step") != 1 {
		t.Fatal("expected the opponent to close toward the player")
	}
	opp := s.UnitByID(1)
	if opp.Pos == (Point{X: 5, Y: 5}) {
		t.Fatal("opponent never moved")
	}
}

func TestScheduler_MoveSpendsAPAndAutoAdvances(t *testing.T) {
	s := mustSession(t,
		WithGridSize(12, 12),
		WithRand(scriptedRand(99)),
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 11, 11),
		WithTurnOrder(0, 1),
	)
	s.Start()

	res := s.AttemptMove(Point{X: 1, Y: 0})
	if res.Block != MoveOK || res.APLeft != 1 {
		t.Fatalf("first move: expected OK with 1 AP left, got %+v", res)
	}
	if s.ActiveUnit().ID != 0 {
		t.Fatal("one spent AP should not end the turn")
	}

	res = s.AttemptMove(Point{X: 2, Y: 0})
	if res.Block != MoveOK || res.APLeft != 0 {
		t.Fatalf("second move: expected OK with 0 AP left, got %+v", res)
	}
	// AP exhausted: the opponent turn ran and the player is active again.
	active := s.ActiveUnit()
	if active == nil || active.ID != 0 {
		t.Fatalf("expected the player active again after auto-advance, got %+v", active)
	}
	if s.Round() != 2 {
		t.Fatalf("expected round 2 after the queue wrapped, got %d", s.Round())
	}
	if active.AP != active.MaxAP {
		t.Fatalf("reactivation should reset AP, got %d", active.AP)
	}
}

func TestScheduler_MoveDenials(t *testing.T) {
	s := mustSession(t,
		WithGridSize(8, 8),
		WithRand(scriptedRand(99)),
		WithTerrain(1, 1, TerrainFullCover),
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 7, 7),
		WithTurnOrder(0, 1),
	)
	s.Start()

	if res := s.AttemptMove(Point{X: -1, Y: 0}); res.Block != MoveOutOfBounds {
		t.Fatalf("expected MoveOutOfBounds, got %s", res.Block)
	}
	if res := s.AttemptMove(Point{X: 7, Y: 7}); res.Block != MoveOccupied {
		t.Fatalf("expected MoveOccupied, got %s", res.Block)
	}
	if res := s.AttemptMove(Point{X: 1, Y: 1}); res.Block != MoveBlockedTerrain {
		t.Fatalf("expected MoveBlockedTerrain, got %s", res.Block)
	}
	// (7,0) is 7 tiles away, beyond the scout's budget of 4.
	if res := s.AttemptMove(Point{X: 7, Y: 0}); res.Block != MoveNoPath {
		t.Fatalf("expected MoveNoPath, got %s", res.Block)
	}
	// Denials spend nothing.
	if s.ActiveUnit().AP != 2 {
		t.Fatalf("denied moves must not spend AP, got %d", s.ActiveUnit().AP)
	}
}

func TestScheduler_MoveBeforeStartDenied(t *testing.T) {
	s := twoUnitSession(t,
		WithRand(scriptedRand(99)),
		WithTurnOrder(0, 1),
	)
	if res := s.AttemptMove(Point{X: 1, Y: 0}); res.Block != MoveNotActive {
		t.Fatalf("expected MoveNotActive before start, got %s", res.Block)
	}
	if res := s.AttemptAttack(1); res.Block != AttackNotActive {
		t.Fatalf("expected AttackNotActive before start, got %s", res.Block)
	}
}

func TestScheduler_AttackDenials(t *testing.T) {
	s := mustSession(t,
		WithGridSize(12, 12),
		WithRand(scriptedRand(99)),
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 11, 11),
		WithTurnOrder(0, 1),
	)
	s.Start()

	if res := s.AttemptAttack(42); res.Block != AttackInvalidTarget {
		t.Fatalf("expected AttackInvalidTarget, got %s", res.Block)
	}
	res := s.AttemptAttack(1)
	if res.Valid || res.Block != AttackOutOfRange {
		t.Fatalf("expected AttackOutOfRange, got %+v", res)
	}
	// Invalid attacks spend nothing and the turn continues.
	if s.ActiveUnit() == nil || s.ActiveUnit().AP != 2 {
		t.Fatal("denied attacks must not spend AP or end the turn")
	}
}

func TestScheduler_VictoryEmittedExactlyOnce(t *testing.T) {
	s := mustSession(t,
		WithGridSize(6, 6),
		WithRand(scriptedRand(0)), // every roll is 1
		WithPlayerUnit(fatalScout(), 0, 0),
		WithOpponentUnit(frailHusk(), 1, 0),
		WithTurnOrder(0, 1),
	)
	s.Start()

	res := s.AttemptAttack(1)
	if !res.Hit || !res.TargetDown {
		t.Fatalf("expected a lethal hit, got %+v", res)
	}
	if s.State() != StateTerminal || s.Outcome() != OutcomeVictory {
		t.Fatalf("expected terminal victory, got state %s outcome %s", s.State(), s.Outcome())
	}
	if n := s.Log.CountCategory("battle", "victory"); n != 1 {
		t.Fatalf("victory must be logged exactly once, got %d", n)
	}

	// Terminal state rejects every further command.
	if res := s.AttemptAttack(1); res.Block != AttackNotActive {
		t.Fatalf("expected AttackNotActive after terminal, got %s", res.Block)
	}
	if res := s.AttemptMove(Point{X: 1, Y: 1}); res.Block != MoveNotActive {
		t.Fatalf("expected MoveNotActive after terminal, got %s", res.Block)
	}
	s.EndTurn()
	s.Advance()
	if n := s.Log.CountCategory("battle", "victory"); n != 1 {
		t.Fatalf("post-terminal commands re-emitted the outcome: %d entries", n)
	}

	dumpLog(t, s)
}

func TestScheduler_DefeatWhenLastPlayerFalls(t *testing.T) {
	frail := scoutSpec()
	frail.MaxHP = 1
	s := mustSession(t,
		WithGridSize(6, 6),
		WithRand(scriptedRand(0)),
		WithSharedDeckCards(uniformDeck(5, CardZero, 0)),
		WithPlayerUnit(frail, 0, 0),
		WithOpponentUnit(huskSpec(), 1, 0),
		WithTurnOrder(1, 0), // opponent acts first and kills instantly
	)
	s.Start()

	if s.State() != StateTerminal || s.Outcome() != OutcomeDefeat {
		t.Fatalf("expected terminal defeat, got state %s outcome %s", s.State(), s.Outcome())
	}
	if n := s.Log.CountCategory("battle", "defeat"); n != 1 {
		t.Fatalf("defeat must be logged exactly once, got %d", n)
	}
	if s.Log.CountCategory("combat", "incapacitated") != 1 {
		t.Fatal("expected the player takedown logged")
	}

	dumpLog(t, s)
}

func TestScheduler_SanityCollapseIsIncapacitation(t *testing.T) {
	shaken := scoutSpec()
	shaken.MaxSanity = 1
	s := mustSession(t,
		WithGridSize(6, 6),
		WithRand(scriptedRand(0)),
		// Null cards: the claws do zero physical damage here, the kill is
		// pure sanity drain.
		WithSharedDeckCards(uniformDeck(5, CardNull, 0)),
		WithPlayerUnit(shaken, 0, 0),
		WithOpponentUnit(huskSpec(), 1, 0),
		WithTurnOrder(1, 0),
	)
	s.Start()

	player := s.UnitByID(0)
	if player.HP != player.MaxHP {
		t.Fatalf("null card should leave hp untouched, got %d", player.HP)
	}
	if player.Sanity != 0 || !player.IsIncapacitated() {
		t.Fatalf("expected a sanity collapse, got sanity %d", player.Sanity)
	}
	if s.Outcome() != OutcomeDefeat {
		t.Fatalf("sanity collapse of the last player must end the battle, got %s", s.Outcome())
	}
}

func TestScheduler_SkipsIncapacitatedUnits(t *testing.T) {
	s := mustSession(t,
		WithGridSize(12, 12),
		WithRand(scriptedRand(99)),
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithPlayerUnit(scoutSpec(), 2, 0),
		WithOpponentUnit(huskSpec(), 11, 11),
		WithTurnOrder(0, 1, 2),
	)
	// Down the second player before the battle starts.
	s.UnitByID(1).ApplyDamage(99)
	s.Start()

	if s.ActiveUnit().ID != 0 {
		t.Fatalf("expected unit 0 first, got %v", s.ActiveUnit().ID)
	}
	s.EndTurn()
	// Unit 1 is down: the schedule lands on the opponent, runs it, wraps.
	if s.ActiveUnit().ID != 0 {
		t.Fatalf("downed unit must be skipped, active is %v", s.ActiveUnit().ID)
	}
	for _, e := range s.Log.Filter("turn", "activate") {
		if e.Actor == "P1" {
			t.Fatal("downed unit P1 must never activate")
		}
	}
}

func TestScheduler_EndTurnOnlyForPlayers(t *testing.T) {
	s := twoUnitSession(t,
		WithRand(scriptedRand(99)),
		WithTurnOrder(0, 1),
	)
	s.Start()
	before := s.Log.CountCategory("turn", "activate")
	s.EndTurn()
	after := s.Log.CountCategory("turn", "activate")
	if after <= before {
		t.Fatal("EndTurn during a player turn should advance the schedule")
	}
}

// twoUnitSession is the minimal battlefield: a scout in one corner and a
// husk in the other on a 6x6 grid, plus any extra options.
func twoUnitSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	base := []SessionOption{
		WithGridSize(6, 6),
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 5, 5),
	}
	return mustSession(t, append(base, opts...)...)
}

// fatalScout hits hard enough to one-shot a frail husk with any card except
// the null.
func fatalScout() UnitSpec {
	spec := scoutSpec()
	spec.Deck = uniformDeck(4, CardZero, 0)
	return spec
}

func frailHusk() UnitSpec {
	spec := huskSpec()
	spec.MaxHP = 1
	return spec
}
