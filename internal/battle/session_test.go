package battle

import (
	"strings"
	"testing"
)

func TestNewSession_Defaults(t *testing.T) {
	s := mustSession(t,
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 9, 9),
	)
	if s.Grid.Cols != 10 || s.Grid.Rows != 10 {
		t.Fatalf("expected the default 10x10 grid, got %dx%d", s.Grid.Cols, s.Grid.Rows)
	}
	if s.SharedDeck().Size() != 20 {
		t.Fatalf("expected the standard 20-card shared deck, got %d", s.SharedDeck().Size())
	}
	if s.State() != StateAwaitingStart {
		t.Fatalf("expected awaiting_start before Start, got %s", s.State())
	}
}

func TestNewSession_PlayerGetsPersonalDeck(t *testing.T) {
	s := mustSession(t,
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 9, 9),
	)
	if s.UnitByID(0).PersonalDeck() == nil {
		t.Fatal("player units default to a personal deck")
	}
	if s.UnitByID(1).PersonalDeck() != nil {
		t.Fatal("opponent units draw from the shared deck")
	}
}

func TestNewSession_ExplicitDeckOverride(t *testing.T) {
	spec := huskSpec()
	spec.Deck = uniformDeck(3, CardMinus, -1)
	s := mustSession(t,
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(spec, 9, 9),
	)
	d := s.UnitByID(1).PersonalDeck()
	if d == nil || d.Size() != 3 {
		t.Fatal("an explicit deck spec should give the unit a personal deck")
	}
}

func TestNewSession_PlacementConflictFails(t *testing.T) {
	_, err := NewSession(
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 0, 0),
	)
	if err == nil || !strings.Contains(err.Error(), "cannot place") {
		t.Fatalf("expected a placement error, got %v", err)
	}
}

func TestNewSession_PlacementOnFullCoverFails(t *testing.T) {
	_, err := NewSession(
		WithTerrain(0, 0, TerrainFullCover),
		WithPlayerUnit(scoutSpec(), 0, 0),
	)
	if err == nil {
		t.Fatal("expected placement on blocking terrain to fail")
	}
}

func TestNewSession_EmptySharedDeckFails(t *testing.T) {
	_, err := NewSession(
		WithSharedDeckCards([]Card{}),
		WithPlayerUnit(scoutSpec(), 0, 0),
	)
	if err == nil || !strings.Contains(err.Error(), "shared deck") {
		t.Fatalf("expected a shared-deck construction error, got %v", err)
	}
}

func TestNewSession_UnknownTurnOrderFails(t *testing.T) {
	_, err := NewSession(
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithTurnOrder(0, 7),
	)
	if err == nil || !strings.Contains(err.Error(), "unknown unit") {
		t.Fatalf("expected a turn-order validation error, got %v", err)
	}
}

func TestNewSession_InitiativeByWill(t *testing.T) {
	strong := scoutSpec()
	strong.Will = 80
	weak := huskSpec()
	weak.Will = 20
	s := mustSession(t,
		WithSeed(3),
		WithPlayerUnit(weakWillScout(), 0, 0), // will 50
		WithPlayerUnit(strong, 2, 0),          // will 80
		WithOpponentUnit(weak, 9, 9),          // will 20
		WithInitiativeByWill(),
	)
	order := s.Scheduler().Queue().Order()
	if order[0] != 1 || order[1] != 0 || order[2] != 2 {
		t.Fatalf("expected will order [1 0 2], got %v", order)
	}
}

func weakWillScout() UnitSpec {
	spec := scoutSpec()
	spec.Will = 50
	return spec
}

func TestSession_FullBattleTranscript(t *testing.T) {
	// Two investigators against two cultists on a cramped board. Every roll
	// is scripted to 1, so every valid attack hits; zero cards everywhere
	// keep the arithmetic flat.
	scout := scoutSpec()
	scout.Deck = uniformDeck(6, CardZero, 0)
	s := mustSession(t,
		WithGridSize(8, 8),
		WithRand(scriptedRand(0)),
		WithSharedDeckCards(uniformDeck(10, CardZero, 0)),
		WithTerrain(4, 3, TerrainHalfCover),
		WithPlayerUnit(scout, 0, 0),
		WithPlayerUnit(scout, 0, 2),
		WithOpponentUnit(frailHusk(), 7, 0),
		WithOpponentUnit(frailHusk(), 7, 2),
		WithTurnOrder(0, 2, 1, 3),
	)
	s.Start()

	// Drive both player units with the same rule the opponents use, capped
	// so a regression cannot hang the test.
	for i := 0; i < 200 && s.State() != StateTerminal; i++ {
		u := s.ActiveUnit()
		if u == nil || u.Team != TeamPlayer {
			s.Advance()
			continue
		}
		dec := Decide(u, s.sched.unitsOfTeam(TeamOpponent), s.Grid)
		if dec.Move != nil {
			s.AttemptMove(*dec.Move)
		}
		if s.ActiveUnit() == u && dec.Attack {
			s.AttemptAttack(dec.Target)
		}
		if s.ActiveUnit() == u {
			s.EndTurn()
		}
	}

	if s.State() != StateTerminal {
		t.Fatal("battle did not finish within the action cap")
	}
	// Scouts one-shot the frail husks at range; the player side wins.
	if s.Outcome() != OutcomeVictory {
		t.Fatalf("expected victory, got %s", s.Outcome())
	}
	if s.Log.CountCategory("combat", "incapacitated") != 2 {
		t.Fatal("expected both husks reported down")
	}
	if s.Log.CountCategory("battle", "victory") != 1 {
		t.Fatal("expected exactly one victory entry")
	}

	report := s.Report()
	if !strings.Contains(report, "outcome: victory") {
		t.Fatalf("report missing the outcome line:\n%s", report)
	}

	t.Log(s.Log.Format())
	t.Log(report)
}

func TestSession_ReportListsEveryUnit(t *testing.T) {
	s := mustSession(t,
		WithPlayerUnit(scoutSpec(), 0, 0),
		WithOpponentUnit(huskSpec(), 9, 9),
	)
	report := s.Report()
	for _, want := range []string{"P0", "O1", "Scout", "Husk", "hp 10/10", "sanity 8/8"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
