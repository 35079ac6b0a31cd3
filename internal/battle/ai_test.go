package battle

import "testing"

func aiUnit(id UnitID, rule TargetRule, move, weaponRange float64) *Unit {
	return &Unit{
		ID: id, Team: TeamOpponent, Targeting: rule,
		HP: 8, MaxHP: 8, Sanity: 8, MaxSanity: 8,
		Accuracy: 60, MoveBudget: move,
		Weapon: Weapon{Damage: 4, Range: weaponRange},
	}
}

func aiEnemy(id UnitID, x, y, hp int, g *Grid) *Unit {
	u := &Unit{ID: id, Team: TeamPlayer, HP: hp, MaxHP: hp, Sanity: 10, MaxSanity: 10}
	g.PlaceUnit(u, x, y)
	return u
}

func TestDecide_NoEnemies(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 0, 0)

	dec := Decide(u, nil, g)
	if dec.Target != NoUnit || dec.Move != nil || dec.Attack {
		t.Fatalf("no enemies should be a no-op decision, got %+v", dec)
	}
}

func TestDecide_IgnoresIncapacitated(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	downed := aiEnemy(1, 1, 0, 10, g)
	downed.ApplyDamage(10)
	healthy := aiEnemy(2, 5, 0, 10, g)

	dec := Decide(u, []*Unit{downed, healthy}, g)
	if dec.Target != healthy.ID {
		t.Fatalf("expected the living enemy to be targeted, got %v", dec.Target)
	}
}

func TestDecide_TargetNearest(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	near := aiEnemy(1, 3, 0, 5, g)
	far := aiEnemy(2, 8, 0, 20, g)

	dec := Decide(u, []*Unit{near, far}, g)
	if dec.Target != near.ID {
		t.Fatalf("expected nearest target %v, got %v (far=%v)", near.ID, dec.Target, far.ID)
	}
}

func TestDecide_TargetMaxHealth(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetMaxHealth, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	near := aiEnemy(1, 2, 0, 5, g)
	tough := aiEnemy(2, 8, 0, 20, g)

	dec := Decide(u, []*Unit{near, tough}, g)
	if dec.Target != tough.ID {
		t.Fatalf("expected the max-health target %v, got %v", tough.ID, dec.Target)
	}
}

func TestDecide_TieKeepsCreationOrder(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetMaxHealth, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	first := aiEnemy(1, 4, 0, 10, g)
	second := aiEnemy(2, 4, 4, 10, g)

	dec := Decide(u, []*Unit{first, second}, g)
	if dec.Target != first.ID {
		t.Fatalf("equal health should keep the earlier unit, got %v", dec.Target)
	}
}

func TestDecide_MovesTowardApproachTile(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	enemy := aiEnemy(1, 8, 0, 10, g)

	dec := Decide(u, []*Unit{enemy}, g)
	if dec.Move == nil {
		t.Fatal("expected a move toward the target")
	}
	// Budget 3 along a straight line: three tiles of progress.
	if *dec.Move != (Point{X: 3, Y: 0}) {
		t.Fatalf("expected movement to (3,0), got %v", *dec.Move)
	}
	if dec.Attack {
		t.Fatal("target is still far out of melee range, no attack expected")
	}
	if len(dec.Path) != 4 || dec.Path[0] != (Point{X: 0, Y: 0}) {
		t.Fatalf("expected a 4-tile realized path from the start, got %v", dec.Path)
	}
}

func TestDecide_AttackWhenCloseEnough(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	enemy := aiEnemy(1, 4, 0, 10, g)

	dec := Decide(u, []*Unit{enemy}, g)
	// Moves to (3,0), adjacent to the target, then attacks.
	if dec.Move == nil || *dec.Move != (Point{X: 3, Y: 0}) {
		t.Fatalf("expected movement to (3,0), got %+v", dec)
	}
	if !dec.Attack {
		t.Fatal("expected an attack from the final tile")
	}
}

func TestDecide_AdjacentStaysPut(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 3, 3)
	enemy := aiEnemy(1, 4, 4, 10, g)

	dec := Decide(u, []*Unit{enemy}, g)
	if dec.Move != nil {
		t.Fatalf("already adjacent unit should not move, got %v", *dec.Move)
	}
	if !dec.Attack {
		t.Fatal("adjacent melee unit should attack")
	}
}

func TestDecide_RangedAttacksFromCurrentTile(t *testing.T) {
	g := NewGrid(10, 10)
	u := aiUnit(0, TargetNearest, 4, 6)
	g.PlaceUnit(u, 0, 0)
	enemy := aiEnemy(1, 8, 0, 10, g)

	dec := Decide(u, []*Unit{enemy}, g)
	// After moving 4 tiles the enemy sits 4 away, inside range 6.
	if dec.Move == nil || *dec.Move != (Point{X: 4, Y: 0}) {
		t.Fatalf("expected movement to (4,0), got %+v", dec)
	}
	if !dec.Attack {
		t.Fatal("expected a ranged attack after closing")
	}
}

func TestDecide_BlockedApproachStaysPut(t *testing.T) {
	g := NewGrid(5, 5)
	u := aiUnit(0, TargetNearest, 3, 1.5)
	g.PlaceUnit(u, 0, 0)
	enemy := aiEnemy(1, 4, 0, 10, g)
	// Wall the enemy off completely.
	for y := 0; y < 5; y++ {
		g.SetTerrain(2, y, TerrainFullCover)
	}

	dec := Decide(u, []*Unit{enemy}, g)
	if dec.Target != enemy.ID {
		t.Fatal("target selection is independent of reachability")
	}
	if dec.Move != nil || dec.Attack {
		t.Fatalf("unreachable target should produce a stay-put decision, got %+v", dec)
	}
}
