package battle

import "testing"

func TestTurnQueue_CurrentBeforeFirstAdvance(t *testing.T) {
	q := NewOrderedTurnQueue([]UnitID{2, 0, 1})
	if q.Current() != NoUnit {
		t.Fatalf("expected NoUnit before the first advance, got %v", q.Current())
	}
	if q.Round() != 1 {
		t.Fatalf("rounds start at 1, got %d", q.Round())
	}
}

func TestTurnQueue_OrderAndWrap(t *testing.T) {
	q := NewOrderedTurnQueue([]UnitID{2, 0, 1})
	var seen []UnitID
	for i := 0; i < 3; i++ {
		if wrapped := q.advance(); wrapped {
			t.Fatal("no wrap expected inside the first round")
		}
		seen = append(seen, q.Current())
	}
	if seen[0] != 2 || seen[1] != 0 || seen[2] != 1 {
		t.Fatalf("expected order [2 0 1], got %v", seen)
	}
	if !q.advance() {
		t.Fatal("expected wrap after the last unit")
	}
	if q.Round() != 2 || q.Current() != 2 {
		t.Fatalf("expected round 2 back at unit 2, got round %d unit %v", q.Round(), q.Current())
	}
}

func TestTurnQueue_SortByWill(t *testing.T) {
	units := []*Unit{
		{ID: 0, Will: 30},
		{ID: 1, Will: 50},
		{ID: 2, Will: 50},
	}
	q := NewOrderedTurnQueue([]UnitID{0, 1, 2})
	byID := func(id UnitID) *Unit { return units[id] }
	q.SortBy(func(a, b UnitID) bool {
		return byID(a).EffectiveWill() > byID(b).EffectiveWill()
	})
	order := q.Order()
	// Stable sort: the will-50 pair keeps creation order.
	if order[0] != 1 || order[1] != 2 || order[2] != 0 {
		t.Fatalf("expected [1 2 0], got %v", order)
	}
}
