package battle

import (
	"math/rand"
	"sort"
)

// TurnQueue is the fixed ordering of all battle participants stepped through
// each round. The initial order is a pseudo-random permutation of creation
// order; SortBy swaps in an initiative comparator.
type TurnQueue struct {
	order []UnitID
	idx   int
	round int
}

// NewTurnQueue permutes the given units with the injected RNG and starts at
// round 1 before the first unit.
func NewTurnQueue(units []*Unit, rng *rand.Rand) *TurnQueue {
	order := make([]UnitID, len(units))
	for i, p := range rng.Perm(len(units)) {
		order[i] = units[p].ID
	}
	return &TurnQueue{order: order, idx: -1, round: 1}
}

// NewOrderedTurnQueue builds a queue with an explicit order; used by tests
// and scenario configs that fix initiative.
func NewOrderedTurnQueue(order []UnitID) *TurnQueue {
	return &TurnQueue{order: append([]UnitID(nil), order...), idx: -1, round: 1}
}

// SortBy reorders the queue with an initiative comparator. Only meaningful
// before the first activation; the order is fixed for the battle after that.
func (q *TurnQueue) SortBy(less func(a, b UnitID) bool) {
	sort.SliceStable(q.order, func(i, j int) bool {
		return less(q.order[i], q.order[j])
	})
}

// Current returns the active unit id, or NoUnit before the first advance.
func (q *TurnQueue) Current() UnitID {
	if q.idx < 0 || q.idx >= len(q.order) {
		return NoUnit
	}
	return q.order[q.idx]
}

// Round returns the current round counter, starting at 1.
func (q *TurnQueue) Round() int {
	return q.round
}

// Order returns a copy of the fixed unit ordering.
func (q *TurnQueue) Order() []UnitID {
	return append([]UnitID(nil), q.order...)
}

// advance steps to the next unit, incrementing the round counter on wrap.
// Returns true when the index wrapped.
func (q *TurnQueue) advance() bool {
	q.idx++
	if q.idx >= len(q.order) {
		q.idx = 0
		q.round++
		return true
	}
	return false
}
