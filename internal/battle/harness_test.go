package battle

import (
	"math/rand"
	"testing"
)

// scriptedSource feeds predetermined values to math/rand so dice rolls are
// exact. rand.Intn(100) reads the top 31 bits of Int63, so a value of
// k<<32 (k < 100) makes Intn(100) return k and the attack roll k+1.
type scriptedSource struct {
	vals []int64
	i    int
}

func (s *scriptedSource) Int63() int64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *scriptedSource) Seed(int64) {}

// scriptedRand returns an RNG whose successive Intn(100) calls yield the
// given values in order, repeating from the start when exhausted.
func scriptedRand(rolls ...int) *rand.Rand {
	vals := make([]int64, len(rolls))
	for i, r := range rolls {
		vals[i] = int64(r) << 32
	}
	return rand.New(&scriptedSource{vals: vals})
}

// uniformDeck builds a composition of n identical cards, so draws are
// predictable without controlling shuffle order.
func uniformDeck(n int, kind CardKind, modifier int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{Kind: kind, Modifier: modifier}
	}
	return cards
}

// scoutSpec is a baseline ranged player unit used across tests.
func scoutSpec() UnitSpec {
	return UnitSpec{
		Name:      "Scout",
		MaxHP:     10,
		MaxSanity: 10,
		Accuracy:  65,
		Will:      50,
		Move:      4,
		Weapon:    Weapon{Name: "pistol", Damage: 5, Range: 6, Class: WeaponRanged},
	}
}

// huskSpec is a baseline melee opponent unit.
func huskSpec() UnitSpec {
	return UnitSpec{
		Name:      "Husk",
		MaxHP:     8,
		MaxSanity: 8,
		Accuracy:  60,
		Will:      30,
		Move:      3,
		Weapon:    Weapon{Name: "claws", Damage: 4, Range: 1.5, Class: WeaponMelee, SanityDamage: 1},
		Targeting: TargetNearest,
	}
}

// mustSession fails the test on any construction error.
func mustSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	s, err := NewSession(opts...)
	if err != nil {
		t.Fatalf("session construction failed: %v", err)
	}
	return s
}

// dumpLog prints the full battle log through t.Log so transcripts appear in
// `go test -v` output.
func dumpLog(t *testing.T, s *Session) {
	t.Helper()
	entries := s.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}
