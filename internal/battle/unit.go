package battle

import "fmt"

// Team identifies which side a unit fights for.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamOpponent
)

// Opposing returns the other team.
func (t Team) Opposing() Team {
	if t == TeamPlayer {
		return TeamOpponent
	}
	return TeamPlayer
}

func (t Team) String() string {
	if t == TeamPlayer {
		return "player"
	}
	return "opponent"
}

// UnitID identifies a unit for the life of one battle. IDs are assigned in
// creation order, which is also the stable tie-break order for AI targeting.
type UnitID int

// NoUnit is the nil unit id.
const NoUnit UnitID = -1

// WeaponClass distinguishes how a weapon reaches its target.
type WeaponClass uint8

const (
	WeaponMelee WeaponClass = iota
	WeaponRanged
)

func (w WeaponClass) String() string {
	if w == WeaponMelee {
		return "melee"
	}
	return "ranged"
}

// Weapon is static equipment data consumed by the resolver. The stat table
// itself lives in config; the core only reads it.
type Weapon struct {
	Name         string
	Damage       int     // base damage before the card modifier
	Range        float64 // max attack distance in tiles (euclidean)
	Class        WeaponClass
	AccuracyMod  int // additive hit-chance modifier
	SanityDamage int // fixed sanity loss on every confirmed hit
}

// defaultMaxAP is the per-turn action point budget.
const defaultMaxAP = 2

// Unit is one battle participant. Units are created at setup and never
// destroyed mid-battle: an incapacitated unit stays on its tile as an inert
// occupant.
type Unit struct {
	ID        UnitID
	Name      string
	Team      Team
	Archetype string // config id that spawned this unit, "" for custom units

	// Position is unset (Placed false) until the grid places the unit.
	Pos    Point
	Placed bool

	HP        int
	MaxHP     int
	Sanity    int
	MaxSanity int

	// Base stats plus additive modifiers. Effective values are computed,
	// never stored.
	Accuracy    int
	AccuracyMod int
	Will        int
	WillMod     int
	MoveBudget  float64 // movement distance-cost budget per turn
	MoveMod     float64

	AP    int
	MaxAP int

	Weapon    Weapon
	Targeting TargetRule // decision rule when opponent-controlled

	deck *Deck // personal card deck; nil for units on the shared deck
}

// Label is the short log identifier, e.g. "P0" or "O3".
func (u *Unit) Label() string {
	prefix := "P"
	if u.Team == TeamOpponent {
		prefix = "O"
	}
	return fmt.Sprintf("%s%d", prefix, u.ID)
}

// EffectiveAccuracy is the unit's hit chance contribution before distance and
// cover penalties.
func (u *Unit) EffectiveAccuracy() int {
	return u.Accuracy + u.AccuracyMod + u.Weapon.AccuracyMod
}

// EffectiveWill is the resolve stat used by the initiative comparator.
func (u *Unit) EffectiveWill() int {
	return u.Will + u.WillMod
}

// EffectiveMove is the per-turn movement cost budget.
func (u *Unit) EffectiveMove() float64 {
	return u.MoveBudget + u.MoveMod
}

// IsIncapacitated reports whether the unit is out of the fight: health or
// sanity drained to zero. Derived, never stored.
func (u *Unit) IsIncapacitated() bool {
	return u.HP <= 0 || u.Sanity <= 0
}

// ApplyDamage reduces health, clamped at zero.
func (u *Unit) ApplyDamage(dmg int) {
	if dmg <= 0 {
		return
	}
	u.HP -= dmg
	if u.HP < 0 {
		u.HP = 0
	}
}

// ApplySanityDamage reduces sanity, clamped at zero.
func (u *Unit) ApplySanityDamage(dmg int) {
	if dmg <= 0 {
		return
	}
	u.Sanity -= dmg
	if u.Sanity < 0 {
		u.Sanity = 0
	}
}

// Heal restores health, clamped at the maximum.
func (u *Unit) Heal(amount int) {
	if amount <= 0 {
		return
	}
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
}

// RestoreSanity restores sanity, clamped at the maximum.
func (u *Unit) RestoreSanity(amount int) {
	if amount <= 0 {
		return
	}
	u.Sanity += amount
	if u.Sanity > u.MaxSanity {
		u.Sanity = u.MaxSanity
	}
}

// ResetAP refills the action point counter at the start of the unit's turn.
func (u *Unit) ResetAP() {
	u.AP = u.MaxAP
}

// SetDeck assigns a personal card deck to the unit.
func (u *Unit) SetDeck(d *Deck) {
	u.deck = d
}

// PersonalDeck returns the unit's own deck, or nil if it draws from the
// shared team deck.
func (u *Unit) PersonalDeck() *Deck {
	return u.deck
}
