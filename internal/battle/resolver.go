package battle

import (
	"math"
	"math/rand"
)

// Hit chance is always clamped to this band: nothing is ever a sure miss or a
// sure hit.
const (
	minHitChance = 5
	maxHitChance = 95

	distancePenaltyPerTile = 10
)

// HitChance computes the effective chance to hit in percent:
// base accuracy minus 10 per tile of distance minus the target's cover bonus,
// clamped to [5, 95].
func HitChance(baseAccuracy int, distance float64, coverBonus int) int {
	chance := int(math.Round(float64(baseAccuracy) - distancePenaltyPerTile*distance - float64(coverBonus)))
	if chance < minHitChance {
		return minHitChance
	}
	if chance > maxHitChance {
		return maxHitChance
	}
	return chance
}

// AttackResult is the full record of one resolved attack, emitted for the
// presentation layer.
type AttackResult struct {
	Attacker UnitID
	Target   UnitID

	Valid bool
	Block AttackBlock // reason when Valid is false

	Hit       bool
	HitChance int
	Roll      int // 1-100, rolled against HitChance

	Distance float64
	Cover    Terrain

	Card         *Card // drawn card; nil on miss or invalid attack
	BaseDamage   int
	FinalDamage  int
	SanityDamage int

	TargetDown bool // target became incapacitated by this attack
}

// AttackPreview reports the same hit-chance math with no randomness executed
// and no deck mutation. The damage span runs from the worst card (null, zero
// damage) to the best (multiply, double damage).
type AttackPreview struct {
	Valid        bool
	Block        AttackBlock
	HitChance    int
	MinDamage    int
	MaxDamage    int
	SanityDamage int
	Distance     float64
	Cover        Terrain
}

// Resolver executes probabilistic attacks over one battlefield. It owns the
// shared opponent deck; player units carry personal decks.
type Resolver struct {
	grid       *Grid
	rng        *rand.Rand
	sharedDeck *Deck
}

// NewResolver creates a resolver bound to a grid, an injected RNG, and the
// shared opponent-team deck.
func NewResolver(grid *Grid, rng *rand.Rand, sharedDeck *Deck) *Resolver {
	return &Resolver{grid: grid, rng: rng, sharedDeck: sharedDeck}
}

// DeckFor returns the deck an attacker draws from: the personal deck when it
// has one, otherwise the shared opponent deck.
func (r *Resolver) DeckFor(u *Unit) *Deck {
	if d := u.PersonalDeck(); d != nil {
		return d
	}
	return r.sharedDeck
}

// ResolveAttack validates, rolls, and applies one attack. Invalid attacks
// carry the denial reason and have no side effects. The card is drawn only
// after the hit is confirmed, so a miss never consumes a card.
func (r *Resolver) ResolveAttack(attacker, target *Unit) AttackResult {
	res := AttackResult{
		Attacker:   attacker.ID,
		Target:     target.ID,
		Distance:   Euclidean(attacker.Pos, target.Pos),
		Cover:      r.grid.TerrainAt(target.Pos),
		BaseDamage: attacker.Weapon.Damage,
	}

	if block := CanAttack(r.grid, attacker.Pos, target.Pos, attacker.Weapon.Range); block != AttackOK {
		res.Block = block
		return res
	}
	res.Valid = true

	res.HitChance = HitChance(attacker.EffectiveAccuracy(), res.Distance, res.Cover.DefenseBonus())
	res.Roll = r.rng.Intn(100) + 1
	if res.Roll > res.HitChance {
		return res
	}
	res.Hit = true

	card := r.DeckFor(attacker).Draw()
	res.Card = &card
	res.FinalDamage = card.Apply(res.BaseDamage)
	res.SanityDamage = attacker.Weapon.SanityDamage

	wasDown := target.IsIncapacitated()
	target.ApplyDamage(res.FinalDamage)
	target.ApplySanityDamage(res.SanityDamage)
	res.TargetDown = !wasDown && target.IsIncapacitated()
	return res
}

// PreviewAttack reports hit chance and the card-driven damage span without
// touching the RNG or any deck.
func (r *Resolver) PreviewAttack(attacker, target *Unit) AttackPreview {
	pre := AttackPreview{
		Distance: Euclidean(attacker.Pos, target.Pos),
		Cover:    r.grid.TerrainAt(target.Pos),
	}
	if block := CanAttack(r.grid, attacker.Pos, target.Pos, attacker.Weapon.Range); block != AttackOK {
		pre.Block = block
		return pre
	}
	pre.Valid = true
	pre.HitChance = HitChance(attacker.EffectiveAccuracy(), pre.Distance, pre.Cover.DefenseBonus())
	pre.MinDamage = Card{Kind: CardNull}.Apply(attacker.Weapon.Damage)
	pre.MaxDamage = Card{Kind: CardMultiply}.Apply(attacker.Weapon.Damage)
	pre.SanityDamage = attacker.Weapon.SanityDamage
	return pre
}
