package battle

import (
	"errors"
	"math/rand"
)

// CardKind is the closed set of damage-modifier card types.
type CardKind uint8

const (
	CardNull     CardKind = iota // final damage becomes zero
	CardMultiply                 // final damage doubles
	CardPlus                     // additive bonus
	CardMinus                    // additive penalty
	CardZero                     // no change
	cardKindCount                // sentinel
)

func (k CardKind) String() string {
	switch k {
	case CardNull:
		return "null"
	case CardMultiply:
		return "multiply"
	case CardPlus:
		return "plus"
	case CardMinus:
		return "minus"
	case CardZero:
		return "zero"
	default:
		return "unknown"
	}
}

// Card is an immutable damage-modifier value.
type Card struct {
	Kind     CardKind
	Modifier int
}

// Apply returns the final damage after the card modifies base weapon damage.
// Additive results never go below zero.
func (c Card) Apply(base int) int {
	switch c.Kind {
	case CardNull:
		return 0
	case CardMultiply:
		return base * 2
	default:
		final := base + c.Modifier
		if final < 0 {
			return 0
		}
		return final
	}
}

// StandardComposition returns the 20-card reference deck:
// 1 null, 1 multiply, 1 plus(+2), 5 plus(+1), 7 zero, 5 minus(-1).
func StandardComposition() []Card {
	cards := make([]Card, 0, 20)
	cards = append(cards, Card{Kind: CardNull})
	cards = append(cards, Card{Kind: CardMultiply})
	cards = append(cards, Card{Kind: CardPlus, Modifier: 2})
	for i := 0; i < 5; i++ {
		cards = append(cards, Card{Kind: CardPlus, Modifier: 1})
	}
	for i := 0; i < 7; i++ {
		cards = append(cards, Card{Kind: CardZero})
	}
	for i := 0; i < 5; i++ {
		cards = append(cards, Card{Kind: CardMinus, Modifier: -1})
	}
	return cards
}

// ErrEmptyDeck is the construction fault for a deck with no cards. It must be
// surfaced at setup, never discovered on first draw.
var ErrEmptyDeck = errors.New("deck constructed with zero cards")

// Deck is a stateful draw/discard pile pair. The total composition size is
// constant across the deck's lifetime except through the explicit AddCard and
// RemoveCard progression hooks. Composition persists across battles; only the
// pile split changes.
type Deck struct {
	draw       []Card // top of pile is the last element
	discard    []Card
	rng        *rand.Rand
	reshuffles int
}

// NewDeck builds a deck whose draw pile preserves the given order (last card
// is drawn first). Construction with zero cards is a configuration fault.
func NewDeck(cards []Card, rng *rand.Rand) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	d := &Deck{
		draw: append([]Card(nil), cards...),
		rng:  rng,
	}
	return d, nil
}

// NewShuffledDeck builds a deck and shuffles the draw pile once.
func NewShuffledDeck(cards []Card, rng *rand.Rand) (*Deck, error) {
	d, err := NewDeck(cards, rng)
	if err != nil {
		return nil, err
	}
	d.Shuffle()
	return d, nil
}

// Shuffle uniformly permutes the current draw pile.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw pops the top card and moves it to the discard pile. When the draw pile
// is empty the discard pile is shuffled back in first.
func (d *Deck) Draw() Card {
	if len(d.draw) == 0 {
		d.draw = d.discard
		d.discard = nil
		d.Shuffle()
		d.reshuffles++
	}
	c := d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	d.discard = append(d.discard, c)
	return c
}

// Peek returns up to n cards from the top of the draw pile, top first,
// without mutating the deck.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.draw) {
		n = len(d.draw)
	}
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.draw[len(d.draw)-1-i])
	}
	return out
}

// AddCard permanently adds a card to the composition (progression hook). The
// card goes to the bottom of the draw pile.
func (d *Deck) AddCard(c Card) {
	d.draw = append([]Card{c}, d.draw...)
}

// RemoveCard permanently removes one card of the given kind (progression
// hook), searching the draw pile bottom-up, then the discard pile. Returns
// false if no such card exists. The last card cannot be removed: a deck never
// shrinks to the zero-card state NewDeck rejects.
func (d *Deck) RemoveCard(kind CardKind) bool {
	if d.Size() <= 1 {
		return false
	}
	for i, c := range d.draw {
		if c.Kind == kind {
			d.draw = append(d.draw[:i], d.draw[i+1:]...)
			return true
		}
	}
	for i, c := range d.discard {
		if c.Kind == kind {
			d.discard = append(d.discard[:i], d.discard[i+1:]...)
			return true
		}
	}
	return false
}

// Size returns the total composition size across both piles.
func (d *Deck) Size() int {
	return len(d.draw) + len(d.discard)
}

// DrawPileLen returns the number of cards left before the next reshuffle.
func (d *Deck) DrawPileLen() int {
	return len(d.draw)
}

// Reshuffles returns how many times the discard pile has been shuffled back
// into the draw pile.
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}

// Composition returns a copy of every card in the deck, draw pile first.
func (d *Deck) Composition() []Card {
	out := make([]Card, 0, d.Size())
	out = append(out, d.draw...)
	out = append(out, d.discard...)
	return out
}
