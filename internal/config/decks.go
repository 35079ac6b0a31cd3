package config

import (
	"fmt"

	"github.com/Dombrovo/dread-tactics/internal/battle"
)

type DecksConfig struct {
	Decks []DeckDef `yaml:"decks"`
}

type DeckDef struct {
	ID    string         `yaml:"id"`
	Cards []CardGroupDef `yaml:"cards"`
}

type CardGroupDef struct {
	Kind     string `yaml:"kind"` // null | multiply | plus | minus | zero
	Modifier int    `yaml:"modifier"`
	Count    int    `yaml:"count"`
}

// Resolve expands a deck id into its card composition.
func (c *DecksConfig) Resolve(id string) ([]battle.Card, error) {
	for _, d := range c.Decks {
		if d.ID == id {
			return d.buildCards()
		}
	}
	return nil, fmt.Errorf("unknown deck %q", id)
}

func (d DeckDef) buildCards() ([]battle.Card, error) {
	var cards []battle.Card
	for _, g := range d.Cards {
		kind, err := parseCardKind(g.Kind)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", d.ID, err)
		}
		count := g.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			cards = append(cards, battle.Card{Kind: kind, Modifier: g.Modifier})
		}
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck %q: %w", d.ID, battle.ErrEmptyDeck)
	}
	return cards, nil
}

func parseCardKind(s string) (battle.CardKind, error) {
	switch s {
	case "null":
		return battle.CardNull, nil
	case "multiply":
		return battle.CardMultiply, nil
	case "plus":
		return battle.CardPlus, nil
	case "minus":
		return battle.CardMinus, nil
	case "zero":
		return battle.CardZero, nil
	default:
		return 0, fmt.Errorf("unknown card kind %q", s)
	}
}
