package config

import (
	"fmt"

	"github.com/Dombrovo/dread-tactics/internal/battle"
)

type ArchetypesConfig struct {
	Archetypes []ArchetypeDef `yaml:"archetypes"`
}

// ArchetypeDef is a unit template. Targeting is data, not code: adding an
// archetype never means adding a switch arm to the AI.
type ArchetypeDef struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Targeting string  `yaml:"targeting"` // nearest | max_health
	Weapon    string  `yaml:"weapon"`
	MaxHP     int     `yaml:"max_hp"`
	MaxSanity int     `yaml:"max_sanity"`
	Accuracy  int     `yaml:"accuracy"`
	Will      int     `yaml:"will"`
	Move      float64 `yaml:"move"`
	Deck      string  `yaml:"deck"` // personal deck id; empty = shared team deck
}

// Find returns the archetype definition with the given id.
func (c *ArchetypesConfig) Find(id string) (ArchetypeDef, error) {
	for _, d := range c.Archetypes {
		if d.ID == id {
			return d, nil
		}
	}
	return ArchetypeDef{}, fmt.Errorf("unknown archetype %q", id)
}

// Resolve converts an archetype id into a battle unit spec using the weapon
// and deck tables.
func (c *ArchetypesConfig) Resolve(id string, weapons *WeaponsConfig, decks *DecksConfig) (battle.UnitSpec, error) {
	d, err := c.Find(id)
	if err != nil {
		return battle.UnitSpec{}, err
	}
	weapon, err := weapons.Resolve(d.Weapon)
	if err != nil {
		return battle.UnitSpec{}, fmt.Errorf("archetype %q: %w", id, err)
	}
	rule, err := parseTargetRule(d.Targeting)
	if err != nil {
		return battle.UnitSpec{}, fmt.Errorf("archetype %q: %w", id, err)
	}
	spec := battle.UnitSpec{
		Name:      d.Name,
		Archetype: d.ID,
		MaxHP:     d.MaxHP,
		MaxSanity: d.MaxSanity,
		Accuracy:  d.Accuracy,
		Will:      d.Will,
		Move:      d.Move,
		Weapon:    weapon,
		Targeting: rule,
	}
	if d.Deck != "" {
		cards, err := decks.Resolve(d.Deck)
		if err != nil {
			return battle.UnitSpec{}, fmt.Errorf("archetype %q: %w", id, err)
		}
		spec.Deck = cards
	}
	return spec, nil
}

func parseTargetRule(s string) (battle.TargetRule, error) {
	switch s {
	case "nearest", "":
		return battle.TargetNearest, nil
	case "max_health":
		return battle.TargetMaxHealth, nil
	default:
		return 0, fmt.Errorf("unknown targeting rule %q", s)
	}
}
