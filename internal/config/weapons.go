package config

import (
	"fmt"

	"github.com/Dombrovo/dread-tactics/internal/battle"
)

type WeaponsConfig struct {
	Weapons []WeaponDef `yaml:"weapons"`
}

type WeaponDef struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Damage       int     `yaml:"damage"`
	Range        float64 `yaml:"range"`
	Kind         string  `yaml:"kind"` // melee | ranged
	AccuracyMod  int     `yaml:"accuracy_mod"`
	SanityDamage int     `yaml:"sanity_damage"`
}

// Resolve converts a weapon id into the battle value.
func (c *WeaponsConfig) Resolve(id string) (battle.Weapon, error) {
	for _, d := range c.Weapons {
		if d.ID == id {
			return d.toWeapon()
		}
	}
	return battle.Weapon{}, fmt.Errorf("unknown weapon %q", id)
}

func (d WeaponDef) toWeapon() (battle.Weapon, error) {
	var class battle.WeaponClass
	switch d.Kind {
	case "melee":
		class = battle.WeaponMelee
	case "ranged":
		class = battle.WeaponRanged
	default:
		return battle.Weapon{}, fmt.Errorf("weapon %q: unknown kind %q", d.ID, d.Kind)
	}
	return battle.Weapon{
		Name:         d.Name,
		Damage:       d.Damage,
		Range:        d.Range,
		Class:        class,
		AccuracyMod:  d.AccuracyMod,
		SanityDamage: d.SanityDamage,
	}, nil
}
