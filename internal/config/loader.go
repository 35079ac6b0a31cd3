package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Bundle groups the three data tables a battle needs. Scenarios reference
// entries by id across all three.
type Bundle struct {
	Weapons    *WeaponsConfig
	Archetypes *ArchetypesConfig
	Decks      *DecksConfig
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadAll reads every data table from the asset directory.
func LoadAll(dir string) (*Bundle, error) {
	var wc WeaponsConfig
	var ac ArchetypesConfig
	var dc DecksConfig
	if err := loadYAML(filepath.Join(dir, "weapons.yaml"), &wc); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "archetypes.yaml"), &ac); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "decks.yaml"), &dc); err != nil {
		return nil, err
	}
	return &Bundle{Weapons: &wc, Archetypes: &ac, Decks: &dc}, nil
}

// Defaults returns the built-in data tables, used when no asset directory
// is available.
func Defaults() *Bundle {
	return &Bundle{
		Weapons:    DefaultWeapons(),
		Archetypes: DefaultArchetypes(),
		Decks:      DefaultDecks(),
	}
}

// LoadScenario reads one scenario layout file.
func LoadScenario(path string) (*ScenarioDef, error) {
	var sd ScenarioDef
	if err := loadYAML(path, &sd); err != nil {
		return nil, err
	}
	return &sd, nil
}
