package config

import (
	"fmt"

	"github.com/Dombrovo/dread-tactics/internal/battle"
)

// ScenarioDef is a battlefield layout: grid size, terrain placement, and the
// unit roster with spawn tiles.
type ScenarioDef struct {
	Name    string            `yaml:"name"`
	Cols    int               `yaml:"cols"`
	Rows    int               `yaml:"rows"`
	Terrain []TerrainDef      `yaml:"terrain"`
	Units   []ScenarioUnitDef `yaml:"units"`
}

type TerrainDef struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"` // half_cover | full_cover
}

type ScenarioUnitDef struct {
	Archetype string `yaml:"archetype"`
	Team      string `yaml:"team"` // player | opponent
	Name      string `yaml:"name"` // optional override of the archetype name
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
}

func parseTerrain(s string) (battle.Terrain, error) {
	switch s {
	case "half_cover":
		return battle.TerrainHalfCover, nil
	case "full_cover":
		return battle.TerrainFullCover, nil
	case "empty", "":
		return battle.TerrainEmpty, nil
	default:
		return 0, fmt.Errorf("unknown terrain kind %q", s)
	}
}

// BuildSession assembles a battle session from a scenario and the data
// tables. The seed drives every random draw in the battle.
func BuildSession(sc *ScenarioDef, bundle *Bundle, seed int64) (*battle.Session, error) {
	cols, rows := sc.Cols, sc.Rows
	if cols <= 0 {
		cols = 10
	}
	if rows <= 0 {
		rows = 10
	}
	opts := []battle.SessionOption{
		battle.WithGridSize(cols, rows),
		battle.WithSeed(seed),
	}

	for _, td := range sc.Terrain {
		terrain, err := parseTerrain(td.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		opts = append(opts, battle.WithTerrain(td.X, td.Y, terrain))
	}

	for _, ud := range sc.Units {
		spec, err := bundle.Archetypes.Resolve(ud.Archetype, bundle.Weapons, bundle.Decks)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		if ud.Name != "" {
			spec.Name = ud.Name
		}
		switch ud.Team {
		case "player":
			opts = append(opts, battle.WithPlayerUnit(spec, ud.X, ud.Y))
		case "opponent":
			opts = append(opts, battle.WithOpponentUnit(spec, ud.X, ud.Y))
		default:
			return nil, fmt.Errorf("scenario %q: unit %q: unknown team %q", sc.Name, ud.Archetype, ud.Team)
		}
	}

	return battle.NewSession(opts...)
}
