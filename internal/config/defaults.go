package config

// Built-in copies of the asset tables. The commands fall back to these when
// no asset directory is given, and tests use them so the core never depends
// on files on disk.

// DefaultWeapons mirrors assets/weapons.yaml.
func DefaultWeapons() *WeaponsConfig {
	return &WeaponsConfig{Weapons: []WeaponDef{
		{ID: "service_revolver", Name: "Service Revolver", Damage: 5, Range: 3, Kind: "ranged"},
		{ID: "trench_rifle", Name: "Trench Rifle", Damage: 6, Range: 6, Kind: "ranged", AccuracyMod: -5},
		{ID: "ritual_dagger", Name: "Ritual Dagger", Damage: 4, Range: 1.5, Kind: "melee", AccuracyMod: 10, SanityDamage: 1},
		{ID: "bone_claws", Name: "Bone Claws", Damage: 5, Range: 1.5, Kind: "melee", SanityDamage: 2},
		{ID: "whisper_lantern", Name: "Whisper Lantern", Damage: 3, Range: 5, Kind: "ranged", SanityDamage: 3},
	}}
}

// DefaultDecks mirrors assets/decks.yaml. "standard" is the 20-card
// reference composition.
func DefaultDecks() *DecksConfig {
	return &DecksConfig{Decks: []DeckDef{
		{ID: "standard", Cards: []CardGroupDef{
			{Kind: "null", Count: 1},
			{Kind: "multiply", Count: 1},
			{Kind: "plus", Modifier: 2, Count: 1},
			{Kind: "plus", Modifier: 1, Count: 5},
			{Kind: "zero", Count: 7},
			{Kind: "minus", Modifier: -1, Count: 5},
		}},
	}}
}

// DefaultArchetypes mirrors assets/archetypes.yaml.
func DefaultArchetypes() *ArchetypesConfig {
	return &ArchetypesConfig{Archetypes: []ArchetypeDef{
		{ID: "investigator", Name: "Investigator", Targeting: "nearest", Weapon: "service_revolver",
			MaxHP: 12, MaxSanity: 10, Accuracy: 75, Will: 7, Move: 4, Deck: "standard"},
		{ID: "marksman", Name: "Marksman", Targeting: "nearest", Weapon: "trench_rifle",
			MaxHP: 10, MaxSanity: 8, Accuracy: 80, Will: 5, Move: 3.5, Deck: "standard"},
		{ID: "cultist", Name: "Cultist", Targeting: "nearest", Weapon: "ritual_dagger",
			MaxHP: 8, MaxSanity: 6, Accuracy: 70, Will: 4, Move: 4},
		{ID: "husk", Name: "Hollow Husk", Targeting: "max_health", Weapon: "bone_claws",
			MaxHP: 14, MaxSanity: 8, Accuracy: 65, Will: 3, Move: 3},
		{ID: "chantkeeper", Name: "Chantkeeper", Targeting: "max_health", Weapon: "whisper_lantern",
			MaxHP: 9, MaxSanity: 12, Accuracy: 70, Will: 8, Move: 3},
	}}
}

// DefaultScenario mirrors assets/scenarios/chapel.yaml: two investigators
// against three cultist-side units across a ruined chapel nave.
func DefaultScenario() *ScenarioDef {
	return &ScenarioDef{
		Name: "chapel",
		Cols: 10,
		Rows: 10,
		Terrain: []TerrainDef{
			{X: 4, Y: 2, Kind: "full_cover"},
			{X: 4, Y: 3, Kind: "half_cover"},
			{X: 5, Y: 6, Kind: "full_cover"},
			{X: 5, Y: 7, Kind: "half_cover"},
			{X: 2, Y: 5, Kind: "half_cover"},
			{X: 7, Y: 4, Kind: "half_cover"},
		},
		Units: []ScenarioUnitDef{
			{Archetype: "investigator", Team: "player", X: 1, Y: 8},
			{Archetype: "marksman", Team: "player", X: 2, Y: 8},
			{Archetype: "cultist", Team: "opponent", X: 7, Y: 1},
			{Archetype: "husk", Team: "opponent", X: 8, Y: 2},
			{Archetype: "chantkeeper", Team: "opponent", X: 8, Y: 0},
		},
	}
}
