package config

// ArchetypesConfig is the raw unit table, either from archetypes.yaml or a
// tabular archetypes.csv. Nothing here is validated; combat.NewCatalog does that.
type ArchetypesConfig struct {
	Units []ArchetypeDef `yaml:"units"`
}

type ArchetypeDef struct {
	Key             string  `yaml:"key"`
	Race            string  `yaml:"race"`
	Layer           string  `yaml:"layer"` // grounded | flying
	HP              float64 `yaml:"hp"`
	Shield          float64 `yaml:"shield"`
	Armor           float64 `yaml:"armor"`
	Damage          float64 `yaml:"damage"`
	CooldownTicks   float64 `yaml:"cooldown_ticks"`
	AttackStyle     string  `yaml:"attack_style"` // melee | ranged
	Range           float64 `yaml:"range"`
	Speed           float64 `yaml:"speed"`
	AttackMask      string  `yaml:"attack_mask"` // grounded | flying | both
	RenderSize      float64 `yaml:"render_size"`
	Capacity        float64 `yaml:"capacity"`
	Count           float64 `yaml:"count"`
	ExplosiveRadius float64 `yaml:"explosive_radius"`
	Note            string  `yaml:"note"`
}
