package config

// SimConfig mirrors sim.yaml. A zero field means "use the default": WithDefaults
// replaces it, so base_padding, core_radius and the projectile/explosion pool
// sizes cannot be configured as 0.
type SimConfig struct {
	MaxEntities         int     `yaml:"max_entities"`
	ArenaWidth          float64 `yaml:"arena_width"`
	ArenaHeight         float64 `yaml:"arena_height"`
	BasePadding         float64 `yaml:"base_padding"`
	CoreRadius          float64 `yaml:"core_radius"`
	BucketSize          float64 `yaml:"bucket_size"`
	MaxTicks            int     `yaml:"max_ticks"`
	StepMs              int     `yaml:"step_ms"`
	CoreHpStart         float64 `yaml:"core_hp_start"`
	MaxProjectiles      int     `yaml:"max_projectiles"`
	MaxExplosionEffects int     `yaml:"max_explosion_effects"`
}

func DefaultSimConfig() SimConfig {
	return SimConfig{
		MaxEntities:         4500,
		ArenaWidth:          9600,
		ArenaHeight:         5600,
		BasePadding:         24,
		CoreRadius:          18,
		BucketSize:          240,
		MaxTicks:            2400,
		StepMs:              50,
		CoreHpStart:         5000,
		MaxProjectiles:      7000,
		MaxExplosionEffects: 1200,
	}
}

// WithDefaults returns a copy where every unset field takes its default.
func (c SimConfig) WithDefaults() SimConfig {
	d := DefaultSimConfig()
	if c.MaxEntities == 0 {
		c.MaxEntities = d.MaxEntities
	}
	if c.ArenaWidth == 0 {
		c.ArenaWidth = d.ArenaWidth
	}
	if c.ArenaHeight == 0 {
		c.ArenaHeight = d.ArenaHeight
	}
	if c.BasePadding == 0 {
		c.BasePadding = d.BasePadding
	}
	if c.CoreRadius == 0 {
		c.CoreRadius = d.CoreRadius
	}
	if c.BucketSize == 0 {
		c.BucketSize = d.BucketSize
	}
	if c.MaxTicks == 0 {
		c.MaxTicks = d.MaxTicks
	}
	if c.StepMs == 0 {
		c.StepMs = d.StepMs
	}
	if c.CoreHpStart == 0 {
		c.CoreHpStart = d.CoreHpStart
	}
	if c.MaxProjectiles == 0 {
		c.MaxProjectiles = d.MaxProjectiles
	}
	if c.MaxExplosionEffects == 0 {
		c.MaxExplosionEffects = d.MaxExplosionEffects
	}
	return c
}
