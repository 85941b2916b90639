package combat

import (
	"testing"

	"tugsim/internal/config"
)

func melee(key, race string, count float64) config.ArchetypeDef {
	return config.ArchetypeDef{
		Key: key, Race: race, Layer: "grounded",
		HP: 500, Damage: 6, CooldownTicks: 10,
		AttackStyle: "melee", Range: 20, Speed: 6, AttackMask: "grounded",
		RenderSize: 4, Capacity: 2, Count: count,
	}
}

func ranged(key, race string, count float64) config.ArchetypeDef {
	return config.ArchetypeDef{
		Key: key, Race: race, Layer: "grounded",
		HP: 900, Damage: 1, CooldownTicks: 40,
		AttackStyle: "ranged", Range: 140, Speed: 0, AttackMask: "grounded",
		RenderSize: 4, Capacity: 2, Count: count,
	}
}

// dummy is a ranged unit that never moves and never hurts anyone.
func dummy(key, race string, count, renderSize float64) config.ArchetypeDef {
	d := ranged(key, race, count)
	d.HP = 20000
	d.Damage = 0
	d.CooldownTicks = 999
	d.RenderSize = renderSize
	return d
}

func mustCatalog(t *testing.T, defs ...config.ArchetypeDef) *Catalog {
	t.Helper()
	c, err := NewCatalog(&config.ArchetypesConfig{Units: defs})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func crowdConfig() config.SimConfig {
	return config.SimConfig{
		MaxEntities: 256,
		ArenaWidth:  2600,
		ArenaHeight: 1000,
		BasePadding: 24,
		CoreRadius:  18,
		BucketSize:  80,
		MaxTicks:    1200,
		StepMs:      50,
		CoreHpStart: 4000,
	}
}

func mustSim(t *testing.T, cfg config.SimConfig, cat *Catalog) *Sim {
	t.Helper()
	s, err := New(cfg, cat)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustReset(t *testing.T, s *Sim, seed uint32, left, right string) {
	t.Helper()
	if err := s.Reset(seed, left, right); err != nil {
		t.Fatalf("Reset: %v", err)
	}
}

func place(s *Sim, i int, x, y float32) {
	s.st.x[i], s.st.y[i] = x, y
}

func placeRange(s *Sim, from, to int, x, y float32) {
	for i := from; i <= to; i++ {
		place(s, i, x, y)
	}
}

// characterizationCatalog is a small two-archetype-per-race table used by
// the end-to-end fixture.
func characterizationCatalog(t *testing.T) *Catalog {
	t.Helper()
	def := func(key, race, layer, style, mask string, hp, shield, armor, dmg, cd, rng, speed, cap, count, explosive float64) config.ArchetypeDef {
		return config.ArchetypeDef{
			Key: key, Race: race, Layer: layer,
			HP: hp, Shield: shield, Armor: armor, Damage: dmg, CooldownTicks: cd,
			AttackStyle: style, Range: rng, Speed: speed, AttackMask: mask,
			RenderSize: 4, Capacity: cap, Count: count, ExplosiveRadius: explosive,
		}
	}
	return mustCatalog(t,
		def("beast_melee", "beast", "grounded", "melee", "grounded", 100, 0, 0, 10, 8, 20, 4, 2, 12, 0),
		def("beast_archer", "beast", "grounded", "ranged", "both", 70, 0, 0, 9, 11, 140, 3.5, 3, 8, 0),
		def("alien_stabber", "alien", "grounded", "melee", "grounded", 90, 15, 0, 11, 8, 20, 4.2, 2, 12, 0),
		def("alien_orbiter", "alien", "flying", "ranged", "both", 80, 20, 0, 10, 12, 150, 3.6, 3, 8, 16),
		def("human_guard", "human", "grounded", "melee", "grounded", 110, 0, 1, 9, 9, 20, 3.9, 2, 12, 0),
		def("human_mortar", "human", "grounded", "ranged", "both", 75, 0, 0, 12, 13, 160, 3.4, 3, 8, 20),
	)
}

func characterizationConfig() config.SimConfig {
	return config.SimConfig{
		MaxEntities: 128,
		ArenaWidth:  1200,
		ArenaHeight: 700,
		BasePadding: 24,
		CoreRadius:  18,
		BucketSize:  60,
		MaxTicks:    600,
		StepMs:      50,
		CoreHpStart: 1200,
	}
}
