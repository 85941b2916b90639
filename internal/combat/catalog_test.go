package combat

import (
	"errors"
	"math"
	"slices"
	"testing"

	"tugsim/internal/config"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if got := c.Races(); !slices.Equal(got, []string{"beast", "alien", "human"}) {
		t.Fatalf("races = %v", got)
	}
	for _, race := range c.Races() {
		list, ok := c.Race(race)
		if !ok || len(list) == 0 {
			t.Fatalf("race %s empty", race)
		}
		for _, a := range list {
			if a.Style == StyleMelee && a.Mask != AttackGrounded {
				t.Fatalf("%s: melee with mask %d", a.Key, a.Mask)
			}
			if a.Style == StyleRanged && a.Range < RangedMinRange {
				t.Fatalf("%s: ranged with range %v", a.Key, a.Range)
			}
		}
	}
}

func TestCatalogRaceReturnsCopy(t *testing.T) {
	c := characterizationCatalog(t)
	list, _ := c.Race("beast")
	list[0].HP = 1
	again, _ := c.Race("beast")
	if again[0].HP != 100 {
		t.Fatal("Race exposed internal storage")
	}
	if _, ok := c.Race("dragon"); ok {
		t.Fatal("unknown race reported as present")
	}
}

func TestCatalogRejectsInvalidRecords(t *testing.T) {
	mutate := func(f func(d *config.ArchetypeDef)) config.ArchetypeDef {
		d := melee("beast_x", "beast", 1)
		f(&d)
		return d
	}
	cases := map[string]config.ArchetypeDef{
		"missing key":       mutate(func(d *config.ArchetypeDef) { d.Key = "" }),
		"missing race":      mutate(func(d *config.ArchetypeDef) { d.Race = "" }),
		"bad layer":         mutate(func(d *config.ArchetypeDef) { d.Layer = "underground" }),
		"bad style":         mutate(func(d *config.ArchetypeDef) { d.AttackStyle = "magic" }),
		"bad mask":          mutate(func(d *config.ArchetypeDef) { d.AttackMask = "none" }),
		"melee hits air":    mutate(func(d *config.ArchetypeDef) { d.AttackMask = "both" }),
		"negative splash":   mutate(func(d *config.ArchetypeDef) { d.ExplosiveRadius = -1 }),
		"nan hp":            mutate(func(d *config.ArchetypeDef) { d.HP = math.NaN() }),
		"inf speed":         mutate(func(d *config.ArchetypeDef) { d.Speed = math.Inf(1) }),
		"fractional count":  mutate(func(d *config.ArchetypeDef) { d.Count = 1.5 }),
		"negative count":    mutate(func(d *config.ArchetypeDef) { d.Count = -1 }),
		"cooldown overflow": mutate(func(d *config.ArchetypeDef) { d.CooldownTicks = 70000 }),
		"short ranged": mutate(func(d *config.ArchetypeDef) {
			d.AttackStyle = "ranged"
			d.Range = 39.9
		}),
	}
	for name, def := range cases {
		_, err := NewCatalog(&config.ArchetypesConfig{Units: []config.ArchetypeDef{def}})
		if !errors.Is(err, ErrInvalidArchetype) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}

	_, err := NewCatalog(&config.ArchetypesConfig{Units: []config.ArchetypeDef{
		melee("beast_x", "beast", 1),
		melee("beast_x", "alien", 1),
	}})
	if !errors.Is(err, ErrInvalidArchetype) {
		t.Fatalf("duplicate key: err = %v", err)
	}
	if _, err := NewCatalog(&config.ArchetypesConfig{}); !errors.Is(err, ErrInvalidArchetype) {
		t.Fatalf("empty table: err = %v", err)
	}
}

func TestArchetypeProfile(t *testing.T) {
	c := characterizationCatalog(t)
	list, _ := c.Race("alien")
	stabber, orbiter := list[0], list[1]

	if p := stabber.Profile(); p.Medium != MediumDirect || p.Impact != ImpactSingle || p.ProjectileSpeed != 0 {
		t.Fatalf("stabber profile %+v", p)
	}
	p := orbiter.Profile()
	if p.Medium != MediumProjectile || p.Impact != ImpactExplosive || p.SplashRadius != 16 {
		t.Fatalf("orbiter profile %+v", p)
	}
	if want := ProjectileBaseSpeed + 150*ProjectileRangeSpeedFactor; math.Abs(p.ProjectileSpeed-want) > 1e-9 {
		t.Fatalf("projectile speed %v, want %v", p.ProjectileSpeed, want)
	}
	if p.HitRadius != ProjectileSingleHitRadius {
		t.Fatalf("hit radius %v", p.HitRadius)
	}

	for _, c := range []struct{ size, want float64 }{{0, 10}, {1, 10}, {4, 25.6}, {12, 76.8}, {20, 96}} {
		if got := bodyRadiusFor(c.size); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("bodyRadius(%v) = %v, want %v", c.size, got, c.want)
		}
	}
}
