package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = "unitKey,race,layer,hp,shield,armor,damage,cooldownTicks,attackStyle,range,speed,attackMask,renderSize,capacity,count,explosiveRadius\n"

func TestParseArchetypesCSV(t *testing.T) {
	in := "# comment\n" + header +
		"\n" +
		"a_melee, alpha, grounded, 100, 5, 1, 10, 8, melee, 20, 4, grounded, 4, 2, 12, 0\n" +
		"a_ranged,alpha,flying,70,0,0,9,11,ranged,140,3.5,both,4,3,8,16\n"
	ac, err := ParseArchetypesCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ac.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(ac.Units))
	}
	u := ac.Units[0]
	if u.Key != "a_melee" || u.Race != "alpha" || u.Layer != "grounded" || u.Shield != 5 || u.Count != 12 {
		t.Fatalf("unexpected first row: %+v", u)
	}
	if ac.Units[1].ExplosiveRadius != 16 || ac.Units[1].AttackMask != "both" {
		t.Fatalf("unexpected second row: %+v", ac.Units[1])
	}
}

func TestParseArchetypesCSVRejectsBadInput(t *testing.T) {
	row := "k,alpha,grounded,100,0,0,10,8,melee,20,4,grounded,4,2,1,0\n"
	cases := map[string]string{
		"empty":           "",
		"header only":     header,
		"header mismatch": strings.Replace(header, "armor", "armour", 1) + row,
		"header count":    "unitKey,race\n" + row,
		"short row":       header + "k,alpha,grounded\n",
		"missing number":  header + strings.Replace(row, ",100,", ",,", 1),
		"non numeric":     header + strings.Replace(row, ",100,", ",lots,", 1),
		"non finite":      header + strings.Replace(row, ",100,", ",Inf,", 1),
	}
	for name, in := range cases {
		if _, err := ParseArchetypesCSV(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDefaultArchetypesParse(t *testing.T) {
	ac, err := DefaultArchetypes()
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	races := map[string]int{}
	for _, u := range ac.Units {
		races[u.Race]++
	}
	for _, r := range []string{"beast", "alien", "human"} {
		if races[r] == 0 {
			t.Fatalf("default table has no %s units", r)
		}
	}
}

func TestLoadAllDefaultsAndYAMLTable(t *testing.T) {
	dir := t.TempDir()
	sc, ac, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("empty dir: %v", err)
	}
	if *sc != DefaultSimConfig() || ac != nil {
		t.Fatalf("empty dir should give defaults and no table, got %+v %v", sc, ac)
	}

	simYAML := "arena_width: 1200\narena_height: 700\nmax_ticks: 600\n"
	unitsYAML := `units:
  - key: h_guard
    race: human
    layer: grounded
    hp: 110
    damage: 9
    cooldown_ticks: 9
    attack_style: melee
    range: 20
    speed: 3.9
    attack_mask: grounded
    render_size: 4
    capacity: 2
    count: 12
`
	if err := os.WriteFile(filepath.Join(dir, "sim.yaml"), []byte(simYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "archetypes.yaml"), []byte(unitsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, ac, err = LoadAll(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.ArenaWidth != 1200 || sc.ArenaHeight != 700 || sc.MaxTicks != 600 {
		t.Fatalf("sim.yaml not applied: %+v", sc)
	}
	if sc.BucketSize != DefaultSimConfig().BucketSize {
		t.Fatalf("unset field not defaulted: %+v", sc)
	}
	if ac == nil || len(ac.Units) != 1 || ac.Units[0].CooldownTicks != 9 {
		t.Fatalf("archetypes.yaml not loaded: %+v", ac)
	}
}

func TestLoadAllRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sim.yaml"), []byte("arena_width: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadAll(dir); err == nil {
		t.Fatal("expected error for malformed sim.yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("TUGSIM_TEST_ONLY=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TUGSIM_TEST_ONLY", "")
	os.Unsetenv("TUGSIM_TEST_ONLY")
	if err := LoadEnv(envPath); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if os.Getenv("TUGSIM_TEST_ONLY") != "1" {
		t.Fatal("expected .env value to be loaded")
	}
	if err := LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}

	t.Setenv("TUGSIM_MAX_TICKS", "650")
	t.Setenv("TUGSIM_ARENA_WIDTH", "1200")
	c := DefaultSimConfig()
	if err := ApplyEnv(&c); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.MaxTicks != 650 || c.ArenaWidth != 1200 {
		t.Fatalf("overrides not applied: %+v", c)
	}

	t.Setenv("TUGSIM_BUCKET_SIZE", "-3")
	if err := ApplyEnv(&c); err == nil {
		t.Fatal("expected error for negative bucket size")
	}
}

func TestWithDefaultsTreatsZeroAsUnset(t *testing.T) {
	d := DefaultSimConfig()
	got := SimConfig{ArenaWidth: 1200, MaxProjectiles: 3}.WithDefaults()
	if got.ArenaWidth != 1200 || got.MaxProjectiles != 3 {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
	if got.BasePadding != d.BasePadding || got.CoreRadius != d.CoreRadius || got.MaxExplosionEffects != d.MaxExplosionEffects {
		t.Fatalf("zero fields not defaulted: %+v", got)
	}

	dir := t.TempDir()
	yml := "base_padding: 0\nmax_projectiles: 0\n"
	if err := os.WriteFile(filepath.Join(dir, "sim.yaml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, _, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if sc.BasePadding != d.BasePadding || sc.MaxProjectiles != d.MaxProjectiles {
		t.Fatalf("explicit zero in sim.yaml should mean default, got padding=%v projectiles=%d", sc.BasePadding, sc.MaxProjectiles)
	}
}
