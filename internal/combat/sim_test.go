package combat

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"tugsim/internal/config"
)

func TestNewRejectsBadSizes(t *testing.T) {
	bad := []config.SimConfig{
		{ArenaWidth: -1},
		{BucketSize: -5},
		{MaxEntities: -1},
		{ArenaWidth: 40, ArenaHeight: 40, BasePadding: 30},
	}
	for i, c := range bad {
		if _, err := New(c, nil); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestNewDerivesGrid(t *testing.T) {
	s := mustSim(t, characterizationConfig(), characterizationCatalog(t))
	cfg := s.Config()
	if cfg.BucketCols != 20 || cfg.BucketRows != 12 || cfg.BucketCount != 240 {
		t.Fatalf("grid %dx%d (%d)", cfg.BucketCols, cfg.BucketRows, cfg.BucketCount)
	}
	if cfg.MaxProjectiles != config.DefaultSimConfig().MaxProjectiles {
		t.Fatalf("projectile pool not defaulted: %d", cfg.MaxProjectiles)
	}
	if s.Winner() != NoWinner || s.Finished() || s.EntityCount() != 0 {
		t.Fatal("fresh sim should be empty")
	}
}

func TestResetUnknownRace(t *testing.T) {
	s := mustSim(t, characterizationConfig(), characterizationCatalog(t))
	mustReset(t, s, 1, "human", "beast")
	before := s.Checksum()

	err := s.Reset(1, "human", "dragon")
	if !errors.Is(err, ErrUnknownRace) {
		t.Fatalf("err = %v, want ErrUnknownRace", err)
	}
	if s.Checksum() != before {
		t.Fatal("failed reset modified the match")
	}
}

func TestResetSpawnsRosters(t *testing.T) {
	s := mustSim(t, characterizationConfig(), characterizationCatalog(t))
	var spawns []Event
	s.SetEventHook(func(ev Event) { spawns = append(spawns, ev) })
	mustReset(t, s, 1337, "human", "beast")

	if s.EntityCount() != 40 || s.AliveCount(TeamLeft) != 20 || s.AliveCount(TeamRight) != 20 {
		t.Fatalf("entities=%d alive=%d/%d", s.EntityCount(), s.AliveCount(TeamLeft), s.AliveCount(TeamRight))
	}
	if s.RemainingCapacity(TeamLeft) != 12*2+8*3 {
		t.Fatalf("left capacity %v", s.RemainingCapacity(TeamLeft))
	}
	if len(spawns) != 4 || spawns[0].Type != EventSpawn {
		t.Fatalf("spawn events = %v", spawns)
	}

	u := s.Units()
	band := 1200 * TeamSpawnSideFraction
	for i := 0; i < s.EntityCount(); i++ {
		x, y := float64(u.X[i]), float64(u.Y[i])
		if u.Team[i] == TeamLeft && (x < 24 || x > band) {
			t.Fatalf("left unit %d spawned at x=%v", i, x)
		}
		if u.Team[i] == TeamRight && (x < 1200-band || x > 1176) {
			t.Fatalf("right unit %d spawned at x=%v", i, x)
		}
		if y < 32 || y > 700-32 {
			t.Fatalf("unit %d spawned at y=%v", i, y)
		}
		if u.Target[i] != NoTarget {
			t.Fatalf("unit %d spawned with a target", i)
		}
	}
	for i := 0; i < 12; i++ {
		if got := s.st.attackRange[i]; got != MeleeLockedRange {
			t.Fatalf("melee unit %d range %v", i, got)
		}
		if s.st.medium[i] != MediumDirect || s.st.nextAttack[i] < 0 || int(s.st.nextAttack[i]) >= 9 {
			t.Fatalf("melee unit %d medium=%d next=%d", i, s.st.medium[i], s.st.nextAttack[i])
		}
	}
	for i := 12; i < 20; i++ {
		if s.st.medium[i] != MediumProjectile || s.st.impact[i] != ImpactExplosive || s.st.splash[i] != 20 {
			t.Fatalf("mortar %d profile medium=%d impact=%d splash=%v", i, s.st.medium[i], s.st.impact[i], s.st.splash[i])
		}
	}
}

func TestEntityCeilingDropsSpawnsSilently(t *testing.T) {
	cfg := characterizationConfig()
	cfg.MaxEntities = 15
	s := mustSim(t, cfg, characterizationCatalog(t))
	mustReset(t, s, 1, "human", "beast")

	if s.EntityCount() != 15 || s.AliveCount(TeamRight) != 0 {
		t.Fatalf("entities=%d right alive=%d", s.EntityCount(), s.AliveCount(TeamRight))
	}
	s.Step()
	if !s.Finished() || s.Winner() != int(TeamLeft) {
		t.Fatalf("expected left win by wipe, got winner=%d", s.Winner())
	}
}

func runTimeline(t *testing.T, s *Sim, seed uint32, left, right string) MatchResult {
	t.Helper()
	res, err := RunMatch(s, MatchOptions{Seed: seed, Left: left, Right: right, MaxSteps: 650, ChecksumEvery: 25})
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	return res
}

func TestDeterministicReplay(t *testing.T) {
	pairs := [][2]string{{"human", "beast"}, {"alien", "human"}, {"beast", "alien"}}
	for _, p := range pairs {
		a := runTimeline(t, mustSim(t, characterizationConfig(), characterizationCatalog(t)), 1337, p[0], p[1])
		fresh := mustSim(t, characterizationConfig(), characterizationCatalog(t))
		b := runTimeline(t, fresh, 1337, p[0], p[1])
		if !slices.Equal(a.Timeline, b.Timeline) {
			t.Fatalf("%v: timelines differ\n%v\n%v", p, a.Timeline, b.Timeline)
		}
		// Reusing a sim must not leak state from the previous match.
		c := runTimeline(t, fresh, 1337, p[0], p[1])
		ja, _ := json.Marshal(a)
		jc, _ := json.Marshal(c)
		if string(ja) != string(jc) {
			t.Fatalf("%v: reused sim diverged\n%s\n%s", p, ja, jc)
		}
	}
}

func TestDeterministicReplayDefaultCatalog(t *testing.T) {
	cfg := config.SimConfig{
		MaxEntities: 1200,
		ArenaWidth:  2400,
		ArenaHeight: 1400,
		BucketSize:  120,
		MaxTicks:    300,
		CoreHpStart: 2000,
	}
	a := runTimeline(t, mustSim(t, cfg, nil), 42, "alien", "beast")
	b := runTimeline(t, mustSim(t, cfg, nil), 42, "alien", "beast")
	if !slices.Equal(a.Timeline, b.Timeline) || a.Checksum != b.Checksum {
		t.Fatalf("timelines differ\n%v\n%v", a.Timeline, b.Timeline)
	}
	if !a.Finished || a.Tick > 300 {
		t.Fatalf("match did not resolve by the tick cap: tick=%d", a.Tick)
	}
}

func TestSeedsChangeOutcome(t *testing.T) {
	s := mustSim(t, characterizationConfig(), characterizationCatalog(t))
	mustReset(t, s, 1, "human", "beast")
	a := s.Checksum()
	mustReset(t, s, 2, "human", "beast")
	if s.Checksum() == a {
		t.Fatal("different seeds produced identical spawn layouts")
	}
}

func TestInvariantsHoldThroughMatch(t *testing.T) {
	s := mustSim(t, characterizationConfig(), characterizationCatalog(t))
	mustReset(t, s, 2024, "alien", "human")
	cfg := s.Config()
	prevAlive := [2]int{s.AliveCount(TeamLeft), s.AliveCount(TeamRight)}
	for !s.Finished() {
		s.Step()
		u := s.Units()
		for i := range u.Alive {
			if u.Alive[i] == 0 {
				continue
			}
			x, y := float64(u.X[i]), float64(u.Y[i])
			if x < cfg.BasePadding || x > cfg.ArenaWidth-cfg.BasePadding || y < cfg.BasePadding || y > cfg.ArenaHeight-cfg.BasePadding {
				t.Fatalf("tick %d: unit %d left the arena (%v,%v)", s.Tick(), i, x, y)
			}
			if tg := u.Target[i]; tg != NoTarget && u.Team[tg] == u.Team[i] {
				t.Fatalf("tick %d: unit %d targets a friend", s.Tick(), i)
			}
		}
		for _, team := range []Team{TeamLeft, TeamRight} {
			if s.AliveCount(team) > prevAlive[team] {
				t.Fatalf("tick %d: alive count grew", s.Tick())
			}
			prevAlive[team] = s.AliveCount(team)
		}
		if s.Tick() > cfg.MaxTicks {
			t.Fatalf("ran past the tick cap")
		}
	}
	if s.Winner() != int(TeamLeft) && s.Winner() != int(TeamRight) {
		t.Fatalf("finished without a winner")
	}
}

// TestCharacterizationOutcomes pins the end state of two seeded matches on
// the small characterization table. Any change to movement, targeting or
// damage math that moves these numbers must update them deliberately.
func TestCharacterizationOutcomes(t *testing.T) {
	cases := []struct {
		name        string
		seed        uint32
		left, right string
		tick        int
		winner      int
		core        [2]float64
		alive       [2]int
		capacity    [2]float64
	}{
		{"human vs beast", 1337, "human", "beast", 327, 0, [2]float64{1200, 1200}, [2]int{12, 0}, [2]float64{30, 0}},
		{"alien vs human", 2024, "alien", "human", 553, 0, [2]float64{1198, 1200}, [2]int{4, 0}, [2]float64{12, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustSim(t, characterizationConfig(), characterizationCatalog(t))
			res, err := RunMatch(s, MatchOptions{Seed: tc.seed, Left: tc.left, Right: tc.right, MaxSteps: 650, ChecksumEvery: 100})
			if err != nil {
				t.Fatalf("RunMatch: %v", err)
			}
			if !res.Finished {
				t.Fatalf("match unfinished at tick %d", res.Tick)
			}
			if res.Tick != tc.tick || res.Winner != tc.winner {
				t.Fatalf("tick=%d winner=%d, want tick=%d winner=%d", res.Tick, res.Winner, tc.tick, tc.winner)
			}
			if res.CoreHP != tc.core || res.Alive != tc.alive || res.RemainingCapacity != tc.capacity {
				t.Fatalf("core=%v alive=%v capacity=%v, want core=%v alive=%v capacity=%v",
					res.CoreHP, res.Alive, res.RemainingCapacity, tc.core, tc.alive, tc.capacity)
			}
			if res.EntityCount != 40 {
				t.Fatalf("entity count = %d, want 40", res.EntityCount)
			}
			// reset, every 100 ticks, and the finishing tick
			if want := 1 + tc.tick/100 + 1; len(res.Timeline) != want {
				t.Fatalf("timeline has %d samples, want %d", len(res.Timeline), want)
			}
		})
	}
}
