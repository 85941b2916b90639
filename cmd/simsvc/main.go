package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"tugsim/internal/combat"
	"tugsim/internal/config"
	"tugsim/internal/replay"
)

func main() {
	var cfgDir, catalogPath, envPath, out, replayPath, left, right string
	var seed uint
	var n, workers, every int
	var record bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&catalogPath, "catalog", "", "archetype table (.csv/.yaml) overriding the config dir")
	flag.StringVar(&envPath, "env", ".env", "env file with TUGSIM_* overrides")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&replayPath, "replay", "", "msgpack replay file (single mode only)")
	flag.StringVar(&left, "left", "human", "left race")
	flag.StringVar(&right, "right", "beast", "right race")
	flag.UintVar(&seed, "seed", 1337, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "batch workers")
	flag.IntVar(&every, "every", 100, "checksum timeline interval in ticks")
	flag.BoolVar(&record, "log", true, "save full event log when n==1")
	flag.Parse()

	if err := config.LoadEnv(envPath); err != nil {
		log.Fatalf("env: %v", err)
	}
	simCfg, archetypes, err := config.LoadAll(cfgDir)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := config.ApplyEnv(simCfg); err != nil {
		log.Fatalf("env: %v", err)
	}
	if catalogPath != "" {
		if archetypes, err = config.LoadArchetypes(catalogPath); err != nil {
			log.Fatalf("catalog: %v", err)
		}
	}
	catalog, err := loadCatalog(archetypes)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	if n <= 1 {
		runSingle(*simCfg, catalog, uint32(seed), left, right, every, record, out, replayPath)
		return
	}
	runBatch(*simCfg, catalog, uint32(seed), left, right, n, workers, out)
}

func loadCatalog(ac *config.ArchetypesConfig) (*combat.Catalog, error) {
	if ac == nil {
		return combat.DefaultCatalog()
	}
	return combat.NewCatalog(ac)
}

func runSingle(cfg config.SimConfig, catalog *combat.Catalog, seed uint32, left, right string, every int, record bool, out, replayPath string) {
	sim, err := combat.New(cfg, catalog)
	if err != nil {
		log.Fatalf("sim: %v", err)
	}

	opt := combat.MatchOptions{Seed: seed, Left: left, Right: right, ChecksumEvery: every, Record: record}
	var w *replay.Writer
	var werr error
	if replayPath != "" {
		f, err := os.Create(replayPath)
		if err != nil {
			log.Fatalf("replay: %v", err)
		}
		defer f.Close()
		rc := sim.Config()
		w, err = replay.NewWriter(f, replay.Header{
			Seed: seed, Left: left, Right: right, StepMs: rc.StepMs,
			ArenaWidth: rc.ArenaWidth, ArenaHeight: rc.ArenaHeight, CoreRadius: rc.CoreRadius,
		})
		if err != nil {
			log.Fatalf("replay: %v", err)
		}
		opt.OnFrame = func(s *combat.Sim) {
			if werr != nil {
				return
			}
			fr := replay.Capture(s)
			werr = w.WriteFrame(&fr)
		}
	}

	res, err := combat.RunMatch(sim, opt)
	if err != nil {
		log.Fatalf("match: %v", err)
	}
	if w != nil {
		if werr != nil {
			log.Fatalf("replay: %v", werr)
		}
		if err := w.Flush(); err != nil {
			log.Fatalf("replay: %v", err)
		}
		log.Printf("replay: %d frames -> %s", w.Frames(), replayPath)
	}
	if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	fmt.Printf("Single match finished. %s vs %s winner=%d tick=%d checksum=%08x -> %s\n",
		left, right, res.Winner, res.Tick, res.Checksum, out)
}

func runBatch(cfg config.SimConfig, catalog *combat.Catalog, seed uint32, left, right string, n, workers int, out string) {
	if _, err := combat.ResolveConfig(cfg); err != nil {
		log.Fatalf("sim: %v", err)
	}
	if _, ok := catalog.Race(left); !ok {
		log.Fatalf("left: %v %q", combat.ErrUnknownRace, left)
	}
	if _, ok := catalog.Race(right); !ok {
		log.Fatalf("right: %v %q", combat.ErrUnknownRace, right)
	}
	if workers < 1 {
		workers = 1
	}

	type stat struct {
		Wins    [2]int
		SumTick float64
		SumCore [2]float64
		Reasons map[string]int
	}
	st := stat{Reasons: map[string]int{}}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// one Sim per worker; Reset reuses its pools
			sim, err := combat.New(cfg, catalog)
			if err != nil {
				log.Fatalf("sim: %v", err)
			}
			var reason string
			sim.SetEventHook(func(ev combat.Event) {
				if ev.Type == combat.EventFinish {
					reason, _ = ev.Payload["reason"].(string)
				}
			})
			for i := range jobs {
				res, err := combat.RunMatch(sim, combat.MatchOptions{
					Seed:  seed + uint32(i),
					Left:  left,
					Right: right,
				})
				if err != nil {
					log.Fatalf("match %d: %v", i, err)
				}

				mu.Lock()
				st.Wins[res.Winner]++
				st.SumTick += float64(res.Tick)
				st.SumCore[0] += res.CoreHP[0]
				st.SumCore[1] += res.CoreHP[1]
				st.Reasons[reason]++
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	runs := float64(n)
	summary := map[string]any{
		"run_id":    uuid.NewString(),
		"runs":      n,
		"seed":      seed,
		"left":      left,
		"right":     right,
		"win_rate":  map[string]float64{"left": float64(st.Wins[0]) / runs, "right": float64(st.Wins[1]) / runs},
		"avg_ticks": st.SumTick / runs,
		"avg_core_hp": map[string]float64{
			"left":  st.SumCore[0] / runs,
			"right": st.SumCore[1] / runs,
		},
		"finish_reasons": st.Reasons,
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}
