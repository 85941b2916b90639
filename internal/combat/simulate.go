package combat

import "encoding/json"

type MatchOptions struct {
	Seed  uint32
	Left  string
	Right string
	// MaxSteps bounds the loop independently of the configured MaxTicks.
	// Zero means run until finished.
	MaxSteps int
	// ChecksumEvery samples the checksum timeline every N ticks. The
	// initial and final checksums are always recorded.
	ChecksumEvery int
	Record        bool
	// OnFrame runs after Reset and after every Step.
	OnFrame func(*Sim)
}

type MatchResult struct {
	Seed              uint32     `json:"seed"`
	Left              string     `json:"left"`
	Right             string     `json:"right"`
	Tick              int        `json:"tick"`
	Finished          bool       `json:"finished"`
	Winner            int        `json:"winner"`
	CoreHP            [2]float64 `json:"core_hp"`
	Alive             [2]int     `json:"alive"`
	RemainingCapacity [2]float64 `json:"remaining_capacity"`
	EntityCount       int        `json:"entity_count"`
	Checksum          uint32     `json:"checksum"`
	Timeline          []uint32   `json:"timeline"`
	Events            []Event    `json:"events,omitempty"`
}

// RunMatch resets sim and steps it to completion. The sim's event hook is
// replaced for the duration of the run when Record is set.
func RunMatch(sim *Sim, opt MatchOptions) (MatchResult, error) {
	var events []Event
	if opt.Record {
		prev := sim.onEvent
		sim.SetEventHook(func(ev Event) { events = append(events, ev) })
		defer sim.SetEventHook(prev)
	}
	if err := sim.Reset(opt.Seed, opt.Left, opt.Right); err != nil {
		return MatchResult{}, err
	}
	if opt.OnFrame != nil {
		opt.OnFrame(sim)
	}

	timeline := []uint32{sim.Checksum()}
	sampled := sim.Tick()
	for !sim.Finished() && (opt.MaxSteps <= 0 || sim.Tick() < opt.MaxSteps) {
		sim.Step()
		if opt.OnFrame != nil {
			opt.OnFrame(sim)
		}
		if sim.Finished() || (opt.ChecksumEvery > 0 && sim.Tick()%opt.ChecksumEvery == 0) {
			timeline = append(timeline, sim.Checksum())
			sampled = sim.Tick()
		}
	}
	if sampled != sim.Tick() {
		timeline = append(timeline, sim.Checksum())
	}

	res := Summarize(sim, opt.Seed)
	res.Timeline = timeline
	res.Events = events
	return res, nil
}

// Summarize reports the sim's current aggregates. seed is echoed as given.
func Summarize(sim *Sim, seed uint32) MatchResult {
	left, right := sim.Races()
	res := MatchResult{
		Seed:        seed,
		Left:        left,
		Right:       right,
		Tick:        sim.Tick(),
		Finished:    sim.Finished(),
		Winner:      sim.Winner(),
		EntityCount: sim.EntityCount(),
		Checksum:    sim.Checksum(),
	}
	for _, t := range [...]Team{TeamLeft, TeamRight} {
		res.CoreHP[t] = sim.CoreHP(t)
		res.Alive[t] = sim.AliveCount(t)
		res.RemainingCapacity[t] = sim.RemainingCapacity(t)
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
