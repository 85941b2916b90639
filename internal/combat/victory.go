package combat

// refreshStats recounts alive units and remaining capacity per side.
func (s *Sim) refreshStats() {
	st := s.st
	var alive [2]int
	var capacity [2]float64
	for i := 0; i < st.entityCount; i++ {
		if st.alive[i] == 0 {
			continue
		}
		t := st.team[i]
		alive[t]++
		capacity[t] += float64(st.capacity[i])
	}
	st.aliveCount = alive
	st.remainingCapacity = capacity
}

// resolveVictory checks, in order: a destroyed core, both armies wiped, one
// army wiped, and the tick cap. Ties go to the left side.
func (s *Sim) resolveVictory() {
	st := s.st
	switch {
	case st.coreHp[TeamLeft] <= 0 || st.coreHp[TeamRight] <= 0:
		s.finish(s.byCoreThenCapacity(), "core_destroyed")
	case st.aliveCount[TeamLeft] == 0 && st.aliveCount[TeamRight] == 0:
		if st.coreHp[TeamLeft] >= st.coreHp[TeamRight] {
			s.finish(TeamLeft, "mutual_wipe")
		} else {
			s.finish(TeamRight, "mutual_wipe")
		}
	case st.aliveCount[TeamLeft] == 0:
		s.finish(TeamRight, "wipe")
	case st.aliveCount[TeamRight] == 0:
		s.finish(TeamLeft, "wipe")
	case st.tick >= s.cfg.MaxTicks:
		s.finish(s.byCoreThenCapacity(), "timeout")
	}
}

func (s *Sim) byCoreThenCapacity() Team {
	st := s.st
	switch {
	case st.coreHp[TeamLeft] > st.coreHp[TeamRight]:
		return TeamLeft
	case st.coreHp[TeamRight] > st.coreHp[TeamLeft]:
		return TeamRight
	case st.remainingCapacity[TeamLeft] >= st.remainingCapacity[TeamRight]:
		return TeamLeft
	default:
		return TeamRight
	}
}

func (s *Sim) finish(winner Team, reason string) {
	st := s.st
	st.winner = int(winner)
	st.finished = true
	s.emit(EventFinish, map[string]any{
		"winner": winner.String(),
		"reason": reason,
		"coreHp": []float64{st.coreHp[TeamLeft], st.coreHp[TeamRight]},
		"alive":  []int{st.aliveCount[TeamLeft], st.aliveCount[TeamRight]},
	})
}
