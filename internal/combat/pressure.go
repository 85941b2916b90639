package combat

// Melee pressure counts how many direct-medium attackers currently point at
// each entity slot. Only melee attackers contribute; counts saturate at
// maxPressure and never drop below zero.

func (s *Sim) isMelee(i int) bool { return s.st.medium[i] == MediumDirect }

func (s *Sim) validSlot(i int) bool { return i >= 0 && i < s.st.entityCount }

// seedPressure rebuilds the counts from the current target assignments.
// Assignments to dead slots still count until the attacker re-targets.
func (s *Sim) seedPressure() {
	st := s.st
	clear(st.meleePressure[:st.entityCount])
	for i := 0; i < st.entityCount; i++ {
		if st.alive[i] == 0 || !s.isMelee(i) {
			continue
		}
		s.incPressure(int(st.target[i]))
	}
}

func (s *Sim) onTargetChanged(attacker, prev, next int) {
	if !s.isMelee(attacker) || prev == next {
		return
	}
	s.decPressure(prev)
	s.incPressure(next)
}

func (s *Sim) onAttackerRemoved(attacker, prev int) {
	if !s.isMelee(attacker) {
		return
	}
	s.decPressure(prev)
}

func (s *Sim) pressure(target int) int {
	if !s.validSlot(target) {
		return 0
	}
	return int(s.st.meleePressure[target])
}

func (s *Sim) incPressure(target int) {
	if !s.validSlot(target) {
		return
	}
	if v := s.st.meleePressure[target]; v < maxPressure {
		s.st.meleePressure[target] = v + 1
	}
}

func (s *Sim) decPressure(target int) {
	if !s.validSlot(target) {
		return
	}
	if v := s.st.meleePressure[target]; v > 0 {
		s.st.meleePressure[target] = v - 1
	}
}
