package combat

// applyDamage drains each living entity's pending damage into shield first,
// then hp. Entities at or below zero hp die and drop their target.
func (s *Sim) applyDamage() {
	st := s.st
	for i := 0; i < st.entityCount; i++ {
		if st.alive[i] == 0 {
			continue
		}
		dmg := float64(st.pendingDamage[i])
		if dmg <= 0 {
			continue
		}
		if sh := float64(st.shield[i]); sh > 0 {
			absorb := min(sh, dmg)
			st.shield[i] = float32(sh - absorb)
			dmg -= absorb
		}
		if dmg > 0 {
			st.hp[i] = float32(float64(st.hp[i]) - dmg)
		}
		if st.hp[i] <= 0 {
			st.alive[i] = 0
			st.target[i] = NoTarget
		}
	}
}
