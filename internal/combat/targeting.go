package combat

import "math"

func (s *Sim) canHit(attacker, defender int) bool {
	return s.st.mask[attacker].CanHit(s.st.layer[defender])
}

// isTargetValid reports whether attacker may keep target: alive, hostile,
// hittable and inside the leash.
func (s *Sim) isTargetValid(attacker, target int) bool {
	st := s.st
	if !s.validSlot(target) || st.alive[target] == 0 {
		return false
	}
	if st.team[attacker] == st.team[target] || !s.canHit(attacker, target) {
		return false
	}
	leash := math.Max(float64(st.attackRange[attacker])*LeashRangeFactor, LeashMin)
	return st.distSq(attacker, target) <= leash*leash
}

// acquireTarget returns the best enemy within range or, failing that, the
// best enemy anywhere on the map. NoTarget means nothing is hittable.
func (s *Sim) acquireTarget(attacker int) int {
	st := s.st
	x, y := st.pos(attacker)
	r := float64(st.attackRange[attacker])
	rangeSq := r * r
	rings := s.grid.radiusCells(r)
	cx, cy := s.grid.cellX(x), s.grid.cellY(y)
	enemy := st.team[attacker].Enemy()
	mask := st.mask[attacker]

	best := NoTarget
	consider := func(maxSq float64) func(i int) bool {
		return func(i int) bool {
			if s.candidateBetter(attacker, i, maxSq, x, y, best) {
				best = i
			}
			return true
		}
	}

	inRange := consider(rangeSq)
	for _, l := range [...]Layer{LayerGrounded, LayerFlying} {
		if mask.CanHit(l) {
			s.grid.visitNear(groupOf(enemy, l), cx, cy, rings, inRange)
		}
	}
	if best != NoTarget {
		return best
	}

	anywhere := consider(math.MaxFloat64)
	for _, l := range [...]Layer{LayerGrounded, LayerFlying} {
		if mask.CanHit(l) {
			s.grid.visitAll(groupOf(enemy, l), func(i int) { anywhere(i) })
		}
	}
	return best
}

// candidateBetter orders candidates by score, then hp+shield, then spawn
// order. The first eligible candidate always wins against NoTarget.
func (s *Sim) candidateBetter(attacker, cand int, maxSq, x, y float64, best int) bool {
	st := s.st
	if st.alive[cand] == 0 || st.team[cand] == st.team[attacker] || !s.canHit(attacker, cand) {
		return false
	}
	dx := float64(st.x[cand]) - x
	dy := float64(st.y[cand]) - y
	d := dx*dx + dy*dy
	if d > maxSq {
		return false
	}
	if best < 0 {
		return true
	}

	bx := float64(st.x[best]) - x
	by := float64(st.y[best]) - y
	candScore := s.candidateScore(attacker, cand, d)
	bestScore := s.candidateScore(attacker, best, bx*bx+by*by)
	if candScore != bestScore {
		return candScore < bestScore
	}
	if ch, bh := st.effectiveHP(cand), st.effectiveHP(best); ch != bh {
		return ch < bh
	}
	return st.spawnOrder[cand] < st.spawnOrder[best]
}

// candidateScore is squared distance, inflated for melee attackers once the
// candidate's perimeter is saturated.
func (s *Sim) candidateScore(attacker, cand int, distSq float64) float64 {
	if !s.isMelee(attacker) {
		return distSq
	}
	overflow := max(0, s.pressure(cand)-s.meleeSoftCap(attacker, cand)+1)
	penalty := float64(overflow) * MeleeSaturationPenalty
	return distSq + penalty*penalty
}

// meleeSoftCap estimates how many attackers of this size fit around the
// candidate at melee range.
func (s *Sim) meleeSoftCap(attacker, cand int) int {
	st := s.st
	targetBody := math.Max(1, float64(st.bodyRadius[cand]))
	reach := math.Max(1, float64(st.attackRange[attacker]))
	body := math.Max(1, float64(st.bodyRadius[attacker]))
	circumference := 2 * math.Pi * (targetBody + reach)
	slot := 2 * (body + SeparationSlotPadding)
	raw := int(math.Floor(circumference / math.Max(1, slot)))
	return clampInt(raw, 1, MeleeSoftCapMax)
}
