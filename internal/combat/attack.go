package combat

import "math"

// mitigate applies armor; an attack always deals at least 1.
func (s *Sim) mitigate(raw float64, defender int) float64 {
	d := raw - float64(s.st.armor[defender])
	if d > 1 {
		return d
	}
	return 1
}

// resolveAttack fires attacker's weapon at target. Direct weapons land this
// tick; projectile weapons spawn a projectile aimed at the target's
// current position.
func (s *Sim) resolveAttack(attacker, target int) {
	st := s.st
	team := st.team[attacker]
	tx, ty := st.pos(target)
	raw := float64(st.damage[attacker])
	explosive := st.impact[attacker] == ImpactExplosive

	if st.medium[attacker] == MediumDirect {
		if explosive {
			s.explodeAt(team, st.mask[attacker], tx, ty, raw, float64(st.splash[attacker]))
			return
		}
		st.addDamage(target, s.mitigate(raw, target))
		return
	}

	ax, ay := st.pos(attacker)
	s.launch(launch{
		team:      team,
		mask:      st.mask[attacker],
		x:         ax,
		y:         ay,
		aimX:      tx,
		aimY:      ty,
		damage:    raw,
		explosive: explosive,
		splash:    float64(st.splash[attacker]),
		hitRadius: float64(st.hitRadius[attacker]),
		speed:     float64(st.projSpeed[attacker]),
	})
}

// hitNearest damages the single closest hittable enemy within hitRadius of
// the impact point. Ties go to the weaker unit, then the older one.
func (s *Sim) hitNearest(team Team, mask AttackMask, ix, iy, raw, hitRadius float64) {
	st := s.st
	r := math.Max(1, hitRadius)
	rSq := r * r
	cx, cy, rings := s.grid.cellX(ix), s.grid.cellY(iy), s.grid.radiusCells(r)
	enemy := team.Enemy()

	best, bestSq := NoTarget, 0.0
	visit := func(i int) bool {
		if st.alive[i] == 0 {
			return true
		}
		dx := float64(st.x[i]) - ix
		dy := float64(st.y[i]) - iy
		d := dx*dx + dy*dy
		if d > rSq {
			return true
		}
		if best < 0 || d < bestSq ||
			(d == bestSq && impactTieBreak(st, i, best)) {
			best, bestSq = i, d
		}
		return true
	}
	for _, l := range [...]Layer{LayerGrounded, LayerFlying} {
		if mask.CanHit(l) {
			s.grid.visitNear(groupOf(enemy, l), cx, cy, rings, visit)
		}
	}
	if best >= 0 {
		st.addDamage(best, s.mitigate(raw, best))
	}
}

func impactTieBreak(st *state, cand, best int) bool {
	if ch, bh := st.effectiveHP(cand), st.effectiveHP(best); ch != bh {
		return ch < bh
	}
	return st.spawnOrder[cand] < st.spawnOrder[best]
}

// explodeAt spawns the cosmetic effect and damages every hittable enemy
// within the splash radius.
func (s *Sim) explodeAt(team Team, mask AttackMask, ix, iy, raw, splash float64) {
	s.spawnExplosion(team, ix, iy, splash)

	st := s.st
	r := math.Max(1, splash)
	rSq := r * r
	cx, cy, rings := s.grid.cellX(ix), s.grid.cellY(iy), s.grid.radiusCells(r)
	enemy := team.Enemy()
	visit := func(i int) bool {
		if st.alive[i] == 0 {
			return true
		}
		dx := float64(st.x[i]) - ix
		dy := float64(st.y[i]) - iy
		if dx*dx+dy*dy <= rSq {
			st.addDamage(i, s.mitigate(raw, i))
		}
		return true
	}
	for _, l := range [...]Layer{LayerGrounded, LayerFlying} {
		if mask.CanHit(l) {
			s.grid.visitNear(groupOf(enemy, l), cx, cy, rings, visit)
		}
	}
}

// coreDamage is what unit i deals to a core on breach. Heavy units hit
// harder per point of capacity.
func coreDamage(capacity float64) float64 {
	if capacity >= CoreDamageHeavyCapacity {
		return math.Floor(capacity * CoreDamageHeavyFactor)
	}
	return math.Floor(capacity * CoreDamageLightFactor)
}

// breach kills unit i and damages the enemy core when i stands inside it.
func (s *Sim) breach(i int) bool {
	st := s.st
	team := st.team[i]
	cx, cy := s.enemyCore(team)
	x, y := st.pos(i)
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > s.arena.coreRadius*s.arena.coreRadius {
		return false
	}
	dmg := coreDamage(float64(st.capacity[i]))
	st.coreHp[team.Enemy()] -= dmg
	st.alive[i] = 0
	st.target[i] = NoTarget
	s.emit(EventCoreBreach, map[string]any{
		"unit":   i,
		"team":   team.String(),
		"damage": dmg,
		"coreHp": st.coreHp[team.Enemy()],
	})
	return true
}
