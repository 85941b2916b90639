package combat

import "math"

// spawnRace places every unit of roster inside team's spawn band. Each unit
// consumes two RNG draws for its position and, if it fits, one more for its
// cooldown offset.
func (s *Sim) spawnRace(team Team, roster []Archetype) {
	a := &s.arena
	band := a.width * TeamSpawnSideFraction
	rawMin, rawMax := 0.0, band
	if team == TeamRight {
		rawMin, rawMax = a.width-band, a.width
	}
	minX := a.clampX(rawMin)
	spanX := math.Max(1, a.clampX(rawMax)-minX)
	minY := a.padding + SpawnEdgeInset
	spanY := math.Max(1, a.height-(a.padding+SpawnEdgeInset)*2)

	for k := range roster {
		arch := &roster[k]
		placed := 0
		for n := 0; n < arch.Count; n++ {
			x := minX + s.rng.NextFloat()*spanX
			y := minY + s.rng.NextFloat()*spanY
			if s.spawnUnit(team, arch, a.clampX(x), a.clampY(y)) {
				placed++
			}
		}
		if arch.Count > 0 {
			s.emit(EventSpawn, map[string]any{
				"team":    team.String(),
				"unit":    arch.Key,
				"count":   placed,
				"dropped": arch.Count - placed,
			})
		}
	}
}

// spawnUnit fills the next entity slot. It reports false once the entity
// ceiling is reached.
func (s *Sim) spawnUnit(team Team, arch *Archetype, x, y float64) bool {
	st := s.st
	if st.entityCount >= len(st.alive) {
		return false
	}
	prof := arch.Profile()
	i := st.entityCount
	st.entityCount++

	st.alive[i] = 1
	st.team[i] = team
	st.layer[i] = arch.Layer
	st.x[i], st.y[i] = float32(x), float32(y)
	st.hp[i] = float32(arch.HP)
	st.shield[i] = float32(arch.Shield)
	st.armor[i] = float32(arch.Armor)
	st.damage[i] = float32(arch.Damage)
	st.attackRange[i] = float32(arch.AttackRange())
	st.speed[i] = float32(arch.Speed)
	st.mask[i] = arch.Mask
	st.cooldown[i] = uint16(arch.CooldownTicks)
	st.nextAttack[i] = int32(math.Floor(s.rng.NextFloat() * float64(arch.CooldownTicks)))
	st.target[i] = NoTarget
	st.capacity[i] = float32(arch.Capacity)
	st.renderSize[i] = float32(arch.RenderSize)
	st.bodyRadius[i] = float32(arch.BodyRadius())
	st.spawnOrder[i] = st.spawnCounter
	st.spawnCounter++
	st.medium[i] = prof.Medium
	st.impact[i] = prof.Impact
	st.splash[i] = float32(prof.SplashRadius)
	st.projSpeed[i] = float32(prof.ProjectileSpeed)
	st.hitRadius[i] = float32(prof.HitRadius)
	s.grid.next[i] = -1
	return true
}
