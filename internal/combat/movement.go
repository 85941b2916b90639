package combat

import "math"

var (
	overlapDirX = [8]float64{1, -1, 0, 0, 0.7071, -0.7071, 0.7071, -0.7071}
	overlapDirY = [8]float64{0, 0, 1, -1, 0.7071, 0.7071, -0.7071, -0.7071}
)

func (s *Sim) enemyCore(t Team) (float64, float64) {
	e := t.Enemy()
	return s.arena.coreX[e], s.arena.coreY[e]
}

// moveToward steps unit i toward (tx, ty), blending the goal direction with
// same-group separation. The step never overshoots the goal.
func (s *Sim) moveToward(i int, tx, ty float64) {
	st := s.st
	x, y := st.pos(i)
	to := Vec2{tx, ty}.Sub(Vec2{x, y})
	if to.LenSq() <= MovementEpsilonSq {
		return
	}
	goalDist := to.Len()
	goal := to.Scale(1 / goalDist)

	sep := s.separation(i)
	steer := goal.Scale(GoalWeight).Add(sep.Scale(SeparationWeight))
	steerSq := steer.LenSq()
	if steerSq <= MovementEpsilonSq {
		steer = goal
		steerSq = 1
	}

	step := math.Min(float64(st.speed[i]), goalDist)
	k := step / math.Sqrt(steerSq)
	st.x[i] = float32(s.arena.clampX(x + steer.X*k))
	st.y[i] = float32(s.arena.clampY(y + steer.Y*k))
}

// separation averages push vectors away from same-team same-layer
// neighbours that sit closer than their combined bodies plus padding. It
// gives up after SeparationNeighborCap neighbours.
func (s *Sim) separation(i int) Vec2 {
	st := s.st
	body := float64(st.bodyRadius[i])
	radius := math.Max(body*SeparationRangeFactor, body+SeparationSlotPadding)
	radiusSq := radius * radius
	x, y := st.pos(i)

	var sum Vec2
	contributions, processed := 0, 0
	s.grid.visitNear(groupOf(st.team[i], st.layer[i]), s.grid.cellX(x), s.grid.cellY(y), s.grid.radiusCells(radius), func(j int) bool {
		if j == i || st.alive[j] == 0 {
			return true
		}
		processed++
		if processed > SeparationNeighborCap {
			return false
		}
		dx := x - float64(st.x[j])
		dy := y - float64(st.y[j])
		d := dx*dx + dy*dy
		minGap := body + float64(st.bodyRadius[j]) + SeparationSlotPadding
		if d > radiusSq || d > minGap*minGap {
			return true
		}
		if d > MovementEpsilonSq {
			dist := math.Sqrt(d)
			push := (minGap - dist) / math.Max(1e-4, minGap)
			sum.X += (dx / dist) * push
			sum.Y += (dy / dist) * push
		} else {
			dir := overlapDir(st.spawnOrder[i], st.spawnOrder[j])
			sum.X += overlapDirX[dir]
			sum.Y += overlapDirY[dir]
		}
		contributions++
		return true
	})

	if contributions == 0 {
		return Vec2{}
	}
	return sum.Scale(1 / float64(contributions))
}

// overlapDir picks one of eight fixed directions for two units sharing a
// point, so coincident units split apart deterministically.
func overlapDir(a, b int32) int {
	h := uint32(a+1)*73856093 ^ uint32(b+1)*19349663
	return int(h & 7)
}
