package combat

import "math"

type launch struct {
	team       Team
	mask       AttackMask
	x, y       float64
	aimX, aimY float64
	damage     float64
	explosive  bool
	splash     float64
	hitRadius  float64
	speed      float64
}

func (l *launch) impact(s *Sim) {
	if l.explosive {
		s.explodeAt(l.team, l.mask, l.aimX, l.aimY, l.damage, l.splash)
		return
	}
	s.hitNearest(l.team, l.mask, l.aimX, l.aimY, l.damage, l.hitRadius)
}

// launch takes the lowest free projectile slot. Point-blank shots resolve
// immediately; a full pool drops the shot.
func (s *Sim) launch(l launch) {
	dx, dy := l.aimX-l.x, l.aimY-l.y
	distSq := dx*dx + dy*dy
	if distSq <= MovementEpsilonSq {
		l.impact(s)
		return
	}

	p := &s.st.projectiles
	slot := freeSlot(p.active)
	if slot < 0 {
		return
	}
	dist := math.Sqrt(distSq)
	inv := 1 / dist
	speed := math.Max(ProjectileMinStep, l.speed)

	p.active[slot] = 1
	p.team[slot] = l.team
	p.mask[slot] = l.mask
	p.explosive[slot] = boolByte(l.explosive)
	p.x[slot], p.y[slot] = float32(l.x), float32(l.y)
	p.prevX[slot], p.prevY[slot] = float32(l.x), float32(l.y)
	p.aimX[slot], p.aimY[slot] = float32(l.aimX), float32(l.aimY)
	p.velX[slot] = float32(dx * inv * speed)
	p.velY[slot] = float32(dy * inv * speed)
	p.step[slot] = float32(speed)
	p.remaining[slot] = float32(dist)
	p.damage[slot] = float32(l.damage)
	p.splash[slot] = float32(l.splash)
	p.hitRadius[slot] = float32(l.hitRadius)
}

// stepProjectiles advances every active projectile by one step. Those that
// reach their aim point snap to it, resolve and free their slot.
func (s *Sim) stepProjectiles() {
	p := &s.st.projectiles
	for i := range p.active {
		if p.active[i] == 0 {
			continue
		}
		p.prevX[i], p.prevY[i] = p.x[i], p.y[i]

		if p.remaining[i] <= p.step[i] {
			p.x[i], p.y[i] = p.aimX[i], p.aimY[i]
			l := launch{
				team:      p.team[i],
				mask:      p.mask[i],
				aimX:      float64(p.aimX[i]),
				aimY:      float64(p.aimY[i]),
				damage:    float64(p.damage[i]),
				explosive: p.explosive[i] != 0,
				splash:    float64(p.splash[i]),
				hitRadius: float64(p.hitRadius[i]),
			}
			l.impact(s)
			p.active[i] = 0
			p.remaining[i] = 0
			continue
		}

		p.x[i] = float32(float64(p.x[i]) + float64(p.velX[i]))
		p.y[i] = float32(float64(p.y[i]) + float64(p.velY[i]))
		p.remaining[i] = float32(float64(p.remaining[i]) - float64(p.step[i]))
	}
}

func (s *Sim) spawnExplosion(team Team, x, y, splash float64) {
	e := &s.st.explosions
	slot := freeSlot(e.active)
	if slot < 0 {
		return
	}
	e.active[slot] = 1
	e.team[slot] = team
	e.x[slot], e.y[slot] = float32(x), float32(y)
	e.radius[slot] = float32(math.Max(ExplosionVisualRadiusMin, splash*ExplosionVisualRadiusScale))
	e.life[slot] = ExplosionLifetimeTicks
	e.lifeMax[slot] = ExplosionLifetimeTicks
}

func (s *Sim) stepExplosions() {
	e := &s.st.explosions
	for i := range e.active {
		if e.active[i] == 0 {
			continue
		}
		if e.life[i] <= 1 {
			e.active[i] = 0
			e.life[i] = 0
			continue
		}
		e.life[i]--
	}
}

func freeSlot(active []uint8) int {
	for i, a := range active {
		if a == 0 {
			return i
		}
	}
	return -1
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
