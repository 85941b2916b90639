package combat

// state is the structure-of-arrays storage for one Sim. Every slice is
// allocated once in newState; entity index is identity for a whole match.
type state struct {
	alive       []uint8
	team        []Team
	layer       []Layer
	x           []float32
	y           []float32
	hp          []float32
	shield      []float32
	armor       []float32
	damage      []float32
	attackRange []float32
	speed       []float32
	mask        []AttackMask
	cooldown    []uint16
	nextAttack  []int32
	target      []int32
	capacity    []float32
	renderSize  []float32
	bodyRadius  []float32
	spawnOrder  []int32
	medium      []AttackMedium
	impact      []ImpactMode
	splash      []float32
	projSpeed   []float32
	hitRadius   []float32

	pendingDamage []float32
	meleePressure []uint16

	projectiles projectilePool
	explosions  explosionPool

	entityCount  int
	spawnCounter int32
	tick         int

	coreHp            [2]float64
	aliveCount        [2]int
	remainingCapacity [2]float64
	winner            int
	finished          bool

	races [2]string
}

type projectilePool struct {
	active    []uint8
	team      []Team
	mask      []AttackMask
	explosive []uint8
	x         []float32
	y         []float32
	prevX     []float32
	prevY     []float32
	aimX      []float32
	aimY      []float32
	velX      []float32
	velY      []float32
	step      []float32
	remaining []float32
	damage    []float32
	splash    []float32
	hitRadius []float32
}

type explosionPool struct {
	active  []uint8
	team    []Team
	x       []float32
	y       []float32
	radius  []float32
	life    []uint8
	lifeMax []uint8
}

func newState(maxEntities, maxProjectiles, maxExplosions int) *state {
	n := maxEntities
	st := &state{
		alive:         make([]uint8, n),
		team:          make([]Team, n),
		layer:         make([]Layer, n),
		x:             make([]float32, n),
		y:             make([]float32, n),
		hp:            make([]float32, n),
		shield:        make([]float32, n),
		armor:         make([]float32, n),
		damage:        make([]float32, n),
		attackRange:   make([]float32, n),
		speed:         make([]float32, n),
		mask:          make([]AttackMask, n),
		cooldown:      make([]uint16, n),
		nextAttack:    make([]int32, n),
		target:        make([]int32, n),
		capacity:      make([]float32, n),
		renderSize:    make([]float32, n),
		bodyRadius:    make([]float32, n),
		spawnOrder:    make([]int32, n),
		medium:        make([]AttackMedium, n),
		impact:        make([]ImpactMode, n),
		splash:        make([]float32, n),
		projSpeed:     make([]float32, n),
		hitRadius:     make([]float32, n),
		pendingDamage: make([]float32, n),
		meleePressure: make([]uint16, n),
		winner:        NoWinner,
	}

	p := maxProjectiles
	st.projectiles = projectilePool{
		active:    make([]uint8, p),
		team:      make([]Team, p),
		mask:      make([]AttackMask, p),
		explosive: make([]uint8, p),
		x:         make([]float32, p),
		y:         make([]float32, p),
		prevX:     make([]float32, p),
		prevY:     make([]float32, p),
		aimX:      make([]float32, p),
		aimY:      make([]float32, p),
		velX:      make([]float32, p),
		velY:      make([]float32, p),
		step:      make([]float32, p),
		remaining: make([]float32, p),
		damage:    make([]float32, p),
		splash:    make([]float32, p),
		hitRadius: make([]float32, p),
	}

	e := maxExplosions
	st.explosions = explosionPool{
		active:  make([]uint8, e),
		team:    make([]Team, e),
		x:       make([]float32, e),
		y:       make([]float32, e),
		radius:  make([]float32, e),
		life:    make([]uint8, e),
		lifeMax: make([]uint8, e),
	}

	fill(st.target, NoTarget)
	return st
}

// reset clears all per-match state. Slices keep their length.
func (st *state) reset(coreHp float64, left, right string) {
	st.races = [2]string{left, right}
	st.entityCount = 0
	st.spawnCounter = 0
	st.tick = 0
	st.coreHp = [2]float64{coreHp, coreHp}
	st.aliveCount = [2]int{}
	st.remainingCapacity = [2]float64{}
	st.winner = NoWinner
	st.finished = false

	clear(st.alive)
	fill(st.target, NoTarget)
	clear(st.nextAttack)
	clear(st.pendingDamage)
	clear(st.meleePressure)

	clear(st.projectiles.active)
	clear(st.projectiles.remaining)
	clear(st.explosions.active)
	clear(st.explosions.life)
}

func (st *state) pos(i int) (float64, float64) {
	return float64(st.x[i]), float64(st.y[i])
}

func (st *state) distSq(a, b int) float64 {
	dx := float64(st.x[b]) - float64(st.x[a])
	dy := float64(st.y[b]) - float64(st.y[a])
	return dx*dx + dy*dy
}

// addDamage accumulates into the float32 pending buffer.
func (st *state) addDamage(i int, dmg float64) {
	st.pendingDamage[i] = float32(float64(st.pendingDamage[i]) + dmg)
}

// effectiveHP is hp plus shield, used for "finish the weaker one" tie-breaks.
func (st *state) effectiveHP(i int) float64 {
	return float64(st.hp[i]) + float64(st.shield[i])
}

func fill[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}
