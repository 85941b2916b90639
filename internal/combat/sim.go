package combat

import (
	"errors"
	"fmt"
	"math"

	"tugsim/internal/config"
	"tugsim/internal/util"
)

// Config is a SimConfig with defaults applied and grid dimensions derived.
type Config struct {
	config.SimConfig
	BucketCols  int
	BucketRows  int
	BucketCount int
}

// ResolveConfig fills defaults and rejects sizes the engine cannot allocate.
func ResolveConfig(c config.SimConfig) (Config, error) {
	c = c.WithDefaults()
	switch {
	case c.MaxEntities < 0, c.MaxProjectiles < 0, c.MaxExplosionEffects < 0:
		return Config{}, errors.New("pool sizes must not be negative")
	case !(c.ArenaWidth > 0) || !(c.ArenaHeight > 0):
		return Config{}, fmt.Errorf("arena %vx%v must be positive", c.ArenaWidth, c.ArenaHeight)
	case !(c.BucketSize > 0):
		return Config{}, fmt.Errorf("bucket size %v must be positive", c.BucketSize)
	case c.BasePadding < 0 || c.CoreRadius < 0:
		return Config{}, errors.New("padding and core radius must not be negative")
	case c.BasePadding*2 > c.ArenaWidth || c.BasePadding*2 > c.ArenaHeight:
		return Config{}, fmt.Errorf("padding %v does not fit the arena", c.BasePadding)
	case c.MaxTicks < 0 || c.StepMs < 0:
		return Config{}, errors.New("max ticks and step ms must not be negative")
	}
	cols := int(math.Ceil(c.ArenaWidth / c.BucketSize))
	rows := int(math.Ceil(c.ArenaHeight / c.BucketSize))
	return Config{SimConfig: c, BucketCols: cols, BucketRows: rows, BucketCount: cols * rows}, nil
}

// Sim is one match engine. It is not safe for concurrent use; run one Sim
// per goroutine and share the Catalog.
type Sim struct {
	cfg     Config
	catalog *Catalog
	arena   arena
	grid    *bucketGrid
	st      *state
	rng     *util.XorShift32
	onEvent func(Event)
}

// New allocates every pool up front. A nil catalog selects DefaultCatalog.
func New(cfg config.SimConfig, catalog *Catalog) (*Sim, error) {
	rc, err := ResolveConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("sim config: %w", err)
	}
	if catalog == nil {
		if catalog, err = DefaultCatalog(); err != nil {
			return nil, err
		}
	}
	s := &Sim{
		cfg:     rc,
		catalog: catalog,
		arena:   newArena(rc.ArenaWidth, rc.ArenaHeight, rc.BasePadding, rc.CoreRadius),
		grid:    newBucketGrid(rc.ArenaWidth, rc.ArenaHeight, rc.BucketSize, rc.MaxEntities),
		st:      newState(rc.MaxEntities, rc.MaxProjectiles, rc.MaxExplosionEffects),
		rng:     util.NewXorShift32(1),
	}
	s.st.reset(rc.CoreHpStart, "", "")
	return s, nil
}

// SetEventHook installs fn to receive Spawn, CoreBreach and Finish events.
// Pass nil to disable.
func (s *Sim) SetEventHook(fn func(Event)) { s.onEvent = fn }

func (s *Sim) emit(typ string, payload map[string]any) {
	if s.onEvent == nil {
		return
	}
	s.onEvent(Event{Tick: s.st.tick, Type: typ, Payload: payload})
}

// Reset starts a new match. The previous match state is discarded only if
// both races exist in the catalog.
func (s *Sim) Reset(seed uint32, left, right string) error {
	lr, err := s.catalog.roster(left)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	rr, err := s.catalog.roster(right)
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}

	s.rng.SetSeed(seed)
	s.st.reset(s.cfg.CoreHpStart, left, right)
	fill(s.grid.next, -1)
	s.spawnRace(TeamLeft, lr)
	s.spawnRace(TeamRight, rr)
	s.refreshStats()
	return nil
}

// Step advances the match by exactly one tick. It does nothing once the
// match is finished.
func (s *Sim) Step() {
	st := s.st
	if st.finished {
		return
	}
	st.tick++

	s.grid.rebuild(st)
	clear(st.pendingDamage[:st.entityCount])
	s.seedPressure()

	for i := 0; i < st.entityCount; i++ {
		if st.alive[i] == 0 {
			continue
		}
		prev := int(st.target[i])
		if s.breach(i) {
			s.onAttackerRemoved(i, prev)
			continue
		}

		t := prev
		if !s.isTargetValid(i, t) {
			t = s.acquireTarget(i)
			st.target[i] = int32(t)
			s.onTargetChanged(i, prev, t)
		}
		if t == NoTarget {
			cx, cy := s.enemyCore(st.team[i])
			s.moveToward(i, cx, cy)
			continue
		}

		reach := s.effectiveRange(i, t)
		if st.distSq(i, t) > reach*reach {
			tx, ty := st.pos(t)
			s.moveToward(i, tx, ty)
			continue
		}
		if st.tick >= int(st.nextAttack[i]) {
			s.resolveAttack(i, t)
			st.nextAttack[i] = int32(st.tick + int(st.cooldown[i]))
		}
	}

	s.grid.rebuild(st)
	s.stepExplosions()
	s.stepProjectiles()
	s.applyDamage()
	s.refreshStats()
	s.resolveVictory()
}

// effectiveRange lets melee units reach the edge of a large body rather
// than its centre.
func (s *Sim) effectiveRange(attacker, target int) float64 {
	r := float64(s.st.attackRange[attacker])
	if s.isMelee(attacker) {
		r += float64(s.st.bodyRadius[target])
	}
	return r
}

func (s *Sim) Config() Config    { return s.cfg }
func (s *Sim) Catalog() *Catalog { return s.catalog }
func (s *Sim) StepMs() int       { return s.cfg.StepMs }
func (s *Sim) Tick() int         { return s.st.tick }
func (s *Sim) Finished() bool    { return s.st.finished }
func (s *Sim) Winner() int       { return s.st.winner }
func (s *Sim) EntityCount() int  { return s.st.entityCount }

func (s *Sim) Races() (string, string) { return s.st.races[0], s.st.races[1] }

func (s *Sim) CoreHP(t Team) float64            { return s.st.coreHp[t] }
func (s *Sim) AliveCount(t Team) int            { return s.st.aliveCount[t] }
func (s *Sim) RemainingCapacity(t Team) float64 { return s.st.remainingCapacity[t] }

// CorePosition returns the centre of t's core.
func (s *Sim) CorePosition(t Team) Vec2 { return Vec2{s.arena.coreX[t], s.arena.coreY[t]} }

// UnitsView exposes entity slots [0, EntityCount). Callers must not write
// through the slices; they are invalidated by the next Step or Reset.
type UnitsView struct {
	Alive      []uint8
	Team       []Team
	Layer      []Layer
	X, Y       []float32
	HP         []float32
	Shield     []float32
	RenderSize []float32
	Target     []int32
}

func (s *Sim) Units() UnitsView {
	st, n := s.st, s.st.entityCount
	return UnitsView{
		Alive:      st.alive[:n],
		Team:       st.team[:n],
		Layer:      st.layer[:n],
		X:          st.x[:n],
		Y:          st.y[:n],
		HP:         st.hp[:n],
		Shield:     st.shield[:n],
		RenderSize: st.renderSize[:n],
		Target:     st.target[:n],
	}
}

// ProjectilesView covers the whole projectile pool; check Active.
type ProjectilesView struct {
	Active       []uint8
	Team         []Team
	Explosive    []uint8
	X, Y         []float32
	PrevX, PrevY []float32
}

func (s *Sim) Projectiles() ProjectilesView {
	p := &s.st.projectiles
	return ProjectilesView{
		Active:    p.active,
		Team:      p.team,
		Explosive: p.explosive,
		X:         p.x,
		Y:         p.y,
		PrevX:     p.prevX,
		PrevY:     p.prevY,
	}
}

// ExplosionsView covers the whole explosion pool; check Active.
type ExplosionsView struct {
	Active  []uint8
	Team    []Team
	X, Y    []float32
	Radius  []float32
	Life    []uint8
	LifeMax []uint8
}

func (s *Sim) Explosions() ExplosionsView {
	e := &s.st.explosions
	return ExplosionsView{
		Active:  e.active,
		Team:    e.team,
		X:       e.x,
		Y:       e.y,
		Radius:  e.radius,
		Life:    e.life,
		LifeMax: e.lifeMax,
	}
}
