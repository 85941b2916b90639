package combat

const (
	MeleeLockedRange = 20.0
	RangedMinRange   = 40.0

	BodyRadiusFromRenderSize = 6.4
	BodyRadiusMin            = 10.0
	BodyRadiusMax            = 96.0

	SeparationSlotPadding  = 3.5
	SeparationRangeFactor  = 2.1
	SeparationNeighborCap  = 20
	GoalWeight             = 1.0
	SeparationWeight       = 1.1
	MovementEpsilonSq      = 0.0001
	MeleeSoftCapMax        = 64
	MeleeSaturationPenalty = 72.0 // distance added per attacker over the soft cap

	LeashRangeFactor = 2.2
	LeashMin         = 120.0

	ProjectileBaseSpeed        = 3.4
	ProjectileRangeSpeedFactor = 0.06
	ProjectileMinStep          = 0.1
	ProjectileSingleHitRadius  = 8.0
	ProjectileHitRadiusScale   = 1.2

	ExplosionLifetimeTicks     = 18
	ExplosionVisualRadiusMin   = 28.0
	ExplosionVisualRadiusScale = 2.8

	TeamSpawnSideFraction = 0.2
	SpawnEdgeInset        = 8.0

	CoreDamageHeavyCapacity = 100.0
	CoreDamageHeavyFactor   = 2.0
	CoreDamageLightFactor   = 1.2

	maxPressure = 65535
)
