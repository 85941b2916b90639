package combat

import "math"

// Archetype is an immutable unit template shared by every match that uses
// its catalog.
type Archetype struct {
	Key             string
	Race            string
	Layer           Layer
	HP              float64
	Shield          float64
	Armor           float64
	Damage          float64
	CooldownTicks   int
	Style           AttackStyle
	Range           float64
	Speed           float64
	Mask            AttackMask
	ExplosiveRadius float64
	RenderSize      float64
	Capacity        float64
	Count           int
	Note            string
}

// AttackProfile holds the per-unit attack fields derived from an archetype.
type AttackProfile struct {
	Medium          AttackMedium
	Impact          ImpactMode
	SplashRadius    float64
	ProjectileSpeed float64
	HitRadius       float64
}

func (a *Archetype) Profile() AttackProfile {
	impact := ImpactSingle
	if a.ExplosiveRadius > 0 {
		impact = ImpactExplosive
	}
	if a.Style == StyleMelee {
		return AttackProfile{
			Medium:       MediumDirect,
			Impact:       impact,
			SplashRadius: a.ExplosiveRadius,
		}
	}
	return AttackProfile{
		Medium:          MediumProjectile,
		Impact:          impact,
		SplashRadius:    a.ExplosiveRadius,
		ProjectileSpeed: ProjectileBaseSpeed + a.Range*ProjectileRangeSpeedFactor,
		HitRadius:       math.Max(ProjectileSingleHitRadius, a.RenderSize*ProjectileHitRadiusScale),
	}
}

// AttackRange is the range a spawned unit uses; melee units ignore the
// authored value.
func (a *Archetype) AttackRange() float64 {
	if a.Style == StyleMelee {
		return MeleeLockedRange
	}
	return a.Range
}

func (a *Archetype) BodyRadius() float64 {
	return bodyRadiusFor(a.RenderSize)
}

func bodyRadiusFor(renderSize float64) float64 {
	raw := renderSize * BodyRadiusFromRenderSize
	if raw < BodyRadiusMin {
		return BodyRadiusMin
	}
	if raw > BodyRadiusMax {
		return BodyRadiusMax
	}
	return raw
}
