package skill

import (
	"math"

	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/model"
)

// Context carries everything an effect needs to resolve one activation.
type Context struct {
	Caster    *model.Player
	Origin    model.Location
	Angle     float64 // facing at activation, radians
	Charge    float64 // accumulated charge fraction [0,1], 1 for non-channels
	SkillID   string
	Level     int
	Archetype data.SkillArchetype
	Spec      *data.SkillLevel
}

// Outcome summarizes what an effect did.
type Outcome struct {
	TargetsHit   int
	ProjectileID string
}

// SkillEffect resolves one activation archetype. The closed variant set
// {melee, aoe, projectile, chain, buff, instant} is selected in
// effectForArchetype; adding an archetype without a variant fails there,
// not silently.
type SkillEffect interface {
	Resolve(ctx Context, r *Resolver) Outcome
}

// effectForArchetype maps a skill archetype to its resolution variant.
func effectForArchetype(archetype data.SkillArchetype) SkillEffect {
	switch archetype {
	case data.ArchetypeMelee:
		return meleeEffect{}
	case data.ArchetypeAoE:
		return aoeEffect{}
	case data.ArchetypeProjectile:
		return projectileEffect{}
	case data.ArchetypeChain:
		return chainEffect{}
	case data.ArchetypeBuff:
		return buffEffect{}
	case data.ArchetypeInstant:
		return instantEffect{}
	default:
		return nil
	}
}

// meleeEffect hits live targets inside a range-limited arc around the facing
// angle. A target's physical radius widens its angular footprint, so large
// targets clip the arc edge more easily.
type meleeEffect struct{}

func (meleeEffect) Resolve(ctx Context, r *Resolver) Outcome {
	halfArc := ctx.Spec.ArcWidth / 2
	var out Outcome

	for _, target := range r.liveTargets() {
		dist := ctx.Origin.DistanceTo(target.Location())
		if dist > ctx.Spec.Range+target.Radius() {
			continue
		}

		diff := math.Abs(model.NormalizeAngle(ctx.Origin.AngleTo(target.Location()) - ctx.Angle))
		allowed := halfArc
		if dist > 0 {
			allowed += math.Atan2(target.Radius(), dist)
		}
		if diff > allowed {
			continue
		}

		if res := r.hitTarget(ctx, target, r.rawDamage(ctx), 1.0); !res.Dodged {
			out.TargetsHit++
		}
	}
	return out
}

// aoeEffect hits everything within a circle. Charge-scaled variants
// interpolate both radius and damage from zero to the cap over the charge
// window.
type aoeEffect struct{}

func (aoeEffect) Resolve(ctx Context, r *Resolver) Outcome {
	frac := 1.0
	if ctx.Spec.ChargeSeconds > 0 {
		frac = ctx.Charge
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
	}

	radius := ctx.Spec.Radius * frac
	var out Outcome
	for _, target := range r.liveTargets() {
		if ctx.Origin.DistanceTo(target.Location()) > radius+target.Radius() {
			continue
		}
		if res := r.hitTarget(ctx, target, r.rawDamage(ctx), frac); !res.Dodged {
			out.TargetsHit++
		}
	}
	return out
}

// projectileEffect spawns a moving entity stepped by the tick loop. Hits
// route back through the damage pipeline when the projectile overlaps a
// target.
type projectileEffect struct{}

func (projectileEffect) Resolve(ctx Context, r *Resolver) Outcome {
	proj := r.spawnProjectile(ctx)
	return Outcome{ProjectileID: proj.ID}
}

// chainEffect resolves sequential jumps, each to the nearest not-yet-hit
// target within the bounce radius of the previous hit point. Every jump
// deals identical damage.
type chainEffect struct{}

func (chainEffect) Resolve(ctx Context, r *Resolver) Outcome {
	raw := r.rawDamage(ctx)
	hitAlready := make(map[uint32]bool)
	anchor := ctx.Origin
	searchRadius := ctx.Spec.Range

	var out Outcome
	for jump := 0; jump < ctx.Spec.ChainJumps; jump++ {
		next := r.nearestTarget(anchor, searchRadius, hitAlready)
		if next == nil {
			break
		}
		hitAlready[next.ID()] = true
		if res := r.hitTarget(ctx, next, raw, 1.0); !res.Dodged {
			out.TargetsHit++
		}
		anchor = next.Location()
		searchRadius = ctx.Spec.BounceRadius
	}
	return out
}

// buffEffect pushes a timed buff into the stat aggregator. Toggle buffs use
// the permanent duration and are removed only on explicit deactivation.
type buffEffect struct{}

func (buffEffect) Resolve(ctx Context, r *Resolver) Outcome {
	r.aggregator.AddBuff(ctx.SkillID, ctx.Spec.BuffDeltas, ctx.Spec.BuffDurationSeconds)
	return Outcome{}
}

// instantEffect applies immediate self effects: resource conversion (spend
// HP for energy, with a hard floor so the conversion can never kill the
// caster) and arming the consumed-once combat bonuses.
type instantEffect struct{}

func (instantEffect) Resolve(ctx Context, r *Resolver) Outcome {
	caster := ctx.Caster
	cost := int(ctx.Spec.HPCost)

	if cost >= caster.CurrentHP() {
		cost = caster.CurrentHP() - 1
	}
	if cost > 0 {
		caster.SetCurrentHP(caster.CurrentHP() - cost)
	}
	if ctx.Spec.EnergyGain > 0 {
		r.energy.Restore(ctx.Spec.EnergyGain)
	}

	r.SetNextHitBonus(ctx.Spec.NextHitMultiplier)
	r.AddGuaranteedCritCharges(ctx.Spec.GuaranteedCrits)
	return Outcome{}
}
