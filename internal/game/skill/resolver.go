package skill

import (
	"log/slog"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/game/combat"
	"github.com/nocten/valdera/internal/game/energy"
	"github.com/nocten/valdera/internal/game/stats"
	"github.com/nocten/valdera/internal/game/status"
	"github.com/nocten/valdera/internal/model"
)

// powerScaling converts attack or magic power into bonus raw damage on top
// of a skill's base damage.
const powerScaling = 0.5

// Resolver turns an activation into targeting plus pipeline hits. It also
// owns live projectiles and the two consumed-once combat bonuses.
type Resolver struct {
	cfg        config.Sim
	bus        *events.Bus
	pipeline   *combat.Pipeline
	statuses   *status.Engine
	aggregator *stats.Aggregator
	energy     *energy.Pool
	rng        func() float64
	targets    func() []*model.Combatant // live hostiles

	projectiles []*Projectile

	// Consumed-once bonuses. nextHitMult multiplies exactly one qualifying
	// hit's raw damage; critCharges force crits, one charge per hit.
	nextHitMult float64
	critCharges int
	ownerID     uint32
}

// NewResolver creates a resolver wired to the combat subsystems.
func NewResolver(
	cfg config.Sim,
	bus *events.Bus,
	pipeline *combat.Pipeline,
	statuses *status.Engine,
	aggregator *stats.Aggregator,
	pool *energy.Pool,
	rng func() float64,
	targets func() []*model.Combatant,
	ownerID uint32,
) *Resolver {
	return &Resolver{
		cfg:        cfg,
		bus:        bus,
		pipeline:   pipeline,
		statuses:   statuses,
		aggregator: aggregator,
		energy:     pool,
		rng:        rng,
		targets:    targets,
		ownerID:    ownerID,
	}
}

// Resolve dispatches an activation to its archetype variant.
func (r *Resolver) Resolve(ctx Context) Outcome {
	effect := effectForArchetype(ctx.Archetype)
	if effect == nil {
		slog.Warn("skill with unknown archetype ignored", "skill", ctx.SkillID)
		return Outcome{}
	}
	return effect.Resolve(ctx, r)
}

// SetNextHitBonus arms the consumed-once bonus damage multiplier.
func (r *Resolver) SetNextHitBonus(mult float64) {
	if mult > 0 {
		r.nextHitMult = mult
	}
}

// NextHitBonus returns the armed multiplier, 0 when unarmed.
func (r *Resolver) NextHitBonus() float64 { return r.nextHitMult }

// AddGuaranteedCritCharges arms n guaranteed critical hits.
func (r *Resolver) AddGuaranteedCritCharges(n int) {
	if n > 0 {
		r.critCharges += n
	}
}

// GuaranteedCritCharges returns the remaining charges.
func (r *Resolver) GuaranteedCritCharges() int { return r.critCharges }

// liveTargets returns the current live hostile set.
func (r *Resolver) liveTargets() []*model.Combatant {
	all := r.targets()
	live := all[:0:0]
	for _, t := range all {
		if t != nil && !t.IsDead() {
			live = append(live, t)
		}
	}
	return live
}

// nearestTarget finds the closest live target to loc within radius that is
// not in exclude. Equidistant ties keep the earliest-spawned candidate so
// chain and homing targeting are reproducible. Returns nil when none
// qualifies.
func (r *Resolver) nearestTarget(loc model.Location, radius float64, exclude map[uint32]bool) *model.Combatant {
	var best *model.Combatant
	bestDist := radius
	for _, t := range r.liveTargets() {
		if exclude[t.ID()] {
			continue
		}
		d := loc.DistanceTo(t.Location())
		if d > bestDist {
			continue
		}
		if best == nil || d < bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}

// rawDamage computes a skill's pre-mitigation damage from its base number
// and the caster's relevant power stat.
func (r *Resolver) rawDamage(ctx Context) float64 {
	st := ctx.Caster.Stats()
	power := st.AttackPower
	if ctx.Spec.DamageMagical {
		power = st.MagicPower
	}
	return ctx.Spec.Damage + power*powerScaling
}

// hitTarget routes one hit through the pipeline, consuming armed one-shot
// bonuses and rolling the skill's on-hit status. dmgMult scales raw damage
// (charge-scaled AoE).
func (r *Resolver) hitTarget(ctx Context, target *model.Combatant, raw float64, dmgMult float64) combat.Result {
	raw *= dmgMult

	// Armed bonuses apply to this hit but are only consumed if it connects;
	// a dodge is not a qualifying hit.
	useNextHit := r.nextHitMult > 0
	if useNextHit {
		raw *= r.nextHitMult
	}
	guaranteed := r.critCharges > 0

	st := ctx.Caster.Stats()
	dmgType := model.DamagePhysical
	if ctx.Spec.DamageMagical {
		dmgType = model.DamageMagical
	}

	res := r.pipeline.ResolveDamage(target, combat.Hit{
		SourceID:         ctx.Caster.ID(),
		SourceLoc:        ctx.Origin,
		RawDamage:        raw,
		CritChance:       st.CritChance,
		CritDamageMult:   st.CritDamage,
		Type:             dmgType,
		ArmorPenFraction: ctx.Spec.ArmorPenFraction,
		GuaranteedCrit:   guaranteed,
	})

	if !res.Dodged {
		if useNextHit {
			r.nextHitMult = 0
			r.bus.Publish(events.NextHitBonusExpired{OwnerID: r.ownerID})
		}
		if guaranteed {
			r.critCharges--
			if r.critCharges == 0 {
				r.bus.Publish(events.GuaranteedCritExpired{OwnerID: r.ownerID})
			}
		}
	}

	if !res.Dodged && !res.Killed && ctx.Spec.Status != nil {
		if r.rng() < ctx.Spec.Status.Chance {
			r.statuses.Apply(ctx.Caster.Combatant, target, ctx.Spec.Status.Type)
		}
	}
	return res
}
