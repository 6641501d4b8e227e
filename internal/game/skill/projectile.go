package skill

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/nocten/valdera/internal/model"
)

// projectileHitRadius is the projectile's own collision radius.
const projectileHitRadius = 4.0

// Projectile is a skill-spawned moving entity with a distance budget.
// The tick loop steps every live projectile once per frame; hits route back
// through the damage pipeline via the resolver.
type Projectile struct {
	ID       string
	Loc      model.Location
	Dir      model.Vector
	Speed    float64
	Traveled float64
	Budget   float64 // max travel distance

	Piercing bool
	HomingID uint32 // locked-on target, 0 when not homing

	ctx     Context
	raw     float64
	hitSet  map[uint32]bool
	expired bool
}

// spawnProjectile creates a projectile from an activation. Homing skills
// lock onto the nearest live target at spawn; the lock never retargets.
func (r *Resolver) spawnProjectile(ctx Context) *Projectile {
	proj := &Projectile{
		ID:       "proj_" + uuid.NewString()[:8],
		Loc:      ctx.Origin,
		Dir:      model.UnitFromAngle(ctx.Angle),
		Speed:    ctx.Spec.ProjectileSpeed,
		Budget:   ctx.Spec.MaxDistance,
		Piercing: ctx.Spec.Piercing,
		ctx:      ctx,
		raw:      r.rawDamage(ctx),
		hitSet:   make(map[uint32]bool),
	}

	if ctx.Spec.Homing {
		if lock := r.nearestTarget(ctx.Origin, ctx.Spec.MaxDistance, nil); lock != nil {
			proj.HomingID = lock.ID()
		}
	}

	r.projectiles = append(r.projectiles, proj)
	slog.Debug("projectile spawned", "id", proj.ID, "skill", ctx.SkillID, "homing", proj.HomingID)
	return proj
}

// ProjectileCount returns the number of in-flight projectiles.
func (r *Resolver) ProjectileCount() int {
	return len(r.projectiles)
}

// StepProjectiles advances all projectiles by dt seconds, resolving hits and
// expiring spent ones. A projectile that exhausts its distance budget
// disappears without any event.
func (r *Resolver) StepProjectiles(dt float64) {
	if len(r.projectiles) == 0 {
		return
	}

	live := r.liveTargets()
	byID := make(map[uint32]*model.Combatant, len(live))
	for _, t := range live {
		byID[t.ID()] = t
	}

	n := 0
	for _, proj := range r.projectiles {
		r.stepOne(proj, dt, live, byID)
		if !proj.expired {
			r.projectiles[n] = proj
			n++
		}
	}
	r.projectiles = r.projectiles[:n]
}

func (r *Resolver) stepOne(proj *Projectile, dt float64, live []*model.Combatant, byID map[uint32]*model.Combatant) {
	// Homing projectiles re-aim each step at the locked target while it
	// lives; a dead lock means the projectile flies straight on.
	if proj.HomingID != 0 {
		if lock, ok := byID[proj.HomingID]; ok {
			proj.Dir = model.UnitFromAngle(proj.Loc.AngleTo(lock.Location()))
		}
	}

	step := proj.Speed * dt
	if remaining := proj.Budget - proj.Traveled; step > remaining {
		step = remaining
	}
	proj.Loc = proj.Loc.Offset(proj.Dir.Scale(step))
	proj.Traveled += step

	for _, target := range live {
		if proj.hitSet[target.ID()] || target.IsDead() {
			continue
		}
		if proj.Loc.DistanceTo(target.Location()) > target.Radius()+projectileHitRadius {
			continue
		}

		proj.hitSet[target.ID()] = true
		r.hitTarget(proj.ctx, target, proj.raw, 1.0)

		if !proj.Piercing {
			proj.expired = true
			return
		}
	}

	if proj.Traveled >= proj.Budget {
		proj.expired = true
	}
}
