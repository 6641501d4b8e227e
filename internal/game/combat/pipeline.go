// Package combat implements the shared damage pipeline used by basic
// attacks, skill damage, and status ticks: crit, armor, defense mitigation,
// shield absorption, knockback, and death resolution.
package combat

import (
	"log/slog"
	"math"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/model"
)

// SafeResolveFunc clamps a movement from→to against terrain and returns the
// final position. Supplied by the host; the pipeline never inspects the map.
type SafeResolveFunc func(from, to model.Location, radius float64) model.Location

// RewardFunc looks up death reward fields for a combatant. ok is false for
// combatants that grant no rewards (the player, summons).
type RewardFunc func(targetID uint32) (xp int64, gold int, boss bool, ok bool)

// Hit describes one incoming hit before mitigation.
type Hit struct {
	SourceID         uint32
	SourceLoc        model.Location
	RawDamage        float64
	CritChance       float64
	CritDamageMult   float64
	Type             model.DamageType
	ArmorPenFraction float64 // reduces the target's defense, not its armor
	GuaranteedCrit   bool
	NoKnockback      bool
}

// Result is the outcome of one resolved hit.
type Result struct {
	FinalDamage int
	Crit        bool
	Killed      bool
	Dodged      bool
}

// Pipeline resolves damage against combatants and emits outcome events.
// The crit roll is injected so tests can drive deterministic outcomes.
type Pipeline struct {
	cfg         config.Sim
	bus         *events.Bus
	roll        func() float64 // uniform [0,1)
	safeResolve SafeResolveFunc
	rewards     RewardFunc
}

// NewPipeline creates a damage pipeline.
func NewPipeline(cfg config.Sim, bus *events.Bus, roll func() float64, safeResolve SafeResolveFunc, rewards RewardFunc) *Pipeline {
	return &Pipeline{cfg: cfg, bus: bus, roll: roll, safeResolve: safeResolve, rewards: rewards}
}

// ResolveDamage runs the full mitigation chain against target in fixed
// order: dodge, crit, flat armor, percent defense, minimum floor, shield
// absorption, HP, knockback, death. Hits against a dead target are no-ops.
func (p *Pipeline) ResolveDamage(target *model.Combatant, hit Hit) Result {
	if target == nil || target.IsDead() {
		return Result{}
	}

	stats := target.Stats()

	// Dodge is the one designed zero-damage outcome.
	if stats.Dodge > 0 && p.roll() < stats.Dodge {
		return Result{Dodged: true}
	}

	damage := hit.RawDamage
	isCrit := hit.GuaranteedCrit || p.roll() < hit.CritChance
	if isCrit {
		mult := hit.CritDamageMult
		if mult < 1 {
			mult = 1
		}
		damage *= mult
	}

	// Flat armor applies before percent mitigation. True damage skips both.
	if hit.Type != model.DamageTrue {
		damage -= float64(stats.Armor)
		if damage < 0 {
			damage = 0
		}

		// Armor penetration reduces defense, not armor.
		defense := stats.Defense * (1 - hit.ArmorPenFraction)
		if defense < 0 {
			defense = 0
		}
		reduction := defense / (defense + p.cfg.DefenseConstant)
		damage = math.Floor(damage * (1 - reduction))
	}

	if stats.DamageReduce > 0 {
		damage = math.Floor(damage * (1 - stats.DamageReduce))
	}

	if damage < float64(p.cfg.MinDamage) {
		damage = float64(p.cfg.MinDamage)
	}

	// final is the damage the hit dealt; the shield decides how much of it
	// reaches HP.
	final := int(damage)
	hpDamage := p.absorbWithShield(target, final)

	target.SetCurrentHP(target.CurrentHP() - hpDamage)

	p.bus.Publish(events.DamageDealt{
		SourceID: hit.SourceID,
		TargetID: target.ID(),
		Amount:   final,
		Type:     hit.Type,
		Crit:     isCrit,
	})
	if isCrit {
		p.bus.Publish(events.CritOccurred{SourceID: hit.SourceID, TargetID: target.ID(), Amount: final})
	}

	if !hit.NoKnockback {
		p.applyKnockback(target, hit.SourceLoc, isCrit)
	}

	killed := p.resolveDeath(target, hit.SourceID)
	return Result{FinalDamage: final, Crit: isCrit, Killed: killed}
}

// ResolveTick applies a status tick: percent-defense mitigation only, no
// crit, no armor, no shield, no knockback. Ticks can kill.
func (p *Pipeline) ResolveTick(target *model.Combatant, raw float64, sourceID uint32, statusType string) (int, bool) {
	if target == nil || target.IsDead() {
		return 0, false
	}

	defense := target.Stats().Defense
	reduction := defense / (defense + p.cfg.DefenseConstant)
	damage := math.Floor(raw * (1 - reduction))
	if damage < float64(p.cfg.MinDamage) {
		damage = float64(p.cfg.MinDamage)
	}

	final := int(damage)
	target.SetCurrentHP(target.CurrentHP() - final)

	p.bus.Publish(events.DamageDealt{
		SourceID:   sourceID,
		TargetID:   target.ID(),
		Amount:     final,
		Type:       model.DamageMagical,
		FromStatus: statusType,
	})

	killed := p.resolveDeath(target, sourceID)
	return final, killed
}

// absorbWithShield routes damage through the target's shield and returns the
// portion that reaches HP. The shield applies its own resistance factor both
// to what it absorbs and to the pass-through ratio; the pass-through is
// therefore discounted twice. Deliberate balance behavior, do not "fix".
func (p *Pipeline) absorbWithShield(target *model.Combatant, damage int) int {
	shield := target.CurrentShield()
	if shield <= 0 || damage <= 0 {
		return damage
	}

	factor := 1 - p.cfg.ShieldResist
	toShield := float64(damage) * factor

	absorbed := toShield
	if absorbed > float64(shield) {
		absorbed = float64(shield)
	}

	newShield := shield - int(math.Ceil(absorbed))
	if newShield < 0 {
		newShield = 0
	}
	target.SetCurrentShield(newShield)

	if newShield == 0 {
		p.bus.Publish(events.ShieldBroken{TargetID: target.ID()})
		slog.Debug("shield broken", "target", target.ID())
	}

	// Ratio over the already-reduced amount guards divide-by-zero when the
	// pre-absorption damage is zero.
	var ratio float64
	if toShield > 0 {
		ratio = (toShield - absorbed) / toShield
	}

	return int(math.Floor(float64(damage) * factor * ratio))
}

// applyKnockback pushes target directly away from the damage source, scaled
// up on crit, with the final position clamped by the host's safe-resolve.
func (p *Pipeline) applyKnockback(target *model.Combatant, sourceLoc model.Location, crit bool) {
	from := target.Location()
	dir := model.Vector{X: from.X - sourceLoc.X, Y: from.Y - sourceLoc.Y}.Normalized()
	if dir.Length() == 0 {
		return // source on top of target, no direction to push
	}

	distance := p.cfg.KnockbackBase
	if crit {
		distance *= p.cfg.KnockbackCrit
	}
	vec := dir.Scale(distance)

	to := from.Offset(vec)
	if p.safeResolve != nil {
		to = p.safeResolve(from, to, target.Radius())
	}
	target.SetLocation(to)

	p.bus.Publish(events.Knockback{TargetID: target.ID(), Vector: vec, From: from, To: to})
}

// resolveDeath latches death exactly once and emits the Death outcome with
// reward fields for the progression collaborator.
func (p *Pipeline) resolveDeath(target *model.Combatant, killerID uint32) bool {
	if target.CurrentHP() > 0 {
		return false
	}

	killed := false
	target.MarkDead(func() {
		killed = true

		var xp int64
		var gold int
		var boss bool
		if p.rewards != nil {
			if x, g, b, ok := p.rewards(target.ID()); ok {
				xp, gold, boss = x, g, b
			}
		}

		p.bus.Publish(events.Death{
			TargetID: target.ID(),
			KillerID: killerID,
			XP:       xp,
			Gold:     gold,
			IsBoss:   boss,
		})

		slog.Debug("combatant died", "target", target.ID(), "killer", killerID, "xp", xp, "boss", boss)
	})
	return killed
}
