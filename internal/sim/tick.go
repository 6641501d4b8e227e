package sim

import (
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/game/combat"
	"github.com/nocten/valdera/internal/game/skill"
	"github.com/nocten/valdera/internal/model"
)

// Tick advances the simulation by one frame. Subsystems run in a fixed
// order — resource regen, cooldowns and charge, status ticks, buff decay and
// stat recompute, projectile stepping — and only then are queued activation
// intents resolved, so no subsystem is ever re-entered mid-tick.
func (c *Context) Tick() {
	dt := c.Cfg.TickSeconds()
	c.tickCount++

	// 1. Resources.
	c.Energy.Tick(dt)

	// 2. Cooldowns, toggle drain, channel charge.
	c.Skills.Tick(dt)

	// 3. Status ticks and expiry.
	c.Statuses.Tick(dt)

	// 4. Buff decay and lazy stat recompute, then resource max sync.
	c.Aggregator.Tick(dt)
	c.Energy.SetMax(float64(c.Player.Stats().MaxEnergy))

	// 5. Projectiles in flight.
	c.Resolver.StepProjectiles(dt)

	// 6. Basic attack cadence.
	if c.attackTimer > 0 {
		c.attackTimer -= dt
		if c.attackTimer < 0 {
			c.attackTimer = 0
		}
	}

	// 7. New activation requests, in arrival order.
	pending := c.intents
	c.intents = c.intents[:0]
	for _, in := range pending {
		switch in.kind {
		case intentAttack:
			c.BasicAttack(in.angle)
		case intentSkill:
			c.Skills.Activate(in.skillID, in.angle)
		}
	}
}

// TickCount returns the number of ticks run so far.
func (c *Context) TickCount() uint64 { return c.tickCount }

// QueueAttack requests a basic attack on the next tick.
func (c *Context) QueueAttack(angle float64) {
	c.intents = append(c.intents, intent{kind: intentAttack, angle: angle})
}

// QueueSkill requests a skill activation on the next tick.
func (c *Context) QueueSkill(skillID string, angle float64) {
	c.intents = append(c.intents, intent{kind: intentSkill, skillID: skillID, angle: angle})
}

// BasicAttack swings the player's weapon in an arc toward angle. Subject to
// the attack-speed cadence and the stun flag; routed through the same melee
// resolution and damage pipeline as melee skills.
func (c *Context) BasicAttack(angle float64) bool {
	if c.Player.IsDead() || c.Player.Stunned || c.attackTimer > 0 {
		return false
	}

	st := c.Player.Stats()
	if st.AttackSpeed > 0 {
		c.attackTimer = 1.0 / st.AttackSpeed
	}
	c.Player.SetFacing(angle)

	// Weapon damage is the player's attack power: half base, half through
	// the resolver's power scaling.
	spec := data.SkillLevel{
		Damage:   st.AttackPower * 0.5,
		Range:    c.Cfg.BasicAttackRange,
		ArcWidth: c.Cfg.BasicAttackArc,
	}
	c.Resolver.Resolve(skill.Context{
		Caster:    c.Player,
		Origin:    c.Player.Location(),
		Angle:     angle,
		Charge:    1,
		SkillID:   "basic_attack",
		Level:     1,
		Archetype: data.ArchetypeMelee,
		Spec:      &spec,
	})
	return true
}

// MonsterAttack resolves a monster's melee hit on the player. Monster
// behavior (when to attack, pathing) belongs to the host AI; this is the
// damage entry point it calls.
func (c *Context) MonsterAttack(monsterID uint32) combat.Result {
	monster, ok := c.monsterByID[monsterID]
	if !ok || monster.IsDead() || monster.Stunned {
		return combat.Result{}
	}

	st := monster.Stats()
	return c.Pipeline.ResolveDamage(c.Player.Combatant, combat.Hit{
		SourceID:       monster.ID(),
		SourceLoc:      monster.Location(),
		RawDamage:      st.AttackPower,
		CritChance:     st.CritChance,
		CritDamageMult: st.CritDamage,
		Type:           model.DamagePhysical,
	})
}

// SpeedMultiplier exposes the player/monster movement modifier from status
// effects to the movement collaborator.
func (c *Context) SpeedMultiplier(targetID uint32) float64 {
	return c.Statuses.SpeedMultiplier(targetID)
}
