package model

import (
	"sync"
	"sync/atomic"
)

// objectIDCounter issues session-unique combatant IDs.
var objectIDCounter atomic.Uint32

// NextObjectID returns a fresh combatant object ID.
func NextObjectID() uint32 {
	return objectIDCounter.Add(1)
}

// DamageType classifies a hit for mitigation purposes.
type DamageType int8

const (
	DamagePhysical DamageType = iota
	DamageMagical
	DamageTrue // bypasses armor and defense entirely
)

// CombatStats is the derived stat block a combatant fights with.
// For players it is recomputed by the stat aggregator; for monsters it is
// filled once from the monster template.
type CombatStats struct {
	MaxHP         int
	MaxShield     int
	Armor         int     // flat reduction before percent mitigation
	Defense       float64 // feeds defense/(defense+K) mitigation
	AttackPower   float64
	MagicPower    float64
	CritChance    float64 // [0,1]
	CritDamage    float64 // multiplier, e.g. 1.5
	MoveSpeed     float64
	AttackSpeed   float64
	Dodge         float64 // [0,0.75]
	DamageReduce  float64 // [0,0.75]
	StatusResist  float64 // chance to shrug off a status application
	StatusPotency float64 // scales outgoing status damage and duration
	MaxEnergy     int
}

// Combatant is a live participant in the simulation: the player or a monster.
// All mutation happens inside the tick in a fixed phase order, so fields are
// plain; the death latch is the one exception because death must fire its
// side effects exactly once no matter which code path drains the last HP.
type Combatant struct {
	id     uint32
	name   string
	loc    Location
	facing float64 // radians
	radius float64 // physical size, widens melee arc footprint

	stats         CombatStats
	currentHP     int
	currentShield int

	dead      bool
	deathOnce sync.Once

	// Behavior flags driven by the status engine.
	Stunned bool
}

// NewCombatant creates a combatant at full HP and shield.
func NewCombatant(name string, loc Location, radius float64, stats CombatStats) *Combatant {
	return &Combatant{
		id:            NextObjectID(),
		name:          name,
		loc:           loc,
		radius:        radius,
		stats:         stats,
		currentHP:     stats.MaxHP,
		currentShield: stats.MaxShield,
	}
}

// ID returns the session-unique object ID.
func (c *Combatant) ID() uint32 { return c.id }

// Name returns the display name.
func (c *Combatant) Name() string { return c.name }

// Location returns the current position.
func (c *Combatant) Location() Location { return c.loc }

// SetLocation moves the combatant. Callers must have already clamped the
// position against terrain via the host's safe-resolve function.
func (c *Combatant) SetLocation(loc Location) { c.loc = loc }

// Facing returns the facing angle in radians.
func (c *Combatant) Facing() float64 { return c.facing }

// SetFacing sets the facing angle.
func (c *Combatant) SetFacing(angle float64) { c.facing = NormalizeAngle(angle) }

// Radius returns the physical collision radius.
func (c *Combatant) Radius() float64 { return c.radius }

// Stats returns the current derived stat block.
func (c *Combatant) Stats() CombatStats { return c.stats }

// SetStats replaces the derived stat block, rescaling current HP and shield
// proportionally when the corresponding max changes. A combatant at 50% HP
// stays at 50% HP after a max-HP buff lands or drops.
func (c *Combatant) SetStats(stats CombatStats) {
	if stats.MaxHP < 1 {
		stats.MaxHP = 1
	}
	if stats.MaxShield < 0 {
		stats.MaxShield = 0
	}

	if stats.MaxHP != c.stats.MaxHP && c.stats.MaxHP > 0 {
		ratio := float64(c.currentHP) / float64(c.stats.MaxHP)
		c.currentHP = int(ratio * float64(stats.MaxHP))
		if c.currentHP < 1 && !c.dead {
			c.currentHP = 1
		}
	}
	if stats.MaxShield != c.stats.MaxShield && c.stats.MaxShield > 0 {
		ratio := float64(c.currentShield) / float64(c.stats.MaxShield)
		c.currentShield = int(ratio * float64(stats.MaxShield))
	}

	c.stats = stats
	c.clamp()
}

// CurrentHP returns current hit points.
func (c *Combatant) CurrentHP() int { return c.currentHP }

// CurrentShield returns current shield points.
func (c *Combatant) CurrentShield() int { return c.currentShield }

// SetCurrentHP sets HP clamped to [0, max].
func (c *Combatant) SetCurrentHP(hp int) {
	c.currentHP = hp
	c.clamp()
}

// SetCurrentShield sets shield clamped to [0, max].
func (c *Combatant) SetCurrentShield(shield int) {
	c.currentShield = shield
	c.clamp()
}

// IsDead reports whether the combatant has died.
func (c *Combatant) IsDead() bool { return c.dead }

// MarkDead latches the dead state and runs onDeath exactly once.
// Subsequent calls are no-ops even if HP is forced to zero again.
func (c *Combatant) MarkDead(onDeath func()) {
	c.deathOnce.Do(func() {
		c.dead = true
		c.currentHP = 0
		if onDeath != nil {
			onDeath()
		}
	})
}

func (c *Combatant) clamp() {
	if c.currentHP < 0 {
		c.currentHP = 0
	}
	if c.currentHP > c.stats.MaxHP {
		c.currentHP = c.stats.MaxHP
	}
	if c.currentShield < 0 {
		c.currentShield = 0
	}
	if c.currentShield > c.stats.MaxShield {
		c.currentShield = c.stats.MaxShield
	}
}
