package data

// SkillMechanic describes how a skill is activated.
type SkillMechanic string

const (
	MechanicOneShot SkillMechanic = "oneshot" // fire once, pay cost, start cooldown
	MechanicToggle  SkillMechanic = "toggle"  // flip on/off, drain while on
	MechanicChannel SkillMechanic = "channel" // hold to charge, release to fire
)

// SkillArchetype describes how a skill resolves targets and damage.
type SkillArchetype string

const (
	ArchetypeMelee      SkillArchetype = "melee"
	ArchetypeAoE        SkillArchetype = "aoe"
	ArchetypeProjectile SkillArchetype = "projectile"
	ArchetypeChain      SkillArchetype = "chain"
	ArchetypeBuff       SkillArchetype = "buff"
	ArchetypeInstant    SkillArchetype = "instant"
)

// StatDelta is one stat modification carried by a buff skill.
// Flat is applied before percent scaling; Percent is a fraction (0.1 = +10%).
type StatDelta struct {
	Stat    string  `yaml:"stat"`
	Flat    float64 `yaml:"flat"`
	Percent float64 `yaml:"percent"`
}

// StatusApplication describes a status a skill tries to inflict on hit.
type StatusApplication struct {
	Type   string  `yaml:"type"`
	Chance float64 `yaml:"chance"`
}

// SkillLevel holds the per-level numbers of a skill. Fields that do not
// apply to the skill's archetype are left zero.
type SkillLevel struct {
	Damage           float64 `yaml:"damage"`         // raw damage before pipeline
	DamageMagical    bool    `yaml:"damage_magical"` // scales with magic power instead of attack
	EnergyCost       float64 `yaml:"energy_cost"`    // per activation, or per second for toggles
	CooldownSeconds  float64 `yaml:"cooldown_seconds"`
	ArmorPenFraction float64 `yaml:"armor_pen_fraction"` // reduces target defense before mitigation

	// Melee arc
	Range    float64 `yaml:"range"`
	ArcWidth float64 `yaml:"arc_width"` // full arc width in radians

	// AoE circle
	Radius        float64 `yaml:"radius"`
	ChargeSeconds float64 `yaml:"charge_seconds"` // channel window to reach full radius/damage

	// Projectile
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	MaxDistance     float64 `yaml:"max_distance"`
	Piercing        bool    `yaml:"piercing"`
	Homing          bool    `yaml:"homing"`

	// Chain
	ChainJumps   int     `yaml:"chain_jumps"`
	BounceRadius float64 `yaml:"bounce_radius"`

	// Buff
	BuffDurationSeconds float64     `yaml:"buff_duration_seconds"` // -1 for toggle buffs
	BuffDeltas          []StatDelta `yaml:"buff_deltas"`

	// Instant resource conversion
	HPCost     float64 `yaml:"hp_cost"`
	EnergyGain float64 `yaml:"energy_gain"`

	// Instant one-shot combat bonuses, spent by the next landed hit
	NextHitMultiplier float64 `yaml:"next_hit_multiplier"`
	GuaranteedCrits   int     `yaml:"guaranteed_crits"`

	// Status on hit
	Status *StatusApplication `yaml:"status,omitempty"`

	// Unlock gating
	RequiredPlayerLevel int `yaml:"required_player_level"`
	PointCost           int `yaml:"point_cost"`
}

// SkillTemplate is the static definition of one skill across all its levels.
// Levels are 1-based: Levels[0] is skill level 1.
type SkillTemplate struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Mechanic  SkillMechanic  `yaml:"mechanic"`
	Archetype SkillArchetype `yaml:"archetype"`
	Category  string         `yaml:"category"` // slot category (active, utility, ...)
	Levels    []SkillLevel   `yaml:"levels"`
}

// MaxLevel returns the highest defined skill level.
func (t *SkillTemplate) MaxLevel() int {
	return len(t.Levels)
}

// Level returns the numbers for a 1-based skill level, or nil if undefined.
func (t *SkillTemplate) Level(level int) *SkillLevel {
	if level < 1 || level > len(t.Levels) {
		return nil
	}
	return &t.Levels[level-1]
}
