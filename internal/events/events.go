// Package events defines the closed set of outcome events the simulation
// core emits and the synchronous bus that delivers them.
//
// The dispatch contract is strictly synchronous: every handler runs before
// Publish returns, so a listener's side effects are visible to the emitting
// subsystem within the same call. Subsystems rely on this ordering; an async
// bus would break the tick model.
package events

import "github.com/nocten/valdera/internal/model"

// Kind identifies an event variant.
type Kind int

const (
	KindDamageDealt Kind = iota
	KindCritOccurred
	KindShieldBroken
	KindKnockback
	KindDeath
	KindStatusApplied
	KindStatusTicked
	KindStatusExpired
	KindEnergyChanged
	KindEnergyInsufficient
	KindSkillUsed
	KindCooldownStarted
	KindCooldownReady
	KindSkillEquipped
	KindSkillUnequipped
	KindSkillLevelUp
	KindPlayerLevelUp
	KindStatsRecalculated
	KindBuffExpired
	KindNextHitBonusExpired
	KindGuaranteedCritExpired
	KindItemEquipped
	KindItemUnequipped
)

// Event is the sealed interface implemented by every outcome variant.
// External packages cannot add variants, so listeners switching on the
// concrete type can be checked for exhaustiveness.
type Event interface {
	Kind() Kind
	sealed()
}

// DamageDealt fires for every resolved hit, including status ticks.
type DamageDealt struct {
	SourceID   uint32
	TargetID   uint32
	Amount     int
	Type       model.DamageType
	Crit       bool
	FromStatus string // status type for DoT ticks, empty for direct hits
}

// CritOccurred fires alongside DamageDealt when the hit was critical.
type CritOccurred struct {
	SourceID uint32
	TargetID uint32
	Amount   int
}

// ShieldBroken fires exactly once per shield break.
type ShieldBroken struct {
	TargetID uint32
}

// Knockback reports the displacement applied to a target, already clamped
// against terrain by the host's safe-resolve function.
type Knockback struct {
	TargetID uint32
	Vector   model.Vector
	From     model.Location
	To       model.Location
}

// Death fires exactly once per combatant and carries the reward fields the
// progression collaborator consumes.
type Death struct {
	TargetID uint32
	KillerID uint32
	XP       int64
	Gold     int
	IsBoss   bool
}

// StatusApplied fires when a status instance is created or re-triggered.
type StatusApplied struct {
	TargetID uint32
	SourceID uint32
	Type     string
	Stacks   int
}

// StatusTicked fires for each periodic damage tick.
type StatusTicked struct {
	TargetID uint32
	Type     string
	Damage   int
	Stacks   int
}

// StatusExpired fires when a status instance is removed for any reason.
type StatusExpired struct {
	TargetID uint32
	Type     string
}

// EnergyChanged reports the new energy level after any gain or spend.
type EnergyChanged struct {
	OwnerID uint32
	Current float64
	Max     float64
}

// EnergyInsufficient fires when a spend attempt fails.
type EnergyInsufficient struct {
	OwnerID  uint32
	Required float64
	Current  float64
}

// SkillUsed fires when an activation passes all checks.
type SkillUsed struct {
	OwnerID uint32
	SkillID string
	Level   int
	Origin  model.Location
	Angle   float64
}

// CooldownStarted fires when a skill enters cooldown.
type CooldownStarted struct {
	OwnerID  uint32
	SkillID  string
	Duration float64 // seconds
}

// CooldownReady fires when a skill's cooldown reaches zero.
type CooldownReady struct {
	OwnerID uint32
	SkillID string
}

// SkillEquipped fires when a skill is assigned to a slot.
type SkillEquipped struct {
	OwnerID uint32
	SkillID string
	Slot    int
}

// SkillUnequipped fires when a skill leaves a slot (evicted or vacated).
type SkillUnequipped struct {
	OwnerID uint32
	SkillID string
	Slot    int
}

// SkillLevelUp fires when a skill is unlocked or upgraded.
type SkillLevelUp struct {
	OwnerID uint32
	SkillID string
	Level   int
}

// PlayerLevelUp fires once per level gained.
type PlayerLevelUp struct {
	OwnerID  uint32
	NewLevel int
}

// StatsRecalculated fires after the stat aggregator recomputes.
type StatsRecalculated struct {
	OwnerID uint32
}

// BuffExpired fires when a timed buff runs out or is explicitly removed.
type BuffExpired struct {
	OwnerID uint32
	BuffID  string
}

// NextHitBonusExpired fires when the consumed-once bonus multiplier is spent.
type NextHitBonusExpired struct {
	OwnerID uint32
}

// GuaranteedCritExpired fires when the last guaranteed-crit charge is spent.
type GuaranteedCritExpired struct {
	OwnerID uint32
}

// ItemEquipped fires when an item is placed into an equipment slot.
type ItemEquipped struct {
	OwnerID uint32
	ItemID  string
	Slot    string
}

// ItemUnequipped fires when an item leaves an equipment slot, either by an
// explicit unequip or by being replaced.
type ItemUnequipped struct {
	OwnerID uint32
	ItemID  string
	Slot    string
}

func (DamageDealt) Kind() Kind           { return KindDamageDealt }
func (CritOccurred) Kind() Kind          { return KindCritOccurred }
func (ShieldBroken) Kind() Kind          { return KindShieldBroken }
func (Knockback) Kind() Kind             { return KindKnockback }
func (Death) Kind() Kind                 { return KindDeath }
func (StatusApplied) Kind() Kind         { return KindStatusApplied }
func (StatusTicked) Kind() Kind          { return KindStatusTicked }
func (StatusExpired) Kind() Kind         { return KindStatusExpired }
func (EnergyChanged) Kind() Kind         { return KindEnergyChanged }
func (EnergyInsufficient) Kind() Kind    { return KindEnergyInsufficient }
func (SkillUsed) Kind() Kind             { return KindSkillUsed }
func (CooldownStarted) Kind() Kind       { return KindCooldownStarted }
func (CooldownReady) Kind() Kind         { return KindCooldownReady }
func (SkillEquipped) Kind() Kind         { return KindSkillEquipped }
func (SkillUnequipped) Kind() Kind       { return KindSkillUnequipped }
func (SkillLevelUp) Kind() Kind          { return KindSkillLevelUp }
func (PlayerLevelUp) Kind() Kind         { return KindPlayerLevelUp }
func (StatsRecalculated) Kind() Kind     { return KindStatsRecalculated }
func (BuffExpired) Kind() Kind           { return KindBuffExpired }
func (NextHitBonusExpired) Kind() Kind   { return KindNextHitBonusExpired }
func (GuaranteedCritExpired) Kind() Kind { return KindGuaranteedCritExpired }
func (ItemEquipped) Kind() Kind          { return KindItemEquipped }
func (ItemUnequipped) Kind() Kind        { return KindItemUnequipped }

func (DamageDealt) sealed()           {}
func (CritOccurred) sealed()          {}
func (ShieldBroken) sealed()          {}
func (Knockback) sealed()             {}
func (Death) sealed()                 {}
func (StatusApplied) sealed()         {}
func (StatusTicked) sealed()          {}
func (StatusExpired) sealed()         {}
func (EnergyChanged) sealed()         {}
func (EnergyInsufficient) sealed()    {}
func (SkillUsed) sealed()             {}
func (CooldownStarted) sealed()       {}
func (CooldownReady) sealed()         {}
func (SkillEquipped) sealed()         {}
func (SkillUnequipped) sealed()       {}
func (SkillLevelUp) sealed()          {}
func (PlayerLevelUp) sealed()         {}
func (StatsRecalculated) sealed()     {}
func (BuffExpired) sealed()           {}
func (NextHitBonusExpired) sealed()   {}
func (GuaranteedCritExpired) sealed() {}
func (ItemEquipped) sealed()          {}
func (ItemUnequipped) sealed()        {}
