package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sim holds all tunable balance constants for the combat simulation.
// Every numeric knob the subsystems use lives here so that a host can
// rebalance without recompiling. DefaultSim() is the authoritative baseline;
// Load overlays values from a yaml file on top of it.
type Sim struct {
	// Tick
	TickRate int `yaml:"tick_rate"` // simulation ticks per second

	// Damage pipeline
	DefenseConstant float64 `yaml:"defense_constant"` // percent-mitigation half-value point
	MinDamage       int     `yaml:"min_damage"`       // post-mitigation damage floor
	KnockbackBase   float64 `yaml:"knockback_base"`   // units per hit
	KnockbackCrit   float64 `yaml:"knockback_crit"`   // multiplier on crit
	ShieldResist    float64 `yaml:"shield_resist"`    // shield's own damage resistance factor

	// Basic attack
	BasicAttackRange float64 `yaml:"basic_attack_range"`
	BasicAttackArc   float64 `yaml:"basic_attack_arc"` // full arc width, radians

	// Status effects
	Status StatusConfig `yaml:"status"`

	// Skills
	CooldownFloorFraction float64 `yaml:"cooldown_floor_fraction"` // reduction can never push below base*fraction

	// Energy
	EnergyRegenPerSecond float64 `yaml:"energy_regen_per_second"`

	// Stat clamps
	CritChanceCap   float64 `yaml:"crit_chance_cap"`
	DodgeCap        float64 `yaml:"dodge_cap"`
	DamageReduceCap float64 `yaml:"damage_reduce_cap"`
}

// StatusConfig holds the per-type status effect tuning.
type StatusConfig struct {
	FreezeReapplySeconds float64 `yaml:"freeze_reapply_seconds"` // lockout after freeze expiry
	SlowFraction         float64 `yaml:"slow_fraction"`          // move speed reduction while slowed
	MinTickDamage        int     `yaml:"min_tick_damage"`
}

// DefaultSim returns the baseline balance configuration.
func DefaultSim() Sim {
	return Sim{
		TickRate:         30,
		DefenseConstant:  100,
		MinDamage:        1,
		KnockbackBase:    24,
		KnockbackCrit:    1.5,
		ShieldResist:     0.25,
		BasicAttackRange: 44,
		BasicAttackArc:   1.5708,
		Status: StatusConfig{
			FreezeReapplySeconds: 6,
			SlowFraction:         0.35,
			MinTickDamage:        1,
		},
		CooldownFloorFraction: 0.3,
		EnergyRegenPerSecond:  5,
		CritChanceCap:         1.0,
		DodgeCap:              0.75,
		DamageReduceCap:       0.75,
	}
}

// TickSeconds returns the duration of one tick in seconds.
func (s Sim) TickSeconds() float64 {
	if s.TickRate <= 0 {
		return 1.0 / 30.0
	}
	return 1.0 / float64(s.TickRate)
}

// Load reads a Sim config from a yaml file, overlaying DefaultSim values.
func Load(path string) (Sim, error) {
	cfg := DefaultSim()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading sim config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing sim config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating sim config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configs that would break pipeline invariants.
func (s Sim) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", s.TickRate)
	}
	if s.DefenseConstant <= 0 {
		return fmt.Errorf("defense_constant must be positive, got %v", s.DefenseConstant)
	}
	if s.MinDamage < 0 {
		return fmt.Errorf("min_damage must be non-negative, got %d", s.MinDamage)
	}
	if s.CooldownFloorFraction < 0 || s.CooldownFloorFraction > 1 {
		return fmt.Errorf("cooldown_floor_fraction must be in [0,1], got %v", s.CooldownFloorFraction)
	}
	if s.Status.SlowFraction < 0 || s.Status.SlowFraction >= 1 {
		return fmt.Errorf("status.slow_fraction must be in [0,1), got %v", s.Status.SlowFraction)
	}
	return nil
}
