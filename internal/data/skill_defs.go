package data

import "math"

// skillDefs holds the built-in skill definitions. Hosts may override or
// extend them from yaml via LoadSkillsFile.
var skillDefs = []SkillTemplate{
	{
		ID:        "cleave",
		Name:      "Cleave",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeMelee,
		Category:  "active",
		Levels: []SkillLevel{
			{Damage: 40, EnergyCost: 12, CooldownSeconds: 2, Range: 48, ArcWidth: math.Pi / 2, RequiredPlayerLevel: 1, PointCost: 1},
			{Damage: 55, EnergyCost: 12, CooldownSeconds: 2, Range: 48, ArcWidth: math.Pi / 2, RequiredPlayerLevel: 3, PointCost: 1,
				Status: &StatusApplication{Type: "bleed", Chance: 0.25}},
			{Damage: 75, EnergyCost: 14, CooldownSeconds: 2, Range: 52, ArcWidth: math.Pi * 0.6, RequiredPlayerLevel: 6, PointCost: 2,
				Status: &StatusApplication{Type: "bleed", Chance: 0.4}},
		},
	},
	{
		ID:        "nova",
		Name:      "Frost Nova",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeAoE,
		Category:  "active",
		Levels: []SkillLevel{
			{Damage: 30, DamageMagical: true, EnergyCost: 20, CooldownSeconds: 6, Radius: 80, RequiredPlayerLevel: 2, PointCost: 1,
				Status: &StatusApplication{Type: "freeze", Chance: 0.5}},
			{Damage: 45, DamageMagical: true, EnergyCost: 22, CooldownSeconds: 6, Radius: 90, RequiredPlayerLevel: 5, PointCost: 1,
				Status: &StatusApplication{Type: "freeze", Chance: 0.65}},
		},
	},
	{
		ID:        "earthshatter",
		Name:      "Earthshatter",
		Mechanic:  MechanicChannel,
		Archetype: ArchetypeAoE,
		Category:  "active",
		Levels: []SkillLevel{
			{Damage: 120, EnergyCost: 30, CooldownSeconds: 10, Radius: 140, ChargeSeconds: 2, RequiredPlayerLevel: 4, PointCost: 2,
				Status: &StatusApplication{Type: "slow", Chance: 1.0}},
			{Damage: 170, EnergyCost: 32, CooldownSeconds: 10, Radius: 160, ChargeSeconds: 2, RequiredPlayerLevel: 8, PointCost: 2,
				Status: &StatusApplication{Type: "slow", Chance: 1.0}},
		},
	},
	{
		ID:        "firebolt",
		Name:      "Firebolt",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeProjectile,
		Category:  "active",
		Levels: []SkillLevel{
			{Damage: 35, DamageMagical: true, EnergyCost: 10, CooldownSeconds: 1, ProjectileSpeed: 320, MaxDistance: 400, RequiredPlayerLevel: 1, PointCost: 1,
				Status: &StatusApplication{Type: "burn", Chance: 0.3}},
			{Damage: 50, DamageMagical: true, EnergyCost: 11, CooldownSeconds: 1, ProjectileSpeed: 340, MaxDistance: 420, Homing: true, RequiredPlayerLevel: 4, PointCost: 1,
				Status: &StatusApplication{Type: "burn", Chance: 0.45}},
			{Damage: 70, DamageMagical: true, EnergyCost: 12, CooldownSeconds: 1, ProjectileSpeed: 360, MaxDistance: 450, Homing: true, Piercing: true, RequiredPlayerLevel: 7, PointCost: 2,
				Status: &StatusApplication{Type: "burn", Chance: 0.6}},
		},
	},
	{
		ID:        "chainlightning",
		Name:      "Chain Lightning",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeChain,
		Category:  "active",
		Levels: []SkillLevel{
			{Damage: 45, DamageMagical: true, EnergyCost: 18, CooldownSeconds: 5, Range: 200, ChainJumps: 3, BounceRadius: 100, RequiredPlayerLevel: 3, PointCost: 1},
			{Damage: 60, DamageMagical: true, EnergyCost: 20, CooldownSeconds: 5, Range: 220, ChainJumps: 4, BounceRadius: 110, RequiredPlayerLevel: 6, PointCost: 2},
		},
	},
	{
		ID:        "battlecry",
		Name:      "Battle Cry",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeBuff,
		Category:  "utility",
		Levels: []SkillLevel{
			{EnergyCost: 25, CooldownSeconds: 15, BuffDurationSeconds: 8, RequiredPlayerLevel: 2, PointCost: 1,
				BuffDeltas: []StatDelta{{Stat: StatAttackPower, Percent: 0.2}, {Stat: StatAttackSpeed, Percent: 0.1}}},
			{EnergyCost: 25, CooldownSeconds: 15, BuffDurationSeconds: 10, RequiredPlayerLevel: 5, PointCost: 1,
				BuffDeltas: []StatDelta{{Stat: StatAttackPower, Percent: 0.3}, {Stat: StatAttackSpeed, Percent: 0.15}}},
		},
	},
	{
		ID:        "frenzy",
		Name:      "Frenzy",
		Mechanic:  MechanicToggle,
		Archetype: ArchetypeBuff,
		Category:  "utility",
		Levels: []SkillLevel{
			{EnergyCost: 6, CooldownSeconds: 4, BuffDurationSeconds: -1, RequiredPlayerLevel: 3, PointCost: 1,
				BuffDeltas: []StatDelta{{Stat: StatAttackSpeed, Percent: 0.25}, {Stat: StatMoveSpeed, Percent: 0.15}}},
			{EnergyCost: 5, CooldownSeconds: 4, BuffDurationSeconds: -1, RequiredPlayerLevel: 7, PointCost: 2,
				BuffDeltas: []StatDelta{{Stat: StatAttackSpeed, Percent: 0.35}, {Stat: StatMoveSpeed, Percent: 0.2}}},
		},
	},
	{
		ID:        "deathmark",
		Name:      "Death Mark",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeInstant,
		Category:  "utility",
		Levels: []SkillLevel{
			{EnergyCost: 15, CooldownSeconds: 12, NextHitMultiplier: 2.0, RequiredPlayerLevel: 5, PointCost: 1},
			{EnergyCost: 15, CooldownSeconds: 12, NextHitMultiplier: 2.5, GuaranteedCrits: 1, RequiredPlayerLevel: 9, PointCost: 2},
		},
	},
	{
		ID:        "bloodpact",
		Name:      "Blood Pact",
		Mechanic:  MechanicOneShot,
		Archetype: ArchetypeInstant,
		Category:  "utility",
		Levels: []SkillLevel{
			{EnergyCost: 0, CooldownSeconds: 8, HPCost: 30, EnergyGain: 40, RequiredPlayerLevel: 4, PointCost: 1},
			{EnergyCost: 0, CooldownSeconds: 8, HPCost: 35, EnergyGain: 55, RequiredPlayerLevel: 8, PointCost: 2},
		},
	},
}
