package data

// BaseStatsForLevel returns the player's base stat values at a level, before
// equipment, buffs, and ascension. Keyed by the canonical stat keys.
//
// Growth is linear per level; the curve numbers live here rather than in
// config because they define the character class, not a balance knob.
func BaseStatsForLevel(level int) map[string]float64 {
	if level < 1 {
		level = 1
	}
	lvl := float64(level - 1)

	return map[string]float64{
		StatMaxHP:         100 + 20*lvl,
		StatMaxShield:     0,
		StatMaxEnergy:     100 + 5*lvl,
		StatArmor:         2 + 1*lvl,
		StatDefense:       20 + 6*lvl,
		StatAttackPower:   10 + 3*lvl,
		StatMagicPower:    10 + 3*lvl,
		StatCritChance:    0.05,
		StatCritDamage:    1.5,
		StatMoveSpeed:     90,
		StatAttackSpeed:   1.0,
		StatDodge:         0.02,
		StatDamageReduce:  0,
		StatStatusResist:  0,
		StatStatusPotency: 1.0,
	}
}
