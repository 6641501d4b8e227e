package data

// Canonical stat keys used by item affixes, buff deltas, and the stat
// aggregator. Unknown keys degrade to a no-op with a warning rather than
// failing the tick.
const (
	StatMaxHP         = "maxHP"
	StatMaxShield     = "maxShield"
	StatMaxEnergy     = "maxEnergy"
	StatArmor         = "armor"
	StatDefense       = "defense"
	StatAttackPower   = "attackPower"
	StatMagicPower    = "magicPower"
	StatCritChance    = "critChance"
	StatCritDamage    = "critDamage"
	StatMoveSpeed     = "moveSpeed"
	StatAttackSpeed   = "attackSpeed"
	StatDodge         = "dodge"
	StatDamageReduce  = "damageReduce"
	StatStatusResist  = "statusResist"
	StatStatusPotency = "statusPotency"
)
