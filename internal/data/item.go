package data

// PlayerRadius is the physical collision radius of the player combatant.
const PlayerRadius = 14.0

// Affix is a single named modifier on an equipped item. An affix may carry a
// flat bonus, a percent bonus, or both.
type Affix struct {
	Stat    string  `yaml:"stat"`
	Flat    float64 `yaml:"flat"`
	Percent float64 `yaml:"percent"`
}

// Item is a fully rolled equippable item as produced by the loot
// collaborator. The core never rolls affixes and never persists items; it
// only reads their stat bonuses while they are equipped.
type Item struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Slot    string  `yaml:"slot"` // weapon, helm, chest, boots, ring, amulet
	Affixes []Affix `yaml:"affixes"`
}
