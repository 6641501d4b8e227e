package model

import (
	"cmp"
	"slices"

	"github.com/nocten/valdera/internal/data"
)

// Player is the player-controlled combatant. On top of the shared combatant
// state it tracks progression (level, xp, skill points, ascension) and the
// currently equipped items whose affixes feed the stat aggregator.
type Player struct {
	*Combatant

	level       int
	xp          int64
	skillPoints int
	ascension   int // ascension tier, each grants a global percent bonus

	// equipment maps slot name → equipped item. Items arrive fully rolled
	// from the loot collaborator; the core only reads their affixes.
	equipment map[string]data.Item
}

// NewPlayer creates a level-1 player with empty equipment.
func NewPlayer(name string, loc Location, stats CombatStats) *Player {
	return &Player{
		Combatant: NewCombatant(name, loc, data.PlayerRadius, stats),
		level:     1,
		equipment: make(map[string]data.Item),
	}
}

// Level returns the current level.
func (p *Player) Level() int { return p.level }

// SetLevel sets the level directly. Used by hosts restoring a session.
func (p *Player) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	p.level = level
}

// Experience returns accumulated experience.
func (p *Player) Experience() int64 { return p.xp }

// AddExperience adds xp and returns the number of levels gained against the
// supplied xp curve. Level-up side effects (events, skill points, stat
// recompute) belong to the caller.
func (p *Player) AddExperience(amount int64, curve *data.XPCurve) int {
	if amount <= 0 || curve == nil {
		return 0
	}
	p.xp += amount

	gained := 0
	for p.level < curve.MaxLevel() && p.xp >= curve.TotalForLevel(p.level+1) {
		p.level++
		gained++
	}
	return gained
}

// SkillPoints returns unspent skill points.
func (p *Player) SkillPoints() int { return p.skillPoints }

// GrantSkillPoints adds points to the unspent pool.
func (p *Player) GrantSkillPoints(n int) {
	if n > 0 {
		p.skillPoints += n
	}
}

// SpendSkillPoints atomically deducts cost if affordable.
func (p *Player) SpendSkillPoints(cost int) bool {
	if cost < 0 || p.skillPoints < cost {
		return false
	}
	p.skillPoints -= cost
	return true
}

// Ascension returns the ascension tier.
func (p *Player) Ascension() int { return p.ascension }

// SetAscension sets the ascension tier.
func (p *Player) SetAscension(tier int) {
	if tier < 0 {
		tier = 0
	}
	p.ascension = tier
}

// Equip places item into its slot and returns the previous occupant, if any.
func (p *Player) Equip(item data.Item) (prev data.Item, hadPrev bool) {
	prev, hadPrev = p.equipment[item.Slot]
	p.equipment[item.Slot] = item
	return prev, hadPrev
}

// Unequip removes and returns the item in slot.
func (p *Player) Unequip(slot string) (data.Item, bool) {
	item, ok := p.equipment[slot]
	if ok {
		delete(p.equipment, slot)
	}
	return item, ok
}

// EquippedItems returns the current equipment set ordered by slot name, so
// downstream float accumulation is reproducible. The returned slice is a
// copy; mutating it does not touch the player.
func (p *Player) EquippedItems() []data.Item {
	items := make([]data.Item, 0, len(p.equipment))
	for _, item := range p.equipment {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b data.Item) int { return cmp.Compare(a.Slot, b.Slot) })
	return items
}
