// Package skill implements skill progression (unlock, upgrade, equip), the
// activation state machine (cooldowns, toggles, channels), and the effect
// resolver that turns an activation into pipeline hits.
package skill

import (
	"log/slog"

	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/model"
)

// slotsPerCategory fixes the equip bar layout per skill category.
var slotsPerCategory = map[string]int{
	"active":  4,
	"utility": 2,
}

// NoSlot marks an unlocked skill that is not equipped anywhere.
const NoSlot = -1

// BookEntry tracks one unlocked skill's progression state.
type BookEntry struct {
	Level int
	Slot  int // NoSlot when unequipped
}

// Book is the player's skill progression: which skills are unlocked, at what
// level, and where they are equipped. Runtime activation state lives in the
// Manager; entries here persist for the whole session.
type Book struct {
	player *model.Player
	bus    *events.Bus

	entries map[string]*BookEntry
	slots   map[string][]string // category → slot index → skill ID ("" empty)

	// onEvict lets the manager deactivate a running toggle/channel before
	// its skill leaves a slot.
	onEvict func(skillID string)
}

// NewBook creates an empty skill book for player.
func NewBook(player *model.Player, bus *events.Bus) *Book {
	slots := make(map[string][]string, len(slotsPerCategory))
	for category, n := range slotsPerCategory {
		slots[category] = make([]string, n)
	}
	return &Book{
		player:  player,
		bus:     bus,
		entries: make(map[string]*BookEntry),
		slots:   slots,
	}
}

// Entry returns the progression state for a skill, or nil if locked.
func (b *Book) Entry(skillID string) *BookEntry {
	return b.entries[skillID]
}

// Level returns the unlocked level of a skill, 0 if locked.
func (b *Book) Level(skillID string) int {
	if entry := b.entries[skillID]; entry != nil {
		return entry.Level
	}
	return 0
}

// SlotContents returns the skill ID equipped in a slot, "" if empty.
func (b *Book) SlotContents(category string, slot int) string {
	row := b.slots[category]
	if slot < 0 || slot >= len(row) {
		return ""
	}
	return row[slot]
}

// Unlock learns a skill at level 1. Requires the level gate met and enough
// skill points; points are spent atomically with the unlock.
func (b *Book) Unlock(skillID string) bool {
	if b.entries[skillID] != nil {
		return false
	}
	tmpl := data.GetSkillTemplate(skillID)
	if tmpl == nil {
		slog.Warn("unlock of unknown skill ignored", "skill", skillID)
		return false
	}
	lvl := tmpl.Level(1)
	if b.player.Level() < lvl.RequiredPlayerLevel {
		return false
	}
	if !b.player.SpendSkillPoints(lvl.PointCost) {
		return false
	}

	b.entries[skillID] = &BookEntry{Level: 1, Slot: NoSlot}
	b.bus.Publish(events.SkillLevelUp{OwnerID: b.player.ID(), SkillID: skillID, Level: 1})
	return true
}

// Upgrade raises an unlocked skill one level. Requires the next level to be
// defined, its gate met, and enough skill points.
func (b *Book) Upgrade(skillID string) bool {
	entry := b.entries[skillID]
	if entry == nil {
		return false
	}
	tmpl := data.GetSkillTemplate(skillID)
	if tmpl == nil {
		return false
	}
	next := tmpl.Level(entry.Level + 1)
	if next == nil {
		return false // already at max defined level
	}
	if b.player.Level() < next.RequiredPlayerLevel {
		return false
	}
	if !b.player.SpendSkillPoints(next.PointCost) {
		return false
	}

	entry.Level++
	b.bus.Publish(events.SkillLevelUp{OwnerID: b.player.ID(), SkillID: skillID, Level: entry.Level})
	return true
}

// Equip assigns an unlocked skill into a slot of its category. An occupied
// slot evicts its previous occupant; a skill already equipped elsewhere in
// the category auto-vacates its old slot. Running toggles and channels are
// deactivated before their skill moves.
func (b *Book) Equip(skillID string, slot int) bool {
	entry := b.entries[skillID]
	if entry == nil {
		return false
	}
	tmpl := data.GetSkillTemplate(skillID)
	if tmpl == nil {
		return false
	}
	row := b.slots[tmpl.Category]
	if slot < 0 || slot >= len(row) {
		return false
	}
	if row[slot] == skillID {
		return true // already there
	}

	// Evict the current occupant.
	if occupant := row[slot]; occupant != "" {
		b.vacate(occupant)
	}

	// Auto-vacate this skill's old slot.
	if entry.Slot != NoSlot {
		row[entry.Slot] = ""
		b.bus.Publish(events.SkillUnequipped{OwnerID: b.player.ID(), SkillID: skillID, Slot: entry.Slot})
	}

	row[slot] = skillID
	entry.Slot = slot
	b.bus.Publish(events.SkillEquipped{OwnerID: b.player.ID(), SkillID: skillID, Slot: slot})
	return true
}

// Unequip removes a skill from its slot, deactivating it first.
func (b *Book) Unequip(skillID string) bool {
	entry := b.entries[skillID]
	if entry == nil || entry.Slot == NoSlot {
		return false
	}
	b.vacate(skillID)
	return true
}

// IsEquipped reports whether a skill currently occupies a slot.
func (b *Book) IsEquipped(skillID string) bool {
	entry := b.entries[skillID]
	return entry != nil && entry.Slot != NoSlot
}

func (b *Book) vacate(skillID string) {
	entry := b.entries[skillID]
	if entry == nil || entry.Slot == NoSlot {
		return
	}
	if b.onEvict != nil {
		b.onEvict(skillID)
	}
	tmpl := data.GetSkillTemplate(skillID)
	if tmpl != nil {
		b.slots[tmpl.Category][entry.Slot] = ""
	}
	slot := entry.Slot
	entry.Slot = NoSlot
	b.bus.Publish(events.SkillUnequipped{OwnerID: b.player.ID(), SkillID: skillID, Slot: slot})
}
