// Package stats aggregates base-by-level stats, equipment affixes, and timed
// buffs into the player's final derived stat block.
package stats

import (
	"log/slog"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/model"
)

// ascensionBonusPerTier is the global percent bonus granted per ascension
// tier, applied after equipment and buff percents.
const ascensionBonusPerTier = 0.02

// Aggregator owns the player's buff list and recomputes derived stats
// whenever equipment, buffs, or level change. Recomputation is lazy: markers
// set a dirty flag and the tick loop calls Recompute once per tick.
type Aggregator struct {
	cfg    config.Sim
	bus    *events.Bus
	player *model.Player

	buffs []*Buff
	dirty bool
}

// NewAggregator creates an aggregator for player and performs the initial
// recompute so the player starts with level-derived stats. Equipment changes
// arrive as bus events, so hosts never need to mark the aggregator dirty
// themselves.
func NewAggregator(cfg config.Sim, bus *events.Bus, player *model.Player) *Aggregator {
	a := &Aggregator{cfg: cfg, bus: bus, player: player, dirty: true}
	onEquipChange := func(events.Event) { a.MarkDirty() }
	bus.SubscribeKind(events.KindItemEquipped, onEquipChange)
	bus.SubscribeKind(events.KindItemUnequipped, onEquipChange)
	a.Recompute()
	return a
}

// MarkDirty schedules a recompute on the next tick. Called on level change
// and ascension change; equipment changes mark dirty through bus events.
func (a *Aggregator) MarkDirty() {
	a.dirty = true
}

// AddBuff creates a timed buff and returns its instance ID.
// duration uses seconds; PermanentDuration keeps the buff until removal.
func (a *Aggregator) AddBuff(skillID string, deltas []data.StatDelta, duration float64) string {
	buff := &Buff{
		ID:               newBuffID(),
		SkillID:          skillID,
		Deltas:           deltas,
		RemainingSeconds: duration,
	}
	a.buffs = append(a.buffs, buff)
	a.dirty = true

	slog.Debug("buff added", "buff", buff.ID, "skill", skillID, "duration", duration)
	return buff.ID
}

// RemoveBuff removes a buff by instance ID. Returns false if unknown.
func (a *Aggregator) RemoveBuff(id string) bool {
	for i, buff := range a.buffs {
		if buff.ID == id {
			a.buffs = append(a.buffs[:i], a.buffs[i+1:]...)
			a.dirty = true
			a.bus.Publish(events.BuffExpired{OwnerID: a.player.ID(), BuffID: id})
			return true
		}
	}
	return false
}

// RemoveBuffsBySkill removes every buff created by skillID. Used when a
// toggle deactivates. Returns the number removed.
func (a *Aggregator) RemoveBuffsBySkill(skillID string) int {
	removed := 0
	n := 0
	for _, buff := range a.buffs {
		if buff.SkillID == skillID {
			removed++
			a.bus.Publish(events.BuffExpired{OwnerID: a.player.ID(), BuffID: buff.ID})
		} else {
			a.buffs[n] = buff
			n++
		}
	}
	a.buffs = a.buffs[:n]
	if removed > 0 {
		a.dirty = true
	}
	return removed
}

// BuffCount returns the number of active buffs.
func (a *Aggregator) BuffCount() int {
	return len(a.buffs)
}

// Tick decrements buff timers, expires finished buffs, and recomputes if
// anything changed.
func (a *Aggregator) Tick(dt float64) {
	n := 0
	for _, buff := range a.buffs {
		if buff.permanent() {
			a.buffs[n] = buff
			n++
			continue
		}
		buff.RemainingSeconds -= dt
		if buff.RemainingSeconds <= 0 {
			a.dirty = true
			a.bus.Publish(events.BuffExpired{OwnerID: a.player.ID(), BuffID: buff.ID})
			continue
		}
		a.buffs[n] = buff
		n++
	}
	a.buffs = a.buffs[:n]

	a.Recompute()
}

// Recompute rebuilds the derived stat block if dirty. Current HP, shield,
// and energy ratios are preserved by model.Combatant.SetStats and the energy
// manager respectively.
func (a *Aggregator) Recompute() {
	if !a.dirty {
		return
	}
	a.dirty = false

	base := data.BaseStatsForLevel(a.player.Level())
	flatEquip, pctEquip := a.equipmentBonus()
	flatBuff, pctBuff := a.buffBonus()
	ascension := 1.0 + ascensionBonusPerTier*float64(a.player.Ascension())

	final := make(map[string]float64, len(base))
	for stat, baseValue := range base {
		value := (baseValue + flatEquip[stat] + flatBuff[stat]) *
			(1 + pctEquip[stat]) *
			(1 + pctBuff[stat]) *
			ascension
		final[stat] = value
	}

	a.player.SetStats(a.toCombatStats(final))
	a.bus.Publish(events.StatsRecalculated{OwnerID: a.player.ID()})
}

// equipmentBonus derives flat and percent totals from equipped item affixes.
// Always recomputed from the current equipment set, never cached.
func (a *Aggregator) equipmentBonus() (flat, pct map[string]float64) {
	flat = make(map[string]float64)
	pct = make(map[string]float64)
	for _, item := range a.player.EquippedItems() {
		for _, affix := range item.Affixes {
			if !knownStat(affix.Stat) {
				slog.Warn("unknown affix stat ignored", "stat", affix.Stat, "item", item.ID)
				continue
			}
			flat[affix.Stat] += affix.Flat
			pct[affix.Stat] += affix.Percent
		}
	}
	return flat, pct
}

func (a *Aggregator) buffBonus() (flat, pct map[string]float64) {
	flat = make(map[string]float64)
	pct = make(map[string]float64)
	for _, buff := range a.buffs {
		for _, delta := range buff.Deltas {
			if !knownStat(delta.Stat) {
				slog.Warn("unknown buff stat ignored", "stat", delta.Stat, "buff", buff.ID)
				continue
			}
			flat[delta.Stat] += delta.Flat
			pct[delta.Stat] += delta.Percent
		}
	}
	return flat, pct
}

func (a *Aggregator) toCombatStats(final map[string]float64) model.CombatStats {
	stats := model.CombatStats{
		MaxHP:         int(final[data.StatMaxHP]),
		MaxShield:     int(final[data.StatMaxShield]),
		Armor:         int(final[data.StatArmor]),
		Defense:       final[data.StatDefense],
		AttackPower:   final[data.StatAttackPower],
		MagicPower:    final[data.StatMagicPower],
		CritChance:    clamp(final[data.StatCritChance], 0, a.cfg.CritChanceCap),
		CritDamage:    final[data.StatCritDamage],
		MoveSpeed:     final[data.StatMoveSpeed],
		AttackSpeed:   final[data.StatAttackSpeed],
		Dodge:         clamp(final[data.StatDodge], 0, a.cfg.DodgeCap),
		DamageReduce:  clamp(final[data.StatDamageReduce], 0, a.cfg.DamageReduceCap),
		StatusResist:  clamp(final[data.StatStatusResist], 0, 1),
		StatusPotency: final[data.StatStatusPotency],
		MaxEnergy:     int(final[data.StatMaxEnergy]),
	}
	if stats.MaxHP < 1 {
		stats.MaxHP = 1
	}
	if stats.CritDamage < 1 {
		stats.CritDamage = 1
	}
	return stats
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var knownStats = map[string]struct{}{
	data.StatMaxHP: {}, data.StatMaxShield: {}, data.StatMaxEnergy: {},
	data.StatArmor: {}, data.StatDefense: {}, data.StatAttackPower: {},
	data.StatMagicPower: {}, data.StatCritChance: {}, data.StatCritDamage: {},
	data.StatMoveSpeed: {}, data.StatAttackSpeed: {}, data.StatDodge: {},
	data.StatDamageReduce: {}, data.StatStatusResist: {}, data.StatStatusPotency: {},
}

func knownStat(stat string) bool {
	_, ok := knownStats[stat]
	return ok
}
