package model

import (
	"github.com/nocten/valdera/internal/data"
)

// Monster is a hostile combatant spawned from a template. The spawn system
// that rolls monster stats lives outside the core; this type only carries
// the rolled outcome plus the reward fields the death event reports.
type Monster struct {
	*Combatant

	templateID string
	xpReward   int64
	goldReward int
	boss       bool
}

// NewMonster creates a monster from a template at the given location.
func NewMonster(tmpl *data.MonsterTemplate, loc Location) *Monster {
	stats := CombatStats{
		MaxHP:         tmpl.MaxHP,
		MaxShield:     tmpl.MaxShield,
		Armor:         tmpl.Armor,
		Defense:       tmpl.Defense,
		AttackPower:   tmpl.AttackPower,
		CritChance:    tmpl.CritChance,
		CritDamage:    tmpl.CritDamage,
		MoveSpeed:     tmpl.MoveSpeed,
		AttackSpeed:   tmpl.AttackSpeed,
		StatusResist:  tmpl.StatusResist,
		StatusPotency: 1.0,
	}
	return &Monster{
		Combatant:  NewCombatant(tmpl.Name, loc, tmpl.Radius, stats),
		templateID: tmpl.ID,
		xpReward:   tmpl.XPReward,
		goldReward: tmpl.GoldReward,
		boss:       tmpl.Boss,
	}
}

// TemplateID returns the monster definition ID this monster was spawned from.
func (m *Monster) TemplateID() string { return m.templateID }

// XPReward returns the xp granted on death.
func (m *Monster) XPReward() int64 { return m.xpReward }

// GoldReward returns the gold granted on death.
func (m *Monster) GoldReward() int { return m.goldReward }

// IsBoss reports whether this monster is a boss.
func (m *Monster) IsBoss() bool { return m.boss }
