package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocten/valdera/internal/data"
)

func defaultTestCurve() *data.XPCurve {
	return data.NewXPCurve([]int64{0, 10, 30}, 1)
}

func testItem(id, slot string) data.Item {
	return data.Item{ID: id, Name: id, Slot: slot}
}

func TestNextObjectID_Unique(t *testing.T) {
	a := NextObjectID()
	b := NextObjectID()
	assert.NotEqual(t, a, b)
}

func TestCombatant_HPAndShieldClamp(t *testing.T) {
	c := NewCombatant("c", Location{}, 10, CombatStats{MaxHP: 100, MaxShield: 50})

	c.SetCurrentHP(-20)
	assert.Equal(t, 0, c.CurrentHP())
	c.SetCurrentHP(9999)
	assert.Equal(t, 100, c.CurrentHP())

	c.SetCurrentShield(-5)
	assert.Equal(t, 0, c.CurrentShield())
	c.SetCurrentShield(9999)
	assert.Equal(t, 50, c.CurrentShield())
}

func TestMarkDead_RunsCallbackExactlyOnce(t *testing.T) {
	c := NewCombatant("c", Location{}, 10, CombatStats{MaxHP: 100})

	calls := 0
	c.MarkDead(func() { calls++ })
	c.MarkDead(func() { calls++ })
	c.MarkDead(nil)

	assert.True(t, c.IsDead())
	assert.Zero(t, c.CurrentHP())
	assert.Equal(t, 1, calls)
}

func TestSetStats_RescalesCurrentProportionally(t *testing.T) {
	c := NewCombatant("c", Location{}, 10, CombatStats{MaxHP: 100, MaxShield: 100})
	c.SetCurrentHP(50)
	c.SetCurrentShield(25)

	stats := c.Stats()
	stats.MaxHP = 200
	stats.MaxShield = 40
	c.SetStats(stats)

	assert.Equal(t, 100, c.CurrentHP()) // stays at 50%
	assert.Equal(t, 10, c.CurrentShield())

	// Shrinking below a point never drops a living combatant to zero HP.
	stats.MaxHP = 1
	c.SetStats(stats)
	assert.Equal(t, 1, c.CurrentHP())
	assert.False(t, c.IsDead())
}

func TestSetFacing_Normalizes(t *testing.T) {
	c := NewCombatant("c", Location{}, 10, CombatStats{MaxHP: 1})
	c.SetFacing(3 * math.Pi)
	assert.InDelta(t, math.Pi, c.Facing(), 1e-9)
}

func TestLocationMath(t *testing.T) {
	a := Location{X: 0, Y: 0}
	b := Location{X: 3, Y: 4}

	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)
	assert.InDelta(t, math.Atan2(4, 3), a.AngleTo(b), 1e-9)

	moved := a.Offset(Vector{X: 1, Y: -2})
	assert.Equal(t, Location{X: 1, Y: -2}, moved)

	unit := Vector{X: 0, Y: -7}.Normalized()
	assert.InDelta(t, 1.0, unit.Length(), 1e-9)
	assert.Equal(t, Vector{}, Vector{}.Normalized())

	east := UnitFromAngle(0)
	assert.InDelta(t, 1.0, east.X, 1e-9)
	assert.InDelta(t, 0.0, east.Y, 1e-9)

	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-9)
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-9)
}

func TestPlayer_ExperienceAndLevels(t *testing.T) {
	curve := defaultTestCurve()
	p := NewPlayer("hero", Location{}, CombatStats{MaxHP: 100})

	assert.Zero(t, p.AddExperience(0, curve))
	assert.Zero(t, p.AddExperience(100, nil))

	// 10 to level 2, 30 to level 3.
	gained := p.AddExperience(12, curve)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, p.Level())

	// One big grant can cross several thresholds at once.
	gained = p.AddExperience(100, curve)
	assert.Equal(t, 1, gained) // curve caps at level 3
	assert.Equal(t, 3, p.Level())
}

func TestPlayer_SkillPointsAtomicSpend(t *testing.T) {
	p := NewPlayer("hero", Location{}, CombatStats{MaxHP: 100})
	p.GrantSkillPoints(3)

	require.True(t, p.SpendSkillPoints(2))
	assert.Equal(t, 1, p.SkillPoints())
	assert.False(t, p.SpendSkillPoints(2))
	assert.Equal(t, 1, p.SkillPoints())
	assert.False(t, p.SpendSkillPoints(-1))

	p.GrantSkillPoints(-5) // ignored
	assert.Equal(t, 1, p.SkillPoints())
}

func TestPlayer_EquipmentSlots(t *testing.T) {
	p := NewPlayer("hero", Location{}, CombatStats{MaxHP: 100})

	_, had := p.Equip(testItem("ring_a", "ring"))
	assert.False(t, had)

	prev, had := p.Equip(testItem("ring_b", "ring"))
	assert.True(t, had)
	assert.Equal(t, "ring_a", prev.ID)

	items := p.EquippedItems()
	require.Len(t, items, 1)
	assert.Equal(t, "ring_b", items[0].ID)

	got, ok := p.Unequip("ring")
	assert.True(t, ok)
	assert.Equal(t, "ring_b", got.ID)
	_, ok = p.Unequip("ring")
	assert.False(t, ok)
}

func TestPlayer_EquippedItemsOrderedBySlot(t *testing.T) {
	p := NewPlayer("hero", Location{}, CombatStats{MaxHP: 100})

	p.Equip(testItem("band", "ring"))
	p.Equip(testItem("greaves", "boots"))
	p.Equip(testItem("blade", "weapon"))

	items := p.EquippedItems()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"boots", "ring", "weapon"},
		[]string{items[0].Slot, items[1].Slot, items[2].Slot})
}
