package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/model"
)

func newTestPlayer() *model.Player {
	return model.NewPlayer("hero", model.Location{}, model.CombatStats{MaxHP: 1})
}

func TestRecompute_BaseStatsAtLevelOne(t *testing.T) {
	player := newTestPlayer()
	agg := NewAggregator(config.DefaultSim(), events.NewBus(), player)
	_ = agg

	st := player.Stats()
	assert.Equal(t, 100, st.MaxHP)
	assert.Equal(t, 100, st.MaxEnergy)
	assert.InDelta(t, 10.0, st.AttackPower, 1e-9)
	assert.InDelta(t, 90.0, st.MoveSpeed, 1e-9)
	assert.Equal(t, 100, player.CurrentHP())
}

func TestEquipUnequip_RestoresExactStats(t *testing.T) {
	player := newTestPlayer()
	bus := events.NewBus()
	agg := NewAggregator(config.DefaultSim(), bus, player)
	before := player.Stats()

	boots := data.Item{
		ID:   "boots_swift",
		Name: "Swift Boots",
		Slot: "feet",
		Affixes: []data.Affix{
			{Stat: data.StatMoveSpeed, Percent: 0.10},
			{Stat: data.StatDodge, Flat: 0.05},
		},
	}
	player.Equip(boots)
	bus.Publish(events.ItemEquipped{OwnerID: player.ID(), ItemID: boots.ID, Slot: boots.Slot})
	agg.Recompute()

	st := player.Stats()
	assert.InDelta(t, 99.0, st.MoveSpeed, 1e-9) // 90 × 1.10
	assert.InDelta(t, 0.07, st.Dodge, 1e-9)

	player.Unequip("feet")
	bus.Publish(events.ItemUnequipped{OwnerID: player.ID(), ItemID: boots.ID, Slot: boots.Slot})
	agg.Recompute()

	assert.Equal(t, before, player.Stats())
}

func TestEquipEvent_MarksAggregatorDirty(t *testing.T) {
	player := newTestPlayer()
	bus := events.NewBus()
	agg := NewAggregator(config.DefaultSim(), bus, player)

	player.Equip(data.Item{ID: "ring", Slot: "ring", Affixes: []data.Affix{
		{Stat: data.StatMaxHP, Flat: 50},
	}})

	// Without the event nothing recomputes; the event alone is enough.
	agg.Recompute()
	assert.Equal(t, 100, player.Stats().MaxHP)

	bus.Publish(events.ItemEquipped{OwnerID: player.ID(), ItemID: "ring", Slot: "ring"})
	agg.Recompute()
	assert.Equal(t, 150, player.Stats().MaxHP)
}

func TestEquip_SameSlotReplaces(t *testing.T) {
	player := newTestPlayer()
	agg := NewAggregator(config.DefaultSim(), events.NewBus(), player)

	player.Equip(data.Item{ID: "sword_a", Slot: "weapon", Affixes: []data.Affix{{Stat: data.StatAttackPower, Flat: 20}}})
	agg.MarkDirty()
	agg.Recompute()
	assert.InDelta(t, 30.0, player.Stats().AttackPower, 1e-9)

	prev, had := player.Equip(data.Item{ID: "sword_b", Slot: "weapon", Affixes: []data.Affix{{Stat: data.StatAttackPower, Flat: 5}}})
	require.True(t, had)
	assert.Equal(t, "sword_a", prev.ID)
	agg.MarkDirty()
	agg.Recompute()
	assert.InDelta(t, 15.0, player.Stats().AttackPower, 1e-9)
}

func TestBuff_ExpiresAndReversesExactly(t *testing.T) {
	player := newTestPlayer()
	agg := NewAggregator(config.DefaultSim(), events.NewBus(), player)
	before := player.Stats()

	agg.AddBuff("battlecry", []data.StatDelta{
		{Stat: data.StatAttackPower, Percent: 0.25},
		{Stat: data.StatMoveSpeed, Flat: 15},
	}, 5.0)
	agg.Recompute()

	st := player.Stats()
	assert.InDelta(t, 12.5, st.AttackPower, 1e-9)
	assert.InDelta(t, 105.0, st.MoveSpeed, 1e-9)

	agg.Tick(5.1)

	assert.Zero(t, agg.BuffCount())
	assert.Equal(t, before, player.Stats())
}

func TestBuff_PermanentUntilRemoved(t *testing.T) {
	player := newTestPlayer()
	bus := events.NewBus()
	agg := NewAggregator(config.DefaultSim(), bus, player)
	before := player.Stats()

	expired := 0
	bus.SubscribeKind(events.KindBuffExpired, func(events.Event) { expired++ })

	agg.AddBuff("frenzy", []data.StatDelta{{Stat: data.StatAttackSpeed, Percent: 0.5}}, PermanentDuration)
	agg.Recompute()
	assert.InDelta(t, 1.5, player.Stats().AttackSpeed, 1e-9)

	agg.Tick(600)
	assert.Equal(t, 1, agg.BuffCount())
	assert.Zero(t, expired)

	removed := agg.RemoveBuffsBySkill("frenzy")
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, expired)
	agg.Recompute()
	assert.Equal(t, before, player.Stats())
}

func TestRecompute_MaxHPBuffPreservesRatio(t *testing.T) {
	player := newTestPlayer()
	agg := NewAggregator(config.DefaultSim(), events.NewBus(), player)

	player.SetCurrentHP(50) // 50% of 100

	agg.AddBuff("fortify", []data.StatDelta{{Stat: data.StatMaxHP, Percent: 1.0}}, 10)
	agg.Recompute()

	require.Equal(t, 200, player.Stats().MaxHP)
	assert.Equal(t, 100, player.CurrentHP())
}

func TestRecompute_AscensionMultiplier(t *testing.T) {
	player := newTestPlayer()
	agg := NewAggregator(config.DefaultSim(), events.NewBus(), player)

	player.SetAscension(5) // 1 + 5×0.02 = 1.10
	agg.MarkDirty()
	agg.Recompute()

	st := player.Stats()
	assert.Equal(t, 110, st.MaxHP)
	assert.InDelta(t, 11.0, st.AttackPower, 1e-9)
}

func TestRecompute_ClampsCapsAndUnknownStats(t *testing.T) {
	cfg := config.DefaultSim()
	player := newTestPlayer()
	agg := NewAggregator(cfg, events.NewBus(), player)

	agg.AddBuff("cheat", []data.StatDelta{
		{Stat: data.StatDodge, Flat: 5.0},
		{Stat: data.StatDamageReduce, Flat: 5.0},
		{Stat: "luck", Flat: 99}, // unknown key is skipped, not fatal
	}, 10)
	agg.Recompute()

	st := player.Stats()
	assert.InDelta(t, cfg.DodgeCap, st.Dodge, 1e-9)
	assert.InDelta(t, cfg.DamageReduceCap, st.DamageReduce, 1e-9)
}

func TestRecompute_SkippedWhenClean(t *testing.T) {
	player := newTestPlayer()
	bus := events.NewBus()
	agg := NewAggregator(config.DefaultSim(), bus, player)

	recomputes := 0
	bus.SubscribeKind(events.KindStatsRecalculated, func(events.Event) { recomputes++ })

	agg.Recompute()
	agg.Recompute()
	assert.Zero(t, recomputes)

	agg.MarkDirty()
	agg.Recompute()
	assert.Equal(t, 1, recomputes)
}
