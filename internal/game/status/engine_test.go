package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/game/combat"
	"github.com/nocten/valdera/internal/model"
)

type statusFixture struct {
	cfg      config.Sim
	bus      *events.Bus
	engine   *Engine
	registry map[uint32]*model.Combatant
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	require.NoError(t, data.LoadStatuses())

	f := &statusFixture{
		cfg:      config.DefaultSim(),
		bus:      events.NewBus(),
		registry: make(map[uint32]*model.Combatant),
	}
	pipeline := combat.NewPipeline(f.cfg, f.bus, func() float64 { return 0.999 }, nil, nil)
	f.engine = NewEngine(f.cfg, f.bus, pipeline, func(id uint32) *model.Combatant {
		return f.registry[id]
	}, func() float64 { return 0.999 }) // resist roll always fails
	return f
}

func (f *statusFixture) add(name string, stats model.CombatStats) *model.Combatant {
	c := model.NewCombatant(name, model.Location{}, 14, stats)
	f.registry[c.ID()] = c
	return c
}

func TestApply_StacksCapAndDurationRefresh(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 50})
	target := f.add("victim", model.CombatStats{MaxHP: 1000})

	for i := 0; i < 8; i++ {
		require.True(t, f.engine.Apply(source, target, "bleed"))
	}
	assert.Equal(t, 5, f.engine.Stacks(target.ID(), "bleed"))

	// Refresh resets duration; it never sums. Half the duration later the
	// instance is still alive, and one more application restores the full
	// window again.
	f.engine.Tick(2.0)
	require.True(t, f.engine.Has(target.ID(), "bleed"))
	require.True(t, f.engine.Apply(source, target, "bleed"))
	f.engine.Tick(3.9)
	assert.True(t, f.engine.Has(target.ID(), "bleed"))
	f.engine.Tick(0.2)
	assert.False(t, f.engine.Has(target.ID(), "bleed"))
}

func TestTick_BleedDamageFromAttackSnapshot(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 50, StatusPotency: 1.0})
	target := f.add("victim", model.CombatStats{MaxHP: 1000}) // zero defense

	for i := 0; i < 5; i++ {
		require.True(t, f.engine.Apply(source, target, "bleed"))
	}

	var ticked []events.StatusTicked
	f.bus.SubscribeKind(events.KindStatusTicked, func(ev events.Event) {
		ticked = append(ticked, ev.(events.StatusTicked))
	})

	f.engine.Tick(0.5)

	// floor(0.05 × 50 atk × 5 stacks × 1.0 potency) = 12, unmitigated at
	// zero defense.
	require.Len(t, ticked, 1)
	assert.Equal(t, 12, ticked[0].Damage)
	assert.Equal(t, 5, ticked[0].Stacks)
	assert.Equal(t, 988, target.CurrentHP())
}

func TestTick_SnapshotIgnoresLaterSourceBuffs(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 50})
	target := f.add("victim", model.CombatStats{MaxHP: 1000})

	require.True(t, f.engine.Apply(source, target, "burn"))

	// Buffing the source after application must not change the tick.
	buffed := source.Stats()
	buffed.AttackPower = 500
	source.SetStats(buffed)

	f.engine.Tick(0.25)
	assert.Equal(t, 998, target.CurrentHP()) // floor(0.04×50) = 2
}

func TestTick_DotBypassesShield(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 100})
	target := f.add("victim", model.CombatStats{MaxHP: 1000, MaxShield: 200})

	require.True(t, f.engine.Apply(source, target, "poison"))
	f.engine.Tick(1.0)

	assert.Equal(t, 200, target.CurrentShield())
	assert.Equal(t, 992, target.CurrentHP()) // floor(0.08×100) = 8 straight to HP
}

func TestApply_ResistRollBlocks(t *testing.T) {
	f := newStatusFixture(t)
	// Swap in an rng that always rolls under the resist threshold.
	pipeline := combat.NewPipeline(f.cfg, f.bus, func() float64 { return 0.999 }, nil, nil)
	f.engine = NewEngine(f.cfg, f.bus, pipeline, func(id uint32) *model.Combatant {
		return f.registry[id]
	}, func() float64 { return 0.0 })

	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 50})
	target := f.add("victim", model.CombatStats{MaxHP: 1000, StatusResist: 0.3})

	assert.False(t, f.engine.Apply(source, target, "bleed"))
	assert.False(t, f.engine.Has(target.ID(), "bleed"))
}

func TestApply_UnknownTypeAndDeadTarget(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100})
	target := f.add("victim", model.CombatStats{MaxHP: 100})

	assert.False(t, f.engine.Apply(source, target, "petrify"))

	target.MarkDead(nil)
	assert.False(t, f.engine.Apply(source, target, "bleed"))
}

func TestFreeze_StunAndReapplyCooldown(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100})
	target := f.add("victim", model.CombatStats{MaxHP: 1000})

	require.True(t, f.engine.Apply(source, target, "freeze"))
	assert.True(t, target.Stunned)
	assert.Equal(t, 0.0, f.engine.SpeedMultiplier(target.ID()))

	// Expire the freeze: target unfreezes, lockout window opens.
	f.engine.Tick(2.1)
	assert.False(t, target.Stunned)
	assert.False(t, f.engine.Has(target.ID(), "freeze"))
	assert.Greater(t, f.engine.FreezeLockRemaining(target.ID()), 0.0)

	// Inside the window freeze is rejected; other statuses still land.
	assert.False(t, f.engine.Apply(source, target, "freeze"))
	assert.True(t, f.engine.Apply(source, target, "slow"))

	f.engine.Tick(f.cfg.Status.FreezeReapplySeconds)
	assert.True(t, f.engine.Apply(source, target, "freeze"))
}

func TestSpeedMultiplier_FreezeBeatsSlow(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100})
	target := f.add("victim", model.CombatStats{MaxHP: 1000})

	require.True(t, f.engine.Apply(source, target, "slow"))
	assert.InDelta(t, 1.0-f.cfg.Status.SlowFraction, f.engine.SpeedMultiplier(target.ID()), 1e-9)

	require.True(t, f.engine.Apply(source, target, "freeze"))
	assert.Equal(t, 0.0, f.engine.SpeedMultiplier(target.ID()))
}

func TestDeath_ClearsStatusesWithoutExpiryEvents(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 50})
	target := f.add("victim", model.CombatStats{MaxHP: 1000})

	require.True(t, f.engine.Apply(source, target, "bleed"))
	require.True(t, f.engine.Apply(source, target, "freeze"))

	expired := 0
	f.bus.SubscribeKind(events.KindStatusExpired, func(events.Event) { expired++ })

	f.bus.Publish(events.Death{TargetID: target.ID()})

	assert.False(t, f.engine.Has(target.ID(), "bleed"))
	assert.False(t, f.engine.Has(target.ID(), "freeze"))
	assert.False(t, target.Stunned)
	assert.Zero(t, expired)
	assert.Zero(t, f.engine.FreezeLockRemaining(target.ID()))
}

func TestRemove_FreezeStillStartsLockout(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100})
	target := f.add("victim", model.CombatStats{MaxHP: 1000})

	require.True(t, f.engine.Apply(source, target, "freeze"))
	require.True(t, f.engine.Remove(target.ID(), "freeze"))

	assert.False(t, target.Stunned)
	assert.Equal(t, f.cfg.Status.FreezeReapplySeconds, f.engine.FreezeLockRemaining(target.ID()))
	assert.False(t, f.engine.Apply(source, target, "freeze"))
}

func TestTick_ProcessesTargetsAndStatusesInStableOrder(t *testing.T) {
	f := newStatusFixture(t)
	source := f.add("attacker", model.CombatStats{MaxHP: 100, AttackPower: 50})
	first := f.add("victim-a", model.CombatStats{MaxHP: 1000})
	second := f.add("victim-b", model.CombatStats{MaxHP: 1000})

	// Apply in reverse creation order; tick processing still follows
	// target IDs, then status types alphabetically.
	require.True(t, f.engine.Apply(source, second, "poison"))
	require.True(t, f.engine.Apply(source, second, "bleed"))
	require.True(t, f.engine.Apply(source, first, "bleed"))

	type tickKey struct {
		target uint32
		status string
	}
	var order []tickKey
	f.bus.SubscribeKind(events.KindStatusTicked, func(ev events.Event) {
		e := ev.(events.StatusTicked)
		order = append(order, tickKey{e.TargetID, e.Type})
	})

	// One second: bleed ticks twice (0.5s interval), poison once (1s).
	f.engine.Tick(1.0)

	assert.Equal(t, []tickKey{
		{first.ID(), "bleed"},
		{first.ID(), "bleed"},
		{second.ID(), "bleed"},
		{second.ID(), "bleed"},
		{second.ID(), "poison"},
	}, order)
}
