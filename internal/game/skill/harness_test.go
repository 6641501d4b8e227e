package skill

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/game/combat"
	"github.com/nocten/valdera/internal/game/energy"
	"github.com/nocten/valdera/internal/game/stats"
	"github.com/nocten/valdera/internal/game/status"
	"github.com/nocten/valdera/internal/model"
)

// fixture wires a full skill stack against a hand-placed set of monsters.
// Both rng streams (pipeline rolls and status rolls) pop from a shared script
// so tests stay deterministic; an empty script always rolls high.
type fixture struct {
	t   *testing.T
	cfg config.Sim
	bus *events.Bus

	player     *model.Player
	aggregator *stats.Aggregator
	pool       *energy.Pool
	pipeline   *combat.Pipeline
	statuses   *status.Engine
	resolver   *Resolver
	book       *Book
	manager    *Manager

	monsters []*model.Combatant
	rolls    []float64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	require.NoError(t, data.LoadAll())

	f := &fixture{t: t, cfg: config.DefaultSim(), bus: events.NewBus()}
	f.player = model.NewPlayer("hero", model.Location{}, model.CombatStats{MaxHP: 1})
	f.aggregator = stats.NewAggregator(f.cfg, f.bus, f.player)
	f.pool = energy.NewPool(f.cfg, f.bus, f.player.ID(), float64(f.player.Stats().MaxEnergy))

	f.pipeline = combat.NewPipeline(f.cfg, f.bus, f.nextRoll, nil, nil)
	f.statuses = status.NewEngine(f.cfg, f.bus, f.pipeline, f.combatant, f.nextRoll)
	f.resolver = NewResolver(f.cfg, f.bus, f.pipeline, f.statuses, f.aggregator, f.pool, f.nextRoll, f.targets, f.player.ID())
	f.book = NewBook(f.player, f.bus)
	f.manager = NewManager(f.cfg, f.bus, f.player, f.book, f.pool, f.aggregator, f.resolver)
	return f
}

func (f *fixture) nextRoll() float64 {
	if len(f.rolls) == 0 {
		return 0.999
	}
	roll := f.rolls[0]
	f.rolls = f.rolls[1:]
	return roll
}

func (f *fixture) targets() []*model.Combatant {
	return f.monsters
}

func (f *fixture) combatant(id uint32) *model.Combatant {
	if id == f.player.ID() {
		return f.player.Combatant
	}
	for _, m := range f.monsters {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// spawn places a plain monster with the given HP at (x, y).
func (f *fixture) spawn(x, y float64, hp int) *model.Combatant {
	m := model.NewCombatant("mob", model.Location{X: x, Y: y}, 10, model.CombatStats{MaxHP: hp})
	f.monsters = append(f.monsters, m)
	return m
}

// learn unlocks and equips a skill into a free slot, raising the player to
// the required level and granting points as needed.
func (f *fixture) learn(skillID string, slot int) {
	f.t.Helper()
	tmpl := data.GetSkillTemplate(skillID)
	require.NotNil(f.t, tmpl, "unknown test skill %s", skillID)

	lvl := tmpl.Level(1)
	if f.player.Level() < lvl.RequiredPlayerLevel {
		f.player.SetLevel(lvl.RequiredPlayerLevel)
		f.aggregator.MarkDirty()
		f.aggregator.Recompute()
	}
	f.player.GrantSkillPoints(lvl.PointCost)
	require.True(f.t, f.book.Unlock(skillID))
	require.True(f.t, f.book.Equip(skillID, slot))
}

// contextFor builds a resolver context as the manager would for a level-1
// activation at the given facing angle.
func (f *fixture) contextFor(skillID string, angle float64) Context {
	tmpl := data.GetSkillTemplate(skillID)
	return Context{
		Caster:    f.player,
		Origin:    f.player.Location(),
		Angle:     angle,
		Charge:    1.0,
		SkillID:   skillID,
		Level:     1,
		Archetype: tmpl.Archetype,
		Spec:      tmpl.Level(1),
	}
}

// countKind subscribes a counter for one event kind.
func (f *fixture) countKind(kind events.Kind) *int {
	n := new(int)
	f.bus.SubscribeKind(kind, func(events.Event) { *n++ })
	return n
}
