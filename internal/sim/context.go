// Package sim assembles the combat subsystems into an explicit simulation
// context and drives them with a fixed-order tick loop. There are no
// package-level singletons: a host may run any number of independent
// simulations side by side.
package sim

import (
	"log/slog"
	"math/rand/v2"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/game/combat"
	"github.com/nocten/valdera/internal/game/energy"
	"github.com/nocten/valdera/internal/game/skill"
	"github.com/nocten/valdera/internal/game/stats"
	"github.com/nocten/valdera/internal/game/status"
	"github.com/nocten/valdera/internal/model"
)

// Options configures a new simulation context.
type Options struct {
	Seed        uint64
	SafeResolve combat.SafeResolveFunc // nil = movement unclamped
	XPCurve     *data.XPCurve          // nil = data.DefaultXPCurve()
}

// Context owns one running simulation: the player, spawned monsters, and
// every combat subsystem, all sharing one bus and one RNG.
type Context struct {
	Cfg config.Sim
	Bus *events.Bus

	Player     *model.Player
	Aggregator *stats.Aggregator
	Energy     *energy.Pool
	Pipeline   *combat.Pipeline
	Statuses   *status.Engine
	Book       *skill.Book
	Skills     *skill.Manager
	Resolver   *skill.Resolver

	rng   *rand.Rand
	curve *data.XPCurve

	// monsters keeps spawn order so target selection and tick processing
	// stay reproducible under a fixed seed.
	monsters    []*model.Monster
	monsterByID map[uint32]*model.Monster

	attackTimer float64
	intents     []intent
	tickCount   uint64
}

type intentKind int

const (
	intentAttack intentKind = iota
	intentSkill
)

type intent struct {
	kind    intentKind
	skillID string
	angle   float64
}

// NewContext builds a fully wired simulation around a freshly created
// player. Static data registries must be loaded before this is called.
func NewContext(cfg config.Sim, playerName string, origin model.Location, opts Options) *Context {
	bus := events.NewBus()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	curve := opts.XPCurve
	if curve == nil {
		curve = data.DefaultXPCurve()
	}

	player := model.NewPlayer(playerName, origin, model.CombatStats{MaxHP: 1})

	ctx := &Context{
		Cfg:         cfg,
		Bus:         bus,
		Player:      player,
		rng:         rng,
		curve:       curve,
		monsterByID: make(map[uint32]*model.Monster),
	}

	ctx.Pipeline = combat.NewPipeline(cfg, bus, rng.Float64, opts.SafeResolve, ctx.rewardsFor)
	ctx.Aggregator = stats.NewAggregator(cfg, bus, player)
	ctx.Energy = energy.NewPool(cfg, bus, player.ID(), float64(player.Stats().MaxEnergy))
	ctx.Statuses = status.NewEngine(cfg, bus, ctx.Pipeline, ctx.Combatant, rng.Float64)
	ctx.Book = skill.NewBook(player, bus)
	ctx.Resolver = skill.NewResolver(cfg, bus, ctx.Pipeline, ctx.Statuses, ctx.Aggregator, ctx.Energy, rng.Float64, ctx.liveMonsters, player.ID())
	ctx.Skills = skill.NewManager(cfg, bus, player, ctx.Book, ctx.Energy, ctx.Aggregator, ctx.Resolver)

	// Progression: player kills feed xp/levels back into stats.
	bus.SubscribeKind(events.KindDeath, func(ev events.Event) {
		death, ok := ev.(events.Death)
		if !ok || death.KillerID != player.ID() {
			return
		}
		ctx.grantRewards(death)
	})

	slog.Info("simulation context created", "player", playerName, "seed", opts.Seed)
	return ctx
}

// SpawnMonster creates a monster from a template at loc and registers it.
// Unknown template IDs degrade to a nil no-op.
func (c *Context) SpawnMonster(templateID string, loc model.Location) *model.Monster {
	tmpl := data.GetMonsterTemplate(templateID)
	if tmpl == nil {
		slog.Warn("spawn of unknown monster template ignored", "template", templateID)
		return nil
	}
	monster := model.NewMonster(tmpl, loc)
	c.monsters = append(c.monsters, monster)
	c.monsterByID[monster.ID()] = monster
	return monster
}

// RemoveMonster drops a monster from the registry (despawn).
func (c *Context) RemoveMonster(id uint32) {
	if _, ok := c.monsterByID[id]; !ok {
		return
	}
	delete(c.monsterByID, id)
	for i, m := range c.monsters {
		if m.ID() == id {
			c.monsters = append(c.monsters[:i], c.monsters[i+1:]...)
			break
		}
	}
}

// EquipItem equips an item on the player and schedules the stat recompute
// that the next tick applies. Returns the replaced item, if any.
func (c *Context) EquipItem(item data.Item) (data.Item, bool) {
	prev, hadPrev := c.Player.Equip(item)
	if hadPrev {
		c.Bus.Publish(events.ItemUnequipped{OwnerID: c.Player.ID(), ItemID: prev.ID, Slot: prev.Slot})
	}
	c.Bus.Publish(events.ItemEquipped{OwnerID: c.Player.ID(), ItemID: item.ID, Slot: item.Slot})
	return prev, hadPrev
}

// UnequipItem clears an equipment slot and schedules the stat recompute.
func (c *Context) UnequipItem(slot string) (data.Item, bool) {
	item, ok := c.Player.Unequip(slot)
	if ok {
		c.Bus.Publish(events.ItemUnequipped{OwnerID: c.Player.ID(), ItemID: item.ID, Slot: slot})
	}
	return item, ok
}

// Combatant resolves any live or dead combatant by ID, player included.
func (c *Context) Combatant(id uint32) *model.Combatant {
	if id == c.Player.ID() {
		return c.Player.Combatant
	}
	if monster, ok := c.monsterByID[id]; ok {
		return monster.Combatant
	}
	return nil
}

// Monsters returns all registered monsters in spawn order.
func (c *Context) Monsters() []*model.Monster {
	out := make([]*model.Monster, len(c.monsters))
	copy(out, c.monsters)
	return out
}

func (c *Context) liveMonsters() []*model.Combatant {
	out := make([]*model.Combatant, 0, len(c.monsters))
	for _, m := range c.monsters {
		if !m.IsDead() {
			out = append(out, m.Combatant)
		}
	}
	return out
}

// rewardsFor supplies death reward fields to the pipeline.
func (c *Context) rewardsFor(targetID uint32) (int64, int, bool, bool) {
	monster, ok := c.monsterByID[targetID]
	if !ok {
		return 0, 0, false, false
	}
	return monster.XPReward(), monster.GoldReward(), monster.IsBoss(), true
}

// grantRewards applies a kill's xp to the player, handling level-ups.
func (c *Context) grantRewards(death events.Death) {
	gained := c.Player.AddExperience(death.XP, c.curve)
	if gained == 0 {
		return
	}

	c.Player.GrantSkillPoints(gained * c.curve.SkillPointsPerLevel())
	c.Aggregator.MarkDirty()

	for i := 0; i < gained; i++ {
		c.Bus.Publish(events.PlayerLevelUp{
			OwnerID:  c.Player.ID(),
			NewLevel: c.Player.Level() - gained + i + 1,
		})
	}
	slog.Info("player leveled up", "player", c.Player.Name(), "level", c.Player.Level())
}
