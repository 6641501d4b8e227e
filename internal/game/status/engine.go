// Package status implements per-target status effects: stacking DoTs
// (bleed, poison, burn), movement debuffs (slow, freeze), the freeze
// reapply-cooldown window, and periodic tick damage.
package status

import (
	"log/slog"
	"math"
	"slices"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/game/combat"
	"github.com/nocten/valdera/internal/model"
)

// Instance is one active status on one target. The attack snapshot is taken
// at application time; later source buffs do not retroactively change ticks.
type Instance struct {
	Type             string
	Stacks           int
	RemainingSeconds float64
	tickTimer        float64
	SourceID         uint32
	AttackSnapshot   float64
	Potency          float64
}

// Engine owns all status instances in a simulation. Targets are resolved
// through an injected lookup so the engine stays decoupled from the
// combatant registry.
type Engine struct {
	cfg      config.Sim
	bus      *events.Bus
	pipeline *combat.Pipeline
	resolve  func(uint32) *model.Combatant
	rng      func() float64 // resist roll

	active     map[uint32]map[string]*Instance
	freezeLock map[uint32]float64 // remaining reapply-cooldown seconds
}

// NewEngine creates a status engine. It subscribes to Death events so a
// target's statuses and pending freeze cooldown are cleared the moment it
// dies, within the same dispatch.
func NewEngine(cfg config.Sim, bus *events.Bus, pipeline *combat.Pipeline, resolve func(uint32) *model.Combatant, rng func() float64) *Engine {
	e := &Engine{
		cfg:        cfg,
		bus:        bus,
		pipeline:   pipeline,
		resolve:    resolve,
		rng:        rng,
		active:     make(map[uint32]map[string]*Instance),
		freezeLock: make(map[uint32]float64),
	}
	bus.SubscribeKind(events.KindDeath, func(ev events.Event) {
		if death, ok := ev.(events.Death); ok {
			e.ClearTarget(death.TargetID)
		}
	})
	return e
}

// Apply attempts to put a status on target. Returns false when rejected:
// unknown type, dead target, freeze lockout, or a resist roll.
// Re-applying an active status refreshes its duration and adds one stack up
// to the type's cap; durations never sum.
func (e *Engine) Apply(source, target *model.Combatant, statusType string) bool {
	tmpl := data.GetStatusTemplate(statusType)
	if tmpl == nil {
		slog.Warn("unknown status type ignored", "type", statusType)
		return false
	}
	if target == nil || target.IsDead() {
		return false
	}

	// Freeze reapply cooldown gates independently of the status list.
	if statusType == "freeze" && e.freezeLock[target.ID()] > 0 {
		return false
	}

	resist := target.Stats().StatusResist
	if resist > 0 && e.rng() < resist {
		return false
	}

	potency := 1.0
	attack := 0.0
	if source != nil {
		potency = source.Stats().StatusPotency
		if potency <= 0 {
			potency = 1.0
		}
		attack = source.Stats().AttackPower
	}

	targetStatuses := e.active[target.ID()]
	if targetStatuses == nil {
		targetStatuses = make(map[string]*Instance)
		e.active[target.ID()] = targetStatuses
	}

	inst, exists := targetStatuses[statusType]
	if exists {
		// Refresh duration, bump stacks to cap. Tick timer keeps running.
		inst.RemainingSeconds = tmpl.DurationSeconds * inst.Potency
		if inst.Stacks < tmpl.MaxStacks {
			inst.Stacks++
		}
	} else {
		var sourceID uint32
		if source != nil {
			sourceID = source.ID()
		}
		inst = &Instance{
			Type:             statusType,
			Stacks:           1,
			RemainingSeconds: tmpl.DurationSeconds * potency,
			SourceID:         sourceID,
			AttackSnapshot:   attack,
			Potency:          potency,
		}
		targetStatuses[statusType] = inst

		if statusType == "freeze" {
			target.Stunned = true
		}
	}

	e.bus.Publish(events.StatusApplied{
		TargetID: target.ID(),
		SourceID: inst.SourceID,
		Type:     statusType,
		Stacks:   inst.Stacks,
	})
	return true
}

// Stacks returns the current stack count of a status on a target.
func (e *Engine) Stacks(targetID uint32, statusType string) int {
	if inst, ok := e.active[targetID][statusType]; ok {
		return inst.Stacks
	}
	return 0
}

// Has reports whether the target currently has the status.
func (e *Engine) Has(targetID uint32, statusType string) bool {
	_, ok := e.active[targetID][statusType]
	return ok
}

// FreezeLockRemaining returns the remaining reapply-cooldown for a target.
func (e *Engine) FreezeLockRemaining(targetID uint32) float64 {
	return e.freezeLock[targetID]
}

// SpeedMultiplier exposes the movement modifier to the movement
// collaborator: 1.0 normally, reduced while slowed, 0 while frozen.
// Freeze takes priority when both are present.
func (e *Engine) SpeedMultiplier(targetID uint32) float64 {
	statuses := e.active[targetID]
	if statuses == nil {
		return 1.0
	}
	if _, frozen := statuses["freeze"]; frozen {
		return 0
	}
	if _, slowed := statuses["slow"]; slowed {
		return 1.0 - e.cfg.Status.SlowFraction
	}
	return 1.0
}

// Remove explicitly removes a status from a target, emitting StatusExpired.
// A removed freeze still starts its reapply-cooldown window.
func (e *Engine) Remove(targetID uint32, statusType string) bool {
	statuses := e.active[targetID]
	if _, ok := statuses[statusType]; !ok {
		return false
	}
	delete(statuses, statusType)
	e.expire(targetID, statusType)
	return true
}

// ClearTarget drops all status state and the pending freeze cooldown for a
// target. Called on death; no expiry events fire for a dead target.
func (e *Engine) ClearTarget(targetID uint32) {
	if target := e.resolve(targetID); target != nil {
		target.Stunned = false
	}
	delete(e.active, targetID)
	delete(e.freezeLock, targetID)
}

// Tick advances all instances by dt seconds: fires due damage ticks, expires
// finished instances, and counts down freeze lockouts. Targets and their
// statuses are processed in sorted key order so kill credit and event order
// are reproducible under a fixed seed.
func (e *Engine) Tick(dt float64) {
	for targetID, lock := range e.freezeLock {
		lock -= dt
		if lock <= 0 {
			delete(e.freezeLock, targetID)
		} else {
			e.freezeLock[targetID] = lock
		}
	}

	targetIDs := make([]uint32, 0, len(e.active))
	for targetID := range e.active {
		targetIDs = append(targetIDs, targetID)
	}
	slices.Sort(targetIDs)

	for _, targetID := range targetIDs {
		statuses := e.active[targetID]
		target := e.resolve(targetID)
		if target == nil || target.IsDead() {
			delete(e.active, targetID)
			continue
		}

		types := make([]string, 0, len(statuses))
		for statusType := range statuses {
			types = append(types, statusType)
		}
		slices.Sort(types)

		for _, statusType := range types {
			inst := statuses[statusType]
			if inst == nil {
				// Removed by a listener earlier in this pass.
				continue
			}
			tmpl := data.GetStatusTemplate(statusType)
			if tmpl == nil {
				delete(statuses, statusType)
				continue
			}

			if tmpl.Ticks() {
				inst.tickTimer += dt
				for inst.tickTimer >= tmpl.TickIntervalSeconds {
					inst.tickTimer -= tmpl.TickIntervalSeconds
					e.fireTick(target, inst, tmpl)
					if target.IsDead() {
						break
					}
				}
			}
			if target.IsDead() {
				break // ClearTarget already ran via the Death event
			}

			inst.RemainingSeconds -= dt
			if inst.RemainingSeconds <= 0 {
				delete(statuses, statusType)
				e.expire(targetID, statusType)
			}
		}

		if statuses, ok := e.active[targetID]; ok && len(statuses) == 0 {
			delete(e.active, targetID)
		}
	}
}

// fireTick deals one tick of DoT damage through defense-only mitigation.
func (e *Engine) fireTick(target *model.Combatant, inst *Instance, tmpl *data.StatusTemplate) {
	raw := math.Floor(tmpl.DamagePercent * inst.AttackSnapshot * float64(inst.Stacks) * inst.Potency)
	if raw < float64(e.cfg.Status.MinTickDamage) {
		raw = float64(e.cfg.Status.MinTickDamage)
	}

	damage, _ := e.pipeline.ResolveTick(target, raw, inst.SourceID, inst.Type)

	e.bus.Publish(events.StatusTicked{
		TargetID: target.ID(),
		Type:     inst.Type,
		Damage:   damage,
		Stacks:   inst.Stacks,
	})
}

// expire emits the expiry outcome and handles freeze side effects: the
// target unfreezes and enters the fixed reapply-cooldown window.
func (e *Engine) expire(targetID uint32, statusType string) {
	if statusType == "freeze" {
		if target := e.resolve(targetID); target != nil {
			target.Stunned = false
		}
		e.freezeLock[targetID] = e.cfg.Status.FreezeReapplySeconds
	}
	e.bus.Publish(events.StatusExpired{TargetID: targetID, Type: statusType})
}
