package skill

import (
	"log/slog"
	"slices"

	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/data"
	"github.com/nocten/valdera/internal/events"
	"github.com/nocten/valdera/internal/game/energy"
	"github.com/nocten/valdera/internal/game/stats"
	"github.com/nocten/valdera/internal/model"
)

// runtimeState is one skill's activation state. Created on first unlock and
// kept for the whole session.
type runtimeState struct {
	baseCooldown float64 // cooldown duration of the last activation
	cooldown     float64 // remaining seconds, 0 = ready
	active       bool    // toggle on / channel charging
	charge       float64 // accumulated channel charge seconds
}

// Manager drives skill activation: it validates cooldown and energy, runs
// the one-shot/toggle/channel mechanics, and hands successful activations
// to the resolver. All waits are counters decremented by Tick.
type Manager struct {
	cfg        config.Sim
	bus        *events.Bus
	player     *model.Player
	book       *Book
	energy     *energy.Pool
	aggregator *stats.Aggregator
	resolver   *Resolver

	runtime map[string]*runtimeState
}

// NewManager wires the activation state machine to its collaborators and
// hooks slot eviction so running toggles and channels cancel before their
// skill leaves a slot.
func NewManager(
	cfg config.Sim,
	bus *events.Bus,
	player *model.Player,
	book *Book,
	pool *energy.Pool,
	aggregator *stats.Aggregator,
	resolver *Resolver,
) *Manager {
	m := &Manager{
		cfg:        cfg,
		bus:        bus,
		player:     player,
		book:       book,
		energy:     pool,
		aggregator: aggregator,
		resolver:   resolver,
		runtime:    make(map[string]*runtimeState),
	}
	book.onEvict = m.Deactivate
	return m
}

// CooldownRemaining returns the remaining cooldown seconds for a skill.
func (m *Manager) CooldownRemaining(skillID string) float64 {
	if rt := m.runtime[skillID]; rt != nil {
		return rt.cooldown
	}
	return 0
}

// IsActive reports whether a toggle is on or a channel is charging.
func (m *Manager) IsActive(skillID string) bool {
	if rt := m.runtime[skillID]; rt != nil {
		return rt.active
	}
	return false
}

// ChargeSeconds returns the accumulated channel charge for a skill.
func (m *Manager) ChargeSeconds(skillID string) float64 {
	if rt := m.runtime[skillID]; rt != nil {
		return rt.charge
	}
	return 0
}

// Activate requests a skill use. The skill must be unlocked and equipped and
// the player able to act. Returns false when rejected; rejection reasons are
// signaled through events (EnergyInsufficient), not errors.
//
// Mechanics:
//   - one-shot: ready + energy → spend, resolve, start cooldown
//   - toggle: flips on/off; off starts the cooldown
//   - channel: first call starts charging, second call releases
func (m *Manager) Activate(skillID string, angle float64) bool {
	entry := m.book.Entry(skillID)
	if entry == nil || entry.Slot == NoSlot {
		return false
	}
	if m.player.IsDead() || m.player.Stunned {
		return false
	}
	tmpl := data.GetSkillTemplate(skillID)
	if tmpl == nil {
		return false
	}
	spec := tmpl.Level(entry.Level)
	if spec == nil {
		return false
	}
	rt := m.ensureRuntime(skillID)

	switch tmpl.Mechanic {
	case data.MechanicOneShot:
		return m.activateOneShot(skillID, tmpl, spec, entry.Level, rt, angle)
	case data.MechanicToggle:
		return m.activateToggle(skillID, tmpl, spec, entry.Level, rt, angle)
	case data.MechanicChannel:
		return m.activateChannel(skillID, tmpl, spec, entry.Level, rt, angle)
	default:
		slog.Warn("skill with unknown mechanic ignored", "skill", skillID, "mechanic", tmpl.Mechanic)
		return false
	}
}

// Deactivate cancels a running toggle or channel synchronously: buffs are
// reversed and the cooldown starts within this call. No-op otherwise.
func (m *Manager) Deactivate(skillID string) {
	rt := m.runtime[skillID]
	if rt == nil || !rt.active {
		return
	}
	tmpl := data.GetSkillTemplate(skillID)
	if tmpl == nil {
		rt.active = false
		return
	}
	spec := tmpl.Level(m.book.Level(skillID))

	rt.active = false
	rt.charge = 0
	m.aggregator.RemoveBuffsBySkill(skillID)
	if spec != nil {
		m.startCooldown(skillID, rt, spec.CooldownSeconds)
	}
}

// Tick advances cooldowns, drains active toggles, and accumulates channel
// charge. Runs once per simulation tick before new activation requests.
// Skills are processed in sorted ID order so event order is reproducible.
func (m *Manager) Tick(dt float64) {
	for _, skillID := range m.sortedSkillIDs() {
		rt := m.runtime[skillID]
		if rt.cooldown > 0 {
			rt.cooldown -= dt
			if rt.cooldown <= 0 {
				rt.cooldown = 0
				m.bus.Publish(events.CooldownReady{OwnerID: m.player.ID(), SkillID: skillID})
			}
		}

		if !rt.active {
			continue
		}
		tmpl := data.GetSkillTemplate(skillID)
		if tmpl == nil {
			continue
		}
		spec := tmpl.Level(m.book.Level(skillID))
		if spec == nil {
			continue
		}

		switch tmpl.Mechanic {
		case data.MechanicToggle:
			// Continuous drain; exhaustion auto-deactivates and starts
			// the cooldown.
			if !m.energy.Spend(spec.EnergyCost * dt) {
				m.Deactivate(skillID)
			}
		case data.MechanicChannel:
			rt.charge += dt
			if spec.ChargeSeconds > 0 && rt.charge > spec.ChargeSeconds {
				rt.charge = spec.ChargeSeconds
			}
		}
	}
}

// ReduceCooldowns applies a flat cooldown reduction to every cooling skill,
// optionally excluding one (effects that reduce *other* cooldowns).
// Reduction never drives a cooldown below the configured floor fraction of
// its base; a cooldown already under the floor is left alone.
func (m *Manager) ReduceCooldowns(amount float64, excludeSkillID string) {
	if amount <= 0 {
		return
	}
	for _, skillID := range m.sortedSkillIDs() {
		rt := m.runtime[skillID]
		if skillID == excludeSkillID || rt.cooldown <= 0 {
			continue
		}
		floor := m.cfg.CooldownFloorFraction * rt.baseCooldown
		if rt.cooldown <= floor {
			continue
		}
		rt.cooldown -= amount
		if rt.cooldown < floor {
			rt.cooldown = floor
		}
		if rt.cooldown <= 0 {
			rt.cooldown = 0
			m.bus.Publish(events.CooldownReady{OwnerID: m.player.ID(), SkillID: skillID})
		}
	}
}

func (m *Manager) activateOneShot(skillID string, tmpl *data.SkillTemplate, spec *data.SkillLevel, level int, rt *runtimeState, angle float64) bool {
	if rt.cooldown > 0 {
		return false
	}
	if !m.energy.Spend(spec.EnergyCost) {
		return false
	}

	m.startCooldown(skillID, rt, spec.CooldownSeconds)
	m.emitUsed(skillID, level, angle)
	m.resolver.Resolve(m.buildContext(skillID, tmpl, spec, level, angle, 1.0))
	return true
}

func (m *Manager) activateToggle(skillID string, tmpl *data.SkillTemplate, spec *data.SkillLevel, level int, rt *runtimeState, angle float64) bool {
	if rt.active {
		m.Deactivate(skillID)
		return true
	}
	if rt.cooldown > 0 {
		return false
	}
	if m.energy.Current() <= 0 {
		m.bus.Publish(events.EnergyInsufficient{
			OwnerID:  m.player.ID(),
			Required: spec.EnergyCost * m.cfg.TickSeconds(),
			Current:  m.energy.Current(),
		})
		return false
	}

	rt.active = true
	m.emitUsed(skillID, level, angle)
	m.resolver.Resolve(m.buildContext(skillID, tmpl, spec, level, angle, 1.0))
	return true
}

func (m *Manager) activateChannel(skillID string, tmpl *data.SkillTemplate, spec *data.SkillLevel, level int, rt *runtimeState, angle float64) bool {
	if !rt.active {
		if rt.cooldown > 0 {
			return false
		}
		if !m.energy.Spend(spec.EnergyCost) {
			return false
		}
		rt.active = true
		rt.charge = 0
		return true
	}

	// Second activation releases, finalizing from accumulated charge.
	frac := 1.0
	if spec.ChargeSeconds > 0 {
		frac = rt.charge / spec.ChargeSeconds
		if frac > 1 {
			frac = 1
		}
	}
	rt.active = false
	rt.charge = 0

	m.emitUsed(skillID, level, angle)
	m.resolver.Resolve(m.buildContext(skillID, tmpl, spec, level, angle, frac))
	m.startCooldown(skillID, rt, spec.CooldownSeconds)
	return true
}

func (m *Manager) buildContext(skillID string, tmpl *data.SkillTemplate, spec *data.SkillLevel, level int, angle, charge float64) Context {
	return Context{
		Caster:    m.player,
		Origin:    m.player.Location(),
		Angle:     angle,
		Charge:    charge,
		SkillID:   skillID,
		Level:     level,
		Archetype: tmpl.Archetype,
		Spec:      spec,
	}
}

func (m *Manager) emitUsed(skillID string, level int, angle float64) {
	m.bus.Publish(events.SkillUsed{
		OwnerID: m.player.ID(),
		SkillID: skillID,
		Level:   level,
		Origin:  m.player.Location(),
		Angle:   angle,
	})
}

func (m *Manager) startCooldown(skillID string, rt *runtimeState, duration float64) {
	if duration <= 0 {
		return
	}
	rt.baseCooldown = duration
	rt.cooldown = duration
	m.bus.Publish(events.CooldownStarted{OwnerID: m.player.ID(), SkillID: skillID, Duration: duration})
}

func (m *Manager) sortedSkillIDs() []string {
	ids := make([]string, 0, len(m.runtime))
	for skillID := range m.runtime {
		ids = append(ids, skillID)
	}
	slices.Sort(ids)
	return ids
}

func (m *Manager) ensureRuntime(skillID string) *runtimeState {
	rt := m.runtime[skillID]
	if rt == nil {
		rt = &runtimeState{}
		m.runtime[skillID] = rt
	}
	return rt
}
