// Package energy manages the player's energy pool: passive regeneration,
// spending with insufficient-signal, and proportional rescale when the
// aggregated max changes.
package energy

import (
	"github.com/nocten/valdera/internal/config"
	"github.com/nocten/valdera/internal/events"
)

// Pool is one combatant's energy reserve. All mutation emits EnergyChanged;
// failed spends emit EnergyInsufficient instead of an error.
type Pool struct {
	cfg     config.Sim
	bus     *events.Bus
	ownerID uint32

	current float64
	max     float64
}

// NewPool creates a full pool with the given max.
func NewPool(cfg config.Sim, bus *events.Bus, ownerID uint32, max float64) *Pool {
	if max < 0 {
		max = 0
	}
	return &Pool{cfg: cfg, bus: bus, ownerID: ownerID, current: max, max: max}
}

// Current returns the current energy.
func (p *Pool) Current() float64 { return p.current }

// Max returns the maximum energy.
func (p *Pool) Max() float64 { return p.max }

// Tick applies passive regeneration for dt seconds.
func (p *Pool) Tick(dt float64) {
	if p.current >= p.max {
		return
	}
	p.set(p.current + p.cfg.EnergyRegenPerSecond*dt)
}

// Spend deducts amount if available. On failure nothing is deducted and an
// EnergyInsufficient event fires; callers must check the result.
func (p *Pool) Spend(amount float64) bool {
	if amount <= 0 {
		return true
	}
	if p.current < amount {
		p.bus.Publish(events.EnergyInsufficient{
			OwnerID:  p.ownerID,
			Required: amount,
			Current:  p.current,
		})
		return false
	}
	p.set(p.current - amount)
	return true
}

// Restore adds amount, clamped to max.
func (p *Pool) Restore(amount float64) {
	if amount <= 0 {
		return
	}
	p.set(p.current + amount)
}

// SetMax changes the pool maximum, preserving the fill ratio rather than the
// absolute value: a pool at 40% stays at 40% after a max-energy buff.
func (p *Pool) SetMax(max float64) {
	if max < 0 {
		max = 0
	}
	if max == p.max {
		return
	}

	ratio := 1.0
	if p.max > 0 {
		ratio = p.current / p.max
	}
	p.max = max
	p.set(max * ratio)
}

func (p *Pool) set(value float64) {
	if value < 0 {
		value = 0
	}
	if value > p.max {
		value = p.max
	}
	if value == p.current {
		return
	}
	p.current = value
	p.bus.Publish(events.EnergyChanged{OwnerID: p.ownerID, Current: p.current, Max: p.max})
}
