package stats

import (
	"github.com/google/uuid"

	"github.com/nocten/valdera/internal/data"
)

// PermanentDuration marks a buff that lives until explicitly removed
// (toggle buffs).
const PermanentDuration = -1

// Buff is a data-only timer record of stat deltas. Removal reverses exactly
// the deltas it applied because the aggregator recomputes from scratch from
// whatever buffs remain; nothing is applied in place.
type Buff struct {
	ID               string
	SkillID          string // skill that created the buff, empty for external sources
	Deltas           []data.StatDelta
	RemainingSeconds float64 // PermanentDuration = until removed
}

// newBuffID returns a short unique buff instance ID.
func newBuffID() string {
	return "buff_" + uuid.NewString()[:8]
}

// permanent reports whether the buff only expires by explicit removal.
func (b *Buff) permanent() bool {
	return b.RemainingSeconds < 0
}
