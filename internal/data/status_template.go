package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// StatusTemplate defines the behavior of one status effect type.
// DamagePercent is the fraction of the source's attack snapshot dealt per
// tick per stack; zero for non-damaging types (slow, freeze).
type StatusTemplate struct {
	Type                string  `yaml:"type"`
	MaxStacks           int     `yaml:"max_stacks"`
	DurationSeconds     float64 `yaml:"duration_seconds"`
	TickIntervalSeconds float64 `yaml:"tick_interval_seconds"`
	DamagePercent       float64 `yaml:"damage_percent"`
}

// Ticks reports whether this status deals periodic damage.
func (t *StatusTemplate) Ticks() bool {
	return t.DamagePercent > 0 && t.TickIntervalSeconds > 0
}

// StatusTable is the registry of status templates, keyed by type name.
var StatusTable map[string]*StatusTemplate

// statusDefs holds the built-in status definitions.
var statusDefs = []StatusTemplate{
	{Type: "bleed", MaxStacks: 5, DurationSeconds: 4, TickIntervalSeconds: 0.5, DamagePercent: 0.05},
	{Type: "poison", MaxStacks: 3, DurationSeconds: 6, TickIntervalSeconds: 1.0, DamagePercent: 0.08},
	{Type: "burn", MaxStacks: 1, DurationSeconds: 3, TickIntervalSeconds: 0.25, DamagePercent: 0.04},
	{Type: "slow", MaxStacks: 1, DurationSeconds: 3},
	{Type: "freeze", MaxStacks: 1, DurationSeconds: 2},
}

// GetStatusTemplate returns the template for a status type, or nil if unknown.
func GetStatusTemplate(statusType string) *StatusTemplate {
	if StatusTable == nil {
		return nil
	}
	return StatusTable[statusType]
}

// LoadStatuses builds StatusTable from the built-in definitions.
func LoadStatuses() error {
	StatusTable = make(map[string]*StatusTemplate, len(statusDefs))
	for i := range statusDefs {
		tmpl := &statusDefs[i]
		if tmpl.MaxStacks < 1 {
			return fmt.Errorf("status %q: max_stacks must be at least 1", tmpl.Type)
		}
		StatusTable[tmpl.Type] = tmpl
	}

	slog.Info("status templates loaded", "count", len(StatusTable))
	return nil
}

// LoadStatusesFile loads status templates from a yaml file, replacing any
// built-in definition with the same type name.
func LoadStatusesFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statuses %s: %w", path, err)
	}

	var defs []StatusTemplate
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("parsing statuses %s: %w", path, err)
	}

	if StatusTable == nil {
		StatusTable = make(map[string]*StatusTemplate, len(defs))
	}
	for i := range defs {
		tmpl := &defs[i]
		if tmpl.MaxStacks < 1 {
			return fmt.Errorf("status %q in %s: max_stacks must be at least 1", tmpl.Type, path)
		}
		StatusTable[tmpl.Type] = tmpl
	}

	slog.Info("status templates loaded from file", "path", path, "count", len(defs))
	return nil
}
