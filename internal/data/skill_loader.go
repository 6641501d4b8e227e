package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// SkillTable is the registry of all skill templates, keyed by skill ID.
// Populated by LoadSkills at host startup.
var SkillTable map[string]*SkillTemplate

// GetSkillTemplate returns the template for a skill ID, or nil if unknown.
// Unknown IDs are not an error: definitions are externally supplied data and
// callers degrade to a no-op.
func GetSkillTemplate(id string) *SkillTemplate {
	if SkillTable == nil {
		return nil
	}
	return SkillTable[id]
}

// LoadSkills builds SkillTable from the built-in definitions.
func LoadSkills() error {
	SkillTable = make(map[string]*SkillTemplate, len(skillDefs))
	for i := range skillDefs {
		tmpl := &skillDefs[i]
		if err := validateSkill(tmpl); err != nil {
			return fmt.Errorf("skill %q: %w", tmpl.ID, err)
		}
		SkillTable[tmpl.ID] = tmpl
	}

	slog.Info("skill templates loaded", "count", len(SkillTable))
	return nil
}

// LoadSkillsFile loads skill templates from a yaml file, replacing any
// built-in definition with the same ID.
func LoadSkillsFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading skills %s: %w", path, err)
	}

	var defs []SkillTemplate
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("parsing skills %s: %w", path, err)
	}

	if SkillTable == nil {
		SkillTable = make(map[string]*SkillTemplate, len(defs))
	}
	for i := range defs {
		tmpl := &defs[i]
		if err := validateSkill(tmpl); err != nil {
			return fmt.Errorf("skill %q in %s: %w", tmpl.ID, path, err)
		}
		SkillTable[tmpl.ID] = tmpl
	}

	slog.Info("skill templates loaded from file", "path", path, "count", len(defs))
	return nil
}

func validateSkill(t *SkillTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("missing id")
	}
	if len(t.Levels) == 0 {
		return fmt.Errorf("no levels defined")
	}
	switch t.Mechanic {
	case MechanicOneShot, MechanicToggle, MechanicChannel:
	default:
		return fmt.Errorf("unknown mechanic %q", t.Mechanic)
	}
	switch t.Archetype {
	case ArchetypeMelee, ArchetypeAoE, ArchetypeProjectile, ArchetypeChain, ArchetypeBuff, ArchetypeInstant:
	default:
		return fmt.Errorf("unknown archetype %q", t.Archetype)
	}
	return nil
}
