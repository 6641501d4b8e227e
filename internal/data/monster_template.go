package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// MonsterTemplate is the static definition a monster spawns from. The
// generation system that picks and scales templates is an external
// collaborator; the core only consumes its output.
type MonsterTemplate struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	MaxHP        int     `yaml:"max_hp"`
	MaxShield    int     `yaml:"max_shield"`
	Armor        int     `yaml:"armor"`
	Defense      float64 `yaml:"defense"`
	AttackPower  float64 `yaml:"attack_power"`
	CritChance   float64 `yaml:"crit_chance"`
	CritDamage   float64 `yaml:"crit_damage"`
	MoveSpeed    float64 `yaml:"move_speed"`
	AttackSpeed  float64 `yaml:"attack_speed"`
	StatusResist float64 `yaml:"status_resist"`
	Radius       float64 `yaml:"radius"`
	XPReward     int64   `yaml:"xp_reward"`
	GoldReward   int     `yaml:"gold_reward"`
	Boss         bool    `yaml:"boss"`
}

// MonsterTable is the registry of monster templates, keyed by ID.
var MonsterTable map[string]*MonsterTemplate

var monsterDefs = []MonsterTemplate{
	{ID: "rot_walker", Name: "Rot Walker", MaxHP: 120, Armor: 5, Defense: 40, AttackPower: 14, CritChance: 0.03, CritDamage: 1.5, MoveSpeed: 60, AttackSpeed: 0.8, Radius: 14, XPReward: 12, GoldReward: 3},
	{ID: "hollow_archer", Name: "Hollow Archer", MaxHP: 80, Armor: 2, Defense: 25, AttackPower: 18, CritChance: 0.08, CritDamage: 1.6, MoveSpeed: 70, AttackSpeed: 1.0, Radius: 12, XPReward: 15, GoldReward: 4},
	{ID: "shard_golem", Name: "Shard Golem", MaxHP: 400, MaxShield: 120, Armor: 25, Defense: 110, AttackPower: 30, CritChance: 0.02, CritDamage: 1.5, MoveSpeed: 40, AttackSpeed: 0.5, StatusResist: 0.35, Radius: 24, XPReward: 60, GoldReward: 20},
	{ID: "grave_tyrant", Name: "Grave Tyrant", MaxHP: 1500, MaxShield: 300, Armor: 40, Defense: 180, AttackPower: 55, CritChance: 0.1, CritDamage: 1.8, MoveSpeed: 55, AttackSpeed: 0.7, StatusResist: 0.6, Radius: 32, XPReward: 500, GoldReward: 150, Boss: true},
}

// GetMonsterTemplate returns the template for a monster ID, or nil if unknown.
func GetMonsterTemplate(id string) *MonsterTemplate {
	if MonsterTable == nil {
		return nil
	}
	return MonsterTable[id]
}

// LoadMonsters builds MonsterTable from the built-in definitions.
func LoadMonsters() error {
	MonsterTable = make(map[string]*MonsterTemplate, len(monsterDefs))
	for i := range monsterDefs {
		tmpl := &monsterDefs[i]
		if tmpl.MaxHP < 1 {
			return fmt.Errorf("monster %q: max_hp must be at least 1", tmpl.ID)
		}
		MonsterTable[tmpl.ID] = tmpl
	}

	slog.Info("monster templates loaded", "count", len(MonsterTable))
	return nil
}

// LoadMonstersFile loads monster templates from a yaml file, replacing any
// built-in definition with the same ID.
func LoadMonstersFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading monsters %s: %w", path, err)
	}

	var defs []MonsterTemplate
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("parsing monsters %s: %w", path, err)
	}

	if MonsterTable == nil {
		MonsterTable = make(map[string]*MonsterTemplate, len(defs))
	}
	for i := range defs {
		tmpl := &defs[i]
		if tmpl.MaxHP < 1 {
			return fmt.Errorf("monster %q in %s: max_hp must be at least 1", tmpl.ID, path)
		}
		MonsterTable[tmpl.ID] = tmpl
	}

	slog.Info("monster templates loaded from file", "path", path, "count", len(defs))
	return nil
}
