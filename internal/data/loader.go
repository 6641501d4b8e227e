package data

import "fmt"

// LoadAll populates every built-in registry. Hosts call this once at
// startup, optionally layering yaml files on top afterwards.
func LoadAll() error {
	if err := LoadSkills(); err != nil {
		return fmt.Errorf("loading skills: %w", err)
	}
	if err := LoadStatuses(); err != nil {
		return fmt.Errorf("loading statuses: %w", err)
	}
	if err := LoadMonsters(); err != nil {
		return fmt.Errorf("loading monsters: %w", err)
	}
	return nil
}
