package config

import (
	"github.com/StendArts/Astronomic-Objects/internal/scenario"
)

// GetPreset returns the named built-in system as a config, or nil.
func GetPreset(name string) *Config {
	sc, err := scenario.Get(name)
	if err != nil {
		return nil
	}
	return FromScenario(sc)
}

func ListPresets() []string {
	return scenario.Names()
}
