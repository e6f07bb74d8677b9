package scenario

import (
	"fmt"
	"sort"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
)

// Scenario is a named initial state plus the run and playback settings it
// is meant to be viewed with.
type Scenario struct {
	Name        string
	Description string
	Bodies      []dynamo.BodySpec
	Duration    float64 // s
	Steps       int

	// Center names the body playback is fixed on; empty means none.
	Center string
	// Trail is the trailing fraction of each trajectory drawn in playback.
	Trail float64
	// Playback is the wall-clock animation length in seconds.
	Playback float64
}

// System builds a fresh System from the scenario's bodies.
func (s Scenario) System() (*dynamo.System, error) {
	return dynamo.FromSpecs(s.Bodies)
}

// Config returns the run parameters with a single worker.
func (s Scenario) Config() dynamo.Config {
	return dynamo.Config{Duration: s.Duration, Steps: s.Steps, Workers: 1, ValidateState: true}
}

var registry = map[string]func() Scenario{
	"earth-sun":      EarthSun,
	"sun-earth-moon": SunEarthMoon,
	"solar-system":   SolarSystem,
	"jupiter":        Jupiter,
	"trisolar":       Trisolar,
	"alpha-centauri": AlphaCentauri,
	"gamma-cephei":   GammaCephei,
}

// Get returns a freshly built copy of the named scenario.
func Get(name string) (Scenario, error) {
	fn, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
