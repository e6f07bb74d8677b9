package config

import (
	"fmt"
	"os"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"github.com/StendArts/Astronomic-Objects/internal/scenario"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps   = 365
	DefaultYears   = 1.0
	DefaultWorkers = 1
	DefaultTrail   = 1.0
)

// Config is the YAML description of a run. Exactly one duration field is
// used: seconds, then days, then years.
type Config struct {
	Name            string       `yaml:"name"`
	Description     string       `yaml:"description,omitempty"`
	DurationYears   float64      `yaml:"duration_years,omitempty"`
	DurationDays    float64      `yaml:"duration_days,omitempty"`
	DurationSeconds float64      `yaml:"duration_seconds,omitempty"`
	Steps           int          `yaml:"steps"`
	Workers         int          `yaml:"workers,omitempty"`
	Center          string       `yaml:"center,omitempty"`
	Trail           float64      `yaml:"trail,omitempty"`
	Playback        float64      `yaml:"playback_seconds,omitempty"`
	Bodies          []BodyConfig `yaml:"bodies"`
}

// BodyConfig gives either an explicit position and velocity or an orbit
// around a body listed earlier in the file.
type BodyConfig struct {
	Name        string       `yaml:"name"`
	Position    []float64    `yaml:"position,flow,omitempty"`
	Velocity    []float64    `yaml:"velocity,flow,omitempty"`
	Orbit       *OrbitConfig `yaml:"orbit,omitempty"`
	Mass        float64      `yaml:"mass"`
	Radius      float64      `yaml:"radius"`
	Temperature float64      `yaml:"temperature"`
	Albedo      float64      `yaml:"albedo"`
	Emissivity  float64      `yaml:"emissivity"`
	Color       string       `yaml:"color,omitempty"`
}

type OrbitConfig struct {
	Around      string  `yaml:"around"`
	DistanceKm  float64 `yaml:"distance_km,omitempty"`
	DistanceAU  float64 `yaml:"distance_au,omitempty"`
	Inclination float64 `yaml:"inclination_deg,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		DurationYears: DefaultYears,
		Steps:         DefaultSteps,
		Workers:       DefaultWorkers,
		Trail:         DefaultTrail,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Duration returns the simulated time span in seconds.
func (c *Config) Duration() float64 {
	switch {
	case c.DurationSeconds != 0:
		return c.DurationSeconds
	case c.DurationDays != 0:
		return c.DurationDays * physics.SecondsPerDay
	default:
		return c.DurationYears * physics.SecondsPerYear
	}
}

// RunConfig returns the engine run parameters. Workers below one run
// serially.
func (c *Config) RunConfig() dynamo.Config {
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	return dynamo.Config{
		Duration:      c.Duration(),
		Steps:         c.Steps,
		Workers:       workers,
		ValidateState: true,
	}
}

// Specs resolves orbit blocks into explicit positions and velocities.
func (c *Config) Specs() ([]dynamo.BodySpec, error) {
	specs := make([]dynamo.BodySpec, 0, len(c.Bodies))
	resolved := make(map[string]dynamo.BodySpec, len(c.Bodies))

	for _, bc := range c.Bodies {
		spec := dynamo.BodySpec{
			Name:        bc.Name,
			Mass:        bc.Mass,
			Radius:      bc.Radius,
			Temperature: bc.Temperature,
			Albedo:      bc.Albedo,
			Emissivity:  bc.Emissivity,
			Color:       bc.Color,
		}

		if bc.Orbit != nil {
			central, ok := resolved[bc.Orbit.Around]
			if !ok {
				return nil, fmt.Errorf("body %q orbits %q: %w", bc.Name, bc.Orbit.Around, dynamo.ErrUnknownBody)
			}
			distance := bc.Orbit.DistanceKm
			if distance == 0 {
				distance = bc.Orbit.DistanceAU * physics.AU
			}
			if distance <= 0 {
				return nil, &dynamo.BodyParamError{Body: bc.Name, Param: "orbit.distance", Value: distance, Reason: "must be positive"}
			}
			spec = scenario.Circular(bc.Name, central, distance, bc.Orbit.Inclination, spec)
		} else {
			var err error
			if spec.Position, err = vec(bc.Name, "position", bc.Position); err != nil {
				return nil, err
			}
			if spec.Velocity, err = vec(bc.Name, "velocity", bc.Velocity); err != nil {
				return nil, err
			}
		}

		specs = append(specs, spec)
		resolved[spec.Name] = spec
	}
	return specs, nil
}

func vec(body, param string, v []float64) (r3.Vec, error) {
	switch len(v) {
	case 0:
		return r3.Vec{}, nil
	case 3:
		return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return r3.Vec{}, &dynamo.BodyParamError{Body: body, Param: param, Value: float64(len(v)), Reason: "needs 3 components"}
	}
}

// Build validates the file and returns the initial system and run
// parameters.
func (c *Config) Build() (*dynamo.System, dynamo.Config, error) {
	specs, err := c.Specs()
	if err != nil {
		return nil, dynamo.Config{}, err
	}
	sys, err := dynamo.FromSpecs(specs)
	if err != nil {
		return nil, dynamo.Config{}, err
	}
	run := c.RunConfig()
	if err := run.Validate(); err != nil {
		return nil, dynamo.Config{}, err
	}
	if c.Center != "" {
		if _, err := sys.Index(c.Center); err != nil {
			return nil, dynamo.Config{}, fmt.Errorf("center: %w", err)
		}
	}
	return sys, run, nil
}

func fromVec(v r3.Vec) []float64 {
	if v == (r3.Vec{}) {
		return nil
	}
	return []float64{v.X, v.Y, v.Z}
}

// FromScenario converts a built-in scenario into an explicit config.
func FromScenario(sc scenario.Scenario) *Config {
	cfg := &Config{
		Name:            sc.Name,
		Description:     sc.Description,
		DurationSeconds: sc.Duration,
		Steps:           sc.Steps,
		Workers:         DefaultWorkers,
		Center:          sc.Center,
		Trail:           sc.Trail,
		Playback:        sc.Playback,
		Bodies:          make([]BodyConfig, 0, len(sc.Bodies)),
	}
	for _, b := range sc.Bodies {
		cfg.Bodies = append(cfg.Bodies, BodyConfig{
			Name:        b.Name,
			Position:    fromVec(b.Position),
			Velocity:    fromVec(b.Velocity),
			Mass:        b.Mass,
			Radius:      b.Radius,
			Temperature: b.Temperature,
			Albedo:      b.Albedo,
			Emissivity:  b.Emissivity,
			Color:       b.Color,
		})
	}
	return cfg
}
