package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ForceModel computes the net force on every body from a frozen snapshot.
// out[i] receives the force on body i in newtons.
type ForceModel interface {
	Forces(snap *Snapshot, out []r3.Vec) error
}

// ThermalModel computes, for every body, the fourth power of its
// equilibrium temperature from a frozen snapshot.
type ThermalModel interface {
	Equilibrium(snap *Snapshot, out []float64) error
}

// Integrator commits one step's computed forces and radiative quantities
// into the bodies' velocity, position and temperature.
type Integrator interface {
	Commit(bodies []*Body, forces []r3.Vec, radiation []float64, dt float64)
}

// Metric accumulates a scalar over a run. Observe is called after every
// commit with the bodies in system order; it must not mutate them.
type Metric interface {
	Name() string
	Observe(step int, bodies []*Body)
	Value() float64
	Reset()
}

// Observer is notified after each recorded step.
type Observer interface {
	OnStep(step int, t float64, bodies []*Body)
}

// Config describes one run: Steps fixed steps spanning Duration seconds.
type Config struct {
	Duration      float64
	Steps         int
	Workers       int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      365.25 * 24 * 3600,
		Steps:         365,
		Workers:       1,
		ValidateState: true,
	}
}

// Validate rejects non-positive or non-finite run parameters.
func (c Config) Validate() error {
	if c.Steps <= 0 {
		return &RunParamError{Param: "steps", Value: float64(c.Steps)}
	}
	if c.Duration <= 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return &RunParamError{Param: "duration", Value: c.Duration}
	}
	return nil
}

// Dt is the fixed step in seconds.
func (c Config) Dt() float64 {
	return c.Duration / float64(c.Steps)
}
