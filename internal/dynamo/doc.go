// Package dynamo provides the core data model of the n-body engine.
//
// The package defines the types shared by the force, thermal and
// integration models and by the simulator:
//
//   - [Body]: one celestial object (kinematic state + radiative parameters)
//   - [System]: the ordered body collection under simulation
//   - [Snapshot]: frozen per-step copy of every body's state
//   - [History]: recorded per-body trajectories and temperatures
//   - [ForceModel], [ThermalModel], [Integrator]: the step contracts
//
// # Units
//
// Positions are kilometres, velocities kilometres per second, masses
// kilograms, radii kilometres and temperatures kelvin. Physical constants
// are SI; the conversion lives in package physics.
//
// # Two-phase steps
//
// Models read a [Snapshot] and write into separate output slices; only the
// [Integrator] mutates bodies, and only after every model returned. A model
// therefore never sees a position already advanced for the current step.
package dynamo
