// Package physics provides the force and thermal models of the engine.
//
// Both models implement the step contracts of package dynamo and read
// only a frozen [dynamo.Snapshot]:
//
//   - [Gravity]: direct O(n²) Newtonian summation ([dynamo.ForceModel])
//   - [Radiation]: instantaneous radiative equilibrium ([dynamo.ThermalModel])
//
// Diagnostics ([Energy], [Momentum], [AngularMomentum]) operate on bodies
// directly and are used by the metrics package.
//
// # Units
//
// All unit conversions are the named constants in units.go. Distances are
// converted from kilometres to metres in every pairwise term.
//
//	sys, _ := dynamo.FromSpecs(specs)
//	snap := sys.Capture(0, nil)
//	forces := make([]r3.Vec, sys.Len())
//	err := physics.NewGravity().Forces(snap, forces)
package physics
