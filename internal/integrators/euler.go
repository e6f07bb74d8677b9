package integrators

import (
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// SemiImplicitEuler is the fixed-step symplectic Euler rule. Velocity is
// advanced first and the position update uses the new velocity; swapping
// the two turns it into explicit Euler and makes orbits spiral outward.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

// Commit applies, for every body i:
//
//	v ← v + dt·F/m (m/s² converted to km/s²)
//	p ← p + dt·v
//	T ← radiation^(1/4)
func (e *SemiImplicitEuler) Commit(bodies []*dynamo.Body, forces []r3.Vec, radiation []float64, dt float64) {
	for i, b := range bodies {
		accel := r3.Scale(1/(b.Mass()*physics.MetersPerKm), forces[i])
		b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, accel))
		b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
		b.Temperature = fourthRoot(radiation[i])
	}
}

// fourthRoot uses two correctly rounded square roots, so fourthRoot(T⁴)
// returns T exactly whenever T⁴ was computed as (T·T)·(T·T).
func fourthRoot(x float64) float64 {
	return math.Sqrt(math.Sqrt(x))
}
