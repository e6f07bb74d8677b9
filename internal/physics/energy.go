package physics

import (
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Energy returns the total mechanical energy of the bodies in joules.
// Coincident pairs contribute -Inf potential energy.
func Energy(bodies []*dynamo.Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

func KineticEnergy(bodies []*dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		v := MetersPerKm * r3.Norm(b.Velocity)
		ke += 0.5 * b.Mass() * v * v
	}
	return ke
}

func PotentialEnergy(bodies []*dynamo.Body) float64 {
	pe := 0.0
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			r := MetersPerKm * r3.Norm(r3.Sub(a.Position, b.Position))
			if r == 0 {
				return math.Inf(-1)
			}
			pe -= G * a.Mass() * b.Mass() / r
		}
	}
	return pe
}

// Momentum returns Σ mᵢvᵢ in kg km/s.
func Momentum(bodies []*dynamo.Body) r3.Vec {
	var p r3.Vec
	for _, b := range bodies {
		p = r3.Add(p, r3.Scale(b.Mass(), b.Velocity))
	}
	return p
}

// AngularMomentum returns Σ mᵢ rᵢ × vᵢ about the origin in kg km²/s.
func AngularMomentum(bodies []*dynamo.Body) r3.Vec {
	var l r3.Vec
	for _, b := range bodies {
		l = r3.Add(l, r3.Scale(b.Mass(), r3.Cross(b.Position, b.Velocity)))
	}
	return l
}

// CircularSpeed is the circular-orbit speed in km/s at distance km from a
// central mass in kg.
func CircularSpeed(centralMass, distance float64) float64 {
	return math.Sqrt(GKm * centralMass / distance)
}
