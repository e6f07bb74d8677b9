package physics

import (
	"fmt"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Radiation is the instantaneous radiative-equilibrium model. Each other
// body is an isotropic point radiator whose flux falls off with the square
// of distance; the receiver absorbs (1 - albedo) of it and re-radiates with
// its emissivity. Temperature carries no thermal inertia: it's recomputed
// from scratch every step.
type Radiation struct {
	Workers int
}

func NewRadiation() *Radiation {
	return &Radiation{Workers: 1}
}

// Equilibrium writes into out[i] the fourth power of body i's equilibrium
// temperature [K⁴]. Bodies with albedo 1 return their own T⁴ and therefore
// keep their temperature.
func (r *Radiation) Equilibrium(snap *dynamo.Snapshot, out []float64) error {
	n := snap.Len()
	if len(out) != n {
		return fmt.Errorf("physics: radiation buffer has %d slots for %d bodies", len(out), n)
	}
	return dynamo.ParallelFor(n, r.Workers, func(start, end int) error {
		for i := start; i < end; i++ {
			q, err := equilibriumOf(snap, i)
			if err != nil {
				return err
			}
			out[i] = q
		}
		return nil
	})
}

func equilibriumOf(snap *dynamo.Snapshot, i int) (float64, error) {
	ti := snap.Temperatures[i]
	if snap.Albedos[i] == 1.0 {
		return pow4(ti), nil
	}

	sum := 0.0
	pi := snap.Positions[i]
	for j := range snap.Positions {
		if j == i {
			continue
		}
		d := MetersPerKm * r3.Norm(r3.Sub(pi, snap.Positions[j]))
		if d == 0 {
			return 0, singular(snap, i, j)
		}
		ratio := snap.Radii[j] * MetersPerKm / d
		q := ratio * ratio * pow4(snap.Temperatures[j])
		if !finite(q) {
			return 0, singular(snap, i, j)
		}
		sum += q
	}

	return (1 - snap.Albedos[i]) / (4 * snap.Emissivities[i]) * sum, nil
}

func pow4(x float64) float64 {
	x2 := x * x
	return x2 * x2
}
