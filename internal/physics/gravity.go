package physics

import (
	"fmt"
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Gravity is the direct-summation Newtonian force model. Every pairwise
// term is evaluated from the same snapshot, so the result does not depend
// on iteration order. Workers > 1 splits bodies across goroutines; each
// body's sum is still accumulated in j order, so serial and parallel
// results are bit-identical.
type Gravity struct {
	G       float64
	Workers int
}

func NewGravity() *Gravity {
	return &Gravity{G: G, Workers: 1}
}

// Forces writes into out[i] the net gravitational force on body i in newtons:
//
//	F_i = -G Σ_{j≠i} m_i m_j (p_i - p_j) / |p_i - p_j|³
func (g *Gravity) Forces(snap *dynamo.Snapshot, out []r3.Vec) error {
	n := snap.Len()
	if len(out) != n {
		return fmt.Errorf("physics: force buffer has %d slots for %d bodies", len(out), n)
	}
	return dynamo.ParallelFor(n, g.Workers, func(start, end int) error {
		for i := start; i < end; i++ {
			f, err := g.forceOn(snap, i)
			if err != nil {
				return err
			}
			out[i] = f
		}
		return nil
	})
}

func (g *Gravity) forceOn(snap *dynamo.Snapshot, i int) (r3.Vec, error) {
	var sum r3.Vec
	pi, mi := snap.Positions[i], snap.Masses[i]

	for j := range snap.Positions {
		if j == i {
			continue
		}
		d := r3.Scale(MetersPerKm, r3.Sub(pi, snap.Positions[j]))
		r := r3.Norm(d)
		cube := r * r * r
		if cube == 0 {
			return r3.Vec{}, singular(snap, i, j)
		}
		f := r3.Scale(mi*snap.Masses[j]/cube, d)
		if !finiteVec(f) {
			return r3.Vec{}, singular(snap, i, j)
		}
		sum = r3.Add(sum, f)
	}

	return r3.Scale(-g.G, sum), nil
}

func finiteVec(v r3.Vec) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func singular(snap *dynamo.Snapshot, i, j int) error {
	a, b := snap.Names[i], snap.Names[j]
	if j < i {
		a, b = b, a
	}
	return &dynamo.SingularityError{Step: snap.Step, A: a, B: b}
}
