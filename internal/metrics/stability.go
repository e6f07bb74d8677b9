package metrics

import (
	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stability is 1 while every observed state is finite and every body stays
// within threshold km of the origin, and 0 from the first violation on.
type Stability struct {
	name      string
	threshold float64
	broken    bool
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stable",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step int, bodies []*dynamo.Body) {
	if s.broken {
		return
	}
	for _, b := range bodies {
		// !(x <= t) also catches a NaN norm.
		if !b.IsValid() || !(r3.Norm(b.Position) <= s.threshold) {
			s.broken = true
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.broken {
		return 0
	}
	return 1
}

func (s *Stability) Reset() {
	s.broken = false
}
