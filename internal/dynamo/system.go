package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// System is the ordered body collection under simulation. Order is stable
// and defines iteration and recording order; it has no physical meaning.
type System struct {
	Bodies []*Body

	// MinLogRadius and MaxLogRadius are ln(radius/km) extremes over the
	// bodies. They only feed display sizing.
	MinLogRadius float64
	MaxLogRadius float64

	index map[string]int
}

// NewSystem builds a System, rejecting an empty set and duplicate names.
func NewSystem(bodies ...*Body) (*System, error) {
	if len(bodies) == 0 {
		return nil, &BodyParamError{Param: "name", Reason: "system has no bodies"}
	}
	s := &System{
		Bodies:       bodies,
		MinLogRadius: math.Inf(1),
		MaxLogRadius: math.Inf(-1),
		index:        make(map[string]int, len(bodies)),
	}
	for i, b := range bodies {
		if b == nil {
			return nil, &BodyParamError{Param: "name", Reason: fmt.Sprintf("body %d is nil", i)}
		}
		if _, dup := s.index[b.name]; dup {
			return nil, &BodyParamError{Body: b.name, Param: "name", Reason: "duplicate body name"}
		}
		if err := b.Spec().Validate(); err != nil {
			return nil, err
		}
		s.index[b.name] = i
		lr := math.Log(b.radius)
		s.MinLogRadius = math.Min(s.MinLogRadius, lr)
		s.MaxLogRadius = math.Max(s.MaxLogRadius, lr)
	}
	return s, nil
}

// FromSpecs constructs and validates every body, then the system.
func FromSpecs(specs []BodySpec) (*System, error) {
	bodies := make([]*Body, 0, len(specs))
	for _, spec := range specs {
		b, err := NewBody(spec)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return NewSystem(bodies...)
}

func (s *System) Len() int { return len(s.Bodies) }

// Names returns body names in system order.
func (s *System) Names() []string {
	names := make([]string, len(s.Bodies))
	for i, b := range s.Bodies {
		names[i] = b.name
	}
	return names
}

// Index returns the position of the named body in system order.
func (s *System) Index(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return i, nil
}

// Body returns the named body.
func (s *System) Body(name string) (*Body, error) {
	i, err := s.Index(name)
	if err != nil {
		return nil, err
	}
	return s.Bodies[i], nil
}

// Clone deep-copies the system so a run never mutates the caller's bodies.
func (s *System) Clone() *System {
	c := &System{
		Bodies:       make([]*Body, len(s.Bodies)),
		MinLogRadius: s.MinLogRadius,
		MaxLogRadius: s.MaxLogRadius,
		index:        make(map[string]int, len(s.index)),
	}
	for i, b := range s.Bodies {
		c.Bodies[i] = b.Clone()
	}
	for k, v := range s.index {
		c.index[k] = v
	}
	return c
}

// Specs returns the current state of every body as construction records.
func (s *System) Specs() []BodySpec {
	specs := make([]BodySpec, len(s.Bodies))
	for i, b := range s.Bodies {
		specs[i] = b.Spec()
	}
	return specs
}

// Snapshot is the frozen per-step input to the force and thermal models.
// It is filled before any commit for the step and is never written by the
// models, so workers may read it concurrently.
type Snapshot struct {
	Step         int
	Names        []string
	Positions    []r3.Vec
	Velocities   []r3.Vec
	Temperatures []float64
	Masses       []float64
	Radii        []float64
	Albedos      []float64
	Emissivities []float64
}

// NewSnapshot allocates a snapshot sized for n bodies.
func NewSnapshot(n int) *Snapshot {
	return &Snapshot{
		Names:        make([]string, n),
		Positions:    make([]r3.Vec, n),
		Velocities:   make([]r3.Vec, n),
		Temperatures: make([]float64, n),
		Masses:       make([]float64, n),
		Radii:        make([]float64, n),
		Albedos:      make([]float64, n),
		Emissivities: make([]float64, n),
	}
}

func (s *Snapshot) Len() int { return len(s.Positions) }

// Capture copies the current state of sys into dst, reusing its buffers.
// A nil or wrongly sized dst is replaced.
func (s *System) Capture(step int, dst *Snapshot) *Snapshot {
	if dst == nil || dst.Len() != len(s.Bodies) {
		dst = NewSnapshot(len(s.Bodies))
	}
	dst.Step = step
	for i, b := range s.Bodies {
		dst.Names[i] = b.name
		dst.Positions[i] = b.Position
		dst.Velocities[i] = b.Velocity
		dst.Temperatures[i] = b.Temperature
		dst.Masses[i] = b.mass
		dst.Radii[i] = b.radius
		dst.Albedos[i] = b.albedo
		dst.Emissivities[i] = b.emissivity
	}
	return dst
}
