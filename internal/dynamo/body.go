package dynamo

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// BodySpec is the construction record handed over by a scenario builder.
// Units: km, km/s, kg, km, K.
type BodySpec struct {
	Name        string
	Position    r3.Vec
	Velocity    r3.Vec
	Mass        float64
	Radius      float64
	Temperature float64
	Albedo      float64
	Emissivity  float64
	Color       string
}

// Body is one celestial object. Position, Velocity and Temperature are the
// kinematic/radiative state and are only written by an Integrator; the
// remaining parameters are fixed at construction.
type Body struct {
	Position    r3.Vec
	Velocity    r3.Vec
	Temperature float64

	name       string
	mass       float64
	radius     float64
	albedo     float64
	emissivity float64
	color      string
}

// NewBody validates spec and returns the corresponding Body.
func NewBody(spec BodySpec) (*Body, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Body{
		Position:    spec.Position,
		Velocity:    spec.Velocity,
		Temperature: spec.Temperature,
		name:        spec.Name,
		mass:        spec.Mass,
		radius:      spec.Radius,
		albedo:      spec.Albedo,
		emissivity:  spec.Emissivity,
		color:       spec.Color,
	}, nil
}

// Validate checks every parameter against its physical domain.
func (s BodySpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &BodyParamError{Body: s.Name, Param: "name", Reason: "name must not be empty"}
	}
	checks := []struct {
		param string
		value float64
		ok    bool
		why   string
	}{
		{"mass", s.Mass, s.Mass > 0, "must be > 0"},
		{"radius", s.Radius, s.Radius > 0, "must be > 0"},
		{"temperature", s.Temperature, s.Temperature > 0, "must be > 0"},
		{"albedo", s.Albedo, s.Albedo >= 0 && s.Albedo <= 1, "must be in [0,1]"},
		{"emissivity", s.Emissivity, s.Emissivity > 0 && s.Emissivity <= 1, "must be in (0,1]"},
	}
	for _, c := range checks {
		if !finite(c.value) || !c.ok {
			return &BodyParamError{Body: s.Name, Param: c.param, Value: c.value, Reason: c.why}
		}
	}
	for _, v := range []struct {
		param string
		vec   r3.Vec
	}{{"position", s.Position}, {"velocity", s.Velocity}} {
		for _, x := range []float64{v.vec.X, v.vec.Y, v.vec.Z} {
			if !finite(x) {
				return &BodyParamError{Body: s.Name, Param: v.param, Value: x, Reason: "must be finite"}
			}
		}
	}
	return nil
}

func (b *Body) Name() string        { return b.name }
func (b *Body) Mass() float64       { return b.mass }
func (b *Body) Radius() float64     { return b.radius }
func (b *Body) Albedo() float64     { return b.albedo }
func (b *Body) Emissivity() float64 { return b.emissivity }
func (b *Body) Color() string       { return b.color }

// SelfLuminous reports whether the body keeps its temperature (albedo 1).
func (b *Body) SelfLuminous() bool { return b.albedo == 1.0 }

// Spec returns the body's current state as a construction record.
func (b *Body) Spec() BodySpec {
	return BodySpec{
		Name:        b.name,
		Position:    b.Position,
		Velocity:    b.Velocity,
		Mass:        b.mass,
		Radius:      b.radius,
		Temperature: b.Temperature,
		Albedo:      b.albedo,
		Emissivity:  b.emissivity,
		Color:       b.color,
	}
}

// Clone returns an independent copy of b.
func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// IsValid reports whether the mutable state is free of NaN and Inf.
func (b *Body) IsValid() bool {
	for _, x := range []float64{
		b.Position.X, b.Position.Y, b.Position.Z,
		b.Velocity.X, b.Velocity.Y, b.Velocity.Z,
		b.Temperature,
	} {
		if !finite(x) {
			return false
		}
	}
	return true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
