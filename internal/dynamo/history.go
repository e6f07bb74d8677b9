package dynamo

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Series is the recorded time series of one body.
type Series struct {
	Positions    []r3.Vec
	Temperatures []float64
}

// History holds, for every body, Len() aligned position and temperature
// samples. Index k is the state immediately after step k for all bodies.
type History struct {
	Order    []string
	Colors   map[string]string
	Radii    map[string]float64
	Albedos  map[string]float64
	Times    []float64
	Dt       float64
	Duration float64
	Metrics  map[string]float64

	series map[string]*Series
}

// NewHistory allocates storage for steps samples per named body. Times[k]
// is (k+1)*dt, the simulated time at the end of step k.
func NewHistory(names []string, steps int, dt float64) *History {
	h := &History{
		Order:    append([]string(nil), names...),
		Colors:   make(map[string]string, len(names)),
		Radii:    make(map[string]float64, len(names)),
		Albedos:  make(map[string]float64, len(names)),
		Times:    make([]float64, steps),
		Dt:       dt,
		Duration: dt * float64(steps),
		Metrics:  make(map[string]float64),
		series:   make(map[string]*Series, len(names)),
	}
	for k := range h.Times {
		h.Times[k] = float64(k+1) * dt
	}
	for _, n := range names {
		h.series[n] = &Series{
			Positions:    make([]r3.Vec, steps),
			Temperatures: make([]float64, steps),
		}
	}
	return h
}

// NewSystemHistory allocates a history for sys and copies its display hints.
func NewSystemHistory(sys *System, steps int, dt float64) *History {
	h := NewHistory(sys.Names(), steps, dt)
	for _, b := range sys.Bodies {
		h.Colors[b.name] = b.color
		h.Radii[b.name] = b.radius
		h.Albedos[b.name] = b.albedo
	}
	return h
}

// Len is the number of recorded samples per body.
func (h *History) Len() int { return len(h.Times) }

// Series returns the named body's series.
func (h *History) Series(name string) (*Series, bool) {
	s, ok := h.series[name]
	return s, ok
}

// Positions returns the named body's trajectory, or nil.
func (h *History) Positions(name string) []r3.Vec {
	if s, ok := h.series[name]; ok {
		return s.Positions
	}
	return nil
}

// Temperatures returns the named body's temperature series, or nil.
func (h *History) Temperatures(name string) []float64 {
	if s, ok := h.series[name]; ok {
		return s.Temperatures
	}
	return nil
}

// Set writes one sample.
func (h *History) Set(k int, name string, pos r3.Vec, temp float64) error {
	s, ok := h.series[name]
	if !ok {
		return fmt.Errorf("%w: %q not in history", ErrUnknownBody, name)
	}
	if k < 0 || k >= len(s.Positions) {
		return fmt.Errorf("dynamo: history index %d out of range [0,%d)", k, len(s.Positions))
	}
	s.Positions[k] = pos
	s.Temperatures[k] = temp
	return nil
}

// Clone returns a deep copy.
func (h *History) Clone() *History {
	c := NewHistory(h.Order, h.Len(), h.Dt)
	copy(c.Times, h.Times)
	c.Duration = h.Duration
	for k, v := range h.Colors {
		c.Colors[k] = v
	}
	for k, v := range h.Radii {
		c.Radii[k] = v
	}
	for k, v := range h.Albedos {
		c.Albedos[k] = v
	}
	for k, v := range h.Metrics {
		c.Metrics[k] = v
	}
	for name, s := range h.series {
		copy(c.series[name].Positions, s.Positions)
		copy(c.series[name].Temperatures, s.Temperatures)
	}
	return c
}
