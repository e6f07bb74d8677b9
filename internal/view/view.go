// Package view holds display-side post-processing of a recorded History.
// Nothing here mutates its input.
package view

import (
	"fmt"
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Recenter returns a copy of h with every position expressed relative to
// the named body at the same index. Temperatures are copied unchanged.
func Recenter(h *dynamo.History, name string) (*dynamo.History, error) {
	ref := h.Positions(name)
	if ref == nil {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownBody, name)
	}

	out := h.Clone()
	for _, body := range out.Order {
		ps := out.Positions(body)
		for k := range ps {
			ps[k] = r3.Sub(ps[k], ref[k])
		}
	}
	return out, nil
}

func TimeAxisYears(h *dynamo.History) []float64 {
	return scaled(h.Times, 1/physics.SecondsPerYear)
}

func TimeAxisDays(h *dynamo.History) []float64 {
	return scaled(h.Times, 1.0/physics.SecondsPerDay)
}

func scaled(xs []float64, f float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	floats.Scale(f, out)
	return out
}

// Celsius converts kelvin to degrees Celsius.
func Celsius(temps []float64) []float64 {
	out := make([]float64, len(temps))
	copy(out, temps)
	floats.AddConst(-physics.KelvinOffset, out)
	return out
}

// Distances returns |p_k| for each sample, the distance to the frame origin.
func Distances(ps []r3.Vec) []float64 {
	out := make([]float64, len(ps))
	for k, p := range ps {
		out[k] = r3.Norm(p)
	}
	return out
}

// MarkerSizes maps log10 radii linearly onto [pxMin, pxMax]. If every
// radius is equal all markers get the midpoint.
func MarkerSizes(radii []float64, pxMin, pxMax float64) []float64 {
	out := make([]float64, len(radii))
	if len(radii) == 0 {
		return out
	}

	logs := make([]float64, len(radii))
	for i, r := range radii {
		logs[i] = math.Log10(r)
	}
	lo, hi := floats.Min(logs), floats.Max(logs)

	for i, l := range logs {
		if hi == lo {
			out[i] = (pxMin + pxMax) / 2
			continue
		}
		out[i] = pxMin + (l-lo)/(hi-lo)*(pxMax-pxMin)
	}
	return out
}

// HistoryRadii returns the radii of h's bodies in h.Order.
func HistoryRadii(h *dynamo.History) []float64 {
	out := make([]float64, len(h.Order))
	for i, name := range h.Order {
		out[i] = h.Radii[name]
	}
	return out
}

// Box is an axis-aligned bounding box in km.
type Box struct {
	Min, Max r3.Vec
}

// Bounds returns the smallest box holding every recorded position.
func Bounds(h *dynamo.History) Box {
	var xs, ys, zs []float64
	for _, name := range h.Order {
		for _, p := range h.Positions(name) {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			zs = append(zs, p.Z)
		}
	}
	if len(xs) == 0 {
		return Box{}
	}
	return Box{
		Min: r3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)},
		Max: r3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)},
	}
}

// Square returns the box grown to a cube about its centre, padded by a
// fraction of its side, so a projection keeps equal aspect ratio.
func (b Box) Square(pad float64) Box {
	size := r3.Sub(b.Max, b.Min)
	side := math.Max(size.X, math.Max(size.Y, size.Z))
	if side == 0 {
		side = 1
	}
	half := side * (1 + pad) / 2
	c := r3.Scale(0.5, r3.Add(b.Min, b.Max))
	h := r3.Vec{X: half, Y: half, Z: half}
	return Box{Min: r3.Sub(c, h), Max: r3.Add(c, h)}
}

// Frames maps animation frames to history indices for a playback of the
// given wall-clock length. Indices never exceed the last sample.
func Frames(steps int, seconds, fps float64) []int {
	n := int(fps * seconds)
	if n <= 0 || steps <= 0 {
		return nil
	}
	ratio := float64(steps) / float64(n)
	idx := make([]int, n)
	for f := range idx {
		k := min(int(float64(f+1)*ratio), steps)
		idx[f] = max(k-1, 0)
	}
	idx[n-1] = steps - 1
	return idx
}

// TrailWindow returns the first history index of the visible trail ending
// at idx, where trail is the fraction of elapsed samples kept.
func TrailWindow(idx int, trail float64) int {
	if trail >= 1 {
		return 0
	}
	if trail <= 0 {
		return idx
	}
	return int(float64(idx) * (1 - trail))
}
