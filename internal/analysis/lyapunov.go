package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/sim"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Divergence is the separation of a perturbed run from a reference run.
type Divergence struct {
	Body         string
	Perturbation float64   // km
	Times        []float64 // s
	Separation   []float64 // km, summed over all bodies
	// Exponent is the least-squares growth rate of ln(separation) in 1/s.
	// A clearly positive value indicates sensitive dependence on initial
	// conditions.
	Exponent float64
}

// LyapunovExponent runs sys twice, once with body displaced by pert km
// along x, and fits λ in separation ≈ pert·exp(λt). Both runs execute
// concurrently, so options is called once per run and may be nil.
func LyapunovExponent(ctx context.Context, sys *dynamo.System, body string, pert float64, cfg dynamo.Config, options func() []sim.Option) (*Divergence, error) {
	if options == nil {
		options = func() []sim.Option { return nil }
	}
	if pert <= 0 {
		return nil, &dynamo.RunParamError{Param: "perturbation", Value: pert}
	}
	perturbed := sys.Clone()
	b, err := perturbed.Body(body)
	if err != nil {
		return nil, err
	}
	b.Position.X += pert

	refOpts, altOpts := options(), options()
	var ref, alt *dynamo.History
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ref, err = sim.New(sys, refOpts...).Run(gctx, cfg)
		return err
	})
	g.Go(func() error {
		var err error
		alt, err = sim.New(perturbed, altOpts...).Run(gctx, cfg)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lyapunov: %w", err)
	}

	d := &Divergence{
		Body:         body,
		Perturbation: pert,
		Times:        ref.Times,
		Separation:   make([]float64, ref.Len()),
	}

	var xs, ys []float64
	for k := range d.Separation {
		sep := 0.0
		for _, name := range ref.Order {
			sep += r3.Norm(r3.Sub(alt.Positions(name)[k], ref.Positions(name)[k]))
		}
		d.Separation[k] = sep
		if sep > 0 {
			xs = append(xs, ref.Times[k])
			ys = append(ys, math.Log(sep/pert))
		}
	}

	if len(xs) >= 2 {
		_, d.Exponent = stat.LinearRegression(xs, ys, nil, false)
	}
	return d, nil
}
