package sim_test

import (
	"context"
	"errors"
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/metrics"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"github.com/StendArts/Astronomic-Objects/internal/sim"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	sunMass   = 1.98892e30
	earthMass = 5.972e24
	day       = physics.SecondsPerDay
	year      = physics.SecondsPerYear
)

func sunSpec() dynamo.BodySpec {
	return dynamo.BodySpec{
		Name: "Sun", Mass: sunMass, Radius: 696340,
		Temperature: 5772, Albedo: 1, Emissivity: 0.95, Color: "gold",
	}
}

func earthSpec() dynamo.BodySpec {
	return dynamo.BodySpec{
		Name: "Earth", Position: r3.Vec{X: 1.47e8}, Velocity: r3.Vec{Y: 30},
		Mass: earthMass, Radius: 6371, Temperature: 286.7,
		Albedo: 0.01054, Emissivity: 0.95, Color: "b",
	}
}

func moonSpec() dynamo.BodySpec {
	return dynamo.BodySpec{
		Name: "Moon", Position: r3.Vec{X: 147361141, Y: 32485}, Velocity: r3.Vec{Y: 30.965},
		Mass: 7.36e22, Radius: 1737.4, Temperature: 250,
		Albedo: 0.1054, Emissivity: 0.95, Color: "gray",
	}
}

func circular(name string, distance float64) dynamo.BodySpec {
	return dynamo.BodySpec{
		Name: name, Position: r3.Vec{X: distance},
		Velocity: r3.Vec{Y: physics.CircularSpeed(sunMass, distance)},
		Mass:     earthMass, Radius: 6371, Temperature: 288, Albedo: 0.3, Emissivity: 0.95,
	}
}

func system(specs ...dynamo.BodySpec) *dynamo.System {
	sys, err := dynamo.FromSpecs(specs)
	Expect(err).NotTo(HaveOccurred())
	return sys
}

func run(sys *dynamo.System, cfg dynamo.Config, opts ...sim.Option) *dynamo.History {
	h, err := sim.New(sys, opts...).Run(context.Background(), cfg)
	Expect(err).NotTo(HaveOccurred())
	return h
}

// spyForce records the forces returned by the wrapped model.
type spyForce struct {
	inner dynamo.ForceModel
	last  []r3.Vec
}

func (s *spyForce) Forces(snap *dynamo.Snapshot, out []r3.Vec) error {
	err := s.inner.Forces(snap, out)
	s.last = append([]r3.Vec(nil), out...)
	return err
}

// nanForce puts a NaN force on the first body.
type nanForce struct{}

func (nanForce) Forces(_ *dynamo.Snapshot, out []r3.Vec) error {
	for i := range out {
		out[i] = r3.Vec{}
	}
	out[0].X = math.NaN()
	return nil
}

// frozenCheck fails if the snapshot handed to the thermal model differs from
// the state committed at the end of the previous step.
type frozenCheck struct {
	inner     dynamo.ThermalModel
	committed []r3.Vec
	mismatch  int
}

func (f *frozenCheck) Equilibrium(snap *dynamo.Snapshot, out []float64) error {
	for i, p := range snap.Positions {
		if f.committed != nil && p != f.committed[i] {
			f.mismatch++
		}
	}
	return f.inner.Equilibrium(snap, out)
}

func (f *frozenCheck) OnStep(_ int, _ float64, bodies []*dynamo.Body) {
	f.committed = f.committed[:0]
	for _, b := range bodies {
		f.committed = append(f.committed, b.Position)
	}
}

var _ = Describe("Simulator", func() {
	Describe("lifecycle", func() {
		It("moves from uninitialized to completed and refuses a second run", func() {
			s := sim.New(system(sunSpec(), earthSpec()))
			Expect(s.Phase()).To(Equal(sim.Uninitialized))

			h, err := s.Run(context.Background(), dynamo.Config{Duration: 10 * day, Steps: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Phase()).To(Equal(sim.Completed))
			Expect(h.Len()).To(Equal(10))

			_, err = s.Run(context.Background(), dynamo.Config{Duration: day, Steps: 1})
			Expect(err).To(MatchError(sim.ErrAlreadyRun))
		})

		DescribeTable("rejects invalid run parameters",
			func(cfg dynamo.Config) {
				s := sim.New(system(sunSpec(), earthSpec()))
				h, err := s.Run(context.Background(), cfg)
				Expect(err).To(MatchError(dynamo.ErrInvalidRunParameter))
				Expect(h).To(BeNil())
				Expect(s.Phase()).To(Equal(sim.Failed))
			},
			Entry("zero steps", dynamo.Config{Duration: day, Steps: 0}),
			Entry("negative steps", dynamo.Config{Duration: day, Steps: -1}),
			Entry("zero duration", dynamo.Config{Duration: 0, Steps: 1}),
			Entry("negative duration", dynamo.Config{Duration: -day, Steps: 1}),
		)

		It("never mutates the caller's bodies", func() {
			sys := system(sunSpec(), earthSpec())
			s := sim.New(sys)
			_, err := s.Run(context.Background(), dynamo.Config{Duration: 30 * day, Steps: 30})
			Expect(err).NotTo(HaveOccurred())

			Expect(sys.Bodies[1].Position).To(Equal(r3.Vec{X: 1.47e8}))
			Expect(s.System().Bodies[1].Position).NotTo(Equal(r3.Vec{X: 1.47e8}))
		})

		It("aborts on a cancelled context without a history", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			h, err := sim.New(system(sunSpec(), earthSpec())).Run(ctx, dynamo.Config{Duration: day, Steps: 5})
			Expect(err).To(MatchError(context.Canceled))
			Expect(h).To(BeNil())
		})
	})

	Describe("the Sun/Earth single step", func() {
		It("matches Newton's law and the semi-implicit update", func() {
			spy := &spyForce{inner: physics.NewGravity()}
			h := run(system(sunSpec(), earthSpec()), dynamo.Config{Duration: day, Steps: 1}, sim.WithForceModel(spy))

			r := 1.47e8 * physics.MetersPerKm
			want := physics.G * sunMass * earthMass / (r * r)
			Expect(r3.Norm(spy.last[1])).To(BeNumerically("~", want, want*1e-12))

			f := spy.last[1]
			wantV := r3.Add(r3.Vec{Y: 30}, r3.Scale(day/earthMass/physics.MetersPerKm, f))
			wantP := r3.Add(r3.Vec{X: 1.47e8}, r3.Scale(day, wantV))

			got := h.Positions("Earth")[0]
			Expect(got.X).To(BeNumerically("~", wantP.X, 1e-6))
			Expect(got.Y).To(BeNumerically("~", wantP.Y, 1e-6))
			Expect(got.Z).To(BeZero())
			Expect(h.Times).To(Equal([]float64{day}))
		})
	})

	Describe("conservation", func() {
		It("keeps total linear momentum constant at every step", func() {
			sys := system(sunSpec(), earthSpec(), moonSpec())
			p0 := physics.Momentum(sys.Bodies)
			scale := 0.0
			for _, b := range sys.Bodies {
				scale += b.Mass() * r3.Norm(b.Velocity)
			}

			var worst float64
			obs := sim.ObserverFunc(func(_ int, _ float64, bodies []*dynamo.Body) {
				d := r3.Norm(r3.Sub(physics.Momentum(bodies), p0)) / scale
				if d > worst {
					worst = d
				}
			})
			run(sys, dynamo.Config{Duration: year, Steps: 365}, sim.WithObserver(obs))

			Expect(worst).To(BeNumerically("<", 1e-9))
		})

		It("shrinks the energy drift as dt shrinks", func() {
			sys := system(sunSpec(), circular("Earth", 1.496e8))
			drifts := make([]float64, 0, 3)
			for _, steps := range []int{100, 1000, 10000} {
				h := run(sys, dynamo.Config{Duration: year, Steps: steps}, sim.WithMetric(metrics.NewEnergyDrift()))
				drifts = append(drifts, h.Metrics["energy_drift"])
			}

			Expect(drifts[1]).To(BeNumerically("<", drifts[0]))
			Expect(drifts[2]).To(BeNumerically("<", drifts[1]))
			Expect(drifts[1]).To(BeNumerically("<", 0.05))
		})
	})

	Describe("temperature", func() {
		It("holds self-luminous bodies at their initial temperature", func() {
			h := run(system(sunSpec(), earthSpec(), moonSpec()), dynamo.Config{Duration: year, Steps: 365})
			for _, temp := range h.Temperatures("Sun") {
				Expect(temp).To(Equal(5772.0))
			}
		})

		It("cools a body placed twice as far from the star", func() {
			cfg := dynamo.Config{Duration: 10 * day, Steps: 10}
			near := run(system(sunSpec(), circular("P", 1e8)), cfg)
			far := run(system(sunSpec(), circular("P", 2e8)), cfg)

			for k := 0; k < cfg.Steps; k++ {
				Expect(far.Temperatures("P")[k]).To(BeNumerically("<", near.Temperatures("P")[k]))
			}
		})
	})

	Describe("determinism", func() {
		It("produces identical histories for identical inputs", func() {
			sys := system(sunSpec(), earthSpec(), moonSpec())
			cfg := dynamo.Config{Duration: year, Steps: 500}
			a := run(sys, cfg)
			b := run(sys, cfg)

			cfg.Workers = 3
			c := run(sys, cfg)

			for _, name := range sys.Names() {
				Expect(b.Positions(name)).To(Equal(a.Positions(name)))
				Expect(b.Temperatures(name)).To(Equal(a.Temperatures(name)))
				Expect(c.Positions(name)).To(Equal(a.Positions(name)))
				Expect(c.Temperatures(name)).To(Equal(a.Temperatures(name)))
			}
		})
	})

	Describe("two-phase stepping", func() {
		It("evaluates every step from the previous step's committed state", func() {
			check := &frozenCheck{inner: physics.NewRadiation()}
			sys := system(sunSpec(), earthSpec(), moonSpec())
			run(sys, dynamo.Config{Duration: 30 * day, Steps: 30},
				sim.WithThermalModel(check), sim.WithObserver(check))
			Expect(check.mismatch).To(BeZero())
		})
	})

	Describe("singularities", func() {
		It("fails the first step when two bodies coincide", func() {
			twin := earthSpec()
			twin.Name = "Twin"
			s := sim.New(system(sunSpec(), earthSpec(), twin))

			h, err := s.Run(context.Background(), dynamo.Config{Duration: day, Steps: 10})
			Expect(h).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrSingularity))
			Expect(s.Phase()).To(Equal(sim.Failed))

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(0))

			var sing *dynamo.SingularityError
			Expect(errors.As(err, &sing)).To(BeTrue())
			Expect([]string{sing.A, sing.B}).To(ConsistOf("Earth", "Twin"))
		})

		It("fails instead of producing non-finite forces at tiny separations", func() {
			twin := sunSpec()
			twin.Name = "Twin"
			twin.Position = r3.Vec{X: 1e-120}
			s := sim.New(system(sunSpec(), twin))

			h, err := s.Run(context.Background(), dynamo.Config{Duration: day, Steps: 1})
			Expect(h).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrSingularity))
			Expect(s.Phase()).To(Equal(sim.Failed))
		})
	})

	Describe("state validation", func() {
		cfg := dynamo.Config{Duration: 10 * day, Steps: 10}

		It("fails with ErrInvalidState when a step produces NaN", func() {
			s := sim.New(system(sunSpec(), earthSpec()), sim.WithForceModel(nanForce{}))
			cfg := cfg
			cfg.ValidateState = true

			h, err := s.Run(context.Background(), cfg)
			Expect(h).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
			Expect(s.Phase()).To(Equal(sim.Failed))

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(0))
		})

		It("records non-finite states when validation is off", func() {
			one := dynamo.Config{Duration: day, Steps: 1}
			h := run(system(sunSpec(), earthSpec()), one, sim.WithForceModel(nanForce{}))
			Expect(math.IsNaN(h.Positions("Sun")[0].X)).To(BeTrue())
		})
	})

	Describe("observers and metrics", func() {
		It("notifies observers once per step with the step's time", func() {
			var times []float64
			obs := sim.ObserverFunc(func(_ int, t float64, _ []*dynamo.Body) { times = append(times, t) })
			h := run(system(sunSpec(), earthSpec()), dynamo.Config{Duration: 4 * day, Steps: 4}, sim.WithObserver(obs))

			Expect(times).To(Equal(h.Times))
			Expect(times[3]).To(BeNumerically("~", 4*day, 1e-9))
		})

		It("stores metric values in the history", func() {
			sys := system(sunSpec(), earthSpec())
			var opts []sim.Option
			for _, m := range metrics.Defaults(sys) {
				opts = append(opts, sim.WithMetric(m))
			}
			h := run(sys, dynamo.Config{Duration: year, Steps: 365}, opts...)

			Expect(h.Metrics).To(HaveKey("energy_drift"))
			Expect(h.Metrics).To(HaveKey("momentum_drift"))
			Expect(h.Metrics).To(HaveKeyWithValue("stable", 1.0))
			Expect(h.Metrics["temp_swing_Earth"]).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one independent simulation per config", func() {
		sys := system(sunSpec(), earthSpec())
		e := sim.NewEnsemble(sys, func() []sim.Option {
			return []sim.Option{sim.WithMetric(metrics.NewEnergyDrift())}
		})

		cfgs := []dynamo.Config{
			{Duration: year, Steps: 50},
			{Duration: year, Steps: 500},
		}
		hs, err := e.Run(context.Background(), cfgs)
		Expect(err).NotTo(HaveOccurred())
		Expect(hs).To(HaveLen(2))
		Expect(hs[0].Len()).To(Equal(50))
		Expect(hs[1].Len()).To(Equal(500))
		Expect(hs[1].Metrics["energy_drift"]).To(BeNumerically("<", hs[0].Metrics["energy_drift"]))
	})

	It("returns the first failure", func() {
		e := sim.NewEnsemble(system(sunSpec(), earthSpec()), nil)
		_, err := e.Run(context.Background(), []dynamo.Config{{Duration: year, Steps: 10}, {Duration: year, Steps: 0}})
		Expect(err).To(MatchError(dynamo.ErrInvalidRunParameter))
	})
})
