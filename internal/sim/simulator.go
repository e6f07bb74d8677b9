package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/StendArts/Astronomic-Objects/internal/integrators"
	"github.com/StendArts/Astronomic-Objects/internal/physics"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrAlreadyRun is returned by Run on a simulator that has been used.
var ErrAlreadyRun = errors.New("sim: simulator already ran")

// Phase is the lifecycle state of a Simulator.
type Phase int

const (
	Uninitialized Phase = iota
	Initialized
	Stepping
	Completed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Simulator owns one run over a private copy of a System. Each step
// captures a snapshot, evaluates forces and radiation from it, commits
// through the integrator and records the committed state.
type Simulator struct {
	sys        *dynamo.System
	force      dynamo.ForceModel
	thermal    dynamo.ThermalModel
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     log.Logger
	phase      Phase

	snap      *dynamo.Snapshot
	forces    []r3.Vec
	radiation []float64
}

type Option func(*Simulator)

func WithForceModel(f dynamo.ForceModel) Option     { return func(s *Simulator) { s.force = f } }
func WithThermalModel(t dynamo.ThermalModel) Option { return func(s *Simulator) { s.thermal = t } }
func WithIntegrator(i dynamo.Integrator) Option     { return func(s *Simulator) { s.integrator = i } }
func WithMetric(m dynamo.Metric) Option             { return func(s *Simulator) { s.AddMetric(m) } }
func WithObserver(o dynamo.Observer) Option         { return func(s *Simulator) { s.AddObserver(o) } }

func WithLogger(l log.Logger) Option {
	return func(s *Simulator) { s.logger = log.With(l, "component", "sim") }
}

// New returns a simulator over a deep copy of sys; the caller's bodies are
// never mutated.
func New(sys *dynamo.System, opts ...Option) *Simulator {
	s := &Simulator{
		sys:        sys.Clone(),
		integrator: integrators.NewSemiImplicitEuler(),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Phase() Phase { return s.phase }

// System returns the simulator's own bodies; after a completed run they
// hold the final state.
func (s *Simulator) System() *dynamo.System { return s.sys }

// Run advances cfg.Steps fixed steps of cfg.Duration/cfg.Steps seconds and
// returns the recorded history. Any error aborts the run and no history is
// returned. ctx is checked between steps.
func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.History, error) {
	if s.phase != Uninitialized {
		return nil, ErrAlreadyRun
	}
	if err := cfg.Validate(); err != nil {
		s.phase = Failed
		return nil, err
	}

	dt := cfg.Dt()
	history := s.init(cfg)
	recorder := NewRecorder(history)

	level.Info(s.logger).Log("msg", "run started", "bodies", s.sys.Len(), "steps", cfg.Steps, "dt", dt)

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(-1, s.sys.Bodies)
	}

	progressEvery := cfg.Steps / 10
	s.phase = Stepping
	for k := 0; k < cfg.Steps; k++ {
		select {
		case <-ctx.Done():
			return nil, s.fail(k, dt, ctx.Err())
		default:
		}

		if err := s.step(k, dt, cfg.ValidateState); err != nil {
			return nil, s.fail(k, dt, err)
		}
		if err := recorder.Record(k, s.sys.Bodies); err != nil {
			return nil, s.fail(k, dt, err)
		}

		t := history.Times[k]
		for _, m := range s.metrics {
			m.Observe(k, s.sys.Bodies)
		}
		for _, obs := range s.observers {
			obs.OnStep(k, t, s.sys.Bodies)
		}

		if progressEvery > 0 && (k+1)%progressEvery == 0 {
			level.Debug(s.logger).Log("msg", "progress", "step", k+1, "of", cfg.Steps)
		}
	}

	for _, m := range s.metrics {
		history.Metrics[m.Name()] = m.Value()
	}

	s.phase = Completed
	level.Info(s.logger).Log("msg", "run completed", "steps", cfg.Steps)
	return history, nil
}

func (s *Simulator) init(cfg dynamo.Config) *dynamo.History {
	n := s.sys.Len()
	if s.force == nil {
		s.force = &physics.Gravity{G: physics.G, Workers: cfg.Workers}
	}
	if s.thermal == nil {
		s.thermal = &physics.Radiation{Workers: cfg.Workers}
	}
	s.snap = dynamo.NewSnapshot(n)
	s.forces = make([]r3.Vec, n)
	s.radiation = make([]float64, n)
	s.phase = Initialized
	return dynamo.NewSystemHistory(s.sys, cfg.Steps, cfg.Dt())
}

// step runs the compute phase against a frozen snapshot, then the commit
// phase. Bodies are not touched until both models have returned.
func (s *Simulator) step(k int, dt float64, validate bool) error {
	s.snap = s.sys.Capture(k, s.snap)

	if err := s.force.Forces(s.snap, s.forces); err != nil {
		return err
	}
	if err := s.thermal.Equilibrium(s.snap, s.radiation); err != nil {
		return err
	}

	s.integrator.Commit(s.sys.Bodies, s.forces, s.radiation, dt)

	if validate {
		for _, b := range s.sys.Bodies {
			if !b.IsValid() {
				return fmt.Errorf("%w: body %q", dynamo.ErrInvalidState, b.Name())
			}
		}
	}
	return nil
}

func (s *Simulator) fail(k int, dt float64, err error) error {
	s.phase = Failed
	level.Error(s.logger).Log("msg", "run aborted", "step", k, "err", err)
	return &dynamo.SimulationError{Step: k, Time: float64(k) * dt, Wrapped: err}
}

// ObserverFunc adapts a function to dynamo.Observer.
type ObserverFunc func(step int, t float64, bodies []*dynamo.Body)

func (f ObserverFunc) OnStep(step int, t float64, bodies []*dynamo.Body) { f(step, t, bodies) }
