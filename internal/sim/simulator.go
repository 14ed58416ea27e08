package sim

import (
	"fmt"

	"github.com/san-kum/partfield/internal/compute"
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/particles"
)

// Simulator drives the particle field one frame at a time. It is owned by a
// single frame loop; only Advance's internal fan-out is concurrent.
type Simulator struct {
	consts    dynamo.Constants
	store     *particles.Store
	backend   compute.Backend
	opts      Options
	metrics   []Metric
	observers []Observer
	frame     int
	last      input.Command
}

// New returns a simulator over store. A nil backend runs serially.
func New(consts dynamo.Constants, store *particles.Store, backend compute.Backend, opts Options) *Simulator {
	if backend == nil {
		backend = compute.NewSerialBackend()
	}
	return &Simulator{
		consts:    consts,
		store:     store,
		backend:   backend,
		opts:      opts,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Store() *particles.Store    { return s.store }
func (s *Simulator) Frame() int                 { return s.frame }
func (s *Simulator) LastCommand() input.Command { return s.last }

// Start populates the store on the lattice for the current viewport and
// resets frame counters and metrics.
func (s *Simulator) Start(vp dynamo.Viewport) (int, error) {
	bounds, err := viewportBounds(vp)
	if err != nil {
		return 0, fmt.Errorf("start: %w", err)
	}
	if n := particles.LatticeSize(bounds, s.consts.SpatialInterval); n > particles.MaxParticles {
		return 0, fmt.Errorf("start: %w: %.0f particles exceeds limit %d", dynamo.ErrInvalidConfig, n, particles.MaxParticles)
	}

	s.frame = 0
	s.last = input.Command{}
	for _, m := range s.metrics {
		m.Reset()
	}
	return s.store.Populate(bounds, s.consts.SpatialInterval), nil
}

// Stop discards the population. Stopping a stopped simulator is a no-op.
func (s *Simulator) Stop() {
	s.store.Clear()
	s.last = input.Command{}
}

// Advance resolves the cursor once and steps every particle with that
// command against the viewport's current bounds.
func (s *Simulator) Advance(snap input.Snapshot, vp dynamo.Viewport) (input.Command, error) {
	bounds, err := viewportBounds(vp)
	if err != nil {
		return input.Command{}, fmt.Errorf("advance frame %d: %w", s.frame, err)
	}

	cmd := input.ResolveSnapshot(snap)
	return cmd, s.Step(cmd, bounds)
}

// Step advances every particle with an already resolved command.
func (s *Simulator) Step(cmd input.Command, bounds dynamo.Rect) error {
	ps := s.store.Particles()
	c := &s.consts
	frame := s.frame

	err := s.backend.Range(len(ps), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			Integrate(&ps[i], cmd, bounds, c)
			if s.opts.ValidateState && !(ps[i].Pos.IsFinite() && ps[i].Vel.IsFinite()) {
				return &dynamo.StepError{Frame: frame, Index: i, Wrapped: dynamo.ErrInvalidState}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.frame++
	s.last = cmd

	for _, m := range s.metrics {
		m.Observe(ps, bounds)
	}
	if len(s.observers) > 0 {
		f := Frame{Index: frame, Command: cmd, Particles: ps, Bounds: bounds}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}
	}
	return nil
}

// Metrics returns the latest value of every registered metric.
func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func viewportBounds(vp dynamo.Viewport) (dynamo.Rect, error) {
	if vp == nil {
		return dynamo.Rect{}, dynamo.ErrNoViewport
	}
	bounds, ok := vp.Bounds()
	if !ok {
		return dynamo.Rect{}, dynamo.ErrNoViewport
	}
	return bounds, nil
}
