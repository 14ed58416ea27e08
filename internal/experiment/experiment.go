package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/metrics"
	"github.com/san-kum/partfield/internal/particles"
	"github.com/san-kum/partfield/internal/sim"
)

type Config struct {
	Preset string
	Bounds dynamo.Rect
	Script []Step

	// Final, when set, sees the field after the last frame and before it is
	// cleared.
	Final func(ps []particles.Particle, bounds dynamo.Rect)
}

type Result struct {
	Particles int
	Frames    int
	Elapsed   time.Duration
	Series    *metrics.Series
	Metrics   map[string]float64
}

// Experiment runs a scripted cursor sequence headlessly.
type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
	series    *metrics.Series
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(s *sim.Simulator, ms ...sim.Metric) error {
	if s == nil {
		return fmt.Errorf("experiment: nil simulator")
	}
	e.simulator = s
	e.series = metrics.NewSeries(ms...)
	s.AddObserver(e.series)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	n, err := e.simulator.Start(e.cfg.Bounds)
	if err != nil {
		return nil, err
	}
	defer e.simulator.Stop()
	e.series.Reset()

	result := &Result{Particles: n, Series: e.series}
	start := time.Now()

	for _, step := range e.cfg.Script {
		for f := 0; f < step.Frames; f++ {
			select {
			case <-ctx.Done():
				result.Elapsed = time.Since(start)
				return result, ctx.Err()
			default:
			}

			if _, err := e.simulator.Advance(step.Snapshot(f), e.cfg.Bounds); err != nil {
				result.Elapsed = time.Since(start)
				return result, err
			}
			result.Frames++
		}
	}

	result.Elapsed = time.Since(start)
	result.Metrics = e.series.Last()
	if e.cfg.Final != nil {
		e.cfg.Final(e.simulator.Store().Particles(), e.cfg.Bounds)
	}
	return result, nil
}
