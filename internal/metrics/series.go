package metrics

import (
	"github.com/san-kum/partfield/internal/sim"
)

// Defaults returns the standard metric set in a stable order.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewMeanSpeed(),
		NewOutOfBounds(),
	}
}

// Series records every metric once per frame. It is a sim.Observer.
type Series struct {
	metrics []sim.Metric
	Names   []string
	Modes   []string
	Values  map[string][]float64
}

func NewSeries(ms ...sim.Metric) *Series {
	if len(ms) == 0 {
		ms = Defaults()
	}
	s := &Series{
		metrics: ms,
		Names:   make([]string, 0, len(ms)),
		Values:  make(map[string][]float64, len(ms)),
	}
	for _, m := range ms {
		s.Names = append(s.Names, m.Name())
	}
	return s
}

func (s *Series) OnFrame(f sim.Frame) {
	for _, m := range s.metrics {
		m.Observe(f.Particles, f.Bounds)
		s.Values[m.Name()] = append(s.Values[m.Name()], m.Value())
	}
	s.Modes = append(s.Modes, f.Command.Mode.String())
}

func (s *Series) Len() int { return len(s.Modes) }

// Last returns the most recent value of every metric.
func (s *Series) Last() map[string]float64 {
	out := make(map[string]float64, len(s.Names))
	for _, name := range s.Names {
		if v := s.Values[name]; len(v) > 0 {
			out[name] = v[len(v)-1]
		}
	}
	return out
}

func (s *Series) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
	s.Modes = s.Modes[:0]
	s.Values = make(map[string][]float64, len(s.metrics))
}
