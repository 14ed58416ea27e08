package metrics

import (
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/particles"
)

// OutOfBounds counts particles currently outside the viewport. Reflection
// lets a particle overshoot for a frame, so a small nonzero count is normal.
type OutOfBounds struct {
	count int
	peak  int
}

func NewOutOfBounds() *OutOfBounds { return &OutOfBounds{} }

func (o *OutOfBounds) Name() string { return "out_of_bounds" }

func (o *OutOfBounds) Observe(ps []particles.Particle, bounds dynamo.Rect) {
	n := 0
	for i := range ps {
		if !bounds.Contains(ps[i].Pos) {
			n++
		}
	}
	o.count = n
	o.peak = max(o.peak, n)
}

func (o *OutOfBounds) Value() float64 { return float64(o.count) }
func (o *OutOfBounds) Peak() int      { return o.peak }

func (o *OutOfBounds) Reset() {
	o.count = 0
	o.peak = 0
}
