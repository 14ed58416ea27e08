package sim

import (
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/particles"
)

// Frame describes one completed frame. Particles aliases the live store and is
// valid only for the duration of the callback.
type Frame struct {
	Index     int
	Command   input.Command
	Particles []particles.Particle
	Bounds    dynamo.Rect
}

type Metric interface {
	Name() string
	Observe(ps []particles.Particle, bounds dynamo.Rect)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Options struct {
	// ValidateState checks every particle for NaN/Inf after it is updated.
	// A failing Step has already moved the particles integrated before the
	// bad one while the frame counter, last command and observers stay
	// behind, so callers must end the episode on the error.
	ValidateState bool
}
