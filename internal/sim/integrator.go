package sim

import (
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/forces"
	"github.com/san-kum/partfield/internal/input"
	"github.com/san-kum/partfield/internal/particles"
)

// Integrate advances p by one frame. The order is fixed: friction on the
// previous velocity, boundary reflection, cursor force, then position.
// Reflection only flips velocity; a particle may sit outside bounds for a
// frame before it comes back.
func Integrate(p *particles.Particle, cmd input.Command, bounds dynamo.Rect, c *dynamo.Constants) {
	p.Vel = p.Vel.Scale(c.Friction)

	if p.Pos.X < 0 || p.Pos.X > bounds.Width {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > bounds.Height {
		p.Vel.Y = -p.Vel.Y
	}

	p.Vel = p.Vel.Add(forces.For(cmd, p.Pos, c))
	p.Pos = p.Pos.Add(p.Vel)
}
