// Package forces computes the cursor force acting on a single particle.
//
// Every function here is pure: it reads the command and the constants and
// writes nothing, so particles may be evaluated in any order or in parallel.
package forces

import (
	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/input"
)

// For returns the force the active mode exerts on a particle at pos.
func For(cmd input.Command, pos dynamo.Vec2, c *dynamo.Constants) dynamo.Vec2 {
	switch cmd.Mode {
	case input.ModeAttract:
		return Attract(cmd.Target, pos, c.Grav, c.Attract)
	case input.ModeRepel:
		return Repel(cmd.Target, pos, c.Grav, c.Repel)
	case input.ModeOrbit:
		return Orbit(cmd.Target, pos, c.Grav, c.OrbitRotation, c.Orbit)
	}
	return dynamo.Vec2{}
}

// Attract pulls toward target with an inverse-square falloff, capped at p.Cap.
func Attract(target, pos dynamo.Vec2, grav float32, p dynamo.ForceParams) dynamo.Vec2 {
	diff := target.Sub(pos)
	d2 := diff.LengthSquared() / p.Divisor
	if d2 == 0 {
		return dynamo.Vec2{}
	}
	mag := min(grav/d2, p.Cap) * p.Scale
	return diff.Normalize().Scale(mag)
}

// Repel pushes away from target. The cap applies before scaling.
func Repel(target, pos dynamo.Vec2, grav float32, p dynamo.ForceParams) dynamo.Vec2 {
	diff := target.Sub(pos)
	d2 := diff.LengthSquared() / p.Divisor
	if d2 == 0 {
		return dynamo.Vec2{}
	}
	mag := min(grav/d2, p.Cap) * p.Scale
	return diff.Normalize().Scale(-mag)
}

// Orbit pulls along the rotated pull vector with an inverse-distance falloff,
// which bends the motion into a swirl around target.
func Orbit(target, pos dynamo.Vec2, grav float32, rot dynamo.Mat2, p dynamo.ForceParams) dynamo.Vec2 {
	diff := rot.Apply(target.Sub(pos))
	d := diff.Length()
	if d == 0 {
		return dynamo.Vec2{}
	}
	mag := min(grav/d/p.Divisor, p.Cap) * p.Scale
	return diff.Normalize().Scale(-mag)
}
