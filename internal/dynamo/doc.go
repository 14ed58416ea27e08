// Package dynamo provides the core primitives shared by the particle field.
//
// The package defines the small float32 geometry the simulation runs on and
// the immutable constants every frame is computed with:
//
//   - [Vec2]: 2D vector with single-precision components
//   - [Mat2]: 2x2 matrix, used for the fixed orbit rotation
//   - [Rect]: viewport bounds in world units
//   - [Viewport]: source of the current bounds, absent when no window exists
//   - [Constants]: friction, grid spacing and per-mode force parameters
//
// # Example
//
//	c := dynamo.DefaultConstants()
//	r := c.OrbitRotation.Apply(dynamo.Vec2{X: 1})
//
// # Thread Safety
//
// All types here are plain values. A [Constants] value is never mutated
// after construction and may be shared by any number of goroutines.
package dynamo
