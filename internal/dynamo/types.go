package dynamo

import "math"

type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Neg() Vec2       { return Vec2{-v.X, -v.Y} }

func (v Vec2) Scale(f float32) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSquared())))
}

// Normalize returns the unit vector along v, or the zero vector when v has
// no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 || !isFinite(l) {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float32) bool {
	g := float64(f)
	return !math.IsNaN(g) && !math.IsInf(g, 0)
}

// Mat2 is a row-major 2x2 matrix:
//
//	| A B |
//	| C D |
type Mat2 struct {
	A, B, C, D float32
}

func Identity() Mat2 { return Mat2{A: 1, D: 1} }

// Rotation returns the counter-clockwise rotation by angle radians.
func Rotation(angle float64) Mat2 {
	s, c := math.Sincos(angle)
	return Mat2{
		A: float32(c), B: float32(-s),
		C: float32(s), D: float32(c),
	}
}

func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.C*v.X + m.D*v.Y,
	}
}

type Rect struct {
	Width, Height float32
}

func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Contains reports whether p lies inside the closed box [0,Width]x[0,Height].
func (r Rect) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= r.Width && p.Y >= 0 && p.Y <= r.Height
}

func (r Rect) Center() Vec2 {
	return Vec2{r.Width / 2, r.Height / 2}
}

// Bounds makes a Rect usable wherever a Viewport is expected.
func (r Rect) Bounds() (Rect, bool) { return r, true }

// Viewport reports the current drawable area in world units. ok is false when
// the host has no window to report.
type Viewport interface {
	Bounds() (r Rect, ok bool)
}

type ForceParams struct {
	Divisor float32
	Cap     float32
	Scale   float32
}

// Constants holds everything a frame update reads but never writes.
type Constants struct {
	OrbitRotation   Mat2
	SpatialInterval float32
	Friction        float32
	Grav            float32
	Attract         ForceParams
	Repel           ForceParams
	Orbit           ForceParams
}

const (
	DefaultSpatialInterval = 5.0
	DefaultFriction        = 0.99
	DefaultGrav            = 1400.0
	DefaultOrbitAngle      = 2.98
)

func DefaultConstants() Constants {
	return Constants{
		OrbitRotation:   Rotation(DefaultOrbitAngle),
		SpatialInterval: DefaultSpatialInterval,
		Friction:        DefaultFriction,
		Grav:            DefaultGrav,
		Attract:         ForceParams{Divisor: 4.5, Cap: 0.8, Scale: 1},
		Repel:           ForceParams{Divisor: 8, Cap: 1.8, Scale: 8},
		Orbit:           ForceParams{Divisor: 8, Cap: 0.8, Scale: 1},
	}
}

// MaxForce is the largest force magnitude p can ever produce.
func (p ForceParams) MaxForce() float32 {
	return p.Cap * p.Scale
}
