package input

import "github.com/san-kum/partfield/internal/dynamo"

// Projector maps a screen-space cursor to world space. ok is false when the
// point cannot be resolved this frame.
type Projector interface {
	ScreenToWorld(screen dynamo.Vec2) (world dynamo.Vec2, ok bool)
}

// Camera2D is an orthographic camera looking at Center. With FlipY set, screen
// y grows downward while world y grows upward.
type Camera2D struct {
	Center   dynamo.Vec2
	Zoom     float32
	Viewport dynamo.Rect
	FlipY    bool
}

// NewCamera2D centers the camera on the viewport so world coordinates line up
// with the particle lattice.
func NewCamera2D(viewport dynamo.Rect, flipY bool) *Camera2D {
	return &Camera2D{
		Center:   viewport.Center(),
		Zoom:     1,
		Viewport: viewport,
		FlipY:    flipY,
	}
}

func (c *Camera2D) ScreenToWorld(screen dynamo.Vec2) (dynamo.Vec2, bool) {
	if c == nil || !(c.Zoom > 0) || c.Viewport.Empty() {
		return dynamo.Vec2{}, false
	}
	if !c.Viewport.Contains(screen) {
		return dynamo.Vec2{}, false
	}

	half := c.Viewport.Center()
	dx := (screen.X - half.X) / c.Zoom
	dy := (screen.Y - half.Y) / c.Zoom
	if c.FlipY {
		dy = -dy
	}
	return dynamo.Vec2{X: c.Center.X + dx, Y: c.Center.Y + dy}, true
}

// Resize keeps the camera centered on a new viewport.
func (c *Camera2D) Resize(viewport dynamo.Rect) {
	c.Viewport = viewport
	c.Center = viewport.Center()
}

// Identity treats screen coordinates as world coordinates. Headless runs use
// it to drive the cursor directly in world units.
type Identity struct{}

func (Identity) ScreenToWorld(screen dynamo.Vec2) (dynamo.Vec2, bool) {
	return screen, true
}
