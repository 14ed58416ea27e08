package viz

import "github.com/san-kum/partfield/internal/dynamo"

// cellProjector maps terminal cells of the field view onto world space. A
// cell resolves to the world point under its centre.
type cellProjector struct {
	cols, rows int
	world      dynamo.Rect
}

func (p cellProjector) ScreenToWorld(screen dynamo.Vec2) (dynamo.Vec2, bool) {
	if p.cols <= 0 || p.rows <= 0 || p.world.Empty() {
		return dynamo.Vec2{}, false
	}
	if screen.X < 0 || screen.Y < 0 || screen.X >= float32(p.cols) || screen.Y >= float32(p.rows) {
		return dynamo.Vec2{}, false
	}
	return dynamo.Vec2{
		X: (screen.X + 0.5) * p.world.Width / float32(p.cols),
		Y: (screen.Y + 0.5) * p.world.Height / float32(p.rows),
	}, true
}
