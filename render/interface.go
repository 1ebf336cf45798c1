package render

import "github.com/lixenwraith/spring-sim/vmath"

// Renderer is the drawing collaborator used by the frame loop
// Coordinates are world pixels
type Renderer interface {
	Clear(c RGB)
	DrawCircle(center vmath.Vec2, radius float64, c RGB)
	DrawLine(p1, p2 vmath.Vec2, c RGB)
	Present()
}
