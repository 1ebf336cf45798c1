package input

import "github.com/lixenwraith/spring-sim/vmath"

// MouseState tracks the held button and last pointer position
type MouseState struct {
	Held     MouseButton
	Position vmath.Vec2
	// PressedAt is where the held button went down
	PressedAt vmath.Vec2
}

// Update folds e into the state
// Only one held button is tracked; a second press while one is held replaces it
func (m *MouseState) Update(e Event) {
	switch e.Type {
	case EventMouseButtonPressed:
		m.Held = e.Button
		m.Position = vmath.V2(e.X, e.Y)
		m.PressedAt = m.Position
	case EventMouseButtonReleased:
		if m.Held == e.Button {
			m.Held = ButtonNone
		}
		m.Position = vmath.V2(e.X, e.Y)
	case EventMouseMoved:
		m.Position = vmath.V2(e.X, e.Y)
	}
}

// Dragging reports whether b is held and the pointer moved since the press
func (m *MouseState) Dragging(b MouseButton) bool {
	return m.Held == b && b != ButtonNone && m.Position != m.PressedAt
}
