package render

import (
	"github.com/charmbracelet/harmonica"
)

// Highlight animates the selection halo radius with a damped spring
// Update is called once per rendered frame
type Highlight struct {
	spring harmonica.Spring
	radius float64
	vel    float64
	target float64
}

// NewHighlight creates an animator for the given frame rate
// Under-damped so the halo overshoots slightly when it pops in
func NewHighlight(fps int) *Highlight {
	if fps <= 0 {
		fps = 60
	}
	return &Highlight{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.4),
	}
}

// SetTarget sets the radius the halo settles on
func (h *Highlight) SetTarget(radius float64) {
	h.target = radius
}

// Reset snaps the halo to radius with no motion
func (h *Highlight) Reset(radius float64) {
	h.radius = radius
	h.vel = 0
	h.target = radius
}

// Update advances one frame and returns the current radius
func (h *Highlight) Update() float64 {
	h.radius, h.vel = h.spring.Update(h.radius, h.vel, h.target)
	return h.radius
}

// Radius returns the current radius without advancing
func (h *Highlight) Radius() float64 { return h.radius }
