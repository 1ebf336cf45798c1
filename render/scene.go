package render

import (
	"math"

	"github.com/lixenwraith/spring-sim/engine"
	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/vmath"
)

// Overlay is interaction state drawn on top of the world
type Overlay struct {
	Selected   physics.ParticleID // 0 when nothing is selected
	HaloRadius float64            // absolute halo radius in pixels
	Connecting bool               // draw a pending spring from the selection to Pointer
	Pointer    vmath.Vec2
}

// SpringTint maps |extension|/rest to a color between Spring and SpringStretched
// Full tint is reached at 50% strain
func (p Palette) SpringTint(s engine.SpringView) RGB {
	if s.RestLength <= 0 {
		return p.Spring
	}
	strain := math.Abs(s.Extension) / s.RestLength
	return Blend(p.Spring, p.SpringStretched, strain*2)
}

// DrawScene renders a snapshot: background, springs, pending connection, halo, particles
func DrawScene(r Renderer, snap engine.Snapshot, pal Palette, ov Overlay) {
	r.Clear(pal.Background)

	for _, s := range snap.Springs {
		r.DrawLine(s.A, s.B, pal.SpringTint(s))
	}

	if ov.Selected != 0 {
		if sel, ok := snap.Find(ov.Selected); ok {
			if ov.Connecting {
				r.DrawLine(sel.Pos, ov.Pointer, pal.Selection)
			}
			if ov.HaloRadius > sel.Radius {
				r.DrawCircle(sel.Pos, ov.HaloRadius, pal.Selection)
			}
		}
	}

	for _, p := range snap.Particles {
		c := pal.StaticParticle
		if p.Dynamic {
			c = pal.DynamicParticle
		}
		r.DrawCircle(p.Pos, p.Radius, c)
	}
}
