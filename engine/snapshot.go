package engine

import (
	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/vmath"
)

// ParticleView is the read-only render state of a particle
type ParticleView struct {
	ID      physics.ParticleID
	Pos     vmath.Vec2
	Radius  float64
	Dynamic bool
}

// SpringView is the read-only render state of a spring
type SpringView struct {
	ID         physics.SpringID
	A, B       vmath.Vec2
	RestLength float64
	Extension  float64
}

// Snapshot is a copy of world state handed to rendering
// Holds no references into the world and stays valid across ticks
type Snapshot struct {
	State     State
	Particles []ParticleView
	Springs   []SpringView
}

// Snapshot copies particle and spring state in creation order
// Dangling springs are skipped
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		State:     w.state,
		Particles: make([]ParticleView, 0, len(w.order)),
		Springs:   make([]SpringView, 0, len(w.springs)),
	}

	for _, id := range w.order {
		p := w.particles[id]
		snap.Particles = append(snap.Particles, ParticleView{
			ID:      id,
			Pos:     p.Position(),
			Radius:  p.Radius(),
			Dynamic: p.Dynamic(),
		})
	}

	for _, s := range w.springs {
		a, b, ok := s.Endpoints(w.particles)
		if !ok {
			continue
		}
		snap.Springs = append(snap.Springs, SpringView{
			ID:         s.ID(),
			A:          a,
			B:          b,
			RestLength: s.RestLength(),
			Extension:  a.Distance(b) - s.RestLength(),
		})
	}

	return snap
}

// Find returns the particle view with the given id
func (s Snapshot) Find(id physics.ParticleID) (ParticleView, bool) {
	for _, p := range s.Particles {
		if p.ID == id {
			return p, true
		}
	}
	return ParticleView{}, false
}
