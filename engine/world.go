package engine

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/vmath"
)

// ErrInvalidReference is returned when a spring names a particle that does not exist
var ErrInvalidReference = errors.New("invalid particle reference")

// State is the simulation run state
type State uint8

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "RUNNING"
	}
	return "PAUSED"
}

// Params are the global physics constants applied every tick
type Params struct {
	Gravity   vmath.Vec2 // force applied to every dynamic particle
	Damping   float64    // velocity retention per tick
	Stiffness float64    // default spring constant
}

// DefaultParams returns gravity (0, 2500), damping 0.99, stiffness 1000
func DefaultParams() Params {
	return Params{
		Gravity:   vmath.V2(0, 2500),
		Damping:   physics.DefaultDamping,
		Stiffness: physics.DefaultStiffness,
	}
}

// World owns all particles and springs and is their sole mutator
// Not safe for concurrent use; the frame loop goroutine owns it
type World struct {
	params Params
	state  State

	particles physics.ParticleMap
	order     []physics.ParticleID // creation order, no holes
	springs   []*physics.Spring    // creation order

	nextParticleID physics.ParticleID
	nextSpringID   physics.SpringID

	ticks   uint64
	simTime float64
}

// NewWorld creates an empty paused world
func NewWorld(params Params) *World {
	return &World{
		params:         params,
		state:          Paused,
		particles:      make(physics.ParticleMap),
		nextParticleID: 1,
		nextSpringID:   1,
	}
}

// Params returns the physics constants in use
func (w *World) Params() Params { return w.params }

// State returns the current run state
func (w *World) State() State { return w.state }

// Running reports whether Step advances the simulation
func (w *World) Running() bool { return w.state == Running }

// ToggleRunning flips Paused/Running, motion state is untouched
func (w *World) ToggleRunning() State {
	if w.state == Running {
		w.state = Paused
	} else {
		w.state = Running
	}
	return w.state
}

// Ticks returns the number of executed ticks
func (w *World) Ticks() uint64 { return w.ticks }

// SimTime returns total simulated seconds
func (w *World) SimTime() float64 { return w.simTime }

// ParticleCount returns the number of live particles
func (w *World) ParticleCount() int { return len(w.order) }

// SpringCount returns the number of stored springs, dangling ones included until pruned
func (w *World) SpringCount() int { return len(w.springs) }

// CreateParticle adds a particle with a fresh id that is never reused
func (w *World) CreateParticle(pos vmath.Vec2, mass float64, dynamic bool) (physics.ParticleID, error) {
	p, err := physics.NewParticle(w.nextParticleID, pos, mass, dynamic)
	if err != nil {
		return 0, err
	}
	w.nextParticleID++
	w.particles[p.ID()] = p
	w.order = append(w.order, p.ID())
	return p.ID(), nil
}

// DeleteParticle removes the particle and prunes its springs
// Survivors keep their ids
func (w *World) DeleteParticle(id physics.ParticleID) bool {
	if _, ok := w.particles[id]; !ok {
		return false
	}
	delete(w.particles, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.pruneSprings()
	return true
}

// MoveParticle places a particle at pos and zeroes its velocity
func (w *World) MoveParticle(id physics.ParticleID, pos vmath.Vec2) bool {
	p, ok := w.particles[id]
	if !ok {
		return false
	}
	p.SetPosition(pos)
	return true
}

// Particle returns a copy of the particle state
func (w *World) Particle(id physics.ParticleID) (physics.Particle, bool) {
	p, ok := w.particles[id]
	if !ok {
		return physics.Particle{}, false
	}
	return *p, true
}

// CreateSpring connects two existing particles
// Stiffness defaults to Params.Stiffness, rest length is their current distance
func (w *World) CreateSpring(a, b physics.ParticleID, stiffness ...float64) (physics.SpringID, error) {
	pa, okA := w.particles[a]
	if !okA {
		return 0, errors.Wrapf(ErrInvalidReference, "particle %d", a)
	}
	pb, okB := w.particles[b]
	if !okB {
		return 0, errors.Wrapf(ErrInvalidReference, "particle %d", b)
	}

	k := w.params.Stiffness
	if len(stiffness) > 0 {
		k = stiffness[0]
	}

	s, err := physics.NewSpring(w.nextSpringID, pa, pb, k)
	if err != nil {
		return 0, err
	}
	w.nextSpringID++
	w.springs = append(w.springs, s)
	return s.ID(), nil
}

// DeleteSpring removes a spring by id
func (w *World) DeleteSpring(id physics.SpringID) bool {
	for i, s := range w.springs {
		if s.ID() == id {
			w.springs = append(w.springs[:i], w.springs[i+1:]...)
			return true
		}
	}
	return false
}

// Spring returns a copy of the spring
func (w *World) Spring(id physics.SpringID) (physics.Spring, bool) {
	for _, s := range w.springs {
		if s.ID() == id {
			return *s, true
		}
	}
	return physics.Spring{}, false
}

// FindParticleNear returns the first particle in creation order whose
// distance from point is less than its radius plus radius
func (w *World) FindParticleNear(point vmath.Vec2, radius float64) (physics.ParticleID, bool) {
	for _, id := range w.order {
		p := w.particles[id]
		if p.Position().Distance(point) < p.Radius()+radius {
			return id, true
		}
	}
	return 0, false
}

// FindSpringNear returns the first spring in creation order whose segment lies within radius of point
func (w *World) FindSpringNear(point vmath.Vec2, radius float64) (physics.SpringID, bool) {
	for _, s := range w.springs {
		a, b, ok := s.Endpoints(w.particles)
		if !ok {
			continue
		}
		if vmath.DistanceToSegment(point, a, b) <= radius {
			return s.ID(), true
		}
	}
	return 0, false
}

// Clear removes all particles and springs, id counters keep advancing
func (w *World) Clear() {
	w.particles = make(physics.ParticleMap)
	w.order = w.order[:0]
	w.springs = w.springs[:0]
}

// Step runs one tick if the world is running and reports whether it did
func (w *World) Step(dt float64) bool {
	if w.state != Running {
		return false
	}
	w.Tick(dt)
	return true
}

// Tick runs one simulation step regardless of run state
// Phases: prune dangling springs, gravity, springs, integrate
func (w *World) Tick(dt float64) {
	w.pruneSprings()

	for _, id := range w.order {
		p := w.particles[id]
		if p.Dynamic() {
			p.ApplyForce(w.params.Gravity)
		}
	}

	for _, s := range w.springs {
		s.Apply(w.particles)
	}

	for _, id := range w.order {
		w.particles[id].IntegrateDamped(dt, w.params.Damping)
	}

	w.ticks++
	w.simTime += dt
}

// pruneSprings drops every spring with a missing endpoint, preserving order
func (w *World) pruneSprings() {
	kept := w.springs[:0]
	for _, s := range w.springs {
		if s.Valid(w.particles) {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(w.springs); i++ {
		w.springs[i] = nil
	}
	w.springs = kept
}
