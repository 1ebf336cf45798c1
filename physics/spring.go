package physics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/vmath"
)

// DefaultStiffness is the spring constant used when none is given
const DefaultStiffness = 1000.0

// Lookup resolves particle ids, missing ids report false
type Lookup interface {
	Lookup(id ParticleID) (*Particle, bool)
}

// ParticleMap is the id-keyed particle store
type ParticleMap map[ParticleID]*Particle

// Lookup implements Lookup
func (m ParticleMap) Lookup(id ParticleID) (*Particle, bool) {
	p, ok := m[id]
	return p, ok
}

// Spring is a Hookean constraint between two particles referenced by id
// It never owns its endpoints
type Spring struct {
	id         SpringID
	a, b       ParticleID
	restLength float64
	stiffness  float64
}

// NewSpring creates a spring whose rest length is the current endpoint distance
func NewSpring(id SpringID, a, b *Particle, stiffness float64) (*Spring, error) {
	if a == nil || b == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "spring endpoint is nil")
	}
	if a.id == b.id {
		return nil, errors.Wrapf(ErrInvalidParameter, "spring endpoints are the same particle %d", a.id)
	}
	if !(stiffness > 0) || math.IsInf(stiffness, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "spring stiffness %v", stiffness)
	}
	return &Spring{
		id:         id,
		a:          a.id,
		b:          b.id,
		restLength: a.pos.Distance(b.pos),
		stiffness:  stiffness,
	}, nil
}

func (s *Spring) ID() SpringID        { return s.id }
func (s *Spring) A() ParticleID       { return s.a }
func (s *Spring) B() ParticleID       { return s.b }
func (s *Spring) RestLength() float64 { return s.restLength }
func (s *Spring) Stiffness() float64  { return s.stiffness }

// References reports whether id is one of the endpoints
func (s *Spring) References(id ParticleID) bool {
	return s.a == id || s.b == id
}

// Valid reports whether both endpoints resolve
func (s *Spring) Valid(l Lookup) bool {
	_, okA := l.Lookup(s.a)
	_, okB := l.Lookup(s.b)
	return okA && okB
}

// Apply pushes the restoring force onto both endpoints, +F on a and -F on b
// Missing endpoint makes it a no-op returning false
// Coincident endpoints have no direction and receive no force
func (s *Spring) Apply(l Lookup) bool {
	pa, okA := l.Lookup(s.a)
	pb, okB := l.Lookup(s.b)
	if !okA || !okB {
		return false
	}

	delta := pb.pos.Sub(pa.pos)
	extension := delta.Magnitude() - s.restLength
	force := delta.Normalize().Scale(s.stiffness * extension)

	pa.ApplyForce(force)
	pb.ApplyForce(force.Neg())
	return true
}

// Endpoints returns current endpoint positions for line drawing
func (s *Spring) Endpoints(l Lookup) (a, b vmath.Vec2, ok bool) {
	pa, okA := l.Lookup(s.a)
	pb, okB := l.Lookup(s.b)
	if !okA || !okB {
		return vmath.Vec2{}, vmath.Vec2{}, false
	}
	return pa.pos, pb.pos, true
}

// Extension returns current length minus rest length, positive when stretched
func (s *Spring) Extension(l Lookup) (float64, bool) {
	a, b, ok := s.Endpoints(l)
	if !ok {
		return 0, false
	}
	return a.Distance(b) - s.restLength, true
}
