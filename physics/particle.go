package physics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/vmath"
)

// DefaultDamping is the per-tick velocity retention factor
const DefaultDamping = 0.99

// ErrInvalidParameter is returned for non-positive mass or stiffness and self-springs
var ErrInvalidParameter = errors.New("invalid parameter")

// ParticleID identifies a particle for its whole lifetime inside a World
// Zero is never assigned
type ParticleID uint64

// SpringID identifies a spring inside a World, zero is never assigned
type SpringID uint64

// Particle is a point mass with explicit-Euler state
// Static particles ignore forces and never move under integration
type Particle struct {
	id      ParticleID
	pos     vmath.Vec2
	vel     vmath.Vec2
	accel   vmath.Vec2 // pending, cleared by integration
	mass    float64
	dynamic bool
}

// NewParticle validates mass and returns a particle at rest
func NewParticle(id ParticleID, pos vmath.Vec2, mass float64, dynamic bool) (*Particle, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "particle mass %v", mass)
	}
	return &Particle{
		id:      id,
		pos:     pos,
		mass:    mass,
		dynamic: dynamic,
	}, nil
}

func (p *Particle) ID() ParticleID                   { return p.id }
func (p *Particle) Position() vmath.Vec2             { return p.pos }
func (p *Particle) Velocity() vmath.Vec2             { return p.vel }
func (p *Particle) PendingAcceleration() vmath.Vec2 { return p.accel }
func (p *Particle) Mass() float64                    { return p.mass }
func (p *Particle) Dynamic() bool                    { return p.dynamic }

// Radius is the visual radius in pixels, equal to mass
func (p *Particle) Radius() float64 { return p.mass }

// ApplyForce accumulates f/mass into the pending acceleration
// Position and velocity change only on Integrate
func (p *Particle) ApplyForce(f vmath.Vec2) {
	if !p.dynamic {
		return
	}
	p.accel = p.accel.Add(f.DivScalar(p.mass))
}

// Integrate advances the particle by dt seconds with DefaultDamping
func (p *Particle) Integrate(dt float64) {
	p.IntegrateDamped(dt, DefaultDamping)
}

// IntegrateDamped performs: v = v*damping + a*dt; p = p + v*dt; a = 0
// Damping is applied to the old velocity before the new impulse is added
func (p *Particle) IntegrateDamped(dt, damping float64) {
	if !p.dynamic {
		return
	}
	p.vel = p.vel.Scale(damping).Add(p.accel.Scale(dt))
	p.pos = p.pos.Add(p.vel.Scale(dt))
	p.accel = vmath.Vec2{}
}

// SetPosition moves the particle and kills its velocity and pending acceleration
func (p *Particle) SetPosition(pos vmath.Vec2) {
	p.pos = pos
	p.vel = vmath.Vec2{}
	p.accel = vmath.Vec2{}
}
