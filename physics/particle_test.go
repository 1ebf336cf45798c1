package physics

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/vmath"
)

func mustParticle(t *testing.T, id ParticleID, pos vmath.Vec2, mass float64, dynamic bool) *Particle {
	t.Helper()
	p, err := NewParticle(id, pos, mass, dynamic)
	if err != nil {
		t.Fatalf("NewParticle(%d) failed: %v", id, err)
	}
	return p
}

func TestNewParticleRejectsBadMass(t *testing.T) {
	tests := []struct {
		name string
		mass float64
	}{
		{"Zero", 0},
		{"Negative", -1},
		{"NaN", math.NaN()},
		{"Infinite", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParticle(1, vmath.V2(0, 0), tt.mass, true)
			if err == nil {
				t.Fatalf("Expected error for mass %v, got particle %+v", tt.mass, p)
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestApplyForceAccumulates(t *testing.T) {
	p := mustParticle(t, 1, vmath.V2(0, 0), 2, true)
	p.ApplyForce(vmath.V2(4, 0))
	p.ApplyForce(vmath.V2(0, -2))

	if got := p.PendingAcceleration(); got != vmath.V2(2, -1) {
		t.Errorf("Expected pending acceleration (2,-1), got %v", got)
	}
	if !p.Velocity().IsZero() || p.Position() != vmath.V2(0, 0) {
		t.Errorf("ApplyForce must not touch velocity or position")
	}
}

func TestIntegrateOrder(t *testing.T) {
	p := mustParticle(t, 1, vmath.V2(0, 0), 1, true)

	// First tick: v = 0*0.5 + 10*0.1 = 1, p = 0.1
	p.ApplyForce(vmath.V2(10, 0))
	p.IntegrateDamped(0.1, 0.5)
	if got := p.Velocity().X; math.Abs(got-1) > 1e-12 {
		t.Fatalf("Expected velocity 1 after first tick, got %f", got)
	}
	if got := p.Position().X; math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("Expected position 0.1 after first tick, got %f", got)
	}
	if !p.PendingAcceleration().IsZero() {
		t.Fatalf("Expected pending acceleration cleared")
	}

	// Second tick: damping applies to old velocity before new impulse, v = 1*0.5 + 10*0.1 = 1.5
	p.ApplyForce(vmath.V2(10, 0))
	p.IntegrateDamped(0.1, 0.5)
	if got := p.Velocity().X; math.Abs(got-1.5) > 1e-12 {
		t.Errorf("Expected velocity 1.5 after second tick, got %f", got)
	}
	if got := p.Position().X; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Expected position 0.25 after second tick, got %f", got)
	}
}

func TestIntegrateUsesDefaultDamping(t *testing.T) {
	a := mustParticle(t, 1, vmath.V2(0, 0), 1, true)
	b := mustParticle(t, 2, vmath.V2(0, 0), 1, true)
	for i := 0; i < 10; i++ {
		a.ApplyForce(vmath.V2(0, 100))
		b.ApplyForce(vmath.V2(0, 100))
		a.Integrate(0.016)
		b.IntegrateDamped(0.016, DefaultDamping)
	}
	if a.Position() != b.Position() || a.Velocity() != b.Velocity() {
		t.Errorf("Integrate diverged from IntegrateDamped(DefaultDamping): %v vs %v", a.Position(), b.Position())
	}
}

func TestStaticParticleImmovable(t *testing.T) {
	forces := []vmath.Vec2{
		vmath.V2(1, 0),
		vmath.V2(-1e9, 1e9),
		vmath.V2(0, 0),
		vmath.V2(math.MaxFloat64, -math.MaxFloat64),
	}
	dts := []float64{0, 0.001, 1, 1000}

	p := mustParticle(t, 1, vmath.V2(5, 7), 3, false)
	for _, f := range forces {
		for _, dt := range dts {
			p.ApplyForce(f)
			p.Integrate(dt)
			p.IntegrateDamped(dt, 0.5)
			if p.Position() != vmath.V2(5, 7) {
				t.Fatalf("Static particle moved to %v (force %v, dt %v)", p.Position(), f, dt)
			}
			if !p.Velocity().IsZero() {
				t.Fatalf("Static particle gained velocity %v", p.Velocity())
			}
		}
	}
}

func TestSetPositionResetsMotion(t *testing.T) {
	p := mustParticle(t, 1, vmath.V2(0, 0), 1, true)
	p.ApplyForce(vmath.V2(10, 10))
	p.Integrate(0.1)
	p.ApplyForce(vmath.V2(10, 10))

	p.SetPosition(vmath.V2(50, 60))
	if p.Position() != vmath.V2(50, 60) {
		t.Errorf("Expected position (50,60), got %v", p.Position())
	}
	if !p.Velocity().IsZero() || !p.PendingAcceleration().IsZero() {
		t.Errorf("Expected motion cleared, got vel %v accel %v", p.Velocity(), p.PendingAcceleration())
	}
}

func TestRadiusEqualsMass(t *testing.T) {
	p := mustParticle(t, 1, vmath.V2(0, 0), 16, true)
	if p.Radius() != 16 {
		t.Errorf("Expected radius 16, got %f", p.Radius())
	}
}
