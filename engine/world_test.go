package engine

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/vmath"
)

func mustCreate(t *testing.T, w *World, pos vmath.Vec2, mass float64, dynamic bool) physics.ParticleID {
	t.Helper()
	id, err := w.CreateParticle(pos, mass, dynamic)
	if err != nil {
		t.Fatalf("CreateParticle failed: %v", err)
	}
	return id
}

func mustSpring(t *testing.T, w *World, a, b physics.ParticleID) physics.SpringID {
	t.Helper()
	id, err := w.CreateSpring(a, b)
	if err != nil {
		t.Fatalf("CreateSpring(%d,%d) failed: %v", a, b, err)
	}
	return id
}

func TestNewWorldInitialState(t *testing.T) {
	w := NewWorld(DefaultParams())
	if w.State() != Paused {
		t.Errorf("Expected initial state Paused, got %v", w.State())
	}
	if w.Running() {
		t.Errorf("Expected Running() false initially")
	}
	if w.ParticleCount() != 0 || w.SpringCount() != 0 {
		t.Errorf("Expected empty world")
	}
}

func TestCreateParticleIDsNeverReused(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, true)
	b := mustCreate(t, w, vmath.V2(10, 0), 1, true)
	if a == b || a == 0 || b == 0 {
		t.Fatalf("Expected distinct non-zero ids, got %d and %d", a, b)
	}

	w.DeleteParticle(b)
	c := mustCreate(t, w, vmath.V2(20, 0), 1, true)
	if c == b || c == a {
		t.Errorf("Expected fresh id after deletion, got %d (deleted %d)", c, b)
	}

	w.Clear()
	d := mustCreate(t, w, vmath.V2(0, 0), 1, true)
	if d <= c {
		t.Errorf("Expected ids to keep advancing after Clear, got %d after %d", d, c)
	}
}

func TestCreateParticleInvalidMass(t *testing.T) {
	w := NewWorld(DefaultParams())
	if _, err := w.CreateParticle(vmath.V2(0, 0), 0, true); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
	if w.ParticleCount() != 0 {
		t.Errorf("Expected rejected particle not to be stored")
	}
	// Rejected creation does not consume an id
	id := mustCreate(t, w, vmath.V2(0, 0), 1, true)
	if id != 1 {
		t.Errorf("Expected first valid id 1, got %d", id)
	}
}

func TestDeleteKeepsSurvivorIDs(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, false)
	b := mustCreate(t, w, vmath.V2(10, 0), 1, true)
	c := mustCreate(t, w, vmath.V2(20, 0), 1, true)
	s := mustSpring(t, w, b, c)

	if !w.DeleteParticle(a) {
		t.Fatalf("Expected DeleteParticle to succeed")
	}
	if w.DeleteParticle(a) {
		t.Errorf("Expected second delete to report false")
	}

	// Spring between survivors still refers to the same particles
	sp, ok := w.Spring(s)
	if !ok {
		t.Fatalf("Expected spring between survivors to remain")
	}
	if sp.A() != b || sp.B() != c {
		t.Errorf("Spring reattached: got (%d,%d), want (%d,%d)", sp.A(), sp.B(), b, c)
	}
	pb, _ := w.Particle(b)
	if pb.Position() != vmath.V2(10, 0) {
		t.Errorf("Survivor %d has wrong position %v", b, pb.Position())
	}
}

func TestCreateSpringInvalidReference(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, true)

	tests := []struct {
		name string
		a, b physics.ParticleID
	}{
		{"Missing B", a, 99},
		{"Missing A", 99, a},
		{"Zero id", 0, a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.CreateSpring(tt.a, tt.b)
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("Expected ErrInvalidReference, got %v", err)
			}
		})
	}
	if w.SpringCount() != 0 {
		t.Errorf("Expected no springs stored")
	}
}

func TestCreateSpringDefaults(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, false)
	b := mustCreate(t, w, vmath.V2(6, 8), 1, true)

	id := mustSpring(t, w, a, b)
	s, _ := w.Spring(id)
	if s.Stiffness() != 1000 {
		t.Errorf("Expected default stiffness 1000, got %f", s.Stiffness())
	}
	if s.RestLength() != 10 {
		t.Errorf("Expected rest length 10, got %f", s.RestLength())
	}

	id2, err := w.CreateSpring(a, b, 250)
	if err != nil {
		t.Fatalf("CreateSpring with stiffness failed: %v", err)
	}
	s2, _ := w.Spring(id2)
	if s2.Stiffness() != 250 {
		t.Errorf("Expected explicit stiffness 250, got %f", s2.Stiffness())
	}

	if _, err := w.CreateSpring(a, a); !errors.Is(err, physics.ErrInvalidParameter) {
		t.Errorf("Expected self spring to be rejected, got %v", err)
	}
}

func TestDeleteParticlePrunesSprings(t *testing.T) {
	w := NewWorld(DefaultParams())
	w.ToggleRunning()

	ids := make([]physics.ParticleID, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, mustCreate(t, w, vmath.V2(float64(i)*20, 0), 2, i != 0))
	}
	for i := 0; i < 4; i++ {
		mustSpring(t, w, ids[i], ids[i+1])
	}
	mustSpring(t, w, ids[0], ids[2])

	for _, victim := range []physics.ParticleID{ids[2], ids[4]} {
		w.DeleteParticle(victim)
		w.Step(0.016)

		snap := w.Snapshot()
		for _, sv := range snap.Springs {
			s, _ := w.Spring(sv.ID)
			if s.References(victim) {
				t.Errorf("Spring %d still references deleted particle %d", sv.ID, victim)
			}
		}
	}
	// Remaining: 0-1 only
	if w.SpringCount() != 1 {
		t.Errorf("Expected 1 surviving spring, got %d", w.SpringCount())
	}
}

func TestDeleteSpring(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, false)
	b := mustCreate(t, w, vmath.V2(10, 0), 1, true)
	s := mustSpring(t, w, a, b)

	if !w.DeleteSpring(s) {
		t.Fatalf("Expected DeleteSpring to succeed")
	}
	if w.DeleteSpring(s) {
		t.Errorf("Expected second DeleteSpring to fail")
	}
	if w.ParticleCount() != 2 {
		t.Errorf("Deleting a spring must not delete particles")
	}
}

func TestToggleRunningIdempotent(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 4, true)
	w.ToggleRunning()
	w.Step(0.02)
	w.Step(0.02)

	before, _ := w.Particle(a)
	initial := w.State()

	w.ToggleRunning()
	w.ToggleRunning()

	after, _ := w.Particle(a)
	if w.State() != initial {
		t.Errorf("Expected state %v after double toggle, got %v", initial, w.State())
	}
	if before.Position() != after.Position() || before.Velocity() != after.Velocity() {
		t.Errorf("Toggle changed motion state: %v/%v -> %v/%v",
			before.Position(), before.Velocity(), after.Position(), after.Velocity())
	}
}

func TestStepOnlyWhileRunning(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 4, true)

	if w.Step(0.1) {
		t.Errorf("Expected Step to be skipped while paused")
	}
	p, _ := w.Particle(a)
	if p.Position() != vmath.V2(0, 0) || w.Ticks() != 0 {
		t.Errorf("Paused world advanced: pos %v ticks %d", p.Position(), w.Ticks())
	}

	// Tick advances regardless of state
	w.Tick(0.1)
	p, _ = w.Particle(a)
	if p.Position().Y <= 0 {
		t.Errorf("Expected gravity to pull particle down (+y), got %v", p.Position())
	}
	if w.State() != Paused {
		t.Errorf("Tick must not change run state")
	}

	w.ToggleRunning()
	if !w.Step(0.1) {
		t.Errorf("Expected Step to run while running")
	}
	if w.Ticks() != 2 {
		t.Errorf("Expected 2 ticks, got %d", w.Ticks())
	}
	if math.Abs(w.SimTime()-0.2) > 1e-12 {
		t.Errorf("Expected sim time 0.2, got %f", w.SimTime())
	}
}

func TestGravityIgnoresStatic(t *testing.T) {
	w := NewWorld(DefaultParams())
	s := mustCreate(t, w, vmath.V2(100, 100), 4, false)
	w.ToggleRunning()
	for i := 0; i < 50; i++ {
		w.Step(0.016)
	}
	p, _ := w.Particle(s)
	if p.Position() != vmath.V2(100, 100) {
		t.Errorf("Static particle moved to %v", p.Position())
	}
}

func TestSpringHoldsPendulum(t *testing.T) {
	w := NewWorld(DefaultParams())
	anchor := mustCreate(t, w, vmath.V2(0, 0), 4, false)
	bob := mustCreate(t, w, vmath.V2(0, 50), 4, true)
	mustSpring(t, w, anchor, bob)
	w.ToggleRunning()

	for i := 0; i < 2000; i++ {
		w.Step(0.005)
	}
	p, _ := w.Particle(bob)
	// Settles near rest + gravity/stiffness = 50 + 2500/1000
	if math.Abs(p.Position().Y-52.5) > 1 {
		t.Errorf("Expected bob to settle near y=52.5, got %v", p.Position())
	}
}

func TestFindParticleNear(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 10, true)
	b := mustCreate(t, w, vmath.V2(5, 0), 10, true) // overlaps a
	c := mustCreate(t, w, vmath.V2(100, 0), 2, true)

	tests := []struct {
		name   string
		point  vmath.Vec2
		radius float64
		want   physics.ParticleID
		found  bool
	}{
		{"Overlap returns first created", vmath.V2(3, 0), 0, a, true},
		{"Inside c", vmath.V2(101, 0), 0, c, true},
		{"Edge is exclusive", vmath.V2(102, 0), 0, 0, false},
		{"Pick radius widens", vmath.V2(104, 0), 3, c, true},
		{"Empty space", vmath.V2(50, 50), 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.FindParticleNear(tt.point, tt.radius)
			if ok != tt.found || got != tt.want {
				t.Errorf("Expected (%d,%v), got (%d,%v)", tt.want, tt.found, got, ok)
			}
		})
	}

	w.DeleteParticle(a)
	if got, ok := w.FindParticleNear(vmath.V2(3, 0), 0); !ok || got != b {
		t.Errorf("Expected %d after deleting first, got (%d,%v)", b, got, ok)
	}
}

func TestFindSpringNear(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, false)
	b := mustCreate(t, w, vmath.V2(100, 0), 1, false)
	s := mustSpring(t, w, a, b)

	if got, ok := w.FindSpringNear(vmath.V2(50, 3), 4); !ok || got != s {
		t.Errorf("Expected spring %d near segment, got (%d,%v)", s, got, ok)
	}
	if _, ok := w.FindSpringNear(vmath.V2(50, 30), 4); ok {
		t.Errorf("Expected no spring far from segment")
	}
}

func TestMoveParticle(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 1, false)
	if !w.MoveParticle(a, vmath.V2(30, 40)) {
		t.Fatalf("Expected MoveParticle to succeed")
	}
	p, _ := w.Particle(a)
	if p.Position() != vmath.V2(30, 40) {
		t.Errorf("Expected moved position, got %v", p.Position())
	}
	if w.MoveParticle(99, vmath.V2(0, 0)) {
		t.Errorf("Expected MoveParticle on missing id to fail")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	w := NewWorld(DefaultParams())
	a := mustCreate(t, w, vmath.V2(0, 0), 3, false)
	b := mustCreate(t, w, vmath.V2(0, 30), 3, true)
	mustSpring(t, w, a, b)

	snap := w.Snapshot()
	if len(snap.Particles) != 2 || len(snap.Springs) != 1 {
		t.Fatalf("Unexpected snapshot sizes %d/%d", len(snap.Particles), len(snap.Springs))
	}
	if snap.Particles[0].ID != a || snap.Particles[1].ID != b {
		t.Errorf("Snapshot not in creation order")
	}

	w.ToggleRunning()
	for i := 0; i < 10; i++ {
		w.Step(0.016)
	}
	w.DeleteParticle(b)

	pv, ok := snap.Find(b)
	if !ok || pv.Pos != vmath.V2(0, 30) {
		t.Errorf("Snapshot changed after world mutation: %+v", pv)
	}
	if snap.State != Paused {
		t.Errorf("Snapshot state changed")
	}
}

type op struct {
	dt     float64
	create *vmath.Vec2
	delete physics.ParticleID
}

func runScript(t *testing.T) []vmath.Vec2 {
	t.Helper()
	w := NewWorld(DefaultParams())
	anchor := mustCreate(t, w, vmath.V2(200, 50), 6, false)
	prev := anchor
	for i := 1; i <= 6; i++ {
		id := mustCreate(t, w, vmath.V2(200+float64(i)*15, 50+float64(i)*5), 4, true)
		mustSpring(t, w, prev, id)
		prev = id
	}
	w.ToggleRunning()

	extra := vmath.V2(260, 20)
	script := []op{
		{dt: 0.016}, {dt: 0.017}, {dt: 0.015},
		{dt: 0.016, delete: 4},
		{dt: 0.033}, {dt: 0.016, create: &extra},
		{dt: 0.001}, {dt: 0.03},
	}
	for i := 0; i < 40; i++ {
		for _, o := range script {
			if o.create != nil && i == 0 {
				id := mustCreate(t, w, *o.create, 3, true)
				if _, err := w.CreateSpring(id, 7); err != nil && !errors.Is(err, ErrInvalidReference) {
					t.Fatalf("Unexpected error %v", err)
				}
			}
			if o.delete != 0 {
				w.DeleteParticle(o.delete)
			}
			w.Step(o.dt)
		}
	}

	snap := w.Snapshot()
	out := make([]vmath.Vec2, 0, len(snap.Particles))
	for _, p := range snap.Particles {
		out = append(out, p.Pos)
	}
	return out
}

func TestDeterministicTrajectories(t *testing.T) {
	first := runScript(t)
	second := runScript(t)

	if len(first) != len(second) {
		t.Fatalf("Particle counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if math.IsNaN(first[i].X) || math.IsNaN(first[i].Y) {
			t.Fatalf("Particle %d diverged to NaN", i)
		}
		if first[i] != second[i] {
			t.Errorf("Particle %d diverged: %v vs %v", i, first[i], second[i])
		}
	}
}
