package status

import "sync/atomic"

// Metric keys published by the frame loop
const (
	KeyTicks     = "sim.ticks"
	KeyParticles = "sim.particles"
	KeySprings   = "sim.springs"
	KeyDelta     = "sim.dt"
	KeySimTime   = "sim.time"
	KeyRunning   = "sim.running"
	KeyFPS       = "frame.fps"
	KeyMode      = "input.mode"
	KeyMass      = "input.mass"
)

// Registry is the central metrics facade
// Writers cache pointers once; the status bar reads the same pointers
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// SimMetrics caches the simulation metric pointers
type SimMetrics struct {
	Ticks     *atomic.Int64
	Particles *atomic.Int64
	Springs   *atomic.Int64
	FPS       *atomic.Int64
	Delta     *AtomicFloat
	SimTime   *AtomicFloat
	Mass      *AtomicFloat
	Running   *atomic.Bool
	Mode      *AtomicString
}

// Sim resolves all simulation metrics, creating them on first use
func (r *Registry) Sim() SimMetrics {
	return SimMetrics{
		Ticks:     r.Ints.Get(KeyTicks),
		Particles: r.Ints.Get(KeyParticles),
		Springs:   r.Ints.Get(KeySprings),
		FPS:       r.Ints.Get(KeyFPS),
		Delta:     r.Floats.Get(KeyDelta),
		SimTime:   r.Floats.Get(KeySimTime),
		Mass:      r.Floats.Get(KeyMass),
		Running:   r.Bools.Get(KeyRunning),
		Mode:      r.Strings.Get(KeyMode),
	}
}
