package input

import (
	"log"

	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/audio"
	"github.com/lixenwraith/spring-sim/engine"
	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/vmath"
)

// New-particle mass limits and step
const (
	MinMass  = 1.0
	MaxMass  = 32.0
	MassStep = 1.0
)

// Hit-test slop in world pixels added to particle radius and spring distance
const (
	DefaultPickRadius   = 2.0
	DefaultSpringRadius = 4.0
	DefaultStepDelta    = 1.0 / 60
)

// World is the subset of engine.World the controller mutates
type World interface {
	CreateParticle(pos vmath.Vec2, mass float64, dynamic bool) (physics.ParticleID, error)
	DeleteParticle(id physics.ParticleID) bool
	MoveParticle(id physics.ParticleID, pos vmath.Vec2) bool
	Particle(id physics.ParticleID) (physics.Particle, bool)
	CreateSpring(a, b physics.ParticleID, stiffness ...float64) (physics.SpringID, error)
	DeleteSpring(id physics.SpringID) bool
	FindParticleNear(point vmath.Vec2, radius float64) (physics.ParticleID, bool)
	FindSpringNear(point vmath.Vec2, radius float64) (physics.SpringID, bool)
	ToggleRunning() engine.State
	Running() bool
	Tick(dt float64)
	Clear()
}

var _ World = (*engine.World)(nil)

// Feedback receives audible cues for user actions
type Feedback interface {
	Play(audio.Sound) bool
}

type nopFeedback struct{}

func (nopFeedback) Play(audio.Sound) bool { return false }

// Controller turns input events into World mutations
// All calls happen on the loop goroutine
type Controller struct {
	world    World
	feedback Feedback
	logger   *log.Logger
	keys     *KeyTable
	mouse    MouseState

	selected   physics.ParticleID
	connecting bool
	dragged    bool

	dynamic bool
	mass    float64

	PickRadius   float64
	SpringRadius float64
	StepDelta    float64
}

// NewController creates a controller creating dynamic particles of the given mass
// A nil feedback or logger is replaced with a no-op or log.Default
func NewController(world World, feedback Feedback, logger *log.Logger, mass float64) *Controller {
	if feedback == nil {
		feedback = nopFeedback{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		world:        world,
		feedback:     feedback,
		logger:       logger,
		keys:         DefaultKeyTable(),
		dynamic:      true,
		mass:         clampMass(mass),
		PickRadius:   DefaultPickRadius,
		SpringRadius: DefaultSpringRadius,
		StepDelta:    DefaultStepDelta,
	}
}

// Handle applies one event and returns false when the application should quit
func (c *Controller) Handle(e Event) bool {
	c.dropStaleSelection()

	switch e.Type {
	case EventWindowClosed:
		return false
	case EventKeyPressed:
		c.handleAction(c.keys.Lookup(e))
	case EventMouseButtonPressed:
		c.mouse.Update(e)
		c.handlePress(e.Button, vmath.V2(e.X, e.Y))
	case EventMouseButtonReleased:
		held := c.mouse.Held
		c.mouse.Update(e)
		if held == e.Button {
			c.handleRelease(e.Button, vmath.V2(e.X, e.Y))
		}
	case EventMouseMoved:
		c.mouse.Update(e)
		c.handleMove(vmath.V2(e.X, e.Y))
	}
	return true
}

func (c *Controller) handlePress(b MouseButton, p vmath.Vec2) {
	hit, onParticle := c.world.FindParticleNear(p, c.PickRadius)

	switch b {
	case ButtonLeft:
		if !onParticle {
			c.deselect()
			c.createParticle(p, c.dynamic)
			return
		}
		if c.selected != 0 && c.selected != hit {
			c.connect(c.selected, hit)
			c.deselect()
			return
		}
		c.selected = hit
		c.connecting = true
		c.dragged = false

	case ButtonMiddle:
		if !onParticle {
			c.createParticle(p, false)
		}

	case ButtonRight:
		if onParticle {
			c.deleteParticle(hit)
			return
		}
		if sid, ok := c.world.FindSpringNear(p, c.SpringRadius); ok {
			c.world.DeleteSpring(sid)
			c.logger.Printf("spring %d deleted", sid)
			c.feedback.Play(audio.SoundDelete)
		}
	}
}

func (c *Controller) handleRelease(b MouseButton, p vmath.Vec2) {
	if b != ButtonLeft || !c.connecting {
		return
	}
	c.connecting = false
	if c.dragged {
		c.dragged = false
		return
	}

	hit, ok := c.world.FindParticleNear(p, c.PickRadius)
	switch {
	case !ok:
		c.deselect()
	case hit != c.selected:
		c.connect(c.selected, hit)
		c.deselect()
	}
}

// handleMove drags a selected static particle while the left button is held
func (c *Controller) handleMove(p vmath.Vec2) {
	if !c.connecting || c.mouse.Held != ButtonLeft {
		return
	}
	sel, ok := c.world.Particle(c.selected)
	if !ok || sel.Dynamic() {
		return
	}
	if c.world.MoveParticle(c.selected, p) {
		c.dragged = true
	}
}

func (c *Controller) handleAction(a Action) {
	switch a {
	case ActionToggleRunning:
		state := c.world.ToggleRunning()
		c.logger.Printf("simulation %s", state)
		c.feedback.Play(audio.SoundToggle)
	case ActionStep:
		if !c.world.Running() && c.StepDelta > 0 {
			c.world.Tick(c.StepDelta)
		}
	case ActionToggleKind:
		c.dynamic = !c.dynamic
		c.feedback.Play(audio.SoundToggle)
	case ActionMassUp:
		c.mass = clampMass(c.mass + MassStep)
	case ActionMassDown:
		c.mass = clampMass(c.mass - MassStep)
	case ActionClear:
		c.deselect()
		c.world.Clear()
		c.logger.Printf("world cleared")
		c.feedback.Play(audio.SoundDelete)
	case ActionDeleteSelected:
		if c.selected != 0 {
			c.deleteParticle(c.selected)
		}
	case ActionDeselect:
		c.deselect()
	}
}

func (c *Controller) createParticle(p vmath.Vec2, dynamic bool) {
	id, err := c.world.CreateParticle(p, c.mass, dynamic)
	if err != nil {
		c.logger.Printf("WARN: create particle: %v", err)
		c.feedback.Play(audio.SoundReject)
		return
	}
	c.logger.Printf("particle %d created at (%.0f, %.0f) dynamic=%t", id, p.X, p.Y, dynamic)
	c.feedback.Play(audio.SoundCreate)
}

func (c *Controller) deleteParticle(id physics.ParticleID) {
	if !c.world.DeleteParticle(id) {
		return
	}
	if c.selected == id {
		c.deselect()
	}
	c.logger.Printf("particle %d deleted", id)
	c.feedback.Play(audio.SoundDelete)
}

// connect creates a spring; invalid references are logged and skipped
func (c *Controller) connect(a, b physics.ParticleID) {
	sid, err := c.world.CreateSpring(a, b)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidReference) || errors.Is(err, physics.ErrInvalidParameter) {
			c.logger.Printf("WARN: spring %d-%d skipped: %v", a, b, err)
		} else {
			c.logger.Printf("ERROR: spring %d-%d: %v", a, b, err)
		}
		c.feedback.Play(audio.SoundReject)
		return
	}
	c.logger.Printf("spring %d connects %d-%d", sid, a, b)
	c.feedback.Play(audio.SoundConnect)
}

func (c *Controller) deselect() {
	c.selected = 0
	c.connecting = false
	c.dragged = false
}

// dropStaleSelection forgets a selection whose particle no longer exists
func (c *Controller) dropStaleSelection() {
	if c.selected == 0 {
		return
	}
	if _, ok := c.world.Particle(c.selected); !ok {
		c.deselect()
	}
}

// Selected returns the selected particle, 0 when none
func (c *Controller) Selected() physics.ParticleID { return c.selected }

// Connecting reports whether a spring is being dragged out of the selection
func (c *Controller) Connecting() bool { return c.connecting && !c.dragged }

// Pointer returns the last known pointer position in world pixels
func (c *Controller) Pointer() vmath.Vec2 { return c.mouse.Position }

// Dynamic reports whether new left-click particles are dynamic
func (c *Controller) Dynamic() bool { return c.dynamic }

// Mass returns the mass used for new particles
func (c *Controller) Mass() float64 { return c.mass }

// ModeName returns "dynamic" or "static" for the status bar
func (c *Controller) ModeName() string {
	if c.dynamic {
		return "dynamic"
	}
	return "static"
}

func clampMass(m float64) float64 {
	switch {
	case m < MinMass:
		return MinMass
	case m > MaxMass:
		return MaxMass
	}
	return m
}
