package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spring-sim/config"
	"github.com/lixenwraith/spring-sim/engine"
	"github.com/lixenwraith/spring-sim/input"
	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/render"
	"github.com/lixenwraith/spring-sim/status"
)

// haloPadding is how far the selection halo extends past the particle radius
const haloPadding = 6.0

// Game owns the world and everything that drives or displays it
// All fields are touched only from the loop goroutine
type Game struct {
	screen     tcell.Screen
	world      *engine.World
	renderer   *render.TerminalRenderer
	translator *input.Translator
	controller *input.Controller
	statusBar  *render.StatusBar
	metrics    status.SimMetrics
	highlight  *render.Highlight
	clock      *engine.FrameClock
	palette    render.Palette
	logger     *log.Logger

	frameInterval time.Duration
	lastSelected  physics.ParticleID

	// FPS window
	frames     int
	fpsStarted time.Time

	summary Summary
}

// gameOptions are startup settings that do not live in the config file
type gameOptions struct {
	CellWidth  float64
	CellHeight float64
	FPS        int
	Time       engine.TimeProvider // nil uses the monotonic clock
}

// NewGame wires a game onto an initialized screen
func NewGame(screen tcell.Screen, cfg *config.Config, feedback input.Feedback, opts gameOptions, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	renderer := render.NewTerminalRenderer(screen, opts.CellWidth, opts.CellHeight)
	world := engine.NewWorld(cfg.EngineParams())
	registry := status.NewRegistry()

	controller := input.NewController(world, feedback, logger, cfg.Physics.ParticleMass)
	controller.StepDelta = 1.0 / float64(opts.FPS)

	g := &Game{
		screen:        screen,
		world:         world,
		renderer:      renderer,
		translator:    input.NewTranslator(renderer),
		controller:    controller,
		statusBar:     render.NewStatusBar(registry),
		metrics:       registry.Sim(),
		highlight:     render.NewHighlight(opts.FPS),
		clock:         engine.NewFrameClock(opts.Time, cfg.Physics.MaxDelta),
		palette:       cfg.Palette(),
		logger:        logger,
		frameInterval: time.Second / time.Duration(opts.FPS),
		fpsStarted:    time.Now(),
	}
	g.summary.Started = time.Now()
	return g
}

// run drives the loop until the user quits
// tcell PollEvent blocks, so events arrive from a dedicated goroutine
func (g *Game) run(onPanic func(any)) {
	events := make(chan tcell.Event, 256)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				onPanic(r)
			}
		}()
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(g.frameInterval)
	defer ticker.Stop()

	g.clock.Restart()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !g.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			g.frame()
		}
	}
}

// handleEvent applies a terminal event and reports whether to keep running
func (g *Game) handleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		g.screen.Sync()
		return true
	}
	for _, e := range g.translator.Translate(ev) {
		if !g.controller.Handle(e) {
			g.logger.Printf("quit requested")
			return false
		}
	}
	return true
}

// frame advances the simulation by the elapsed wall time and redraws
func (g *Game) frame() {
	dt := g.clock.Restart()
	g.world.Step(dt)
	g.updateHighlight()
	g.countFrame()
	g.publish(dt)
	g.draw()
}

func (g *Game) updateHighlight() {
	sel := g.controller.Selected()
	if sel != g.lastSelected {
		g.lastSelected = sel
		if p, ok := g.world.Particle(sel); ok {
			g.highlight.Reset(p.Radius())
		} else {
			g.highlight.Reset(0)
		}
	}
	if p, ok := g.world.Particle(sel); ok {
		g.highlight.SetTarget(p.Radius() + haloPadding)
	} else {
		g.highlight.SetTarget(0)
	}
	g.highlight.Update()
}

func (g *Game) countFrame() {
	g.frames++
	if elapsed := time.Since(g.fpsStarted); elapsed >= time.Second {
		g.metrics.FPS.Store(int64(float64(g.frames) / elapsed.Seconds()))
		g.frames = 0
		g.fpsStarted = time.Now()
	}
}

// publish copies world and controller state into the status registry
func (g *Game) publish(dt float64) {
	particles := g.world.ParticleCount()
	springs := g.world.SpringCount()

	g.metrics.Ticks.Store(int64(g.world.Ticks()))
	g.metrics.Particles.Store(int64(particles))
	g.metrics.Springs.Store(int64(springs))
	g.metrics.Delta.Set(dt)
	g.metrics.SimTime.Set(g.world.SimTime())
	g.metrics.Running.Store(g.world.Running())
	g.metrics.Mode.Store(g.controller.ModeName())
	g.metrics.Mass.Set(g.controller.Mass())

	g.summary.observe(g.world, particles, springs)
}

func (g *Game) draw() {
	overlay := render.Overlay{
		Selected:   g.controller.Selected(),
		HaloRadius: g.highlight.Radius(),
		Connecting: g.controller.Connecting(),
		Pointer:    g.controller.Pointer(),
	}
	render.DrawScene(g.renderer, g.world.Snapshot(), g.palette, overlay)
	g.statusBar.Draw(g.renderer)
	g.renderer.Present()
}
