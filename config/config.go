package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/spring-sim/engine"
	"github.com/lixenwraith/spring-sim/physics"
	"github.com/lixenwraith/spring-sim/render"
	"github.com/lixenwraith/spring-sim/vmath"
)

// DefaultPath is read when neither -config nor SPRING_SIM_CONFIG is given
const DefaultPath = "config.toml"

// Environment overrides
const (
	EnvConfigPath   = "SPRING_SIM_CONFIG"
	EnvAudioEnabled = "SPRING_SIM_AUDIO_ENABLED"
	EnvMaxDelta     = "SPRING_SIM_MAX_DT"
)

// RGB is an 8-bit color triple, written as [r, g, b] in TOML
type RGB [3]uint8

// Colors holds every configurable color
type Colors struct {
	Background      RGB `toml:"background"`
	DynamicParticle RGB `toml:"dynamic_particle"`
	StaticParticle  RGB `toml:"static_particle"`
	Spring          RGB `toml:"spring"`
	SpringStretched RGB `toml:"spring_stretched"`
	Selection       RGB `toml:"selection"`
}

// Physics holds simulation constants
type Physics struct {
	Gravity      [2]float64 `toml:"gravity"`
	Damping      float64    `toml:"damping"`
	Stiffness    float64    `toml:"stiffness"`
	MaxDelta     float64    `toml:"max_dt"` // seconds, 0 disables clamping
	ParticleMass float64    `toml:"particle_mass"`
}

// Audio controls interaction sound cues
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

// Config is built once at startup and passed explicitly to its consumers
type Config struct {
	Color   Colors  `toml:"color"`
	Physics Physics `toml:"physics"`
	Audio   Audio   `toml:"audio"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Color: Colors{
			Background:      RGB{0, 0, 0},
			DynamicParticle: RGB{0, 255, 255},
			StaticParticle:  RGB{255, 0, 0},
			Spring:          RGB{0, 255, 255},
			SpringStretched: RGB{255, 255, 0},
			Selection:       RGB{255, 255, 255},
		},
		Physics: Physics{
			Gravity:      [2]float64{0, 2500},
			Damping:      physics.DefaultDamping,
			Stiffness:    physics.DefaultStiffness,
			MaxDelta:     0.05,
			ParticleMass: 8,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// ConfigLoadError reports a missing or unparsable config file
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// Load reads path and decodes it over the defaults
// Keys absent from the file keep their default value
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes TOML data over the defaults; path is used for error messages only
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			err = errors.Wrapf(err, "line %d column %d", row, col)
		}
		return nil, &ConfigLoadError{Path: path, Err: err}
	}
	return cfg, nil
}

// LoadOrDefault never fails: load errors are logged as warnings and defaults returned
func LoadOrDefault(path string, logger *log.Logger) *Config {
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := Load(path)
	if err != nil {
		logger.Printf("WARN: %v, using default config", err)
		cfg = Default()
	}
	cfg.Validate(logger)
	return cfg
}

// Validate replaces values the simulation cannot run with by their defaults
func (c *Config) Validate(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	def := Default()

	if !(c.Physics.Damping > 0 && c.Physics.Damping <= 1) {
		logger.Printf("WARN: physics.damping %v outside (0,1], using %v", c.Physics.Damping, def.Physics.Damping)
		c.Physics.Damping = def.Physics.Damping
	}
	if !(c.Physics.Stiffness > 0) {
		logger.Printf("WARN: physics.stiffness %v not positive, using %v", c.Physics.Stiffness, def.Physics.Stiffness)
		c.Physics.Stiffness = def.Physics.Stiffness
	}
	if !(c.Physics.ParticleMass > 0) {
		logger.Printf("WARN: physics.particle_mass %v not positive, using %v", c.Physics.ParticleMass, def.Physics.ParticleMass)
		c.Physics.ParticleMass = def.Physics.ParticleMass
	}
	if c.Physics.MaxDelta < 0 {
		logger.Printf("WARN: physics.max_dt %v negative, clamping disabled", c.Physics.MaxDelta)
		c.Physics.MaxDelta = 0
	}
	if c.Audio.Volume < 0 {
		c.Audio.Volume = 0
	}
	if c.Audio.Volume > 1 {
		c.Audio.Volume = 1
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment
// A missing file is not an error
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}

// ResolvePath picks the config path: flag value, then SPRING_SIM_CONFIG, then DefaultPath
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// ApplyEnv overrides config values from environment variables
func (c *Config) ApplyEnv(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		} else {
			logger.Printf("WARN: %s=%q is not a bool", EnvAudioEnabled, enabled)
		}
	}
	if maxDt := os.Getenv(EnvMaxDelta); maxDt != "" {
		if val, err := strconv.ParseFloat(maxDt, 64); err == nil && val >= 0 {
			c.Physics.MaxDelta = val
		} else {
			logger.Printf("WARN: %s=%q is not a non-negative number", EnvMaxDelta, maxDt)
		}
	}
}

// EngineParams converts the physics section for the world
func (c *Config) EngineParams() engine.Params {
	return engine.Params{
		Gravity:   vmath.V2(c.Physics.Gravity[0], c.Physics.Gravity[1]),
		Damping:   c.Physics.Damping,
		Stiffness: c.Physics.Stiffness,
	}
}

// Palette converts the color section for the renderer
func (c *Config) Palette() render.Palette {
	return render.Palette{
		Background:      render.FromArray(c.Color.Background),
		DynamicParticle: render.FromArray(c.Color.DynamicParticle),
		StaticParticle:  render.FromArray(c.Color.StaticParticle),
		Spring:          render.FromArray(c.Color.Spring),
		SpringStretched: render.FromArray(c.Color.SpringStretched),
		Selection:       render.FromArray(c.Color.Selection),
	}
}
