// Package config loads and validates the service configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-codemap/pkg/layout"
)

// Config is the full service configuration.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CanvasConfig is the geometry nodes are placed and clamped into.
type CanvasConfig struct {
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
	Margin float64 `yaml:"margin" validate:"gte=0"`
}

// SimulationConfig holds the force constants and the tick budget. Damping
// must stay below 1 so every run converges.
type SimulationConfig struct {
	Repulsion   float64 `yaml:"repulsion" validate:"gt=0"`
	Attraction  float64 `yaml:"attraction" validate:"gt=0"`
	Damping     float64 `yaml:"damping" validate:"gt=0,lt=1"`
	CenterForce float64 `yaml:"center_force" validate:"gt=0"`
	MaxTicks    int     `yaml:"max_ticks" validate:"gt=0"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr                string `yaml:"addr" validate:"required"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds" validate:"gt=0"`
	ShutdownSeconds     int    `yaml:"shutdown_seconds" validate:"gt=0"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  600,
			Height: 400,
			Margin: 20,
		},
		Simulation: SimulationConfig{
			Repulsion:   1500,
			Attraction:  0.005,
			Damping:     0.85,
			CenterForce: 0.01,
			MaxTicks:    layout.DefaultMaxTicks,
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			ShutdownSeconds:     30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints plus the cross-field requirement that the
// margin leaves a usable interior on both axes.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if 2*c.Canvas.Margin >= c.Canvas.Width || 2*c.Canvas.Margin >= c.Canvas.Height {
		return fmt.Errorf("margin %.1f leaves no interior on a %.0fx%.0f canvas",
			c.Canvas.Margin, c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

// LayoutConfig maps the canvas and simulation sections onto the engine
// config.
func (c Config) LayoutConfig() layout.Config {
	return layout.Config{
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		Margin:      c.Canvas.Margin,
		Repulsion:   c.Simulation.Repulsion,
		Attraction:  c.Simulation.Attraction,
		Damping:     c.Simulation.Damping,
		CenterForce: c.Simulation.CenterForce,
	}
}
