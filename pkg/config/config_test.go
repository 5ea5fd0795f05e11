package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultSimulationConstants(t *testing.T) {
	cfg := Default()
	if cfg.Simulation.Repulsion != 1500 ||
		cfg.Simulation.Attraction != 0.005 ||
		cfg.Simulation.Damping != 0.85 ||
		cfg.Simulation.CenterForce != 0.01 {
		t.Errorf("unexpected default simulation constants: %+v", cfg.Simulation)
	}
	if cfg.Simulation.MaxTicks != 120 {
		t.Errorf("max ticks = %d, want 120", cfg.Simulation.MaxTicks)
	}
	if cfg.Canvas.Width != 600 || cfg.Canvas.Height != 400 {
		t.Errorf("canvas = %+v, want 600x400", cfg.Canvas)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
canvas:
  width: 800
  height: 600
  margin: 40
simulation:
  damping: 0.9
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 || cfg.Canvas.Margin != 40 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Simulation.Damping != 0.9 {
		t.Errorf("damping = %f, want 0.9", cfg.Simulation.Damping)
	}
	// Untouched sections keep their defaults.
	if cfg.Simulation.Repulsion != 1500 {
		t.Errorf("repulsion = %f, want default 1500", cfg.Simulation.Repulsion)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %s, want default :8080", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"damping >= 1":      func(c *Config) { c.Simulation.Damping = 1.0 },
		"damping zero":      func(c *Config) { c.Simulation.Damping = 0 },
		"negative width":    func(c *Config) { c.Canvas.Width = -10 },
		"zero max ticks":    func(c *Config) { c.Simulation.MaxTicks = 0 },
		"bad log level":     func(c *Config) { c.Logging.Level = "verbose" },
		"margin eats canvas": func(c *Config) { c.Canvas.Margin = 300 },
	}

	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLayoutConfigMapping(t *testing.T) {
	cfg := Default()
	lc := cfg.LayoutConfig()

	if lc.Width != cfg.Canvas.Width || lc.Height != cfg.Canvas.Height || lc.Margin != cfg.Canvas.Margin {
		t.Errorf("geometry mapping wrong: %+v", lc)
	}
	if lc.Repulsion != cfg.Simulation.Repulsion || lc.Damping != cfg.Simulation.Damping {
		t.Errorf("constants mapping wrong: %+v", lc)
	}
}
