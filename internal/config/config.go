package config

import (
	"errors"
	"fmt"
	"os"

	"collide3d/internal/physics"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Viewer  ViewerConfig  `yaml:"viewer"`
}

type PhysicsConfig struct {
	CellSize         float32 `yaml:"cell_size"`
	ContactMargin    float32 `yaml:"contact_margin"`
	MaxCellsPerShape int     `yaml:"max_cells_per_shape"`
	StatsInterval    int     `yaml:"stats_interval"`
}

type ViewerConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Scene      string `yaml:"scene"`
	Wireframes bool   `yaml:"wireframes"`
	// DemoShapes is the size of the generated scene used when Scene is empty.
	DemoShapes int   `yaml:"demo_shapes"`
	Seed       int64 `yaml:"seed"`
}

func Default() Config {
	opts := physics.DefaultOptions()
	return Config{
		Physics: PhysicsConfig{
			CellSize:         opts.CellSize,
			ContactMargin:    opts.ContactMargin,
			MaxCellsPerShape: opts.MaxCellsPerShape,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			FPS:        120,
			Wireframes: true,
			DemoShapes: 40,
			Seed:       1,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Physics.CellSize <= 0:
		return fmt.Errorf("physics.cell_size must be positive, got %v", c.Physics.CellSize)
	case c.Physics.ContactMargin < 0:
		return fmt.Errorf("physics.contact_margin must not be negative, got %v", c.Physics.ContactMargin)
	case c.Physics.MaxCellsPerShape <= 0:
		return fmt.Errorf("physics.max_cells_per_shape must be positive, got %d", c.Physics.MaxCellsPerShape)
	case c.Physics.StatsInterval < 0:
		return fmt.Errorf("physics.stats_interval must not be negative, got %d", c.Physics.StatsInterval)
	case c.Viewer.Width <= 0 || c.Viewer.Height <= 0:
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	return nil
}

// Options converts the physics section for physics.NewWorld.
func (p PhysicsConfig) Options() physics.Options {
	return physics.Options{
		CellSize:         p.CellSize,
		ContactMargin:    p.ContactMargin,
		MaxCellsPerShape: p.MaxCellsPerShape,
		StatsInterval:    p.StatsInterval,
	}
}
