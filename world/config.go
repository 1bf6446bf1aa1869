package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentville/core"
)

// Layers holds the five parallel per-cell code layers, each row-major with
// exactly Width*Height entries. Codes are opaque strings resolved through
// the matching legend; the collision layer is interpreted directly ("0" or
// "" means walkable, anything else blocks).
type Layers struct {
	Collision []string `yaml:"collision"`
	Sector    []string `yaml:"sector"`
	Arena     []string `yaml:"arena"`
	Object    []string `yaml:"object"`
	Spawn     []string `yaml:"spawn"`
}

// Legends maps layer codes to display names. A code missing from its legend
// resolves to the empty string; that is not an error.
type Legends struct {
	Sector map[string]string `yaml:"sector"`
	Arena  map[string]string `yaml:"arena"`
	Object map[string]string `yaml:"object"`
	Spawn  map[string]string `yaml:"spawn"`
}

// Config is the world configuration bundle. It is an explicit value built
// by the caller (directly or via LoadConfig); the grid keeps no ambient
// global state.
type Config struct {
	// Name is the single global world name forming the first address segment.
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TileSize is the pixel edge length of one square tile.
	TileSize int `yaml:"tile_size"`
	// SpecialConstraint is carried through unexamined for downstream tools.
	SpecialConstraint string `yaml:"special_constraint"`

	Layers  Layers  `yaml:"layers"`
	Legends Legends `yaml:"legends"`
}

// LoadConfig reads a configuration bundle from a yaml file and validates it.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read world config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, &core.ConfigError{Layer: "bundle", Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the bundle's mutual consistency. Every violation is a
// ConfigError naming the offending layer.
func (c Config) Validate() error {
	if c.Name == "" {
		return &core.ConfigError{Layer: "meta", Reason: "world name must not be empty"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &core.ConfigError{Layer: "meta", Reason: fmt.Sprintf("grid extents %dx%d must be positive", c.Width, c.Height)}
	}
	if c.TileSize <= 0 {
		return &core.ConfigError{Layer: "meta", Reason: fmt.Sprintf("tile size %d must be positive", c.TileSize)}
	}
	want := c.Width * c.Height
	for _, l := range []struct {
		name  string
		cells []string
	}{
		{"collision", c.Layers.Collision},
		{"sector", c.Layers.Sector},
		{"arena", c.Layers.Arena},
		{"object", c.Layers.Object},
		{"spawn", c.Layers.Spawn},
	} {
		if len(l.cells) != want {
			return &core.ConfigError{
				Layer:  l.name,
				Reason: fmt.Sprintf("has %d cells, want %d (%dx%d)", len(l.cells), want, c.Width, c.Height),
			}
		}
	}
	return nil
}
