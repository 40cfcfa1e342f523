package config

import (
	"encoding/json"
	"fmt"
	"os"

	"tellus/internal/world"
)

// WorldGen holds landscape generation settings.
type WorldGen struct {
	// Model extents. Width and Height are also the noise grid size.
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`

	Scale       float64 `json:"scale"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
	OffsetX     int     `json:"offsetX"`
	OffsetY     int     `json:"offsetY"`
	// Seed is optional; nil draws a random seed per run.
	Seed *int64 `json:"seed,omitempty"`

	ZScale float64 `json:"zscale"`
	Ground int     `json:"ground"`
	Curve  float64 `json:"curve"`

	// TerrainPack names a pack under PackDir; empty uses the built-in pack.
	TerrainPack string `json:"terrainPack"`
	PackDir     string `json:"packDir"`
}

// Default returns the settings of the demo landscape.
func Default() WorldGen {
	seed := int64(0x6576616E)
	return WorldGen{
		Width:       100,
		Height:      100,
		Depth:       40,
		Scale:       20.3,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        &seed,
		ZScale:      20,
		Ground:      20,
		Curve:       world.DefaultCurve,
		PackDir:     "packs",
	}
}

// Load decodes a JSON settings file over Default.
func Load(path string) (WorldGen, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not unmarshal config json: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings the voxel model cares about. Noise and mesh
// parameters are checked again by their own Build calls.
func (c WorldGen) Validate() error {
	for _, axis := range []struct {
		name string
		n    int
	}{{"width", c.Width}, {"height", c.Height}, {"depth", c.Depth}} {
		if axis.n < 1 || axis.n > 256 {
			return fmt.Errorf("config: %s must be in [1,256], got %d", axis.name, axis.n)
		}
	}
	if c.Ground >= c.Depth {
		return fmt.Errorf("config: ground %d does not fit depth %d", c.Ground, c.Depth)
	}
	return nil
}

// Noise returns the noise configuration.
func (c WorldGen) Noise() world.NoiseConfig {
	n := world.NoiseConfig{
		Width:       c.Width,
		Height:      c.Height,
		Scale:       c.Scale,
		Octaves:     c.Octaves,
		Persistence: c.Persistence,
		Lacunarity:  c.Lacunarity,
		Offset:      world.Vector2D{X: c.OffsetX, Y: c.OffsetY},
	}
	if c.Seed != nil {
		n = n.WithSeed(*c.Seed)
	}
	return n
}

// Mesh returns the mesh configuration for the given maps.
func (c WorldGen) Mesh(noise *world.NoiseMap, colors *world.ColorMap) world.MeshConfig {
	return world.MeshConfig{
		ZScale: c.ZScale,
		Ground: c.Ground,
		Curve:  c.Curve,
		Noise:  noise,
		Colors: colors,
	}
}
