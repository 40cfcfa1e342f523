// Package pipeline runs a full generation: noise, terrain table, column
// heights, voxel model.
package pipeline

import (
	"fmt"
	"image/color"
	"log"

	"tellus/internal/config"
	"tellus/internal/profiling"
	"tellus/internal/vox"
	"tellus/internal/world"
	"tellus/pkg/terrainpack"
)

// Result holds everything a run produced.
type Result struct {
	Noise   *world.NoiseMap
	Colors  *world.ColorMap
	Mesh    *world.MeshMap
	Model   *vox.Model
	Palette map[uint8]color.RGBA
	Timings *profiling.Timings
}

// Run generates a landscape from cfg using the terrains of pack.
func Run(cfg config.WorldGen, pack *terrainpack.Pack) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res := &Result{Timings: &profiling.Timings{}}

	var err error
	func() {
		defer res.Timings.Track("noise.Build")()
		res.Noise, err = cfg.Noise().Build()
	}()
	if err != nil {
		return nil, fmt.Errorf("noise map: %w", err)
	}
	log.Printf("noise map %dx%d built with seed %d", res.Noise.Width(), res.Noise.Height(), res.Noise.Seed())

	res.Colors, res.Palette, err = pack.ColorMap(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("terrain table: %w", err)
	}
	if hasThresholds(res.Colors) {
		func() {
			defer res.Timings.Track("colors.Apply")()
			err = res.Colors.Apply(res.Noise)
		}()
		if err != nil {
			return nil, fmt.Errorf("terrain table: %w", err)
		}
	}

	func() {
		defer res.Timings.Track("mesh.Build")()
		res.Mesh, err = cfg.Mesh(res.Noise, res.Colors).Build()
	}()
	if err != nil {
		return nil, fmt.Errorf("mesh map: %w", err)
	}
	if top := res.Mesh.MaxTop(); top >= cfg.Depth {
		log.Printf("highest column reaches z=%d but the model depth is %d", top, cfg.Depth)
	}

	res.Model, err = vox.New(cfg.Width, cfg.Height, cfg.Depth)
	if err != nil {
		return nil, err
	}
	if err := res.Model.SetPalette(res.Palette); err != nil {
		return nil, err
	}

	func() {
		defer res.Timings.Track("mesh.Render")()
		err = res.Mesh.Render(res.Model)
	}()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	log.Printf("rendered %d voxels in %s (%s)", res.Model.Len(), res.Timings.Total(), res.Timings.TopN(4))
	return res, nil
}

func hasThresholds(c *world.ColorMap) bool {
	for _, t := range c.Terrains() {
		if t.Rule.Kind() == world.RuleThreshold {
			return true
		}
	}
	return false
}
