package world

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// octaveSpread bounds the random phase offset drawn for each octave.
const octaveSpread = 100000

// NoiseConfig describes a fractal noise field. It is a plain value: set the
// fields, then call Build once.
type NoiseConfig struct {
	Width, Height int

	Scale       float64 // world-to-noise divisor, must be > 0
	Octaves     int
	Persistence float64 // amplitude multiplier per octave
	Lacunarity  float64 // frequency multiplier per octave
	Offset      Vector2D

	// Seed is used only when Seeded is set. Otherwise Build draws one.
	Seed   int64
	Seeded bool
}

// DefaultNoiseConfig returns the settings used by the demo landscape.
func DefaultNoiseConfig(width, height int) NoiseConfig {
	return NoiseConfig{
		Width:       width,
		Height:      height,
		Scale:       20.3,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// WithSeed returns a copy of c with an explicit seed.
func (c NoiseConfig) WithSeed(seed int64) NoiseConfig {
	c.Seed = seed
	c.Seeded = true
	return c
}

// NoiseMap is a normalized height field in [0,1]. It is read-only once
// returned by Build.
type NoiseMap struct {
	width, height int
	seed          int64
	min, max      float64
	cells         []float64 // row-major, y*width + x
}

// Build validates c and synthesizes the field. Either a complete map or an
// error is returned, never a partial map.
func (c NoiseConfig) Build() (*NoiseMap, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, configErrorf("noise.size", "dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return nil, configErrorf("noise.scale", "must be greater than zero, got %v", c.Scale)
	}
	if c.Octaves < 0 {
		return nil, configErrorf("noise.octaves", "must not be negative, got %d", c.Octaves)
	}

	seed := c.Seed
	if !c.Seeded {
		seed = int64(rand.Uint32())
	}

	offsets := octaveOffsets(seed, c.Octaves, c.Offset)
	noise := opensimplex.New(seed)

	m := &NoiseMap{
		width:  c.Width,
		height: c.Height,
		seed:   seed,
		min:    math.Inf(1),
		max:    math.Inf(-1),
		cells:  make([]float64, c.Width*c.Height),
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := mgl64.Vec2{float64(x), float64(y)}
			amplitude := 1.0
			frequency := 1.0
			sum := 0.0
			for _, off := range offsets {
				s := p.Mul(frequency / c.Scale).Add(off)
				sum += noise.Eval2(s.X(), s.Y()) * amplitude
				amplitude *= c.Persistence
				frequency *= c.Lacunarity
			}
			if sum < m.min {
				m.min = sum
			}
			if sum > m.max {
				m.max = sum
			}
			m.cells[y*c.Width+x] = sum
		}
	}

	m.normalize()
	return m, nil
}

// octaveOffsets draws one phase offset per octave from a PCG stream, so the
// same seed always yields the same offsets.
func octaveOffsets(seed int64, octaves int, base Vector2D) []mgl64.Vec2 {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15))
	out := make([]mgl64.Vec2, 0, octaves)
	for range octaves {
		v := Vector2D{
			X: rng.IntN(2*octaveSpread) - octaveSpread,
			Y: rng.IntN(2*octaveSpread) - octaveSpread,
		}.Add(base)
		out = append(out, mgl64.Vec2{float64(v.X), float64(v.Y)})
	}
	return out
}

// normalize remaps cells from [min,max] to [0,1]. A flat or non-finite
// range maps every cell to 0.
func (m *NoiseMap) normalize() {
	span := m.max - m.min
	if !(span > 0) || math.IsInf(span, 0) {
		clear(m.cells)
		return
	}
	for i, v := range m.cells {
		m.cells[i] = inverseLerp(m.min, m.max, v)
	}
}

func inverseLerp(a, b, v float64) float64 {
	t := (v - a) / (b - a)
	// guard against rounding just outside the range
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (m *NoiseMap) Width() int  { return m.width }
func (m *NoiseMap) Height() int { return m.height }

// Seed returns the seed the map was built with, explicit or drawn.
func (m *NoiseMap) Seed() int64 { return m.seed }

// Bounds returns the raw noise range found before normalization.
func (m *NoiseMap) Bounds() (min, max float64) { return m.min, m.max }

// At returns the normalized height at (x, y). It panics outside the grid.
func (m *NoiseMap) At(x, y int) float64 {
	return m.cells[m.index(x, y)]
}

func (m *NoiseMap) index(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic("world: noise map coordinate out of range")
	}
	return y*m.width + x
}
