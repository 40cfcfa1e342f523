package world

import "math"

// VoxelStore receives the voxels emitted by MeshMap.Render. AddVoxel must
// fail for coordinates outside the model and for occupied cells.
type VoxelStore interface {
	AddVoxel(x, y, z int, colorIndex uint8) error
}

// MeshConfig collects the inputs of a MeshMap. Noise and Colors are
// borrowed: the caller owns them and must not change them until Render
// has returned.
type MeshConfig struct {
	ZScale float64 // multiplier applied to the curved height
	Ground int     // z of the lowest voxel in every column
	Curve  float64 // height curve constant, 0 selects DefaultCurve

	Noise  *NoiseMap
	Colors *ColorMap
}

// MeshMap holds the top z of every column.
type MeshMap struct {
	width, height int
	ground        int
	tops          []int

	colors   *ColorMap
	rendered bool
}

// Build checks the configuration and computes the column tops.
func (c MeshConfig) Build() (*MeshMap, error) {
	if c.Noise == nil {
		return nil, configErrorf("mesh.noise", "noise map is required")
	}
	if c.Colors == nil {
		return nil, configErrorf("mesh.colors", "color map is required")
	}
	if c.Noise.Width() != c.Colors.Width() || c.Noise.Height() != c.Colors.Height() {
		return nil, configErrorf("mesh.size", "noise map is %dx%d, color map is %dx%d",
			c.Noise.Width(), c.Noise.Height(), c.Colors.Width(), c.Colors.Height())
	}
	if c.ZScale < 0 || math.IsNaN(c.ZScale) || math.IsInf(c.ZScale, 0) {
		return nil, configErrorf("mesh.zscale", "must be a finite value >= 0, got %v", c.ZScale)
	}
	if c.Ground < 0 {
		return nil, configErrorf("mesh.ground", "must not be negative, got %d", c.Ground)
	}
	// HeightCurve peaks at ln 2 on [0,1]; every top must fit an int32.
	if math.Ln2*c.ZScale+float64(c.Ground) > math.MaxInt32 {
		return nil, configErrorf("mesh.zscale", "column tops overflow with zscale %v and ground %d", c.ZScale, c.Ground)
	}
	curve := c.Curve
	if curve == 0 {
		curve = DefaultCurve
	}
	if curve < MinCurve || curve > MaxCurve {
		return nil, configErrorf("mesh.curve", "must lie in [%g,%g], got %v", MinCurve, MaxCurve, curve)
	}

	w, h := c.Noise.Width(), c.Noise.Height()
	m := &MeshMap{
		width:  w,
		height: h,
		ground: c.Ground,
		tops:   make([]int, w*h),
		colors: c.Colors,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			raw := c.Noise.At(x, y)
			z := int(math.Floor(HeightCurve(raw, curve)*c.ZScale)) + c.Ground
			m.tops[y*w+x] = z
		}
	}
	return m, nil
}

func (m *MeshMap) Width() int  { return m.width }
func (m *MeshMap) Height() int { return m.height }
func (m *MeshMap) Ground() int { return m.ground }

// ColumnTop returns the z of the highest voxel at (x, y).
func (m *MeshMap) ColumnTop(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic("world: mesh map coordinate out of range")
	}
	return m.tops[y*m.width+x]
}

// MaxTop returns the highest column top; a store needs a depth of at
// least MaxTop()+1.
func (m *MeshMap) MaxTop() int {
	top := m.ground
	for _, z := range m.tops {
		if z > top {
			top = z
		}
	}
	return top
}

// Render emits every column into store, top down to ground, coloring each
// level by Classify(z - ground). The first classification or store failure
// stops the render; voxels already added stay in the store.
func (m *MeshMap) Render(store VoxelStore) error {
	if m.rendered {
		return ErrAlreadyRendered
	}
	if store == nil {
		return configErrorf("mesh.store", "voxel store is required")
	}
	m.rendered = true

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			top := m.tops[y*m.width+x]
			if top < m.ground {
				return configErrorf("mesh.tops", "column (%d,%d) tops out at z=%d below ground %d", x, y, top, m.ground)
			}
			for z := top; z >= m.ground; z-- {
				level := z - m.ground
				t, ok := m.colors.Classify(level)
				if !ok {
					return &ClassificationError{X: x, Y: y, Level: level}
				}
				if err := store.AddVoxel(x, y, z, t.ColorIndex); err != nil {
					return &CapacityError{X: x, Y: y, Z: z, Err: err}
				}
			}
		}
	}
	return nil
}
