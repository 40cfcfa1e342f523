package world

import "sort"

// ColorMap is the terrain table plus, after Apply, the color of every cell
// of a threshold-classified noise map.
type ColorMap struct {
	width, height int
	terrains      []Terrain
	cells         []uint8
}

// NewColorMap returns an empty table for a width x height grid.
func NewColorMap(width, height int) *ColorMap {
	return &ColorMap{width: width, height: height}
}

func (c *ColorMap) Width() int  { return c.width }
func (c *ColorMap) Height() int { return c.height }

// Add inserts t and keeps the table ascending by rule key. Bands with equal
// keys keep insertion order. Overlap between bands is not checked.
func (c *ColorMap) Add(t Terrain) error {
	if err := t.validate(); err != nil {
		return err
	}
	c.terrains = append(c.terrains, t)
	sort.SliceStable(c.terrains, func(i, j int) bool {
		return c.terrains[i].Rule.Key() < c.terrains[j].Rule.Key()
	})
	return nil
}

// Terrains returns a copy of the table in lookup order.
func (c *ColorMap) Terrains() []Terrain {
	out := make([]Terrain, len(c.terrains))
	copy(out, c.terrains)
	return out
}

// ClassifyHeight returns the first threshold band whose bound is above h.
func (c *ColorMap) ClassifyHeight(h float64) (Terrain, bool) {
	return c.first(RuleThreshold, h)
}

// Classify returns the first level band containing level.
func (c *ColorMap) Classify(level int) (Terrain, bool) {
	return c.first(RuleLevelRange, float64(level))
}

func (c *ColorMap) first(kind RuleKind, sample float64) (Terrain, bool) {
	for _, t := range c.terrains {
		if t.Rule.kind == kind && t.Rule.Matches(sample) {
			return t, true
		}
	}
	return Terrain{}, false
}

// Apply colors every cell of m by threshold. Cells no band covers keep
// index 0; the grid is still stored and a *ClassificationError describing
// the first gap is returned.
func (c *ColorMap) Apply(m *NoiseMap) error {
	if m == nil {
		return configErrorf("colors.noise", "noise map is required")
	}
	if m.Width() != c.width || m.Height() != c.height {
		return configErrorf("colors.size", "color map is %dx%d, noise map is %dx%d", c.width, c.height, m.Width(), m.Height())
	}

	cells := make([]uint8, c.width*c.height)
	var gap *ClassificationError
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			h := m.At(x, y)
			t, ok := c.ClassifyHeight(h)
			if ok {
				cells[y*c.width+x] = t.ColorIndex
				continue
			}
			if gap == nil {
				gap = &ClassificationError{X: x, Y: y, Height: h, Threshold: true}
			}
			gap.Gaps++
		}
	}
	c.cells = cells
	if gap != nil {
		return gap
	}
	return nil
}

// IndexAt returns the applied color of (x, y), 0 if Apply never ran or
// the cell was not covered.
func (c *ColorMap) IndexAt(x, y int) uint8 {
	if c.cells == nil || x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.cells[y*c.width+x]
}
