// Package vox holds a bounded voxel model with a 255-color palette and
// writes it in the MagicaVoxel .vox format.
package vox

import (
	"errors"
	"fmt"
	"image/color"
)

// MaxExtent is the largest size of any axis; coordinates are stored as
// single bytes.
const MaxExtent = 256

var (
	ErrOutOfBounds = errors.New("voxel out of bounds")
	ErrCollision   = errors.New("voxel already occupied")
	ErrColorIndex  = errors.New("palette index 0 is reserved")
)

// Voxel is one solid cell. Color indexes the model palette.
type Voxel struct {
	X, Y, Z uint8
	Color   uint8
}

// Model is a single voxel model. It is not safe for concurrent use.
type Model struct {
	width, height, depth int
	palette              [256]color.RGBA
	voxels               []Voxel
	cells                []uint8 // color per x + width*(y + height*z), 0 is empty
}

// New allocates an empty model. Every extent must lie in [1, MaxExtent].
func New(width, height, depth int) (*Model, error) {
	for _, n := range [...]int{width, height, depth} {
		if n < 1 || n > MaxExtent {
			return nil, fmt.Errorf("model size %dx%dx%d: each axis must be in [1,%d]", width, height, depth, MaxExtent)
		}
	}
	return &Model{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]uint8, width*height*depth),
	}, nil
}

// Size returns the model extents.
func (m *Model) Size() (width, height, depth int) { return m.width, m.height, m.depth }

// SetPaletteColor registers the display color of index.
func (m *Model) SetPaletteColor(index, r, g, b, a uint8) error {
	if index == 0 {
		return ErrColorIndex
	}
	m.palette[index] = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}

// PaletteColor returns the color registered for index.
func (m *Model) PaletteColor(index uint8) color.RGBA { return m.palette[index] }

// AddVoxel inserts a solid voxel. It fails on coordinates outside the model,
// on occupied cells and on color index 0.
func (m *Model) AddVoxel(x, y, z int, colorIndex uint8) error {
	if colorIndex == 0 {
		return fmt.Errorf("voxel (%d,%d,%d): %w", x, y, z, ErrColorIndex)
	}
	if x < 0 || x >= m.width || y < 0 || y >= m.height || z < 0 || z >= m.depth {
		return fmt.Errorf("voxel (%d,%d,%d) outside %dx%dx%d: %w", x, y, z, m.width, m.height, m.depth, ErrOutOfBounds)
	}
	i := m.index(x, y, z)
	if m.cells[i] != 0 {
		return fmt.Errorf("voxel (%d,%d,%d): %w", x, y, z, ErrCollision)
	}
	m.cells[i] = colorIndex
	m.voxels = append(m.voxels, Voxel{X: uint8(x), Y: uint8(y), Z: uint8(z), Color: colorIndex})
	return nil
}

func (m *Model) index(x, y, z int) int {
	return x + m.width*(y+m.height*z)
}

// Len returns the number of voxels.
func (m *Model) Len() int { return len(m.voxels) }

// At returns the color of the voxel at (x, y, z), if any.
func (m *Model) At(x, y, z int) (uint8, bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height || z < 0 || z >= m.depth {
		return 0, false
	}
	c := m.cells[m.index(x, y, z)]
	return c, c != 0
}
