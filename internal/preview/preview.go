// Package preview draws a top-down, hill-shaded image of a column map.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"

	"tellus/internal/world"
)

// light comes from the north-west, above the horizon.
var light = mgl64.Vec3{-1, -1, 2}.Normalize()

// ambient is the minimum brightness of a face turned away from the light.
const ambient = 0.35

// Image renders one pixel per column, colored by the terrain of its top
// level and shaded by slope, then scaled up by factor.
func Image(mesh *world.MeshMap, colors *world.ColorMap, palette map[uint8]color.RGBA, factor int) *image.RGBA {
	w, h := mesh.Width(), mesh.Height()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			top := mesh.ColumnTop(x, y)
			base := color.RGBA{A: 255}
			if t, ok := colors.Classify(top - mesh.Ground()); ok {
				base = palette[t.ColorIndex]
			}
			src.SetRGBA(x, y, shade(base, brightness(normalAt(mesh, x, y))))
		}
	}
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*factor, h*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// normalAt estimates the surface normal from the neighboring column tops.
func normalAt(mesh *world.MeshMap, x, y int) mgl64.Vec3 {
	height := func(x, y int) float64 {
		x = clamp(x, 0, mesh.Width()-1)
		y = clamp(y, 0, mesh.Height()-1)
		return float64(mesh.ColumnTop(x, y))
	}
	dx := mgl64.Vec3{2, 0, height(x+1, y) - height(x-1, y)}
	dy := mgl64.Vec3{0, 2, height(x, y+1) - height(x, y-1)}
	return dx.Cross(dy).Normalize()
}

func brightness(n mgl64.Vec3) float64 {
	d := n.Dot(light)
	if d < 0 {
		d = 0
	}
	return ambient + (1-ambient)*d
}

func shade(c color.RGBA, k float64) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * k
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("could not encode preview: %w", err)
	}
	return f.Close()
}
