package vox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewBounds(t *testing.T) {
	if _, err := New(0, 10, 10); err == nil {
		t.Errorf("expected error for zero width")
	}
	if _, err := New(10, 10, 257); err == nil {
		t.Errorf("expected error for depth 257")
	}
	m, err := New(256, 256, 256)
	if err != nil {
		t.Fatalf("max size rejected: %v", err)
	}
	if w, h, d := m.Size(); w != 256 || h != 256 || d != 256 {
		t.Errorf("Size() = %d,%d,%d", w, h, d)
	}
}

func TestAddVoxel(t *testing.T) {
	m, err := New(4, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddVoxel(1, 2, 3, 5); err != nil {
		t.Fatalf("AddVoxel: %v", err)
	}
	if c, ok := m.At(1, 2, 3); !ok || c != 5 {
		t.Errorf("At(1,2,3) = %d,%v, expected 5,true", c, ok)
	}
	if _, ok := m.At(0, 0, 0); ok {
		t.Errorf("At(0,0,0) reported a voxel")
	}

	tests := []struct {
		name    string
		x, y, z int
		color   uint8
		want    error
	}{
		{"collision", 1, 2, 3, 7, ErrCollision},
		{"x too large", 4, 0, 0, 1, ErrOutOfBounds},
		{"negative y", 0, -1, 0, 1, ErrOutOfBounds},
		{"z too large", 0, 0, 4, 1, ErrOutOfBounds},
		{"reserved color", 0, 0, 0, 0, ErrColorIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.AddVoxel(tt.x, tt.y, tt.z, tt.color); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if m.Len() != 1 {
		t.Errorf("rejected voxels were stored: Len() = %d", m.Len())
	}
}

func TestAtFilledModel(t *testing.T) {
	m, _ := New(8, 8, 8)
	for z := 0; z < 8; z++ {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if err := m.AddVoxel(x, y, z, uint8(x+y+z+1)); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	if m.Len() != 512 {
		t.Fatalf("Len() = %d, expected 512", m.Len())
	}
	for _, p := range [][3]int{{0, 0, 0}, {7, 0, 0}, {0, 7, 0}, {0, 0, 7}, {3, 5, 6}, {7, 7, 7}} {
		want := uint8(p[0] + p[1] + p[2] + 1)
		if c, ok := m.At(p[0], p[1], p[2]); !ok || c != want {
			t.Errorf("At%v = %d,%v, expected %d,true", p, c, ok, want)
		}
	}
	if _, ok := m.At(8, 0, 0); ok {
		t.Errorf("At outside the model reported a voxel")
	}
}

func TestSetPaletteColor(t *testing.T) {
	m, _ := New(1, 1, 1)
	if err := m.SetPaletteColor(0, 1, 2, 3, 4); !errors.Is(err, ErrColorIndex) {
		t.Errorf("expected ErrColorIndex, got %v", err)
	}
	if err := m.SetPaletteColor(255, 1, 2, 3, 4); err != nil {
		t.Fatal(err)
	}
	if c := m.PaletteColor(255); c != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("PaletteColor(255) = %v", c)
	}
}

func TestEncodeLayout(t *testing.T) {
	m, _ := New(3, 2, 5)
	_ = m.SetPaletteColor(1, 91, 118, 147, 255)
	_ = m.AddVoxel(0, 1, 4, 1)
	_ = m.AddVoxel(2, 0, 0, 1)

	data := m.Encode()
	le := binary.LittleEndian

	if string(data[0:4]) != "VOX " || le.Uint32(data[4:8]) != formatVersion {
		t.Fatalf("bad header: %q %d", data[0:4], le.Uint32(data[4:8]))
	}
	if string(data[8:12]) != "MAIN" || le.Uint32(data[12:16]) != 0 {
		t.Fatalf("bad MAIN chunk header")
	}
	children := int(le.Uint32(data[16:20]))
	if children != len(data)-20 {
		t.Errorf("MAIN children size = %d, expected %d", children, len(data)-20)
	}

	size := data[20:]
	if string(size[0:4]) != "SIZE" || le.Uint32(size[4:8]) != 12 {
		t.Fatalf("bad SIZE chunk")
	}
	if x, y, z := le.Uint32(size[12:16]), le.Uint32(size[16:20]), le.Uint32(size[20:24]); x != 3 || y != 2 || z != 5 {
		t.Errorf("SIZE = %d,%d,%d", x, y, z)
	}

	xyzi := size[24:]
	if string(xyzi[0:4]) != "XYZI" || le.Uint32(xyzi[4:8]) != 4+2*4 {
		t.Fatalf("bad XYZI chunk")
	}
	if n := le.Uint32(xyzi[12:16]); n != 2 {
		t.Errorf("voxel count = %d", n)
	}
	if !bytes.Equal(xyzi[16:24], []byte{0, 1, 4, 1, 2, 0, 0, 1}) {
		t.Errorf("voxel payload = %v", xyzi[16:24])
	}

	rgba := xyzi[24:]
	if string(rgba[0:4]) != "RGBA" || le.Uint32(rgba[4:8]) != 1024 {
		t.Fatalf("bad RGBA chunk")
	}
	if !bytes.Equal(rgba[12:16], []byte{91, 118, 147, 255}) {
		t.Errorf("palette entry for index 1 = %v", rgba[12:16])
	}
	if len(rgba) != 12+1024 {
		t.Errorf("trailing bytes after RGBA chunk: %d", len(rgba)-12-1024)
	}
}

func TestSave(t *testing.T) {
	m, _ := New(2, 2, 2)
	_ = m.AddVoxel(1, 1, 1, 3)
	path := filepath.Join(t.TempDir(), "out.vox")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, m.Encode()) {
		t.Errorf("saved file differs from Encode output")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#5b7693", color.RGBA{91, 118, 147, 255}, true},
		{"#5B769380", color.RGBA{91, 118, 147, 128}, true},
		{"SteelBlue", color.RGBA{70, 130, 180, 255}, true},
		{" white ", color.RGBA{255, 255, 255, 255}, true},
		{"#123", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"no-such-color", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}
