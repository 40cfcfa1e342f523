package vox

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const formatVersion = 150

type chunk struct {
	id       [4]byte
	content  []byte
	children []chunk
}

func (c chunk) size() int {
	n := 12 + len(c.content)
	for _, ch := range c.children {
		n += ch.size()
	}
	return n
}

func (c chunk) childrenSize() int {
	n := 0
	for _, ch := range c.children {
		n += ch.size()
	}
	return n
}

func (c chunk) appendTo(b []byte) []byte {
	b = append(b, c.id[:]...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(c.content)))
	b = binary.LittleEndian.AppendUint32(b, uint32(c.childrenSize()))
	b = append(b, c.content...)
	for _, ch := range c.children {
		b = ch.appendTo(b)
	}
	return b
}

// Encode returns the model as a .vox file.
func (m *Model) Encode() []byte {
	size := make([]byte, 0, 12)
	for _, n := range [...]int{m.width, m.height, m.depth} {
		size = binary.LittleEndian.AppendUint32(size, uint32(n))
	}

	xyzi := make([]byte, 0, 4+4*len(m.voxels))
	xyzi = binary.LittleEndian.AppendUint32(xyzi, uint32(len(m.voxels)))
	for _, v := range m.voxels {
		xyzi = append(xyzi, v.X, v.Y, v.Z, v.Color)
	}

	// entry i of the stored palette is color index i+1
	rgba := make([]byte, 0, 256*4)
	for i := 1; i < 256; i++ {
		c := m.palette[i]
		rgba = append(rgba, c.R, c.G, c.B, c.A)
	}
	rgba = append(rgba, 0, 0, 0, 0)

	root := chunk{
		id: [4]byte{'M', 'A', 'I', 'N'},
		children: []chunk{
			{id: [4]byte{'S', 'I', 'Z', 'E'}, content: size},
			{id: [4]byte{'X', 'Y', 'Z', 'I'}, content: xyzi},
			{id: [4]byte{'R', 'G', 'B', 'A'}, content: rgba},
		},
	}

	out := make([]byte, 0, 8+root.size())
	out = append(out, "VOX "...)
	out = binary.LittleEndian.AppendUint32(out, formatVersion)
	return root.appendTo(out)
}

// WriteTo writes the encoded model to w.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m.Encode())
	return int64(n), err
}

// Save writes the model to path.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create vox file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if _, err := m.WriteTo(bw); err != nil {
		f.Close()
		return fmt.Errorf("could not write vox file: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("could not write vox file: %w", err)
	}
	return f.Close()
}
