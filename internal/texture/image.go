package texture

import (
	"fmt"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

// PixelBuffer is one 2D surface of an Image. Pix is a view into the
// image's backing store holding SlicePitch bytes.
type PixelBuffer struct {
	Width      int
	Height     int
	Format     pixfmt.Format
	RowPitch   int
	SlicePitch int
	Pix        []byte
}

// Row returns the bytes of pitch row y. For compressed formats a row is
// one row of 4x4 blocks.
func (b *PixelBuffer) Row(y int) []byte {
	return b.Pix[y*b.RowPitch : (y+1)*b.RowPitch]
}

// Image is a mip, array and depth indexed collection of surfaces backed
// by one contiguous allocation.
type Image struct {
	info    Info
	pitch   pixfmt.PitchFlags
	pix     []byte
	buffers []PixelBuffer
	// mipStart is the index of the first slice of each mip of a volume.
	mipStart []int
}

// New allocates a zeroed image of shape info.
func New(info Info, flags pixfmt.PitchFlags) (*Image, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	buffers := surfaces(info, flags)
	total, err := sizeOf(info, buffers)
	if err != nil {
		return nil, err
	}

	m := &Image{
		info:    info,
		pitch:   flags,
		pix:     make([]byte, total),
		buffers: buffers,
	}
	off := 0
	for i := range m.buffers {
		n := m.buffers[i].SlicePitch
		m.buffers[i].Pix = m.pix[off : off+n : off+n]
		off += n
	}
	if info.Type == Texture3D {
		start := 0
		for level := 0; level < info.MipCount; level++ {
			m.mipStart = append(m.mipStart, start)
			start += MipSize(info.Depth, level)
		}
	}
	return m, nil
}

func (m *Image) Info() Info { return m.info }

func (m *Image) PitchFlags() pixfmt.PitchFlags { return m.pitch }

// Pix is the whole backing store in storage order.
func (m *Image) Pix() []byte { return m.pix }

// Buffers lists every surface in storage order.
func (m *Image) Buffers() []PixelBuffer { return m.buffers }

// Buffer returns the surface at mip level mip of array item (or depth
// slice, for volumes) item, or nil when out of range.
func (m *Image) Buffer(mip, item int) *PixelBuffer {
	if m.buffers == nil || mip < 0 || mip >= m.info.MipCount || item < 0 {
		return nil
	}
	if m.info.Type == Texture3D {
		if item >= MipSize(m.info.Depth, mip) {
			return nil
		}
		return &m.buffers[m.mipStart[mip]+item]
	}
	if item >= m.info.ArrayCount {
		return nil
	}
	return &m.buffers[item*m.info.MipCount+mip]
}

// Release drops the backing store. The image is unusable afterwards.
func (m *Image) Release() {
	m.pix = nil
	m.buffers = nil
	m.mipStart = nil
}

func (m *Image) String() string {
	i := m.info
	return fmt.Sprintf("%s %s %dx%dx%d mips=%d array=%d",
		i.Type, i.Format, i.Width, i.Height, i.Depth, i.MipCount, i.ArrayCount)
}
