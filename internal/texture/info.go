// Package texture holds CPU side images with mip, array and depth
// layout, and the metadata that describes them.
package texture

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

// Type is the dimensionality of an image.
type Type int

const (
	Texture1D Type = iota + 1
	Texture2D
	Texture3D
	TextureCube
)

func (t Type) String() string {
	switch t {
	case Texture1D:
		return "1D"
	case Texture2D:
		return "2D"
	case Texture3D:
		return "3D"
	case TextureCube:
		return "Cube"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Info describes the shape of an image.
//
// Depth is 1 unless Type is Texture3D. ArrayCount counts faces for cube
// maps, so it is a multiple of 6.
type Info struct {
	Type       Type
	Format     pixfmt.Format
	Width      int
	Height     int
	Depth      int
	MipCount   int
	ArrayCount int
}

var ErrInvalidInfo = errors.New("texture: invalid image description")

// Limits on the images Validate accepts. They are the largest resources
// Direct3D 11 can create.
const (
	MaxDimension       = 16384
	MaxVolumeDimension = 2048
	// MaxArrayCount counts cube faces, not cubes.
	MaxArrayCount = 2048
	// MaxSizeInBytes bounds the payload of one image.
	MaxSizeInBytes = 1 << 32
)

// Validate checks the invariants of i.
func (i Info) Validate() error {
	if !i.Format.IsValid() {
		return fmt.Errorf("%w: format %s", ErrInvalidInfo, i.Format)
	}
	if i.Width < 1 || i.Height < 1 || i.Depth < 1 || i.MipCount < 1 || i.ArrayCount < 1 {
		return fmt.Errorf("%w: %dx%dx%d mips=%d array=%d", ErrInvalidInfo,
			i.Width, i.Height, i.Depth, i.MipCount, i.ArrayCount)
	}
	limit := MaxDimension
	if i.Type == Texture3D {
		limit = MaxVolumeDimension
	}
	if i.Width > limit || i.Height > limit || i.Depth > limit {
		return fmt.Errorf("%w: %dx%dx%d exceeds %d", ErrInvalidInfo, i.Width, i.Height, i.Depth, limit)
	}
	if i.ArrayCount > MaxArrayCount {
		return fmt.Errorf("%w: array count %d exceeds %d", ErrInvalidInfo, i.ArrayCount, MaxArrayCount)
	}
	switch i.Type {
	case Texture1D:
		if i.Height != 1 || i.Depth != 1 {
			return fmt.Errorf("%w: 1D image with height %d depth %d", ErrInvalidInfo, i.Height, i.Depth)
		}
	case Texture2D:
		if i.Depth != 1 {
			return fmt.Errorf("%w: 2D image with depth %d", ErrInvalidInfo, i.Depth)
		}
	case TextureCube:
		if i.Depth != 1 || i.ArrayCount%6 != 0 {
			return fmt.Errorf("%w: cube image with depth %d and %d faces", ErrInvalidInfo, i.Depth, i.ArrayCount)
		}
	case Texture3D:
		if i.ArrayCount != 1 {
			return fmt.Errorf("%w: volume image with array count %d", ErrInvalidInfo, i.ArrayCount)
		}
	default:
		return fmt.Errorf("%w: type %s", ErrInvalidInfo, i.Type)
	}
	if full := CountMips(i.Width, i.Height, i.Depth); i.MipCount > full {
		return fmt.Errorf("%w: %d mips requested, chain has %d", ErrInvalidInfo, i.MipCount, full)
	}
	return nil
}

// CountMips returns the length of a full mip chain down to 1x1x1.
func CountMips(w, h, d int) int {
	return bits.Len(uint(max(w, h, d, 1)))
}

// MipSize is the dimension of mip level l of a size n axis.
func MipSize(n, level int) int {
	return max(1, n>>level)
}

// CalculateSizeInBytes returns the number of payload bytes an image of
// shape info occupies when laid out with the given pitch flags. Sizes
// above MaxSizeInBytes are errors.
func CalculateSizeInBytes(info Info, flags pixfmt.PitchFlags) (int, error) {
	if err := info.Validate(); err != nil {
		return 0, err
	}
	return sizeOf(info, surfaces(info, flags))
}

func sizeOf(info Info, buffers []PixelBuffer) (int, error) {
	var total, carry uint64
	for _, b := range buffers {
		if b.SlicePitch < 0 {
			return 0, fmt.Errorf("%w: %s surface pitch overflows", ErrInvalidInfo, info.Format)
		}
		total, carry = bits.Add64(total, uint64(b.SlicePitch), 0)
		if carry != 0 || total > MaxSizeInBytes || total > math.MaxInt {
			return 0, fmt.Errorf("%w: %dx%dx%d %s with %d mips and %d items exceeds %d bytes", ErrInvalidInfo,
				info.Width, info.Height, info.Depth, info.Format, info.MipCount, info.ArrayCount, uint64(MaxSizeInBytes))
		}
	}
	return int(total), nil
}

// surfaces lists every 2D surface of info in storage order: array items
// outer and mips inner, or for volumes mips outer and depth slices
// inner.
func surfaces(info Info, flags pixfmt.PitchFlags) []PixelBuffer {
	var out []PixelBuffer
	add := func(level int) {
		w, h := MipSize(info.Width, level), MipSize(info.Height, level)
		row, slice := pixfmt.ComputePitch(info.Format, w, h, flags)
		out = append(out, PixelBuffer{
			Width:      w,
			Height:     h,
			Format:     info.Format,
			RowPitch:   row,
			SlicePitch: slice,
		})
	}
	if info.Type == Texture3D {
		for level := 0; level < info.MipCount; level++ {
			for slice := 0; slice < MipSize(info.Depth, level); slice++ {
				add(level)
			}
		}
		return out
	}
	for item := 0; item < info.ArrayCount; item++ {
		for level := 0; level < info.MipCount; level++ {
			add(level)
		}
	}
	return out
}
