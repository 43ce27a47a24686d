package dds

import (
	"fmt"
	"io"
	"sync"

	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
)

// rowPool holds scratch rows for the per-row copy path.
var rowPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

// maxPooledRow is the widest scratch row kept for reuse. Wider rows are
// left to the garbage collector.
const maxPooledRow = 64 << 10

func getRow(n int) *[]byte {
	p := rowPool.Get().(*[]byte)
	if cap(*p) < n {
		*p = make([]byte, n)
	}
	*p = (*p)[:n]
	return p
}

func putRow(p *[]byte) {
	if cap(*p) > maxPooledRow {
		return
	}
	rowPool.Put(p)
}

// packedSource is the stored 16-bit format of an expanded 565, 5551 or
// 4444 file.
func (c ConversionFlags) packedSource() (pixfmt.Format, bool) {
	switch {
	case c&Conv565 != 0:
		return pixfmt.B5G6R5_UNorm, true
	case c&Conv5551 != 0:
		return pixfmt.B5G5R5A1_UNorm, true
	case c&Conv4444 != 0:
		return pixfmt.B4G4R4A4_UNorm, true
	}
	return pixfmt.Unknown, false
}

// convertRow turns one stored row into one row of format.
func (c ConversionFlags) convertRow(dst []byte, format pixfmt.Format, src []byte, pal *Palette) error {
	flags := c.scanlineFlags()
	switch {
	case c&ConvExpand != 0:
		if packed, ok := c.packedSource(); ok {
			return ExpandScanline(dst, format, src, packed, flags)
		}
		kind, ok := c.legacyKind()
		if !ok {
			return &UnsupportedFormatError{Format: format, Reason: "no expansion for stored layout"}
		}
		return ExpandLegacyScanline(dst, format, src, kind, flags, pal)
	case c&ConvSwizzle != 0:
		SwizzleScanline(dst, src, format, flags)
	default:
		CopyScanline(dst, src, format, flags)
	}
	return nil
}

// copyImage reads the pixel payload described by meta into img.
func copyImage(r io.Reader, img *texture.Image, meta *Metadata, pal *Palette) error {
	info := img.Info()
	conv := meta.Conversion

	if conv&(ConvExpand|ConvSwizzle|ConvNoAlpha) == 0 && meta.Pitch&pixfmt.PitchLegacyDWORD == 0 {
		size, err := texture.CalculateSizeInBytes(info, meta.Pitch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		pix := img.Pix()
		if size > len(pix) {
			return invalidf("payload of %d bytes does not fit image of %d", size, len(pix))
		}
		if _, err := io.ReadFull(r, pix[:size]); err != nil {
			return readErr("pixel data", err)
		}
		return nil
	}

	srcFlags := meta.Pitch | conv.sourcePitch()
	items := info.ArrayCount
	if info.Type == texture.Texture3D {
		items = 1
	}
	for item := 0; item < items; item++ {
		for level := 0; level < info.MipCount; level++ {
			depth := 1
			if info.Type == texture.Texture3D {
				depth = texture.MipSize(info.Depth, level)
			}
			for slice := 0; slice < depth; slice++ {
				dst := img.Buffer(level, item+slice)
				if dst == nil {
					return invalidf("no surface for mip %d item %d", level, item+slice)
				}
				if err := copySurface(r, dst, conv, srcFlags, pal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func copySurface(r io.Reader, dst *texture.PixelBuffer, conv ConversionFlags, srcFlags pixfmt.PitchFlags, pal *Palette) error {
	srcRow, srcSlice := pixfmt.ComputePitch(dst.Format, dst.Width, dst.Height, srcFlags)

	if dst.Format.IsCompressed() {
		n := min(srcSlice, dst.SlicePitch)
		if _, err := io.ReadFull(r, dst.Pix[:n]); err != nil {
			return readErr("pixel data", err)
		}
		if extra := srcSlice - n; extra > 0 {
			if _, err := io.CopyN(io.Discard, r, int64(extra)); err != nil {
				return readErr("pixel data", err)
			}
		}
		return nil
	}

	scratch := getRow(srcRow)
	defer putRow(scratch)
	src := *scratch

	for y := 0; y < dst.Height; y++ {
		if _, err := io.ReadFull(r, src); err != nil {
			return readErr("pixel data", err)
		}
		if err := conv.convertRow(dst.Row(y), dst.Format, src, pal); err != nil {
			return err
		}
	}
	return nil
}
