package dds

import (
	"encoding/binary"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

// SwizzleScanline copies a row swapping its red and blue channels.
// 10:10:10:2 rows are only swapped with ScanlineLegacy, to undo the mask
// order old writers used. Formats without a swap are copied as is.
func SwizzleScanline(dst, src []byte, format pixfmt.Format, flags ScanlineFlags) {
	switch format {
	case pixfmt.R10G10B10A2_Typeless, pixfmt.R10G10B10A2_UNorm, pixfmt.R10G10B10A2_UInt, pixfmt.R10G10B10_Xr_Bias_A2_UNorm:
		if flags&ScanlineLegacy == 0 {
			break
		}
		n := min(len(dst), len(src)) / 4
		for i := 0; i < n; i++ {
			t := binary.LittleEndian.Uint32(src[i*4:])
			r := (t & 0x3ff00000) >> 20
			b := (t & 0x000003ff) << 20
			g := t & 0x000ffc00
			a := t & 0xc0000000
			if flags&ScanlineSetAlpha != 0 {
				a = 0xc0000000
			}
			binary.LittleEndian.PutUint32(dst[i*4:], r|g|b|a)
		}
		return

	case pixfmt.R8G8B8A8_Typeless, pixfmt.R8G8B8A8_UNorm, pixfmt.R8G8B8A8_UNorm_SRgb,
		pixfmt.B8G8R8A8_UNorm, pixfmt.B8G8R8X8_UNorm, pixfmt.B8G8R8A8_Typeless,
		pixfmt.B8G8R8A8_UNorm_SRgb, pixfmt.B8G8R8X8_Typeless, pixfmt.B8G8R8X8_UNorm_SRgb:
		n := min(len(dst), len(src)) / 4
		for i := 0; i < n; i++ {
			p := i * 4
			r, g, b, a := src[p], src[p+1], src[p+2], src[p+3]
			if flags&ScanlineSetAlpha != 0 {
				a = 0xff
			}
			dst[p], dst[p+1], dst[p+2], dst[p+3] = b, g, r, a
		}
		return
	}
	CopyScanline(dst, src, format, flags)
}

// CopyScanline copies a row. With ScanlineSetAlpha the alpha channel of
// formats that have one is set to its maximum value.
func CopyScanline(dst, src []byte, format pixfmt.Format, flags ScanlineFlags) {
	n := copy(dst, src)
	if flags&ScanlineSetAlpha == 0 {
		return
	}
	row := dst[:n]
	le := binary.LittleEndian

	switch format {
	case pixfmt.R8G8B8A8_Typeless, pixfmt.R8G8B8A8_UNorm, pixfmt.R8G8B8A8_UNorm_SRgb, pixfmt.R8G8B8A8_UInt,
		pixfmt.B8G8R8A8_UNorm, pixfmt.B8G8R8A8_Typeless, pixfmt.B8G8R8A8_UNorm_SRgb:
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	case pixfmt.R8G8B8A8_SNorm, pixfmt.R8G8B8A8_SInt:
		for i := 3; i < len(row); i += 4 {
			row[i] = 0x7f
		}
	case pixfmt.R10G10B10A2_Typeless, pixfmt.R10G10B10A2_UNorm, pixfmt.R10G10B10A2_UInt, pixfmt.R10G10B10_Xr_Bias_A2_UNorm:
		for i := 0; i+4 <= len(row); i += 4 {
			le.PutUint32(row[i:], le.Uint32(row[i:])|0xc0000000)
		}
	case pixfmt.R16G16B16A16_Float:
		setWord16(row, 8, 6, 0x3c00)
	case pixfmt.R16G16B16A16_Typeless, pixfmt.R16G16B16A16_UNorm, pixfmt.R16G16B16A16_UInt:
		setWord16(row, 8, 6, 0xffff)
	case pixfmt.R16G16B16A16_SNorm, pixfmt.R16G16B16A16_SInt:
		setWord16(row, 8, 6, 0x7fff)
	case pixfmt.R32G32B32A32_Float:
		setWord32(row, 16, 12, 0x3f800000)
	case pixfmt.R32G32B32A32_Typeless, pixfmt.R32G32B32A32_UInt:
		setWord32(row, 16, 12, 0xffffffff)
	case pixfmt.R32G32B32A32_SInt:
		setWord32(row, 16, 12, 0x7fffffff)
	case pixfmt.B5G5R5A1_UNorm:
		for i := 0; i+2 <= len(row); i += 2 {
			le.PutUint16(row[i:], le.Uint16(row[i:])|0x8000)
		}
	case pixfmt.B4G4R4A4_UNorm:
		for i := 0; i+2 <= len(row); i += 2 {
			le.PutUint16(row[i:], le.Uint16(row[i:])|0xf000)
		}
	case pixfmt.A8_UNorm:
		for i := range row {
			row[i] = 0xff
		}
	}
}

func setWord16(row []byte, stride, off int, v uint16) {
	for i := 0; i+stride <= len(row); i += stride {
		binary.LittleEndian.PutUint16(row[i+off:], v)
	}
}

func setWord32(row []byte, stride, off int, v uint32) {
	for i := 0; i+stride <= len(row); i += stride {
		binary.LittleEndian.PutUint32(row[i+off:], v)
	}
}
