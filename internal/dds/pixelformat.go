package dds

import (
	"github.com/erinpentecost/texkit/internal/pixfmt"
)

// FourCC is a four character code stored little endian.
type FourCC uint32

func MakeFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

func (f FourCC) String() string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}

// Pixel format flags.
const (
	pfAlphaPixels = 0x1
	pfAlpha       = 0x2
	pfFourCC      = 0x4
	pfPal8        = 0x20
	pfRGB         = 0x40
	pfLuminance   = 0x20000

	pfRGBA       = pfRGB | pfAlphaPixels
	pfLuminanceA = pfLuminance | pfAlphaPixels
	pfPal8A      = pfPal8 | pfAlphaPixels
)

var (
	fourCCDXT1 = MakeFourCC('D', 'X', 'T', '1')
	fourCCDXT2 = MakeFourCC('D', 'X', 'T', '2')
	fourCCDXT3 = MakeFourCC('D', 'X', 'T', '3')
	fourCCDXT4 = MakeFourCC('D', 'X', 'T', '4')
	fourCCDXT5 = MakeFourCC('D', 'X', 'T', '5')
	fourCCBC4U = MakeFourCC('B', 'C', '4', 'U')
	fourCCBC4S = MakeFourCC('B', 'C', '4', 'S')
	fourCCBC5U = MakeFourCC('B', 'C', '5', 'U')
	fourCCBC5S = MakeFourCC('B', 'C', '5', 'S')
	fourCCATI1 = MakeFourCC('A', 'T', 'I', '1')
	fourCCATI2 = MakeFourCC('A', 'T', 'I', '2')
	fourCCRGBG = MakeFourCC('R', 'G', 'B', 'G')
	fourCCGRGB = MakeFourCC('G', 'R', 'G', 'B')
	fourCCYUY2 = MakeFourCC('Y', 'U', 'Y', '2')
	fourCCDX10 = MakeFourCC('D', 'X', '1', '0')
)

// D3DFMT values that D3DX wrote into the FourCC field.
const (
	d3dfmtA16B16G16R16  FourCC = 36
	d3dfmtQ16W16V16U16  FourCC = 110
	d3dfmtR16F          FourCC = 111
	d3dfmtG16R16F       FourCC = 112
	d3dfmtA16B16G16R16F FourCC = 113
	d3dfmtR32F          FourCC = 114
	d3dfmtG32R32F       FourCC = 115
	d3dfmtA32B32G32R32F FourCC = 116
)

// PixelFormat is the legacy pixel format descriptor embedded in the
// header.
type PixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      FourCC
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

func fourCCFormat(cc FourCC) PixelFormat {
	return PixelFormat{Size: pixelFormatSize, Flags: pfFourCC, FourCC: cc}
}

func maskFormat(flags, bits, r, g, b, a uint32) PixelFormat {
	return PixelFormat{Size: pixelFormatSize, Flags: flags, RGBBitCount: bits, RBitMask: r, GBitMask: g, BBitMask: b, ABitMask: a}
}

var (
	pfDXT1     = fourCCFormat(fourCCDXT1)
	pfDXT2     = fourCCFormat(fourCCDXT2)
	pfDXT3     = fourCCFormat(fourCCDXT3)
	pfDXT4     = fourCCFormat(fourCCDXT4)
	pfDXT5     = fourCCFormat(fourCCDXT5)
	pfBC4UNorm = fourCCFormat(fourCCBC4U)
	pfBC4SNorm = fourCCFormat(fourCCBC4S)
	pfBC5UNorm = fourCCFormat(fourCCBC5U)
	pfBC5SNorm = fourCCFormat(fourCCBC5S)
	pfATI1     = fourCCFormat(fourCCATI1)
	pfATI2     = fourCCFormat(fourCCATI2)
	pfR8G8B8G8 = fourCCFormat(fourCCRGBG)
	pfG8R8G8B8 = fourCCFormat(fourCCGRGB)
	pfYUY2     = fourCCFormat(fourCCYUY2)
	pfDX10     = fourCCFormat(fourCCDX10)

	pfA8R8G8B8 = maskFormat(pfRGBA, 32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000)
	pfX8R8G8B8 = maskFormat(pfRGB, 32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0)
	pfA8B8G8R8 = maskFormat(pfRGBA, 32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000)
	pfX8B8G8R8 = maskFormat(pfRGB, 32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0)
	pfG16R16   = maskFormat(pfRGB, 32, 0x0000ffff, 0xffff0000, 0, 0)
	pfR5G6B5   = maskFormat(pfRGB, 16, 0xf800, 0x07e0, 0x001f, 0)
	pfA1R5G5B5 = maskFormat(pfRGBA, 16, 0x7c00, 0x03e0, 0x001f, 0x8000)
	pfX1R5G5B5 = maskFormat(pfRGB, 16, 0x7c00, 0x03e0, 0x001f, 0)
	pfA4R4G4B4 = maskFormat(pfRGBA, 16, 0x0f00, 0x00f0, 0x000f, 0xf000)
	pfX4R4G4B4 = maskFormat(pfRGB, 16, 0x0f00, 0x00f0, 0x000f, 0)
	pfR8G8B8   = maskFormat(pfRGB, 24, 0xff0000, 0x00ff00, 0x0000ff, 0)
	pfA8R3G3B2 = maskFormat(pfRGBA, 16, 0x00e0, 0x001c, 0x0003, 0xff00)
	pfR3G3B2   = maskFormat(pfRGB, 8, 0xe0, 0x1c, 0x03, 0)
	pfL8       = maskFormat(pfLuminance, 8, 0xff, 0, 0, 0)
	pfL16      = maskFormat(pfLuminance, 16, 0xffff, 0, 0, 0)
	pfA8L8     = maskFormat(pfLuminanceA, 16, 0x00ff, 0, 0, 0xff00)
	pfA4L4     = maskFormat(pfLuminanceA, 8, 0x0f, 0, 0, 0xf0)
	pfA8       = maskFormat(pfAlpha, 8, 0, 0, 0, 0xff)
	pfR32F     = maskFormat(pfRGB, 32, 0xffffffff, 0, 0, 0)
	pfP8       = maskFormat(pfPal8, 8, 0, 0, 0, 0)
	pfA8P8     = maskFormat(pfPal8A, 16, 0, 0, 0, 0xff00)

	// D3DX10/11 wrote 10:10:10:2 with the red and blue masks inverted.
	pfA2B10G10R10 = maskFormat(pfRGBA, 32, 0x000003ff, 0x000ffc00, 0x3ff00000, 0xc0000000)
	pfA2R10G10B10 = maskFormat(pfRGBA, 32, 0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000)
)

type legacyMapping struct {
	format pixfmt.Format
	conv   ConversionFlags
	pf     PixelFormat
}

// legacyMap is searched in order; the first structural match wins.
var legacyMap = []legacyMapping{
	{pixfmt.BC1_UNorm, ConvNone, pfDXT1},
	{pixfmt.BC2_UNorm, ConvNone, pfDXT3},
	{pixfmt.BC3_UNorm, ConvNone, pfDXT5},

	{pixfmt.BC2_UNorm, ConvNone, pfDXT2},
	{pixfmt.BC3_UNorm, ConvNone, pfDXT4},

	{pixfmt.BC4_UNorm, ConvNone, pfBC4UNorm},
	{pixfmt.BC4_SNorm, ConvNone, pfBC4SNorm},
	{pixfmt.BC5_UNorm, ConvNone, pfBC5UNorm},
	{pixfmt.BC5_SNorm, ConvNone, pfBC5SNorm},

	{pixfmt.BC4_UNorm, ConvNone, pfATI1},
	{pixfmt.BC5_UNorm, ConvNone, pfATI2},

	{pixfmt.R8G8_B8G8_UNorm, ConvNone, pfR8G8B8G8},
	{pixfmt.G8R8_G8B8_UNorm, ConvNone, pfG8R8G8B8},
	{pixfmt.YUY2, ConvNone, pfYUY2},

	{pixfmt.B8G8R8A8_UNorm, ConvNone, pfA8R8G8B8},
	{pixfmt.B8G8R8X8_UNorm, ConvNone, pfX8R8G8B8},
	{pixfmt.R8G8B8A8_UNorm, ConvNone, pfA8B8G8R8},
	{pixfmt.R8G8B8A8_UNorm, ConvNoAlpha, pfX8B8G8R8},
	{pixfmt.R16G16_UNorm, ConvNone, pfG16R16},

	{pixfmt.R10G10B10A2_UNorm, ConvSwizzle, pfA2B10G10R10},
	{pixfmt.R10G10B10A2_UNorm, ConvNone, pfA2R10G10B10},

	{pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvNoAlpha | Conv888, pfR8G8B8},

	{pixfmt.B5G6R5_UNorm, Conv565, pfR5G6B5},
	{pixfmt.B5G5R5A1_UNorm, Conv5551, pfA1R5G5B5},
	{pixfmt.B5G5R5A1_UNorm, Conv5551 | ConvNoAlpha, pfX1R5G5B5},

	{pixfmt.R8G8B8A8_UNorm, ConvExpand | Conv8332, pfA8R3G3B2},
	{pixfmt.B5G6R5_UNorm, ConvExpand | Conv332, pfR3G3B2},

	{pixfmt.R8_UNorm, ConvNone, pfL8},
	{pixfmt.R16_UNorm, ConvNone, pfL16},
	{pixfmt.R8G8_UNorm, ConvNone, pfA8L8},

	{pixfmt.A8_UNorm, ConvNone, pfA8},

	{pixfmt.R16G16B16A16_UNorm, ConvNone, fourCCFormat(d3dfmtA16B16G16R16)},
	{pixfmt.R16G16B16A16_SNorm, ConvNone, fourCCFormat(d3dfmtQ16W16V16U16)},
	{pixfmt.R16_Float, ConvNone, fourCCFormat(d3dfmtR16F)},
	{pixfmt.R16G16_Float, ConvNone, fourCCFormat(d3dfmtG16R16F)},
	{pixfmt.R16G16B16A16_Float, ConvNone, fourCCFormat(d3dfmtA16B16G16R16F)},
	{pixfmt.R32_Float, ConvNone, fourCCFormat(d3dfmtR32F)},
	{pixfmt.R32G32_Float, ConvNone, fourCCFormat(d3dfmtG32R32F)},
	{pixfmt.R32G32B32A32_Float, ConvNone, fourCCFormat(d3dfmtA32B32G32R32F)},

	{pixfmt.R32_Float, ConvNone, pfR32F},

	{pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvPal8 | ConvA8P8, pfA8P8},
	{pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvPal8, pfP8},

	{pixfmt.B4G4R4A4_UNorm, Conv4444, pfA4R4G4B4},
	{pixfmt.B4G4R4A4_UNorm, Conv4444 | ConvNoAlpha, pfX4R4G4B4},
	{pixfmt.R8G8B8A8_UNorm, ConvExpand | Conv44, pfA4L4},
}

func (m *legacyMapping) matches(pf PixelFormat) bool {
	if pf.Flags&m.pf.Flags == 0 {
		return false
	}
	switch {
	case m.pf.Flags&pfFourCC != 0:
		return pf.FourCC == m.pf.FourCC
	case m.pf.Flags&pfPal8 != 0:
		return pf.RGBBitCount == m.pf.RGBBitCount
	default:
		return pf.RGBBitCount == m.pf.RGBBitCount &&
			pf.RBitMask == m.pf.RBitMask &&
			pf.GBitMask == m.pf.GBitMask &&
			pf.BBitMask == m.pf.BBitMask &&
			pf.ABitMask == m.pf.ABitMask
	}
}

// ResolveLegacy maps a legacy descriptor to a canonical format and the
// conversion needed to load it.
func ResolveLegacy(pf PixelFormat, flags Flags) (pixfmt.Format, ConversionFlags, error) {
	for i := range legacyMap {
		m := &legacyMap[i]
		if !m.matches(pf) {
			continue
		}
		conv := m.conv
		if conv&ConvExpand != 0 && flags&NoLegacyExpansion != 0 {
			return pixfmt.Unknown, ConvNone, &UnsupportedFormatError{
				Format: m.format,
				FourCC: pf.FourCC,
				Reason: "legacy expansion disabled",
			}
		}
		if m.format == pixfmt.R10G10B10A2_UNorm && flags&NoR10B10G10A2Fix != 0 {
			conv ^= ConvSwizzle
		}
		return m.format, conv, nil
	}
	return pixfmt.Unknown, ConvNone, &UnsupportedFormatError{
		FourCC: pf.FourCC,
		Reason: "no legacy mapping",
	}
}

// LegacyPixelFormat returns the descriptor Encode writes for f when the
// DX10 extension header is not required. This is an exact round trip
// mapping and covers fewer formats than the decode table.
func LegacyPixelFormat(f pixfmt.Format, flags Flags) (PixelFormat, bool) {
	switch f {
	case pixfmt.R8G8B8A8_UNorm:
		return pfA8B8G8R8, true
	case pixfmt.R16G16_UNorm:
		return pfG16R16, true
	case pixfmt.R8G8_UNorm:
		return pfA8L8, true
	case pixfmt.R16_UNorm:
		return pfL16, true
	case pixfmt.R8_UNorm:
		return pfL8, true
	case pixfmt.A8_UNorm:
		return pfA8, true
	case pixfmt.R8G8_B8G8_UNorm:
		return pfR8G8B8G8, true
	case pixfmt.G8R8_G8B8_UNorm:
		return pfG8R8G8B8, true
	case pixfmt.BC1_UNorm:
		return pfDXT1, true
	case pixfmt.BC2_UNorm:
		return pfDXT3, true
	case pixfmt.BC3_UNorm:
		return pfDXT5, true
	case pixfmt.BC4_UNorm:
		if flags&ForceDX9Legacy != 0 {
			return pfATI1, true
		}
		return pfBC4UNorm, true
	case pixfmt.BC4_SNorm:
		return pfBC4SNorm, true
	case pixfmt.BC5_UNorm:
		if flags&ForceDX9Legacy != 0 {
			return pfATI2, true
		}
		return pfBC5UNorm, true
	case pixfmt.BC5_SNorm:
		return pfBC5SNorm, true
	case pixfmt.B5G6R5_UNorm:
		return pfR5G6B5, true
	case pixfmt.B5G5R5A1_UNorm:
		return pfA1R5G5B5, true
	case pixfmt.B4G4R4A4_UNorm:
		return pfA4R4G4B4, true
	case pixfmt.B8G8R8A8_UNorm:
		return pfA8R8G8B8, true
	case pixfmt.B8G8R8X8_UNorm:
		return pfX8R8G8B8, true
	case pixfmt.YUY2:
		return pfYUY2, true
	case pixfmt.R32G32B32A32_Float:
		return fourCCFormat(d3dfmtA32B32G32R32F), true
	case pixfmt.R16G16B16A16_Float:
		return fourCCFormat(d3dfmtA16B16G16R16F), true
	case pixfmt.R16G16B16A16_UNorm:
		return fourCCFormat(d3dfmtA16B16G16R16), true
	case pixfmt.R16G16B16A16_SNorm:
		return fourCCFormat(d3dfmtQ16W16V16U16), true
	case pixfmt.R32G32_Float:
		return fourCCFormat(d3dfmtG32R32F), true
	case pixfmt.R16G16_Float:
		return fourCCFormat(d3dfmtG16R16F), true
	case pixfmt.R32_Float:
		return fourCCFormat(d3dfmtR32F), true
	case pixfmt.R16_Float:
		return fourCCFormat(d3dfmtR16F), true
	}
	return PixelFormat{}, false
}
