package dds

import (
	"encoding/binary"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

const (
	Magic = 0x20534444 // "DDS "

	magicSize       = 4
	headerSize      = 124
	pixelFormatSize = 32
	headerDX10Size  = 20

	// pixel format offset inside the 124 byte header
	pixelFormatOffset = 72

	// palette of an 8-bit paletted file, 256 little endian colors
	paletteSize = 256 * 4
)

// Header flags.
const (
	headerCaps        = 0x1
	headerHeight      = 0x2
	headerWidth       = 0x4
	headerPitch       = 0x8
	headerPixelFormat = 0x1000
	headerMipMap      = 0x20000
	headerLinearSize  = 0x80000
	headerVolume      = 0x800000

	headerTexture = headerCaps | headerHeight | headerWidth | headerPixelFormat
)

// Caps and Caps2 bits.
const (
	capsComplex = 0x8
	capsTexture = 0x1000
	capsMipMap  = 0x400000

	capsCubeMap = capsComplex

	caps2CubeMap          = 0x200
	caps2CubeMapPositiveX = 0x400
	caps2CubeMapNegativeX = 0x800
	caps2CubeMapPositiveY = 0x1000
	caps2CubeMapNegativeY = 0x2000
	caps2CubeMapPositiveZ = 0x4000
	caps2CubeMapNegativeZ = 0x8000
	caps2CubeMapAllFaces  = caps2CubeMapPositiveX | caps2CubeMapNegativeX |
		caps2CubeMapPositiveY | caps2CubeMapNegativeY |
		caps2CubeMapPositiveZ | caps2CubeMapNegativeZ
	caps2Volume = 0x200000
)

// DX10 resource dimensions and misc flags.
const (
	dimensionTexture1D = 2
	dimensionTexture2D = 3
	dimensionTexture3D = 4

	miscTextureCube = 0x4
)

// Header is the 124 byte structure following the magic.
type Header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// HeaderDX10 is the extension header present when the legacy FourCC is
// "DX10".
type HeaderDX10 struct {
	Format            pixfmt.Format
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// HasDX10 reports whether h announces the extension header.
func (h *Header) HasDX10() bool {
	return h.PixelFormat.Flags&pfFourCC != 0 && h.PixelFormat.FourCC == fourCCDX10
}

func parseHeader(b []byte) Header {
	get := func(off int) uint32 {
		return binary.LittleEndian.Uint32(b[off:])
	}
	var h Header
	h.Size = get(0)
	h.Flags = get(4)
	h.Height = get(8)
	h.Width = get(12)
	h.PitchOrLinearSize = get(16)
	h.Depth = get(20)
	h.MipMapCount = get(24)
	for i := range h.Reserved1 {
		h.Reserved1[i] = get(28 + 4*i)
	}
	h.PixelFormat = parsePixelFormat(b[pixelFormatOffset:])
	h.Caps = get(104)
	h.Caps2 = get(108)
	h.Caps3 = get(112)
	h.Caps4 = get(116)
	h.Reserved2 = get(120)
	return h
}

func parsePixelFormat(b []byte) PixelFormat {
	get := func(off int) uint32 {
		return binary.LittleEndian.Uint32(b[off:])
	}
	return PixelFormat{
		Size:        get(0),
		Flags:       get(4),
		FourCC:      FourCC(get(8)),
		RGBBitCount: get(12),
		RBitMask:    get(16),
		GBitMask:    get(20),
		BBitMask:    get(24),
		ABitMask:    get(28),
	}
}

func parseHeaderDX10(b []byte) HeaderDX10 {
	get := func(off int) uint32 {
		return binary.LittleEndian.Uint32(b[off:])
	}
	return HeaderDX10{
		Format:            pixfmt.Format(get(0)),
		ResourceDimension: get(4),
		MiscFlag:          get(8),
		ArraySize:         get(12),
		MiscFlags2:        get(16),
	}
}

// appendHeader appends h to dst as 124 little endian bytes.
func appendHeader(dst []byte, h *Header) []byte {
	var header [headerSize]byte
	b := header[:]
	put := func(off int, v uint32) {
		binary.LittleEndian.PutUint32(b[off:], v)
	}

	put(0, h.Size)
	put(4, h.Flags)
	put(8, h.Height)
	put(12, h.Width)
	put(16, h.PitchOrLinearSize)
	put(20, h.Depth)
	put(24, h.MipMapCount)
	for i, v := range h.Reserved1 {
		put(28+4*i, v)
	}

	pf := &h.PixelFormat
	put(72, pf.Size)
	put(76, pf.Flags)
	put(80, uint32(pf.FourCC))
	put(84, pf.RGBBitCount)
	put(88, pf.RBitMask)
	put(92, pf.GBitMask)
	put(96, pf.BBitMask)
	put(100, pf.ABitMask)

	put(104, h.Caps)
	put(108, h.Caps2)
	put(112, h.Caps3)
	put(116, h.Caps4)
	put(120, h.Reserved2)
	return append(dst, b...)
}

func appendHeaderDX10(dst []byte, h *HeaderDX10) []byte {
	var ext [headerDX10Size]byte
	b := ext[:]
	put := func(off int, v uint32) {
		binary.LittleEndian.PutUint32(b[off:], v)
	}
	put(0, uint32(h.Format))
	put(4, h.ResourceDimension)
	put(8, h.MiscFlag)
	put(12, h.ArraySize)
	put(16, h.MiscFlags2)
	return append(dst, b...)
}
