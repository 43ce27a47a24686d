package dds

import (
	"encoding/binary"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

// ScanlineFlags alter a single row conversion.
type ScanlineFlags uint32

const (
	ScanlineNone ScanlineFlags = 0
	// ScanlineSetAlpha forces every output pixel to be opaque.
	ScanlineSetAlpha ScanlineFlags = 0x1
	// ScanlineLegacy marks rows that also need the legacy channel swap
	// done by SwizzleScanline.
	ScanlineLegacy ScanlineFlags = 0x2
)

// LegacyKind names a stored layout that only exists in legacy files.
type LegacyKind int

const (
	KindPalette LegacyKind = iota + 1
	KindA4L4
	KindRGB332
	KindA8P8
	KindRGB8332
	KindRGB4444
	KindRGB888
)

func (k LegacyKind) String() string {
	switch k {
	case KindPalette:
		return "P8"
	case KindA4L4:
		return "A4L4"
	case KindRGB332:
		return "R3G3B2"
	case KindA8P8:
		return "A8P8"
	case KindRGB8332:
		return "A8R3G3B2"
	case KindRGB4444:
		return "A4R4G4B4"
	case KindRGB888:
		return "R8G8B8"
	}
	return "LegacyKind(?)"
}

// Palette holds the 256 colors of a paletted file as stored, one little
// endian word per entry.
type Palette [256]uint32

// channel is a bit field of a stored pixel. bits == 0 means absent.
type channel struct {
	shift, bits uint
}

func (c channel) get(v uint32) uint32 {
	return (v >> c.shift) & (1<<c.bits - 1)
}

type layout struct {
	bytes      int
	r, g, b, a channel
	// luminance broadcasts r to all three color channels.
	luminance bool
}

var legacyLayouts = map[LegacyKind]layout{
	KindA4L4:    {bytes: 1, r: channel{0, 4}, a: channel{4, 4}, luminance: true},
	KindRGB332:  {bytes: 1, r: channel{5, 3}, g: channel{2, 3}, b: channel{0, 2}},
	KindRGB8332: {bytes: 2, r: channel{5, 3}, g: channel{2, 3}, b: channel{0, 2}, a: channel{8, 8}},
	KindRGB4444: {bytes: 2, r: channel{8, 4}, g: channel{4, 4}, b: channel{0, 4}, a: channel{12, 4}},
	KindRGB888:  {bytes: 3, r: channel{16, 8}, g: channel{8, 8}, b: channel{0, 8}},
}

var packedLayouts = map[pixfmt.Format]layout{
	pixfmt.B5G6R5_UNorm:   {bytes: 2, r: channel{11, 5}, g: channel{5, 6}, b: channel{0, 5}},
	pixfmt.B5G5R5A1_UNorm: {bytes: 2, r: channel{10, 5}, g: channel{5, 5}, b: channel{0, 5}, a: channel{15, 1}},
	pixfmt.B4G4R4A4_UNorm: {bytes: 2, r: channel{8, 4}, g: channel{4, 4}, b: channel{0, 4}, a: channel{12, 4}},
}

// replicate widens a from-bit value to to bits by repeating its high
// bits into the low bits, so the top from bits of the result are v.
func replicate(v uint32, from, to uint) uint32 {
	if from == 0 {
		return 0
	}
	var r uint32
	for shift := int(to) - int(from); shift > -int(from); shift -= int(from) {
		if shift >= 0 {
			r |= v << uint(shift)
		} else {
			r |= v >> uint(-shift)
		}
	}
	return r & (1<<to - 1)
}

func load(src []byte, n int) uint32 {
	switch n {
	case 1:
		return uint32(src[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(src))
	case 3:
		return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16
	default:
		return binary.LittleEndian.Uint32(src)
	}
}

// rgba8 expands one stored pixel to R8G8B8A8 byte order, little endian.
func (l *layout) rgba8(v uint32, flags ScanlineFlags) uint32 {
	r := replicate(l.r.get(v), l.r.bits, 8)
	g, b := r, r
	if !l.luminance {
		g = replicate(l.g.get(v), l.g.bits, 8)
		b = replicate(l.b.get(v), l.b.bits, 8)
	}
	a := uint32(0xff)
	if l.a.bits > 0 && flags&ScanlineSetAlpha == 0 {
		a = replicate(l.a.get(v), l.a.bits, 8)
	}
	return r | g<<8 | b<<16 | a<<24
}

func (l *layout) expandRGBA8(dst, src []byte, flags ScanlineFlags) {
	n := min(len(src)/l.bytes, len(dst)/4)
	for i := 0; i < n; i++ {
		v := load(src[i*l.bytes:], l.bytes)
		binary.LittleEndian.PutUint32(dst[i*4:], l.rgba8(v, flags))
	}
}

// ExpandLegacyScanline converts one row of a legacy stored layout into
// dstFormat. pal is consulted for KindPalette only; a nil palette reads
// as opaque black.
func ExpandLegacyScanline(dst []byte, dstFormat pixfmt.Format, src []byte, kind LegacyKind, flags ScanlineFlags, pal *Palette) error {
	switch kind {
	case KindPalette:
		if dstFormat != pixfmt.R8G8B8A8_UNorm {
			break
		}
		n := min(len(src), len(dst)/4)
		for i := 0; i < n; i++ {
			c := uint32(0xff000000)
			if pal != nil {
				c = pal[src[i]]
			}
			if flags&ScanlineSetAlpha != 0 {
				c |= 0xff000000
			}
			binary.LittleEndian.PutUint32(dst[i*4:], c)
		}
		return nil

	case KindA8P8:
		if dstFormat != pixfmt.R8G8B8A8_UNorm {
			break
		}
		// Only the alpha byte is carried over; the index byte is not
		// looked up and the color stays zero.
		n := min(len(src)/2, len(dst)/4)
		for i := 0; i < n; i++ {
			t := uint32(binary.LittleEndian.Uint16(src[i*2:]))
			c := (t & 0xff00) << 16
			if flags&ScanlineSetAlpha != 0 {
				c = 0xff000000
			}
			binary.LittleEndian.PutUint32(dst[i*4:], c)
		}
		return nil

	case KindRGB332:
		if dstFormat == pixfmt.B5G6R5_UNorm {
			l := legacyLayouts[KindRGB332]
			n := min(len(src), len(dst)/2)
			for i := 0; i < n; i++ {
				v := uint32(src[i])
				out := replicate(l.r.get(v), 3, 5)<<11 | replicate(l.g.get(v), 3, 6)<<5 | replicate(l.b.get(v), 2, 5)
				binary.LittleEndian.PutUint16(dst[i*2:], uint16(out))
			}
			return nil
		}
		fallthrough

	default:
		l, ok := legacyLayouts[kind]
		if !ok || dstFormat != pixfmt.R8G8B8A8_UNorm {
			break
		}
		l.expandRGBA8(dst, src, flags)
		return nil
	}
	return &UnsupportedFormatError{Format: dstFormat, Reason: "cannot expand " + kind.String()}
}

// ExpandScanline widens one row of a 16-bit packed format (565, 5551 or
// 4444) to dstFormat, which must be R8G8B8A8_UNorm.
func ExpandScanline(dst []byte, dstFormat pixfmt.Format, src []byte, srcFormat pixfmt.Format, flags ScanlineFlags) error {
	l, ok := packedLayouts[srcFormat]
	if !ok || dstFormat != pixfmt.R8G8B8A8_UNorm {
		return &UnsupportedFormatError{Format: srcFormat, Reason: "cannot expand to " + dstFormat.String()}
	}
	l.expandRGBA8(dst, src, flags)
	return nil
}
