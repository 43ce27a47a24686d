package dds

import (
	"strings"

	"github.com/erinpentecost/texkit/internal/pixfmt"
)

// Flags selects how legacy files are interpreted and which header
// layout Encode writes.
type Flags uint32

const (
	FlagsNone Flags = 0
	// LegacyDWORD assumes rows of legacy files are padded to 4 bytes.
	LegacyDWORD Flags = 0x1
	// NoLegacyExpansion rejects legacy formats that would have to be
	// expanded to a wider format on load.
	NoLegacyExpansion Flags = 0x2
	// NoR10B10G10A2Fix keeps the channel order of 10:10:10:2 files as
	// written, instead of correcting the inverted masks of old writers.
	NoR10B10G10A2Fix Flags = 0x4
	// ForceRGB loads BGR 8:8:8:8 files as RGB, swapping bytes on copy.
	ForceRGB Flags = 0x8
	// No16BPP loads 16-bit 565/5551/4444 files as 32-bit RGBA.
	No16BPP Flags = 0x10
	// ForceDX10 always writes the DX10 extension header.
	ForceDX10 Flags = 0x10000
	// ForceDX9Legacy writes ATI1/ATI2 FourCCs for BC4/BC5 and refuses
	// images that need the DX10 extension header.
	ForceDX9Legacy Flags = 0x20000
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{LegacyDWORD, "legacy-dword"},
	{NoLegacyExpansion, "no-legacy-expansion"},
	{NoR10B10G10A2Fix, "no-r10b10g10a2-fix"},
	{ForceRGB, "force-rgb"},
	{No16BPP, "no-16bpp"},
	{ForceDX10, "force-dx10"},
	{ForceDX9Legacy, "force-dx9-legacy"},
}

// ParseFlag maps a flag name such as "force-rgb" to its value.
func ParseFlag(name string) (Flags, bool) {
	for _, n := range flagNames {
		if n.name == name {
			return n.f, true
		}
	}
	return FlagsNone, false
}

func (f Flags) String() string {
	var parts []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

func (f Flags) pitchFlags() pixfmt.PitchFlags {
	if f&LegacyDWORD != 0 {
		return pixfmt.PitchLegacyDWORD
	}
	return pixfmt.PitchDefault
}

// ConversionFlags describe what the copier must do to turn the stored
// pixels into the resolved format.
type ConversionFlags uint32

const (
	ConvNone ConversionFlags = 0
	// ConvExpand widens the stored pixels to a larger format.
	ConvExpand ConversionFlags = 0x1
	// ConvNoAlpha forces alpha to opaque.
	ConvNoAlpha ConversionFlags = 0x2
	// ConvSwizzle swaps the red and blue channels.
	ConvSwizzle ConversionFlags = 0x4
	ConvPal8    ConversionFlags = 0x8
	Conv888     ConversionFlags = 0x10
	Conv565     ConversionFlags = 0x20
	Conv5551    ConversionFlags = 0x40
	Conv4444    ConversionFlags = 0x80
	Conv44      ConversionFlags = 0x100
	Conv332     ConversionFlags = 0x200
	Conv8332    ConversionFlags = 0x400
	ConvA8P8    ConversionFlags = 0x800
	// ConvDX10 marks files read through the DX10 extension header.
	ConvDX10 ConversionFlags = 0x10000
)

// sourcePitch returns the pitch override for the stored bit depth of
// an expanded format.
func (c ConversionFlags) sourcePitch() pixfmt.PitchFlags {
	if c&ConvExpand == 0 {
		return pixfmt.PitchDefault
	}
	switch {
	case c&(Conv565|Conv5551|Conv4444|Conv8332|ConvA8P8) != 0:
		return pixfmt.Pitch16BPP
	case c&Conv888 != 0:
		return pixfmt.Pitch24BPP
	default:
		return pixfmt.Pitch8BPP
	}
}

// scanlineFlags derives the per-row flags of the conversion engine.
func (c ConversionFlags) scanlineFlags() ScanlineFlags {
	var f ScanlineFlags
	if c&ConvNoAlpha != 0 {
		f |= ScanlineSetAlpha
	}
	if c&ConvSwizzle != 0 {
		f |= ScanlineLegacy
	}
	return f
}

// legacyKind picks the expansion routine for an expanded legacy format.
func (c ConversionFlags) legacyKind() (LegacyKind, bool) {
	switch {
	case c&ConvA8P8 != 0:
		return KindA8P8, true
	case c&ConvPal8 != 0:
		return KindPalette, true
	case c&Conv44 != 0:
		return KindA4L4, true
	case c&Conv332 != 0:
		return KindRGB332, true
	case c&Conv8332 != 0:
		return KindRGB8332, true
	case c&Conv4444 != 0:
		return KindRGB4444, true
	case c&Conv888 != 0:
		return KindRGB888, true
	}
	return 0, false
}
