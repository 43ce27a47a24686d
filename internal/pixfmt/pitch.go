package pixfmt

// PitchFlags alter how row and slice pitches are computed.
type PitchFlags uint32

const (
	PitchDefault PitchFlags = 0
	// PitchLegacyDWORD rounds rows up to 4 bytes, as old DDS writers did.
	PitchLegacyDWORD PitchFlags = 0x1
	// PitchParagraph rounds rows up to 16 bytes.
	PitchParagraph PitchFlags = 0x2
	// The BPP overrides replace the bit count of the format when computing
	// pitches for legacy source data that is expanded on load.
	Pitch24BPP PitchFlags = 0x10000
	Pitch16BPP PitchFlags = 0x20000
	Pitch8BPP  PitchFlags = 0x40000
)

// ComputePitch returns the row and slice pitch, in bytes, of a w x h
// surface of format f.
func ComputePitch(f Format, w, h int, flags PitchFlags) (rowPitch, slicePitch int) {
	info := Info(f)
	switch {
	case info.Compressed():
		nbw := max(1, (w+3)/4)
		nbh := max(1, (h+3)/4)
		rowPitch = nbw * info.BlockBytes
		slicePitch = rowPitch * nbh
	case info.PackedBytes > 0:
		rowPitch = ((w + 1) >> 1) * info.PackedBytes
		slicePitch = rowPitch * h
	default:
		bpp := info.BitsPerPixel
		switch {
		case flags&Pitch24BPP != 0:
			bpp = 24
		case flags&Pitch16BPP != 0:
			bpp = 16
		case flags&Pitch8BPP != 0:
			bpp = 8
		}
		switch {
		case flags&PitchLegacyDWORD != 0:
			rowPitch = ((w*bpp + 31) / 32) * 4
		case flags&PitchParagraph != 0:
			rowPitch = ((w*bpp + 127) / 128) * 16
		default:
			rowPitch = (w*bpp + 7) / 8
		}
		slicePitch = rowPitch * h
	}
	return rowPitch, slicePitch
}

// ScanlineCount is the number of pitch rows in a surface of height h:
// block rows for compressed formats, pixel rows otherwise.
func ScanlineCount(f Format, h int) int {
	if f.IsCompressed() {
		return max(1, (h+3)/4)
	}
	return h
}
