package dds

import (
	"encoding/binary"
	"testing"

	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/stretchr/testify/require"
)

func TestReplicate(t *testing.T) {
	tests := []struct {
		v, from, to, want uint32
	}{
		{0x1f, 5, 8, 0xff},
		{0x10, 5, 8, 0x84},
		{0x3f, 6, 8, 0xff},
		{0x20, 6, 8, 0x82},
		{0x1, 1, 8, 0xff},
		{0x5, 3, 8, 0xb6},
		{0x2, 2, 8, 0xaa},
		{0x3, 2, 5, 0x1f},
		{0x4, 3, 6, 0x24},
		{0xab, 8, 8, 0xab},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, replicate(tt.v, uint(tt.from), uint(tt.to)), "%#x %d->%d", tt.v, tt.from, tt.to)
	}
}

func rgba(dst []byte, i int) (r, g, b, a uint32) {
	p := dst[i*4:]
	return uint32(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])
}

func allWords() []byte {
	src := make([]byte, 2*65536)
	for v := 0; v < 65536; v++ {
		binary.LittleEndian.PutUint16(src[v*2:], uint16(v))
	}
	return src
}

func TestExpandScanlineRequantizes(t *testing.T) {
	src := allWords()
	dst := make([]byte, 4*65536)

	require.NoError(t, ExpandScanline(dst, pixfmt.R8G8B8A8_UNorm, src, pixfmt.B5G6R5_UNorm, ScanlineNone))
	for v := uint32(0); v < 65536; v++ {
		r, g, b, a := rgba(dst, int(v))
		require.Equal(t, v>>11&0x1f, r>>3)
		require.Equal(t, v>>5&0x3f, g>>2)
		require.Equal(t, v&0x1f, b>>3)
		require.Equal(t, uint32(0xff), a)
	}

	require.NoError(t, ExpandScanline(dst, pixfmt.R8G8B8A8_UNorm, src, pixfmt.B5G5R5A1_UNorm, ScanlineNone))
	for v := uint32(0); v < 65536; v++ {
		r, g, b, a := rgba(dst, int(v))
		require.Equal(t, v>>10&0x1f, r>>3)
		require.Equal(t, v>>5&0x1f, g>>3)
		require.Equal(t, v&0x1f, b>>3)
		require.Equal(t, v>>15, a>>7)
	}

	require.NoError(t, ExpandScanline(dst, pixfmt.R8G8B8A8_UNorm, src, pixfmt.B4G4R4A4_UNorm, ScanlineNone))
	for v := uint32(0); v < 65536; v++ {
		r, g, b, a := rgba(dst, int(v))
		require.Equal(t, v>>8&0xf, r>>4)
		require.Equal(t, v>>4&0xf, g>>4)
		require.Equal(t, v&0xf, b>>4)
		require.Equal(t, v>>12, a>>4)
	}

	require.NoError(t, ExpandScanline(dst, pixfmt.R8G8B8A8_UNorm, src, pixfmt.B4G4R4A4_UNorm, ScanlineSetAlpha))
	for v := 0; v < 65536; v++ {
		_, _, _, a := rgba(dst, v)
		require.Equal(t, uint32(0xff), a)
	}

	err := ExpandScanline(dst, pixfmt.B8G8R8A8_UNorm, src, pixfmt.B5G6R5_UNorm, ScanlineNone)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	err = ExpandScanline(dst, pixfmt.R8G8B8A8_UNorm, src, pixfmt.R8_UNorm, ScanlineNone)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExpandLegacy332(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}

	dst := make([]byte, 4*256)
	require.NoError(t, ExpandLegacyScanline(dst, pixfmt.R8G8B8A8_UNorm, src, KindRGB332, ScanlineNone, nil))
	for v := uint32(0); v < 256; v++ {
		r, g, b, a := rgba(dst, int(v))
		require.Equal(t, v>>5, r>>5)
		require.Equal(t, v>>2&0x7, g>>5)
		require.Equal(t, v&0x3, b>>6)
		require.Equal(t, uint32(0xff), a)
	}

	dst565 := make([]byte, 2*256)
	require.NoError(t, ExpandLegacyScanline(dst565, pixfmt.B5G6R5_UNorm, src, KindRGB332, ScanlineNone, nil))
	for v := uint32(0); v < 256; v++ {
		p := uint32(binary.LittleEndian.Uint16(dst565[v*2:]))
		require.Equal(t, v>>5, p>>11>>2)
		require.Equal(t, v>>2&0x7, p>>5&0x3f>>3)
		require.Equal(t, v&0x3, p&0x1f>>3)
	}
}

func TestExpandLegacyPalette(t *testing.T) {
	var pal Palette
	for i := range pal {
		pal[i] = uint32(i) * 0x01010101
	}
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(255 - i)
	}

	dst := make([]byte, 4*256)
	require.NoError(t, ExpandLegacyScanline(dst, pixfmt.R8G8B8A8_UNorm, src, KindPalette, ScanlineNone, &pal))
	for i := range src {
		require.Equal(t, pal[src[i]], binary.LittleEndian.Uint32(dst[i*4:]))
	}

	require.NoError(t, ExpandLegacyScanline(dst, pixfmt.R8G8B8A8_UNorm, src, KindPalette, ScanlineNone, nil))
	for i := range src {
		require.Equal(t, uint32(0xff000000), binary.LittleEndian.Uint32(dst[i*4:]))
	}
}

func TestExpandLegacyLayouts(t *testing.T) {
	tests := []struct {
		name  string
		kind  LegacyKind
		src   []byte
		flags ScanlineFlags
		want  []byte
	}{
		{"A4L4", KindA4L4, []byte{0x8f}, ScanlineNone, []byte{0xff, 0xff, 0xff, 0x88}},
		{"A4L4 opaque", KindA4L4, []byte{0x05}, ScanlineSetAlpha, []byte{0x55, 0x55, 0x55, 0xff}},
		{"A8R3G3B2", KindRGB8332, []byte{0xe0, 0x40}, ScanlineNone, []byte{0xff, 0x00, 0x00, 0x40}},
		{"A4R4G4B4", KindRGB4444, []byte{0x21, 0x43}, ScanlineNone, []byte{0x33, 0x22, 0x11, 0x44}},
		{"R8G8B8", KindRGB888, []byte{0x01, 0x02, 0x03}, ScanlineNone, []byte{0x03, 0x02, 0x01, 0xff}},
		{"A8P8", KindA8P8, []byte{0x07, 0x40}, ScanlineNone, []byte{0x00, 0x00, 0x00, 0x40}},
		{"A8P8 opaque", KindA8P8, []byte{0x07, 0x40}, ScanlineSetAlpha, []byte{0x00, 0x00, 0x00, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 4)
			require.NoError(t, ExpandLegacyScanline(dst, pixfmt.R8G8B8A8_UNorm, tt.src, tt.kind, tt.flags, nil))
			require.Equal(t, tt.want, dst)
		})
	}

	err := ExpandLegacyScanline(make([]byte, 4), pixfmt.B5G6R5_UNorm, []byte{1}, KindA4L4, ScanlineNone, nil)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	err = ExpandLegacyScanline(make([]byte, 4), pixfmt.R8G8B8A8_UNorm, []byte{1}, LegacyKind(99), ScanlineNone, nil)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSwizzleScanline(t *testing.T) {
	dst := make([]byte, 8)
	SwizzleScanline(dst, []byte{1, 2, 3, 4, 5, 6, 7, 8}, pixfmt.B8G8R8A8_UNorm, ScanlineNone)
	require.Equal(t, []byte{3, 2, 1, 4, 7, 6, 5, 8}, dst)

	SwizzleScanline(dst, []byte{1, 2, 3, 4, 5, 6, 7, 8}, pixfmt.R8G8B8A8_UNorm, ScanlineSetAlpha)
	require.Equal(t, []byte{3, 2, 1, 0xff, 7, 6, 5, 0xff}, dst)

	src := binary.LittleEndian.AppendUint32(nil, 0x000ffc01)
	dst = make([]byte, 4)
	SwizzleScanline(dst, src, pixfmt.R10G10B10A2_UNorm, ScanlineLegacy)
	require.Equal(t, uint32(0x001ffc00), binary.LittleEndian.Uint32(dst))

	SwizzleScanline(dst, src, pixfmt.R10G10B10A2_UNorm, ScanlineLegacy|ScanlineSetAlpha)
	require.Equal(t, uint32(0xc01ffc00), binary.LittleEndian.Uint32(dst))

	SwizzleScanline(dst, src, pixfmt.R10G10B10A2_UNorm, ScanlineNone)
	require.Equal(t, src, dst)
}

func TestCopyScanlineSetAlpha(t *testing.T) {
	tests := []struct {
		format pixfmt.Format
		src    []byte
		want   []byte
	}{
		{pixfmt.R8G8B8A8_UNorm, []byte{1, 2, 3, 4}, []byte{1, 2, 3, 0xff}},
		{pixfmt.R8G8B8A8_SNorm, []byte{1, 2, 3, 4}, []byte{1, 2, 3, 0x7f}},
		{pixfmt.B5G5R5A1_UNorm, []byte{0x34, 0x12}, []byte{0x34, 0x92}},
		{pixfmt.B4G4R4A4_UNorm, []byte{0x34, 0x02}, []byte{0x34, 0xf2}},
		{pixfmt.R10G10B10A2_UNorm, []byte{1, 2, 3, 4}, []byte{1, 2, 3, 0xc4}},
		{pixfmt.A8_UNorm, []byte{1, 2}, []byte{0xff, 0xff}},
		{pixfmt.R16G16B16A16_Float, make([]byte, 8), []byte{0, 0, 0, 0, 0, 0, 0x00, 0x3c}},
		{pixfmt.R16G16B16A16_SNorm, make([]byte, 8), []byte{0, 0, 0, 0, 0, 0, 0xff, 0x7f}},
		{pixfmt.R32G32B32A32_Float, make([]byte, 16), []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x00, 0x80, 0x3f}},
		{pixfmt.R8_UNorm, []byte{1, 2}, []byte{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			dst := make([]byte, len(tt.src))
			CopyScanline(dst, tt.src, tt.format, ScanlineSetAlpha)
			require.Equal(t, tt.want, dst)

			CopyScanline(dst, tt.src, tt.format, ScanlineNone)
			require.Equal(t, tt.src, dst)
		})
	}
}

func TestRowPoolDropsWideRows(t *testing.T) {
	wide := getRow(maxPooledRow * 4)
	require.Len(t, *wide, maxPooledRow*4)
	putRow(wide)

	row := getRow(16)
	defer putRow(row)
	require.Len(t, *row, 16)
	require.LessOrEqual(t, cap(*row), maxPooledRow)
}
