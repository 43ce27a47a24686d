package dds

import (
	"testing"

	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/stretchr/testify/require"
)

func TestFourCC(t *testing.T) {
	require.Equal(t, FourCC(0x31545844), fourCCDXT1)
	require.Equal(t, "DXT1", fourCCDXT1.String())
	require.Equal(t, "DX10", fourCCDX10.String())
}

func TestResolveLegacy(t *testing.T) {
	tests := []struct {
		name   string
		pf     PixelFormat
		format pixfmt.Format
		conv   ConversionFlags
	}{
		{"565", maskFormat(pfRGB, 16, 0xf800, 0x07e0, 0x001f, 0), pixfmt.B5G6R5_UNorm, Conv565},
		{"DXT1", pfDXT1, pixfmt.BC1_UNorm, ConvNone},
		{"DXT2", pfDXT2, pixfmt.BC2_UNorm, ConvNone},
		{"DXT4", pfDXT4, pixfmt.BC3_UNorm, ConvNone},
		{"ATI2", pfATI2, pixfmt.BC5_UNorm, ConvNone},
		{"A8R8G8B8", pfA8R8G8B8, pixfmt.B8G8R8A8_UNorm, ConvNone},
		{"X8B8G8R8", pfX8B8G8R8, pixfmt.R8G8B8A8_UNorm, ConvNoAlpha},
		{"A2B10G10R10", pfA2B10G10R10, pixfmt.R10G10B10A2_UNorm, ConvSwizzle},
		{"A2R10G10B10", pfA2R10G10B10, pixfmt.R10G10B10A2_UNorm, ConvNone},
		{"R8G8B8", pfR8G8B8, pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvNoAlpha | Conv888},
		{"X1R5G5B5", pfX1R5G5B5, pixfmt.B5G5R5A1_UNorm, Conv5551 | ConvNoAlpha},
		{"A8R3G3B2", pfA8R3G3B2, pixfmt.R8G8B8A8_UNorm, ConvExpand | Conv8332},
		{"R3G3B2", pfR3G3B2, pixfmt.B5G6R5_UNorm, ConvExpand | Conv332},
		{"L8", pfL8, pixfmt.R8_UNorm, ConvNone},
		{"A8L8", pfA8L8, pixfmt.R8G8_UNorm, ConvNone},
		{"A8", pfA8, pixfmt.A8_UNorm, ConvNone},
		{"D3DFMT_A16B16G16R16F", fourCCFormat(113), pixfmt.R16G16B16A16_Float, ConvNone},
		{"R32F", pfR32F, pixfmt.R32_Float, ConvNone},
		{"P8", pfP8, pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvPal8},
		{"A8P8", pfA8P8, pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvPal8 | ConvA8P8},
		{"X4R4G4B4", pfX4R4G4B4, pixfmt.B4G4R4A4_UNorm, Conv4444 | ConvNoAlpha},
		{"A4L4", pfA4L4, pixfmt.R8G8B8A8_UNorm, ConvExpand | Conv44},
		// palette entries match on bit count alone
		{"P8 with masks", maskFormat(pfPal8, 8, 1, 2, 3, 4), pixfmt.R8G8B8A8_UNorm, ConvExpand | ConvPal8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, conv, err := ResolveLegacy(tt.pf, FlagsNone)
			require.NoError(t, err)
			require.Equal(t, tt.format, format)
			require.Equal(t, tt.conv, conv)
		})
	}
}

func TestResolveLegacyPolicy(t *testing.T) {
	_, _, err := ResolveLegacy(pfR8G8B8, NoLegacyExpansion)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	// no expansion needed, so the policy does not apply
	format, _, err := ResolveLegacy(pfR5G6B5, NoLegacyExpansion)
	require.NoError(t, err)
	require.Equal(t, pixfmt.B5G6R5_UNorm, format)

	_, conv, err := ResolveLegacy(pfA2B10G10R10, NoR10B10G10A2Fix)
	require.NoError(t, err)
	require.Equal(t, ConvNone, conv)

	_, conv, err = ResolveLegacy(pfA2R10G10B10, NoR10B10G10A2Fix)
	require.NoError(t, err)
	require.Equal(t, ConvSwizzle, conv)

	_, _, err = ResolveLegacy(PixelFormat{Size: pixelFormatSize}, FlagsNone)
	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	require.Equal(t, pixfmt.Unknown, ufe.Format)
}

// Every descriptor written on encode resolves back to its format.
func TestLegacyPixelFormatRoundTrip(t *testing.T) {
	for _, f := range pixfmt.Supported() {
		pf, ok := LegacyPixelFormat(f, FlagsNone)
		if !ok {
			continue
		}
		got, conv, err := ResolveLegacy(pf, FlagsNone)
		require.NoError(t, err, f.String())
		require.Equal(t, f, got, f.String())
		require.Zero(t, conv&(ConvExpand|ConvSwizzle|ConvNoAlpha), f.String())
	}

	_, ok := LegacyPixelFormat(pixfmt.R10G10B10A2_UNorm, FlagsNone)
	require.False(t, ok)
}

func TestFlags(t *testing.T) {
	f, ok := ParseFlag("force-rgb")
	require.True(t, ok)
	require.Equal(t, ForceRGB, f)
	_, ok = ParseFlag("bogus")
	require.False(t, ok)

	require.Equal(t, "none", FlagsNone.String())
	require.Equal(t, "legacy-dword|force-dx10", (LegacyDWORD | ForceDX10).String())
}
