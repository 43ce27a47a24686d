package bc

import (
	"image"
	"image/color"
	"testing"

	"github.com/mauserzjeh/dxt"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 40, A: uint8(255 - x*20)})
		}
	}
	return img
}

func TestCompressSizes(t *testing.T) {
	require.Len(t, CompressBC1(gradient(8, 8)), 4*BC1BlockBytes)
	require.Len(t, CompressBC3(gradient(8, 8)), 4*BC3BlockBytes)
	// partial blocks round up
	require.Len(t, CompressBC1(gradient(5, 3)), 2*BC1BlockBytes)
}

func TestCompressSolidColorRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	want := color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, want)
		}
	}

	out, err := dxt.DecodeDXT1(CompressBC1(img), 4, 4)
	require.NoError(t, err)
	require.Len(t, out, 64)
	for i := 0; i < 16; i++ {
		require.Equal(t, []byte{255, 0, 0, 255}, out[i*4:i*4+4])
	}
}

func TestCompressBC3Alpha(t *testing.T) {
	img := gradient(4, 4)
	out, err := dxt.DecodeDXT5(CompressBC3(img), 4, 4)
	require.NoError(t, err)
	require.Len(t, out, 64)
	for x := 0; x < 4; x++ {
		got := out[x*4+3]
		want := img.NRGBAAt(x, 0).A
		require.InDelta(t, int(want), int(got), 8)
	}
}

func TestFrom565Replicates(t *testing.T) {
	require.Equal(t, [3]uint8{255, 255, 255}, from565(0xffff))
	require.Equal(t, [3]uint8{0, 0, 0}, from565(0))
	require.Equal(t, uint16(0xf800), to565(vec3{255, 0, 0}))
}
