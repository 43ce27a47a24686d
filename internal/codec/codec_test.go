package codec

import (
	"bytes"
	"testing"

	"github.com/erinpentecost/texkit/internal/dds"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
	"github.com/stretchr/testify/require"
)

// checker returns a 4x2 opaque black and white image.
func checker(t *testing.T) *texture.Image {
	t.Helper()
	img, err := texture.New(texture.Info{
		Type:       texture.Texture2D,
		Format:     pixfmt.R8G8B8A8_UNorm,
		Width:      4,
		Height:     2,
		Depth:      1,
		MipCount:   1,
		ArrayCount: 1,
	}, pixfmt.PitchDefault)
	require.NoError(t, err)
	pix := img.Pix()
	for i := 0; i < len(pix); i += 4 {
		v := byte(0)
		if (i/4)%2 == 0 {
			v = 0xff
		}
		pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 0xff
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	reg := Default(dds.FlagsNone)
	for _, c := range reg.Codecs() {
		t.Run(c.Name(), func(t *testing.T) {
			src := checker(t)
			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, src))

			r := bytes.NewReader(buf.Bytes())
			detected, err := reg.Detect(r)
			require.NoError(t, err)
			require.Equal(t, c.Name(), detected.Name())
			require.Equal(t, int64(buf.Len()), int64(r.Len()))

			got, err := c.Decode(r)
			require.NoError(t, err)
			require.Equal(t, src.Info(), got.Info())
			if c.Name() == "JPEG" {
				return
			}
			require.Equal(t, src.Pix(), got.Pix())
		})
	}
}

func TestSingleImageOnly(t *testing.T) {
	img, err := texture.New(texture.Info{
		Type:       texture.Texture2D,
		Format:     pixfmt.R8G8B8A8_UNorm,
		Width:      4,
		Height:     4,
		Depth:      1,
		MipCount:   2,
		ArrayCount: 1,
	}, pixfmt.PitchDefault)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.ErrorIs(t, PNG().Encode(&buf, img), ErrMultipleFrames)
	require.Zero(t, buf.Len())
	require.NoError(t, dds.Codec{}.Encode(&buf, img))
}

func TestLookup(t *testing.T) {
	reg := Default(dds.FlagsNone)

	c, err := reg.ByExtension("dir/Texture.DDS")
	require.NoError(t, err)
	require.Equal(t, "DDS", c.Name())
	require.True(t, c.SupportsMipMaps())

	c, err = reg.ByExtension("photo.jpeg")
	require.NoError(t, err)
	require.Equal(t, "JPEG", c.Name())
	require.False(t, c.SupportsMipMaps())

	c, err = reg.ByName("tga")
	require.NoError(t, err)
	require.Equal(t, "TGA", c.Name())

	_, err = reg.ByExtension("notes.txt")
	require.ErrorIs(t, err, ErrUnknownFormat)
	_, err = reg.Detect(bytes.NewReader([]byte("hello, world")))
	require.ErrorIs(t, err, ErrUnknownFormat)
	_, err = reg.Detect(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSniffTGA(t *testing.T) {
	h := make([]byte, 18)
	h[2] = 2
	h[12], h[14] = 4, 2
	h[16] = 32
	require.True(t, sniffTGA(h))

	h[16] = 12
	require.False(t, sniffTGA(h))
	h[16] = 32
	h[2] = 5
	require.False(t, sniffTGA(h))
}
