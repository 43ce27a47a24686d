package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erinpentecost/texkit/internal/codec"
	"github.com/erinpentecost/texkit/internal/dds"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texio"
	"github.com/erinpentecost/texkit/internal/texture"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o666))
}

func TestJobPNGToCompressedDDS(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 8, 8)

	reg := codec.Default(dds.FlagsNone)
	out, err := reg.ByName("dds")
	require.NoError(t, err)
	j := &job{
		in:      in,
		out:     filepath.Join(dir, "out.dds.zst"),
		format:  pixfmt.BC1_UNorm,
		rebuild: true,
		codec:   out,
	}
	require.NoError(t, j.run(context.Background(), reg))

	f, err := texio.Open(j.out)
	require.NoError(t, err)
	defer f.Close()
	info, err := dds.ReadMetadata(f, dds.FlagsNone)
	require.NoError(t, err)
	require.Equal(t, texture.Info{
		Type:       texture.Texture2D,
		Format:     pixfmt.BC1_UNorm,
		Width:      8,
		Height:     8,
		Depth:      1,
		MipCount:   4,
		ArrayCount: 1,
	}, info)
}

func TestJobDDSToPNG(t *testing.T) {
	dir := t.TempDir()
	src, err := texture.New(texture.Info{
		Type:       texture.Texture2D,
		Format:     pixfmt.B8G8R8A8_UNorm,
		Width:      2,
		Height:     2,
		Depth:      1,
		MipCount:   2,
		ArrayCount: 1,
	}, pixfmt.PitchDefault)
	require.NoError(t, err)
	copy(src.Pix(), []byte{0, 0, 255, 255, 0, 255, 0, 255, 255, 0, 0, 255, 1, 2, 3, 4})
	var buf bytes.Buffer
	require.NoError(t, dds.Encode(&buf, src, dds.FlagsNone))
	in := filepath.Join(dir, "in.dds")
	require.NoError(t, os.WriteFile(in, buf.Bytes(), 0o666))

	reg := codec.Default(dds.FlagsNone)
	out, err := reg.ByName("png")
	require.NoError(t, err)
	j := &job{in: in, out: filepath.Join(dir, "in.png"), rebuild: true, codec: out}
	require.NoError(t, j.run(context.Background(), reg))

	f, err := os.Open(j.out)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := m.At(0, 0).RGBA()
	require.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
}

func TestJobPowerOfTwo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 6, 3)

	reg := codec.Default(dds.FlagsNone)
	out, err := reg.ByName("png")
	require.NoError(t, err)
	j := &job{
		in:      in,
		out:     filepath.Join(dir, "out.png"),
		rebuild: true,
		procs:   []texture.Processor{texture.PowerOfTwo{}},
		codec:   out,
	}
	require.NoError(t, j.run(context.Background(), reg))

	f, err := os.Open(j.out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, []int{8, 4}, []int{cfg.Width, cfg.Height})
}

func TestJobConvertKeepsFaces(t *testing.T) {
	info := texture.Info{Type: texture.TextureCube, Format: pixfmt.R8G8B8A8_UNorm, Width: 4, Height: 4, Depth: 1, MipCount: 1, ArrayCount: 6}
	src, err := texture.New(info, pixfmt.PitchDefault)
	require.NoError(t, err)
	for face := 0; face < 6; face++ {
		b := src.Buffer(0, face)
		for i := 0; i < len(b.Pix); i += 4 {
			copy(b.Pix[i:], []byte{uint8(face * 40), 0, 0, 255})
		}
	}

	reg := codec.Default(dds.FlagsNone)
	ddsCodec, err := reg.ByName("dds")
	require.NoError(t, err)
	j := &job{format: pixfmt.BC1_UNorm, rebuild: true, codec: ddsCodec}
	out, err := j.convert(src)
	require.NoError(t, err)
	require.Equal(t, texture.Info{Type: texture.TextureCube, Format: pixfmt.BC1_UNorm, Width: 4, Height: 4, Depth: 1, MipCount: 3, ArrayCount: 6}, out.Info())
	for face := 0; face < 6; face++ {
		m, err := texture.ToNRGBA(out.Buffer(0, face))
		require.NoError(t, err)
		require.InDelta(t, face*40, int(m.NRGBAAt(2, 2).R), 8, "face %d", face)
	}

	pngCodec, err := reg.ByName("png")
	require.NoError(t, err)
	j = &job{rebuild: true, codec: pngCodec}
	_, err = j.convert(src)
	require.ErrorIs(t, err, codec.ErrMultipleFrames)

	vol, err := texture.New(texture.Info{Type: texture.Texture3D, Format: pixfmt.R8G8B8A8_UNorm, Width: 4, Height: 4, Depth: 2, MipCount: 1, ArrayCount: 1}, pixfmt.PitchDefault)
	require.NoError(t, err)
	j = &job{rebuild: true, codec: ddsCodec}
	_, err = j.convert(vol)
	require.Error(t, err)
}

func TestJobCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := &job{in: "missing.png"}
	require.ErrorIs(t, j.run(ctx, codec.Default(dds.FlagsNone)), context.Canceled)
}

func TestPrintInfo(t *testing.T) {
	rows := []infoRow{{
		path:   "a.dds",
		codec:  "DDS",
		info:   texture.Info{Type: texture.TextureCube, Format: pixfmt.BC1_UNorm, Width: 4, Height: 4, Depth: 1, MipCount: 3, ArrayCount: 6},
		header: "legacy",
	}}

	var buf bytes.Buffer
	printInfo(&buf, rows, false)
	require.Equal(t, "a.dds\tDDS\tCube\tBC1_UNorm\t4\t4\t1\t3\t6\tlegacy\n", buf.String())

	buf.Reset()
	printInfo(&buf, rows, true)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "FILE"))
	require.Contains(t, lines[1], "4x4x1")
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 4, 2)

	row, err := inspect(codec.Default(dds.FlagsNone), dds.FlagsNone, in)
	require.NoError(t, err)
	require.Equal(t, "PNG", row.codec)
	require.Equal(t, 4, row.info.Width)
	require.Equal(t, 2, row.info.Height)
}
