package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erinpentecost/texkit/internal/dds"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(`
dds:
  flags: [legacy-dword, Force-RGB]
output:
  format: bc3
  mips: 4
workers: 2
`))
	require.NoError(t, err)
	require.Equal(t, 2, p.Workers)
	require.Equal(t, 4, p.Output.Mips)
	// unset values keep their defaults
	require.Equal(t, "dds", p.Output.Ext)
	require.Equal(t, "catmullrom", p.Output.Filter)

	flags, err := p.DDSFlags()
	require.NoError(t, err)
	require.Equal(t, dds.LegacyDWORD|dds.ForceRGB, flags)

	f, err := p.OutputFormat()
	require.NoError(t, err)
	require.Equal(t, pixfmt.BC3_UNorm, f)
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), p)
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":    "colour: red\n",
		"unknown flag":   "dds:\n  flags: [sideways]\n",
		"unknown format": "output:\n  format: bc9\n",
		"bad filter":     "output:\n  filter: lanczos\n",
		"workers":        "workers: 0\n",
		"mips":           "output:\n  mips: -1\n",
		"downscale":      "output:\n  downscale: -2\n",
		"syntax":         "output: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  ext: png\n"), 0o666))
	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "png", p.Output.Ext)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("BGRA")
	require.NoError(t, err)
	require.Equal(t, pixfmt.B8G8R8A8_UNorm, f)

	f, err = ParseFormat(pixfmt.BC1_UNorm.String())
	require.NoError(t, err)
	require.Equal(t, pixfmt.BC1_UNorm, f)

	_, err = ParseFormat(pixfmt.BC7_UNorm.String())
	require.Error(t, err)
}

func TestProcessors(t *testing.T) {
	p := Default()
	procs, err := p.Processors()
	require.NoError(t, err)
	require.Empty(t, procs)

	p, err = Parse(strings.NewReader("output:\n  power_of_two: true\n  downscale: 2\n  edge_alpha: 255\n"))
	require.NoError(t, err)
	procs, err = p.Processors()
	require.NoError(t, err)
	require.Len(t, procs, 2)
	require.IsType(t, texture.PowerOfTwo{}, procs[0])
	require.Equal(t, 2, procs[0].(texture.PowerOfTwo).DownScale)
	require.Equal(t, texture.EdgeAlpha{Minimum: 255, Distance: edgeAlphaDistance}, procs[1])
}
