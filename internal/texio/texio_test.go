package texio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.True(t, IsCompressed("a/b.dds.zst"))
	require.True(t, IsCompressed("B.DDS.ZST"))
	require.False(t, IsCompressed("b.dds"))
	require.Equal(t, "a/b.dds", TrimCompression("a/b.dds.zst"))
	require.Equal(t, "b.png", TrimCompression("b.png"))
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("DDS payload, repeated payload, repeated payload")

	for _, name := range []string{"plain.dds", "packed.dds.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			w, err := Create(path)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			if IsCompressed(name) {
				require.NotEqual(t, payload, raw)
			} else {
				require.Equal(t, payload, raw)
			}

			f, err := Open(path)
			require.NoError(t, err)
			defer f.Close()

			_, err = f.Seek(4, io.SeekStart)
			require.NoError(t, err)
			rest, err := io.ReadAll(f)
			require.NoError(t, err)
			require.Equal(t, payload[4:], rest)
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.dds"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.dds.zst")
	require.NoError(t, os.WriteFile(bad, []byte("not zstd"), 0o666))
	_, err = Open(bad)
	require.Error(t, err)
}
