// Package texio opens texture files for the codecs. Files ending in
// ".zst" are zstd compressed transparently.
package texio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

// IsCompressed reports whether path names a zstd compressed file.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), zstdExt)
}

// TrimCompression drops a ".zst" suffix, leaving the name the codec
// should be picked by.
func TrimCompression(path string) string {
	if IsCompressed(path) {
		return path[:len(path)-len(zstdExt)]
	}
	return path
}

// File is a readable, seekable texture file.
type File struct {
	io.ReadSeeker
	closer io.Closer
}

func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Open opens path for reading. Compressed files are decompressed into
// memory so that probes can seek.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return &File{ReadSeeker: f, closer: f}, nil
	}
	defer f.Close()

	raw, err := Decompress(f)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", path, err)
	}
	return &File{ReadSeeker: bytes.NewReader(raw)}, nil
}

// Decompress reads a whole zstd stream.
func Decompress(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(dec); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (w *writeCloser) Close() error { return w.close() }

// Create creates path for writing. Close must be called to flush
// compressed output.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("compress %q: %w", path, err)
	}
	return &writeCloser{
		Writer: enc,
		close: func() error {
			if err := enc.Close(); err != nil {
				f.Close()
				return fmt.Errorf("compress %q: %w", path, err)
			}
			return f.Close()
		},
	}, nil
}
