// Package dds reads and writes DirectDraw Surface files: legacy
// DirectX 9 style headers, including the bit mask and palette layouts
// that need expanding on load, and the DX10 extension header.
package dds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
)

// Codec reads and writes DDS streams. The zero value uses default flags
// and the palettes stored in files.
type Codec struct {
	Flags Flags
	// Palette, when set, is used instead of the palette stored in
	// paletted files.
	Palette *Palette
}

func (Codec) Name() string { return "DDS" }

func (Codec) Extensions() []string { return []string{"dds"} }

// SupportedFormats lists every format Encode accepts.
func (Codec) SupportedFormats() []pixfmt.Format { return pixfmt.Supported() }

func (Codec) SupportsMultipleFrames() bool { return true }

func (Codec) SupportsMipMaps() bool { return true }

func (Codec) SupportsDepth() bool { return true }

func (Codec) SupportsBlockCompression() bool { return true }

// Decode reads one image from r. r is left just past the pixel payload.
func (c Codec) Decode(r io.Reader) (*texture.Image, error) {
	meta, err := ReadHeader(r, c.Flags)
	if err != nil {
		return nil, err
	}

	pal := c.Palette
	if meta.Conversion&ConvPal8 != 0 {
		if pal != nil {
			if _, err := io.CopyN(io.Discard, r, paletteSize); err != nil {
				return nil, readErr("palette", err)
			}
		} else if pal, err = readPalette(r); err != nil {
			return nil, err
		}
	}

	need, err := texture.CalculateSizeInBytes(meta.Info, meta.Pitch|meta.Conversion.sourcePitch())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if err := checkRemaining(r, need); err != nil {
		return nil, err
	}

	img, err := texture.New(meta.Info, pixfmt.PitchDefault)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if err := copyImage(r, img, &meta, pal); err != nil {
		img.Release()
		return nil, err
	}
	return img, nil
}

// checkRemaining fails with ErrTruncated when r can seek and holds fewer
// than n more bytes, so short files are caught before the image is
// allocated. Other readers are checked as the payload is copied.
func checkRemaining(r io.Reader, n int) error {
	s, ok := r.(io.Seeker)
	if !ok {
		return nil
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil
	}
	end, err := s.Seek(0, io.SeekEnd)
	if _, serr := s.Seek(cur, io.SeekStart); serr != nil {
		return readErr("pixel data", serr)
	}
	if err != nil {
		return nil
	}
	if left := end - cur; left < int64(n) {
		return fmt.Errorf("%w: pixel data needs %d bytes, %d left: %w", ErrTruncated, n, left, io.ErrUnexpectedEOF)
	}
	return nil
}

func readPalette(r io.Reader) (*Palette, error) {
	var b [paletteSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, readErr("palette", err)
	}
	var pal Palette
	for i := range pal {
		pal[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return &pal, nil
}

// Encode writes img to w. Pixels are written as stored; nothing is
// converted. Argument errors are reported before anything is written.
func (c Codec) Encode(w io.Writer, img *texture.Image) error {
	if w == nil || img == nil {
		return fmt.Errorf("%w: nil writer or image", ErrInvalidArgument)
	}
	if img.Pix() == nil {
		return fmt.Errorf("%w: image was released", ErrInvalidArgument)
	}
	header, err := EncodeHeader(img.Info(), c.Flags)
	if err != nil {
		return err
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("dds: writing header: %w", err)
	}
	for i := range img.Buffers() {
		if err := writeSurface(w, &img.Buffers()[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeSurface writes b with tightly packed rows.
func writeSurface(w io.Writer, b *texture.PixelBuffer) error {
	row, slice := pixfmt.ComputePitch(b.Format, b.Width, b.Height, pixfmt.PitchDefault)
	if row == b.RowPitch {
		if _, err := w.Write(b.Pix[:slice]); err != nil {
			return fmt.Errorf("dds: writing pixel data: %w", err)
		}
		return nil
	}
	for y := 0; y < pixfmt.ScanlineCount(b.Format, b.Height); y++ {
		if _, err := w.Write(b.Row(y)[:row]); err != nil {
			return fmt.Errorf("dds: writing pixel data: %w", err)
		}
	}
	return nil
}

// ReadMetadata reads and resolves the headers at the current position
// of r. The position is restored before returning, also on failure.
func (c Codec) ReadMetadata(r io.ReadSeeker) (meta Metadata, err error) {
	restore, err := mark(r)
	if err != nil {
		return Metadata{}, err
	}
	defer func() {
		err = errors.Join(err, restore())
	}()
	return ReadHeader(r, c.Flags)
}

// IsReadable reports whether r starts with the DDS magic number. Only
// I/O failures are errors; the position of r is restored.
func (Codec) IsReadable(r io.ReadSeeker) (ok bool, err error) {
	restore, err := mark(r)
	if err != nil {
		return false, err
	}
	defer func() {
		err = errors.Join(err, restore())
	}()

	var b [magicSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("dds: reading magic: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]) == Magic, nil
}

// mark records the position of r and returns a func seeking back to it.
func mark(r io.ReadSeeker) (func() error, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidArgument)
	}
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: stream is not seekable: %w", ErrInvalidArgument, err)
	}
	return func() error {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("dds: restoring stream position: %w", err)
		}
		return nil
	}, nil
}

// Decode reads one image from r; pal may be nil.
func Decode(r io.Reader, flags Flags, pal *Palette) (*texture.Image, error) {
	return Codec{Flags: flags, Palette: pal}.Decode(r)
}

// Encode writes img to w.
func Encode(w io.Writer, img *texture.Image, flags Flags) error {
	return Codec{Flags: flags}.Encode(w, img)
}

// ReadMetadata returns the image description at the current position of
// r without consuming it.
func ReadMetadata(r io.ReadSeeker, flags Flags) (texture.Info, error) {
	meta, err := Codec{Flags: flags}.ReadMetadata(r)
	if err != nil {
		return texture.Info{}, err
	}
	return meta.Info, nil
}

// IsReadable reports whether r holds a DDS stream at its current
// position, without consuming it.
func IsReadable(r io.ReadSeeker) (bool, error) {
	return Codec{}.IsReadable(r)
}
