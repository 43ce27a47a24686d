package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/dblezek/tga"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
	"golang.org/x/image/bmp"
)

// single adapts an image.Image codec. Decoded files become one
// R8G8B8A8 surface; only such single surface images can be written.
type single struct {
	name   string
	exts   []string
	magic  [][]byte
	peek   int
	sniff  func([]byte) bool
	decode func(io.Reader) (image.Image, error)
	encode func(io.Writer, image.Image) error
}

func (s *single) Name() string { return s.name }

func (s *single) Extensions() []string { return s.exts }

func (s *single) SupportsMultipleFrames() bool { return false }

func (s *single) SupportsMipMaps() bool { return false }

func (s *single) SupportsDepth() bool { return false }

func (s *single) SupportsBlockCompression() bool { return false }

func (s *single) IsReadable(r io.ReadSeeker) (ok bool, err error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, fmt.Errorf("codec: %s: %w", s.name, err)
	}
	defer func() {
		if _, serr := r.Seek(pos, io.SeekStart); serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	buf := make([]byte, s.peek)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, fmt.Errorf("codec: %s: %w", s.name, err)
	}
	buf = buf[:n]
	for _, m := range s.magic {
		if bytes.HasPrefix(buf, m) {
			return true, nil
		}
	}
	if s.sniff != nil && len(buf) == s.peek {
		return s.sniff(buf), nil
	}
	return false, nil
}

func (s *single) Decode(r io.Reader) (*texture.Image, error) {
	m, err := s.decode(r)
	if err != nil {
		return nil, fmt.Errorf("codec: %s: %w", s.name, err)
	}
	return texture.FromImage(m, texture.Options{Format: pixfmt.R8G8B8A8_UNorm, MipCount: 1})
}

func (s *single) Encode(w io.Writer, img *texture.Image) error {
	if img == nil {
		return fmt.Errorf("codec: %s: nil image", s.name)
	}
	info := img.Info()
	if info.MipCount > 1 || info.ArrayCount > 1 || info.Depth > 1 {
		return fmt.Errorf("%w: %s cannot store %s", ErrMultipleFrames, s.name, img)
	}
	m, err := texture.ToNRGBA(img.Buffer(0, 0))
	if err != nil {
		return fmt.Errorf("codec: %s: %w", s.name, err)
	}
	if err := s.encode(w, m); err != nil {
		return fmt.Errorf("codec: %s: %w", s.name, err)
	}
	return nil
}

func PNG() Codec {
	return &single{
		name:   "PNG",
		exts:   []string{"png"},
		magic:  [][]byte{[]byte("\x89PNG\r\n\x1a\n")},
		peek:   8,
		decode: png.Decode,
		encode: png.Encode,
	}
}

func JPEG(quality int) Codec {
	return &single{
		name:   "JPEG",
		exts:   []string{"jpg", "jpeg"},
		magic:  [][]byte{{0xff, 0xd8, 0xff}},
		peek:   3,
		decode: jpeg.Decode,
		encode: func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: quality})
		},
	}
}

func GIF() Codec {
	return &single{
		name:   "GIF",
		exts:   []string{"gif"},
		magic:  [][]byte{[]byte("GIF87a"), []byte("GIF89a")},
		peek:   6,
		decode: gif.Decode,
		encode: func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, nil)
		},
	}
}

func BMP() Codec {
	return &single{
		name:   "BMP",
		exts:   []string{"bmp"},
		magic:  [][]byte{[]byte("BM")},
		peek:   2,
		decode: bmp.Decode,
		encode: bmp.Encode,
	}
}

// TGA files carry no magic number; the 18 byte header is checked for
// plausible values instead.
func TGA() Codec {
	return &single{
		name:   "TGA",
		exts:   []string{"tga"},
		peek:   18,
		sniff:  sniffTGA,
		decode: tga.Decode,
		encode: tga.Encode,
	}
}

func sniffTGA(h []byte) bool {
	colorMapType, imageType := h[1], h[2]
	if colorMapType > 1 {
		return false
	}
	switch imageType {
	case 1, 2, 3, 9, 10, 11:
	default:
		return false
	}
	width := int(h[12]) | int(h[13])<<8
	height := int(h[14]) | int(h[15])<<8
	switch depth := h[16]; depth {
	case 8, 15, 16, 24, 32:
	default:
		return false
	}
	return width > 0 && height > 0
}
