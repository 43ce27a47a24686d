// Package codec puts the texture file formats behind one interface so
// tools can pick a reader or writer by file name or by content.
package codec

import (
	"errors"
	"io"

	"github.com/erinpentecost/texkit/internal/texture"
)

var (
	ErrUnknownFormat = errors.New("codec: unknown file format")
	// ErrMultipleFrames is returned by single image codecs asked to
	// write an image with mips, array items or depth.
	ErrMultipleFrames = errors.New("codec: format holds a single image")
)

// Codec reads and writes one file format.
type Codec interface {
	Name() string
	// Extensions are lower case, without the dot. The first one is used
	// for new files.
	Extensions() []string
	// IsReadable peeks at r and restores its position.
	IsReadable(r io.ReadSeeker) (bool, error)
	Decode(r io.Reader) (*texture.Image, error)
	Encode(w io.Writer, img *texture.Image) error

	SupportsMultipleFrames() bool
	SupportsMipMaps() bool
	SupportsDepth() bool
	SupportsBlockCompression() bool
}
