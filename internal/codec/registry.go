package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erinpentecost/texkit/internal/dds"
)

// Registry looks up codecs by file extension or content.
type Registry struct {
	codecs []Codec
}

// NewRegistry returns a registry trying codecs in the given order.
func NewRegistry(codecs ...Codec) *Registry {
	return &Registry{codecs: codecs}
}

// Default returns DDS, PNG, JPEG, GIF, BMP and TGA. TGA is tried last by
// Detect since it has no magic number.
func Default(flags dds.Flags) *Registry {
	return NewRegistry(
		dds.Codec{Flags: flags},
		PNG(),
		JPEG(90),
		GIF(),
		BMP(),
		TGA(),
	)
}

func (r *Registry) Codecs() []Codec { return r.codecs }

// ByName finds a codec by name or extension, ignoring case.
func (r *Registry) ByName(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	for _, c := range r.codecs {
		if strings.ToLower(c.Name()) == name || slices.Contains(c.Extensions(), name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ByExtension picks the codec for the extension of path.
func (r *Registry) ByExtension(path string) (Codec, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, c := range r.codecs {
		if slices.Contains(c.Extensions(), ext) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: extension of %q", ErrUnknownFormat, path)
}

// Detect returns the first codec that can read rs. The position of rs
// is left unchanged.
func (r *Registry) Detect(rs io.ReadSeeker) (Codec, error) {
	for _, c := range r.codecs {
		ok, err := c.IsReadable(rs)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", c.Name(), err)
		}
		if ok {
			return c, nil
		}
	}
	return nil, ErrUnknownFormat
}
