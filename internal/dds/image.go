package dds

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/erinpentecost/texkit/internal/texture"
)

func init() {
	image.RegisterFormat("dds", "DDS ", DecodeImage, DecodeConfig)
}

// DecodeImage decodes the top mip of the first array item (or depth
// slice) as an image.Image. Formats without a preview conversion fail.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := Decode(r, FlagsNone, nil)
	if err != nil {
		return nil, err
	}
	defer img.Release()
	out, err := texture.ToNRGBA(img.Buffer(0, 0))
	if err != nil {
		return nil, fmt.Errorf("dds: %w", err)
	}
	return out, nil
}

// DecodeConfig returns the size of the top mip. The color model is
// always NRGBA, which is what DecodeImage produces.
func DecodeConfig(r io.Reader) (image.Config, error) {
	meta, err := ReadHeader(r, FlagsNone)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      meta.Info.Width,
		Height:     meta.Info.Height,
	}, nil
}
