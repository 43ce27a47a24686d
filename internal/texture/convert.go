package texture

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/erinpentecost/texkit/internal/bc"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/mauserzjeh/dxt"
	"golang.org/x/image/draw"
)

// ToNRGBA converts one surface into an 8-bit straight alpha image.
// Only the formats a preview needs are handled.
func ToNRGBA(b *PixelBuffer) (*image.NRGBA, error) {
	if b == nil {
		return nil, fmt.Errorf("texture: nil buffer")
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))

	if b.Format.IsCompressed() {
		var decoded []byte
		var err error
		w, h := uint(b.Width), uint(b.Height)
		switch b.Format {
		case pixfmt.BC1_UNorm, pixfmt.BC1_UNorm_SRgb:
			decoded, err = dxt.DecodeDXT1(b.Pix, w, h)
		case pixfmt.BC2_UNorm, pixfmt.BC2_UNorm_SRgb:
			decoded, err = dxt.DecodeDXT3(b.Pix, w, h)
		case pixfmt.BC3_UNorm, pixfmt.BC3_UNorm_SRgb:
			decoded, err = dxt.DecodeDXT5(b.Pix, w, h)
		default:
			return nil, fmt.Errorf("texture: no preview decoder for %s", b.Format)
		}
		if err != nil {
			return nil, fmt.Errorf("texture: decode %s: %w", b.Format, err)
		}
		if len(decoded) != len(out.Pix) {
			return nil, fmt.Errorf("texture: unexpected decoded byte length %d, want %d", len(decoded), len(out.Pix))
		}
		copy(out.Pix, decoded)
		return out, nil
	}

	var px func(row []byte, x int) color.NRGBA
	switch b.Format {
	case pixfmt.R8G8B8A8_UNorm, pixfmt.R8G8B8A8_UNorm_SRgb:
		px = func(row []byte, x int) color.NRGBA {
			return color.NRGBA{row[4*x], row[4*x+1], row[4*x+2], row[4*x+3]}
		}
	case pixfmt.B8G8R8A8_UNorm, pixfmt.B8G8R8A8_UNorm_SRgb:
		px = func(row []byte, x int) color.NRGBA {
			return color.NRGBA{row[4*x+2], row[4*x+1], row[4*x], row[4*x+3]}
		}
	case pixfmt.B8G8R8X8_UNorm, pixfmt.B8G8R8X8_UNorm_SRgb:
		px = func(row []byte, x int) color.NRGBA {
			return color.NRGBA{row[4*x+2], row[4*x+1], row[4*x], 0xff}
		}
	case pixfmt.R8_UNorm:
		px = func(row []byte, x int) color.NRGBA {
			return color.NRGBA{row[x], row[x], row[x], 0xff}
		}
	case pixfmt.A8_UNorm:
		px = func(row []byte, x int) color.NRGBA {
			return color.NRGBA{0, 0, 0, row[x]}
		}
	case pixfmt.R8G8_UNorm:
		// Luminance + alpha, as legacy A8L8 files load.
		px = func(row []byte, x int) color.NRGBA {
			return color.NRGBA{row[2*x], row[2*x], row[2*x], row[2*x+1]}
		}
	case pixfmt.B5G6R5_UNorm:
		px = func(row []byte, x int) color.NRGBA {
			v := binary.LittleEndian.Uint16(row[2*x:])
			return color.NRGBA{widen(v>>11, 5), widen(v>>5, 6), widen(v, 5), 0xff}
		}
	case pixfmt.B5G5R5A1_UNorm:
		px = func(row []byte, x int) color.NRGBA {
			v := binary.LittleEndian.Uint16(row[2*x:])
			return color.NRGBA{widen(v>>10, 5), widen(v>>5, 5), widen(v, 5), widen(v>>15, 1)}
		}
	case pixfmt.B4G4R4A4_UNorm:
		px = func(row []byte, x int) color.NRGBA {
			v := binary.LittleEndian.Uint16(row[2*x:])
			return color.NRGBA{widen(v>>8, 4), widen(v>>4, 4), widen(v, 4), widen(v>>12, 4)}
		}
	default:
		return nil, fmt.Errorf("texture: no preview decoder for %s", b.Format)
	}

	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		for x := 0; x < b.Width; x++ {
			out.SetNRGBA(x, y, px(row, x))
		}
	}
	return out, nil
}

// widen scales the low n bits of v to 8 bits.
func widen(v uint16, n uint) uint8 {
	v &= 1<<n - 1
	return uint8(uint32(v) * 255 / (1<<n - 1))
}

// Options controls FromImage.
type Options struct {
	// Format is R8G8B8A8_UNorm (default), B8G8R8A8_UNorm, BC1_UNorm or
	// BC3_UNorm.
	Format pixfmt.Format
	// MipCount is the number of levels to build; 0 builds the full chain.
	MipCount int
	// Filter scales each level from the previous one; nil uses
	// draw.CatmullRom.
	Filter draw.Interpolator
}

// FromImage builds a 2D texture from src.
func FromImage(src image.Image, opts Options) (*Image, error) {
	return FromImages(Texture2D, []image.Image{src}, opts)
}

// FromImages builds a texture of type typ with one array item (or cube
// face) per element of items. Every item must be the same size.
// Volumes are not built.
func FromImages(typ Type, items []image.Image, opts Options) (*Image, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("texture: no images")
	}
	if typ == Texture3D {
		return nil, fmt.Errorf("texture: cannot build %s images", typ)
	}
	b := items[0].Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("texture: empty image")
	}
	format := opts.Format
	if format == pixfmt.Unknown {
		format = pixfmt.R8G8B8A8_UNorm
	}
	mips := opts.MipCount
	if full := CountMips(b.Dx(), b.Dy(), 1); mips <= 0 || mips > full {
		mips = full
	}
	if format.IsCompressed() && (b.Dx()%4 != 0 || b.Dy()%4 != 0) {
		return nil, fmt.Errorf("texture: %dx%d is not a multiple of the 4x4 block size of %s", b.Dx(), b.Dy(), format)
	}

	m, err := New(Info{
		Type:       typ,
		Format:     format,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Depth:      1,
		MipCount:   mips,
		ArrayCount: len(items),
	}, pixfmt.PitchDefault)
	if err != nil {
		return nil, err
	}
	for item, src := range items {
		sb := src.Bounds()
		if sb.Size() != b.Size() {
			m.Release()
			return nil, fmt.Errorf("texture: item %d is %dx%d, want %dx%d", item, sb.Dx(), sb.Dy(), b.Dx(), b.Dy())
		}
		base := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
		draw.Draw(base, base.Bounds(), src, sb.Min, draw.Src)
		for level, img := range GenerateMips(base, mips, opts.Filter) {
			if err := storeLevel(m.Buffer(level, item), img); err != nil {
				m.Release()
				return nil, err
			}
		}
	}
	return m, nil
}

func storeLevel(dst *PixelBuffer, img *image.NRGBA) error {
	switch dst.Format {
	case pixfmt.BC1_UNorm:
		copy(dst.Pix, bc.CompressBC1(img))
	case pixfmt.BC3_UNorm:
		copy(dst.Pix, bc.CompressBC3(img))
	case pixfmt.R8G8B8A8_UNorm, pixfmt.B8G8R8A8_UNorm:
		bgra := dst.Format == pixfmt.B8G8R8A8_UNorm
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			copy(row, img.Pix[y*img.Stride:y*img.Stride+4*dst.Width])
			if bgra {
				for x := 0; x < dst.Width; x++ {
					row[4*x], row[4*x+2] = row[4*x+2], row[4*x]
				}
			}
		}
	default:
		return fmt.Errorf("texture: cannot build %s surfaces", dst.Format)
	}
	return nil
}

// GenerateMips returns count levels starting with base, each half the
// size of the previous one.
func GenerateMips(base *image.NRGBA, count int, filter draw.Interpolator) []*image.NRGBA {
	if filter == nil {
		filter = draw.CatmullRom
	}
	levels := []*image.NRGBA{base}
	w, h := base.Bounds().Dx(), base.Bounds().Dy()
	for level := 1; level < count; level++ {
		prev := levels[level-1]
		next := image.NewNRGBA(image.Rect(0, 0, MipSize(w, level), MipSize(h, level)))
		filter.Scale(next, next.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		levels = append(levels, next)
	}
	return levels
}

// Filter maps a filter name to an interpolator.
func Filter(name string) (draw.Interpolator, error) {
	switch name {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	default:
		return nil, fmt.Errorf("texture: unknown filter %q", name)
	}
}
