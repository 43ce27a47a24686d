package texture

import (
	"image"
	"math"
	"math/bits"

	"golang.org/x/image/draw"
)

// Processor adjusts a decoded surface before it is re-encoded.
type Processor interface {
	Process(src *image.NRGBA) (*image.NRGBA, error)
}

// PowerOfTwo rescales to the next power of two on each axis, after
// dividing both edges by DownScale. Block compressed mips stay whole
// blocks all the way down this way.
type PowerOfTwo struct {
	DownScale int
	Filter    draw.Interpolator
}

func (p PowerOfTwo) Process(src *image.NRGBA) (*image.NRGBA, error) {
	b := src.Bounds()
	div := max(p.DownScale, 1)
	w := nextPoT(uint64(b.Dx() / div))
	h := nextPoT(uint64(b.Dy() / div))
	if int(w) == b.Dx() && int(h) == b.Dy() {
		return src, nil
	}
	filter := p.Filter
	if filter == nil {
		filter = draw.CatmullRom
	}
	dst := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
	filter.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

func nextPoT(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len64(n)
}

// EdgeAlpha raises alpha near the border to at least Minimum, fading
// out cubically over Distance pixels.
type EdgeAlpha struct {
	Minimum  uint8
	Distance float64
}

func (p EdgeAlpha) Process(src *image.NRGBA) (*image.NRGBA, error) {
	b := src.Bounds()
	dist := math.Min(p.Distance, math.Min(float64(b.Dx())/2, float64(b.Dy())/2))
	if dist < 1 || p.Minimum == 0 {
		return src, nil
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := math.Min(float64(x-b.Min.X), float64(b.Max.X-1-x))
			dy := math.Min(float64(y-b.Min.Y), float64(b.Max.Y-1-y))
			d := math.Min(dx, dy)
			if d >= dist {
				continue
			}
			f := 1 - d/dist
			want := uint8(math.Round(float64(p.Minimum) * f * f * f))
			i := src.PixOffset(x, y) + 3
			if want > src.Pix[i] {
				src.Pix[i] = want
			}
		}
	}
	return src, nil
}

// Apply runs each processor in order.
func Apply(src *image.NRGBA, procs ...Processor) (*image.NRGBA, error) {
	var err error
	for _, p := range procs {
		if src, err = p.Process(src); err != nil {
			return nil, err
		}
	}
	return src, nil
}
