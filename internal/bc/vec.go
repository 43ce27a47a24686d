package bc

import "math"

type vec3 [3]float64

func (a vec3) dot(b vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func (a vec3) add(b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func (a vec3) sub(b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func (a vec3) scale(s float64) vec3 { return vec3{a[0] * s, a[1] * s, a[2] * s} }

func (a vec3) normalize() vec3 {
	l := math.Sqrt(a.dot(a))
	if l == 0 {
		return vec3{}
	}
	return a.scale(1 / l)
}

// principalAxis estimates the dominant eigenvector of a 3x3 covariance
// matrix with a few rounds of power iteration.
func principalAxis(m [3][3]float64) vec3 {
	v := vec3{1, 1, 1}.normalize()
	for i := 0; i < 8; i++ {
		next := vec3{
			m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
			m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
			m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
		}.normalize()
		if next == (vec3{}) {
			// Flat block: every pixel is the mean.
			return v
		}
		v = next
	}
	return v
}

func to565(c vec3) uint16 {
	clamp := func(f float64) uint32 {
		return uint32(math.Round(math.Max(0, math.Min(255, f))))
	}
	return uint16(clamp(c[0])>>3<<11 | clamp(c[1])>>2<<5 | clamp(c[2])>>3)
}

// from565 expands a 565 color with the high bits replicated into the
// low bits, matching how decoders reconstruct endpoints.
func from565(v uint16) [3]uint8 {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return [3]uint8{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2}
}
