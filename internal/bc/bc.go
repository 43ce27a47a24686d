// Package bc compresses RGBA pixels into BC1 (DXT1) and BC3 (DXT5)
// blocks.
package bc

import (
	"encoding/binary"
	"image"
	"image/color"
)

const (
	// BC1BlockBytes is the size of one BC1 block (color only).
	BC1BlockBytes = 8
	// BC3BlockBytes is the size of one BC3 block (alpha + color).
	BC3BlockBytes = 16
)

// CompressBC1 encodes src as rows of BC1 blocks. Alpha is ignored.
// Partial blocks at the right and bottom edges are padded with the
// transparent black pixels outside the image.
func CompressBC1(src *image.NRGBA) []byte {
	return compress(src, BC1BlockBytes, func(dst []byte, px *[16]color.NRGBA) {
		compressColor(dst, px)
	})
}

// CompressBC3 encodes src as rows of BC3 blocks.
func CompressBC3(src *image.NRGBA) []byte {
	return compress(src, BC3BlockBytes, func(dst []byte, px *[16]color.NRGBA) {
		compressAlpha(dst[:8], px)
		compressColor(dst[8:], px)
	})
}

func compress(src *image.NRGBA, blockBytes int, encode func([]byte, *[16]color.NRGBA)) []byte {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	blocksAcross := max(1, (width+3)/4)
	blocksDown := max(1, (height+3)/4)
	out := make([]byte, blocksAcross*blocksDown*blockBytes)

	var px [16]color.NRGBA
	off := 0
	for by := 0; by < blocksDown*4; by += 4 {
		for bx := 0; bx < blocksAcross*4; bx += 4 {
			i := 0
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 4; dx++ {
					x, y := bx+dx, by+dy
					if x < width && y < height {
						px[i] = src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
					} else {
						px[i] = color.NRGBA{}
					}
					i++
				}
			}
			encode(out[off:off+blockBytes], &px)
			off += blockBytes
		}
	}
	return out
}

// compressAlpha writes an 8 byte interpolated alpha block.
func compressAlpha(dst []byte, px *[16]color.NRGBA) {
	minA, maxA := uint8(255), uint8(0)
	for _, p := range px {
		minA = min(minA, p.A)
		maxA = max(maxA, p.A)
	}

	a0, a1 := maxA, minA
	var palette [8]uint8
	palette[0], palette[1] = a0, a1
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			num := uint32((7-i)*int(a0) + i*int(a1))
			palette[1+i] = uint8((num + 3) / 7)
		}
	} else {
		for i := 1; i <= 4; i++ {
			num := uint32((5-i)*int(a0) + i*int(a1))
			palette[1+i] = uint8((num + 2) / 5)
		}
		palette[6] = 0
		palette[7] = 255
	}

	var bits uint64
	for i, p := range px {
		best, bestDist := 0, int(^uint(0)>>1)
		for j, v := range palette {
			d := int(p.A) - int(v)
			d *= d
			if d < bestDist {
				bestDist, best = d, j
			}
		}
		bits |= uint64(best) << (3 * uint(i))
	}

	dst[0], dst[1] = a0, a1
	for i := 0; i < 6; i++ {
		dst[2+i] = byte(bits >> (8 * uint(i)))
	}
}

// compressColor writes an 8 byte four-color block whose endpoints come
// from the principal axis of the block's colors.
func compressColor(dst []byte, px *[16]color.NRGBA) {
	var avg vec3
	for _, p := range px {
		avg = avg.add(vec3{float64(p.R), float64(p.G), float64(p.B)})
	}
	avg = avg.scale(1.0 / 16.0)

	var cov [3][3]float64
	for _, p := range px {
		d := vec3{float64(p.R), float64(p.G), float64(p.B)}.sub(avg)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov[r][c] += d[r] * d[c]
			}
		}
	}
	axis := principalAxis(cov)

	minProj, maxProj := 0.0, 0.0
	for i, p := range px {
		proj := vec3{float64(p.R), float64(p.G), float64(p.B)}.sub(avg).dot(axis)
		if i == 0 || proj < minProj {
			minProj = proj
		}
		if i == 0 || proj > maxProj {
			maxProj = proj
		}
	}

	c0 := to565(avg.add(axis.scale(maxProj)))
	c1 := to565(avg.add(axis.scale(minProj)))
	// c0 <= c1 selects the three color + transparent mode.
	if c0 < c1 {
		c0, c1 = c1, c0
	}

	var palette [4][3]uint8
	palette[0] = from565(c0)
	palette[1] = from565(c1)
	for i := 0; i < 3; i++ {
		palette[2][i] = uint8((2*uint16(palette[0][i]) + uint16(palette[1][i]) + 1) / 3)
		palette[3][i] = uint8((uint16(palette[0][i]) + 2*uint16(palette[1][i]) + 1) / 3)
	}

	var indices uint32
	if c0 != c1 {
		for i, p := range px {
			best, bestDist := 0, int(^uint(0)>>1)
			for j, e := range palette {
				dr := int(p.R) - int(e[0])
				dg := int(p.G) - int(e[1])
				db := int(p.B) - int(e[2])
				if d := dr*dr + dg*dg + db*db; d < bestDist {
					bestDist, best = d, j
				}
			}
			indices |= uint32(best) << (2 * uint(i))
		}
	}

	binary.LittleEndian.PutUint16(dst[0:], c0)
	binary.LittleEndian.PutUint16(dst[2:], c1)
	binary.LittleEndian.PutUint32(dst[4:], indices)
}
