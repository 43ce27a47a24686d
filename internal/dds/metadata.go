package dds

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texture"
)

// Metadata is the fully resolved description of a file: the image shape
// plus what the copier has to do with the stored pixels.
type Metadata struct {
	Info       texture.Info
	Conversion ConversionFlags
	// Pitch describes the rows as stored in the file.
	Pitch pixfmt.PitchFlags

	Header Header
	// DX10 is nil for legacy files.
	DX10 *HeaderDX10
}

// ReadHeader reads the magic number, the header and the DX10 extension
// header if there is one, and resolves them. Nothing past the headers
// is consumed.
func ReadHeader(r io.Reader, flags Flags) (Metadata, error) {
	var buf [magicSize + headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Metadata{}, readErr("header", err)
	}
	if magic := binary.LittleEndian.Uint32(buf[:magicSize]); magic != Magic {
		return Metadata{}, invalidf("bad magic %#08x", magic)
	}
	h := parseHeader(buf[magicSize:])

	var ext *HeaderDX10
	if h.HasDX10() {
		var b [headerDX10Size]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return Metadata{}, readErr("DX10 header", err)
		}
		e := parseHeaderDX10(b[:])
		ext = &e
	}
	return Resolve(&h, ext, flags)
}

// Resolve derives the image description of a parsed header. h and ext
// are not modified.
func Resolve(h *Header, ext *HeaderDX10, flags Flags) (Metadata, error) {
	if h.Size != headerSize || h.PixelFormat.Size != pixelFormatSize {
		return Metadata{}, invalidf("header size %d, pixel format size %d", h.Size, h.PixelFormat.Size)
	}

	m := Metadata{
		Header: *h,
		Pitch:  flags.pitchFlags(),
	}
	info := texture.Info{
		Width:      int(h.Width),
		Height:     int(h.Height),
		Depth:      1,
		MipCount:   max(1, int(h.MipMapCount)),
		ArrayCount: 1,
	}

	if ext != nil {
		if h.PixelFormat.Flags&pfFourCC == 0 || h.PixelFormat.FourCC != fourCCDX10 {
			return Metadata{}, invalidf("DX10 header without DX10 pixel format")
		}
		e := *ext
		m.DX10 = &e
		m.Conversion |= ConvDX10

		if e.ArraySize == 0 || e.ArraySize > texture.MaxArrayCount {
			return Metadata{}, invalidf("DX10 array size %d", e.ArraySize)
		}
		if !e.Format.IsValid() || e.Format.IsTypeless() {
			return Metadata{}, &UnsupportedFormatError{Format: e.Format, FourCC: fourCCDX10, Reason: "not a loadable DX10 format"}
		}
		info.Format = e.Format
		info.ArrayCount = int(e.ArraySize)

		switch e.ResourceDimension {
		case dimensionTexture1D:
			if h.Flags&headerHeight != 0 && h.Height != 1 {
				return Metadata{}, invalidf("1D texture with height %d", h.Height)
			}
			info.Type = texture.Texture1D
			info.Height = 1
		case dimensionTexture2D:
			info.Type = texture.Texture2D
			if e.MiscFlag&miscTextureCube != 0 {
				info.Type = texture.TextureCube
				info.ArrayCount *= 6
			}
		case dimensionTexture3D:
			if h.Flags&headerVolume == 0 {
				return Metadata{}, invalidf("3D texture without volume flag")
			}
			if info.ArrayCount > 1 {
				return Metadata{}, &UnsupportedFormatError{Format: e.Format, FourCC: fourCCDX10, Reason: "volume texture arrays"}
			}
			info.Type = texture.Texture3D
			info.Depth = int(h.Depth)
		default:
			return Metadata{}, invalidf("resource dimension %d", e.ResourceDimension)
		}
	} else {
		if h.HasDX10() {
			return Metadata{}, invalidf("DX10 pixel format without DX10 header")
		}
		format, conv, err := ResolveLegacy(h.PixelFormat, flags)
		if err != nil {
			return Metadata{}, err
		}
		info.Format = format
		m.Conversion = conv

		switch {
		case h.Flags&headerVolume != 0:
			info.Type = texture.Texture3D
			info.Depth = int(h.Depth)
		case h.Caps2&caps2CubeMap != 0:
			if h.Caps2&caps2CubeMapAllFaces != caps2CubeMapAllFaces {
				return Metadata{}, invalidf("partial cube map, faces %#x", h.Caps2&caps2CubeMapAllFaces)
			}
			info.Type = texture.TextureCube
			info.ArrayCount = 6
		default:
			info.Type = texture.Texture2D
		}

		info.Format, m.Conversion = applyLegacyOverrides(info.Format, m.Conversion, flags)
	}

	if info.Format.IsCompressed() && (info.Width%4 != 0 || info.Height%4 != 0) {
		return Metadata{}, invalidf("%dx%d %s is not block aligned", info.Width, info.Height, info.Format)
	}
	if err := info.Validate(); err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	m.Info = info
	return m, nil
}

// applyLegacyOverrides applies ForceRGB and No16BPP to a resolved legacy
// format.
func applyLegacyOverrides(f pixfmt.Format, conv ConversionFlags, flags Flags) (pixfmt.Format, ConversionFlags) {
	if flags&ForceRGB != 0 {
		switch f {
		case pixfmt.B8G8R8A8_UNorm:
			return pixfmt.R8G8B8A8_UNorm, conv | ConvSwizzle
		case pixfmt.B8G8R8X8_UNorm:
			return pixfmt.R8G8B8A8_UNorm, conv | ConvSwizzle | ConvNoAlpha
		case pixfmt.B8G8R8A8_Typeless:
			return pixfmt.R8G8B8A8_Typeless, conv | ConvSwizzle
		case pixfmt.B8G8R8X8_Typeless:
			return pixfmt.R8G8B8A8_Typeless, conv | ConvSwizzle | ConvNoAlpha
		case pixfmt.B8G8R8A8_UNorm_SRgb:
			return pixfmt.R8G8B8A8_UNorm_SRgb, conv | ConvSwizzle
		case pixfmt.B8G8R8X8_UNorm_SRgb:
			return pixfmt.R8G8B8A8_UNorm_SRgb, conv | ConvSwizzle | ConvNoAlpha
		}
	}
	if flags&No16BPP != 0 {
		switch f {
		case pixfmt.B5G6R5_UNorm:
			return pixfmt.R8G8B8A8_UNorm, conv | ConvExpand | ConvNoAlpha
		case pixfmt.B5G5R5A1_UNorm, pixfmt.B4G4R4A4_UNorm:
			return pixfmt.R8G8B8A8_UNorm, conv | ConvExpand
		}
	}
	return f, conv
}

// needsDX10 reports whether info can only be described by the DX10
// extension header.
func needsDX10(info texture.Info, flags Flags) bool {
	if flags&ForceDX10 != 0 || info.Type == texture.Texture1D {
		return true
	}
	return info.ArrayCount > 1 && !(info.Type == texture.TextureCube && info.ArrayCount == 6)
}

// EncodeHeader returns the magic number and headers describing info.
func EncodeHeader(info texture.Info, flags Flags) ([]byte, error) {
	if !info.Format.IsValid() || info.Format.IsTypeless() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument,
			&UnsupportedFormatError{Format: info.Format, Reason: "cannot be written"})
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	pf, legacy := PixelFormat{}, false
	dx10 := needsDX10(info, flags)
	if !dx10 {
		pf, legacy = LegacyPixelFormat(info.Format, flags)
		dx10 = !legacy
	}
	if dx10 && flags&ForceDX9Legacy != 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument,
			&UnsupportedFormatError{Format: info.Format, Reason: "needs the DX10 header"})
	}
	if dx10 {
		pf = pfDX10
	}

	h := Header{
		Size:        headerSize,
		Flags:       headerTexture,
		Height:      uint32(info.Height),
		Width:       uint32(info.Width),
		MipMapCount: uint32(info.MipCount),
		PixelFormat: pf,
		Caps:        capsTexture,
	}
	if info.MipCount > 1 {
		h.Flags |= headerMipMap
		h.Caps |= capsMipMap
	}
	switch info.Type {
	case texture.TextureCube:
		h.Caps |= capsCubeMap
		h.Caps2 |= caps2CubeMap | caps2CubeMapAllFaces
	case texture.Texture3D:
		h.Flags |= headerVolume
		h.Caps2 |= caps2Volume
		h.Depth = uint32(info.Depth)
	}

	row, slice := pixfmt.ComputePitch(info.Format, info.Width, info.Height, pixfmt.PitchDefault)
	if info.Format.IsCompressed() {
		h.Flags |= headerLinearSize
		h.PitchOrLinearSize = uint32(slice)
	} else {
		h.Flags |= headerPitch
		h.PitchOrLinearSize = uint32(row)
	}

	out := make([]byte, magicSize, magicSize+headerSize+headerDX10Size)
	binary.LittleEndian.PutUint32(out, Magic)
	out = appendHeader(out, &h)
	if !dx10 {
		return out, nil
	}

	ext := HeaderDX10{
		Format:    info.Format,
		ArraySize: uint32(info.ArrayCount),
	}
	switch info.Type {
	case texture.Texture1D:
		ext.ResourceDimension = dimensionTexture1D
	case texture.Texture2D:
		ext.ResourceDimension = dimensionTexture2D
	case texture.TextureCube:
		ext.ResourceDimension = dimensionTexture2D
		ext.MiscFlag = miscTextureCube
		ext.ArraySize = uint32(info.ArrayCount / 6)
	case texture.Texture3D:
		ext.ResourceDimension = dimensionTexture3D
	}
	return appendHeaderDX10(out, &ext), nil
}
