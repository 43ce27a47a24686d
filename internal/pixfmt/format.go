// Package pixfmt describes the canonical pixel formats used by textures.
//
// Format values are numbered exactly like DXGI_FORMAT so they can be
// written to and read from a DDS DX10 header without translation.
package pixfmt

import "fmt"

type Format uint32

const (
	Unknown                    Format = 0
	R32G32B32A32_Typeless      Format = 1
	R32G32B32A32_Float         Format = 2
	R32G32B32A32_UInt          Format = 3
	R32G32B32A32_SInt          Format = 4
	R32G32B32_Typeless         Format = 5
	R32G32B32_Float            Format = 6
	R32G32B32_UInt             Format = 7
	R32G32B32_SInt             Format = 8
	R16G16B16A16_Typeless      Format = 9
	R16G16B16A16_Float         Format = 10
	R16G16B16A16_UNorm         Format = 11
	R16G16B16A16_UInt          Format = 12
	R16G16B16A16_SNorm         Format = 13
	R16G16B16A16_SInt          Format = 14
	R32G32_Typeless            Format = 15
	R32G32_Float               Format = 16
	R32G32_UInt                Format = 17
	R32G32_SInt                Format = 18
	R32G8X24_Typeless          Format = 19
	D32_Float_S8X24_UInt       Format = 20
	R32_Float_X8X24_Typeless   Format = 21
	X32_Typeless_G8X24_UInt    Format = 22
	R10G10B10A2_Typeless       Format = 23
	R10G10B10A2_UNorm          Format = 24
	R10G10B10A2_UInt           Format = 25
	R11G11B10_Float            Format = 26
	R8G8B8A8_Typeless          Format = 27
	R8G8B8A8_UNorm             Format = 28
	R8G8B8A8_UNorm_SRgb        Format = 29
	R8G8B8A8_UInt              Format = 30
	R8G8B8A8_SNorm             Format = 31
	R8G8B8A8_SInt              Format = 32
	R16G16_Typeless            Format = 33
	R16G16_Float               Format = 34
	R16G16_UNorm               Format = 35
	R16G16_UInt                Format = 36
	R16G16_SNorm               Format = 37
	R16G16_SInt                Format = 38
	R32_Typeless               Format = 39
	D32_Float                  Format = 40
	R32_Float                  Format = 41
	R32_UInt                   Format = 42
	R32_SInt                   Format = 43
	R24G8_Typeless             Format = 44
	D24_UNorm_S8_UInt          Format = 45
	R24_UNorm_X8_Typeless      Format = 46
	X24_Typeless_G8_UInt       Format = 47
	R8G8_Typeless              Format = 48
	R8G8_UNorm                 Format = 49
	R8G8_UInt                  Format = 50
	R8G8_SNorm                 Format = 51
	R8G8_SInt                  Format = 52
	R16_Typeless               Format = 53
	R16_Float                  Format = 54
	D16_UNorm                  Format = 55
	R16_UNorm                  Format = 56
	R16_UInt                   Format = 57
	R16_SNorm                  Format = 58
	R16_SInt                   Format = 59
	R8_Typeless                Format = 60
	R8_UNorm                   Format = 61
	R8_UInt                    Format = 62
	R8_SNorm                   Format = 63
	R8_SInt                    Format = 64
	A8_UNorm                   Format = 65
	R1_UNorm                   Format = 66
	R9G9B9E5_SharedExp         Format = 67
	R8G8_B8G8_UNorm            Format = 68
	G8R8_G8B8_UNorm            Format = 69
	BC1_Typeless               Format = 70
	BC1_UNorm                  Format = 71
	BC1_UNorm_SRgb             Format = 72
	BC2_Typeless               Format = 73
	BC2_UNorm                  Format = 74
	BC2_UNorm_SRgb             Format = 75
	BC3_Typeless               Format = 76
	BC3_UNorm                  Format = 77
	BC3_UNorm_SRgb             Format = 78
	BC4_Typeless               Format = 79
	BC4_UNorm                  Format = 80
	BC4_SNorm                  Format = 81
	BC5_Typeless               Format = 82
	BC5_UNorm                  Format = 83
	BC5_SNorm                  Format = 84
	B5G6R5_UNorm               Format = 85
	B5G5R5A1_UNorm             Format = 86
	B8G8R8A8_UNorm             Format = 87
	B8G8R8X8_UNorm             Format = 88
	R10G10B10_Xr_Bias_A2_UNorm Format = 89
	B8G8R8A8_Typeless          Format = 90
	B8G8R8A8_UNorm_SRgb        Format = 91
	B8G8R8X8_Typeless          Format = 92
	B8G8R8X8_UNorm_SRgb        Format = 93
	BC6H_Typeless              Format = 94
	BC6H_Uf16                  Format = 95
	BC6H_Sf16                  Format = 96
	BC7_Typeless               Format = 97
	BC7_UNorm                  Format = 98
	BC7_UNorm_SRgb             Format = 99
	AYUV                       Format = 100
	Y410                       Format = 101
	Y416                       Format = 102
	YUY2                       Format = 107
	Y210                       Format = 108
	Y216                       Format = 109
	AI44                       Format = 111
	IA44                       Format = 112
	P8                         Format = 113
	A8P8                       Format = 114
	B4G4R4A4_UNorm             Format = 115

	formatCount = 116
)

// FormatInfo is the static description of a Format.
type FormatInfo struct {
	Name string
	// BitsPerPixel is the average bit count of one pixel. For block
	// compressed formats this is the block size spread over 16 pixels.
	BitsPerPixel int
	// BlockBytes is the size of one 4x4 block, or 0 for formats that are
	// not block compressed.
	BlockBytes int
	Typeless   bool
	SRGB       bool
	// PackedBytes is the size of a two pixel group for 4:2:2 layouts.
	PackedBytes int
}

// Compressed reports whether the format stores 4x4 pixel blocks.
func (i FormatInfo) Compressed() bool { return i.BlockBytes > 0 }

// BytesPerPixel rounds BitsPerPixel up to whole bytes.
func (i FormatInfo) BytesPerPixel() int { return (i.BitsPerPixel + 7) / 8 }

var formatTable = [formatCount]FormatInfo{
	R32G32B32A32_Typeless:      {Name: "R32G32B32A32_Typeless", BitsPerPixel: 128, Typeless: true},
	R32G32B32A32_Float:         {Name: "R32G32B32A32_Float", BitsPerPixel: 128},
	R32G32B32A32_UInt:          {Name: "R32G32B32A32_UInt", BitsPerPixel: 128},
	R32G32B32A32_SInt:          {Name: "R32G32B32A32_SInt", BitsPerPixel: 128},
	R32G32B32_Typeless:         {Name: "R32G32B32_Typeless", BitsPerPixel: 96, Typeless: true},
	R32G32B32_Float:            {Name: "R32G32B32_Float", BitsPerPixel: 96},
	R32G32B32_UInt:             {Name: "R32G32B32_UInt", BitsPerPixel: 96},
	R32G32B32_SInt:             {Name: "R32G32B32_SInt", BitsPerPixel: 96},
	R16G16B16A16_Typeless:      {Name: "R16G16B16A16_Typeless", BitsPerPixel: 64, Typeless: true},
	R16G16B16A16_Float:         {Name: "R16G16B16A16_Float", BitsPerPixel: 64},
	R16G16B16A16_UNorm:         {Name: "R16G16B16A16_UNorm", BitsPerPixel: 64},
	R16G16B16A16_UInt:          {Name: "R16G16B16A16_UInt", BitsPerPixel: 64},
	R16G16B16A16_SNorm:         {Name: "R16G16B16A16_SNorm", BitsPerPixel: 64},
	R16G16B16A16_SInt:          {Name: "R16G16B16A16_SInt", BitsPerPixel: 64},
	R32G32_Typeless:            {Name: "R32G32_Typeless", BitsPerPixel: 64, Typeless: true},
	R32G32_Float:               {Name: "R32G32_Float", BitsPerPixel: 64},
	R32G32_UInt:                {Name: "R32G32_UInt", BitsPerPixel: 64},
	R32G32_SInt:                {Name: "R32G32_SInt", BitsPerPixel: 64},
	R32G8X24_Typeless:          {Name: "R32G8X24_Typeless", BitsPerPixel: 64, Typeless: true},
	D32_Float_S8X24_UInt:       {Name: "D32_Float_S8X24_UInt", BitsPerPixel: 64},
	R32_Float_X8X24_Typeless:   {Name: "R32_Float_X8X24_Typeless", BitsPerPixel: 64, Typeless: true},
	X32_Typeless_G8X24_UInt:    {Name: "X32_Typeless_G8X24_UInt", BitsPerPixel: 64, Typeless: true},
	R10G10B10A2_Typeless:       {Name: "R10G10B10A2_Typeless", BitsPerPixel: 32, Typeless: true},
	R10G10B10A2_UNorm:          {Name: "R10G10B10A2_UNorm", BitsPerPixel: 32},
	R10G10B10A2_UInt:           {Name: "R10G10B10A2_UInt", BitsPerPixel: 32},
	R11G11B10_Float:            {Name: "R11G11B10_Float", BitsPerPixel: 32},
	R8G8B8A8_Typeless:          {Name: "R8G8B8A8_Typeless", BitsPerPixel: 32, Typeless: true},
	R8G8B8A8_UNorm:             {Name: "R8G8B8A8_UNorm", BitsPerPixel: 32},
	R8G8B8A8_UNorm_SRgb:        {Name: "R8G8B8A8_UNorm_SRgb", BitsPerPixel: 32, SRGB: true},
	R8G8B8A8_UInt:              {Name: "R8G8B8A8_UInt", BitsPerPixel: 32},
	R8G8B8A8_SNorm:             {Name: "R8G8B8A8_SNorm", BitsPerPixel: 32},
	R8G8B8A8_SInt:              {Name: "R8G8B8A8_SInt", BitsPerPixel: 32},
	R16G16_Typeless:            {Name: "R16G16_Typeless", BitsPerPixel: 32, Typeless: true},
	R16G16_Float:               {Name: "R16G16_Float", BitsPerPixel: 32},
	R16G16_UNorm:               {Name: "R16G16_UNorm", BitsPerPixel: 32},
	R16G16_UInt:                {Name: "R16G16_UInt", BitsPerPixel: 32},
	R16G16_SNorm:               {Name: "R16G16_SNorm", BitsPerPixel: 32},
	R16G16_SInt:                {Name: "R16G16_SInt", BitsPerPixel: 32},
	R32_Typeless:               {Name: "R32_Typeless", BitsPerPixel: 32, Typeless: true},
	D32_Float:                  {Name: "D32_Float", BitsPerPixel: 32},
	R32_Float:                  {Name: "R32_Float", BitsPerPixel: 32},
	R32_UInt:                   {Name: "R32_UInt", BitsPerPixel: 32},
	R32_SInt:                   {Name: "R32_SInt", BitsPerPixel: 32},
	R24G8_Typeless:             {Name: "R24G8_Typeless", BitsPerPixel: 32, Typeless: true},
	D24_UNorm_S8_UInt:          {Name: "D24_UNorm_S8_UInt", BitsPerPixel: 32},
	R24_UNorm_X8_Typeless:      {Name: "R24_UNorm_X8_Typeless", BitsPerPixel: 32, Typeless: true},
	X24_Typeless_G8_UInt:       {Name: "X24_Typeless_G8_UInt", BitsPerPixel: 32, Typeless: true},
	R8G8_Typeless:              {Name: "R8G8_Typeless", BitsPerPixel: 16, Typeless: true},
	R8G8_UNorm:                 {Name: "R8G8_UNorm", BitsPerPixel: 16},
	R8G8_UInt:                  {Name: "R8G8_UInt", BitsPerPixel: 16},
	R8G8_SNorm:                 {Name: "R8G8_SNorm", BitsPerPixel: 16},
	R8G8_SInt:                  {Name: "R8G8_SInt", BitsPerPixel: 16},
	R16_Typeless:               {Name: "R16_Typeless", BitsPerPixel: 16, Typeless: true},
	R16_Float:                  {Name: "R16_Float", BitsPerPixel: 16},
	D16_UNorm:                  {Name: "D16_UNorm", BitsPerPixel: 16},
	R16_UNorm:                  {Name: "R16_UNorm", BitsPerPixel: 16},
	R16_UInt:                   {Name: "R16_UInt", BitsPerPixel: 16},
	R16_SNorm:                  {Name: "R16_SNorm", BitsPerPixel: 16},
	R16_SInt:                   {Name: "R16_SInt", BitsPerPixel: 16},
	R8_Typeless:                {Name: "R8_Typeless", BitsPerPixel: 8, Typeless: true},
	R8_UNorm:                   {Name: "R8_UNorm", BitsPerPixel: 8},
	R8_UInt:                    {Name: "R8_UInt", BitsPerPixel: 8},
	R8_SNorm:                   {Name: "R8_SNorm", BitsPerPixel: 8},
	R8_SInt:                    {Name: "R8_SInt", BitsPerPixel: 8},
	A8_UNorm:                   {Name: "A8_UNorm", BitsPerPixel: 8},
	R1_UNorm:                   {Name: "R1_UNorm", BitsPerPixel: 1},
	R9G9B9E5_SharedExp:         {Name: "R9G9B9E5_SharedExp", BitsPerPixel: 32},
	R8G8_B8G8_UNorm:            {Name: "R8G8_B8G8_UNorm", BitsPerPixel: 16, PackedBytes: 4},
	G8R8_G8B8_UNorm:            {Name: "G8R8_G8B8_UNorm", BitsPerPixel: 16, PackedBytes: 4},
	BC1_Typeless:               {Name: "BC1_Typeless", BitsPerPixel: 4, BlockBytes: 8, Typeless: true},
	BC1_UNorm:                  {Name: "BC1_UNorm", BitsPerPixel: 4, BlockBytes: 8},
	BC1_UNorm_SRgb:             {Name: "BC1_UNorm_SRgb", BitsPerPixel: 4, BlockBytes: 8, SRGB: true},
	BC2_Typeless:               {Name: "BC2_Typeless", BitsPerPixel: 8, BlockBytes: 16, Typeless: true},
	BC2_UNorm:                  {Name: "BC2_UNorm", BitsPerPixel: 8, BlockBytes: 16},
	BC2_UNorm_SRgb:             {Name: "BC2_UNorm_SRgb", BitsPerPixel: 8, BlockBytes: 16, SRGB: true},
	BC3_Typeless:               {Name: "BC3_Typeless", BitsPerPixel: 8, BlockBytes: 16, Typeless: true},
	BC3_UNorm:                  {Name: "BC3_UNorm", BitsPerPixel: 8, BlockBytes: 16},
	BC3_UNorm_SRgb:             {Name: "BC3_UNorm_SRgb", BitsPerPixel: 8, BlockBytes: 16, SRGB: true},
	BC4_Typeless:               {Name: "BC4_Typeless", BitsPerPixel: 4, BlockBytes: 8, Typeless: true},
	BC4_UNorm:                  {Name: "BC4_UNorm", BitsPerPixel: 4, BlockBytes: 8},
	BC4_SNorm:                  {Name: "BC4_SNorm", BitsPerPixel: 4, BlockBytes: 8},
	BC5_Typeless:               {Name: "BC5_Typeless", BitsPerPixel: 8, BlockBytes: 16, Typeless: true},
	BC5_UNorm:                  {Name: "BC5_UNorm", BitsPerPixel: 8, BlockBytes: 16},
	BC5_SNorm:                  {Name: "BC5_SNorm", BitsPerPixel: 8, BlockBytes: 16},
	B5G6R5_UNorm:               {Name: "B5G6R5_UNorm", BitsPerPixel: 16},
	B5G5R5A1_UNorm:             {Name: "B5G5R5A1_UNorm", BitsPerPixel: 16},
	B8G8R8A8_UNorm:             {Name: "B8G8R8A8_UNorm", BitsPerPixel: 32},
	B8G8R8X8_UNorm:             {Name: "B8G8R8X8_UNorm", BitsPerPixel: 32},
	R10G10B10_Xr_Bias_A2_UNorm: {Name: "R10G10B10_Xr_Bias_A2_UNorm", BitsPerPixel: 32},
	B8G8R8A8_Typeless:          {Name: "B8G8R8A8_Typeless", BitsPerPixel: 32, Typeless: true},
	B8G8R8A8_UNorm_SRgb:        {Name: "B8G8R8A8_UNorm_SRgb", BitsPerPixel: 32, SRGB: true},
	B8G8R8X8_Typeless:          {Name: "B8G8R8X8_Typeless", BitsPerPixel: 32, Typeless: true},
	B8G8R8X8_UNorm_SRgb:        {Name: "B8G8R8X8_UNorm_SRgb", BitsPerPixel: 32, SRGB: true},
	BC6H_Typeless:              {Name: "BC6H_Typeless", BitsPerPixel: 8, BlockBytes: 16, Typeless: true},
	BC6H_Uf16:                  {Name: "BC6H_Uf16", BitsPerPixel: 8, BlockBytes: 16},
	BC6H_Sf16:                  {Name: "BC6H_Sf16", BitsPerPixel: 8, BlockBytes: 16},
	BC7_Typeless:               {Name: "BC7_Typeless", BitsPerPixel: 8, BlockBytes: 16, Typeless: true},
	BC7_UNorm:                  {Name: "BC7_UNorm", BitsPerPixel: 8, BlockBytes: 16},
	BC7_UNorm_SRgb:             {Name: "BC7_UNorm_SRgb", BitsPerPixel: 8, BlockBytes: 16, SRGB: true},
	AYUV:                       {Name: "AYUV", BitsPerPixel: 32},
	Y410:                       {Name: "Y410", BitsPerPixel: 32},
	Y416:                       {Name: "Y416", BitsPerPixel: 64},
	YUY2:                       {Name: "YUY2", BitsPerPixel: 16, PackedBytes: 4},
	Y210:                       {Name: "Y210", BitsPerPixel: 32, PackedBytes: 8},
	Y216:                       {Name: "Y216", BitsPerPixel: 32, PackedBytes: 8},
	AI44:                       {Name: "AI44", BitsPerPixel: 8},
	IA44:                       {Name: "IA44", BitsPerPixel: 8},
	P8:                         {Name: "P8", BitsPerPixel: 8},
	A8P8:                       {Name: "A8P8", BitsPerPixel: 16},
	B4G4R4A4_UNorm:             {Name: "B4G4R4A4_UNorm", BitsPerPixel: 16},
}

// Info returns the description of f. Unknown and unlisted values return
// the zero FormatInfo.
func Info(f Format) FormatInfo {
	if int(f) >= len(formatTable) {
		return FormatInfo{}
	}
	return formatTable[f]
}

// IsValid reports whether f is a listed format. Planar video formats
// are not listed.
func (f Format) IsValid() bool { return Info(f).BitsPerPixel > 0 }

func (f Format) IsCompressed() bool { return Info(f).Compressed() }

func (f Format) IsTypeless() bool { return Info(f).Typeless }

func (f Format) IsPacked() bool { return Info(f).PackedBytes > 0 }

func (f Format) BitsPerPixel() int { return Info(f).BitsPerPixel }

func (f Format) String() string {
	if n := Info(f).Name; n != "" {
		return n
	}
	if f == Unknown {
		return "Unknown"
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// Parse looks a format up by its String name, case sensitive.
func Parse(name string) (Format, bool) {
	for i, info := range formatTable {
		if info.Name == name {
			return Format(i), true
		}
	}
	return Unknown, false
}

// Supported lists every valid format that is not typeless, in numeric
// order.
func Supported() []Format {
	out := make([]Format, 0, formatCount)
	for i, info := range formatTable {
		if info.BitsPerPixel > 0 && !info.Typeless {
			out = append(out, Format(i))
		}
	}
	return out
}
