package render

import "image/color"

// PixelFormat selects the packed texel encoding. Texture data, the context's
// color buffer and the final blit all share one format; the rasterizer copies
// texel bytes between them verbatim.
type PixelFormat int

const (
	// RGBA2222 packs four 2-bit channels into a single byte:
	// bits 0-1 red, 2-3 green, 4-5 blue, 6-7 alpha.
	RGBA2222 PixelFormat = iota
	// RGBA8888 stores one byte per channel in R, G, B, A order.
	RGBA8888
)

// BytesPerPixel returns the storage size of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	if f == RGBA2222 {
		return 1
	}
	return 4
}

func (f PixelFormat) String() string {
	if f == RGBA2222 {
		return "rgba2222"
	}
	return "rgba8888"
}

// expand2 maps a 2-bit channel value {0,1,2,3} to 8-bit intensity
// {0, 85, 170, 255}.
func expand2(v byte) uint8 {
	return v * 85
}

// Decode reads the pixel at index i (pixel units, not bytes) out of buf.
func (f PixelFormat) Decode(buf []byte, i int) color.RGBA {
	if f == RGBA2222 {
		b := buf[i]
		return color.RGBA{
			R: expand2(b & 0x3),
			G: expand2(b >> 2 & 0x3),
			B: expand2(b >> 4 & 0x3),
			A: expand2(b >> 6 & 0x3),
		}
	}
	o := i * 4
	return color.RGBA{R: buf[o], G: buf[o+1], B: buf[o+2], A: buf[o+3]}
}

// Encode writes c as the pixel at index i (pixel units, not bytes) into buf.
// RGBA2222 quantizes each channel to its top two bits.
func (f PixelFormat) Encode(buf []byte, i int, c color.RGBA) {
	if f == RGBA2222 {
		buf[i] = c.R>>6 | c.G>>6<<2 | c.B>>6<<4 | c.A>>6<<6
		return
	}
	o := i * 4
	buf[o] = c.R
	buf[o+1] = c.G
	buf[o+2] = c.B
	buf[o+3] = c.A
}
