package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapClamp  WrapMode = iota // Clamp to edge (default)
	WrapRepeat                 // Tile the texture
)

// Texture holds a 2D image for nearest-neighbor texture mapping.
// Pixels is nil when a load failed; the rasterizer treats such a texture
// as "no texture" and leaves the color buffer untouched.
type Texture struct {
	Width  int
	Height int
	Format PixelFormat
	Pixels []byte // Row-major packed pixel data, top row first
	WrapU  WrapMode
	WrapV  WrapMode
}

// NewTexture creates an empty texture with the given dimensions and format.
func NewTexture(width, height int, format PixelFormat) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: make([]byte, width*height*format.BytesPerPixel()),
	}
}

// LoadRawTexture reads exactly width*height packed pixels from a raw binary
// file. A missing or short file yields an error and no texture.
func LoadRawTexture(path string, width, height int, format PixelFormat) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	t := NewTexture(width, height, format)
	if _, err := io.ReadFull(f, t.Pixels); err != nil {
		return nil, fmt.Errorf("read texture %s (%dx%d %s): %w", path, width, height, format, err)
	}
	return t, nil
}

// TextureFromImage converts a decoded image into a packed texture.
func TextureFromImage(img image.Image, format PixelFormat) *Texture {
	bounds := img.Bounds()
	t := NewTexture(bounds.Dx(), bounds.Dy(), format)

	for y := range t.Height {
		for x := range t.Width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit values, scale to 8-bit
			t.SetPixel(x, y, color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			})
		}
	}
	return t
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 color.RGBA, format PixelFormat) *Texture {
	t := NewTexture(width, height, format)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				t.SetPixel(x, y, c1)
			} else {
				t.SetPixel(x, y, c2)
			}
		}
	}
	return t
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are dropped.
func (t *Texture) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Format.Encode(t.Pixels, y*t.Width+x, c)
}

// At returns the decoded pixel at (x, y), or zero if out of bounds.
func (t *Texture) At(x, y int) color.RGBA {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height || t.Pixels == nil {
		return color.RGBA{}
	}
	return t.Format.Decode(t.Pixels, y*t.Width+x)
}

// wrapCoord applies the wrap mode to a normalized coordinate.
func wrapCoord(coord float64, mode WrapMode) float64 {
	if mode == WrapRepeat {
		return coord - math.Floor(coord)
	}
	return math.Max(0, math.Min(1, coord))
}

// texelIndex maps normalized (u, v) to the nearest texel's pixel index.
func (t *Texture) texelIndex(u, v float64) int {
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	x := int(u * float64(t.Width))
	if x > t.Width-1 {
		x = t.Width - 1
	}
	y := int(v * float64(t.Height))
	if y > t.Height-1 {
		y = t.Height - 1
	}
	return y*t.Width + x
}

// Sample returns the decoded nearest texel at (u, v).
func (t *Texture) Sample(u, v float64) color.RGBA {
	if t.Pixels == nil {
		return color.RGBA{}
	}
	return t.Format.Decode(t.Pixels, t.texelIndex(u, v))
}

// sampleInto copies the nearest texel's packed bytes into dst at pixel
// index di. dst must use the same pixel format as the texture.
func (t *Texture) sampleInto(dst []byte, di int, u, v float64) {
	bpp := t.Format.BytesPerPixel()
	src := t.texelIndex(u, v) * bpp
	copy(dst[di*bpp:(di+1)*bpp], t.Pixels[src:src+bpp])
}
