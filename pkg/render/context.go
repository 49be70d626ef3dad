// Package render implements the software rasterization pipeline: projection,
// scan conversion, depth buffering and perspective-correct texture shading.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/softras/softras/pkg/math3d"
)

// Context owns the per-frame depth and color buffers, the screen-space
// clipping window and the camera-derived world-to-camera transform. The
// depth and color buffers are equal in length and correspond
// index-for-index (row*width + col) to the same pixel.
type Context struct {
	Width  int
	Height int
	Near   float64
	Far    float64
	Format PixelFormat

	// Depth holds one float per pixel, reset to Far.
	Depth []float64
	// Color holds Width*Height packed pixels, reset to the zero
	// (no coverage) sentinel.
	Color []byte

	// WorldToCam is the matrix meshes are transformed through once, at
	// build time.
	WorldToCam math3d.Mat4

	window screenWindow
}

// NewContext allocates buffers for one output resolution and derives the
// screen window from the camera's field of view, aspect ratio and near
// clip. Both buffers start reset.
func NewContext(width, height int, cam *Camera, format PixelFormat) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid extent %dx%d", width, height)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return nil, fmt.Errorf("invalid clip planes near=%v far=%v", cam.Near, cam.Far)
	}

	tanHalfFov := math.Tan(cam.Fov * math.Pi / 180 / 2)
	t := cam.Near * tanHalfFov
	r := t * cam.Aspect

	ctx := &Context{
		Width:      width,
		Height:     height,
		Near:       cam.Near,
		Far:        cam.Far,
		Format:     format,
		Depth:      make([]float64, width*height),
		Color:      make([]byte, width*height*format.BytesPerPixel()),
		WorldToCam: cam.WorldToCamera(),
		window:     screenWindow{r: r, l: -r, t: t, b: -t},
	}
	ctx.Reset()
	return ctx, nil
}

// Reset prepares the buffers for a new frame: every depth entry becomes the
// far clip value and the color buffer the zero sentinel. The rasterizer
// itself only tests-and-writes, so callers rendering repeatedly must Reset
// before each frame.
func (c *Context) Reset() {
	n := len(c.Depth)
	if n == 0 {
		return
	}
	// Copy-doubling clear
	c.Depth[0] = c.Far
	for i := 1; i < n; i *= 2 {
		copy(c.Depth[i:], c.Depth[:i])
	}
	clear(c.Color)
}

// PixelAt returns the decoded color-buffer pixel at (x, y).
func (c *Context) PixelAt(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Format.Decode(c.Color, y*c.Width+x)
}

// DepthAt returns the depth-buffer value at (x, y), or the far clip value
// when out of bounds.
func (c *Context) DepthAt(x, y int) float64 {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return c.Far
	}
	return c.Depth[y*c.Width+x]
}

// Image decodes the color buffer into a standard Go image.
func (c *Context) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Format.Decode(c.Color, y*c.Width+x))
		}
	}
	return img
}

// SavePNG decodes the color buffer and writes it as a PNG file.
func (c *Context) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.Image())
}
