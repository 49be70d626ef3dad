package render

import (
	"math"

	"github.com/softras/softras/pkg/math3d"
)

// areaEpsilon is the smallest raster-space triangle area (in pixels²)
// still rasterized; anything below is treated as degenerate and skipped.
const areaEpsilon = 1e-9

// TriangleMesh is the geometry source consumed by the rasterizer. It lives
// here rather than in the models package to avoid a circular dependency.
type TriangleMesh interface {
	// TriangleCount returns the number of triangles.
	TriangleCount() int
	// Triangle returns the camera-space corner positions of triangle i.
	Triangle(i int) (p0, p1, p2 math3d.Vec3)
	// TriangleUV returns the texture coordinates of triangle i.
	// ok is false when the mesh carries no UVs.
	TriangleUV(i int) (uv0, uv1, uv2 math3d.Vec2, ok bool)
	// Texture returns the mesh's texture, or nil.
	Texture() *Texture
}

// Rasterizer scan-converts triangles into a render context's buffers.
// It borrows the context's depth and color buffers for the duration of one
// Render call; it is not safe for concurrent use.
type Rasterizer struct {
	ctx *Context
}

// NewRasterizer creates a rasterizer writing into ctx.
func NewRasterizer(ctx *Context) *Rasterizer {
	return &Rasterizer{ctx: ctx}
}

// Render rasterizes every triangle of every mesh, in array order, into the
// context's buffers. It never resets the buffers; call Context.Reset before
// each frame.
func (r *Rasterizer) Render(meshes ...TriangleMesh) {
	for _, m := range meshes {
		r.drawMesh(m)
	}
}

func (r *Rasterizer) drawMesh(m TriangleMesh) {
	ctx := r.ctx

	tex := m.Texture()
	if tex != nil && (tex.Pixels == nil || tex.Format != ctx.Format) {
		// A failed load or a format mismatch with the color buffer
		// degrades to depth-only rendering.
		tex = nil
	}

	for i := 0; i < m.TriangleCount(); i++ {
		// Scratch copies; the mesh's stored geometry is never mutated.
		p0, p1, p2 := m.Triangle(i)

		perspectiveDivide(&p0, ctx.Near)
		perspectiveDivide(&p1, ctx.Near)
		perspectiveDivide(&p2, ctx.Near)
		toRaster(ctx.window, ctx.Width, ctx.Height, &p0)
		toRaster(ctx.window, ctx.Width, ctx.Height, &p1)
		toRaster(ctx.window, ctx.Width, ctx.Height, &p2)

		xmin := min3(p0.X, p1.X, p2.X)
		ymin := min3(p0.Y, p1.Y, p2.Y)
		xmax := max3(p0.X, p1.X, p2.X)
		ymax := max3(p0.Y, p1.Y, p2.Y)

		// Coarse cull: bounding box entirely outside the image.
		if xmin > float64(ctx.Width-1) || xmax < 0 || ymin > float64(ctx.Height-1) || ymax < 0 {
			continue
		}

		area := edge(p0, p1, p2.X, p2.Y)
		if math.Abs(area) < areaEpsilon {
			// Degenerate (collinear) triangle
			continue
		}

		x0 := max(0, int(xmin))
		y0 := max(0, int(ymin))
		x1 := min(ctx.Width-1, int(xmax))
		y1 := min(ctx.Height-1, int(ymax))

		uv0, uv1, uv2, hasUV := m.TriangleUV(i)
		shade := tex != nil && hasUV
		if shade {
			// Perspective-correction precondition: uv/z interpolates
			// linearly in screen space.
			uv0 = uv0.Scale(1 / p0.Z)
			uv1 = uv1.Scale(1 / p1.Z)
			uv2 = uv2.Scale(1 / p2.Z)
		}

		r.scan(x0, y0, x1, y1, p0, p1, p2, 1/area, uv0, uv1, uv2, shade, tex)
	}
}

// scan walks the clamped pixel range of one triangle, evaluating coverage,
// depth and shading at every pixel center.
func (r *Rasterizer) scan(x0, y0, x1, y1 int,
	p0, p1, p2 math3d.Vec3, invArea float64,
	uv0, uv1, uv2 math3d.Vec2, shade bool, tex *Texture,
) {
	ctx := r.ctx

	for j, row := y0, y0*ctx.Width; j <= y1; j, row = j+1, row+ctx.Width {
		sy := float64(j) + 0.5
		for i := x0; i <= x1; i++ {
			sx := float64(i) + 0.5

			w0 := edge(p1, p2, sx, sy) * invArea
			w1 := edge(p2, p0, sx, sy) * invArea
			w2 := edge(p0, p1, sx, sy) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			oneOverZ := w0/p0.Z + w1/p1.Z + w2/p2.Z
			z := 1 / oneOverZ

			// Strict less-than: the first writer at a given depth wins.
			index := row + i
			if z >= ctx.Depth[index] {
				continue
			}
			ctx.Depth[index] = z

			if !shade {
				continue
			}
			u := (uv0.X*w0 + uv1.X*w1 + uv2.X*w2) * z
			v := (uv0.Y*w0 + uv1.Y*w1 + uv2.Y*w2) * z
			tex.sampleInto(ctx.Color, index, u, v)
		}
	}
}

// edge is the signed edge function: positive when (px, py) lies to the
// left of the directed edge a->b in raster coordinates (Y down).
func edge(a, b math3d.Vec3, px, py float64) float64 {
	return (px-a.X)*(b.Y-a.Y) - (py-a.Y)*(b.X-a.X)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
