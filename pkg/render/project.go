package render

import "github.com/softras/softras/pkg/math3d"

// zEpsilon floors the camera-space depth magnitude before the perspective
// divide so points at (or behind) the camera plane cannot blow up the divide.
const zEpsilon = 1e-6

// screenWindow holds the four screen-space window edges derived from the
// camera's field of view and aspect ratio at the near plane.
type screenWindow struct {
	r, l, t, b float64
}

// perspectiveDivide projects a camera-space point (camera looks down -z)
// onto the near plane, in place. Afterwards p.Z holds the positive depth in
// front of the camera; it is reused for the depth test and 1/z interpolation.
// The caller supplies a scratch copy, never the mesh's stored geometry.
func perspectiveDivide(p *math3d.Vec3, znear float64) {
	if p.Z > -zEpsilon {
		p.Z = -zEpsilon
	}
	invZ := 1.0 / -p.Z
	p.X = p.X * invZ * znear
	p.Y = p.Y * invZ * znear
	p.Z = -p.Z
}

// toRaster maps a screen-space point (already scaled by the perspective
// divide) through normalized device coordinates into pixel coordinates,
// in place. Y is flipped so row 0 is the top of the image. p.Z is left
// untouched.
func toRaster(win screenWindow, width, height int, p *math3d.Vec3) {
	invW := 1.0 / (win.r - win.l)
	invH := 1.0 / (win.t - win.b)

	p.X = 2*p.X*invW - (win.r+win.l)*invW
	p.Y = 2*p.Y*invH - (win.t+win.b)*invH

	p.X = (p.X + 1) * 0.5 * float64(width)
	p.Y = (1 - p.Y) * 0.5 * float64(height)
}
