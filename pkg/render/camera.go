package render

import (
	"math"

	"github.com/softras/softras/pkg/math3d"
)

// Camera describes the viewpoint consumed by the render context: clip
// distances, field of view, aspect ratio and a world-to-camera transform.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Rotation around Z axis (tilt)

	Fov    float64 // Field of view in degrees
	Aspect float64 // Width / Height
	Near   float64 // Near clipping plane
	Far    float64 // Far clipping plane
}

// NewCamera creates a camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Fov:    60,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    100,
	}
}

// WorldToCamera returns the world-to-camera matrix: translate the world
// opposite to the camera position, then undo the camera orientation.
// Points transform as p' = p * M (row vectors, translation in the bottom
// row).
func (c *Camera) WorldToCamera() math3d.Mat4 {
	return math3d.Translate(c.Position.Negate()).
		Mul(math3d.RotateY(-c.Yaw)).
		Mul(math3d.RotateX(-c.Pitch)).
		Mul(math3d.RotateZ(-c.Roll))
}

// LookAt orients the camera toward a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0
}
