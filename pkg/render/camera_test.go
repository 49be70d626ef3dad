package render

import (
	"math"
	"testing"

	"github.com/softras/softras/pkg/math3d"
)

func TestWorldToCameraIdentity(t *testing.T) {
	cam := NewCamera()
	m := cam.WorldToCamera()

	p := m.TransformPoint(math3d.V3(1, 2, -3))
	if p != math3d.V3(1, 2, -3) {
		t.Errorf("origin camera moved point to %v", p)
	}
}

func TestWorldToCameraTranslation(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 0, 5)

	// A point at the world origin ends up 5 units in front of the camera.
	p := cam.WorldToCamera().TransformPoint(math3d.V3(0, 0, 0))
	if p != math3d.V3(0, 0, -5) {
		t.Errorf("camera-space point = %v, want (0, 0, -5)", p)
	}
}

func TestWorldToCameraYaw(t *testing.T) {
	cam := NewCamera()
	cam.Yaw = math.Pi / 2 // camera faces -X

	p := cam.WorldToCamera().TransformPoint(math3d.V3(-5, 0, 0))
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y) > 1e-12 || math.Abs(p.Z+5) > 1e-12 {
		t.Errorf("camera-space point = %v, want (0, 0, -5)", p)
	}
}

func TestLookAt(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 0, 5)
	cam.LookAt(math3d.V3(0, 0, 0))

	if cam.Pitch != 0 || cam.Yaw != 0 || cam.Roll != 0 {
		t.Errorf("looking down -Z gives pitch=%v yaw=%v roll=%v, want zeros", cam.Pitch, cam.Yaw, cam.Roll)
	}

	cam.Position = math3d.V3(0, 5, 0)
	cam.LookAt(math3d.V3(0, 0, 0))
	if math.Abs(cam.Pitch+math.Pi/2) > 1e-12 {
		t.Errorf("looking straight down gives pitch=%v, want -pi/2", cam.Pitch)
	}
}
