// Package models provides triangle mesh loading and representation.
package models

import (
	"fmt"

	"github.com/softras/softras/pkg/math3d"
	"github.com/softras/softras/pkg/render"
)

// MeshData is imported geometry in world space: shared vertex positions and
// texture coordinates, plus two parallel index streams selecting three
// positions and three coordinates per triangle. UVs and UVIndices may be
// empty for untextured geometry.
type MeshData struct {
	Name      string
	Positions []math3d.Vec3
	UVs       []math3d.Vec2

	VertexIndices []int
	UVIndices     []int
}

// TriangleCount returns the number of triangles described by the index
// stream.
func (d *MeshData) TriangleCount() int {
	return len(d.VertexIndices) / 3
}

// Validate checks the index streams once, at load time, so per-frame
// rendering can index without bounds checks of its own.
func (d *MeshData) Validate() error {
	if len(d.VertexIndices)%3 != 0 {
		return fmt.Errorf("mesh %q: vertex index count %d is not a multiple of 3", d.Name, len(d.VertexIndices))
	}
	for i, vi := range d.VertexIndices {
		if vi < 0 || vi >= len(d.Positions) {
			return fmt.Errorf("mesh %q: vertex index %d out of range [0,%d) at %d", d.Name, vi, len(d.Positions), i)
		}
	}
	if len(d.UVIndices) == 0 {
		return nil
	}
	if len(d.UVIndices) != len(d.VertexIndices) {
		return fmt.Errorf("mesh %q: %d uv indices for %d vertex indices", d.Name, len(d.UVIndices), len(d.VertexIndices))
	}
	for i, ui := range d.UVIndices {
		if ui < 0 || ui >= len(d.UVs) {
			return fmt.Errorf("mesh %q: uv index %d out of range [0,%d) at %d", d.Name, ui, len(d.UVs), i)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the positions.
func (d *MeshData) Bounds() (min, max math3d.Vec3) {
	if len(d.Positions) == 0 {
		return math3d.Vec3{}, math3d.Vec3{}
	}
	min, max = d.Positions[0], d.Positions[0]
	for _, p := range d.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Center returns the center of the bounding box.
func (d *MeshData) Center() math3d.Vec3 {
	min, max := d.Bounds()
	return min.Add(max).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (d *MeshData) Size() math3d.Vec3 {
	min, max := d.Bounds()
	return max.Sub(min)
}

// Normalize recenters the positions on the origin and scales the largest
// bounding box dimension to extent. Useful before viewing arbitrary models.
func (d *MeshData) Normalize(extent float64) {
	center := d.Center()
	size := d.Size()

	largest := size.X
	if size.Y > largest {
		largest = size.Y
	}
	if size.Z > largest {
		largest = size.Z
	}

	scale := 1.0
	if largest > 0 {
		scale = extent / largest
	}
	for i := range d.Positions {
		d.Positions[i] = d.Positions[i].Sub(center).Scale(scale)
	}
}

// Mesh is render-ready geometry: the source data plus camera-space vertex
// positions and an optional texture. It implements render.TriangleMesh.
type Mesh struct {
	Data *MeshData
	Tex  *render.Texture

	// Vertices holds the camera-space positions, rebuilt from Data by
	// Retransform.
	Vertices []math3d.Vec3
}

// Build validates data, transforms its positions into camera space and
// returns a renderable mesh. The data is held by reference; its positions
// stay in world space.
func Build(data *MeshData, worldToCam math3d.Mat4, tex *render.Texture) (*Mesh, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	m := &Mesh{
		Data:     data,
		Tex:      tex,
		Vertices: make([]math3d.Vec3, len(data.Positions)),
	}
	m.Retransform(worldToCam)
	return m, nil
}

// Retransform recomputes the camera-space vertices from the source
// positions. Called once per frame with the composed model and camera
// transform.
func (m *Mesh) Retransform(mat math3d.Mat4) {
	for i, p := range m.Data.Positions {
		m.Vertices[i] = mat.TransformPoint(p)
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.Data.TriangleCount()
}

// Triangle returns the camera-space corners of triangle i.
func (m *Mesh) Triangle(i int) (p0, p1, p2 math3d.Vec3) {
	idx := m.Data.VertexIndices[i*3:]
	return m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]
}

// TriangleUV returns the texture coordinates of triangle i, or ok=false
// when the mesh has none.
func (m *Mesh) TriangleUV(i int) (uv0, uv1, uv2 math3d.Vec2, ok bool) {
	if len(m.Data.UVIndices) == 0 {
		return math3d.Vec2{}, math3d.Vec2{}, math3d.Vec2{}, false
	}
	idx := m.Data.UVIndices[i*3:]
	return m.Data.UVs[idx[0]], m.Data.UVs[idx[1]], m.Data.UVs[idx[2]], true
}

// Texture returns the mesh's texture, or nil.
func (m *Mesh) Texture() *render.Texture {
	return m.Tex
}
