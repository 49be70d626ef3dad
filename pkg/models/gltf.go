package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/softras/softras/pkg/math3d"
)

// LoadGLB loads a binary GLTF (.glb) file into MeshData.
func LoadGLB(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	data := &MeshData{Name: filepath.Base(path)}
	for _, m := range doc.Meshes {
		if err := appendMesh(doc, m, data); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// appendMesh extracts the triangle primitives of one GLTF mesh into data.
func appendMesh(doc *gltf.Document, m *gltf.Mesh, data *MeshData) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
			if len(uvs) != len(positions) {
				return fmt.Errorf("%d uvs for %d positions", len(uvs), len(positions))
			}
		}

		base := len(data.Positions)
		data.Positions = append(data.Positions, positions...)
		hasUV := len(uvs) > 0
		if hasUV {
			// GLTF uses top-left origin (V=0 at top), flip V for
			// bottom-left origin
			for _, uv := range uvs {
				data.UVs = append(data.UVs, math3d.V2(uv.X, 1.0-uv.Y))
			}
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// GLTF uses CCW winding for front-facing, but the rasterizer's
		// positive edge area is CW (due to the Y-flip in screen space),
		// so reverse the winding here.
		for i := 0; i+2 < len(indices); i += 3 {
			data.VertexIndices = append(data.VertexIndices,
				base+indices[i],
				base+indices[i+2], // swapped
				base+indices[i+1], // swapped
			)
		}
		if hasUV {
			// Shared position/uv index stream in GLTF
			for i := 0; i+2 < len(indices); i += 3 {
				data.UVIndices = append(data.UVIndices,
					base+indices[i],
					base+indices[i+2],
					base+indices[i+1],
				)
			}
		}
	}
	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	buf, start, stride, err := accessorView(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		o := start + i*stride
		result[i] = math3d.V3(
			float64(readFloat32(buf[o:])),
			float64(readFloat32(buf[o+4:])),
			float64(readFloat32(buf[o+8:])),
		)
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a GLTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	buf, start, stride, err := accessorView(doc, accessor, 8)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec2, accessor.Count)
	for i := range result {
		o := start + i*stride
		result[i] = math3d.V2(
			float64(readFloat32(buf[o:])),
			float64(readFloat32(buf[o+4:])),
		)
	}
	return result, nil
}

// readIndices reads scalar index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	buf, start, stride, err := accessorView(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		o := start + i*stride
		switch width {
		case 1:
			result[i] = int(buf[o])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(buf[o:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(buf[o:]))
		}
	}
	return result, nil
}

// accessorView resolves an accessor to its backing bytes, start offset and
// element stride. elemSize is the tightly packed element size used when the
// buffer view declares no stride.
func accessorView(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		// External file - need to load relative to document
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if end > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor range [%d,%d) exceeds buffer of %d bytes", start, end, len(buffer.Data))
	}
	return buffer.Data, start, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// LoadGLBWithTexture loads a GLB file and returns the mesh data plus the
// first decodable embedded texture image. The image may be nil if none is
// embedded.
func LoadGLBWithTexture(path string) (*MeshData, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	data, err := LoadGLB(path)
	if err != nil {
		return nil, nil, err
	}

	var textureImg image.Image
	for _, img := range doc.Images {
		raw := imageBytes(doc, img, filepath.Dir(path))
		if len(raw) == 0 {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(raw))
		if err == nil {
			textureImg = decoded
			break
		}
	}
	return data, textureImg, nil
}

// imageBytes returns the raw encoded bytes of one GLTF image, embedded or
// from an external file next to the document.
func imageBytes(doc *gltf.Document, img *gltf.Image, dir string) []byte {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data != nil {
			return buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		}
		return nil
	}
	if img.URI != "" {
		raw, err := os.ReadFile(filepath.Join(dir, img.URI))
		if err == nil {
			return raw
		}
	}
	return nil
}
