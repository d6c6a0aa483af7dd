package scene

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/polarwander/schwarzviz/pkg/geom"
	"github.com/polarwander/schwarzviz/pkg/render"
)

// Overlay is a wireframe model placed near the hole: unique edges over a
// shared vertex list.
type Overlay struct {
	Vertices []geom.Vec3
	Edges    [][2]int
}

// LoadOverlayGLB loads a .glb/.gltf file and extracts its triangle edges as
// a wireframe. The model is recentered on the origin and uniformly scaled so
// its longest dimension equals size.
func LoadOverlayGLB(path string, size float64) (*Overlay, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	o := &Overlay{}
	edgeSeen := make(map[[2]int]struct{})

	for _, m := range doc.Meshes {
		if err := o.extractMesh(doc, m, edgeSeen); err != nil {
			return nil, fmt.Errorf("extract mesh %q: %w", m.Name, err)
		}
	}

	if len(o.Vertices) == 0 {
		return nil, fmt.Errorf("no triangle geometry in %s", path)
	}

	o.fit(size)
	return o, nil
}

// extractMesh pulls positions and triangle indices out of one glTF mesh and
// records each triangle edge once.
func (o *Overlay) extractMesh(doc *gltf.Document, m *gltf.Mesh, edgeSeen map[[2]int]struct{}) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(o.Vertices)
		o.Vertices = append(o.Vertices, positions...)

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

		for i := 0; i+2 < len(indices); i += 3 {
			a := base + indices[i]
			b := base + indices[i+1]
			c := base + indices[i+2]
			o.addEdge(a, b, edgeSeen)
			o.addEdge(b, c, edgeSeen)
			o.addEdge(c, a, edgeSeen)
		}
	}

	return nil
}

// addEdge records an undirected edge once.
func (o *Overlay) addEdge(a, b int, seen map[[2]int]struct{}) {
	if a > b {
		a, b = b, a
	}
	key := [2]int{a, b}
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	o.Edges = append(o.Edges, key)
}

// fit recenters the model on the origin and scales its longest dimension to
// size.
func (o *Overlay) fit(size float64) {
	bmin, bmax := o.Vertices[0], o.Vertices[0]
	for _, v := range o.Vertices[1:] {
		bmin = bmin.Min(v)
		bmax = bmax.Max(v)
	}

	center := bmin.Add(bmax).Scale(0.5)
	dim := bmax.Sub(bmin)
	maxDim := math.Max(dim.X, math.Max(dim.Y, dim.Z))

	scale := 1.0
	if maxDim > 0 {
		scale = size / maxDim
	}

	transform := geom.ScaleUniform(scale).Mul(geom.Translate(center.Negate()))
	for i := range o.Vertices {
		o.Vertices[i] = transform.TransformPoint(o.Vertices[i])
	}
}

// Draw renders the overlay's edges through a wireframe renderer with an
// extra model transform (placement around the hole).
func (o *Overlay) Draw(w *render.Wireframe, transform geom.Mat4, color render.Color) {
	for _, e := range o.Edges {
		p1 := transform.TransformPoint(o.Vertices[e[0]])
		p2 := transform.TransformPoint(o.Vertices[e[1]])
		w.DrawLine3D(p1, p2, color)
	}
}

// readPositions reads VEC3 float data from a glTF accessor.
func readPositions(doc *gltf.Document, accessorIdx int) ([]geom.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 12 // 3 floats * 4 bytes
	}

	result := make([]geom.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		result[i] = geom.V3(
			float64(readFloat32(bufData[offset:])),
			float64(readFloat32(bufData[offset+4:])),
			float64(readFloat32(bufData[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	bufData, start, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		if stride == 0 {
			stride = 1
		}
		for i := range accessor.Count {
			result[i] = int(bufData[start+i*stride])
		}
	case gltf.ComponentUshort:
		if stride == 0 {
			stride = 2
		}
		for i := range accessor.Count {
			offset := start + i*stride
			result[i] = int(uint16(bufData[offset]) | uint16(bufData[offset+1])<<8)
		}
	case gltf.ComponentUint:
		if stride == 0 {
			stride = 4
		}
		for i := range accessor.Count {
			offset := start + i*stride
			result[i] = int(uint32(bufData[offset]) |
				uint32(bufData[offset+1])<<8 |
				uint32(bufData[offset+2])<<16 |
				uint32(bufData[offset+3])<<24)
		}
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	return result, nil
}

// accessorBytes resolves an accessor to its backing byte slice, start offset
// and stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		// External file - would need loading relative to the document
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, bufferView.ByteStride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
