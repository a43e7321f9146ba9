package meshing

// Vertex is one corner of a block face. Position is in world space.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
	UV       [2]float32
}

// FloatsPerVertex is the width of one interleaved vertex: position, color, uv.
const FloatsPerVertex = 8

// Mesh is an indexed triangle list. Each face adds 4 vertices and 6 indices.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// quadIndices triangulates a quad as (0,1,2) and (0,2,3).
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

func (m *Mesh) appendQuad(q [4]Vertex) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, q[:]...)
	for _, i := range quadIndices {
		m.Indices = append(m.Indices, base+i)
	}
}

// Clear empties the mesh but keeps its buffers for reuse.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// QuadCount returns the number of faces in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / 4
}

// Interleave packs vertices as x,y,z, r,g,b, u,v for upload into a single vertex buffer.
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Color[0], v.Color[1], v.Color[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}
