package meshing

import (
	"blockworld/internal/profiling"
	"blockworld/internal/world"
)

// Mode selects how faces are colored.
type Mode int

const (
	// ModeColor uses the block's flat color scaled by a per-face shade.
	ModeColor Mode = iota
	// ModeAtlas uses white vertices and texture coordinates into a tile atlas.
	ModeAtlas
)

// Atlas describes a grid of square tiles packed into one texture.
type Atlas struct {
	Columns  int
	Rows     int
	TileSize int // pixels per tile edge
}

// DefaultAtlas matches the tile assignments of the block catalogue.
var DefaultAtlas = Atlas{Columns: 16, Rows: 16, TileSize: 16}

// TileUV returns the UV rectangle of tile (col, row), inset by half a texel on every side
// so linear filtering never samples the neighbouring tile. v grows downward.
func (a Atlas) TileUV(col, row int) (u0, v0, u1, v1 float32) {
	cols, rows := float32(a.Columns), float32(a.Rows)
	halfU := 0.5 / (cols * float32(a.TileSize))
	halfV := 0.5 / (rows * float32(a.TileSize))
	u0 = float32(col)/cols + halfU
	u1 = float32(col+1)/cols - halfU
	v0 = float32(row)/rows + halfV
	v1 = float32(row+1)/rows - halfV
	return
}

type faceDef struct {
	face  world.BlockFace
	shade float32
	// corner offsets from the block origin, counter-clockwise seen from outside
	corners [4][3]float32
	// per-corner (u, v) selectors: 0 picks the low edge of the tile, 1 the high edge
	uv [4][2]float32
}

var faces = [6]faceDef{
	{
		face: world.FaceTop, shade: 1.0,
		corners: [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
		uv:      [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	},
	{
		face: world.FaceBottom, shade: 0.5,
		corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		uv:      [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
	{
		face: world.FaceEast, shade: 0.7,
		corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
		uv:      [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}},
	},
	{
		face: world.FaceWest, shade: 0.7,
		corners: [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
		uv:      [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
	},
	{
		face: world.FaceNorth, shade: 0.8,
		corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
		uv:      [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
	},
	{
		face: world.FaceSouth, shade: 0.8,
		corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
		uv:      [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}},
	},
}

// Builder turns chunks into face meshes.
type Builder struct {
	Mode  Mode
	Atlas Atlas
}

// NewBuilder returns a builder for the given mode using DefaultAtlas.
func NewBuilder(mode Mode) Builder {
	return Builder{Mode: mode, Atlas: DefaultAtlas}
}

// BuildChunk appends one quad for every face of a solid block in c whose neighbour is
// transparent. Neighbours outside c are looked up through w; unloaded cells count as air.
// dst is never cleared, so repeated calls accumulate.
func (b Builder) BuildChunk(dst *Mesh, w world.BlockGetter, c *world.Chunk) {
	defer profiling.Track("meshing.BuildChunk")()

	baseX := c.X * world.ChunkSizeX
	baseZ := c.Z * world.ChunkSizeZ
	for y := 0; y < world.ChunkSizeY; y++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			for x := 0; x < world.ChunkSizeX; x++ {
				block := c.GetBlock(x, y, z)
				if !block.IsSolid() {
					continue
				}
				for i := range faces {
					n := faces[i].face.Normal()
					if !neighbour(w, c, x+n[0], y+n[1], z+n[2]).IsTransparent() {
						continue
					}
					dst.appendQuad(b.quad(&faces[i], block, baseX+x, y, baseZ+z))
				}
			}
		}
	}
}

// neighbour reads a local cell, falling back to the world for cells beyond the chunk edge.
func neighbour(w world.BlockGetter, c *world.Chunk, x, y, z int) world.BlockType {
	if y < 0 || y >= world.ChunkSizeY {
		return world.BlockTypeAir
	}
	if x >= 0 && x < world.ChunkSizeX && z >= 0 && z < world.ChunkSizeZ {
		return c.GetBlock(x, y, z)
	}
	b, _ := w.GetBlock(c.X*world.ChunkSizeX+x, y, c.Z*world.ChunkSizeZ+z)
	return b
}

func (b Builder) quad(f *faceDef, block world.BlockType, x, y, z int) [4]Vertex {
	var color [3]float32
	var u0, v0, u1, v1 float32
	if b.Mode == ModeAtlas {
		color = [3]float32{1, 1, 1}
		col, row, _ := block.AtlasTile()
		u0, v0, u1, v1 = b.Atlas.TileUV(col, row)
	} else {
		c := block.Color().Mul(f.shade)
		color = [3]float32{c.X(), c.Y(), c.Z()}
	}

	var q [4]Vertex
	for i, off := range f.corners {
		q[i].Position = [3]float32{float32(x) + off[0], float32(y) + off[1], float32(z) + off[2]}
		q[i].Color = color
		if b.Mode == ModeAtlas {
			q[i].UV = [2]float32{pick(u0, u1, f.uv[i][0]), pick(v0, v1, f.uv[i][1])}
		}
	}
	return q
}

func pick(lo, hi, sel float32) float32 {
	if sel == 0 {
		return lo
	}
	return hi
}
