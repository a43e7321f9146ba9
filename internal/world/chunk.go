package world

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 64
	ChunkSizeZ = 16

	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// Chunk represents a 16x64x16 column of the world
type Chunk struct {
	X, Z   int
	blocks [ChunkVolume]BlockType
	dirty  bool
}

// NewChunk creates an all-air chunk at the specified chunk coordinates
func NewChunk(x, z int) *Chunk {
	return &Chunk{
		X:     x,
		Z:     z,
		dirty: true,
	}
}

// Coord returns the chunk coordinate pair.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Z: c.Z}
}

// index converts local coordinates (x, y, z) → flat index
func index(x, y, z int) int {
	return x + z*ChunkSizeX + y*ChunkSizeX*ChunkSizeZ
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// GetBlock returns the block type at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !inBounds(x, y, z) {
		return BlockTypeAir
	}
	return c.blocks[index(x, y, z)]
}

// SetBlock sets the block type at the specified local coordinates.
// Writes outside the chunk are ignored.
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if !inBounds(x, y, z) {
		return
	}
	c.blocks[index(x, y, z)] = blockType
	c.dirty = true
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// IsDirty returns whether the chunk has been modified since its mesh was last rebuilt
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty flags the chunk geometry as stale.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// MarkClean is called by the mesh consumer once geometry has been rebuilt.
func (c *Chunk) MarkClean() {
	c.dirty = false
}

// Blocks returns a copy of the raw block array in x + z*16 + y*256 order.
func (c *Chunk) Blocks() []BlockType {
	out := make([]BlockType, ChunkVolume)
	copy(out, c.blocks[:])
	return out
}

// CountNonAir returns the number of non-air blocks in the chunk.
func (c *Chunk) CountNonAir() int {
	n := 0
	for _, b := range c.blocks {
		if b != BlockTypeAir {
			n++
		}
	}
	return n
}

// HighestSolid returns the y of the highest solid block in the column, or -1.
func (c *Chunk) HighestSolid(x, z int) int {
	for y := ChunkSizeY - 1; y >= 0; y-- {
		if c.GetBlock(x, y, z).IsSolid() {
			return y
		}
	}
	return -1
}
