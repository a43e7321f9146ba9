package worldgen

import "blockworld/internal/world"

// Flat generates a uniform world: Kind on every layer below Height. Useful for tests
// and physics sandboxes.
type Flat struct {
	Height int
	Kind   world.BlockType
}

// NewFlat creates a stone floor whose top face sits at y = height.
func NewFlat(height int) Flat {
	return Flat{Height: height, Kind: world.BlockTypeStone}
}

func (f Flat) HeightAt(x, z int) int {
	return f.Height
}

func (f Flat) GenerateChunk(chunkX, chunkZ int) *world.Chunk {
	c := world.NewChunk(chunkX, chunkZ)
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			for y := 0; y < f.Height && y < world.ChunkSizeY; y++ {
				c.SetBlock(lx, y, lz, f.Kind)
			}
		}
	}
	return c
}
