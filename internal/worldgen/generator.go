package worldgen

import (
	"math"

	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// WaterLevel is the sea surface: every non-terrain cell below it is water.
	WaterLevel = 40

	baseFrequency = 0.008
	numOctaves    = 4
	persistence   = 0.5
	lacunarity    = 2.0
	heightSpread  = 15.0

	minHeight = 1
	maxHeight = world.ChunkSizeY - 5

	// Beaches: columns at or below this height are topped with sand.
	beachHeight = WaterLevel + 2

	stoneDepth = 8
	topDepth   = 3
)

// Generator produces deterministic terrain from a seed. It implements world.Generator and,
// through Populate, world.Populator. Safe for concurrent reads once constructed.
type Generator struct {
	seed   uint32
	height *fbm
	trees  treeNoise
}

// New creates a generator for the given world seed.
func New(seed uint32) *Generator {
	return &Generator{
		seed:   seed,
		height: newFBM(int64(seed)),
		trees:  newTreeNoise(int64(seed)),
	}
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() uint32 {
	return g.seed
}

// HeightAt computes the surface height at world column (x, z): the first y above the
// column's solid ground. Always within [1, 59].
func (g *Generator) HeightAt(x, z int) int {
	n := g.height.At(float64(x), float64(z))
	h := int(math.Floor(n*heightSpread + WaterLevel + heightSpread))
	if h < minHeight {
		h = minHeight
	}
	if h > maxHeight {
		h = maxHeight
	}
	return h
}

// ColumnKinds returns the top and sub-surface block kinds for a column of height h.
func ColumnKinds(h int) (top, sub world.BlockType) {
	if h <= beachHeight {
		return world.BlockTypeSand, world.BlockTypeSand
	}
	return world.BlockTypeGrass, world.BlockTypeDirt
}

// BlockAt is the terrain-only block for a column of height h at layer y.
func BlockAt(h, y int) world.BlockType {
	top, sub := ColumnKinds(h)
	switch {
	case y < 0:
		return world.BlockTypeAir
	case y < h-stoneDepth:
		return world.BlockTypeStone
	case y < h-topDepth:
		return sub
	case y < h:
		return top
	case y < WaterLevel:
		return world.BlockTypeWater
	default:
		return world.BlockTypeAir
	}
}

// GenerateChunk fills a fresh chunk with terrain. It does not place vegetation.
func (g *Generator) GenerateChunk(chunkX, chunkZ int) *world.Chunk {
	c := world.NewChunk(chunkX, chunkZ)
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			h := g.HeightAt(chunkX*world.ChunkSizeX+lx, chunkZ*world.ChunkSizeZ+lz)
			top := h
			if top < WaterLevel {
				top = WaterLevel
			}
			for y := 0; y < top; y++ {
				c.SetBlock(lx, y, lz, BlockAt(h, y))
			}
		}
	}
	return c
}

// SpawnPoint is the feet position a new player starts at: the centre of the origin
// column, two blocks above the terrain or the water surface, whichever is higher.
func (g *Generator) SpawnPoint() mgl32.Vec3 {
	top := max(g.HeightAt(0, 0), WaterLevel)
	return mgl32.Vec3{0.5, float32(top + 2), 0.5}
}
