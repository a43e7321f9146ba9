package worldgen

import (
	"blockworld/internal/world"

	"github.com/sirupsen/logrus"
)

const (
	treeSpacing   = 6
	treeFrequency = 0.05
	treeThreshold = 0.6
	trunkLength   = 4

	// lowest y the surface scan inspects, and the lowest allowed trunk base
	surfaceScanFloor = 4
	minTrunkBase     = 5

	treeSeedSalt = 0x5DEECE66D
)

// IsTreeRoot reports whether a tree grows from world column (x, z).
func (g *Generator) IsTreeRoot(x, z int) bool {
	if x%treeSpacing != 0 || z%treeSpacing != 0 {
		return false
	}
	if g.HeightAt(x, z) <= beachHeight {
		return false
	}
	return g.trees.At(x, z) > treeThreshold
}

// Populate runs the vegetation pass for a freshly generated chunk. Canopies may spill
// into loaded neighbours; cells in chunks that are not loaded are skipped. The chunk and
// its eight neighbours are marked dirty afterwards.
func (g *Generator) Populate(w *world.World, chunkX, chunkZ int) {
	c, ok := w.Chunk(chunkX, chunkZ)
	if !ok {
		return
	}
	planted := 0
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			wx := chunkX*world.ChunkSizeX + lx
			wz := chunkZ*world.ChunkSizeZ + lz
			if !g.IsTreeRoot(wx, wz) {
				continue
			}
			base, ok := trunkBase(c, lx, lz)
			if !ok {
				continue
			}
			PlantTree(w, wx, base, wz)
			planted++
		}
	}
	coord := c.Coord()
	c.MarkDirty()
	for _, n := range coord.Neighbors() {
		w.MarkDirty(n.X, n.Z)
	}
	logrus.WithFields(logrus.Fields{"chunk_x": chunkX, "chunk_z": chunkZ, "trees": planted}).Debug("vegetation placed")
}

// trunkBase finds the cell just above the highest non-air, non-water block of the column.
func trunkBase(c *world.Chunk, lx, lz int) (int, bool) {
	for y := world.ChunkSizeY - 1; y >= surfaceScanFloor; y-- {
		b := c.GetBlock(lx, y, lz)
		if b == world.BlockTypeAir || b == world.BlockTypeWater {
			continue
		}
		base := y + 1
		return base, base >= minTrunkBase
	}
	return 0, false
}

// PlantTree writes a trunk starting at (x, base, z) and its leaf canopy.
func PlantTree(w *world.World, x, base, z int) {
	top := base + trunkLength
	for y := base; y < top; y++ {
		w.SetBlock(x, y, z, world.BlockTypeWood)
	}

	for dy := -2; dy <= 1; dy++ {
		y := top + dy
		r := canopyRadius(dy)
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if r == 2 && abs(dx) == 2 && abs(dz) == 2 {
					continue
				}
				if dx == 0 && dz == 0 && y >= base && y < top {
					continue
				}
				cur, ok := w.GetBlock(x+dx, y, z+dz)
				if !ok || cur == world.BlockTypeWood {
					continue
				}
				w.SetBlock(x+dx, y, z+dz, world.BlockTypeLeaves)
			}
		}
	}
}

func canopyRadius(dy int) int {
	switch dy {
	case 1:
		return 0
	case 0:
		return 1
	default:
		return 2
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
