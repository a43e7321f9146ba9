package worldgen

import (
	"testing"

	"blockworld/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorImplementsInterfaces(t *testing.T) {
	var _ world.Generator = New(1)
	var _ world.Populator = New(1)
	var _ world.Generator = NewFlat(3)
}

func TestHeightAtRangeAndVariation(t *testing.T) {
	g := New(12345)
	seen := make(map[int]bool)
	for x := -400; x <= 400; x += 7 {
		for z := -400; z <= 400; z += 11 {
			h := g.HeightAt(x, z)
			require.GreaterOrEqual(t, h, 1)
			require.LessOrEqual(t, h, 59)
			seen[h] = true
		}
	}
	assert.Greater(t, len(seen), 5, "terrain should not be flat")
}

func TestGenerationIsDeterministic(t *testing.T) {
	a, b := New(777), New(777)
	for _, coord := range []world.ChunkCoord{{X: 0, Z: 0}, {X: -3, Z: 5}, {X: 12, Z: -9}} {
		ca := a.GenerateChunk(coord.X, coord.Z)
		cb := b.GenerateChunk(coord.X, coord.Z)
		assert.Equal(t, ca.Blocks(), cb.Blocks(), "chunk %v", coord)
	}
	for x := -60; x <= 60; x += 6 {
		assert.Equal(t, a.IsTreeRoot(x, 18), b.IsTreeRoot(x, 18))
	}

	other := New(778)
	differs := false
	for x := 0; x < 256 && !differs; x += 3 {
		differs = a.HeightAt(x, x) != other.HeightAt(x, x)
	}
	assert.True(t, differs, "different seeds should give different terrain")
}

func TestBlockAtLayers(t *testing.T) {
	cases := []struct {
		h, y int
		want world.BlockType
	}{
		{50, 0, world.BlockTypeStone},
		{50, 41, world.BlockTypeStone},
		{50, 42, world.BlockTypeDirt},
		{50, 46, world.BlockTypeDirt},
		{50, 47, world.BlockTypeGrass},
		{50, 49, world.BlockTypeGrass},
		{50, 50, world.BlockTypeAir},
		{42, 33, world.BlockTypeStone},
		{42, 34, world.BlockTypeSand},
		{42, 41, world.BlockTypeSand},
		{43, 42, world.BlockTypeGrass},
		{30, 21, world.BlockTypeStone},
		{30, 22, world.BlockTypeSand},
		{30, 30, world.BlockTypeWater},
		{30, 39, world.BlockTypeWater},
		{30, 40, world.BlockTypeAir},
		{5, 0, world.BlockTypeSand},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BlockAt(tc.h, tc.y), "h=%d y=%d", tc.h, tc.y)
	}
}

func TestGenerateChunkColumns(t *testing.T) {
	g := New(42)
	c := g.GenerateChunk(3, -2)
	assert.Equal(t, world.ChunkCoord{X: 3, Z: -2}, c.Coord())
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			h := g.HeightAt(3*world.ChunkSizeX+lx, -2*world.ChunkSizeZ+lz)
			for y := 0; y < world.ChunkSizeY; y++ {
				require.Equal(t, BlockAt(h, y), c.GetBlock(lx, y, lz), "column (%d,%d) y=%d h=%d", lx, lz, y, h)
			}
		}
	}
}

func TestSpawnPointAboveTerrain(t *testing.T) {
	g := New(9)
	p := g.SpawnPoint()
	assert.Equal(t, float32(0.5), p.X())
	assert.Equal(t, float32(0.5), p.Z())
	assert.Equal(t, float32(max(g.HeightAt(0, 0), WaterLevel)+2), p.Y())
}

func flatWorld(t *testing.T, height, radius int) *world.World {
	t.Helper()
	w := world.New(1)
	w.StreamAround(world.ChunkCoord{}, radius, NewFlat(height))
	return w
}

func countKind(w *world.World, kind world.BlockType) int {
	n := 0
	for _, c := range w.Chunks() {
		for _, b := range c.Blocks() {
			if b == kind {
				n++
			}
		}
	}
	return n
}

func TestPlantTreeShape(t *testing.T) {
	w := flatWorld(t, 10, 1)
	PlantTree(w, 8, 10, 8)

	for y := 10; y < 14; y++ {
		b, _ := w.GetBlock(8, y, 8)
		assert.Equal(t, world.BlockTypeWood, b, "trunk y=%d", y)
	}
	assert.Equal(t, 4, countKind(w, world.BlockTypeWood))
	// 23 + 23 + 9 + 1
	assert.Equal(t, 56, countKind(w, world.BlockTypeLeaves))

	corner, _ := w.GetBlock(10, 12, 10)
	assert.Equal(t, world.BlockTypeAir, corner)
	edge, _ := w.GetBlock(10, 12, 8)
	assert.Equal(t, world.BlockTypeLeaves, edge)
	peak, _ := w.GetBlock(8, 15, 8)
	assert.Equal(t, world.BlockTypeLeaves, peak)
	crown, _ := w.GetBlock(8, 14, 8)
	assert.Equal(t, world.BlockTypeLeaves, crown)
}

func TestPlantTreeKeepsWood(t *testing.T) {
	w := flatWorld(t, 10, 1)
	require.True(t, w.SetBlock(9, 12, 8, world.BlockTypeWood))
	PlantTree(w, 8, 10, 8)
	b, _ := w.GetBlock(9, 12, 8)
	assert.Equal(t, world.BlockTypeWood, b)
}

func TestPlantTreeDropsUnloadedCanopy(t *testing.T) {
	w := world.New(1)
	w.LoadOrGenerateChunk(0, 0, NewFlat(10))
	PlantTree(w, 0, 10, 0)

	// only the +X/+Z quarter of the canopy lands in the loaded chunk: 7 + 7 + 4 + 1
	assert.Equal(t, 19, countKind(w, world.BlockTypeLeaves))
	assert.Equal(t, 4, countKind(w, world.BlockTypeWood))
}

func TestIsTreeRootSpacing(t *testing.T) {
	g := New(5)
	for x := -30; x <= 30; x++ {
		for z := -30; z <= 30; z++ {
			if x%6 != 0 || z%6 != 0 {
				require.False(t, g.IsTreeRoot(x, z), "(%d,%d)", x, z)
			}
		}
	}
}

// findTreeChunk searches for a chunk that contains at least one tree root.
func findTreeChunk(t *testing.T, g *Generator) world.ChunkCoord {
	t.Helper()
	for x := -600; x <= 600; x += treeSpacing {
		for z := -600; z <= 600; z += treeSpacing {
			if g.IsTreeRoot(x, z) {
				coord, _, _ := world.ToChunkCoords(x, z)
				return coord
			}
		}
	}
	t.Fatal("no tree root found")
	return world.ChunkCoord{}
}

func TestPopulatePlantsAndDirtiesNeighbours(t *testing.T) {
	g := New(2024)
	target := findTreeChunk(t, g)

	w := world.New(2024)
	for _, n := range target.Neighbors() {
		require.True(t, w.AddChunk(g.GenerateChunk(n.X, n.Z)))
	}
	for _, c := range w.Chunks() {
		c.MarkClean()
	}

	require.True(t, w.LoadOrGenerateChunk(target.X, target.Z, g))
	assert.Len(t, w.DirtyChunks(), 9)
	assert.Greater(t, countKind(w, world.BlockTypeWood), 0)
	assert.Greater(t, countKind(w, world.BlockTypeLeaves), 0)

	// a second load must not plant again
	wood := countKind(w, world.BlockTypeWood)
	assert.False(t, w.LoadOrGenerateChunk(target.X, target.Z, g))
	assert.Equal(t, wood, countKind(w, world.BlockTypeWood))
}

func BenchmarkGenerateChunk(b *testing.B) {
	g := New(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.GenerateChunk(i%32, (i*7)%32)
	}
}

func BenchmarkHeightAt(b *testing.B) {
	g := New(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.HeightAt(i%1024, (i*31)%1024)
	}
}
