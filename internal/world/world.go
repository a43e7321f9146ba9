package world

import (
	"blockworld/internal/profiling"

	"github.com/sirupsen/logrus"
)

// Generator produces the terrain-only contents of a chunk. It must be pure.
type Generator interface {
	GenerateChunk(chunkX, chunkZ int) *Chunk
}

// Populator is an optional second generation pass that may write across chunk borders.
// It runs exactly once for every chunk created by LoadOrGenerateChunk.
type Populator interface {
	Populate(w *World, chunkX, chunkZ int)
}

// BlockGetter is the read-only query surface used by physics, meshing and raycasts.
type BlockGetter interface {
	GetBlock(x, y, z int) (BlockType, bool)
}

// World owns every loaded chunk, keyed by packed chunk coordinate.
// It is not safe for concurrent use; one writer per tick.
type World struct {
	Seed   uint32
	chunks map[int64]*Chunk
}

// New creates an empty world with the given generation seed.
func New(seed uint32) *World {
	return &World{
		Seed:   seed,
		chunks: make(map[int64]*Chunk),
	}
}

// Chunk returns the chunk at the specified chunk coordinates, if loaded.
func (w *World) Chunk(chunkX, chunkZ int) (*Chunk, bool) {
	c, ok := w.chunks[ChunkCoord{X: chunkX, Z: chunkZ}.Key()]
	return c, ok
}

// HasChunk checks if a chunk is loaded
func (w *World) HasChunk(coord ChunkCoord) bool {
	_, ok := w.chunks[coord.Key()]
	return ok
}

// AddChunk inserts a chunk built elsewhere. An already loaded coordinate is never replaced.
func (w *World) AddChunk(c *Chunk) bool {
	key := c.Coord().Key()
	if _, ok := w.chunks[key]; ok {
		return false
	}
	w.chunks[key] = c
	return true
}

// Len returns the number of loaded chunks.
func (w *World) Len() int {
	return len(w.chunks)
}

// Chunks returns all loaded chunks ordered by coordinate.
func (w *World) Chunks() []*Chunk {
	coords := make([]ChunkCoord, 0, len(w.chunks))
	for _, c := range w.chunks {
		coords = append(coords, c.Coord())
	}
	sortCoords(coords)
	out := make([]*Chunk, len(coords))
	for i, coord := range coords {
		out[i] = w.chunks[coord.Key()]
	}
	return out
}

// DirtyChunks returns the loaded chunks whose geometry is stale, ordered by coordinate.
func (w *World) DirtyChunks() []*Chunk {
	var out []*Chunk
	for _, c := range w.Chunks() {
		if c.IsDirty() {
			out = append(out, c)
		}
	}
	return out
}

// MarkDirty flags the chunk at (chunkX, chunkZ) if it is loaded.
func (w *World) MarkDirty(chunkX, chunkZ int) {
	if c, ok := w.Chunk(chunkX, chunkZ); ok {
		c.MarkDirty()
	}
}

// GetBlock returns the block at world coordinates. The boolean is false when the owning
// chunk is not loaded. Heights outside the chunk column read as loaded air.
func (w *World) GetBlock(x, y, z int) (BlockType, bool) {
	if y < 0 || y >= ChunkSizeY {
		return BlockTypeAir, true
	}
	coord, lx, lz := ToChunkCoords(x, z)
	c, ok := w.chunks[coord.Key()]
	if !ok {
		return BlockTypeAir, false
	}
	return c.GetBlock(lx, y, lz), true
}

// IsSolid treats unloaded and out-of-range cells as empty.
func (w *World) IsSolid(x, y, z int) bool {
	b, _ := w.GetBlock(x, y, z)
	return b.IsSolid()
}

// SetBlock writes a block at world coordinates and reports whether the write happened.
// Editing a block on a chunk edge also dirties the loaded neighbour sharing that edge.
func (w *World) SetBlock(x, y, z int, val BlockType) bool {
	if y < 0 || y >= ChunkSizeY {
		return false
	}
	coord, lx, lz := ToChunkCoords(x, z)
	c, ok := w.chunks[coord.Key()]
	if !ok {
		return false
	}
	c.SetBlock(lx, y, lz, val)

	// Mark neighbor chunks dirty if we touched a border block
	if lx == 0 {
		w.MarkDirty(coord.X-1, coord.Z)
	} else if lx == ChunkSizeX-1 {
		w.MarkDirty(coord.X+1, coord.Z)
	}
	if lz == 0 {
		w.MarkDirty(coord.X, coord.Z-1)
	} else if lz == ChunkSizeZ-1 {
		w.MarkDirty(coord.X, coord.Z+1)
	}
	return true
}

// LoadOrGenerateChunk generates the chunk at (chunkX, chunkZ) unless it is already
// loaded. A new chunk is handed to gen's Populator pass exactly once.
func (w *World) LoadOrGenerateChunk(chunkX, chunkZ int, gen Generator) bool {
	coord := ChunkCoord{X: chunkX, Z: chunkZ}
	if w.HasChunk(coord) {
		return false
	}

	stop := profiling.Track("world.GenerateChunk")
	c := gen.GenerateChunk(chunkX, chunkZ)
	stop()
	c.X, c.Z = chunkX, chunkZ
	w.chunks[coord.Key()] = c

	if p, ok := gen.(Populator); ok {
		stop := profiling.Track("world.PopulateChunk")
		p.Populate(w, chunkX, chunkZ)
		stop()
	}

	logrus.WithFields(logrus.Fields{"chunk_x": chunkX, "chunk_z": chunkZ}).Debug("chunk generated")
	return true
}

// StreamAround makes sure every chunk within radius (square, in chunks) of the center is
// loaded and returns how many were generated.
func (w *World) StreamAround(center ChunkCoord, radius int, gen Generator) int {
	defer profiling.Track("world.StreamAround")()
	created := 0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if w.LoadOrGenerateChunk(center.X+dx, center.Z+dz, gen) {
				created++
			}
		}
	}
	if created > 0 {
		logrus.WithFields(logrus.Fields{
			"chunk_x": center.X,
			"chunk_z": center.Z,
			"radius":  radius,
			"chunks":  created,
		}).Debug("streamed chunks")
	}
	return created
}
