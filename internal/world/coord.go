package world

import (
	"math"
	"sort"
)

// ChunkCoord addresses a chunk column in chunk units.
type ChunkCoord struct {
	X, Z int
}

// Key packs the coordinate pair into a single map key.
func (c ChunkCoord) Key() int64 {
	return int64(c.X)<<32 | int64(uint32(int32(c.Z)))
}

// Neighbors returns the eight surrounding chunk coordinates.
func (c ChunkCoord) Neighbors() [8]ChunkCoord {
	var out [8]ChunkCoord
	i := 0
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			out[i] = ChunkCoord{X: c.X + dx, Z: c.Z + dz}
			i++
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ToChunkCoords splits a world column into its chunk coordinate and local offset.
func ToChunkCoords(x, z int) (ChunkCoord, int, int) {
	return ChunkCoord{X: floorDiv(x, ChunkSizeX), Z: floorDiv(z, ChunkSizeZ)}, mod(x, ChunkSizeX), mod(z, ChunkSizeZ)
}

// ChunkCoordOf returns the chunk that contains the continuous position (x, z).
func ChunkCoordOf(x, z float32) ChunkCoord {
	c, _, _ := ToChunkCoords(int(math.Floor(float64(x))), int(math.Floor(float64(z))))
	return c
}

func sortCoords(coords []ChunkCoord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Z < coords[j].Z
	})
}
