package meshing

import (
	"blockworld/internal/world"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Cache keeps built chunk meshes keyed by chunk coordinate and rebuilds them when the
// chunk reports itself dirty. The least recently used meshes are dropped past capacity.
type Cache struct {
	builder Builder
	meshes  *lru.Cache
}

// NewCache creates a cache holding at most size meshes.
func NewCache(size int, b Builder) (*Cache, error) {
	meshes, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "create mesh cache of size %d", size)
	}
	return &Cache{builder: b, meshes: meshes}, nil
}

// Mesh returns the geometry for c, rebuilding it if c is dirty or not cached.
// A rebuild marks the chunk clean.
func (mc *Cache) Mesh(w world.BlockGetter, c *world.Chunk) *Mesh {
	key := c.Coord().Key()
	if !c.IsDirty() {
		if v, ok := mc.meshes.Get(key); ok {
			return v.(*Mesh)
		}
	}

	m := &Mesh{}
	mc.builder.BuildChunk(m, w, c)
	mc.meshes.Add(key, m)
	c.MarkClean()

	logrus.WithFields(logrus.Fields{
		"chunk_x":  c.X,
		"chunk_z":  c.Z,
		"vertices": len(m.Vertices),
	}).Debug("chunk mesh rebuilt")
	return m
}

// Put stores a mesh built elsewhere, e.g. by a WorkerPool. The caller marks the chunk clean.
func (mc *Cache) Put(coord world.ChunkCoord, m *Mesh) {
	mc.meshes.Add(coord.Key(), m)
}

// Invalidate drops the cached mesh for coord.
func (mc *Cache) Invalidate(coord world.ChunkCoord) {
	mc.meshes.Remove(coord.Key())
}

// Len returns the number of cached meshes.
func (mc *Cache) Len() int {
	return mc.meshes.Len()
}
