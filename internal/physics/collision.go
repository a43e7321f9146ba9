package physics

import (
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func solidAt(w world.BlockGetter, x, y, z int) bool {
	b, _ := w.GetBlock(x, y, z)
	return b.IsSolid()
}

// Collides checks if the box overlaps any solid block. Cells without data count as air.
func Collides(box AABB, w world.BlockGetter) bool {
	minX, minY, minZ, maxX, maxY, maxZ := box.cellRange()
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if solidAt(w, x, y, z) && box.Intersects(BlockBox(x, y, z)) {
					return true
				}
			}
		}
	}
	return false
}

// lowestOverlappingLayer returns the lowest y of a solid block that overlaps box.
func lowestOverlappingLayer(box AABB, w world.BlockGetter) (int, bool) {
	minX, minY, minZ, maxX, maxY, maxZ := box.cellRange()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if solidAt(w, x, y, z) && box.Intersects(BlockBox(x, y, z)) {
					return y, true
				}
			}
		}
	}
	return 0, false
}

// hasSupport probes a thin slab around feetY for a block top the box can stand on.
func hasSupport(box AABB, feetY float32, w world.BlockGetter) bool {
	slab := AABB{
		Min: mgl32.Vec3{box.Min.X(), feetY - SupportProbe, box.Min.Z()},
		Max: mgl32.Vec3{box.Max.X(), feetY + SupportProbe, box.Max.Z()},
	}
	minX, _, minZ, maxX, _, maxZ := slab.cellRange()
	layer := floorInt(feetY - Epsilon)
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			for _, y := range [2]int{layer, layer - 1} {
				if !solidAt(w, x, y, z) {
					continue
				}
				top := float32(y + 1)
				if abs32(top-feetY) > SupportProbe+Epsilon {
					continue
				}
				if slab.IntersectsXZ(BlockBox(x, y, z)) {
					return true
				}
			}
		}
	}
	return false
}

// sweepLanding finds the layer a falling footprint lands on between prevY and desiredY.
// Layers are scanned from the desired height upward.
func sweepLanding(footprint AABB, prevY, desiredY float32, w world.BlockGetter) (int, bool) {
	minX, _, minZ, maxX, _, maxZ := footprint.cellRange()
	for y := floorInt(desiredY - Epsilon); y <= ceilInt(prevY+Epsilon); y++ {
		top := float32(y + 1)
		if top > prevY+Epsilon || top < desiredY-Epsilon {
			continue
		}
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				if solidAt(w, x, y, z) && footprint.IntersectsXZ(BlockBox(x, y, z)) {
					return y, true
				}
			}
		}
	}
	return 0, false
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
