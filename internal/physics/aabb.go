package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box in world units.
type AABB struct {
	Min, Max mgl32.Vec3
}

// BoxAt returns the box of a body whose feet are centred at pos.
func BoxAt(pos mgl32.Vec3, halfWidth, height float32) AABB {
	return AABB{
		Min: mgl32.Vec3{pos.X() - halfWidth, pos.Y(), pos.Z() - halfWidth},
		Max: mgl32.Vec3{pos.X() + halfWidth, pos.Y() + height, pos.Z() + halfWidth},
	}
}

// BlockBox is the unit cube occupied by block (x, y, z).
func BlockBox(x, y, z int) AABB {
	return AABB{
		Min: mgl32.Vec3{float32(x), float32(y), float32(z)},
		Max: mgl32.Vec3{float32(x + 1), float32(y + 1), float32(z + 1)},
	}
}

// Intersects reports overlap on all three axes. Touching faces do not count.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

// IntersectsXZ is Intersects with the vertical axis ignored.
func (a AABB) IntersectsXZ(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a.Min.X(), b.Min.X()), min(a.Min.Y(), b.Min.Y()), min(a.Min.Z(), b.Min.Z())},
		Max: mgl32.Vec3{max(a.Max.X(), b.Max.X()), max(a.Max.Y(), b.Max.Y()), max(a.Max.Z(), b.Max.Z())},
	}
}

// Translate returns the box moved by d.
func (a AABB) Translate(d mgl32.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// cellRange returns the inclusive block range that may overlap the box.
func (a AABB) cellRange() (minX, minY, minZ, maxX, maxY, maxZ int) {
	return floorInt(a.Min.X()), floorInt(a.Min.Y()), floorInt(a.Min.Z()),
		ceilInt(a.Max.X()), ceilInt(a.Max.Y()), ceilInt(a.Max.Z())
}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}

func ceilInt(v float32) int {
	return int(math.Ceil(float64(v)))
}
