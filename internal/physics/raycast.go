package physics

import (
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// RayStep bounds how far a ray can skip past a thin feature.
	RayStep          = float32(0.1)
	MaxReachDistance = float32(5.0)
)

// RaycastResult stores the result of a raycast operation. Only Hit is meaningful on a miss.
type RaycastResult struct {
	Hit         bool
	HitPosition [3]int
	// Normal is the previous sampled cell minus the hit cell. It points back toward the
	// ray origin and may have more than one non-zero component at grazing angles.
	Normal           [3]int
	AdjacentPosition [3]int
	Distance         float32
}

func cellOf(p mgl32.Vec3) [3]int {
	return [3]int{floorInt(p.X()), floorInt(p.Y()), floorInt(p.Z())}
}

// Raycast marches from origin along dir in RayStep increments and returns the first
// solid block sampled within maxDist. dir is normalised; a zero direction never hits.
func Raycast(origin, dir mgl32.Vec3, maxDist float32, w world.BlockGetter) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	if dir.Len() == 0 {
		return RaycastResult{}
	}
	dir = dir.Normalize()

	steps := int(maxDist / RayStep)
	prev := cellOf(origin)
	for i := 1; i <= steps; i++ {
		dist := float32(i) * RayStep
		cell := cellOf(origin.Add(dir.Mul(dist)))
		if solidAt(w, cell[0], cell[1], cell[2]) {
			normal := [3]int{prev[0] - cell[0], prev[1] - cell[1], prev[2] - cell[2]}
			return RaycastResult{
				Hit:              true,
				HitPosition:      cell,
				Normal:           normal,
				AdjacentPosition: [3]int{cell[0] + normal[0], cell[1] + normal[1], cell[2] + normal[2]},
				Distance:         dist,
			}
		}
		prev = cell
	}
	return RaycastResult{}
}
