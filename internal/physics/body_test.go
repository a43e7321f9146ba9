package physics

import (
	"testing"

	"blockworld/internal/world"
	"blockworld/internal/worldgen"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = float32(1.0 / 60.0)

// floorWorld has solid layers 0..10, so the walkable surface is y = 11.
func floorWorld(t testing.TB) *world.World {
	t.Helper()
	w := world.New(1)
	w.StreamAround(world.ChunkCoord{}, 1, worldgen.NewFlat(11))
	return w
}

func fill(t testing.TB, w *world.World, x0, x1, y0, y1, z0, z1 int, kind world.BlockType) {
	t.Helper()
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				require.True(t, w.SetBlock(x, y, z, kind), "set (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func grounded(pos mgl32.Vec3) *Body {
	b := NewBody(pos)
	b.OnGround = true
	return b
}

func TestAABBIntersectsIsStrict(t *testing.T) {
	a := BlockBox(0, 0, 0)
	assert.False(t, a.Intersects(BlockBox(1, 0, 0)), "touching faces")
	assert.False(t, a.Intersects(BlockBox(0, 1, 0)))
	assert.True(t, a.Intersects(a.Translate(mgl32.Vec3{0.5, 0.5, 0.5})))

	u := a.Union(BlockBox(2, -1, 0))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, u.Min)
	assert.Equal(t, mgl32.Vec3{3, 1, 1}, u.Max)
}

func TestBoxDerivedFromPosition(t *testing.T) {
	b := NewBody(mgl32.Vec3{1, 2, 3})
	box := b.Box()
	assert.InDelta(t, 0.7, box.Min.X(), 1e-6)
	assert.InDelta(t, 2.0, box.Min.Y(), 1e-6)
	assert.InDelta(t, 3.8, box.Max.Y(), 1e-6)
	b.Position = mgl32.Vec3{5, 5, 5}
	assert.InDelta(t, 5.3, b.Box().Max.X(), 1e-6)
}

func TestBodyLandsOnFloor(t *testing.T) {
	w := floorWorld(t)
	b := NewBody(mgl32.Vec3{0.5, 15, 0.5})
	for i := 0; i < 300; i++ {
		b.Step(tick, w)
	}
	assert.True(t, b.OnGround)
	assert.InDelta(t, 11.0, b.Position.Y(), 0.1)
	assert.InDelta(t, 11.0+Epsilon, b.Position.Y(), 1e-4)
	assert.Zero(t, b.Velocity.Y())
	assert.False(t, b.Collides(w))
}

func TestFastFallDoesNotTunnel(t *testing.T) {
	w := world.New(1)
	w.StreamAround(world.ChunkCoord{}, 1, worldgen.NewFlat(0))
	fill(t, w, -2, 2, 10, 10, -2, 2, world.BlockTypeGlass)

	b := NewBody(mgl32.Vec3{0.5, 60, 0.5})
	b.Velocity[1] = TerminalVelocity
	for i := 0; i < 40; i++ {
		b.Step(0.05, w)
	}
	assert.True(t, b.OnGround)
	assert.InDelta(t, 11.0+Epsilon, b.Position.Y(), 1e-4)
}

func TestTerminalVelocity(t *testing.T) {
	w := world.New(1)
	b := NewBody(mgl32.Vec3{0, 1000, 0})
	for i := 0; i < 600; i++ {
		b.Step(tick, w)
	}
	assert.Equal(t, TerminalVelocity, b.Velocity.Y())
}

func TestBodyStopsAtWall(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, 3, 3, 11, 14, -3, 3, world.BlockTypeStone)

	b := grounded(mgl32.Vec3{0.5, 11 + Epsilon, 0.5})
	for i := 0; i < 120; i++ {
		b.SetHorizontalVelocity(4, 0)
		b.Step(tick, w)
	}
	assert.LessOrEqual(t, b.Position.X()+HalfWidth, float32(3.0))
	assert.Greater(t, b.Position.X(), float32(2.5))
	assert.InDelta(t, 11.0+Epsilon, b.Position.Y(), 1e-4)
	assert.True(t, b.OnGround)
}

func TestBodyStopsAtFullBlockStep(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, 3, 3, 11, 11, -3, 3, world.BlockTypeStone)

	b := grounded(mgl32.Vec3{0.5, 11 + Epsilon, 0.5})
	for i := 0; i < 60; i++ {
		b.SetHorizontalVelocity(4, 0)
		b.Step(tick, w)
	}
	// a whole block is taller than StepHeight, so the body walks up to the face and stops
	assert.LessOrEqual(t, b.Position.X()+HalfWidth, float32(3.0))
	assert.Greater(t, b.Position.X()+HalfWidth, float32(2.9))
	assert.InDelta(t, 11.0+Epsilon, b.Position.Y(), 1e-4)
	assert.True(t, b.OnGround)
	assert.False(t, b.Collides(w))
}

func TestBodyStepsOntoLedge(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, 3, 10, 11, 11, -3, 3, world.BlockTypeStone)

	// feet half a block below the ledge top, drifting down
	b := NewBody(mgl32.Vec3{2.5, 11.5, 0.5})
	for i := 0; i < 30; i++ {
		b.SetHorizontalVelocity(6, 0)
		b.Step(tick, w)
	}
	assert.Greater(t, b.Position.X(), float32(3.0))
	assert.True(t, b.OnGround)
	assert.InDelta(t, 12.0+Epsilon, b.Position.Y(), 1e-4)
}

func TestNoStepWhileRising(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, 3, 10, 11, 11, -3, 3, world.BlockTypeStone)

	b := NewBody(mgl32.Vec3{2.69, 11.5, 0.5})
	b.Velocity[1] = 2
	b.SetHorizontalVelocity(6, 0)
	b.Step(tick, w)

	assert.Equal(t, float32(2.69), b.Position.X(), "axis move reverted")
	assert.Greater(t, b.Velocity.Y(), float32(0))
	assert.Less(t, b.Position.Y(), float32(12.0))
}

func TestZPassSeesXStep(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, 3, 10, 11, 11, -3, 3, world.BlockTypeStone)

	b := NewBody(mgl32.Vec3{2.69, 11.5, 0.5})
	b.SetHorizontalVelocity(6, 6)
	b.Step(tick, w)

	// Z moves from the height the X step left behind, without a second lift
	assert.Greater(t, b.Position.X(), float32(2.69))
	assert.Greater(t, b.Position.Z(), float32(0.5))
	assert.Greater(t, b.Position.Y(), float32(12.0))
	assert.Less(t, b.Position.Y(), float32(12.0)+StepHeight)
}

func TestStepLiftIsSharedByBothAxes(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, 3, 10, 11, 11, -3, 0, world.BlockTypeStone) // one block ledge ahead on X
	fill(t, w, -3, 10, 11, 12, 1, 5, world.BlockTypeStone) // two block wall ahead on Z

	start := float32(11.9)
	b := NewBody(mgl32.Vec3{2.69, start, 0.69})
	b.Velocity[1] = -1
	b.SetHorizontalVelocity(6, 6)
	b.Step(tick, w)

	assert.Greater(t, b.Position.X(), float32(2.69), "X steps onto the ledge")
	assert.Equal(t, float32(0.69), b.Position.Z(), "Z may not lift a second time onto the wall")
	assert.LessOrEqual(t, b.Position.Y()-start, StepHeight)
	assert.Less(t, b.Position.Y(), float32(13.0))
	assert.False(t, b.Collides(w))
}

func TestCeilingStopsJump(t *testing.T) {
	w := floorWorld(t)
	fill(t, w, -2, 2, 13, 13, -2, 2, world.BlockTypeStone)

	b := grounded(mgl32.Vec3{0.5, 11 + Epsilon, 0.5})
	b.Jump()
	b.Step(tick, w)
	assert.Greater(t, b.Velocity.Y(), float32(0))
	b.Step(tick, w)

	assert.Zero(t, b.Velocity.Y())
	assert.False(t, b.OnGround)
	assert.LessOrEqual(t, b.Box().Max.Y(), float32(13.0))
	assert.False(t, b.Collides(w))

	for i := 0; i < 60; i++ {
		b.Step(tick, w)
	}
	assert.True(t, b.OnGround)
	assert.InDelta(t, 11.0+Epsilon, b.Position.Y(), 1e-4)
}

func TestJump(t *testing.T) {
	b := grounded(mgl32.Vec3{0, 11, 0})
	b.Jump()
	assert.Equal(t, JumpVelocity, b.Velocity.Y())
	assert.False(t, b.OnGround)

	b.Velocity[1] = -3
	b.Jump()
	assert.Equal(t, float32(-3), b.Velocity.Y(), "airborne jump is ignored")
}

func TestSupportLostWhenBlockRemoved(t *testing.T) {
	w := floorWorld(t)
	b := grounded(mgl32.Vec3{0.5, 11 + Epsilon, 0.5})
	b.Step(tick, w)
	require.True(t, b.OnGround)

	fill(t, w, -1, 1, 10, 10, -1, 1, world.BlockTypeAir)
	b.Step(tick, w)
	assert.False(t, b.OnGround)
	assert.Less(t, b.Position.Y(), float32(11.0))
	assert.Less(t, b.Velocity.Y(), float32(0))
}

func TestRestingBodyStaysPut(t *testing.T) {
	w := floorWorld(t)
	b := grounded(mgl32.Vec3{0.5, 11 + Epsilon, 0.5})
	for i := 0; i < 30; i++ {
		b.Step(tick, w)
	}
	assert.True(t, b.OnGround)
	assert.Equal(t, mgl32.Vec3{0.5, 11 + Epsilon, 0.5}, b.Position)
}

func BenchmarkStep(b *testing.B) {
	w := floorWorld(b)
	body := grounded(mgl32.Vec3{0.5, 11 + Epsilon, 0.5})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body.SetHorizontalVelocity(1, 0.5)
		body.Step(tick, w)
		if body.Position.X() > 12 {
			body.Position = mgl32.Vec3{0.5, 11 + Epsilon, 0.5}
		}
	}
}

func BenchmarkCollides(b *testing.B) {
	w := floorWorld(b)
	box := BoxAt(mgl32.Vec3{0.5, 11, 0.5}, HalfWidth, Height)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Collides(box, w)
	}
}
