package physics

import (
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Gravity          = float32(-25.0)
	TerminalVelocity = float32(-50.0)
	JumpVelocity     = float32(8.0)

	// StepHeight is the tallest ledge a walking body climbs without jumping.
	StepHeight = float32(0.6)

	Epsilon      = float32(0.001)
	SupportProbe = float32(0.05)

	HalfWidth = float32(0.3)
	Height    = float32(1.8)
)

// Body is a player-sized box driven by gravity and collision against the block grid.
// Position is the centre of the feet.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	OnGround bool
}

// NewBody creates an airborne body at rest.
func NewBody(pos mgl32.Vec3) *Body {
	return &Body{Position: pos}
}

// Box is always derived from Position.
func (b *Body) Box() AABB {
	return BoxAt(b.Position, HalfWidth, Height)
}

// Collides reports whether the body currently overlaps a solid block.
func (b *Body) Collides(w world.BlockGetter) bool {
	return Collides(b.Box(), w)
}

// SetHorizontalVelocity replaces the X and Z velocity, leaving vertical motion alone.
func (b *Body) SetHorizontalVelocity(vx, vz float32) {
	b.Velocity[0] = vx
	b.Velocity[2] = vz
}

// Jump only works from the ground.
func (b *Body) Jump() {
	if !b.OnGround {
		return
	}
	b.Velocity[1] = JumpVelocity
	b.OnGround = false
}

// Step advances the body by dt seconds.
func (b *Body) Step(dt float32, w world.BlockGetter) {
	defer profiling.Track("physics.Step")()

	prev := b.Position

	if b.OnGround && !hasSupport(b.Box(), b.Position.Y(), w) {
		b.OnGround = false
	}

	if !b.OnGround {
		b.Velocity[1] = max(b.Velocity[1]+Gravity*dt, TerminalVelocity)
	}

	desired := b.Position.Add(b.Velocity.Mul(dt))

	b.resolveVertical(prev, desired, w)
	b.resolveHorizontal(desired, w)
}

func (b *Body) resolveVertical(prev, desired mgl32.Vec3, w world.BlockGetter) {
	if b.Velocity.Y() < 0 {
		footprint := BoxAt(prev, HalfWidth, Height).Union(BoxAt(desired, HalfWidth, Height))
		if y, ok := sweepLanding(footprint, prev.Y(), desired.Y(), w); ok {
			b.Position[1] = float32(y+1) + Epsilon
			b.Velocity[1] = 0
			b.OnGround = true
		} else {
			b.Position[1] = desired.Y()
		}
	} else {
		b.Position[1] = desired.Y()
		b.OnGround = b.OnGround && b.Velocity.Y() == 0
	}

	if !b.Collides(w) {
		if b.Velocity.Y() != 0 {
			b.OnGround = false
		}
		return
	}

	switch {
	case b.Velocity.Y() > 0:
		// ceiling: tuck under the lowest overlapping block, never below where we started
		b.Velocity[1] = 0
		b.OnGround = false
		y := prev.Y()
		if layer, ok := lowestOverlappingLayer(b.Box(), w); ok {
			y = max(float32(layer)-Height-Epsilon, prev.Y())
		}
		b.Position[1] = y
	case b.Velocity.Y() < 0:
		b.Position[1] = prev.Y()
		b.Velocity[1] = 0
		b.OnGround = true
	default:
		b.Position[1] = prev.Y()
	}
}

// resolveHorizontal moves X then Z. Each axis starts from the state the previous one
// left behind, including any step-up it accepted. The lift over both axes together is
// at most StepHeight above the height the horizontal pass started from.
func (b *Body) resolveHorizontal(desired mgl32.Vec3, w world.BlockGetter) {
	canStep := b.Velocity.Y() <= 0
	stepTop := b.Position.Y() + StepHeight
	b.moveAxis(0, desired.X(), canStep, stepTop, w)
	b.moveAxis(2, desired.Z(), canStep, stepTop, w)
}

func (b *Body) moveAxis(axis int, target float32, canStep bool, stepTop float32, w world.BlockGetter) {
	before := b.Position
	b.Position[axis] = target
	if !b.Collides(w) {
		return
	}
	if canStep && b.Position.Y() < stepTop {
		b.Position[1] = stepTop
		if !b.Collides(w) {
			return
		}
	}
	b.Position = before
}
