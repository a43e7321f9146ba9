package player

import (
	"math"

	"blockworld/internal/inventory"
	"blockworld/internal/physics"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	EyeHeight = float32(1.62)

	// DefaultWalkSpeed is in blocks per second.
	DefaultWalkSpeed = float32(4.3)

	// MaxPitch keeps the view just short of straight up or down (radians).
	MaxPitch = float32(1.5)
)

// Player ties a physics body to a look direction and an inventory.
// Yaw and Pitch are in radians; yaw 0 looks along +X.
type Player struct {
	Body      *physics.Body
	Inventory *inventory.Inventory
	WalkSpeed float32
	Yaw       float32
	Pitch     float32
}

// New places a player with the starter inventory at spawn.
func New(spawn mgl32.Vec3) *Player {
	return &Player{
		Body:      physics.NewBody(spawn),
		Inventory: inventory.WithStarterItems(),
		WalkSpeed: DefaultWalkSpeed,
	}
}

// Position returns the feet position.
func (p *Player) Position() mgl32.Vec3 {
	return p.Body.Position
}

// EyePosition returns the point the view and block reach are measured from.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Body.Position.Add(mgl32.Vec3{0, EyeHeight, 0})
}

// LookDirection returns the unit view vector.
func (p *Player) LookDirection() mgl32.Vec3 {
	yaw, pitch := float64(p.Yaw), float64(p.Pitch)
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// forward and right ignore pitch so looking down does not slow walking.
func (p *Player) forward() mgl32.Vec3 {
	yaw := float64(p.Yaw)
	return mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}
}

func (p *Player) right() mgl32.Vec3 {
	return p.forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Look turns the view by the given deltas, clamping pitch.
func (p *Player) Look(dYaw, dPitch float32) {
	p.Yaw += dYaw
	p.Pitch = mgl32.Clamp(p.Pitch+dPitch, -MaxPitch, MaxPitch)
}

// ApplyInput sets the horizontal velocity from movement axes in [-1, 1]. Diagonal input
// is normalised so it is no faster than straight input.
func (p *Player) ApplyInput(forward, strafe float32, jump bool) {
	move := p.forward().Mul(forward).Add(p.right().Mul(strafe))
	if move.LenSqr() > 0 {
		move = move.Normalize().Mul(p.WalkSpeed)
	}
	p.Body.SetHorizontalVelocity(move.X(), move.Z())

	if jump {
		p.Body.Jump()
	}
}

// Update advances the body by dt seconds.
func (p *Player) Update(dt float32, w world.BlockGetter) {
	p.Body.Step(dt, w)
}
