package player

import (
	"math"

	"blockworld/internal/physics"
	"blockworld/internal/world"

	"github.com/sirupsen/logrus"
)

// BlockEditor is the part of the world a player can change.
type BlockEditor interface {
	world.BlockGetter
	SetBlock(x, y, z int, t world.BlockType) bool
}

// Target returns the block the player is looking at, if any within reach.
func (p *Player) Target(w world.BlockGetter) physics.RaycastResult {
	return physics.Raycast(p.EyePosition(), p.LookDirection(), physics.MaxReachDistance, w)
}

// Break removes the targeted block and puts it in the inventory. When the block was the
// one under the player's feet the body loses its ground contact straight away.
func (p *Player) Break(w BlockEditor) (world.BlockType, bool) {
	hit := p.Target(w)
	if !hit.Hit {
		return world.BlockTypeAir, false
	}
	x, y, z := hit.HitPosition[0], hit.HitPosition[1], hit.HitPosition[2]
	kind, ok := w.GetBlock(x, y, z)
	if !ok || kind == world.BlockTypeAir {
		return world.BlockTypeAir, false
	}
	if !w.SetBlock(x, y, z, world.BlockTypeAir) {
		return world.BlockTypeAir, false
	}

	if !p.Inventory.Add(kind, 1) {
		logrus.WithField("block", kind.String()).Debug("inventory full, broken block dropped")
	}
	if p.standsOn(x, y, z) {
		p.Body.OnGround = false
	}
	return kind, true
}

func (p *Player) standsOn(x, y, z int) bool {
	pos := p.Body.Position
	fx, fy, fz := floor(pos.X()), floor(pos.Y()), floor(pos.Z())
	return x == fx && z == fz && y == fy-1
}

// Place puts one block of the selected kind against the targeted face. The target cell
// must be loaded, not solid, and clear of the player's body.
func (p *Player) Place(w BlockEditor) bool {
	kind, ok := p.Inventory.SelectedBlock()
	if !ok {
		return false
	}
	hit := p.Target(w)
	if !hit.Hit {
		return false
	}

	x, y, z := hit.AdjacentPosition[0], hit.AdjacentPosition[1], hit.AdjacentPosition[2]
	existing, loaded := w.GetBlock(x, y, z)
	if !loaded || existing.IsSolid() {
		return false
	}
	if physics.BlockBox(x, y, z).Intersects(p.Body.Box()) {
		return false
	}
	if !w.SetBlock(x, y, z, kind) {
		return false
	}
	p.Inventory.RemoveSelected(1)
	return true
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}
