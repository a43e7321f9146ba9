package main

import (
	"fmt"
	"math"

	"blockworld/internal/config"
	"blockworld/internal/physics"
	"blockworld/internal/player"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

const (
	tickRate = 60
	dt       = float32(1.0 / tickRate)

	// the walker turns every turnEvery ticks by a mouse sweep of turnPixels, which is a
	// quarter circle at the default sensitivity
	turnEvery  = 2 * tickRate
	turnPixels = 314

	// debugReach matches the look-at readout distance of the debug overlay
	debugReach = float32(10)
)

// simulate drops a player at spawn and walks it in a square for n ticks, streaming
// chunks as it crosses borders and mining one block per turn.
func simulate(w *world.World, gen world.Generator, spawn mgl32.Vec3, n int) *player.Player {
	p := player.New(liftAboveColumn(w, spawn))
	p.WalkSpeed = config.GetWalkSpeed()
	last := world.ChunkCoordOf(spawn.X(), spawn.Z())

	var broken, placed int
	for i := 0; i < n; i++ {
		profiling.ResetFrame()

		if i > 0 && i%turnEvery == 0 {
			if _, ok := p.Break(w); ok {
				broken++
			}
			p.Look(turnPixels*config.GetMouseSensitivity(), 0)
			if p.Place(w) {
				placed++
			}
		}

		p.ApplyInput(1, 0, p.Body.OnGround && i%tickRate == 0)
		p.Update(dt, w)

		if config.GetShowDebug() && i%tickRate == 0 {
			logrus.WithFields(debugFields(p, w)).Info("debug")
		}

		if cur := world.ChunkCoordOf(p.Position().X(), p.Position().Z()); cur != last {
			w.StreamAround(cur, config.GetChunkLoadRadius(), gen)
			last = cur
		}
	}

	pos := p.Position()
	logrus.WithFields(logrus.Fields{
		"ticks":     n,
		"x":         pos.X(),
		"y":         pos.Y(),
		"z":         pos.Z(),
		"on_ground": p.Body.OnGround,
		"broken":    broken,
		"placed":    placed,
	}).Info("simulation finished")
	return p
}

// debugFields is the once-a-second readout shown when debugging is enabled.
func debugFields(p *player.Player, w world.BlockGetter) logrus.Fields {
	pos, vel := p.Position(), p.Body.Velocity
	chunk := world.ChunkCoordOf(pos.X(), pos.Z())
	fields := logrus.Fields{
		"position":   fmt.Sprintf("(%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z()),
		"velocity":   fmt.Sprintf("(%.2f, %.2f, %.2f)", vel.X(), vel.Y(), vel.Z()),
		"on_ground":  p.Body.OnGround,
		"chunk":      fmt.Sprintf("(%d, %d)", chunk.X, chunk.Z),
		"looking_at": "none",
	}
	if hit := physics.Raycast(p.EyePosition(), p.LookDirection(), debugReach, w); hit.Hit {
		fields["looking_at"] = fmt.Sprintf("(%d, %d, %d)", hit.HitPosition[0], hit.HitPosition[1], hit.HitPosition[2])
	}
	return fields
}

// liftAboveColumn raises pos so the feet rest one cell above the highest solid block of
// its column, in case the generated spawn landed inside a tree.
func liftAboveColumn(w world.BlockGetter, pos mgl32.Vec3) mgl32.Vec3 {
	x, z := int(math.Floor(float64(pos.X()))), int(math.Floor(float64(pos.Z())))
	for y := world.ChunkSizeY - 1; y >= 0; y-- {
		b, loaded := w.GetBlock(x, y, z)
		if !loaded {
			return pos
		}
		if b.IsSolid() {
			if top := float32(y + 1); pos.Y() < top {
				pos[1] = top
			}
			return pos
		}
	}
	return pos
}
